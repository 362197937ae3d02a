package handler

import (
	"errors"

	"mentorlink/internal/delivery/http/dto"
	"mentorlink/internal/delivery/http/middleware"
	"mentorlink/internal/pkg/response"
	"mentorlink/internal/usecase"
	ucuser "mentorlink/internal/usecase/user"

	"github.com/gofiber/fiber/v3"
)

type UserHandler struct {
	search  usecase.SearchUsecase
	profile usecase.UserUsecase
}

func NewUserHandler(search usecase.SearchUsecase, profile usecase.UserUsecase) *UserHandler {
	return &UserHandler{search: search, profile: profile}
}

// RegisterRoutes mounts search publicly and the profile routes behind auth.
func (h *UserHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}

	r.Get("/search", h.Search)
	r.Get("/me", auth, h.Me)
	r.Put("/me/image", auth, h.UpdateImage)
}

func (h *UserHandler) Search(c fiber.Ctx) error {
	var q dto.SearchUsersQuery
	if err := c.Bind().Query(&q); err != nil {
		return badRequest(err)
	}

	users, err := h.search.SearchUsers(c.Context(), usecase.UserFilter{
		Role:        q.Role,
		Name:        q.Name,
		Domain:      q.Domain,
		Branch:      q.Branch,
		YearOfStudy: q.YearOfStudy,
		Company:     q.Company,
	})
	if err != nil {
		return mapDomainError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserResponses(users))
}

func (h *UserHandler) Me(c fiber.Ctx) error {
	usr, err := h.profile.GetMe(c.Context(), middleware.AuthFromContext(c))
	if err != nil {
		return mapProfileError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserResponse(usr))
}

func (h *UserHandler) UpdateImage(c fiber.Ctx) error {
	var req dto.UpdateImageRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	usr, err := h.profile.UpdateProfileImage(c.Context(), middleware.AuthFromContext(c), req.ImageURL)
	if err != nil {
		return mapProfileError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserResponse(usr))
}

func mapProfileError(err error) error {
	if errors.Is(err, ucuser.ErrInvalidInput) {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid image url", nil, err)
	}
	return mapDomainError(err)
}
