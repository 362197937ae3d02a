package handler

import (
	"mentorlink/internal/delivery/http/dto"
	"mentorlink/internal/delivery/http/middleware"
	"mentorlink/internal/domain/follow"
	"mentorlink/internal/pkg/response"
	"mentorlink/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type FollowRequestHandler struct {
	uc usecase.FollowRequestUsecase
}

func NewFollowRequestHandler(uc usecase.FollowRequestUsecase) *FollowRequestHandler {
	return &FollowRequestHandler{uc: uc}
}

func (h *FollowRequestHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("", h.Send)
	r.Post("/respond", h.Respond)
}

func (h *FollowRequestHandler) Send(c fiber.Ctx) error {
	var req dto.SendFollowRequestRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	fr, err := h.uc.SendFollowRequest(c.Context(), middleware.AuthFromContext(c), req.MentorID)
	if err != nil {
		return mapDomainError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewFollowRequestResponse(fr))
}

func (h *FollowRequestHandler) Respond(c fiber.Ctx) error {
	var req dto.RespondFollowRequestRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	fr, err := h.uc.RespondFollowRequest(c.Context(), middleware.AuthFromContext(c), req.MenteeID, follow.Action(req.Action))
	if err != nil {
		return mapDomainError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewFollowRequestResponse(fr))
}
