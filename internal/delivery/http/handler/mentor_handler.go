package handler

import (
	"mentorlink/internal/delivery/http/dto"
	"mentorlink/internal/delivery/http/middleware"
	"mentorlink/internal/pkg/response"
	"mentorlink/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type MentorHandler struct {
	recommend usecase.RecommendationUsecase
	relations usecase.RelationshipUsecase
}

func NewMentorHandler(recommend usecase.RecommendationUsecase, relations usecase.RelationshipUsecase) *MentorHandler {
	return &MentorHandler{recommend: recommend, relations: relations}
}

func (h *MentorHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/recommended", h.Recommended)
	r.Get("/me/mentees", h.MyMentees)
	r.Get("/me/requests/pending", h.MyPendingRequests)
}

func (h *MentorHandler) Recommended(c fiber.Ctx) error {
	recs, err := h.recommend.RecommendMentors(c.Context(), middleware.AuthFromContext(c))
	if err != nil {
		return mapDomainError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewRecommendedMentorResponses(recs))
}

func (h *MentorHandler) MyMentees(c fiber.Ctx) error {
	mentees, err := h.relations.MyMentees(c.Context(), middleware.AuthFromContext(c))
	if err != nil {
		return mapDomainError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserResponses(mentees))
}

func (h *MentorHandler) MyPendingRequests(c fiber.Ctx) error {
	reqs, err := h.relations.MyPendingRequests(c.Context(), middleware.AuthFromContext(c))
	if err != nil {
		return mapDomainError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewFollowRequestResponses(reqs))
}
