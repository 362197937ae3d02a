package v1

import (
	"mentorlink/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Auth          *handler.AuthHandler
	Users         *handler.UserHandler
	Mentors       *handler.MentorHandler
	FollowRequest *handler.FollowRequestHandler
	RequireAuth   fiber.Handler
}

// Register mounts the v1 API. Authentication is attached per group so the
// public routes never pass through it.
func Register(r fiber.Router, h Handlers) {
	if r == nil || h.RequireAuth == nil {
		return
	}

	if h.Auth != nil {
		h.Auth.RegisterRoutes(r.Group("/auth"))
	}
	if h.Users != nil {
		h.Users.RegisterRoutes(r.Group("/users"), h.RequireAuth)
	}
	if h.Mentors != nil {
		h.Mentors.RegisterRoutes(r.Group("/mentors", h.RequireAuth))
	}
	if h.FollowRequest != nil {
		h.FollowRequest.RegisterRoutes(r.Group("/follow-requests", h.RequireAuth))
	}
}
