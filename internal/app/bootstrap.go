package app

import (
	"context"
	"fmt"
	"strings"

	"mentorlink/internal/config"
	"mentorlink/internal/delivery/http/handler"
	"mentorlink/internal/delivery/http/middleware"
	"mentorlink/internal/delivery/http/routes"
	v1 "mentorlink/internal/delivery/http/routes/v1"
	"mentorlink/internal/usecase"
	ucauth "mentorlink/internal/usecase/auth"
	"mentorlink/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/rs/zerolog"
)

type App struct {
	Fiber *fiber.App
	Hub   *ws.Hub
}

// New builds the HTTP application on top of c. The websocket hub is created
// here but only runs once Start is called.
func New(c *Container) *App {
	cfg := c.Config
	logger := c.Logger

	f := fiber.New(fiber.Config{
		AppName:         cfg.App.AppName,
		StructValidator: middleware.NewStructValidator(),
	})

	registerGlobalMiddleware(f, cfg, logger)

	hub := ws.NewHub(logger)
	notifier := ws.NewNotifier(hub)

	var searchCache usecase.SearchCache
	if c.Cache != nil {
		searchCache = c.Cache
	}

	searchUC := usecase.NewSearchUsecase(c.Users, searchCache, logger)
	profileUC := usecase.NewUserUsecase(c.Users, searchCache, logger)
	recommendUC := usecase.NewRecommendationUsecase(c.Users, logger)
	relationUC := usecase.NewRelationshipUsecase(c.Users, c.FollowRequests)
	followUC := usecase.NewFollowRequestUsecase(c.Users, c.FollowRequests, notifier, logger)
	authUC := usecase.NewAuthUsecase(ucauth.NewService(c.Users), c.Users, c.JWT, searchCache, logger)

	var dbPinger, cachePinger handler.Pinger
	if c.DB != nil {
		dbPinger = c.DB
	}
	if c.Cache != nil {
		cachePinger = c.Cache
	}

	authMw := middleware.NewAuthMiddleware(c.JWT)

	routes.NewRegistry(
		handler.NewHealthHandler(dbPinger, cachePinger),
		ws.NewHandler(hub, c.JWT, logger),
		v1.Handlers{
			Auth:          handler.NewAuthHandler(authUC),
			Users:         handler.NewUserHandler(searchUC, profileUC),
			Mentors:       handler.NewMentorHandler(recommendUC, relationUC),
			FollowRequest: handler.NewFollowRequestHandler(followUC),
			RequireAuth:   authMw.Middleware(),
		},
	).Register(f)

	return &App{Fiber: f, Hub: hub}
}

// Start runs background workers until ctx is cancelled.
func (a *App) Start(ctx context.Context) {
	if a == nil || a.Hub == nil {
		return
	}
	go a.Hub.Run(ctx)
}

// Bootstrap connects every dependency, applies migrations when configured and
// returns the ready application together with its cleanup func.
func Bootstrap(ctx context.Context, cfg config.Config, logger zerolog.Logger) (*App, func() error, error) {
	c, err := NewContainer(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	if cfg.Migrations.OnStart {
		if err := c.Migrate(ctx); err != nil {
			_ = c.Close()
			return nil, nil, err
		}
	}

	app := New(c)
	app.Start(ctx)

	return app, c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, cfg config.Config, logger zerolog.Logger) {
	if app == nil {
		return
	}

	errMw := middleware.NewErrorMiddleware(logger)
	app.Use(errMw.Middleware())

	accessMw := middleware.NewAccessLogMiddleware(logger)
	app.Use(accessMw.Middleware())

	if len(cfg.App.CORSOrigins) > 0 {
		app.Use(cors.New(cors.Config{
			AllowOrigins: cfg.App.CORSOrigins,
			AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderRequestID},
		}))
	}
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
