package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"trackpass/cmd/internal/config"
	"trackpass/cmd/internal/domain/sqlite"
	"trackpass/cmd/internal/domain/sqlite/repository"
	"trackpass/cmd/internal/http/handler"
	sessionmw "trackpass/cmd/internal/http/middleware"
	"trackpass/cmd/internal/infrastructure/geocoding"
	"trackpass/cmd/internal/infrastructure/trackpass"
	"trackpass/cmd/internal/notify"
	"trackpass/cmd/internal/service"
	"trackpass/cmd/internal/utils/uid"
	"trackpass/cmd/internal/utils/validators"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

const envVarsPrefix = "/trackpass/prod/"

func main() {
	validate := validators.New()

	// Loads env vars depending on environment
	if os.Getenv("GO_ENV") == "production" {
		loadProdEnv() // AWS SSM Parameter Store
	} else if err := godotenv.Load(); err != nil {
		log.Warnf("no .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	uid.Init(cfg.NodeID)

	// Init SQLite
	db, err := sqlite.Init(cfg.DBPath)
	if err != nil {
		panic(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Clients
	tokens := service.NewTokenStore(repository.NewSettingRepository(db))
	api := trackpass.NewClient(cfg.APIURL, cfg.HTTPTimeout, tokens)
	geocoder := geocoding.NewClient(cfg.GoogleAPIKey)
	if !geocoder.Enabled() {
		log.Warn("GOOGLE_API_KEY not set, points must be created with coordinates")
	}

	feed := notify.NewFeed(0)

	// Getting services
	authService := service.NewAuthService(api, tokens, validate, cfg.ManagerRole)
	routeService := service.NewRouteService(ctx, api, feed, validate, cfg.PollInterval)
	cityService := service.NewCityService(ctx, api, feed, validate)
	pointService := service.NewPointService(ctx, api, geocoder, feed, validate)
	routeCollaboratorService := service.NewRouteCollaboratorService(ctx, api, feed)
	collaboratorService := service.NewCollaboratorService(ctx, api, feed)
	visitorService := service.NewVisitorService(ctx, api, feed, validate)
	tripService := service.NewTripService(ctx, api, feed, validate)
	fleetService := service.NewFleetService(api, feed)
	impedimentService := service.NewImpedimentService(api, feed)
	accessService := service.NewAccessService(ctx, api, feed, validate)
	chatService := service.NewChatService(api, feed)

	// Getting handlers
	authRoutes := handler.NewAuthRoute(authService, feed)
	routeRoutes := handler.NewRouteRoute(routeService, cityService, routeCollaboratorService)
	pointRoutes := handler.NewPointRoute(pointService)
	peopleRoutes := handler.NewPeopleRoute(collaboratorService, visitorService, accessService)
	tripRoutes := handler.NewTripRoute(tripService, fleetService, impedimentService)
	chatRoutes := handler.NewChatRoute(chatService)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit("1M"))
	e.Use(sessionmw.NewSessionMiddleware(&sessionmw.SessionMiddlewareConfig{
		Session: authService,
		Public:  []string{"/api/login", "/health", sessionmw.LoginPath},
	}))

	// Session
	e.POST("/api/login", authRoutes.Login)
	e.POST("/api/logout", authRoutes.Logout)
	e.GET("/api/notificacoes", authRoutes.GetNotifications)

	// Cities
	e.GET("/api/cidades", routeRoutes.GetCities)
	e.POST("/api/cidades", routeRoutes.CreateCity)

	// Routes
	e.GET("/api/rotas", routeRoutes.GetRoutes)
	e.POST("/api/rotas", routeRoutes.CreateRoute)
	e.POST("/api/rotas/refresh", routeRoutes.RefreshRoutes)
	e.DELETE("/api/rotas/view", routeRoutes.CloseRoutesView)
	e.PATCH("/api/rotas/:id", routeRoutes.UpdateRoute)
	e.PATCH("/api/rotas/:id/ativo", routeRoutes.SetRouteActive)
	e.DELETE("/api/rotas/:id", routeRoutes.DeleteRoute)
	e.GET("/api/rotas/:id/trajeto", routeRoutes.GetTrajectory)
	e.GET("/api/rotas/:id/colaboradores", routeRoutes.GetRouteCollaborators)
	e.PUT("/api/rotas/:id/colaboradores/:cid", routeRoutes.MoveCollaborator)
	e.DELETE("/api/rotas/:id/colaboradores/:cid", routeRoutes.RemoveCollaborator)
	e.PUT("/api/rotas/:id/lideres/:cid", routeRoutes.ToggleLeader)

	// Points
	e.GET("/api/pontos", pointRoutes.GetPoints)
	e.POST("/api/pontos", pointRoutes.CreatePoint)
	e.PUT("/api/pontos/:id", pointRoutes.UpdatePoint)
	e.DELETE("/api/pontos/:id", pointRoutes.DeletePoint)

	// People
	e.GET("/api/colaboradores", peopleRoutes.GetCollaborators)
	e.GET("/api/colaboradores/:id", peopleRoutes.GetCollaborator)
	e.GET("/api/visitantes", peopleRoutes.GetVisitors)
	e.POST("/api/visitantes", peopleRoutes.CreateVisitor)

	// Gate
	e.GET("/api/acessos", peopleRoutes.GetOpenAccesses)
	e.GET("/api/acessos/historico", peopleRoutes.GetAccessHistory)
	e.POST("/api/acessos/entrada", peopleRoutes.RegisterEntry)
	e.POST("/api/acessos/:id/saida", peopleRoutes.RegisterExit)

	// Trips and fleet
	e.GET("/api/viagens", tripRoutes.GetTrips)
	e.POST("/api/viagens", tripRoutes.CreateTrip)
	e.PUT("/api/viagens/:id", tripRoutes.UpdateTrip)
	e.GET("/api/viagens/:id/embarques", tripRoutes.GetBoardings)
	e.GET("/api/veiculos", tripRoutes.GetVehicles)
	e.GET("/api/veiculos/:id", tripRoutes.GetVehicle)
	e.GET("/api/motoristas", tripRoutes.GetDrivers)
	e.GET("/api/motoristas/:id", tripRoutes.GetDriver)
	e.GET("/api/impedimentos", tripRoutes.GetImpediments)
	e.GET("/api/impedimentos/:id", tripRoutes.GetImpediment)

	// Assistant
	e.GET("/api/chat", chatRoutes.Ask)

	// Docker Compose healthcheck
	e.GET("/health", healthCheckRoute)

	go func() {
		if err := e.Start(cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server stopped: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Errorf("graceful shutdown failed: %v", err)
	}
}

func loadProdEnv() {
	ctx := context.Background()

	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = "us-east-2"
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	client := ssm.NewFromConfig(cfg)
	paginator := ssm.NewGetParametersByPathPaginator(client, &ssm.GetParametersByPathInput{
		Path:           aws.String(envVarsPrefix),
		WithDecryption: aws.Bool(true),
		Recursive:      aws.Bool(true),
	})

	prefixLength := len(envVarsPrefix)
	loaded := 0
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			log.Fatalf("unable to load prod environment, %v", err)
		}

		// Export vars
		for _, param := range out.Parameters {
			key := (*param.Name)[prefixLength:]
			if enverr := os.Setenv(key, *param.Value); enverr != nil {
				log.Fatalf("unable to set environment variable, %v", enverr)
			}
			loaded++
		}
	}
	log.Debugf("loaded %d prod environment variables", loaded)
}

func healthCheckRoute(c echo.Context) error {
	return c.String(200, "OK")
}
