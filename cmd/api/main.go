package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	authhttp "github.com/syncroapp/syncro-backend/internal/auth/http"
	authservice "github.com/syncroapp/syncro-backend/internal/auth/service"
	checkinhttp "github.com/syncroapp/syncro-backend/internal/checkin/http"
	checkinrepo "github.com/syncroapp/syncro-backend/internal/checkin/repository"
	checkinservice "github.com/syncroapp/syncro-backend/internal/checkin/service"
	"github.com/syncroapp/syncro-backend/internal/common/clock"
	"github.com/syncroapp/syncro-backend/internal/common/config"
	"github.com/syncroapp/syncro-backend/internal/common/constants"
	commoncrypto "github.com/syncroapp/syncro-backend/internal/common/crypto"
	"github.com/syncroapp/syncro-backend/internal/common/db"
	commonhttp "github.com/syncroapp/syncro-backend/internal/common/http"
	"github.com/syncroapp/syncro-backend/internal/common/httpmetrics"
	"github.com/syncroapp/syncro-backend/internal/common/jwtverify"
	"github.com/syncroapp/syncro-backend/internal/common/logger"
	srv "github.com/syncroapp/syncro-backend/internal/common/server"
	"github.com/syncroapp/syncro-backend/internal/notify"
	projecthttp "github.com/syncroapp/syncro-backend/internal/project/http"
	projectrepo "github.com/syncroapp/syncro-backend/internal/project/repository"
	projectservice "github.com/syncroapp/syncro-backend/internal/project/service"
	resourcehttp "github.com/syncroapp/syncro-backend/internal/resource/http"
	resourcerepo "github.com/syncroapp/syncro-backend/internal/resource/repository"
	resourceservice "github.com/syncroapp/syncro-backend/internal/resource/service"
	"github.com/syncroapp/syncro-backend/internal/resource/storage"
	teamhttp "github.com/syncroapp/syncro-backend/internal/team/http"
	teamrepo "github.com/syncroapp/syncro-backend/internal/team/repository"
	teamservice "github.com/syncroapp/syncro-backend/internal/team/service"
	userrepo "github.com/syncroapp/syncro-backend/internal/user/repository"
)

func main() {
	log, err := logger.New(os.Getenv("LOG_DIR"), "api", os.Getenv("LOG_LEVEL"))
	if err != nil {
		os.Stderr.WriteString(fmt.Sprintf("failed to initialize logger: %v\n", err))
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := db.Migrate(log, cfg.DatabaseURL); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	pool := db.NewPool(log, cfg.DatabaseURL)
	defer pool.Close()
	db.StartPoolMetrics(pool, constants.DBPoolMetricsInterval)

	realClock := clock.NewRealClock()
	hasher := &commoncrypto.BcryptHasher{}
	idGenerator := commoncrypto.NewUUIDGenerator()

	userRepo := userrepo.NewPgRepository(pool)
	teamRepo := teamrepo.NewPgRepository(pool)
	projectRepo := projectrepo.NewPgRepository(pool)
	checkinRepo := checkinrepo.NewPgRepository(pool)
	resourceRepo := resourcerepo.NewPgRepository(pool)

	fileStore, err := storage.NewDiskStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("failed to prepare upload directory: %v", err)
	}

	hub := notify.NewHub(log, cfg.SendTimeout)
	hubCtx, hubCancel := context.WithCancel(context.Background())
	go hub.Run(hubCtx)

	engine := notify.NewEngine(notify.NewTeamRepositoryResolver(teamRepo), hub, log)

	tokens := authservice.NewTokenIssuer(cfg.JWTSecret, constants.AccessTokenTTL, realClock)
	authService := authservice.NewAuthService(authservice.AuthServiceDeps{
		Repo:        userRepo,
		Hasher:      hasher,
		IDGenerator: idGenerator,
		Tokens:      tokens,
		Clock:       realClock,
		Log:         log,
	})
	teamService := teamservice.NewTeamService(teamservice.TeamServiceDeps{
		Teams:       teamRepo,
		Users:       userRepo,
		IDGenerator: idGenerator,
		Log:         log,
	})
	projectService := projectservice.NewProjectService(projectservice.ProjectServiceDeps{
		Projects:    projectRepo,
		Users:       userRepo,
		IDGenerator: idGenerator,
		Log:         log,
	})
	checkinService := checkinservice.NewCheckinService(checkinservice.CheckinServiceDeps{
		Checkins:    checkinRepo,
		Notifier:    engine,
		IDGenerator: idGenerator,
		Clock:       realClock,
		Log:         log,
	})
	resourceService := resourceservice.NewResourceService(resourceservice.ResourceServiceDeps{
		Resources:   resourceRepo,
		Teams:       teamRepo,
		Files:       fileStore,
		Notifier:    engine,
		IDGenerator: idGenerator,
		Clock:       realClock,
		Log:         log,
	})

	wsHandler := notify.NewHandler(hub, cfg.AllowedOrigins, notify.ClientConfig{
		WriteWait:   cfg.WebSocketWriteWait,
		PongWait:    cfg.WebSocketPongWait,
		PingPeriod:  cfg.WebSocketPingPeriod,
		SendBufSize: cfg.WebSocketSendBuf,
	}, log)

	r := chi.NewRouter()
	r.Use(commonhttp.RecoveryMiddleware(log))
	r.Use(commonhttp.TraceIDMiddleware)
	r.Use(httpmetrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Trace-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", commonhttp.HealthHandler(log))
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/ws", wsHandler.HandleWebSocket)
	// Stored file resources are downloaded straight from the upload dir.
	r.Handle("/uploads/resources/*", commonhttp.StaticHandler("/uploads/resources/", cfg.UploadDir))

	r.Route("/api", func(r chi.Router) {
		r.Mount("/auth", authhttp.NewHandler(authService, log).Routes())

		r.Group(func(r chi.Router) {
			r.Use(jwtverify.Middleware(cfg.JWTSecret, log))
			r.Mount("/teams", teamhttp.NewHandler(teamService, log).Routes())
			r.Mount("/projects", projecthttp.NewHandler(projectService, log).Routes())
			r.Mount("/checkins", checkinhttp.NewHandler(checkinService, log).Routes())
			r.Mount("/resources", resourcehttp.NewHandler(resourceService, log).Routes())
		})
	})

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: r,
	}

	shutdownHooks := []srv.ShutdownHook{
		func(ctx context.Context) error {
			log.Info("api service: stopping websocket hub")
			hubCancel()
			return nil
		},
	}

	srv.StartWithGracefulShutdownAndHooks(server, log, "api", shutdownHooks)
}
