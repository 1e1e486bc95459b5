package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"

	"github.com/sbilibin2017/sport-together/internal/config"
	"github.com/sbilibin2017/sport-together/internal/credentials"
	"github.com/sbilibin2017/sport-together/internal/handlers"
	"github.com/sbilibin2017/sport-together/internal/idgen"
	"github.com/sbilibin2017/sport-together/internal/jobs"
	"github.com/sbilibin2017/sport-together/internal/jwt"
	"github.com/sbilibin2017/sport-together/internal/logger"
	"github.com/sbilibin2017/sport-together/internal/middlewares"
	"github.com/sbilibin2017/sport-together/internal/repositories"
	"github.com/sbilibin2017/sport-together/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/sbilibin2017/sport-together/docs"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// @title sport-together API
// @version 1.0.0
// @description Pickup game matchmaking: accounts, games and game membership
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Starting service version %s, commit %s, build %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// app bundles the services the HTTP layer is built on.
type app struct {
	auth       *services.AuthService
	games      *services.GameService
	membership *services.MembershipService
	tokens     *jwt.JWT
}

// run connects to PostgreSQL, Redis and Kafka, wires the services, starts the
// reconcile job and serves HTTP until a shutdown signal arrives.
func run(ctx context.Context, cfg config.Config) error {
	if err := logger.Initialize(cfg.LogLevel, "service", "sport-together", "version", buildVersion); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Sync()
	logger.Log.Infof("Logger initialized with level %s", cfg.LogLevel)

	// Connect to PostgreSQL
	logger.Log.Infof("Connecting to PostgreSQL at %s:%d/%s", cfg.PGHost, cfg.PGPort, cfg.PGDB)
	db, err := sqlx.ConnectContext(ctx, "pgx", cfg.PostgresDSN())
	if err != nil {
		return fmt.Errorf("postgres connection error: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.PGMaxOpenConns)
	db.SetMaxIdleConns(cfg.PGMaxIdleConns)
	if err := repositories.Migrate(ctx, db); err != nil {
		return fmt.Errorf("postgres migration failed: %w", err)
	}

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr(),
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		PoolSize:     cfg.RedisPoolSize,
		MinIdleConns: cfg.RedisMinIdleConns,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection error: %w", err)
	}
	defer rdb.Close()

	// Kafka is optional
	var events services.KafkaWriter
	if cfg.KafkaEnabled() {
		w := &kafka.Writer{
			Addr:                   kafka.TCP(cfg.KafkaBrokers...),
			Topic:                  cfg.KafkaTopic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
		}
		defer w.Close()
		events = w
		logger.Log.Infow("Kafka publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}

	tokens := jwt.New(jwt.WithSecretKey(cfg.JWTSecretKey), jwt.WithExpiration(cfg.SessionTTL))

	// Initialize repositories
	userReadRepo := repositories.NewUserReadRepository(db)
	userWriteRepo := repositories.NewUserWriteRepository(db)
	gameReadRepo := repositories.NewGameReadRepository(db)
	gameWriteRepo := repositories.NewGameWriteRepository(db)
	intentRepo := repositories.NewIntentRepository(db)
	sessionRepo := repositories.NewSessionRepository(rdb)
	transactor := repositories.NewTransactor(db)

	// Initialize services
	authService := services.NewAuthService(userReadRepo, userWriteRepo,
		credentials.NewVerifier(cfg.KDFRounds, cfg.KDFKeyBytes), tokens, sessionRepo,
		idgen.UserIDs(), cfg.SessionTTL)
	membershipService := services.NewMembershipService(userReadRepo, userWriteRepo,
		gameReadRepo, gameWriteRepo, intentRepo, transactor, sessionRepo, events)
	gameService := services.NewGameService(gameReadRepo, gameWriteRepo, userReadRepo,
		membershipService, transactor, idgen.GameIDs(), events)

	jobCtx, stopJobs := context.WithCancel(ctx)
	defer stopJobs()
	jobDone := jobs.StartReconcileJob(jobCtx, cfg,
		services.NewReconciler(intentRepo, membershipService, cfg.ReconcileGrace))

	srv := &http.Server{
		Addr: cfg.HTTPAddr(),
		Handler: newRouter(cfg, app{
			auth:       authService,
			games:      gameService,
			membership: membershipService,
			tokens:     tokens,
		}),
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s", cfg.HTTPAddr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	stopJobs()
	<-jobDone

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}

// newRouter mounts every route on a chi router.
func newRouter(cfg config.Config, a app) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(logger.Log))
	r.NotFound(handlers.NotFoundHandler())

	// Public routes
	r.Post("/register", handlers.NewRegisterHandler(a.auth))
	r.Post("/login", handlers.NewLoginHandler(a.auth))

	// Routes that need a live session
	r.Group(func(r chi.Router) {
		r.Use(middlewares.AuthMiddleware(a.tokens, a.auth))

		r.Post("/games", handlers.NewCreateGameHandler(a.games))
		r.Post("/games/read", handlers.NewReadGamesHandler(a.games))
		r.Post("/games/search", handlers.NewSearchGamesHandler(a.games))
		r.Post("/games/update", handlers.NewUpdateGameHandler(a.games))
		r.Post("/games/join", handlers.NewJoinGameHandler(a.membership))
		r.Post("/games/withdraw", handlers.NewWithdrawGameHandler(a.membership))

		r.Get("/me", handlers.NewProfileHandler(a.auth))
		r.Post("/me/update", handlers.NewUpdateProfileHandler(a.auth))
		r.Delete("/me", handlers.NewDeleteAccountHandler(a.membership))
		r.Get("/me/games", handlers.NewUserGamesHandler(a.membership))
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s/swagger/doc.json", cfg.HTTPAddr())),
	))

	return r
}
