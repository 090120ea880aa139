package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"moviecatalog/auth"
	"moviecatalog/cache"
	"moviecatalog/director"
	"moviecatalog/genre"
	"moviecatalog/httpserver"
	"moviecatalog/movie"
	"moviecatalog/pkg/config"
	"moviecatalog/pkg/hasher"
	"moviecatalog/pkg/jwt"
	"moviecatalog/pkg/logger"
	"moviecatalog/pkg/sentry"
	"moviecatalog/postgres"
	"moviecatalog/user"

	sentrygo "github.com/getsentry/sentry-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Errorw("server stopped with error", "error", err)
		sentry.Fatal(err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *zap.SugaredLogger) error {
	err := sentrygo.Init(sentrygo.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.AppEnv,
		AttachStacktrace: true,
	})
	if err != nil {
		return err
	}
	defer sentrygo.Flush(sentry.FlushTime)

	db, err := postgres.NewConnection(postgres.Options{
		DBName:   cfg.DB.Name,
		DBUser:   cfg.DB.User,
		Password: cfg.DB.Pass,
		Host:     cfg.DB.Host,
		Port:     strconv.Itoa(cfg.DB.Port),
		SSLMode:  cfg.DB.EnableSSL,
	})
	if err != nil {
		return err
	}

	directorRepo := postgres.NewDirectorRepository(db)
	genreRepo := postgres.NewGenreRepository(db)
	bcrypt := hasher.NewBcrypt(cfg.Auth.HashRounds)
	userService := user.NewUsecase(postgres.NewUserRepository(db), bcrypt)

	var (
		movieService    movie.Service    = movie.NewUsecase(postgres.NewMovieRepository(db), directorRepo, genreRepo)
		directorService director.Service = director.NewUsecase(directorRepo)
		genreService    genre.Service    = genre.NewUsecase(genreRepo)
	)
	if cfg.Redis.Addr != "" {
		rc := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rc.Close()
		movieService = cache.NewMovieService(movieService, rc, cfg.CacheTTL(), log)
		directorService = cache.NewDirectorService(directorService, rc, log)
		genreService = cache.NewGenreService(genreService, rc, log)
		log.Infow("movie cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.CacheTTL())
	}

	tokens := jwt.NewJWTProvider(cfg.Auth.AccessTokenSecret, cfg.Auth.RefreshTokenSecret, cfg.AccessTTL(), cfg.RefreshTTL())
	authService := auth.NewUsecase(userService, postgres.NewLoginAttemptRepository(db), bcrypt, tokens)

	server, err := httpserver.New(cfg,
		httpserver.WithLogger(log),
		httpserver.WithMovieService(movieService),
		httpserver.WithDirectorService(directorService),
		httpserver.WithGenreService(genreService),
		httpserver.WithUserService(userService),
		httpserver.WithAuthService(authService),
	)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infow("server started", "addr", server.Addr)
		errCh <- server.Start()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
