package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/escuela-horarios/attendance-backend/internal/config"
	"github.com/escuela-horarios/attendance-backend/internal/domain/attendance"
	"github.com/escuela-horarios/attendance-backend/internal/domain/catalog"
	"github.com/escuela-horarios/attendance-backend/internal/domain/schedule"
	"github.com/escuela-horarios/attendance-backend/internal/domain/user"
	appHTTP "github.com/escuela-horarios/attendance-backend/internal/handler/http"
	"github.com/escuela-horarios/attendance-backend/internal/pkg/cache"
	"github.com/escuela-horarios/attendance-backend/internal/pkg/cron"
	"github.com/escuela-horarios/attendance-backend/internal/pkg/database"
	"github.com/escuela-horarios/attendance-backend/internal/pkg/export"
	"github.com/escuela-horarios/attendance-backend/internal/pkg/jwt"
	"github.com/escuela-horarios/attendance-backend/internal/pkg/storage"
	"github.com/escuela-horarios/attendance-backend/internal/repository/cached"
	"github.com/escuela-horarios/attendance-backend/internal/repository/memory"
	"github.com/escuela-horarios/attendance-backend/internal/repository/postgresql"
	attendanceService "github.com/escuela-horarios/attendance-backend/internal/service/attendance"
	serviceAuth "github.com/escuela-horarios/attendance-backend/internal/service/auth"
	reportService "github.com/escuela-horarios/attendance-backend/internal/service/report"
	scheduleService "github.com/escuela-horarios/attendance-backend/internal/service/schedule"
	"golang.org/x/crypto/bcrypt"
)

type repositories struct {
	users      user.UserRepository
	slots      schedule.SlotRepository
	attendance attendance.AttendanceRepository
	catalog    catalog.CatalogRepository
	close      func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel()})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := openRepositories(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to open store: ", err)
	}
	defer repos.close()

	catalogRepo := repos.catalog
	if cfg.Redis.Host != "" {
		redisCache, err := cache.NewRedisCache(ctx, cfg.RedisAddr(), cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal("Failed to connect to redis: ", err)
		}
		defer redisCache.Close()
		catalogRepo = cached.NewCatalogRepository(catalogRepo, redisCache, cfg.Redis.TTL)
		slog.Info("Catalog lookup cache enabled", "addr", cfg.RedisAddr(), "ttl", cfg.Redis.TTL)
	}

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		log.Fatal("Failed to initialize local storage: ", err)
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	authService := serviceAuth.NewAuthService(repos.users, JWTService)
	scheduleSvc := scheduleService.NewScheduleService(repos.slots, catalogRepo)
	attendanceSvc := attendanceService.NewAttendanceService(repos.attendance, repos.slots)
	reportSvc := reportService.NewReportService(
		repos.slots,
		repos.attendance,
		catalogRepo,
		fileStorage,
		export.NewPDFExporter(),
		export.NewXLSXExporter(),
	)

	if cfg.AutoPending.Enabled {
		scheduler := cron.NewScheduler()
		cron.NewAttendanceJobs(attendanceSvc).RegisterJobs(scheduler, cfg.AutoPending.Interval)
		scheduler.Start(ctx)
		defer scheduler.Stop()
	}

	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{
			Env:         cfg.App.Env,
			FrontendURL: cfg.App.FrontendURL,
			LogLevel:    cfg.LogLevel(),
			FilesDir:    fileStorage.BasePath(),
		},
		JWTService,
		appHTTP.NewAuthHandler(authService),
		appHTTP.NewScheduleHandler(scheduleSvc),
		appHTTP.NewAttendanceHandler(attendanceSvc),
		appHTTP.NewReportHandler(reportSvc),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", server.Addr, "store", cfg.App.StoreDriver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}
	slog.Info("Server stopped")
}

func openRepositories(ctx context.Context, cfg *config.Config) (repositories, error) {
	switch cfg.App.StoreDriver {
	case config.StoreDriverMemory:
		hash, err := bcrypt.GenerateFromPassword([]byte(cfg.App.DemoPassword), bcrypt.DefaultCost)
		if err != nil {
			return repositories{}, fmt.Errorf("hash demo password: %w", err)
		}
		store := memory.NewStore()
		memory.SeedDemo(store, string(hash))
		slog.Warn("Using in-memory store with demo data")
		return repositories{
			users:      memory.NewUserRepository(store),
			slots:      memory.NewSlotRepository(store),
			attendance: memory.NewAttendanceRepository(store),
			catalog:    memory.NewCatalogRepository(store),
			close:      func() {},
		}, nil

	default:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
		if err != nil {
			return repositories{}, fmt.Errorf("connect database: %w", err)
		}
		if err := postgresql.Migrate(ctx, db); err != nil {
			db.Close()
			return repositories{}, err
		}
		return repositories{
			users:      postgresql.NewUserRepository(db),
			slots:      postgresql.NewSlotRepository(db),
			attendance: postgresql.NewAttendanceRepository(db),
			catalog:    postgresql.NewCatalogRepository(db),
			close:      db.Close,
		}, nil
	}
}
