package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/attendance-reconciliation/internal/config"
	"github.com/cmlabs-hris/attendance-reconciliation/internal/domain/anomaly"
	"github.com/cmlabs-hris/attendance-reconciliation/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-reconciliation/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-reconciliation/internal/domain/location"
	"github.com/cmlabs-hris/attendance-reconciliation/internal/domain/shift"
	appHTTP "github.com/cmlabs-hris/attendance-reconciliation/internal/handler/http"
	"github.com/cmlabs-hris/attendance-reconciliation/internal/pkg/clock"
	"github.com/cmlabs-hris/attendance-reconciliation/internal/pkg/cooldown"
	"github.com/cmlabs-hris/attendance-reconciliation/internal/pkg/cron"
	"github.com/cmlabs-hris/attendance-reconciliation/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-reconciliation/internal/pkg/hrisapi"
	"github.com/cmlabs-hris/attendance-reconciliation/internal/pkg/jwt"
	appRedis "github.com/cmlabs-hris/attendance-reconciliation/internal/pkg/redis"
	"github.com/cmlabs-hris/attendance-reconciliation/internal/repository/memory"
	"github.com/cmlabs-hris/attendance-reconciliation/internal/repository/postgresql"
	redisRepo "github.com/cmlabs-hris/attendance-reconciliation/internal/repository/redis"
	anomalyService "github.com/cmlabs-hris/attendance-reconciliation/internal/service/anomaly"
	attendanceService "github.com/cmlabs-hris/attendance-reconciliation/internal/service/attendance"
	directoryService "github.com/cmlabs-hris/attendance-reconciliation/internal/service/directory"
)

const sweepInterval = 5 * time.Minute

type stores struct {
	attendance attendance.AttendanceRepository
	employee   employee.EmployeeRepository
	shift      shift.ShiftRepository
	location   location.LocationRepository
	// tx is nil for stores without transactions.
	tx    attendance.Transactor
	close func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logger := appHTTP.NewLogger(cfg.App)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	data, err := openStores(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open attendance store", slog.String("driver", cfg.Store.Driver), slog.Any("error", err))
		os.Exit(1)
	}
	defer data.close()

	var stateRepo anomaly.StateRepository
	var cooldownStore cooldown.Store
	if cfg.Redis.Addr != "" {
		rdb, err := appRedis.NewClient(ctx, cfg.Redis)
		if err != nil {
			logger.Error("failed to connect to redis", slog.String("addr", cfg.Redis.Addr), slog.Any("error", err))
			os.Exit(1)
		}
		defer rdb.Close()
		stateRepo = redisRepo.NewAnomalyStateRepository(rdb)
		cooldownStore = redisRepo.NewCooldownStore(rdb)
	} else {
		logger.Warn("REDIS_ADDR not set, gps sessions and submit cooldowns are kept in memory")
		stateRepo = memory.NewAnomalyStateRepository(clock.System)
		cooldownStore = memory.NewCooldownStore()

		sweeps := cron.NewSweepJobs(clock.System, logger)
		sweeps.Add("gps_sessions", stateRepo)
		sweeps.Add("submit_cooldowns", cooldownStore)

		scheduler := cron.NewScheduler(logger)
		sweeps.RegisterJobs(scheduler, sweepInterval)
		scheduler.Start(ctx)
		defer scheduler.Stop()
	}

	policy := anomaly.BaselineAlwaysAdvance
	if cfg.Anomaly.KeepBaselineOnSuspicious {
		policy = anomaly.BaselineKeepOnSuspicious
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	guard := cooldown.NewGuard(clock.System, cooldownStore, cfg.Submit.Cooldown)

	anomalySvc := anomalyService.NewAnomalyService(stateRepo, clock.System, cfg.Anomaly.SessionTTL, policy, logger)
	attendanceSvc := attendanceService.NewAttendanceService(
		data.attendance,
		data.employee,
		data.shift,
		data.location,
		data.tx,
		guard,
		logger,
	)
	directorySvc := directoryService.NewDirectoryService(data.employee, data.shift, data.location)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	anomalyHandler := appHTTP.NewAnomalyHandler(anomalySvc)
	directoryHandler := appHTTP.NewDirectoryHandler(directorySvc)

	router := appHTTP.NewRouter(
		cfg.App,
		JWTService,
		logger,
		attendanceHandler,
		anomalyHandler,
		directoryHandler,
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server running", slog.String("addr", server.Addr), slog.String("store", cfg.Store.Driver))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}

func openStores(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*stores, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverREST:
		client := hrisapi.NewClient(cfg.HRISAPI, logger)
		return &stores{
			attendance: hrisapi.NewAttendanceRepository(client),
			employee:   hrisapi.NewEmployeeRepository(client),
			shift:      hrisapi.NewShiftRepository(client),
			location:   hrisapi.NewLocationRepository(client),
			close:      func() {},
		}, nil
	case config.StoreDriverPostgres:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
		if err != nil {
			return nil, err
		}
		return &stores{
			attendance: postgresql.NewAttendanceRepository(db),
			employee:   postgresql.NewEmployeeRepository(db),
			shift:      postgresql.NewShiftRepository(db),
			location:   postgresql.NewLocationRepository(db),
			tx:         postgresql.NewTransactor(db),
			close:      db.Close,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}
