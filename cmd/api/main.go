package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/checkclock-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/checkclock-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/checkclock-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/checkclock-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/checkclock-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/checkclock-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/checkclock-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/checkclock-backend-go/internal/pkg/storage"
	"github.com/cmlabs-hris/checkclock-backend-go/internal/repository/postgresql"
	checkclockService "github.com/cmlabs-hris/checkclock-backend-go/internal/service/checkclock"
	"github.com/cmlabs-hris/checkclock-backend-go/internal/service/file"
	notificationService "github.com/cmlabs-hris/checkclock-backend-go/internal/service/notification"
	reportService "github.com/cmlabs-hris/checkclock-backend-go/internal/service/report"
	shiftService "github.com/cmlabs-hris/checkclock-backend-go/internal/service/shift"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Pool.Close()

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	checkClockRepo := postgresql.NewCheckClockRepository(db)
	shiftSettingRepo := postgresql.NewShiftSettingRepository(db)
	shiftAssignmentRepo := postgresql.NewShiftAssignmentRepository(db)
	reportRepo := postgresql.NewReportRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(
			cfg.Storage.BasePath,
			cfg.Storage.BaseURL,
		)
		if err != nil {
			log.Fatal("Failed to initialize local storage:", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	fileService := file.NewFileService(fileStorage)

	hub := sse.NewHub()
	notificationSvc := notificationService.NewNotificationService(notificationRepo, hub, notificationService.Config{})

	systemClock := clock.System()

	scheduleResolver := shiftService.NewScheduleResolver(shiftAssignmentRepo)
	checkClockSvc := checkclockService.NewCheckClockService(
		checkClockRepo,
		employeeRepo,
		userRepo,
		scheduleResolver,
		notificationSvc,
		fileService,
		systemClock,
		cfg.Attendance.DefaultClockInMinutes,
		cfg.Attendance.AutoClockOutMinutes,
	)
	shiftSvc := shiftService.NewShiftService(
		shiftSettingRepo,
		shiftAssignmentRepo,
		employeeRepo,
		userRepo,
		notificationSvc,
		systemClock,
	)
	reportSvc := reportService.NewReportService(reportRepo, cfg.Attendance.LeaveQuotaDays)

	checkClockHandler := appHTTP.NewCheckClockHandler(checkClockSvc)
	scheduleHandler := appHTTP.NewScheduleHandler(shiftSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)
	notificationHandler := appHTTP.NewNotificationHandler(notificationSvc, jwtService)

	router := appHTTP.NewRouter(
		jwtService,
		checkClockHandler,
		scheduleHandler,
		reportHandler,
		notificationHandler,
	)

	scheduler := cron.NewScheduler()
	cron.NewCheckClockJobs(checkClockSvc).RegisterJobs(scheduler)
	scheduler.Start()

	port := fmt.Sprintf(":%d", cfg.App.Port)
	server := &http.Server{
		Addr:    port,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}

	scheduler.Stop()
	notificationSvc.Stop()
}
