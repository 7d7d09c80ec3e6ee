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

	"github.com/hrsuite/hr-backend-go/internal/config"
	appHTTP "github.com/hrsuite/hr-backend-go/internal/handler/http"
	"github.com/hrsuite/hr-backend-go/internal/pkg/cron"
	"github.com/hrsuite/hr-backend-go/internal/pkg/database"
	"github.com/hrsuite/hr-backend-go/internal/pkg/email"
	"github.com/hrsuite/hr-backend-go/internal/pkg/jwt"
	"github.com/hrsuite/hr-backend-go/internal/pkg/oauth"
	"github.com/hrsuite/hr-backend-go/internal/pkg/sse"
	"github.com/hrsuite/hr-backend-go/internal/pkg/storage"
	"github.com/hrsuite/hr-backend-go/internal/repository/postgresql"
	absenceService "github.com/hrsuite/hr-backend-go/internal/service/absence"
	announcementService "github.com/hrsuite/hr-backend-go/internal/service/announcement"
	attendanceService "github.com/hrsuite/hr-backend-go/internal/service/attendance"
	auditService "github.com/hrsuite/hr-backend-go/internal/service/audit"
	authService "github.com/hrsuite/hr-backend-go/internal/service/auth"
	employeeService "github.com/hrsuite/hr-backend-go/internal/service/employee"
	leaveService "github.com/hrsuite/hr-backend-go/internal/service/leave"
	notificationService "github.com/hrsuite/hr-backend-go/internal/service/notification"
	positionService "github.com/hrsuite/hr-backend-go/internal/service/position"
	userService "github.com/hrsuite/hr-backend-go/internal/service/user"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		os.Exit(1)
	}
	defer db.Close()

	// Repositories
	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	positionRepo := postgresql.NewPositionRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	absenceRepo := postgresql.NewAbsenceRepository(db)
	leaveRepo := postgresql.NewLeaveRequestRepository(db)
	announcementRepo := postgresql.NewAnnouncementRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)
	auditRepo := postgresql.NewAuditLogRepository(db)

	// Infrastructure
	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	var googleService oauth.GoogleService
	if cfg.GoogleOAuthEnabled() {
		googleService = oauth.NewGoogleService(
			cfg.OAuth2Google.ClientID,
			cfg.OAuth2Google.ClientSecret,
			cfg.OAuth2Google.RedirectURL,
			cfg.OAuth2Google.Scopes,
		)
	}

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
		if err != nil {
			fmt.Println("Error initializing local storage:", err)
			os.Exit(1)
		}
	default:
		fmt.Println("Unsupported storage type:", cfg.Storage.Type)
		os.Exit(1)
	}

	mailer := email.NewMailer(cfg.SMTP)
	hub := sse.NewHub()

	// Background services
	notificationSvc := notificationService.NewNotificationService(notificationRepo, hub, mailer, notificationService.Config{})
	auditSvc := auditService.NewAuditService(auditRepo, auditService.Config{})

	// Business services
	authSvc := authService.NewAuthService(userRepo, jwtService, auditSvc, notificationSvc, mailer, cfg.App.FrontendURL)
	userSvc := userService.NewUserService(userRepo, auditSvc, notificationSvc)
	employeeSvc := employeeService.NewEmployeeService(db, employeeRepo, userRepo, positionRepo, auditSvc, notificationSvc)
	positionSvc := positionService.NewPositionService(positionRepo, auditSvc)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, employeeRepo)
	absenceSvc := absenceService.NewAbsenceService(absenceRepo, employeeRepo, fileStorage, auditSvc, notificationSvc)
	leaveSvc := leaveService.NewLeaveService(leaveRepo, employeeRepo, auditSvc, notificationSvc)
	announcementSvc := announcementService.NewAnnouncementService(announcementRepo, employeeRepo, auditSvc, notificationSvc)

	// Scheduled jobs
	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceRepo, employeeRepo, notificationSvc).RegisterJobs(scheduler)
	scheduler.Start()

	router := appHTTP.NewRouter(cfg, jwtService, appHTTP.Handlers{
		Auth:         appHTTP.NewAuthHandler(authSvc, jwtService, googleService),
		User:         appHTTP.NewUserHandler(userSvc),
		Employee:     appHTTP.NewEmployeeHandler(employeeSvc),
		Position:     appHTTP.NewPositionHandler(positionSvc),
		Attendance:   appHTTP.NewAttendanceHandler(attendanceSvc),
		Absence:      appHTTP.NewAbsenceHandler(absenceSvc),
		Leave:        appHTTP.NewLeaveHandler(leaveSvc),
		Announcement: appHTTP.NewAnnouncementHandler(announcementSvc),
		Notification: appHTTP.NewNotificationHandler(notificationSvc),
		Audit:        appHTTP.NewAuditHandler(auditSvc),
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		slog.Info("Server started", "addr", server.Addr, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	slog.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}

	scheduler.Stop()
	notificationSvc.Stop()
	auditSvc.Stop()
}
