package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/authentication"
	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/configuration"
	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/controllers"
	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/cronjobs"
	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/events"
	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/monitoring"
	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/notification"
	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/payment"
	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/repository"
	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/routes"
	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/search"
	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/services"
	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/sse"
	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func main() {
	cfg := configuration.LoadConfig()

	logger, err := configuration.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	if cfg.SentryDSN != "" {
		if err := monitoring.InitSentry(cfg.SentryDSN, cfg.AppEnv, cfg.Version); err != nil {
			logger.Warn("Sentry disabled", zap.Error(err))
		}
		defer sentry.Flush(2 * time.Second)
	}
	monitoring.Init()

	//Perform application initialization
	if err := configuration.ConfigDB(cfg); err != nil {
		logger.Fatal("Database setup failed", zap.Error(err))
	}
	defer configuration.CloseDB()

	if err := configuration.InitRedis(cfg); err != nil {
		logger.Fatal("Redis setup failed", zap.Error(err))
	}
	cache := configuration.NewRedisCache(configuration.Client)
	defer cache.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	centerRepo := repository.NewCenterRepository(configuration.DB)
	doctorRepo := repository.NewDoctorRepository(configuration.DB)
	appointmentRepo := repository.NewAppointmentRepository(configuration.DB)
	queryRepo := repository.NewQueryRepository(configuration.DB)
	adminRepo := repository.NewAdminRepository(configuration.DB)

	tokens := authentication.NewTokenManager(authentication.Secrets{
		Admin:   cfg.AdminJWTSecret,
		Clinic:  cfg.ClinicJWTSecret,
		Patient: cfg.PatientJWTSecret,
	}, cfg.TokenTTL, cache)
	mailer := notification.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPEmail, cfg.SMTPPassword)
	hub := sse.NewHub(logger)

	// Optional integrations stay as nil interfaces when they are not configured.
	var (
		indexer  events.DoctorIndexer
		searcher services.DoctorSearcher
		pusher   events.DevicePusher
	)
	if cfg.ElasticsearchURL != "" {
		index, err := search.NewDoctorIndex(cfg.ElasticsearchURL)
		if err != nil {
			logger.Warn("Elasticsearch unavailable, doctor search uses SQL", zap.Error(err))
		} else {
			indexer, searcher = index, index
			go reindexDoctors(ctx, doctorRepo, index, logger)
		}
	}
	if cfg.FirebaseCredPath != "" {
		p, err := notification.NewPusher(ctx, cfg.FirebaseCredPath, centerRepo, logger)
		if err != nil {
			logger.Warn("Push notifications disabled", zap.Error(err))
		} else {
			pusher = p
		}
	}

	var publisher events.Publisher = events.NewLocalPublisher(events.NewDispatcher(indexer, hub, pusher, logger), logger)
	if cfg.KafkaBroker != "" {
		kp, err := events.NewKafkaPublisher(cfg.KafkaBroker)
		if err != nil {
			logger.Warn("Kafka unavailable, dispatching events in-process", zap.Error(err))
		} else {
			publisher = kp
			// Index and push once per cluster; every replica feeds its own dashboards.
			shared := events.NewKafkaConsumer(cfg.KafkaBroker, events.NewDispatcher(indexer, nil, pusher, logger), logger)
			shared.Start(ctx)
			defer shared.Stop()
			broadcast := events.NewBroadcastConsumer(cfg.KafkaBroker, instanceID(), events.NewDispatcher(nil, hub, nil, logger), logger)
			broadcast.Start(ctx)
			defer broadcast.Stop()
		}
	}
	defer publisher.Close()

	clinicService := services.NewClinicService(centerRepo, doctorRepo, tokens, cache, publisher, logger)
	doctorService := services.NewDoctorService(doctorRepo, centerRepo, appointmentRepo, searcher, cache, publisher, time.Now, logger)
	appointmentService := services.NewAppointmentService(services.AppointmentDeps{
		Appointments: appointmentRepo,
		Doctors:      doctorRepo,
		Centers:      centerRepo,
		Gateway:      payment.NewRazorpay(cfg.RazorpayKeyID, cfg.RazorpayKeySecret),
		Mailer:       mailer,
		Publisher:    publisher,
		Now:          time.Now,
		ServiceFee:   cfg.BookingServiceFee,
		Log:          logger,
	})
	queryService := services.NewQueryService(queryRepo, centerRepo, mailer, logger)
	adminService := services.NewAdminService(adminRepo, centerRepo, appointmentRepo, queryRepo, tokens, time.Now, logger)
	patientService := services.NewPatientService(
		authentication.NewTwilioVerifier(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioServiceID),
		cache, tokens, logger)

	if err := adminService.Seed(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		logger.Fatal("Admin seed failed", zap.Error(err))
	}

	scheduler, err := cronjobs.NewRunner(appointmentService, logger).Start(cfg.ReminderAt)
	if err != nil {
		logger.Fatal("Failed to schedule jobs", zap.Error(err), zap.String("reminder_at", cfg.ReminderAt))
	}
	defer scheduler.Stop()

	uploads := controllers.NewUploads(cfg.UploadDir, "/uploads", logger)
	r := routes.SetupRouter(routes.Handlers{
		Tokens:       tokens,
		Centers:      controllers.NewCenterController(clinicService),
		Clinic:       controllers.NewClinicController(clinicService, tokens),
		Doctors:      controllers.NewDoctorController(doctorService, uploads),
		Appointments: controllers.NewAppointmentController(appointmentService),
		Queries:      controllers.NewQueryController(queryService, adminService),
		Admin:        controllers.NewAdminController(adminService, tokens, uploads),
		Patients:     controllers.NewPatientController(patientService),
		Health: controllers.NewHealthController(cfg.Version, map[string]controllers.Pinger{
			"postgres": pingDB,
			"redis":    cache.Ping,
		}),
		Queue: hub,
	}, routes.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		UploadDir:      cfg.UploadDir,
	}, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}
	go func() {
		logger.Info("Server started", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
}

// instanceID names this replica; the hostname is the pod name under Kubernetes.
func instanceID() string {
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return uuid.NewString()
}

func pingDB(ctx context.Context) error {
	sqlDB, err := configuration.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// reindexDoctors loads every bookable doctor into the search index.
func reindexDoctors(ctx context.Context, doctors repository.DoctorRepository, index *search.DoctorIndex, logger *zap.Logger) {
	list, err := doctors.Search(ctx, repository.DoctorSearch{})
	if err != nil {
		logger.Warn("Doctor reindex skipped", zap.Error(err))
		return
	}
	for _, d := range list {
		if err := index.IndexDoctor(ctx, d); err != nil {
			logger.Warn("Failed to index doctor", zap.Uint("doctor_id", d.ID), zap.Error(err))
		}
	}
	logger.Info("Doctor search index rebuilt", zap.Int("doctors", len(list)))
}
