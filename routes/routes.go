package routes

import (
	"net/http"

	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/authentication"
	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/controllers"
	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/middleware"
	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/monitoring"
	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/sse"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const queueStreamPath = "/api/v1/clinicProfile/queue/stream"

// Handlers are the controllers and middleware the router mounts.
type Handlers struct {
	Tokens       *authentication.TokenManager
	Centers      *controllers.CenterController
	Clinic       *controllers.ClinicController
	Doctors      *controllers.DoctorController
	Appointments *controllers.AppointmentController
	Queries      *controllers.QueryController
	Admin        *controllers.AdminController
	Patients     *controllers.PatientController
	Health       *controllers.HealthController
	Queue        *sse.Hub
}

type Options struct {
	AllowedOrigins []string
	UploadDir      string
}

func SetupRouter(h Handlers, opts Options, log *zap.Logger) *gin.Engine {
	//creates a new Gin engine instance with recovery and our own logging
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.SentryMiddleware())
	r.Use(middleware.PrometheusMetrics())
	r.Use(middleware.ErrorHandler(log))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     opts.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Disposition"},
		AllowCredentials: true,
	}))
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{queueStreamPath})))

	r.GET("/metrics", gin.WrapH(monitoring.Handler()))
	r.StaticFS("/uploads", http.Dir(opts.UploadDir))

	api := r.Group("/api/v1")
	api.GET("/health", h.Health.Health)

	//public routes
	public := api.Group("/public")
	{
		public.GET("/cities", h.Centers.Cities)
		public.GET("/doctors", h.Doctors.Search)
		public.GET("/doctors/:id", h.Doctors.PublicGet)
		public.GET("/doctors/:id/availability", h.Doctors.PublicAvailability)
	}

	//user routes
	user := api.Group("/user")
	{
		user.POST("/otp/send", h.Patients.SendOTP)
		user.POST("/otp/verify", h.Patients.VerifyOTP)
		user.POST("/appointments/create", h.Appointments.Book)
		user.GET("/appointments/:id/receipt", h.Appointments.Receipt)
	}
	patient := user.Group("")
	patient.Use(h.Tokens.PatientAuthMiddleware())
	{
		patient.GET("/appointments", h.Appointments.PatientAppointments)
		patient.PATCH("/appointments/:id/cancel", h.Appointments.CancelByPatient)
		patient.POST("/appointments/:id/payment/order", h.Appointments.CreatePaymentOrder)
		patient.POST("/appointments/:id/payment/verify", h.Appointments.VerifyPayment)
	}

	api.POST("/compleint/create", h.Queries.CreateFromUser)

	//Admin routes
	api.POST("/admin/login", h.Admin.Login)

	adminAuth := h.Tokens.AdminAuthMiddleware()
	admin := api.Group("/admin", adminAuth)
	{
		admin.POST("/logout", h.Admin.Logout)
		admin.GET("/dashboard", h.Admin.Dashboard)
	}
	adminProfile := api.Group("/admin-profile", adminAuth)
	{
		adminProfile.GET("/profile", h.Admin.Profile)
		adminProfile.PUT("/profile", h.Admin.UpdateProfile)
		adminProfile.PUT("/change-password", h.Admin.ChangePassword)
		adminProfile.POST("/profile-image", h.Admin.UploadProfileImage)
	}
	api.POST("/clinicalCenters/register", adminAuth, h.Centers.Register)
	centers := api.Group("/all-centers", adminAuth)
	{
		centers.GET("", h.Centers.List)
		centers.GET("/:id", h.Centers.Get)
		centers.PUT("/:id", h.Centers.Update)
		centers.PATCH("/:id/status", h.Centers.SetStatus)
		centers.PATCH("/:id/approve", h.Centers.Approve)
		centers.DELETE("/:id", h.Centers.Delete)
	}
	queries := api.Group("/query", adminAuth)
	{
		queries.GET("/all", h.Queries.List)
		queries.PATCH("/:type/:id/status", h.Queries.UpdateStatus)
		queries.POST("/:type/:id/reply", h.Queries.Reply)
	}

	//Clinic (merchant) routes
	api.POST("/clinicalCenters/login", h.Clinic.Login)

	clinicAuth := h.Tokens.ClinicAuthMiddleware()
	api.POST("/clinicalCenters/logout", clinicAuth, h.Clinic.Logout)
	clinic := api.Group("/clinicProfile", clinicAuth)
	{
		clinic.GET("/profile", h.Clinic.Profile)
		clinic.PUT("/profile", h.Clinic.UpdateProfile)
		clinic.PUT("/change-password", h.Clinic.ChangePassword)
		clinic.POST("/device-token", h.Clinic.RegisterDevice)
		clinic.GET("/dashboard", h.Appointments.Dashboard)
		clinic.GET("/queue/stream", h.Queue.Stream(authentication.CenterID))

		clinic.POST("/doctors", h.Doctors.Create)
		clinic.GET("/doctors", h.Doctors.List)
		clinic.GET("/doctors/:id", h.Doctors.Get)
		clinic.PUT("/doctors/:id", h.Doctors.Update)
		clinic.DELETE("/doctors/:id", h.Doctors.Delete)
		clinic.PATCH("/doctors/:id/status", h.Doctors.SetStatus)
		clinic.POST("/doctors/:id/photo", h.Doctors.UploadPhoto)
		clinic.PUT("/doctors/:id/availability", h.Doctors.SetAvailability)
		clinic.GET("/doctors/:id/availability", h.Doctors.ListAvailability)
		clinic.DELETE("/doctors/:id/availability/:entryId", h.Doctors.DeleteAvailability)

		clinic.GET("/appointments", h.Appointments.ClinicAppointments)
		clinic.GET("/appointments/export", h.Appointments.Export)
		clinic.PATCH("/appointments/:id/status", h.Appointments.UpdateStatus)
		clinic.PATCH("/appointments/:id/fees", h.Appointments.UpdateFees)
		clinic.GET("/appointment-history", h.Appointments.History)
	}
	outstanding := api.Group("/outstanding", clinicAuth)
	{
		outstanding.POST("/create", h.Appointments.CreateWalkIn)
		outstanding.GET("/list", h.Appointments.ListWalkIns)
		outstanding.PATCH("/:id/complete", h.Appointments.CompleteWalkIn)
	}
	complaints := api.Group("/compleint/clinic", clinicAuth)
	{
		complaints.POST("/create", h.Queries.CreateFromClinic)
		complaints.GET("/mine", h.Queries.ClinicQueries)
	}

	return r
}
