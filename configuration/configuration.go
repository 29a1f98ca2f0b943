package configuration

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/models"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// hold connection to db
var DB *gorm.DB

// Development-only signing keys; production must override every one of them.
const (
	defaultAdminSecret   = "adminkey"
	defaultClinicSecret  = "clinickey"
	defaultPatientSecret = "patientkey"
)

// Config is everything the service reads from the environment.
type Config struct {
	Port    string
	AppEnv  string
	Version string

	DatabaseDSN   string
	RedisAddr     string
	RedisPassword string

	AdminJWTSecret   string
	ClinicJWTSecret  string
	PatientJWTSecret string
	TokenTTL         time.Duration

	SMTPHost     string
	SMTPPort     int
	SMTPEmail    string
	SMTPPassword string

	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioServiceID  string

	RazorpayKeyID     string
	RazorpayKeySecret string
	BookingServiceFee float64

	KafkaBroker      string
	ElasticsearchURL string
	SentryDSN        string
	FirebaseCredPath string

	UploadDir      string
	AllowedOrigins []string
	AdminEmail     string
	AdminPassword  string
	ReminderAt     string
}

// LoadConfig reads .env (when present) and the process environment.
func LoadConfig() *Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		Port:    getEnv("PORT", "8080"),
		AppEnv:  getEnv("APP_ENV", "development"),
		Version: getEnv("APP_VERSION", "dev"),

		DatabaseDSN:   os.Getenv("DB"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		AdminJWTSecret:   getEnv("ADMIN_JWT_SECRET", defaultAdminSecret),
		ClinicJWTSecret:  getEnv("CLINIC_JWT_SECRET", defaultClinicSecret),
		PatientJWTSecret: getEnv("PATIENT_JWT_SECRET", defaultPatientSecret),
		TokenTTL:         getDuration("TOKEN_TTL", 24*time.Hour),

		SMTPHost:     getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:     getInt("SMTP_PORT", 587),
		SMTPEmail:    os.Getenv("Email"),
		SMTPPassword: os.Getenv("Password"),

		TwilioAccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:  os.Getenv("TWILIO_AUTHTOKEN"),
		TwilioServiceID:  os.Getenv("TWILIO_SERVIES_ID"),

		RazorpayKeyID:     os.Getenv("RazorPay_key_id"),
		RazorpayKeySecret: os.Getenv("RazorPay_key_secret"),
		BookingServiceFee: getFloat("BOOKING_SERVICE_FEE", 50),

		KafkaBroker:      os.Getenv("KAFKA_BROKER"),
		ElasticsearchURL: os.Getenv("ELASTICSEARCH_URL"),
		SentryDSN:        os.Getenv("SENTRY_DSN"),
		FirebaseCredPath: os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH"),

		UploadDir:      getEnv("UPLOAD_DIR", "./uploads"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		AdminEmail:     os.Getenv("ADMIN_EMAIL"),
		AdminPassword:  os.Getenv("ADMIN_PASSWORD"),
		ReminderAt:     getEnv("REMINDER_AT", "07:00"),
	}
}

// Validate rejects production settings that would leave tokens forgeable.
func (c *Config) Validate() error {
	if c.AppEnv != "production" {
		return nil
	}
	secrets := []struct {
		env, value, fallback string
	}{
		{"ADMIN_JWT_SECRET", c.AdminJWTSecret, defaultAdminSecret},
		{"CLINIC_JWT_SECRET", c.ClinicJWTSecret, defaultClinicSecret},
		{"PATIENT_JWT_SECRET", c.PatientJWTSecret, defaultPatientSecret},
	}
	var missing []string
	for _, s := range secrets {
		if s.value == "" || s.value == s.fallback {
			missing = append(missing, s.env)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s must be set in production", strings.Join(missing, ", "))
	}
	return nil
}

// ConfigDB opens the postgres connection and migrates the schema.
func ConfigDB(cfg *Config) error {
	if cfg.DatabaseDSN == "" {
		return fmt.Errorf("DB environment variable not set")
	}

	var err error
	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{TranslateError: true})
	if err != nil {
		return fmt.Errorf("failed to connect to the database: %w", err)
	}

	err = DB.AutoMigrate(
		&models.Admin{},
		&models.ClinicalCenter{},
		&models.DeviceToken{},
		&models.Doctor{},
		&models.DoctorAvailability{},
		&models.Appointment{},
		&models.Payment{},
		&models.Query{},
		&models.QueryReply{},
	)
	if err != nil {
		return fmt.Errorf("failed to auto-migrate database: %w", err)
	}
	return nil
}

// CloseDB releases the underlying connection pool.
func CloseDB() error {
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getFloat(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
