package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBSSLMode  string

	RedisAddr string

	KafkaBroker string
	KafkaTopic  string

	JWTSecret string
	JWTTTL    time.Duration

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	MailFrom string
}

// Load reads configuration from the environment (a .env file, if present,
// is loaded by the entrypoints before this runs).
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("PORT", "3000")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("KAFKA_TOPIC", "leave.notifications")
	v.SetDefault("JWT_TTL", "8h")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("MAIL_FROM", "no-reply@institution.edu")

	cfg := &Config{
		Port:        v.GetString("PORT"),
		DBHost:      v.GetString("DB_HOST"),
		DBUser:      v.GetString("DB_USER"),
		DBPassword:  v.GetString("DB_PASSWORD"),
		DBName:      v.GetString("DB_NAME"),
		DBPort:      v.GetString("DB_PORT"),
		DBSSLMode:   v.GetString("DB_SSLMODE"),
		RedisAddr:   v.GetString("REDIS_ADDR"),
		KafkaBroker: v.GetString("KAFKA_BROKER"),
		KafkaTopic:  v.GetString("KAFKA_TOPIC"),
		JWTSecret:   v.GetString("JWT_SECRET"),
		JWTTTL:      v.GetDuration("JWT_TTL"),
		SMTPHost:    v.GetString("SMTP_HOST"),
		SMTPPort:    v.GetInt("SMTP_PORT"),
		SMTPUser:    v.GetString("SMTP_USER"),
		SMTPPass:    v.GetString("SMTP_PASS"),
		MailFrom:    v.GetString("MAIL_FROM"),
	}

	return cfg, nil
}
