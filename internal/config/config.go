package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
)

// insecureDefaultJWTSecret keeps local development working without a .env
// file. It is never acceptable in production; Load reports whether it was
// used so the server can log a warning.
const insecureDefaultJWTSecret = "blucia-labs-jwt-secret-change-in-production"

type Config struct {
	Port        int
	Env         string // "development" or "production"
	FrontendURL string

	JWTSecret          []byte
	UsingDefaultSecret bool

	Database DatabaseConfig
	Google   GoogleConfig
	SMTP     SMTPConfig
	Admin    AdminConfig
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN builds the postgres:// connection URL, encoding credentials so odd
// characters in passwords survive.
func (c DatabaseConfig) DSN() string {
	userInfo := url.UserPassword(c.User, c.Password)
	return fmt.Sprintf(
		"postgres://%s@%s:%s/%s?sslmode=%s",
		userInfo.String(),
		c.Host,
		c.Port,
		url.PathEscape(c.Name),
		c.SSLMode,
	)
}

type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// Enabled reports whether Google sign-in can be offered at all. The
// placeholder value from the sample .env counts as unconfigured.
func (c GoogleConfig) Enabled() bool {
	return c.ClientID != "" && c.ClientSecret != "" && c.ClientID != "your-google-client-id"
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	// AdminEmail receives new-request alerts.
	AdminEmail string
}

// AdminConfig seeds the one admin-designated account at startup.
type AdminConfig struct {
	Name     string
	Username string
	Email    string
	Password string
}

func Load() *Config {
	port, err := strconv.Atoi(getenv("PORT", "5000"))
	if err != nil {
		port = 5000
	}

	secret := os.Getenv("JWT_SECRET")
	usingDefault := secret == ""
	if usingDefault {
		secret = insecureDefaultJWTSecret
	}

	smtpPort, err := strconv.Atoi(getenv("EMAIL_PORT", "587"))
	if err != nil {
		smtpPort = 587
	}

	return &Config{
		Port:               port,
		Env:                getenv("APP_ENV", "development"),
		FrontendURL:        getenv("FRONTEND_URL", "http://localhost:3000"),
		JWTSecret:          []byte(secret),
		UsingDefaultSecret: usingDefault,
		Database: DatabaseConfig{
			Host:     getenv("DB_HOST", "localhost"),
			Port:     getenv("DB_PORT", "5432"),
			User:     getenv("DB_USERNAME", "postgres"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     getenv("DB_DATABASE", "blucia_labs"),
			SSLMode:  getenv("DB_SSLMODE", "disable"),
		},
		Google: GoogleConfig{
			ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
			ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
			RedirectURL:  getenv("GOOGLE_REDIRECT_URL", "http://localhost:5000/api/auth/google/callback"),
		},
		SMTP: SMTPConfig{
			Host:       getenv("EMAIL_HOST", "smtp.gmail.com"),
			Port:       smtpPort,
			Username:   os.Getenv("EMAIL_USER"),
			Password:   os.Getenv("EMAIL_PASSWORD"),
			From:       getenv("EMAIL_FROM", "contact@blucialabs.com"),
			AdminEmail: getenv("ADMIN_EMAIL", "ceo@blucialabs.com"),
		},
		Admin: AdminConfig{
			Name:     getenv("ADMIN_NAME", "Chief Executive Officer"),
			Username: getenv("ADMIN_USERNAME", "ceo"),
			Email:    getenv("ADMIN_EMAIL", "ceo@blucialabs.com"),
			Password: getenv("ADMIN_PASSWORD", "ceo0001"),
		},
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
