package utils

import (
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the process configuration read from the environment.
type Config struct {
	Env  string
	Port string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	JWTSecret string

	AdminEmail    string
	AdminPassword string
	AdminName     string

	CORSOrigins []string

	StorageDir    string
	PublicBaseURL string
	AssetRoot     string
	LogoURL       string
	AssetTimeout  time.Duration
	// AssetHosts are the remote hosts item images and logos may be fetched from.
	AssetHosts []string

	QuotationPrefix string
	PDFPagination   string
	PDFQRStamp      bool

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string

	ExpiryCron string
}

// LoadConfig reads .env when present and then the process environment.
func LoadConfig() Config {
	// a missing .env is normal outside development
	_ = godotenv.Load()

	return Config{
		Env:  getEnv("APP_ENV", "production"),
		Port: getEnv("PORT", "9000"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     getEnv("DB_NAME", "quotations"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		AdminName:     getEnv("ADMIN_NAME", "Administrator"),

		CORSOrigins: getList("CORS_ALLOW_ORIGINS", []string{"http://localhost:3000", "http://localhost:9000"}),

		StorageDir:    getEnv("STORAGE_DIR", "./data"),
		PublicBaseURL: strings.TrimRight(os.Getenv("PUBLIC_BASE_URL"), "/"),
		AssetRoot:     getEnv("ASSET_ROOT", "./public"),
		LogoURL:       getEnv("LOGO_URL", "quotation-logo.jpg"),
		AssetTimeout:  getDuration("ASSET_FETCH_TIMEOUT", 20*time.Second),
		AssetHosts:    getList("ASSET_ALLOWED_HOSTS", nil),

		QuotationPrefix: getEnv("QUOTATION_PREFIX", "RLE"),
		PDFPagination:   getEnv("PDF_PAGINATION", "classic"),
		PDFQRStamp:      getBool("PDF_QR_STAMP", false),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getInt("SMTP_PORT", 587),
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:     os.Getenv("SMTP_FROM"),

		ExpiryCron: getEnv("EXPIRY_CRON", "30 0 * * *"),
	}
}

// ImageHosts is AssetHosts plus the host of PUBLIC_BASE_URL.
func (c Config) ImageHosts() []string {
	hosts := append([]string(nil), c.AssetHosts...)
	if u, err := url.Parse(c.PublicBaseURL); err == nil && u.Hostname() != "" {
		hosts = append(hosts, u.Hostname())
	}
	return hosts
}

func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// getList splits a comma separated value, dropping empty entries.
func getList(key string, fallback []string) []string {
	var out []string
	for _, v := range strings.Split(os.Getenv(key), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return v
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return v
}

// getDuration accepts Go durations ("20s") or plain seconds ("20"). "0" disables the limit.
func getDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
