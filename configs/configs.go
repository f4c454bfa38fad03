package configs

import (
	"os"

	"undangan.digital/configs/configsdatabase"
	"undangan.digital/configs/configslog"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

// App holds the process configuration read from the environment.
type App struct {
	Env           string
	Port          string
	JWTSecret     string
	EncryptionKey string // 64 hex chars; legacy credential codec only
	MediaDir      string
	PublicBaseURL string
}

// LoadEnv reads .env outside production. Missing .env is not an error;
// production relies on real environment variables.
func LoadEnv() {
	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(); err != nil {
			configslog.SLog.Warnf(".env not loaded: %v", err)
		}
	}
}

// LoadApp assembles the App config with development defaults.
func LoadApp() App {
	return App{
		Env:           getenv("APP_ENV", "development"),
		Port:          getenv("PORT", "8080"),
		JWTSecret:     getenv("JWT_SECRET", "dev-only-secret"),
		EncryptionKey: os.Getenv("ENCRYPTION_KEY"),
		MediaDir:      getenv("MEDIA_DIR", "./media"),
		PublicBaseURL: getenv("PUBLIC_BASE_URL", "http://localhost:8080"),
	}
}

// GetDB exposes the shared GORM connection to repositories.
func GetDB() *gorm.DB {
	return configsdatabase.GetDB()
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
