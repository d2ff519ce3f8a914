package config

import "os"

// Config holds everything read from the environment at boot.
// godotenv.Load() runs in main before this is built.
type Config struct {
	Port   string
	AppEnv string

	// DBDriver selects the backend: "postgres" or "sqlite".
	DBDriver    string
	DatabaseURL string
	DBHost      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBPort      string
	SQLitePath  string

	AttachmentDir string
	CatalogFile   string

	ConfirmCancelPassword string
	AdminOverridePassword string
}

func Load() *Config {
	return &Config{
		Port:   getEnv("PORT", "3000"),
		AppEnv: getEnv("APP_ENV", "debug"),

		DBDriver:    getEnv("DB_DRIVER", "postgres"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBHost:      os.Getenv("DB_HOST"),
		DBUser:      os.Getenv("DB_USER"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBName:      os.Getenv("DB_NAME"),
		DBPort:      os.Getenv("DB_PORT"),
		SQLitePath:  getEnv("SQLITE_PATH", "settlement.db"),

		AttachmentDir: getEnv("ATTACHMENT_DIR", "attachments"),
		CatalogFile:   os.Getenv("CATALOG_FILE"),

		ConfirmCancelPassword: getEnv("CONFIRM_CANCEL_PASSWORD", "1234"),
		AdminOverridePassword: getEnv("ADMIN_OVERRIDE_PASSWORD", "2580"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
