package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds every externally supplied setting. It is built once in main
// and passed by reference into the components that need it; nothing reads
// the environment after startup.
type Config struct {
	AppPort       string
	AppMode       string
	DBHost        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBPort        string
	JWTSecret     string
	JWTExpiryMin  int
	RedisHost     string
	RedisPort     string
	RedisPassword string

	Upload UploadConfig
}

// UploadConfig carries the attachment subsystem settings. Extension lists
// are lower-cased at load time so validation never has to re-normalize.
type UploadConfig struct {
	RootPath      string
	FilesPath     string
	ImagesPath    string
	WebImagesPath string
	AllowedFiles  []string
	AllowedImages []string
	MaxFileSize   int64
	MaxImageSize  int64
	BufferSize    int
}

func LoadConfig() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		AppPort:       getEnv("APP_PORT", "8080"),
		AppMode:       getEnv("APP_MODE", "debug"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    getEnv("DB_PASSWORD", "postgres"),
		DBName:        getEnv("DB_NAME", "goboard"),
		DBPort:        getEnv("DB_PORT", "5432"),
		JWTSecret:     getEnv("JWT_SECRET", "change-me"),
		JWTExpiryMin:  getEnvAsInt("JWT_EXPIRY_MIN", 60),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		Upload: UploadConfig{
			RootPath:      getEnv("UPLOAD_ROOT_PATH", "uploads"),
			FilesPath:     getEnv("UPLOAD_FILES_PATH", "uploads/files"),
			ImagesPath:    getEnv("UPLOAD_IMAGES_PATH", "uploads/images"),
			WebImagesPath: getEnv("UPLOAD_WEB_IMAGES_PATH", "/upload/images"),
			AllowedFiles:  getEnvAsList("UPLOAD_ALLOWED_FILES", ".txt,.pdf,.doc,.docx,.xls,.xlsx,.zip"),
			AllowedImages: getEnvAsList("UPLOAD_ALLOWED_IMAGES", ".jpg,.jpeg,.png,.gif,.webp"),
			MaxFileSize:   getEnvAsInt64("UPLOAD_MAX_FILE_SIZE", 10*1024*1024),
			MaxImageSize:  getEnvAsInt64("UPLOAD_MAX_IMAGE_SIZE", 5*1024*1024),
			BufferSize:    getEnvAsInt("UPLOAD_BUFFER_SIZE", 8192),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsInt64(key string, fallback int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsList(key, fallback string) []string {
	raw := getEnv(key, fallback)
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
