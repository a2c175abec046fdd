package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings. Every field can be overridden through the
// environment or a local .env file.
type Config struct {
	Env        string
	OCR        OCRConfig
	Server     ServerConfig
	StrictExit bool
}

// OCRConfig selects and tunes the text recognition engine.
type OCRConfig struct {
	Engine         string // "gosseract" (in-process) or "cli"
	TesseractCmd   string // binary name or absolute path for the cli engine
	TessdataPrefix string
	Language       string
	PageSegMode    int // 0 keeps the engine default
}

// ServerConfig holds settings for the HTTP upload service.
type ServerConfig struct {
	Addr           string
	JWTSecret      string // empty disables bearer auth
	UploadBase     string
	MaxUploadBytes int64
}

// Load reads ./.env when present (existing variables win) and then the environment.
func Load() *Config {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() *Config {
	return &Config{
		Env: getEnv("ENV", "development"),
		OCR: OCRConfig{
			Engine:         getEnv("RECEIPT_OCR_ENGINE", "gosseract"),
			TesseractCmd:   getEnv("TESSERACT_CMD", "tesseract"),
			TessdataPrefix: getEnv("TESSDATA_PREFIX", ""),
			Language:       getEnv("RECEIPT_OCR_LANG", "eng"),
			PageSegMode:    getEnvAsInt("RECEIPT_OCR_PSM", 0),
		},
		Server: ServerConfig{
			Addr:           getEnv("RECEIPT_ADDR", ":8081"),
			JWTSecret:      getEnv("JWT_SECRET", ""),
			UploadBase:     getEnv("UPLOAD_BASE", "uploads"),
			MaxUploadBytes: getEnvAsInt64("RECEIPT_MAX_UPLOAD_BYTES", 5*1024*1024),
		},
		StrictExit: getEnvAsBool("RECEIPTSCAN_STRICT_EXIT", false),
	}
}

// Validate rejects settings no component can run with.
func (c *Config) Validate() error {
	switch c.OCR.Engine {
	case "gosseract", "cli":
	default:
		return fmt.Errorf("RECEIPT_OCR_ENGINE must be gosseract or cli, got %q", c.OCR.Engine)
	}
	if c.OCR.Engine == "cli" && strings.TrimSpace(c.OCR.TesseractCmd) == "" {
		return fmt.Errorf("TESSERACT_CMD is required for the cli engine")
	}
	if c.OCR.PageSegMode < 0 || c.OCR.PageSegMode > 13 {
		return fmt.Errorf("RECEIPT_OCR_PSM must be between 0 and 13, got %d", c.OCR.PageSegMode)
	}
	if c.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("RECEIPT_MAX_UPLOAD_BYTES must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes":
		return true
	case "0", "false", "no":
		return false
	}
	return defaultValue
}
