package main

import (
	"context"
	"os"

	"receiptscan/pkg/config"
	"receiptscan/pkg/logger"
	"receiptscan/pkg/ocr"
	"receiptscan/pkg/receipt"
	"receiptscan/pkg/scanner"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type imageScanner interface {
	Scan(ctx context.Context, path string) (receipt.Result, error)
}

var (
	jwtSecret      []byte // from JWT_SECRET; empty disables auth
	uploadBase     string
	maxUploadBytes int64
	receiptScanner imageScanner
	appLog         = zap.NewNop()
)

func main() {
	cfg := config.Load()
	appLog = logger.Must(cfg.Env)
	defer func() { _ = appLog.Sync() }()

	if err := cfg.Validate(); err != nil {
		appLog.Fatal("invalid configuration", zap.Error(err))
	}
	rec, err := ocr.NewRecognizer(cfg.OCR, appLog)
	if err != nil {
		appLog.Fatal("ocr engine", zap.Error(err))
	}
	configure(cfg, scanner.New(rec, appLog))
	if len(jwtSecret) == 0 {
		appLog.Warn("JWT_SECRET is not set; /parse-receipt accepts unauthenticated uploads")
	}
	ensureUploadBase()

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	setupRoutes(r)

	appLog.Info("receipt service listening", zap.String("addr", cfg.Server.Addr), zap.String("ocr_engine", cfg.OCR.Engine))
	if err := r.Run(cfg.Server.Addr); err != nil {
		appLog.Fatal("server stopped", zap.Error(err))
	}
}

func configure(cfg *config.Config, s imageScanner) {
	jwtSecret = []byte(cfg.Server.JWTSecret)
	uploadBase = cfg.Server.UploadBase
	maxUploadBytes = cfg.Server.MaxUploadBytes
	receiptScanner = s
}

// ensureUploadBase creates the directory holding in-flight uploads.
func ensureUploadBase() {
	if err := os.MkdirAll(uploadBase, 0o755); err != nil {
		appLog.Warn("failed to create upload base dir", zap.String("dir", uploadBase), zap.Error(err))
	}
}
