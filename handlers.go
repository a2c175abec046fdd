package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func setupRoutes(r *gin.Engine) {
	r.Use(requestIDMiddleware(), accessLog())
	r.GET("/healthz", healthHandler)
	authGroup := r.Group("")
	authGroup.Use(jwtAuthMiddleware())
	authGroup.POST("/parse-receipt", parseReceiptHandler)
}

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader("X-Request-ID"))
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

func accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		appLog.Info("request",
			zap.String("request_id", c.GetString("request_id")),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
	}
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// parseReceiptHandler scans an uploaded receipt image (multipart field
// "receipt"). The upload only lives for the duration of the request.
func parseReceiptHandler(c *gin.Context) {
	file, err := c.FormFile("receipt")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	if file.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("file too large (max %d bytes)", maxUploadBytes)})
		return
	}
	if err := os.MkdirAll(uploadBase, 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "mkdir failed"})
		return
	}
	tmpFile, err := os.CreateTemp(uploadBase, "receipt-*"+imageExt(file.Filename))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}
	tmp := tmpFile.Name()
	_ = tmpFile.Close()
	defer os.Remove(tmp)
	if err := c.SaveUploadedFile(file, tmp); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}

	reqID := c.GetString("request_id")
	appLog.Info("processing receipt", zap.String("request_id", reqID), zap.String("file", file.Filename), zap.Int64("size", file.Size))
	res, err := receiptScanner.Scan(c.Request.Context(), tmp)
	if err != nil {
		appLog.Error("receipt parse failed", zap.String("request_id", reqID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse receipt", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

// imageExt keeps a recognised image extension for the temp file name.
func imageExt(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff":
		return ext
	}
	return ""
}
