package main

import (
	"net/http"
	"strings"

	"receiptscan/pkg/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// jwtAuthMiddleware requires a valid bearer token when a secret is configured.
func jwtAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(jwtSecret) == 0 {
			c.Next()
			return
		}
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") || len(authHeader) < 8 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid Authorization header"})
			return
		}
		sub, err := auth.ParseToken(jwtSecret, authHeader[7:])
		if err != nil {
			appLog.Info("rejected token", zap.String("request_id", c.GetString("request_id")), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set("subject", sub)
		c.Next()
	}
}
