package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"receiptscan/pkg/auth"

	"github.com/joho/godotenv"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: go run ./cmd/create_token <subject> [ttl, default 720h]")
		os.Exit(2)
	}
	_ = godotenv.Load()
	subject := os.Args[1]
	ttl := 30 * 24 * time.Hour
	if len(os.Args) > 2 {
		d, err := time.ParseDuration(os.Args[2])
		if err != nil || d <= 0 {
			log.Fatalf("invalid ttl %q: %v", os.Args[2], err)
		}
		ttl = d
	}

	secret := os.Getenv("JWT_SECRET")
	if strings.TrimSpace(secret) == "" {
		log.Fatal("JWT_SECRET not set in environment")
	}
	token, err := auth.IssueToken([]byte(secret), subject, ttl)
	if err != nil {
		log.Fatalf("failed to sign token: %v", err)
	}
	fmt.Println(token)
}
