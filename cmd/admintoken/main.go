package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/iliyamo/tourfront/internal/logger"
	"github.com/iliyamo/tourfront/internal/utils"
)

// admintoken prints an ADMIN access token signed with ADMIN_JWT_SECRET.
// Store it in the admin_token cookie or send it as a Bearer header.
func main() {
	subject := flag.String("sub", "admin", "token subject")
	ttl := flag.Duration("ttl", 12*time.Hour, "token lifetime")
	flag.Parse()

	_ = godotenv.Load()
	log := logger.GetLogger()
	secret := os.Getenv("ADMIN_JWT_SECRET")
	if secret == "" {
		log.Fatal("ADMIN_JWT_SECRET is not set")
	}
	tok, err := utils.NewAccessToken(secret, *subject, "ADMIN", *ttl)
	if err != nil {
		log.Fatalw("could not sign token", "error", err)
	}
	fmt.Println(tok.Token)
}
