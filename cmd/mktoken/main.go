// Command mktoken mints a signed access token for local development and
// testing. Identity is normally issued by the external auth provider; this
// tool stands in for it when running the API on its own.
//
// Usage:
//
//	mktoken --user=<uuid> --role=employee
//
// Requires AUTH_JWT_SECRET environment variable to be set.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/workdeskhq/workdesk-backend/internal/auth"
	"github.com/workdeskhq/workdesk-backend/internal/domain"
)

func main() {
	user := flag.String("user", "", "user UUID to issue the token for")
	role := flag.String("role", "employee", "role claim: employee or manager")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	userID, err := uuid.Parse(*user)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Usage: mktoken --user=<uuid> --role=employee")
		os.Exit(1)
	}

	if !domain.Role(*role).IsValid() {
		log.Fatalf("invalid role %q", *role)
	}

	secret := os.Getenv("AUTH_JWT_SECRET")
	if secret == "" {
		log.Fatal("AUTH_JWT_SECRET environment variable is required")
	}
	issuer := os.Getenv("AUTH_JWT_ISSUER")
	if issuer == "" {
		issuer = "workdesk"
	}

	manager := auth.NewJWTManager(secret, issuer, *ttl)
	token, err := manager.GenerateAccessToken(userID, *role)
	if err != nil {
		log.Fatalf("generate token: %v", err)
	}

	fmt.Println(token)
}
