//go:build ignore

package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"codeberg.org/inkwell/billing/inkwell/accounts"
	"codeberg.org/inkwell/billing/internal/auth"
	"codeberg.org/inkwell/billing/internal/plans"
)

func main() {
	// load environment
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET not set")
	}

	testEmail := "test@inkwell.dev"
	if len(os.Args) > 1 {
		testEmail = os.Args[1]
	}

	// open a free-tier account when a database is configured
	if dbConnString := os.Getenv("DATABASE_URL"); dbConnString != "" {
		dbPool, err := pgxpool.New(context.Background(), dbConnString)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer dbPool.Close()

		repo := accounts.NewRepository(dbPool)
		if err := repo.Ensure(context.Background(), testEmail, plans.Free, 500000); err != nil {
			log.Fatalf("Failed to ensure test account: %v", err)
		}

		fmt.Printf("Ensured account for %s\n", testEmail)
	}

	userID := uuid.New().String()

	token, err := auth.New(secret).GenerateJWT(userID, testEmail, auth.TokenTTL)
	if err != nil {
		log.Fatalf("Failed to generate JWT: %v", err)
	}

	fmt.Printf("\nTest JWT Token:\n%s\n\n", token)
	fmt.Printf("Export this token for testing:\nexport TEST_TOKEN=\"%s\"\n", token)
}
