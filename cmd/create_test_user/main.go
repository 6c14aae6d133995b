package main

import (
	"context"
	"log"
	"os"

	"taskboard/internal/db"
	"taskboard/internal/repository"
	"taskboard/internal/service"
)

// Seeds a dev account and prints a ready-to-use bearer token.
func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET not set")
	}
	service.InitJWT(secret)

	pool := db.Connect(dsn)
	defer pool.Close()

	auth := service.NewAuthService(repository.NewUserRepository(pool))
	ctx := context.Background()

	const email = "tester@example.com"
	const password = "secret1"

	user, err := auth.Register(ctx, "Tester", email, password)
	if err != nil {
		// already registered from an earlier run; just log in
		log.Printf("register: %v, trying login", err)
	} else {
		log.Printf("user created id=%d email=%s", user.ID, user.Email)
	}

	token, err := auth.Login(ctx, email, password)
	if err != nil {
		log.Fatalf("login failed: %v", err)
	}
	log.Printf("token=%s", token)
}
