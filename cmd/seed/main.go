package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/oksasatya/go-user-post-api/config"
	"github.com/oksasatya/go-user-post-api/internal/domain/entity"
	pginfra "github.com/oksasatya/go-user-post-api/internal/infrastructure/postgres"
	"github.com/oksasatya/go-user-post-api/pkg/apperror"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), 2, 1, time.Minute)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	users := pginfra.NewUserRepository(pool)
	posts := pginfra.NewPostRepository(pool)

	u := &entity.User{Email: "demo@example.com", Password: "password123", IsActive: true}
	if err := users.Create(ctx, u); err != nil {
		if !errors.Is(err, apperror.ErrConflict) {
			log.Fatalf("failed to seed user: %v", err)
		}
		fmt.Printf("user %s already present, skipping\n", u.Email)
		return
	}
	fmt.Printf("seeded user: id=%d email=%s\n", u.ID, u.Email)

	p := &entity.Post{UserID: u.ID, Content: "hello from the seed command", CreatedAt: time.Now().UTC()}
	if err := posts.Create(ctx, p); err != nil {
		log.Fatalf("failed to seed post: %v", err)
	}
	fmt.Printf("seeded post: id=%d user_id=%d\n", p.ID, p.UserID)
}
