// Command usertool provisions editing principals. Users are never created
// through the public API; an operator runs this against the database
// directly.
//
//	usertool -email admin@example.com -username admin -password secret -role admin
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"emkaan/api/internal/config"
	"emkaan/api/internal/database"
	"emkaan/api/internal/ids"
	"emkaan/api/internal/models"
	"emkaan/api/internal/repository"
	"emkaan/api/internal/security"
)

func main() {
	var (
		email    = flag.String("email", "", "email address (unique)")
		username = flag.String("username", "", "display username")
		password = flag.String("password", "", "initial password")
		role     = flag.String("role", "editor", "role: admin or editor")
	)
	flag.Parse()

	if err := run(*email, *username, *password, *role); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(email, username, password, role string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || username == "" || password == "" {
		return fmt.Errorf("email, username and password are required")
	}
	userRole := models.UserRole(role)
	if !models.ValidUserRole(userRole) {
		return fmt.Errorf("role must be admin or editor")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		return err
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return err
	}

	user := models.User{
		ID:           ids.New(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         userRole,
	}

	if err := repository.NewUserRepository(pool).Create(ctx, user); err != nil {
		return err
	}

	fmt.Printf("created %s user %s (%s)\n", user.Role, user.Username, user.Email)
	return nil
}
