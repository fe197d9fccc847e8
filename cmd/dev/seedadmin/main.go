package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"cleanbook/internal/admin"
	"cleanbook/internal/auth"
	"cleanbook/pkg/config"
	"cleanbook/pkg/db"
)

// Creates an admin user. With -reset, overwrites the name and password of an existing one.
func main() {
	var (
		email    = flag.String("email", "", "admin email (required)")
		name     = flag.String("name", "", "display name (defaults to the email local part)")
		password = flag.String("password", "", "password; falls back to ADMIN_SEED_PASSWORD")
		reset    = flag.Bool("reset", false, "overwrite name and password if the admin exists")
	)
	flag.Parse()

	if *email == "" {
		fmt.Fprintln(os.Stderr, "seedadmin: -email is required")
		os.Exit(2)
	}
	pw := *password
	if pw == "" {
		pw = os.Getenv("ADMIN_SEED_PASSWORD")
	}
	if *name == "" {
		*name, _, _ = strings.Cut(*email, "@")
	}

	hash, err := auth.HashPassword(pw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "seedadmin: %v\n", err)
		os.Exit(2)
	}

	cfg := config.Load()
	ctx := context.Background()
	pool, err := db.Open(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "db open failed: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	repo := admin.NewRepository(pool)
	var u *admin.User
	if *reset {
		u, err = repo.Upsert(ctx, *email, *name, hash)
	} else {
		u, err = repo.Create(ctx, *email, *name, hash)
	}
	if errors.Is(err, admin.ErrEmailTaken) {
		fmt.Fprintf(os.Stderr, "seedadmin: %s already exists; pass -reset to overwrite\n", *email)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "seedadmin: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("admin %s (%s) ready\n", u.Email, u.ID)
}
