package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/pharmreg_api/internal/config"
	"github.com/GTDGit/pharmreg_api/internal/database"
	"github.com/GTDGit/pharmreg_api/internal/repository"
	"github.com/GTDGit/pharmreg_api/internal/service"
	"github.com/GTDGit/pharmreg_api/internal/utils"
)

// useradd creates an operator account:
//
//	USERADD_PASSWORD=... useradd -username maria
func main() {
	username := flag.String("username", "", "login name of the new operator")
	flag.Parse()

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	password := os.Getenv("USERADD_PASSWORD")
	if *username == "" || password == "" {
		fmt.Fprintln(os.Stderr, "usage: USERADD_PASSWORD=<password> useradd -username <name>")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := database.Connect(&cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	authSvc := service.NewAuthService(
		repository.NewUserRepository(db),
		utils.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		cfg.DefaultLang,
	)
	user, err := authSvc.CreateUser(ctx, *username, password)
	if err != nil {
		log.Fatal().Err(err).Str("username", *username).Msg("could not create user")
	}

	log.Info().Int("id", user.ID).Str("username", user.Username).Msg("user created")
}
