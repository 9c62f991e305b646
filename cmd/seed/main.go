// Copyright (c) 2026 Cinelog. All rights reserved.

// Command seed provisions a development database: it runs the migrations,
// creates a default admin account plus a handful of members, loads a small
// film catalog, and scatters some likes.
//
// Re-running is safe: existing accounts and films are skipped.
package main

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/cinelog/cinelog/internal/catalog/movie"
	"github.com/cinelog/cinelog/internal/platform/config"
	"github.com/cinelog/cinelog/internal/platform/constants"
	"github.com/cinelog/cinelog/internal/platform/migration"
	pgstore "github.com/cinelog/cinelog/internal/platform/postgres"
	"github.com/cinelog/cinelog/internal/platform/sec"
	"github.com/cinelog/cinelog/internal/users/auth"
)

type seedAccount struct {
	username    string
	password    string
	displayName string
	admin       bool
	banned      bool
}

type seedMovie struct {
	title        string
	releaseYear  int
	posterImgURL string
}

var accounts = []seedAccount{
	{username: "admin", password: "admin", displayName: "Administrator", admin: true},
	{username: "marta", password: "marta123", displayName: "Marta Vidal"},
	{username: "joao", password: "joao123", displayName: "João Pereira"},
	{username: "yuki", password: "yuki123", displayName: "Yuki Tanaka"},
	{username: "troll", password: "troll123", displayName: "Banned Account", banned: true},
}

var films = []seedMovie{
	{title: "The Long Goodbye", releaseYear: 1973, posterImgURL: "https://img.cinelog.app/posters/the-long-goodbye.jpg"},
	{title: "Paris, Texas", releaseYear: 1984, posterImgURL: "https://img.cinelog.app/posters/paris-texas.jpg"},
	{title: "In the Mood for Love", releaseYear: 2000, posterImgURL: "https://img.cinelog.app/posters/in-the-mood-for-love.jpg"},
	{title: "Stalker", releaseYear: 1979, posterImgURL: "https://img.cinelog.app/posters/stalker.jpg"},
	{title: "La Haine", releaseYear: 1995, posterImgURL: "https://img.cinelog.app/posters/la-haine.jpg"},
	{title: "Yi Yi", releaseYear: 2000, posterImgURL: "https://img.cinelog.app/posters/yi-yi.jpg"},
	{title: "The Conversation", releaseYear: 1974, posterImgURL: "https://img.cinelog.app/posters/the-conversation.jpg"},
	{title: "Close-Up", releaseYear: 1990, posterImgURL: "https://img.cinelog.app/posters/close-up.jpg"},
}

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil)).
		With(slog.String("app", constants.AppName), slog.String("component", "seed"))

	cfg, err := config.Load()
	must(log, err, "load configuration")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer pool.Close()

	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	userRepository := auth.NewUserRepository(pool)
	movieRepository := movie.NewRepository(pool)

	users := seedUsers(ctx, log, userRepository)
	movies := seedMovies(ctx, log, movieRepository)
	seedLikes(ctx, log, movieRepository, users, movies)

	log.Info("seed complete",
		slog.Int("users", len(users)),
		slog.Int("movies", len(movies)),
	)
}

func seedUsers(ctx context.Context, log *slog.Logger, repo auth.UserRepository) []*auth.User {
	var created []*auth.User

	for _, account := range accounts {
		hash, err := sec.HashPassword(account.password)
		must(log, err, "hash password")

		user := &auth.User{
			PublicID:     uuid.NewString(),
			Username:     account.username,
			PasswordHash: hash,
			DisplayName:  account.displayName,
			Admin:        account.admin,
			Banned:       account.banned,
		}

		if err := repo.Create(ctx, user); err != nil {
			if errors.Is(err, auth.ErrDuplicate) {
				existing, ferr := repo.FindByUsername(ctx, account.username)
				must(log, ferr, "load existing user")
				log.Info("user exists, skipping", slog.String("username", account.username))
				created = append(created, existing)
				continue
			}
			must(log, err, "create user")
		}

		log.Info("user created",
			slog.String("username", user.Username),
			slog.String("public_id", user.PublicID),
		)
		created = append(created, user)
	}

	return created
}

func seedMovies(ctx context.Context, log *slog.Logger, repo movie.Repository) []*movie.Movie {
	existing, err := repo.List(ctx, movie.Filter{})
	must(log, err, "list movies")

	byTitle := make(map[string]*movie.Movie, len(existing))
	for _, m := range existing {
		byTitle[m.Title] = m
	}

	var created []*movie.Movie

	for _, film := range films {
		if m, ok := byTitle[film.title]; ok {
			log.Info("movie exists, skipping", slog.String("title", film.title))
			created = append(created, m)
			continue
		}

		m := &movie.Movie{
			PublicID:     uuid.NewString(),
			Title:        film.title,
			ReleaseYear:  film.releaseYear,
			PosterImgURL: film.posterImgURL,
		}
		must(log, repo.Create(ctx, m), "create movie")

		log.Info("movie created",
			slog.String("title", m.Title),
			slog.String("public_id", m.PublicID),
		)
		created = append(created, m)
	}

	return created
}

// seedLikes scatters likes over the catalog. Repository.Like is idempotent
// (ON CONFLICT DO NOTHING), so a re-run changes nothing.
func seedLikes(ctx context.Context, log *slog.Logger, repo movie.Repository, users []*auth.User, movies []*movie.Movie) {
	rng := rand.New(rand.NewSource(42))

	for _, user := range users {
		if user.Banned {
			continue
		}
		for _, m := range movies {
			if rng.Intn(3) != 0 {
				continue
			}
			must(log, repo.Like(ctx, m.ID, user.ID), "record like")
		}
	}

	log.Info("likes recorded")
}

func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("seed failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
