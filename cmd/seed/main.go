package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"userapi/internal/config"
	"userapi/internal/db"
	apperrors "userapi/internal/errors"
	"userapi/internal/logger"
	"userapi/internal/repository"
	"userapi/internal/service"
)

var sampleUsers = []service.UserInput{
	{Name: "Samwel", Email: "samwel@gmail.com", Designation: "s.j.Fumbi"},
	{Name: "ibrahimu", Email: "ibratimoth@gmail.com", Designation: "s.j.Fumbi"},
	{Name: "Husse", Email: "hussein@gmail.com", Designation: "s.j.Fumbi"},
}

// seedResult counts what happened to each seed entry.
type seedResult struct {
	Created  int
	Existing int
	Skipped  int
}

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	gormDB, err := db.Open(cfg)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := db.Migrate(gormDB, false); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	users := sampleUsers
	if cfg.SeedFile != "" {
		log.Info("loading seed users", zap.String("source", cfg.SeedFile))
		users, err = loadUsers(ctx, cfg.SeedFile)
		if err != nil {
			log.Fatal("failed to load seed users", zap.Error(err))
		}
	}

	svc := service.NewUserService(repository.NewUserRepository(gormDB), nil, 0, log)
	res, err := seedUsers(ctx, svc, users)
	if err != nil {
		log.Fatal("failed to seed users", zap.Error(err))
	}

	log.Info("seed completed",
		zap.Int("created", res.Created),
		zap.Int("existing", res.Existing),
		zap.Int("skipped", res.Skipped),
	)
}

// loadUsers reads a JSON array of users from an http(s) URL or a local file.
func loadUsers(ctx context.Context, source string) ([]service.UserInput, error) {
	var r io.Reader
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", source, err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("fetch %s: status %d", source, resp.StatusCode)
		}
		r = resp.Body
	} else {
		f, err := os.Open(source)
		if err != nil {
			return nil, fmt.Errorf("open seed file: %w", err)
		}
		defer f.Close()
		r = f
	}

	var users []service.UserInput
	if err := json.NewDecoder(r).Decode(&users); err != nil {
		return nil, fmt.Errorf("parse seed users: %w", err)
	}
	return users, nil
}

// seedUsers creates each user through the service so seeding follows the same duplicate rules as the API.
func seedUsers(ctx context.Context, svc service.UserService, users []service.UserInput) (seedResult, error) {
	var res seedResult
	for _, u := range users {
		_, err := svc.CreateUser(ctx, u)
		switch {
		case err == nil:
			res.Created++
		case errors.Is(err, apperrors.ErrUserAlreadyExists):
			res.Existing++
		case errors.Is(err, apperrors.ErrMissingFields):
			res.Skipped++
		default:
			return res, fmt.Errorf("create %s: %w", u.Email, err)
		}
	}
	return res, nil
}
