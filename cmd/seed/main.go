// Seeds the database with a demo learner, an admin account, a 40
// question catalog and a handful of road signs. Intended for local
// development; it overwrites nothing, duplicate accounts are skipped.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/flashneiga/backend/internal/auth"
	"github.com/flashneiga/backend/internal/domain/question"
	"github.com/flashneiga/backend/internal/domain/sign"
	"github.com/flashneiga/backend/internal/domain/user"
	"github.com/flashneiga/backend/internal/store"
)

var categories = []string{"priorities", "intersections", "signs", "mechanics"}

func main() {
	dbPath := flag.String("db", "flashneiga.db", "path to the sqlite database")
	adminEmail := flag.String("admin-email", "admin@example.com", "admin account email")
	adminPassword := flag.String("admin-password", "admin-password", "admin account password")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db, err := store.NewSQLite(*dbPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()

	if err := seedUsers(ctx, db, *adminEmail, *adminPassword, logger); err != nil {
		logger.Error("seeding users", "error", err)
		os.Exit(1)
	}
	if err := seedQuestions(ctx, db, logger); err != nil {
		logger.Error("seeding questions", "error", err)
		os.Exit(1)
	}
	if err := seedSigns(ctx, db, logger); err != nil {
		logger.Error("seeding signs", "error", err)
		os.Exit(1)
	}
	logger.Info("seed complete", "db", *dbPath)
}

func seedUsers(ctx context.Context, db *store.SQLiteStore, adminEmail, adminPassword string, logger *slog.Logger) error {
	accounts := []struct {
		email, name, password string
		role                  user.Role
	}{
		{"test@example.com", "Test User", "password123", user.RoleStudent},
		{adminEmail, "Administrator", adminPassword, user.RoleAdmin},
	}

	for _, acc := range accounts {
		hashed, err := auth.HashPassword(acc.password)
		if err != nil {
			return err
		}
		u, err := user.New(acc.email, acc.name, hashed)
		if err != nil {
			return err
		}
		u.Role = acc.role

		err = db.SaveUser(ctx, u)
		if errors.Is(err, store.ErrDuplicate) {
			logger.Info("user already exists, skipping", "email", acc.email)
			continue
		}
		if err != nil {
			return err
		}
		logger.Info("user created", "email", acc.email, "role", acc.role)
	}
	return nil
}

func seedQuestions(ctx context.Context, db *store.SQLiteStore, logger *slog.Logger) error {
	existing, err := db.ListQuestions(ctx, nil, 1)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		logger.Info("questions already present, skipping")
		return nil
	}

	for i := 0; i < 40; i++ {
		cat := categories[i%len(categories)]
		correctFirst := i%2 == 0

		options := []question.OptionSpec{
			{Text: "Answer A", IsCorrect: correctFirst},
			{Text: "Answer B", IsCorrect: !correctFirst},
			{Text: "Answer C"},
			{Text: "Answer D"},
		}
		q, err := question.New(
			fmt.Sprintf("Sample question %d about %s. Which answer is correct?", i+1, cat),
			cat,
			"",
			fmt.Sprintf("Explanation for sample question %d.", i+1),
			options,
		)
		if err != nil {
			return err
		}
		if err := db.SaveQuestion(ctx, q); err != nil {
			return err
		}
	}
	logger.Info("questions created", "count", 40)
	return nil
}

func seedSigns(ctx context.Context, db *store.SQLiteStore, logger *slog.Logger) error {
	existing, err := db.ListSigns(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		logger.Info("signs already present, skipping")
		return nil
	}

	entries := []struct {
		name, category, description, imageURL string
	}{
		{
			"Stop", "priority",
			"Come to a complete stop and give way to all traffic.",
			"https://upload.wikimedia.org/wikipedia/commons/thumb/f/f9/Stop_sign.jpg/600px-Stop_sign.jpg",
		},
		{
			"No Entry", "prohibition",
			"Entry forbidden for all vehicles.",
			"https://upload.wikimedia.org/wikipedia/commons/thumb/2/25/France_road_sign_B1.svg/600px-France_road_sign_B1.svg.png",
		},
		{
			"Yield", "priority",
			"Give way to traffic on the road you are joining.",
			"https://upload.wikimedia.org/wikipedia/commons/thumb/a/a1/France_road_sign_AB3a.svg/600px-France_road_sign_AB3a.svg.png",
		},
		{
			"Pedestrian Crossing", "warning",
			"Pedestrian crossing ahead, slow down.",
			"https://upload.wikimedia.org/wikipedia/commons/thumb/8/8c/France_road_sign_A13b.svg/600px-France_road_sign_A13b.svg.png",
		},
	}

	for _, e := range entries {
		s, err := sign.New(e.name, e.category, e.description, e.imageURL)
		if err != nil {
			return err
		}
		if err := db.SaveSign(ctx, s); err != nil {
			return err
		}
	}
	logger.Info("signs created", "count", len(entries))
	return nil
}
