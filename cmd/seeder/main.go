// Command seeder populates the database with demo profiles and sample
// requests for local development. It is intended to be run offline, not as
// part of the main server.
//
// Flags:
//
//	--manager-email  email for the demo manager (default manager@example.com)
//	--employees      number of demo employees to create (default 3)
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/workdeskhq/workdesk-backend/internal/adapter/postgres"
	profilerepo "github.com/workdeskhq/workdesk-backend/internal/adapter/postgres/profile"
	requestrepo "github.com/workdeskhq/workdesk-backend/internal/adapter/postgres/request"
	"github.com/workdeskhq/workdesk-backend/internal/app"
	"github.com/workdeskhq/workdesk-backend/internal/classifier"
	"github.com/workdeskhq/workdesk-backend/internal/config"
	"github.com/workdeskhq/workdesk-backend/internal/domain"
)

var sampleReasons = []string{
	"I need urgent sick leave for a medical procedure next week.",
	"Requesting budget approval for new monitors for the team.",
	"I believe my results this year justify a salary raise.",
}

func main() {
	managerEmail := flag.String("manager-email", "manager@example.com", "email for the demo manager")
	employees := flag.Int("employees", 3, "number of demo employees to create")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	txm := postgres.NewTxManager(pool)
	profiles := profilerepo.New(pool)
	requests := requestrepo.New(pool)

	// Seed everything in one transaction so a rerun against a dirty
	// database fails cleanly instead of half-applying.
	err = txm.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := profiles.Create(ctx, &domain.Profile{
			ID:       uuid.New(),
			Email:    *managerEmail,
			FullName: "Demo Manager",
			Role:     domain.RoleManager,
		}); err != nil {
			return fmt.Errorf("create manager: %w", err)
		}

		for i := 0; i < *employees; i++ {
			employee, err := profiles.Create(ctx, &domain.Profile{
				ID:       uuid.New(),
				Email:    fmt.Sprintf("employee%d@example.com", i+1),
				FullName: fmt.Sprintf("Demo Employee %d", i+1),
				Role:     domain.RoleEmployee,
			})
			if err != nil {
				return fmt.Errorf("create employee %d: %w", i+1, err)
			}

			reason := sampleReasons[i%len(sampleReasons)]
			result := classifier.Classify(reason, domain.RequestTypeOther)
			if _, err := requests.Create(ctx, &domain.Request{
				ID:         uuid.New(),
				EmployeeID: employee.ID,
				Type:       domain.RequestTypeOther,
				Reason:     reason,
				Category:   result.Category,
				Priority:   result.Priority,
				Status:     domain.StatusPending,
				Insights:   result.Insights,
				CreatedAt:  time.Now().UTC(),
			}); err != nil {
				return fmt.Errorf("create request for employee %d: %w", i+1, err)
			}
		}
		return nil
	})
	if err != nil {
		logger.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("seed completed",
		slog.String("manager", *managerEmail),
		slog.Int("employees", *employees),
	)
}
