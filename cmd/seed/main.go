package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"talently/internal/database"
	"talently/internal/domain"
	"talently/internal/pkg/logger"
	"talently/internal/repository"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"golang.org/x/crypto/bcrypt"
)

type seedConfig struct {
	DatabaseURL string `envconfig:"DATABASE_URL" default:"talently.db"`
	Email       string `envconfig:"SEED_EMAIL" default:"demo@talently.test"`
	Password    string `envconfig:"SEED_PASSWORD" default:"demo12345"`
}

type talentSeed struct {
	name   string
	info   string
	status domain.TalentStatus
	skills []string
	years  int
	rate   float64
}

var talents = []talentSeed{
	{"Mia Lopez", "Jazz vocalist for galas and private dinners", domain.TalentFeatured, []string{"jazz", "soul"}, 12, 180},
	{"Leo Grant", "Stand-up comedian and corporate event host", domain.TalentActive, []string{"comedy", "hosting"}, 8, 150},
	{"Ava Chen", "Classical violinist, solo or with a string quartet", domain.TalentFeatured, []string{"violin", "classical"}, 15, 220},
	{"Noah Reed", "Close-up magician for cocktail receptions", domain.TalentActive, []string{"magic"}, 6, 120},
	{"Zoe Park", "DJ spinning house and disco, own equipment", domain.TalentInactive, []string{"dj", "house"}, 4, 90},
}

func main() {
	logger.Setup(false)
	if err := run(context.Background()); err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	var cfg seedConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return err
	}

	db, err := database.Connect(cfg.DatabaseURL, false)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := repository.AutoMigrate(db); err != nil {
		return err
	}

	businesses := repository.NewBusinessRepository(db)
	talentRepo := repository.NewTalentRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	if _, err := businesses.GetByEmail(ctx, cfg.Email); err == nil {
		slog.Info("demo business already present, nothing to do", "email", cfg.Email)
		return nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	biz := &domain.Business{
		Name:             "Demo Talent Agency",
		Email:            cfg.Email,
		PasswordHash:     string(hash),
		EmailPreferences: domain.DefaultEmailPreferences(),
	}
	if err := businesses.Create(ctx, biz); err != nil {
		return fmt.Errorf("create business: %w", err)
	}
	slog.Info("business created", "email", cfg.Email, "password", cfg.Password)

	day := time.Now().UTC().Truncate(24 * time.Hour).Add(48 * time.Hour)
	statuses := []domain.BookingStatus{domain.BookingPending, domain.BookingConfirmed, domain.BookingCancelled}

	for i, ts := range talents {
		t := &domain.Talent{
			BusinessID: biz.ID,
			Name:       ts.name,
			BasicInfo:  ts.info,
			Status:     ts.status,
			Skills:     ts.skills,
			Experience: ts.years,
			HourlyRate: ts.rate,
		}
		if err := talentRepo.Create(ctx, t); err != nil {
			return fmt.Errorf("create talent %q: %w", ts.name, err)
		}
		if !t.Status.Bookable() {
			continue
		}

		for j := 0; j < 3; j++ {
			start := day.Add(time.Duration(i*24+j*4+18) * time.Hour)
			b := &domain.Booking{
				TalentID:    t.ID,
				ClientName:  fmt.Sprintf("Client %d", i*3+j+1),
				ClientEmail: fmt.Sprintf("client%d@example.test", i*3+j+1),
				Status:      statuses[(i+j)%len(statuses)],
				StartDate:   start,
				EndDate:     start.Add(3 * time.Hour),
				HourlyRate:  t.HourlyRate,
			}
			b.Price()
			if err := bookingRepo.CreateIfAvailable(ctx, b); err != nil {
				return fmt.Errorf("create booking for %q: %w", ts.name, err)
			}
		}
	}

	slog.Info("seed complete", "talents", len(talents))
	return nil
}
