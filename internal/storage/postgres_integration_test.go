package storage

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"printit-bot/internal/config"
	"printit-bot/internal/pricing"
	"printit-bot/internal/rewards"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Runs against a disposable database described by DB_* when
// PRINTIT_INTEGRATION=1.
func integrationStorage(t *testing.T) *PostgresStorage {
	t.Helper()
	if os.Getenv("PRINTIT_INTEGRATION") != "1" {
		t.Skip("set PRINTIT_INTEGRATION=1 and DB_* to run against Postgres")
	}

	cfg, err := config.LoadDatabase()
	if err != nil {
		t.Fatalf("LoadDatabase failed: %v", err)
	}
	cfg.ConnectTimeout = 10 * time.Second

	ctx := context.Background()
	s, err := NewPostgresStorage(ctx, *cfg, newMemCache(), zap.NewNop())
	if err != nil {
		t.Fatalf("NewPostgresStorage failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	if err := RunMigrations(ctx, s.DB(), zap.NewNop()); err != nil {
		t.Fatalf("RunMigrations failed: %v", err)
	}
	if err := s.ClearAll(ctx); err != nil {
		t.Fatalf("ClearAll failed: %v", err)
	}
	return s
}

func TestPostgres_JobsAndRewards(t *testing.T) {
	s := integrationStorage(t)
	ctx := context.Background()

	if err := s.UpsertUser(ctx, User{ID: 1001, Name: "Asha"}); err != nil {
		t.Fatalf("UpsertUser failed: %v", err)
	}

	opts := pricing.DefaultOptions()
	opts.FileName = "Report.pdf"
	opts.Pages = 24
	job := NewJob(1001, opts, decimal.RequireFromString("24.1"), 6)

	id, err := s.SaveJob(ctx, job)
	if err != nil {
		t.Fatalf("SaveJob failed: %v", err)
	}

	got, err := s.GetJob(ctx, id)
	if err != nil {
		t.Fatalf("GetJob failed: %v", err)
	}
	if !got.Price.Equal(job.Price) || got.FileName != "Report.pdf" || got.CreatedAt.IsZero() {
		t.Errorf("Incorrect stored job: %+v", got)
	}

	if err := s.UpdateJobStatus(ctx, id, StatusReady); err != nil {
		t.Fatalf("UpdateJobStatus failed: %v", err)
	}
	if err := s.UpdateJobStatus(ctx, id+1000, StatusReady); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	if _, err := s.AddPoints(ctx, 1001, 60); err != nil {
		t.Fatalf("AddPoints failed: %v", err)
	}

	redeemer := rewards.NewRedeemer(50)
	out, err := s.RedeemPoints(ctx, 1001, redeemer.Redeem)
	if err != nil {
		t.Fatalf("RedeemPoints failed: %v", err)
	}
	if out.Balance != 10 {
		t.Errorf("Incorrect balance, got %v", out.Balance)
	}

	if _, err := s.RedeemPoints(ctx, 1001, redeemer.Redeem); !errors.Is(err, rewards.ErrInsufficientPoints) {
		t.Errorf("expected ErrInsufficientPoints, got %v", err)
	}

	r, err := s.GetRewards(ctx, 1001)
	if err != nil {
		t.Fatalf("GetRewards failed: %v", err)
	}
	if r.Points != 10 || len(r.Redemptions) != 1 {
		t.Errorf("Incorrect rewards: %+v", r)
	}

	n, err := s.DeleteUserJobs(ctx, 1001)
	if err != nil || n != 1 {
		t.Errorf("DeleteUserJobs = %d, %v", n, err)
	}
}

func TestPostgres_PricingOverrides(t *testing.T) {
	s := integrationStorage(t)
	ctx := context.Background()

	if err := s.ResetPricingOverrides(ctx); err != nil {
		t.Fatalf("ResetPricingOverrides failed: %v", err)
	}

	o, err := s.GetPricingOverrides(ctx)
	if err != nil || len(o) != 0 {
		t.Fatalf("expected no overrides, got %v, %v", o, err)
	}

	o = pricing.Overrides{}
	if err := o.Set(pricing.KeyDeliveryDelivery, "30"); err != nil {
		t.Fatal(err)
	}
	if err := s.SavePricingOverrides(ctx, o, 1); err != nil {
		t.Fatalf("SavePricingOverrides failed: %v", err)
	}

	got, err := s.GetPricingOverrides(ctx)
	if err != nil {
		t.Fatalf("GetPricingOverrides failed: %v", err)
	}
	if v, ok := got.Number(pricing.KeyDeliveryDelivery); !ok || v != 30 {
		t.Errorf("Incorrect override, got %v (%v)", v, ok)
	}
}
