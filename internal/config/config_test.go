package config

import (
	"testing"
	"time"
)

func setBaseEnv(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "token")
	t.Setenv("ADMIN_IDS", "42,7")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "printit")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "printit")
	t.Setenv("REDIS_ADDR", "localhost:6379")
}

func TestLoad(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("PRICING_STRICT", "true")
	t.Setenv("LIMIT_WINDOW", "30m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Database.Port != 5432 || cfg.Database.SSLMode != "disable" {
		t.Errorf("database defaults not applied: %+v", cfg.Database)
	}
	if !cfg.Pricing.Strict {
		t.Error("PRICING_STRICT not parsed")
	}
	if cfg.Rewards.RedeemCost != 50 {
		t.Errorf("Incorrect redeem cost, got %v", cfg.Rewards.RedeemCost)
	}
	if cfg.Limits.Window != 30*time.Minute || cfg.Limits.OrdersPerWindow != 10 {
		t.Errorf("Incorrect limits: %+v", cfg.Limits)
	}
	if !cfg.IsAdmin(7) || cfg.IsAdmin(8) {
		t.Errorf("Incorrect admin ids: %v", cfg.AdminIDs)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "json" {
		t.Errorf("log defaults not applied: %+v", cfg.Log)
	}
}

func TestLoad_RequiresAdmin(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("ADMIN_IDS", "")

	if _, err := Load(); err == nil {
		t.Error("expected error without admin ids")
	}
}

func TestLoad_RejectsNonPositiveRedeemCost(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("REWARDS_REDEEM_COST", "0")

	if _, err := Load(); err == nil {
		t.Error("expected error for zero redeem cost")
	}
}

func TestLoadDatabase(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DB_PORT", "6543")

	cfg, err := LoadDatabase()
	if err != nil {
		t.Fatalf("LoadDatabase failed: %v", err)
	}

	want := "host=localhost port=6543 user=printit password=secret dbname=printit sslmode=disable"
	if got := cfg.DSN(); got != want {
		t.Errorf("Incorrect DSN:\n got %s\nwant %s", got, want)
	}
}
