package config

import "testing"

func TestLoadAppliesLedgerDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Ledger.LowStockDefault != 5 {
		t.Fatalf("expected low stock default 5, got %v", cfg.Ledger.LowStockDefault)
	}
	if cfg.Ledger.RetentionDays != 40 {
		t.Fatalf("expected retention 40 days, got %d", cfg.Ledger.RetentionDays)
	}
	if cfg.Ledger.CleanupBatchSize != 500 {
		t.Fatalf("expected cleanup batch size 500, got %d", cfg.Ledger.CleanupBatchSize)
	}
}

func TestLoadRespectsEnvironmentOverrides(t *testing.T) {
	t.Setenv("LOW_STOCK_DEFAULT", "12")
	t.Setenv("SALES_RETENTION_DAYS", "90")

	cfg := Load()

	if cfg.Ledger.LowStockDefault != 12 {
		t.Fatalf("expected low stock override 12, got %v", cfg.Ledger.LowStockDefault)
	}
	if cfg.Ledger.RetentionDays != 90 {
		t.Fatalf("expected retention override 90, got %d", cfg.Ledger.RetentionDays)
	}
}

func TestDatabaseDSNContainsTimezone(t *testing.T) {
	cfg := Load()

	dsn := cfg.Database.DSN()
	if dsn == "" {
		t.Fatalf("expected a non-empty DSN")
	}
	// Dhaka is the default business timezone
	if cfg.Database.Timezone != "Asia/Dhaka" {
		t.Fatalf("expected default timezone Asia/Dhaka, got %q", cfg.Database.Timezone)
	}
}
