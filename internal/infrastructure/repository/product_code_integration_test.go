package repository

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/zisan5910/zisan-trader-pro/internal/domain/entity"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestDeletedProductCodeCanBeReused(t *testing.T) {
	dsn := os.Getenv("TRADER_TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("set TRADER_TEST_DATABASE_DSN to run postgres integration test")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	if err := db.AutoMigrate(&entity.Product{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	ctx := context.Background()
	repo := NewProductRepository(db)
	code := fmt.Sprintf("CODE-REUSE-IT-%d", time.Now().UnixNano())

	t.Cleanup(func() {
		db.Unscoped().Where("code = ?", code).Delete(&entity.Product{})
	})

	first := &entity.Product{Name: "first", Code: code}
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("create first: %v", err)
	}
	if err := repo.Delete(ctx, first.ID); err != nil {
		t.Fatalf("delete first: %v", err)
	}

	// The soft-deleted row must not hold the code hostage
	second := &entity.Product{Name: "second", Code: code}
	if err := repo.Create(ctx, second); err != nil {
		t.Fatalf("create with reused code: %v", err)
	}

	live, err := repo.GetByCode(ctx, code)
	if err != nil {
		t.Fatalf("get by code: %v", err)
	}
	if live == nil || live.ID != second.ID {
		t.Fatalf("expected the live product for code %s, got %+v", code, live)
	}
}
