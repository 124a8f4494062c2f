package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-shop-admin/internal/services"
	"github.com/goliatone/go-shop-admin/internal/storage"
	"github.com/goliatone/go-shop-admin/pkg/testsupport"
	"github.com/google/uuid"
)

func TestMemoryRepositoryCreateAndLookup(t *testing.T) {
	ctx := context.Background()
	repo := services.NewMemoryRepository()

	created, err := repo.Create(ctx, &services.Service{Type: services.TypeDelivery, Code: " dhl ", Label: "DHL", SiteID: "1."})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == uuid.Nil || created.Code != "dhl" {
		t.Fatalf("unexpected created record %+v", created)
	}
	if _, err := repo.GetByCode(ctx, "dhl"); err != nil {
		t.Fatalf("get by code: %v", err)
	}
	if _, err := repo.GetByID(ctx, uuid.New()); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := repo.Create(ctx, &services.Service{}); !errors.Is(err, services.ErrCodeRequired) {
		t.Fatalf("expected ErrCodeRequired, got %v", err)
	}
}

func TestBunRepositoryWithCache(t *testing.T) {
	ctx := context.Background()
	db := testsupport.NewBunDB(t, (*services.Service)(nil))

	cacheCfg := repocache.DefaultConfig()
	cacheCfg.TTL = time.Minute
	cacheService, err := repocache.NewCacheService(cacheCfg)
	if err != nil {
		t.Fatalf("new cache service: %v", err)
	}
	repo := services.NewBunRepositoryWithCache(db, cacheService, repocache.NewDefaultKeySerializer())

	created, err := repo.Create(ctx, &services.Service{Type: services.TypePayment, Code: "invoice", Label: "Invoice", Provider: "PrePay", SiteID: "1."})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	for i := 0; i < 2; i++ {
		fetched, err := repo.GetByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("get by id (%d): %v", i, err)
		}
		if fetched.Code != "invoice" {
			t.Fatalf("unexpected code %q", fetched.Code)
		}
	}

	if _, err := repo.GetByCode(ctx, "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected not found for missing code, got %v", err)
	}
}
