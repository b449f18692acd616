package gormrepository

import (
	"context"
	"testing"
	"time"

	"buybox/internal/models"
	"buybox/internal/repository"
)

func TestNilStoreIsSafe(t *testing.T) {
	var s *Store
	ctx := context.Background()

	if err := s.CreateTrackedProduct(ctx, &models.TrackedProduct{}); err != nil {
		t.Fatalf("CreateTrackedProduct on nil store: %v", err)
	}
	if items, err := s.ListTrackedProducts(ctx); err != nil || items != nil {
		t.Fatalf("ListTrackedProducts on nil store: %v %v", items, err)
	}
	if item, err := s.GetTrackedProductByID(ctx, 1); err != nil || item != nil {
		t.Fatalf("GetTrackedProductByID on nil store: %v %v", item, err)
	}
	if err := s.TouchTrackedProductChecked(ctx, 1, time.Now()); err != nil {
		t.Fatalf("TouchTrackedProductChecked on nil store: %v", err)
	}
	if err := s.InsertDecision(ctx, &models.Decision{}); err != nil {
		t.Fatalf("InsertDecision on nil store: %v", err)
	}
	if total, err := s.CountDecisions(ctx, repository.ListDecisionsParams{}); err != nil || total != 0 {
		t.Fatalf("CountDecisions on nil store: %d %v", total, err)
	}
}

func TestNormalizeLimit(t *testing.T) {
	tests := []struct {
		limit, def, want int
	}{
		{0, 50, 50},
		{-5, 50, 50},
		{25, 50, 25},
		{5000, 50, 1000},
	}
	for _, tt := range tests {
		if got := normalizeLimit(tt.limit, tt.def); got != tt.want {
			t.Fatalf("normalizeLimit(%d, %d) = %d, want %d", tt.limit, tt.def, got, tt.want)
		}
	}
}

func TestNormalizeOffset(t *testing.T) {
	if got := normalizeOffset(-1); got != 0 {
		t.Fatalf("normalizeOffset(-1) = %d, want 0", got)
	}
	if got := normalizeOffset(30); got != 30 {
		t.Fatalf("normalizeOffset(30) = %d, want 30", got)
	}
}
