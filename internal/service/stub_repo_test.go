package service

import (
	"context"
	"time"

	"buybox/internal/models"
	"buybox/internal/repository"
)

// stubRepo is a test-only in-memory implementation of repository.Repository.
// It records inserts; reads beyond the tracked list return empty results.
type stubRepo struct {
	tracked     []models.TrackedProduct
	pricePoints []models.PricePoint
	decisions   []models.Decision
	touched     []uint64

	insertPriceErr error
}

var _ repository.Repository = (*stubRepo)(nil)

func (s *stubRepo) CreateTrackedProduct(ctx context.Context, item *models.TrackedProduct) error {
	s.tracked = append(s.tracked, *item)
	return nil
}
func (s *stubRepo) ListTrackedProducts(ctx context.Context) ([]models.TrackedProduct, error) {
	return s.tracked, nil
}
func (s *stubRepo) GetTrackedProductByID(ctx context.Context, id uint64) (*models.TrackedProduct, error) {
	for i := range s.tracked {
		if s.tracked[i].ID == id {
			return &s.tracked[i], nil
		}
	}
	return nil, nil
}
func (s *stubRepo) UpdateTrackedProduct(ctx context.Context, id uint64, updates map[string]any) error {
	return nil
}
func (s *stubRepo) DeleteTrackedProduct(ctx context.Context, id uint64) error { return nil }
func (s *stubRepo) TouchTrackedProductChecked(ctx context.Context, id uint64, at time.Time) error {
	s.touched = append(s.touched, id)
	return nil
}
func (s *stubRepo) InsertPricePoint(ctx context.Context, item *models.PricePoint) error {
	if s.insertPriceErr != nil {
		return s.insertPriceErr
	}
	s.pricePoints = append(s.pricePoints, *item)
	return nil
}
func (s *stubRepo) ListPricePointsByASIN(ctx context.Context, asin string, since time.Time, limit int) ([]models.PricePoint, error) {
	return nil, nil
}
func (s *stubRepo) InsertSearchRecord(ctx context.Context, item *models.SearchRecord) error {
	return nil
}
func (s *stubRepo) ListRecentSearchRecords(ctx context.Context, limit int) ([]models.SearchRecord, error) {
	return nil, nil
}
func (s *stubRepo) InsertDecision(ctx context.Context, item *models.Decision) error {
	s.decisions = append(s.decisions, *item)
	return nil
}
func (s *stubRepo) ListDecisions(ctx context.Context, params repository.ListDecisionsParams) ([]models.Decision, error) {
	return nil, nil
}
func (s *stubRepo) CountDecisions(ctx context.Context, params repository.ListDecisionsParams) (int64, error) {
	return 0, nil
}
func (s *stubRepo) InsertChatMessage(ctx context.Context, item *models.ChatMessage) error { return nil }
func (s *stubRepo) ListChatMessagesBySession(ctx context.Context, sessionID string, limit int) ([]models.ChatMessage, error) {
	return nil, nil
}
