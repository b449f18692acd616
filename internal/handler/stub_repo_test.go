package handler

import (
	"context"
	"time"

	"buybox/internal/models"
	"buybox/internal/repository"
)

// stubRepo is a test-only in-memory implementation of repository.Repository.
type stubRepo struct {
	tracked       []models.TrackedProduct
	pricePoints   []models.PricePoint
	searches      []models.SearchRecord
	decisions     []models.Decision
	chatMessages  []models.ChatMessage
	listParams    *repository.ListDecisionsParams
	deletedIDs    []uint64
	nextTrackedID uint64
}

var _ repository.Repository = (*stubRepo)(nil)

func (s *stubRepo) CreateTrackedProduct(ctx context.Context, item *models.TrackedProduct) error {
	s.nextTrackedID++
	item.ID = s.nextTrackedID
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
func (s *stubRepo) DeleteTrackedProduct(ctx context.Context, id uint64) error {
	s.deletedIDs = append(s.deletedIDs, id)
	return nil
}
func (s *stubRepo) TouchTrackedProductChecked(ctx context.Context, id uint64, at time.Time) error {
	return nil
}
func (s *stubRepo) InsertPricePoint(ctx context.Context, item *models.PricePoint) error {
	s.pricePoints = append(s.pricePoints, *item)
	return nil
}
func (s *stubRepo) ListPricePointsByASIN(ctx context.Context, asin string, since time.Time, limit int) ([]models.PricePoint, error) {
	var out []models.PricePoint
	for _, point := range s.pricePoints {
		if point.ASIN == asin {
			out = append(out, point)
		}
	}
	return out, nil
}
func (s *stubRepo) InsertSearchRecord(ctx context.Context, item *models.SearchRecord) error {
	s.searches = append(s.searches, *item)
	return nil
}
func (s *stubRepo) ListRecentSearchRecords(ctx context.Context, limit int) ([]models.SearchRecord, error) {
	return s.searches, nil
}
func (s *stubRepo) InsertDecision(ctx context.Context, item *models.Decision) error {
	s.decisions = append(s.decisions, *item)
	return nil
}
func (s *stubRepo) ListDecisions(ctx context.Context, params repository.ListDecisionsParams) ([]models.Decision, error) {
	s.listParams = &params
	return s.decisions, nil
}
func (s *stubRepo) CountDecisions(ctx context.Context, params repository.ListDecisionsParams) (int64, error) {
	return int64(len(s.decisions)), nil
}
func (s *stubRepo) InsertChatMessage(ctx context.Context, item *models.ChatMessage) error {
	s.chatMessages = append(s.chatMessages, *item)
	return nil
}
func (s *stubRepo) ListChatMessagesBySession(ctx context.Context, sessionID string, limit int) ([]models.ChatMessage, error) {
	var out []models.ChatMessage
	for _, msg := range s.chatMessages {
		if msg.SessionID == sessionID {
			out = append(out, msg)
		}
	}
	return out, nil
}
