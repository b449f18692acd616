package gormrepository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"buybox/internal/models"
	"buybox/internal/repository"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

var _ repository.Repository = (*Store)(nil)

func (s *Store) CreateTrackedProduct(ctx context.Context, item *models.TrackedProduct) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) ListTrackedProducts(ctx context.Context) ([]models.TrackedProduct, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.TrackedProduct
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) GetTrackedProductByID(ctx context.Context, id uint64) (*models.TrackedProduct, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.TrackedProduct
	err := s.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) UpdateTrackedProduct(ctx context.Context, id uint64, updates map[string]any) error {
	if s == nil || s.db == nil || len(updates) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).
		Model(&models.TrackedProduct{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (s *Store) DeleteTrackedProduct(ctx context.Context, id uint64) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx).Delete(&models.TrackedProduct{}, "id = ?", id).Error
}

func (s *Store) TouchTrackedProductChecked(ctx context.Context, id uint64, at time.Time) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx).
		Model(&models.TrackedProduct{}).
		Where("id = ?", id).
		Update("last_checked_at", at).Error
}

func (s *Store) InsertPricePoint(ctx context.Context, item *models.PricePoint) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) ListPricePointsByASIN(ctx context.Context, asin string, since time.Time, limit int) ([]models.PricePoint, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).
		Model(&models.PricePoint{}).
		Where("asin = ?", strings.TrimSpace(asin))
	if !since.IsZero() {
		query = query.Where("created_at >= ?", since)
	}
	var items []models.PricePoint
	err := query.Order("created_at ASC").
		Limit(normalizeLimit(limit, 500)).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) InsertSearchRecord(ctx context.Context, item *models.SearchRecord) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) ListRecentSearchRecords(ctx context.Context, limit int) ([]models.SearchRecord, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.SearchRecord
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(normalizeLimit(limit, 50)).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) InsertDecision(ctx context.Context, item *models.Decision) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) ListDecisions(ctx context.Context, params repository.ListDecisionsParams) ([]models.Decision, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := applyDecisionFilters(s.db.WithContext(ctx).Model(&models.Decision{}), params)
	var items []models.Decision
	err := query.Order("created_at DESC").
		Limit(normalizeLimit(params.Limit, 50)).
		Offset(normalizeOffset(params.Offset)).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountDecisions(ctx context.Context, params repository.ListDecisionsParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var total int64
	err := applyDecisionFilters(s.db.WithContext(ctx).Model(&models.Decision{}), params).
		Count(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

func applyDecisionFilters(query *gorm.DB, params repository.ListDecisionsParams) *gorm.DB {
	if params.ASIN != nil && strings.TrimSpace(*params.ASIN) != "" {
		query = query.Where("asin = ?", strings.TrimSpace(*params.ASIN))
	}
	if params.Action != nil && strings.TrimSpace(*params.Action) != "" {
		query = query.Where("action = ?", strings.TrimSpace(*params.Action))
	}
	if params.Since != nil && !params.Since.IsZero() {
		query = query.Where("created_at >= ?", *params.Since)
	}
	return query
}

func (s *Store) InsertChatMessage(ctx context.Context, item *models.ChatMessage) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) ListChatMessagesBySession(ctx context.Context, sessionID string, limit int) ([]models.ChatMessage, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.ChatMessage
	err := s.db.WithContext(ctx).
		Where("session_id = ?", strings.TrimSpace(sessionID)).
		Order("created_at ASC").
		Limit(normalizeLimit(limit, 200)).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func normalizeLimit(limit, def int) int {
	if limit <= 0 {
		return def
	}
	if limit > 1000 {
		return 1000
	}
	return limit
}

func normalizeOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}
