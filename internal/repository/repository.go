package repository

import (
	"context"
	"time"

	"buybox/internal/models"
)

// Repository is the store surface shared by handlers and background services.
type Repository interface {
	// Tracked products.
	CreateTrackedProduct(ctx context.Context, item *models.TrackedProduct) error
	ListTrackedProducts(ctx context.Context) ([]models.TrackedProduct, error)
	GetTrackedProductByID(ctx context.Context, id uint64) (*models.TrackedProduct, error)
	UpdateTrackedProduct(ctx context.Context, id uint64, updates map[string]any) error
	DeleteTrackedProduct(ctx context.Context, id uint64) error
	TouchTrackedProductChecked(ctx context.Context, id uint64, at time.Time) error

	// Price history.
	InsertPricePoint(ctx context.Context, item *models.PricePoint) error
	ListPricePointsByASIN(ctx context.Context, asin string, since time.Time, limit int) ([]models.PricePoint, error)

	// Search history.
	InsertSearchRecord(ctx context.Context, item *models.SearchRecord) error
	ListRecentSearchRecords(ctx context.Context, limit int) ([]models.SearchRecord, error)

	// Persisted advisor decisions.
	InsertDecision(ctx context.Context, item *models.Decision) error
	ListDecisions(ctx context.Context, params ListDecisionsParams) ([]models.Decision, error)
	CountDecisions(ctx context.Context, params ListDecisionsParams) (int64, error)

	// Assistant sessions.
	InsertChatMessage(ctx context.Context, item *models.ChatMessage) error
	ListChatMessagesBySession(ctx context.Context, sessionID string, limit int) ([]models.ChatMessage, error)
}

type ListDecisionsParams struct {
	Limit  int
	Offset int
	ASIN   *string
	Action *string
	Since  *time.Time
}
