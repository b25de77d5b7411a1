package sqlstore

import (
	"context"
	"mandi-service/internal/domain/entities"
	"mandi-service/internal/domain/interfaces"

	"gorm.io/gorm"
)

type TradeRequestRepository struct {
	db *gorm.DB
}

func NewTradeRequestRepository(db *gorm.DB) *TradeRequestRepository {
	return &TradeRequestRepository{db: db}
}

var _ interfaces.TradeRequestRepository = (*TradeRequestRepository)(nil)

func (r *TradeRequestRepository) Create(ctx context.Context, request *entities.TradeRequest) error {
	return translate(r.db.WithContext(ctx).Create(request).Error)
}

// List returns the newest requests first, at most limit rows
func (r *TradeRequestRepository) List(ctx context.Context, limit int) ([]*entities.TradeRequest, error) {
	requests := []*entities.TradeRequest{}
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// UpdateStatus sets the status and returns the updated request
func (r *TradeRequestRepository) UpdateStatus(ctx context.Context, id string, status entities.RequestStatus) (*entities.TradeRequest, error) {
	var request entities.TradeRequest
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&request, "id = ?", id).Error; err != nil {
			return translate(err)
		}
		if err := tx.Model(&request).Update("status", status).Error; err != nil {
			return err
		}
		request.Status = status
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}
