package services

import (
	"context"
	"errors"
	"fmt"
	"mandi-service/internal/domain/entities"
	"mandi-service/internal/domain/interfaces"
	"mandi-service/internal/infrastructure/logging"
	"strings"
)

// RequestListLimit caps how many trade requests the board returns
const RequestListLimit = 300

type tradeRequestService struct {
	requests interfaces.TradeRequestRepository
	security logging.SecurityLogger
}

func NewTradeRequestService(requests interfaces.TradeRequestRepository) interfaces.TradeRequestService {
	return &tradeRequestService{requests: requests, security: logging.Security()}
}

func (s *tradeRequestService) Create(ctx context.Context, who interfaces.Identity, request entities.TradeRequest) (*entities.TradeRequest, error) {
	reqType := entities.RequestType(strings.ToUpper(strings.TrimSpace(string(request.Type))))
	commodity := strings.TrimSpace(request.Commodity)
	qty := strings.TrimSpace(request.Qty)
	location := strings.TrimSpace(request.Location)

	if reqType == "" || commodity == "" || qty == "" || location == "" || request.Price.IsZero() {
		return nil, entities.NewValidationError("Missing fields")
	}
	if reqType != entities.RequestTypeBuy && reqType != entities.RequestTypeSell {
		return nil, entities.NewValidationError("type must be BUY or SELL")
	}

	created := entities.NewTradeRequest(reqType, commodity, qty, request.Price, location, who.Username)
	if err := s.requests.Create(ctx, created); err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return created, nil
}

// List returns the newest requests first
func (s *tradeRequestService) List(ctx context.Context) ([]*entities.TradeRequest, error) {
	return s.requests.List(ctx, RequestListLimit)
}

// UpdateStatus is reserved to admins and dealers. The status is checked before the role.
func (s *tradeRequestService) UpdateStatus(ctx context.Context, who interfaces.Identity, id string, status entities.RequestStatus) (*entities.TradeRequest, error) {
	if !status.Valid() {
		return nil, entities.NewValidationError("Invalid status")
	}

	if !entities.CanReviewRequests(who.Role) {
		s.security.AccessDenied(ctx, who.UserID, "request:"+id)
		return nil, fmt.Errorf("%w: Not allowed", entities.ErrForbidden)
	}

	updated, err := s.requests.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, entities.ErrNotFound) {
			return nil, fmt.Errorf("%w: Request not found", entities.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update request: %w", err)
	}
	return updated, nil
}
