package interfaces

import (
	"context"
	"mandi-service/internal/domain/entities"
)

// PriceFetcher downloads the complete upstream price feed.
// It returns either every record in upstream page order or an error, never a partial result.
type PriceFetcher interface {
	FetchAll(ctx context.Context) ([]entities.PriceRecord, error)
}
