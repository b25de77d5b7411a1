package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RequestType string

const (
	RequestTypeBuy  RequestType = "BUY"
	RequestTypeSell RequestType = "SELL"
)

type RequestStatus string

const (
	RequestStatusOpen     RequestStatus = "OPEN"
	RequestStatusApproved RequestStatus = "APPROVED"
	RequestStatusRejected RequestStatus = "REJECTED"
)

// Valid reports whether s is one of the known statuses
func (s RequestStatus) Valid() bool {
	switch s {
	case RequestStatusOpen, RequestStatusApproved, RequestStatusRejected:
		return true
	}
	return false
}

// TradeRequest is a buy or sell request posted to the marketplace board
type TradeRequest struct {
	ID        string          `gorm:"primaryKey;size:36" json:"id"`
	Type      RequestType     `gorm:"size:8;not null" json:"type"`
	Commodity string          `gorm:"size:128;not null" json:"commodity"`
	Qty       string          `gorm:"size:64;not null" json:"qty"`
	Price     decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"price"`
	Location  string          `gorm:"size:128;not null" json:"location"`
	Status    RequestStatus   `gorm:"size:16;not null;index" json:"status"`
	CreatedBy string          `gorm:"size:64;index" json:"createdBy"`
	CreatedAt time.Time       `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func (TradeRequest) TableName() string {
	return "requests"
}

func NewTradeRequest(reqType RequestType, commodity, qty string, price decimal.Decimal, location, createdBy string) *TradeRequest {
	return &TradeRequest{
		ID:        uuid.NewString(),
		Type:      reqType,
		Commodity: commodity,
		Qty:       qty,
		Price:     price,
		Location:  location,
		Status:    RequestStatusOpen,
		CreatedBy: createdBy,
	}
}
