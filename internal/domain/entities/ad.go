package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const DefaultAdCategory = "General"

// Ad is a classified listing for produce
type Ad struct {
	ID          string                      `gorm:"primaryKey;size:36" json:"id"`
	Title       string                      `gorm:"size:255;not null" json:"title"`
	Price       decimal.Decimal             `gorm:"type:decimal(14,2);not null" json:"price"`
	Quantity    string                      `gorm:"size:64" json:"quantity"`
	Category    string                      `gorm:"size:64;index" json:"category"`
	State       string                      `gorm:"size:64;index;not null" json:"state"`
	District    string                      `gorm:"size:64;index;not null" json:"district"`
	Description string                      `gorm:"type:text" json:"description"`
	Images      datatypes.JSONSlice[string] `json:"images"`
	Phone       string                      `gorm:"size:32" json:"phone"`
	UserID      string                      `gorm:"size:36;index;not null" json:"userId"`
	SellerName  string                      `gorm:"size:64" json:"sellerName"`
	CreatedAt   time.Time                   `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time                   `json:"updatedAt"`
}

// NewAd assigns an id and fills the optional fields with their defaults
func NewAd(ad Ad) *Ad {
	ad.ID = uuid.NewString()
	if ad.Category == "" {
		ad.Category = DefaultAdCategory
	}
	if ad.Images == nil {
		ad.Images = datatypes.JSONSlice[string]{}
	}
	return &ad
}

// AdFilter narrows an ad listing. Empty fields are ignored.
type AdFilter struct {
	Query    string
	State    string
	District string
}
