package dto

import (
	"mandi-service/internal/domain/entities"
	"time"

	"github.com/shopspring/decimal"
)

// MandiLatestResponse is served by /api/mandi/latest
// @Description Cached copy of the government mandi price feed
type MandiLatestResponse struct {
	UpdatedAt time.Time              `json:"updatedAt" example:"2024-05-10T06:00:00Z"`
	Total     int                    `json:"total" example:"12000"`
	Records   []entities.PriceRecord `json:"records"`
}

// MandiRefreshResponse is served by /api/mandi/refresh
// @Description Result of a manual refresh
type MandiRefreshResponse struct {
	Message   string    `json:"message" example:"Mandi data refreshed"`
	Total     int       `json:"total" example:"12000"`
	UpdatedAt time.Time `json:"updatedAt" example:"2024-05-10T06:00:00Z"`
}

// RunStatus describes the last scheduled refresh
type RunStatus struct {
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
	Success    bool      `json:"success"`
	Records    int       `json:"records"`
	Error      string    `json:"error,omitempty"`
}

// MandiStatusResponse is served by /api/mandi/status
// @Description Refresh scheduler and snapshot status
type MandiStatusResponse struct {
	SchedulerState    string     `json:"schedulerState" example:"idle" enums:"idle,refreshing,disabled"`
	RefreshInterval   string     `json:"refreshInterval" example:"30m0s"`
	LastRun           *RunStatus `json:"lastRun,omitempty"`
	SnapshotTotal     int        `json:"snapshotTotal" example:"12000"`
	SnapshotUpdatedAt *time.Time `json:"snapshotUpdatedAt,omitempty"`
	SnapshotAge       string     `json:"snapshotAge,omitempty" example:"12m30s"`
	Stale             bool       `json:"stale"`
}

// UserResponse never carries the password hash
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username" example:"ramesh"`
	Email    string `json:"email" example:"ramesh@example.com"`
	Role     string `json:"role" example:"user" enums:"user,dealer,admin"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type AdResponse struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price" swaggertype:"number"`
	Quantity    string          `json:"quantity"`
	Category    string          `json:"category"`
	State       string          `json:"state"`
	District    string          `json:"district"`
	Description string          `json:"description"`
	Images      []string        `json:"images"`
	Phone       string          `json:"phone"`
	UserID      string          `json:"userId"`
	SellerName  string          `json:"sellerName"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type AdCreatedResponse struct {
	Message string     `json:"message" example:"Ad posted successfully"`
	Ad      AdResponse `json:"ad"`
}

type AdListResponse struct {
	Count int          `json:"count"`
	Ads   []AdResponse `json:"ads"`
}

// MessageResponse carries a plain confirmation
type MessageResponse struct {
	Message string `json:"message" example:"Ad deleted"`
}

// ErrorResponse represents a standard error response for endpoints
// @Description Standard error response for endpoints
type ErrorResponse struct {
	Error   string `json:"error" example:"UPSTREAM_ERROR" validate:"required"`                  // Main error code
	Message string `json:"message,omitempty" example:"Failed to fetch mandi prices"`          // Detailed error description
	Code    string `json:"code,omitempty" example:"502"`                                      // HTTP status code
	Details string `json:"details,omitempty" example:"upstream error on page 2 (offset 5000)"` // Underlying cause
}

// HealthResponse represents the health check response with service status
// @Description Health check response with service status
type HealthResponse struct {
	Status    string            `json:"status" example:"healthy" validate:"required" enums:"healthy,degraded,unhealthy"`
	Timestamp time.Time         `json:"timestamp" example:"2024-05-10T06:00:00Z" validate:"required"`
	Services  map[string]string `json:"services,omitempty" example:"snapshot_store:healthy,database:healthy"`
}
