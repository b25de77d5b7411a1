package dto

import (
	"mandi-service/internal/application/scheduler"
	"mandi-service/internal/domain/entities"
	"mandi-service/pkg/utils"
	"time"
)

const MessageRefreshed = "Mandi data refreshed"

// ToLatestResponse maps a snapshot. A missing snapshot maps to an empty record list.
func ToLatestResponse(snap *entities.Snapshot) *MandiLatestResponse {
	if snap == nil {
		return &MandiLatestResponse{Records: []entities.PriceRecord{}}
	}
	records := snap.Records
	if records == nil {
		records = []entities.PriceRecord{}
	}
	return &MandiLatestResponse{
		UpdatedAt: snap.UpdatedAt,
		Total:     len(records),
		Records:   records,
	}
}

func ToRefreshResponse(snap *entities.Snapshot) *MandiRefreshResponse {
	return &MandiRefreshResponse{
		Message:   MessageRefreshed,
		Total:     snap.Total(),
		UpdatedAt: snap.UpdatedAt,
	}
}

// ToStatusResponse combina el estado del scheduler con el snapshot actual.
// sched is nil when background refresh is disabled.
func ToStatusResponse(sched *scheduler.RefreshScheduler, snap *entities.Snapshot, now time.Time) *MandiStatusResponse {
	resp := &MandiStatusResponse{
		SchedulerState: "disabled",
		SnapshotTotal:  snap.Total(),
	}

	if sched != nil {
		resp.SchedulerState = string(sched.State())
		resp.RefreshInterval = sched.Interval().String()
		if run := sched.LastRun(); run != nil {
			resp.LastRun = toRunStatus(*run)
		}
	}

	if snap != nil {
		updatedAt := snap.UpdatedAt
		resp.SnapshotUpdatedAt = &updatedAt
		resp.SnapshotAge = utils.Age(updatedAt, now).Truncate(time.Second).String()
	}

	// stale only makes sense when something is expected to refresh the snapshot
	if sched != nil && !snap.IsEmpty() {
		resp.Stale = utils.IsStale(snap.UpdatedAt, now, utils.StaleAfter(sched.Interval()))
	}

	return resp
}

func toRunStatus(run scheduler.RunInfo) *RunStatus {
	status := &RunStatus{
		StartedAt:  run.StartedAt,
		FinishedAt: run.FinishedAt,
		Success:    run.Succeeded(),
		Records:    run.Records,
	}
	if run.Err != nil {
		status.Error = run.Err.Error()
	}
	return status
}

func ToUserResponse(user *entities.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	}
}

func ToAuthResponse(token string, user *entities.User) *AuthResponse {
	return &AuthResponse{Token: token, User: ToUserResponse(user)}
}

// ToAdEntity copies the request body into an unsaved ad
func (r *CreateAdRequest) ToAdEntity() entities.Ad {
	return entities.Ad{
		Title:       r.Title,
		Price:       r.Price,
		Quantity:    r.Quantity,
		Category:    r.Category,
		State:       r.State,
		District:    r.District,
		Description: r.Description,
		Images:      r.Images,
		Phone:       r.Phone,
	}
}

func ToAdResponse(ad *entities.Ad) AdResponse {
	images := []string(ad.Images)
	if images == nil {
		images = []string{}
	}
	return AdResponse{
		ID:          ad.ID,
		Title:       ad.Title,
		Price:       ad.Price,
		Quantity:    ad.Quantity,
		Category:    ad.Category,
		State:       ad.State,
		District:    ad.District,
		Description: ad.Description,
		Images:      images,
		Phone:       ad.Phone,
		UserID:      ad.UserID,
		SellerName:  ad.SellerName,
		CreatedAt:   ad.CreatedAt,
	}
}

func ToAdListResponse(ads []*entities.Ad) *AdListResponse {
	out := make([]AdResponse, len(ads))
	for i, ad := range ads {
		out[i] = ToAdResponse(ad)
	}
	return &AdListResponse{Count: len(out), Ads: out}
}

func (r *CreateTradeRequest) ToTradeRequestEntity() entities.TradeRequest {
	return entities.TradeRequest{
		Type:      entities.RequestType(r.Type),
		Commodity: r.Commodity,
		Qty:       r.Qty,
		Price:     r.Price,
		Location:  r.Location,
	}
}

// NewHealthResponse stamps the check time in UTC
func NewHealthResponse(status string, services map[string]string) *HealthResponse {
	return &HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Services:  services,
	}
}
