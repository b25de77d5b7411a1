package services

import (
	"context"
	"mandi-service/internal/domain/entities"
	"mandi-service/internal/domain/interfaces"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	ramesh = interfaces.Identity{UserID: "u-1", Username: "ramesh", Role: entities.RoleUser}
	suresh = interfaces.Identity{UserID: "u-2", Username: "suresh", Role: entities.RoleDealer}
)

func TestAdService_Create(t *testing.T) {
	ads := new(MockAdRepository)
	ads.On("Create", mock.Anything, mock.AnythingOfType("*entities.Ad")).Return(nil)

	ad, err := NewAdService(ads).Create(context.Background(), ramesh, entities.Ad{
		Title:    " Basmati rice ",
		Price:    decimal.RequireFromString("3200.50"),
		State:    "Punjab",
		District: "Amritsar",
		UserID:   "someone-else",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, ad.ID)
	assert.Equal(t, "Basmati rice", ad.Title)
	assert.Equal(t, entities.DefaultAdCategory, ad.Category)
	assert.Equal(t, "u-1", ad.UserID)
	assert.Equal(t, "ramesh", ad.SellerName)
	assert.NotNil(t, ad.Images)
	ads.AssertExpectations(t)
}

func TestAdService_CreateValidation(t *testing.T) {
	valid := entities.Ad{Title: "Onions", Price: decimal.NewFromInt(20), State: "Maharashtra", District: "Nashik"}

	tests := []struct {
		name   string
		mutate func(*entities.Ad)
	}{
		{"missing title", func(a *entities.Ad) { a.Title = " " }},
		{"missing price", func(a *entities.Ad) { a.Price = decimal.Zero }},
		{"negative price", func(a *entities.Ad) { a.Price = decimal.NewFromInt(-5) }},
		{"missing state", func(a *entities.Ad) { a.State = "" }},
		{"missing district", func(a *entities.Ad) { a.District = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ads := new(MockAdRepository)
			ad := valid
			tt.mutate(&ad)

			_, err := NewAdService(ads).Create(context.Background(), ramesh, ad)

			assert.ErrorIs(t, err, entities.ErrInvalidInput)
			ads.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestAdService_Delete(t *testing.T) {
	owned := &entities.Ad{ID: "ad-1", UserID: "u-1"}

	tests := []struct {
		name    string
		who     interfaces.Identity
		found   *entities.Ad
		findErr error
		wantErr error
	}{
		{name: "owner", who: ramesh, found: owned},
		{name: "not owner", who: suresh, found: owned, wantErr: entities.ErrForbidden},
		{name: "missing", who: ramesh, findErr: entities.ErrNotFound, wantErr: entities.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ads := new(MockAdRepository)
			ads.On("GetByID", mock.Anything, "ad-1").Return(tt.found, tt.findErr)
			if tt.wantErr == nil {
				ads.On("Delete", mock.Anything, "ad-1").Return(nil)
			}

			err := NewAdService(ads).Delete(context.Background(), tt.who, "ad-1")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				ads.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			ads.AssertExpectations(t)
		})
	}
}

func TestAdService_ListTrimsFilter(t *testing.T) {
	ads := new(MockAdRepository)
	ads.On("List", mock.Anything, entities.AdFilter{Query: "rice", State: "Punjab"}).Return([]*entities.Ad{{ID: "ad-1"}}, nil)

	list, err := NewAdService(ads).List(context.Background(), entities.AdFilter{Query: " rice ", State: "Punjab "})

	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestChatService_StartConversation(t *testing.T) {
	t.Run("creates a new conversation", func(t *testing.T) {
		chats := new(MockChatRepository)
		users := new(MockUserRepository)
		users.On("GetByID", mock.Anything, "u-2").Return(&entities.User{ID: "u-2", Username: "suresh"}, nil)
		chats.On("FindConversationBetween", mock.Anything, "u-1", "u-2").Return(nil, entities.ErrNotFound)
		chats.On("CreateConversation", mock.Anything, mock.AnythingOfType("*entities.Conversation")).Return(nil)

		adID := "ad-9"
		conversation, err := NewChatService(chats, users).StartConversation(context.Background(), ramesh, "u-2", &adID)

		require.NoError(t, err)
		assert.True(t, conversation.HasMember("u-1"))
		assert.True(t, conversation.HasMember("u-2"))
		assert.Equal(t, "suresh", conversation.Members[1].Username)
		assert.Equal(t, "ad-9", *conversation.AdID)
		chats.AssertExpectations(t)
	})

	t.Run("reuses the existing conversation", func(t *testing.T) {
		chats := new(MockChatRepository)
		users := new(MockUserRepository)
		existing := &entities.Conversation{ID: "c-1"}
		users.On("GetByID", mock.Anything, "u-2").Return(&entities.User{ID: "u-2", Username: "suresh"}, nil)
		chats.On("FindConversationBetween", mock.Anything, "u-1", "u-2").Return(existing, nil)

		conversation, err := NewChatService(chats, users).StartConversation(context.Background(), ramesh, "u-2", nil)

		require.NoError(t, err)
		assert.Same(t, existing, conversation)
		chats.AssertNotCalled(t, "CreateConversation", mock.Anything, mock.Anything)
	})

	t.Run("rejects yourself", func(t *testing.T) {
		_, err := NewChatService(new(MockChatRepository), new(MockUserRepository)).StartConversation(context.Background(), ramesh, "u-1", nil)
		assert.ErrorIs(t, err, entities.ErrInvalidInput)
	})

	t.Run("other user must exist", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("GetByID", mock.Anything, "ghost").Return(nil, entities.ErrNotFound)

		_, err := NewChatService(new(MockChatRepository), users).StartConversation(context.Background(), ramesh, "ghost", nil)
		assert.ErrorIs(t, err, entities.ErrNotFound)
	})
}

func TestChatService_MembersOnly(t *testing.T) {
	conversation := entities.NewConversation(nil,
		entities.ConversationMember{UserID: "u-1", Username: "ramesh"},
		entities.ConversationMember{UserID: "u-2", Username: "suresh"},
	)
	outsider := interfaces.Identity{UserID: "u-3", Username: "mahesh"}

	chats := new(MockChatRepository)
	chats.On("GetConversation", mock.Anything, conversation.ID).Return(conversation, nil)
	chats.On("GetConversation", mock.Anything, "missing").Return(nil, entities.ErrNotFound)
	chats.On("ListMessages", mock.Anything, conversation.ID).Return([]*entities.Message{{ID: "m-1"}}, nil)
	chats.On("AddMessage", mock.Anything, mock.AnythingOfType("*entities.Message")).Return(nil)
	service := NewChatService(chats, new(MockUserRepository))

	messages, err := service.ListMessages(context.Background(), suresh, conversation.ID)
	require.NoError(t, err)
	assert.Len(t, messages, 1)

	_, err = service.ListMessages(context.Background(), outsider, conversation.ID)
	assert.ErrorIs(t, err, entities.ErrForbidden)

	_, err = service.ListMessages(context.Background(), ramesh, "missing")
	assert.ErrorIs(t, err, entities.ErrNotFound)

	message, err := service.SendMessage(context.Background(), ramesh, conversation.ID, " namaste ")
	require.NoError(t, err)
	assert.Equal(t, "namaste", message.Text)
	assert.Equal(t, entities.MessageSender{UserID: "u-1", Username: "ramesh"}, message.Sender)

	_, err = service.SendMessage(context.Background(), outsider, conversation.ID, "hi")
	assert.ErrorIs(t, err, entities.ErrForbidden)

	_, err = service.SendMessage(context.Background(), ramesh, conversation.ID, "   ")
	assert.ErrorIs(t, err, entities.ErrInvalidInput)

	chats.AssertNumberOfCalls(t, "AddMessage", 1)
}

func TestTradeRequestService_Create(t *testing.T) {
	requests := new(MockTradeRequestRepository)
	requests.On("Create", mock.Anything, mock.AnythingOfType("*entities.TradeRequest")).Return(nil)
	service := NewTradeRequestService(requests)

	created, err := service.Create(context.Background(), ramesh, entities.TradeRequest{
		Type:      "sell",
		Commodity: "Wheat",
		Qty:       "20 quintal",
		Price:     decimal.NewFromInt(2150),
		Location:  "Karnal",
	})

	require.NoError(t, err)
	assert.Equal(t, entities.RequestTypeSell, created.Type)
	assert.Equal(t, entities.RequestStatusOpen, created.Status)
	assert.Equal(t, "ramesh", created.CreatedBy)

	_, err = service.Create(context.Background(), ramesh, entities.TradeRequest{Type: "BUY", Commodity: "Wheat"})
	assert.ErrorIs(t, err, entities.ErrInvalidInput)
	assert.Contains(t, err.Error(), "Missing fields")

	_, err = service.Create(context.Background(), ramesh, entities.TradeRequest{
		Type: "SWAP", Commodity: "Wheat", Qty: "1", Price: decimal.NewFromInt(1), Location: "Karnal",
	})
	assert.ErrorIs(t, err, entities.ErrInvalidInput)
	requests.AssertNumberOfCalls(t, "Create", 1)
}

func TestTradeRequestService_ListUsesLimit(t *testing.T) {
	requests := new(MockTradeRequestRepository)
	requests.On("List", mock.Anything, 300).Return([]*entities.TradeRequest{}, nil)

	_, err := NewTradeRequestService(requests).List(context.Background())

	require.NoError(t, err)
	requests.AssertExpectations(t)
}

func TestTradeRequestService_UpdateStatus(t *testing.T) {
	admin := interfaces.Identity{UserID: "u-9", Username: "admin", Role: entities.RoleAdmin}

	tests := []struct {
		name    string
		who     interfaces.Identity
		status  entities.RequestStatus
		repoErr error
		wantErr error
		wantMsg string
	}{
		{name: "dealer approves", who: suresh, status: entities.RequestStatusApproved},
		{name: "admin rejects", who: admin, status: entities.RequestStatusRejected},
		{name: "invalid status checked first", who: ramesh, status: "DONE", wantErr: entities.ErrInvalidInput, wantMsg: "Invalid status"},
		{name: "plain user", who: ramesh, status: entities.RequestStatusApproved, wantErr: entities.ErrForbidden, wantMsg: "Not allowed"},
		{name: "missing request", who: admin, status: entities.RequestStatusOpen, repoErr: entities.ErrNotFound, wantErr: entities.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requests := new(MockTradeRequestRepository)
			var updated *entities.TradeRequest
			if tt.repoErr == nil {
				updated = &entities.TradeRequest{ID: "r-1", Status: tt.status}
			}
			requests.On("UpdateStatus", mock.Anything, "r-1", tt.status).Return(updated, tt.repoErr)

			got, err := NewTradeRequestService(requests).UpdateStatus(context.Background(), tt.who, "r-1", tt.status)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Contains(t, err.Error(), tt.wantMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.status, got.Status)
		})
	}
}
