package handlers

import (
	"context"
	"mandi-service/internal/domain/entities"
	"mandi-service/internal/domain/interfaces"

	"github.com/stretchr/testify/mock"
)

type MockMandiService struct {
	mock.Mock
}

func (m *MockMandiService) Latest(ctx context.Context) (*entities.Snapshot, error) {
	args := m.Called(ctx)
	snap, _ := args.Get(0).(*entities.Snapshot)
	return snap, args.Error(1)
}

func (m *MockMandiService) Refresh(ctx context.Context) (*entities.Snapshot, error) {
	args := m.Called(ctx)
	snap, _ := args.Get(0).(*entities.Snapshot)
	return snap, args.Error(1)
}

func (m *MockMandiService) RefreshOnce(ctx context.Context, trigger interfaces.RefreshTrigger) (*entities.Snapshot, error) {
	args := m.Called(ctx, trigger)
	snap, _ := args.Get(0).(*entities.Snapshot)
	return snap, args.Error(1)
}

func (m *MockMandiService) Peek(ctx context.Context) (*entities.Snapshot, error) {
	args := m.Called(ctx)
	snap, _ := args.Get(0).(*entities.Snapshot)
	return snap, args.Error(1)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Signup(ctx context.Context, username, email, password string) (*interfaces.AuthResult, error) {
	args := m.Called(ctx, username, email, password)
	result, _ := args.Get(0).(*interfaces.AuthResult)
	return result, args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, login, password string) (*interfaces.AuthResult, error) {
	args := m.Called(ctx, login, password)
	result, _ := args.Get(0).(*interfaces.AuthResult)
	return result, args.Error(1)
}

func (m *MockAuthService) Me(ctx context.Context, userID string) (*entities.User, error) {
	args := m.Called(ctx, userID)
	user, _ := args.Get(0).(*entities.User)
	return user, args.Error(1)
}

type MockAdService struct {
	mock.Mock
}

func (m *MockAdService) Create(ctx context.Context, who interfaces.Identity, ad entities.Ad) (*entities.Ad, error) {
	args := m.Called(ctx, who, ad)
	created, _ := args.Get(0).(*entities.Ad)
	return created, args.Error(1)
}

func (m *MockAdService) List(ctx context.Context, filter entities.AdFilter) ([]*entities.Ad, error) {
	args := m.Called(ctx, filter)
	ads, _ := args.Get(0).([]*entities.Ad)
	return ads, args.Error(1)
}

func (m *MockAdService) Get(ctx context.Context, id string) (*entities.Ad, error) {
	args := m.Called(ctx, id)
	ad, _ := args.Get(0).(*entities.Ad)
	return ad, args.Error(1)
}

func (m *MockAdService) Delete(ctx context.Context, who interfaces.Identity, id string) error {
	args := m.Called(ctx, who, id)
	return args.Error(0)
}

type MockTradeRequestService struct {
	mock.Mock
}

func (m *MockTradeRequestService) Create(ctx context.Context, who interfaces.Identity, request entities.TradeRequest) (*entities.TradeRequest, error) {
	args := m.Called(ctx, who, request)
	created, _ := args.Get(0).(*entities.TradeRequest)
	return created, args.Error(1)
}

func (m *MockTradeRequestService) List(ctx context.Context) ([]*entities.TradeRequest, error) {
	args := m.Called(ctx)
	requests, _ := args.Get(0).([]*entities.TradeRequest)
	return requests, args.Error(1)
}

func (m *MockTradeRequestService) UpdateStatus(ctx context.Context, who interfaces.Identity, id string, status entities.RequestStatus) (*entities.TradeRequest, error) {
	args := m.Called(ctx, who, id, status)
	updated, _ := args.Get(0).(*entities.TradeRequest)
	return updated, args.Error(1)
}
