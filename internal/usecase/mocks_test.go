package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/xavierca1/ligue-crm-sync/internal/entity"
	"github.com/xavierca1/ligue-crm-sync/internal/infra/integration/hubspot"
	"github.com/xavierca1/ligue-crm-sync/internal/infra/integration/portal"
	"github.com/xavierca1/ligue-crm-sync/internal/infra/queue"
)

// MockContactRepository
type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) FindByRemoteID(ctx context.Context, remoteID string) (*entity.Contact, error) {
	args := m.Called(ctx, remoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Contact), args.Error(1)
}

func (m *MockContactRepository) FindByEmail(ctx context.Context, email string) (*entity.Contact, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Contact), args.Error(1)
}

func (m *MockContactRepository) Upsert(ctx context.Context, c *entity.Contact) (*entity.Contact, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Contact), args.Error(1)
}

func (m *MockContactRepository) UpdatePortalSync(ctx context.Context, contactID string, outcome entity.SyncOutcome) error {
	args := m.Called(ctx, contactID, outcome)
	return args.Error(0)
}

func (m *MockContactRepository) DeleteByRemoteID(ctx context.Context, remoteID string) error {
	args := m.Called(ctx, remoteID)
	return args.Error(0)
}

func (m *MockContactRepository) FindPortalSyncFailed(ctx context.Context, limit int) ([]*entity.Contact, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Contact), args.Error(1)
}

// MockCompanyRepository
type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) FindByRemoteID(ctx context.Context, remoteID string) (*entity.Company, error) {
	args := m.Called(ctx, remoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Company), args.Error(1)
}

func (m *MockCompanyRepository) Upsert(ctx context.Context, c *entity.Company) (*entity.Company, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Company), args.Error(1)
}

// MockDealRepository
type MockDealRepository struct {
	mock.Mock
}

func (m *MockDealRepository) FindByRemoteID(ctx context.Context, remoteID string) (*entity.Deal, error) {
	args := m.Called(ctx, remoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Deal), args.Error(1)
}

func (m *MockDealRepository) Upsert(ctx context.Context, d *entity.Deal) (*entity.Deal, error) {
	args := m.Called(ctx, d)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Deal), args.Error(1)
}

func (m *MockDealRepository) UpdateHasLineItems(ctx context.Context, dealID string, has bool) error {
	args := m.Called(ctx, dealID, has)
	return args.Error(0)
}

// MockLineItemRepository
type MockLineItemRepository struct {
	mock.Mock
}

func (m *MockLineItemRepository) Upsert(ctx context.Context, li *entity.LineItem) (*entity.LineItem, error) {
	args := m.Called(ctx, li)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.LineItem), args.Error(1)
}

// MockCRMGateway
type MockCRMGateway struct {
	mock.Mock
}

func (m *MockCRMGateway) GetContact(ctx context.Context, id string) (*hubspot.ContactResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hubspot.ContactResponse), args.Error(1)
}

func (m *MockCRMGateway) GetCompany(ctx context.Context, id string) (*hubspot.CompanyResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hubspot.CompanyResponse), args.Error(1)
}

func (m *MockCRMGateway) GetDeal(ctx context.Context, id string) (*hubspot.DealResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hubspot.DealResponse), args.Error(1)
}

func (m *MockCRMGateway) GetLineItem(ctx context.Context, id string) (*hubspot.LineItemResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hubspot.LineItemResponse), args.Error(1)
}

func (m *MockCRMGateway) GetAssociations(ctx context.Context, fromType, toType, id string) ([]string, error) {
	args := m.Called(ctx, fromType, toType, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockPortalGateway
type MockPortalGateway struct {
	mock.Mock
}

func (m *MockPortalGateway) Ping(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}

func (m *MockPortalGateway) CreateMember(ctx context.Context, input portal.MemberInput) (string, error) {
	args := m.Called(ctx, input)
	return args.String(0), args.Error(1)
}

func (m *MockPortalGateway) UpdateMember(ctx context.Context, memberID string, input portal.MemberInput) (string, error) {
	args := m.Called(ctx, memberID, input)
	return args.String(0), args.Error(1)
}

// MockQueueProducer
type MockQueueProducer struct {
	mock.Mock
}

func (m *MockQueueProducer) PublishSyncResult(ctx context.Context, payload queue.SyncResultPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}
