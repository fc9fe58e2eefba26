package service

import (
	"testing"
	"time"

	"github.com/podhaven/podhaven-backend/internal/common"
	"github.com/podhaven/podhaven-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPaymentRepository is a mock implementation of PaymentRepository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(order *domain.PaymentOrder) error {
	args := m.Called(order)
	return args.Error(0)
}

func (m *MockPaymentRepository) FindByIDAndOwner(id, ownerID string) (*domain.PaymentOrder, error) {
	args := m.Called(id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentOrder), args.Error(1)
}

func (m *MockPaymentRepository) FindByExternalID(externalID string) (*domain.PaymentOrder, error) {
	args := m.Called(externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentOrder), args.Error(1)
}

func (m *MockPaymentRepository) Update(order *domain.PaymentOrder) error {
	args := m.Called(order)
	return args.Error(0)
}

func (m *MockPaymentRepository) ListByOwner(ownerID string, page, limit int) ([]domain.PaymentOrder, int64, error) {
	args := m.Called(ownerID, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.PaymentOrder), args.Get(1).(int64), args.Error(2)
}

func newPaymentServiceAt(paymentRepo *MockPaymentRepository, userRepo *MockUserRepository, now time.Time) PaymentService {
	svc := NewPaymentService(paymentRepo, userRepo).(*paymentService)
	svc.now = func() time.Time { return now }
	return svc
}

func TestCreateInvoice_NewOrderWithCheckoutURL(t *testing.T) {
	paymentRepo := new(MockPaymentRepository)
	userRepo := new(MockUserRepository)
	svc := newPaymentServiceAt(paymentRepo, userRepo, time.Now())

	paymentRepo.On("Create", mock.MatchedBy(func(o *domain.PaymentOrder) bool {
		return o.OwnerID == "owner-1" &&
			o.Provider == domain.PaymentProviderBitPay &&
			o.Status == domain.PaymentStatusNew &&
			o.Amount == 1000 &&
			o.Currency == "USD" &&
			o.ExternalID != "" &&
			o.URL != ""
	})).Return(nil)

	order, err := svc.CreateInvoice("owner-1", &domain.CreateInvoiceRequest{
		Provider: domain.PaymentProviderBitPay,
		Amount:   1000,
	})

	require.NoError(t, err)
	assert.Contains(t, order.URL, order.ExternalID)
	paymentRepo.AssertExpectations(t)
}

func TestCreateInvoice_RejectsUnknownProviderAndBadAmount(t *testing.T) {
	paymentRepo := new(MockPaymentRepository)
	userRepo := new(MockUserRepository)
	svc := newPaymentServiceAt(paymentRepo, userRepo, time.Now())

	_, err := svc.CreateInvoice("owner-1", &domain.CreateInvoiceRequest{Provider: "venmo", Amount: 100})
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	_, err = svc.CreateInvoice("owner-1", &domain.CreateInvoiceRequest{Provider: domain.PaymentProviderPayPal, Amount: 0})
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	paymentRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestHandleNotification_ConfirmationExtendsMembership(t *testing.T) {
	paymentRepo := new(MockPaymentRepository)
	userRepo := new(MockUserRepository)
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	svc := newPaymentServiceAt(paymentRepo, userRepo, now)

	order := &domain.PaymentOrder{
		ID:         "order-1",
		OwnerID:    "owner-1",
		Provider:   domain.PaymentProviderBitPay,
		ExternalID: "ext-1",
		Status:     domain.PaymentStatusPaid,
	}
	paymentRepo.On("FindByExternalID", "ext-1").Return(order, nil)
	userRepo.On("FindByID", "owner-1").Return(&domain.User{ID: "owner-1"}, nil)
	userRepo.On("Update", mock.MatchedBy(func(u *domain.User) bool {
		return u.MembershipExpiration != nil &&
			u.MembershipExpiration.Equal(now.Add(365*24*time.Hour))
	})).Return(nil)
	paymentRepo.On("Update", mock.MatchedBy(func(o *domain.PaymentOrder) bool {
		return o.Status == domain.PaymentStatusConfirmed && o.ConfirmedAt != nil
	})).Return(nil)

	err := svc.HandleNotification(domain.PaymentProviderBitPay, &domain.PaymentNotification{
		ExternalID: "ext-1",
		Status:     "confirmed",
	})

	require.NoError(t, err)
	paymentRepo.AssertExpectations(t)
	userRepo.AssertExpectations(t)
}

func TestHandleNotification_ActiveMembershipStacks(t *testing.T) {
	paymentRepo := new(MockPaymentRepository)
	userRepo := new(MockUserRepository)
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	svc := newPaymentServiceAt(paymentRepo, userRepo, now)

	current := now.Add(30 * 24 * time.Hour)
	order := &domain.PaymentOrder{
		ID:         "order-1",
		OwnerID:    "owner-1",
		Provider:   domain.PaymentProviderPayPal,
		ExternalID: "ext-2",
		Status:     domain.PaymentStatusNew,
	}
	paymentRepo.On("FindByExternalID", "ext-2").Return(order, nil)
	userRepo.On("FindByID", "owner-1").Return(&domain.User{ID: "owner-1", MembershipExpiration: &current}, nil)
	userRepo.On("Update", mock.MatchedBy(func(u *domain.User) bool {
		return u.MembershipExpiration.Equal(current.Add(365 * 24 * time.Hour))
	})).Return(nil)
	paymentRepo.On("Update", mock.Anything).Return(nil)

	err := svc.HandleNotification(domain.PaymentProviderPayPal, &domain.PaymentNotification{
		ExternalID: "ext-2",
		Status:     "completed",
	})

	require.NoError(t, err)
	userRepo.AssertExpectations(t)
}

func TestHandleNotification_ConfirmedOrderNeverMovesBack(t *testing.T) {
	paymentRepo := new(MockPaymentRepository)
	userRepo := new(MockUserRepository)
	svc := newPaymentServiceAt(paymentRepo, userRepo, time.Now())

	order := &domain.PaymentOrder{
		ID:         "order-1",
		OwnerID:    "owner-1",
		Provider:   domain.PaymentProviderBitPay,
		ExternalID: "ext-3",
		Status:     domain.PaymentStatusConfirmed,
	}
	paymentRepo.On("FindByExternalID", "ext-3").Return(order, nil)

	err := svc.HandleNotification(domain.PaymentProviderBitPay, &domain.PaymentNotification{
		ExternalID: "ext-3",
		Status:     "expired",
	})

	require.NoError(t, err)
	paymentRepo.AssertNotCalled(t, "Update", mock.Anything)
	userRepo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestHandleNotification_ProviderMismatch(t *testing.T) {
	paymentRepo := new(MockPaymentRepository)
	userRepo := new(MockUserRepository)
	svc := newPaymentServiceAt(paymentRepo, userRepo, time.Now())

	order := &domain.PaymentOrder{
		Provider:   domain.PaymentProviderBitPay,
		ExternalID: "ext-4",
		Status:     domain.PaymentStatusNew,
	}
	paymentRepo.On("FindByExternalID", "ext-4").Return(order, nil)

	err := svc.HandleNotification(domain.PaymentProviderPayPal, &domain.PaymentNotification{
		ExternalID: "ext-4",
		Status:     "approved",
	})

	assert.ErrorIs(t, err, common.ErrInvalidInput)
}
