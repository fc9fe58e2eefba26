package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/podhaven/podhaven-backend/internal/common"
	"github.com/podhaven/podhaven-backend/internal/domain"
	"github.com/podhaven/podhaven-backend/internal/repository"
	pkglogger "github.com/podhaven/podhaven-backend/pkg/logger"
)

// membershipTerm is how much one confirmed order extends a membership
const membershipTerm = 365 * 24 * time.Hour

// PaymentService handles membership order bookkeeping. Checkout and
// settlement happen on the provider side; this service records orders,
// consumes status notifications, and extends memberships on confirmation.
type PaymentService interface {
	CreateInvoice(ownerID string, req *domain.CreateInvoiceRequest) (*domain.PaymentOrder, error)
	GetOrder(id, ownerID string) (*domain.PaymentOrder, error)
	ListOrders(ownerID string, page, limit int) ([]domain.PaymentOrder, int64, error)
	HandleNotification(provider domain.PaymentProvider, n *domain.PaymentNotification) error
}

type paymentService struct {
	paymentRepo repository.PaymentRepository
	userRepo    repository.UserRepository
	checkoutURL map[domain.PaymentProvider]string
	now         func() time.Time
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(paymentRepo repository.PaymentRepository, userRepo repository.UserRepository) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		userRepo:    userRepo,
		checkoutURL: map[domain.PaymentProvider]string{
			domain.PaymentProviderBitPay: "https://bitpay.com/invoice?id=",
			domain.PaymentProviderPayPal: "https://www.paypal.com/checkoutnow?token=",
		},
		now: time.Now,
	}
}

// CreateInvoice opens a new order in "new" status and hands the client a
// checkout URL for the chosen provider
func (s *paymentService) CreateInvoice(ownerID string, req *domain.CreateInvoiceRequest) (*domain.PaymentOrder, error) {
	base, ok := s.checkoutURL[req.Provider]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported payment provider %q", common.ErrInvalidInput, req.Provider)
	}
	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", common.ErrInvalidInput)
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	externalID := uuid.NewString()
	order := &domain.PaymentOrder{
		OwnerID:    ownerID,
		Provider:   req.Provider,
		ExternalID: externalID,
		Amount:     req.Amount,
		Currency:   currency,
		Status:     domain.PaymentStatusNew,
		URL:        base + externalID,
	}
	if err := s.paymentRepo.Create(order); err != nil {
		return nil, err
	}

	pkglogger.GetLogger().Info().
		Str("order_id", order.ID).
		Str("provider", string(order.Provider)).
		Int("amount", order.Amount).
		Msg("payment order created")
	return order, nil
}

func (s *paymentService) GetOrder(id, ownerID string) (*domain.PaymentOrder, error) {
	return s.paymentRepo.FindByIDAndOwner(id, ownerID)
}

func (s *paymentService) ListOrders(ownerID string, page, limit int) ([]domain.PaymentOrder, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.paymentRepo.ListByOwner(ownerID, page, limit)
}

// HandleNotification applies a provider status notification to the local
// order. Notifications are idempotent: a repeat of an already-applied
// status is a no-op, and a confirmed order never moves backwards.
func (s *paymentService) HandleNotification(provider domain.PaymentProvider, n *domain.PaymentNotification) error {
	order, err := s.paymentRepo.FindByExternalID(n.ExternalID)
	if err != nil {
		return err
	}
	if order.Provider != provider {
		return fmt.Errorf("%w: notification provider mismatch", common.ErrInvalidInput)
	}

	status := normalizeStatus(provider, n.Status)
	if status == "" || order.Status == status || order.Status == domain.PaymentStatusConfirmed {
		return nil
	}

	order.Status = status
	if status == domain.PaymentStatusConfirmed {
		now := s.now()
		order.ConfirmedAt = &now
		if err := s.extendMembership(order.OwnerID, now); err != nil {
			return err
		}
	}

	if err := s.paymentRepo.Update(order); err != nil {
		return err
	}

	pkglogger.GetLogger().Info().
		Str("order_id", order.ID).
		Str("status", order.Status).
		Msg("payment order updated")
	return nil
}

// normalizeStatus maps provider wire statuses onto local order statuses.
// BitPay reports invoice states directly; PayPal reports sale states.
func normalizeStatus(provider domain.PaymentProvider, status string) string {
	if provider == domain.PaymentProviderPayPal {
		switch status {
		case "approved", "completed":
			return domain.PaymentStatusConfirmed
		case "created":
			return domain.PaymentStatusNew
		case "failed", "denied":
			return domain.PaymentStatusInvalid
		}
		return ""
	}

	switch status {
	case domain.PaymentStatusNew,
		domain.PaymentStatusPaid,
		domain.PaymentStatusConfirmed,
		domain.PaymentStatusExpired,
		domain.PaymentStatusInvalid:
		return status
	case "complete":
		return domain.PaymentStatusConfirmed
	}
	return ""
}

// extendMembership pushes the user's membership expiration out by one
// term, stacking on the current expiration when it is still in the future
func (s *paymentService) extendMembership(ownerID string, now time.Time) error {
	user, err := s.userRepo.FindByID(ownerID)
	if err != nil {
		return err
	}

	from := now
	if user.MembershipExpiration != nil && user.MembershipExpiration.After(now) {
		from = *user.MembershipExpiration
	}
	expiration := from.Add(membershipTerm)
	user.MembershipExpiration = &expiration

	return s.userRepo.Update(user)
}
