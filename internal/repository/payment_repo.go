package repository

import (
	"errors"

	"github.com/podhaven/podhaven-backend/internal/common"
	"github.com/podhaven/podhaven-backend/internal/domain"
	"gorm.io/gorm"
)

// PaymentRepository payment order data access interface
type PaymentRepository interface {
	Create(order *domain.PaymentOrder) error
	FindByIDAndOwner(id, ownerID string) (*domain.PaymentOrder, error)
	FindByExternalID(externalID string) (*domain.PaymentOrder, error)
	Update(order *domain.PaymentOrder) error
	ListByOwner(ownerID string, page, limit int) ([]domain.PaymentOrder, int64, error)
}

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new PaymentRepository
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(order *domain.PaymentOrder) error {
	return r.db.Create(order).Error
}

// FindByIDAndOwner is owner-scoped so a caller cannot read another user's
// order by guessing an id
func (r *paymentRepository) FindByIDAndOwner(id, ownerID string) (*domain.PaymentOrder, error) {
	var order domain.PaymentOrder
	err := r.db.Where("id = ? AND owner_id = ?", id, ownerID).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *paymentRepository) FindByExternalID(externalID string) (*domain.PaymentOrder, error) {
	var order domain.PaymentOrder
	err := r.db.Where("external_id = ?", externalID).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *paymentRepository) Update(order *domain.PaymentOrder) error {
	return r.db.Save(order).Error
}

func (r *paymentRepository) ListByOwner(ownerID string, page, limit int) ([]domain.PaymentOrder, int64, error) {
	var orders []domain.PaymentOrder
	var total int64

	query := r.db.Model(&domain.PaymentOrder{}).Where("owner_id = ?", ownerID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&orders).Error
	return orders, total, err
}
