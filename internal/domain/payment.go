package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentProvider supported payment providers
type PaymentProvider string

const (
	PaymentProviderBitPay PaymentProvider = "bitpay"
	PaymentProviderPayPal PaymentProvider = "paypal"
)

// Payment statuses
const (
	PaymentStatusNew       = "new"
	PaymentStatusPaid      = "paid"
	PaymentStatusConfirmed = "confirmed"
	PaymentStatusExpired   = "expired"
	PaymentStatusInvalid   = "invalid"
)

// PaymentOrder represents a membership payment order. Provider wire calls
// happen outside this API; only the local bookkeeping lives here.
type PaymentOrder struct {
	ID          string          `gorm:"column:id;type:char(36);primaryKey" json:"id"`
	OwnerID     string          `gorm:"column:owner_id;type:char(36);index" json:"ownerId"`
	Provider    PaymentProvider `gorm:"column:provider" json:"provider"`
	ExternalID  string          `gorm:"column:external_id;index" json:"externalId"` // BitPay invoice id / PayPal payment id
	Amount      int             `gorm:"column:amount" json:"amount"`                // cents
	Currency    string          `gorm:"column:currency;default:USD" json:"currency"`
	Status      string          `gorm:"column:status;default:new" json:"status"`
	URL         string          `gorm:"column:url" json:"url,omitempty"` // provider checkout URL
	ConfirmedAt *time.Time      `gorm:"column:confirmed_at" json:"confirmedAt,omitempty"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (PaymentOrder) TableName() string {
	return "payment_orders"
}

func (p *PaymentOrder) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// CreateInvoiceRequest is sent by the client to start a checkout
type CreateInvoiceRequest struct {
	Provider PaymentProvider `json:"provider" binding:"required"`
	Amount   int             `json:"amount" binding:"required"`
	Currency string          `json:"currency"`
}

// PaymentNotification is the provider webhook payload (id + status only;
// anything else the provider sends is ignored)
type PaymentNotification struct {
	ExternalID string `json:"id" binding:"required"`
	Status     string `json:"status"`
}
