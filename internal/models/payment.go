package models

import "time"

// PaymentStatus is the lifecycle state of a payment.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusPaid     PaymentStatus = "PAID"
	PaymentStatusFailed   PaymentStatus = "FAILED"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

// PaymentMethod is the way a payment is settled. Bank transfer is the only
// method the pickup event supports today.
type PaymentMethod string

const (
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
)

// IsTerminal reports whether s accepts no further transitions.
func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentStatusFailed || s == PaymentStatusRefunded
}

// Payment is the single payment record attached to an order.
//
// It is created PENDING together with its order. An admin reviews the uploaded
// transfer proof and marks it PAID, or closes it as FAILED/REFUNDED with a
// mandatory reason. Closing a payment cancels its order in the same transaction.
type Payment struct {
	ID      string        `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID string        `json:"order_id" gorm:"uniqueIndex;type:varchar(36)"`
	Status  PaymentStatus `json:"status" gorm:"type:varchar(20);default:'PENDING'"`
	Method  PaymentMethod `json:"method" gorm:"type:varchar(20);default:'BANK_TRANSFER'"`
	Amount  float64       `json:"amount"`

	ProofURL string     `json:"proof_url,omitempty"`
	PaidAt   *time.Time `json:"paid_at,omitempty"`

	// Set when the payment is closed as FAILED or REFUNDED.
	Reason    string `json:"reason,omitempty"`
	AdminNote string `json:"admin_note,omitempty"`

	RefundAmount    float64       `json:"refund_amount,omitempty"`
	RefundMethod    PaymentMethod `json:"refund_method,omitempty" gorm:"type:varchar(20)"`
	RefundReference string        `json:"refund_reference,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
