package model

import "time"

type BookingStatus string

const (
	BookingApproved       BookingStatus = "approved"
	BookingDPPaid         BookingStatus = "dp_paid"
	BookingWaitingPayment BookingStatus = "waiting_payment"
)

// Booking is a read-optimized projection created once when a transaction
// reaches a success-terminal state. It carries enough denormalized data to be
// displayed without re-joining the transaction.
type Booking struct {
	ID            string        `json:"id"`
	TransactionID string        `json:"transaction_id"`
	Status        BookingStatus `json:"status"`

	UserID      int64  `json:"user_id"`
	UserName    string `json:"user_name"`
	Username    string `json:"username"`
	UserContact string `json:"contact"`

	KostID      int64  `json:"kost_id"`
	KostName    string `json:"kost_name"`
	KostAddress string `json:"kost_address"`
	Loc         string `json:"loc"`
	KostType    string `json:"type"`

	Months    int       `json:"months"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`

	Plan           PaymentPlan `json:"payment_option"`
	PaymentMethod  string      `json:"payment"`
	Subtotal       int64       `json:"subtotal"`
	Discount       int64       `json:"discount"`
	AdminFee       int64       `json:"admin_fee"`
	ServiceFee     int64       `json:"service_fee"`
	Total          int64       `json:"total"`
	AmountPaid     int64       `json:"amount_paid"`
	Remaining      int64       `json:"remaining_amount"`
	InvoiceNumber  string      `json:"invoice_number,omitempty"`
	ContractNumber string      `json:"contract_number,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
