package model

import "time"

// PaymentPlan selects how a booking is paid for.
type PaymentPlan string

const (
	PlanFull          PaymentPlan = "OPTION_A" // 100% up front via QRIS
	PlanDeposit       PaymentPlan = "OPTION_B" // 30% down payment + installments
	PlanPayOnLocation PaymentPlan = "OPTION_C" // fixed deposit, balance at check-in
)

func (p PaymentPlan) Valid() bool {
	switch p {
	case PlanFull, PlanDeposit, PlanPayOnLocation:
		return true
	}
	return false
}

func (p PaymentPlan) DisplayName() string {
	switch p {
	case PlanFull:
		return "Bayar Penuh"
	case PlanDeposit:
		return "Bayar DP"
	case PlanPayOnLocation:
		return "Bayar di Tempat"
	}
	return string(p)
}

type TransactionStatus string

const (
	TxInitiated           TransactionStatus = "INITIATED"
	TxPaymentSelected     TransactionStatus = "PAYMENT_SELECTED"
	TxScanning            TransactionStatus = "SCANNING"
	TxScanned             TransactionStatus = "SCANNED"
	TxConfirmed           TransactionStatus = "CONFIRMED"
	TxProcessing          TransactionStatus = "PROCESSING"
	TxCompleted           TransactionStatus = "COMPLETED"
	TxDPPaid              TransactionStatus = "DP_PAID"
	TxWaitingVerification TransactionStatus = "WAITING_VERIFICATION"
	TxFailed              TransactionStatus = "FAILED"
	TxExpired             TransactionStatus = "EXPIRED"
)

// IsTerminal reports whether no further transition is permitted.
func (s TransactionStatus) IsTerminal() bool {
	switch s {
	case TxCompleted, TxDPPaid, TxWaitingVerification, TxFailed, TxExpired:
		return true
	case TxInitiated, TxPaymentSelected, TxScanning, TxScanned, TxConfirmed, TxProcessing:
		return false
	}
	return true // unknown statuses are treated as dead ends
}

// IsSuccess reports whether the status is a success-terminal state.
func (s TransactionStatus) IsSuccess() bool {
	switch s {
	case TxCompleted, TxDPPaid, TxWaitingVerification:
		return true
	}
	return false
}

type InstallmentStatus string

const (
	InstallmentPending InstallmentStatus = "pending"
	InstallmentPaid    InstallmentStatus = "paid"
	InstallmentOverdue InstallmentStatus = "overdue"
)

type Installment struct {
	Number  int               `json:"installment_number"`
	Amount  int64             `json:"amount"`
	DueDate time.Time         `json:"due_date"`
	PaidAt  *time.Time        `json:"paid_at,omitempty"`
	Status  InstallmentStatus `json:"status"`
}

// Transaction is the authoritative record of a booking attempt. Financial
// fields are frozen at creation and never recomputed; all status changes go
// through the transaction service.
type Transaction struct {
	ID              int64  `json:"id"`
	TransactionID   string `json:"transaction_id"`
	ReferenceNumber string `json:"reference_number"`
	InvoiceNumber   string `json:"invoice_number"`
	ContractNumber  string `json:"contract_number"`

	Plan     PaymentPlan `json:"payment_option"`
	PlanName string      `json:"payment_option_name"`

	BaseAmount int64 `json:"base_amount"`
	Subtotal   int64 `json:"subtotal"`
	Discount   int64 `json:"discount"`
	AdminFee   int64 `json:"admin_fee"`
	ServiceFee int64 `json:"service_fee"`
	Total      int64 `json:"total_amount"`

	AmountPaid int64 `json:"amount_paid"`
	Remaining  int64 `json:"remaining_amount"`

	// OPTION_B
	DPPercentage int           `json:"dp_percentage,omitempty"`
	DPAmount     int64         `json:"dp_amount,omitempty"`
	Installments []Installment `json:"installments,omitempty"`

	// OPTION_C
	DepositAmount    int64  `json:"deposit_amount,omitempty"`
	VerificationCode string `json:"verification_code,omitempty"`

	PaymentMethod   string  `json:"payment_method"`
	PaymentChannel  string  `json:"payment_channel"`
	GatewayChargeID *string `json:"-"`

	Status TransactionStatus `json:"status"`

	UserID      int64  `json:"user_id"`
	UserName    string `json:"user_name"`
	Username    string `json:"username"`
	UserContact string `json:"contact"`

	KostID         int64  `json:"kost_id"`
	KostName       string `json:"kost_name"`
	KostAddress    string `json:"kost_address"`
	KostOwner      string `json:"kost_owner"`
	KostOwnerPhone string `json:"kost_owner_phone"`
	Loc            string `json:"loc"`
	KostType       string `json:"type"`

	Months    int       `json:"months"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`

	QRData        *string    `json:"qr_data,omitempty"`
	QRValidatedAt *time.Time `json:"qr_validated_at,omitempty"`

	ContractAcceptedAt *time.Time `json:"contract_accepted_at,omitempty"`
	ConfirmedAt        *time.Time `json:"confirmed_at,omitempty"`
	CompletedAt        *time.Time `json:"completed_at,omitempty"`
	FailedAt           *time.Time `json:"failed_at,omitempty"`
	FailReason         *string    `json:"fail_reason,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
