package transaction

import (
	"time"

	"github.com/hanqt132-beep/kost-versi2/model"
)

// The lifecycle is driven only by the apply* functions below; nothing else
// writes Transaction.Status. Financial fields are frozen at creation and the
// apply functions never touch them except to record what was actually paid.
//
//	INITIATED → PAYMENT_SELECTED → SCANNING → SCANNED → CONFIRMED → PROCESSING
//	                            ↘ (OPTION_C skips the QR steps) ↗
//	PROCESSING → COMPLETED | DP_PAID | WAITING_VERIFICATION
//	any non-terminal → FAILED | EXPIRED

// canTransition is an exhaustive switch rather than a lookup table so a new
// status is a compile-visible concern here and in IsTerminal.
func canTransition(from, to model.TransactionStatus) bool {
	// Cancellation and expiry are legal from every non-terminal state.
	if to == model.TxFailed || to == model.TxExpired {
		return !from.IsTerminal()
	}

	switch from {
	case model.TxInitiated:
		return to == model.TxPaymentSelected
	case model.TxPaymentSelected:
		// OPTION_C has no QR step and goes straight to processing.
		return to == model.TxScanning || to == model.TxProcessing
	case model.TxScanning:
		return to == model.TxScanned
	case model.TxScanned:
		return to == model.TxConfirmed
	case model.TxConfirmed:
		return to == model.TxProcessing
	case model.TxProcessing:
		return to == model.TxCompleted || to == model.TxDPPaid || to == model.TxWaitingVerification
	case model.TxCompleted, model.TxDPPaid, model.TxWaitingVerification, model.TxFailed, model.TxExpired:
		return false
	}
	return false
}

// successStatusFor maps a payment plan to its success-terminal state.
func successStatusFor(plan model.PaymentPlan) model.TransactionStatus {
	switch plan {
	case model.PlanDeposit:
		return model.TxDPPaid
	case model.PlanPayOnLocation:
		return model.TxWaitingVerification
	default:
		return model.TxCompleted
	}
}

func applySelectPayment(t *model.Transaction) error {
	if !canTransition(t.Status, model.TxPaymentSelected) {
		return makeErr(ErrInvalidTransition)
	}
	t.Status = model.TxPaymentSelected
	return nil
}

func applyAcceptContract(t *model.Transaction, now time.Time) error {
	next := model.TxScanning
	if t.Plan == model.PlanPayOnLocation {
		next = model.TxProcessing
	}
	if !canTransition(t.Status, next) {
		return makeErr(ErrInvalidTransition)
	}
	t.Status = next
	t.ContractAcceptedAt = &now
	return nil
}

func applyScan(t *model.Transaction, qrData string, now time.Time) error {
	if qrData == "" {
		return makeErr(ErrBadInput)
	}
	if !canTransition(t.Status, model.TxScanned) {
		return makeErr(ErrInvalidTransition)
	}
	t.Status = model.TxScanned
	t.QRData = &qrData
	t.QRValidatedAt = &now
	return nil
}

// applyConfirm lands in PROCESSING in a single mutation: the intermediate
// CONFIRMED state only exists long enough to record confirmed_at, and keeping
// both writes together means a crash can't strand the row between them.
func applyConfirm(t *model.Transaction, now time.Time) error {
	if !canTransition(t.Status, model.TxConfirmed) {
		return makeErr(ErrInvalidTransition)
	}
	t.Status = model.TxProcessing
	t.ConfirmedAt = &now
	return nil
}

// applyComplete moves a processing transaction to its plan's success terminal
// and settles amount_paid/remaining. A transaction already at that terminal is
// reported as alreadyDone so callers can stay idempotent without mutating it.
func applyComplete(t *model.Transaction, now time.Time) (alreadyDone bool, err error) {
	target := successStatusFor(t.Plan)
	if t.Status == target {
		return true, nil
	}
	if !canTransition(t.Status, target) {
		return false, makeErr(ErrInvalidTransition)
	}

	var paid int64
	switch t.Plan {
	case model.PlanFull:
		paid = t.Total
	case model.PlanDeposit:
		paid = t.DPAmount
	case model.PlanPayOnLocation:
		paid = t.DepositAmount
	}

	t.Status = target
	t.CompletedAt = &now
	t.AmountPaid = paid
	t.Remaining = t.Total - paid
	return false, nil
}

func applyFail(t *model.Transaction, reason string, now time.Time) error {
	if reason == "" {
		return makeErr(ErrBadInput)
	}
	if !canTransition(t.Status, model.TxFailed) {
		return makeErr(ErrInvalidTransition)
	}
	t.Status = model.TxFailed
	t.FailedAt = &now
	t.FailReason = &reason
	return nil
}

// expiryReason is the fixed fail reason for the payment-window timeout.
const expiryReason = "payment window elapsed"

func applyExpire(t *model.Transaction, now time.Time) error {
	if !canTransition(t.Status, model.TxExpired) {
		return makeErr(ErrInvalidTransition)
	}
	reason := expiryReason
	t.Status = model.TxExpired
	t.FailedAt = &now
	t.FailReason = &reason
	return nil
}

// materialize projects a success-terminal transaction into its Booking record.
// Pure mapping; the caller persists it in the same SQL tx as the completion so
// the pair is atomic and at-most-once.
func materialize(t *model.Transaction, id string, now time.Time) model.Booking {
	var status model.BookingStatus
	switch t.Status {
	case model.TxDPPaid:
		status = model.BookingDPPaid
	case model.TxWaitingVerification:
		status = model.BookingWaitingPayment
	default:
		status = model.BookingApproved
	}

	return model.Booking{
		ID:            id,
		TransactionID: t.TransactionID,
		Status:        status,

		UserID:      t.UserID,
		UserName:    t.UserName,
		Username:    t.Username,
		UserContact: t.UserContact,

		KostID:      t.KostID,
		KostName:    t.KostName,
		KostAddress: t.KostAddress,
		Loc:         t.Loc,
		KostType:    t.KostType,

		Months:    t.Months,
		StartDate: t.StartDate,
		EndDate:   t.EndDate,

		Plan:           t.Plan,
		PaymentMethod:  t.PaymentMethod,
		Subtotal:       t.Subtotal,
		Discount:       t.Discount,
		AdminFee:       t.AdminFee,
		ServiceFee:     t.ServiceFee,
		Total:          t.Total,
		AmountPaid:     t.AmountPaid,
		Remaining:      t.Remaining,
		InvoiceNumber:  t.InvoiceNumber,
		ContractNumber: t.ContractNumber,

		CreatedAt: now,
	}
}
