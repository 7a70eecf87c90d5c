package transaction

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hanqt132-beep/kost-versi2/model"
	qrisrepo "github.com/hanqt132-beep/kost-versi2/repository/qris"
	"github.com/hanqt132-beep/kost-versi2/service/pricing"
)

// errors used by controllers

type ErrCode string

const (
	ErrUserNotFound      ErrCode = "USER_NOT_FOUND"
	ErrKostNotFound      ErrCode = "KOST_NOT_FOUND"
	ErrKostUnavailable   ErrCode = "KOST_UNAVAILABLE"
	ErrNotFound          ErrCode = "NOT_FOUND"
	ErrNotOwner          ErrCode = "NOT_OWNER"
	ErrBadInput          ErrCode = "BAD_INPUT"
	ErrInvalidTransition ErrCode = "INVALID_TRANSITION"
	ErrExpired           ErrCode = "EXPIRED"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// PaymentTTL is the fixed window a transaction stays payable after creation.
const PaymentTTL = 300 * time.Second

// dto

type InitiateReq struct {
	KostID    int64
	Months    int
	StartDate time.Time
	Plan      model.PaymentPlan
}

type Created struct {
	Transaction  *model.Transaction
	QRPayload    string
	PaymentDueAt time.Time
}

type Repo interface {
	GetUser(ctx context.Context, userID int64) (*model.User, error)
	GetKost(ctx context.Context, kostID int64) (*model.Kost, error)

	Insert(ctx context.Context, tx *sql.Tx, t *model.Transaction) error
	GetForUpdate(ctx context.Context, tx *sql.Tx, transactionID string) (*model.Transaction, error)
	Update(ctx context.Context, tx *sql.Tx, t *model.Transaction) error
	InsertBooking(ctx context.Context, tx *sql.Tx, b *model.Booking) (bool, error)

	ByID(ctx context.Context, transactionID string) (*model.Transaction, error)
	ByChargeID(ctx context.Context, chargeID string) (string, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Transaction, error)
	ListAll(ctx context.Context) ([]model.Transaction, error)
	ExpireBefore(ctx context.Context, cutoff time.Time, reason string) (int64, error)
}

type Service interface {
	// Initiate freezes the price breakdown, resolves the plan, and creates the
	// transaction in INITIATED along with its gateway charge.
	Initiate(ctx context.Context, userID int64, req InitiateReq) (*Created, error)

	// User-driven lifecycle events.
	SelectPayment(ctx context.Context, userID int64, transactionID string) (*model.Transaction, error)
	AcceptContract(ctx context.Context, userID int64, transactionID string) (*model.Transaction, error)
	Scan(ctx context.Context, userID int64, transactionID, qrData string) (*model.Transaction, error)
	Confirm(ctx context.Context, userID int64, transactionID string) (*model.Transaction, error)
	Cancel(ctx context.Context, userID int64, transactionID, reason string) (*model.Transaction, error)

	// Terminal operations driven by the payment gateway callback.
	Complete(ctx context.Context, transactionID string) (*model.Transaction, error)
	Fail(ctx context.Context, transactionID, reason string) (*model.Transaction, error)
	ByChargeID(ctx context.Context, chargeID string) (string, error)

	ByID(ctx context.Context, userID int64, transactionID string) (*model.Transaction, error)
	Mine(ctx context.Context, userID int64) ([]model.Transaction, error)
	All(ctx context.Context) ([]model.Transaction, error)
}

// ----- Service implementation -----

type service struct {
	db       *sql.DB
	r        Repo
	q        qrisrepo.Repo
	resolver pricing.Resolver
	now      func() time.Time
}

func New(db *sql.DB, r Repo, q qrisrepo.Repo) Service {
	return &service{db: db, r: r, q: q, resolver: pricing.NewResolver(), now: time.Now}
}

func (s *service) Initiate(ctx context.Context, userID int64, req InitiateReq) (*Created, error) {
	if req.Months <= 0 || !req.Plan.Valid() || req.StartDate.IsZero() {
		return nil, makeErr(ErrBadInput)
	}

	user, err := s.r.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrUserNotFound)
		}
		return nil, err
	}

	kost, err := s.r.GetKost(ctx, req.KostID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrKostNotFound)
		}
		return nil, err
	}
	if !kost.Available {
		return nil, makeErr(ErrKostUnavailable)
	}

	quote, err := pricing.Compute(kost.Price, req.Months, kost.Promo, kost.PromoPercent, req.Plan)
	if err != nil {
		return nil, makeErr(ErrBadInput)
	}
	outcome, err := s.resolver.Resolve(req.Plan, quote.Total, req.StartDate)
	if err != nil {
		return nil, makeErr(ErrBadInput)
	}

	now := s.now().UTC()
	due := now.Add(PaymentTTL)

	t := &model.Transaction{
		TransactionID:   newTransactionID(now),
		ReferenceNumber: newReferenceNumber(),
		InvoiceNumber:   newInvoiceNumber(now),
		ContractNumber:  newContractNumber(now),

		Plan:     req.Plan,
		PlanName: req.Plan.DisplayName(),

		BaseAmount: quote.Subtotal,
		Subtotal:   quote.Subtotal,
		Discount:   quote.Discount,
		AdminFee:   quote.AdminFee,
		ServiceFee: quote.ServiceFee,
		Total:      quote.Total,
		Remaining:  outcome.Remaining,

		DPPercentage: outcome.DPPercentage,
		DPAmount:     outcome.DPAmount,
		Installments: outcome.Installments,

		DepositAmount:    outcome.DepositAmount,
		VerificationCode: outcome.VerificationCode,

		PaymentMethod:  paymentMethodFor(req.Plan),
		PaymentChannel: paymentChannelFor(req.Plan),

		Status: model.TxInitiated,

		UserID:      user.ID,
		UserName:    user.Name,
		Username:    user.Username,
		UserContact: user.Contact,

		KostID:         kost.ID,
		KostName:       kost.Name,
		KostAddress:    kost.Address,
		KostOwner:      kost.Owner,
		KostOwnerPhone: kost.OwnerPhone,
		Loc:            kost.Loc,
		KostType:       string(kost.Type),

		Months:    req.Months,
		StartDate: req.StartDate,
		EndDate:   req.StartDate.AddDate(0, req.Months, 0),

		CreatedAt: now,
		ExpiresAt: due,
	}

	charge, err := s.q.CreateCharge(qrisrepo.CreateChargeReq{
		ExternalID:  fmt.Sprintf("txn:%s", t.TransactionID),
		Amount:      outcome.AmountDueNow,
		Description: fmt.Sprintf("Booking %s (%d bulan)", kost.Name, req.Months),
		ExpirySec:   int(PaymentTTL.Seconds()),
	})
	if err != nil {
		return nil, err
	}
	t.GatewayChargeID = &charge.ChargeID

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = s.r.Insert(ctx, tx, t); err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}

	return &Created{Transaction: t, QRPayload: charge.QRString, PaymentDueAt: due}, nil
}

func paymentMethodFor(plan model.PaymentPlan) string {
	if plan == model.PlanPayOnLocation {
		return "Cash"
	}
	return "QRIS"
}

func paymentChannelFor(plan model.PaymentPlan) string {
	if plan == model.PlanPayOnLocation {
		return "Bayar di Tempat"
	}
	return "Scan QR"
}

func (s *service) SelectPayment(ctx context.Context, userID int64, transactionID string) (*model.Transaction, error) {
	return s.transition(ctx, userID, transactionID, func(t *model.Transaction, _ time.Time) error {
		return applySelectPayment(t)
	})
}

func (s *service) AcceptContract(ctx context.Context, userID int64, transactionID string) (*model.Transaction, error) {
	return s.transition(ctx, userID, transactionID, applyAcceptContract)
}

func (s *service) Scan(ctx context.Context, userID int64, transactionID, qrData string) (*model.Transaction, error) {
	return s.transition(ctx, userID, transactionID, func(t *model.Transaction, now time.Time) error {
		return applyScan(t, qrData, now)
	})
}

func (s *service) Confirm(ctx context.Context, userID int64, transactionID string) (*model.Transaction, error) {
	return s.transition(ctx, userID, transactionID, applyConfirm)
}

func (s *service) Cancel(ctx context.Context, userID int64, transactionID, reason string) (*model.Transaction, error) {
	if reason == "" {
		reason = "dibatalkan oleh pengguna"
	}
	return s.transition(ctx, userID, transactionID, func(t *model.Transaction, now time.Time) error {
		return applyFail(t, reason, now)
	})
}

// transition loads the row FOR UPDATE, so concurrent events on the same
// transaction serialize on the row lock and apply one at a time.
func (s *service) transition(ctx context.Context, userID int64, transactionID string, apply func(*model.Transaction, time.Time) error) (t *model.Transaction, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	t, err = s.r.GetForUpdate(ctx, tx, transactionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrNotFound)
		}
		return nil, err
	}
	if userID != 0 && t.UserID != userID {
		return nil, makeErr(ErrNotOwner)
	}

	now := s.now().UTC()
	if !t.Status.IsTerminal() && now.After(t.ExpiresAt) {
		if err = applyExpire(t, now); err != nil {
			return nil, err
		}
		if err = s.r.Update(ctx, tx, t); err != nil {
			return nil, err
		}
		if err = tx.Commit(); err != nil {
			return nil, err
		}
		return nil, makeErr(ErrExpired)
	}

	if err = apply(t, now); err != nil {
		return nil, err
	}
	if err = s.r.Update(ctx, tx, t); err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return t, nil
}

// Complete settles the transaction and materializes its booking inside one SQL
// tx. Calling it again for the same transaction is a no-op.
func (s *service) Complete(ctx context.Context, transactionID string) (t *model.Transaction, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	t, err = s.r.GetForUpdate(ctx, tx, transactionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrNotFound)
		}
		return nil, err
	}

	now := s.now().UTC()
	alreadyDone, err := applyComplete(t, now)
	if err != nil {
		return nil, err
	}
	if alreadyDone {
		_ = tx.Rollback()
		return t, nil
	}

	if err = s.r.Update(ctx, tx, t); err != nil {
		return nil, err
	}

	booking := materialize(t, uuid.NewString(), now)
	if _, err = s.r.InsertBooking(ctx, tx, &booking); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *service) Fail(ctx context.Context, transactionID, reason string) (*model.Transaction, error) {
	if reason == "" {
		reason = "pembayaran gagal"
	}
	return s.transition(ctx, 0, transactionID, func(t *model.Transaction, now time.Time) error {
		return applyFail(t, reason, now)
	})
}

func (s *service) ByChargeID(ctx context.Context, chargeID string) (string, error) {
	id, err := s.r.ByChargeID(ctx, chargeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", makeErr(ErrNotFound)
		}
		return "", err
	}
	return id, nil
}

func (s *service) ByID(ctx context.Context, userID int64, transactionID string) (*model.Transaction, error) {
	t, err := s.r.ByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrNotFound)
		}
		return nil, err
	}
	if userID != 0 && t.UserID != userID {
		return nil, makeErr(ErrNotOwner)
	}
	return t, nil
}

func (s *service) Mine(ctx context.Context, userID int64) ([]model.Transaction, error) {
	return s.r.ListByUser(ctx, userID)
}

func (s *service) All(ctx context.Context) ([]model.Transaction, error) {
	return s.r.ListAll(ctx)
}
