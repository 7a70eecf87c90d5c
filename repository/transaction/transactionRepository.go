// repository/transaction/transactionRepository.go
package transaction

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/hanqt132-beep/kost-versi2/model"
)

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

type repo struct {
	db *sql.DB
}

func New(db *sql.DB) Repo { return &repo{db: db} }

// Lookups against neighbor tables; the service needs them at initiation only.

func (r *repo) GetUser(ctx context.Context, userID int64) (*model.User, error) {
	u := &model.User{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, username, contact, role
		FROM users
		WHERE id = $1`,
		userID,
	).Scan(&u.ID, &u.Name, &u.Username, &u.Contact, &u.Role)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *repo) GetKost(ctx context.Context, kostID int64) (*model.Kost, error) {
	k := &model.Kost{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, type, loc, address, price, promo, COALESCE(promo_percent, 0),
		       available, owner, owner_phone
		FROM kosts
		WHERE id = $1`,
		kostID,
	).Scan(&k.ID, &k.Name, &k.Type, &k.Loc, &k.Address, &k.Price, &k.Promo, &k.PromoPercent,
		&k.Available, &k.Owner, &k.OwnerPhone)
	if err != nil {
		return nil, err
	}
	return k, nil
}

const txColumns = `
	id, transaction_id, reference_number, invoice_number, contract_number,
	payment_option, payment_option_name,
	base_amount, subtotal, discount, admin_fee, service_fee, total_amount,
	amount_paid, remaining_amount,
	dp_percentage, dp_amount, installments,
	deposit_amount, verification_code,
	payment_method, payment_channel, gateway_charge_id,
	status,
	user_id, user_name, username, user_contact,
	kost_id, kost_name, kost_address, kost_owner, kost_owner_phone, loc, kost_type,
	months, start_date, end_date,
	qr_data, qr_validated_at,
	contract_accepted_at, confirmed_at, completed_at, failed_at, fail_reason,
	created_at, expires_at`

func (r *repo) Insert(ctx context.Context, tx *sql.Tx, t *model.Transaction) error {
	inst, err := json.Marshal(t.Installments)
	if err != nil {
		return err
	}
	return tx.QueryRowContext(ctx, `
		INSERT INTO transactions (
			transaction_id, reference_number, invoice_number, contract_number,
			payment_option, payment_option_name,
			base_amount, subtotal, discount, admin_fee, service_fee, total_amount,
			amount_paid, remaining_amount,
			dp_percentage, dp_amount, installments,
			deposit_amount, verification_code,
			payment_method, payment_channel, gateway_charge_id,
			status,
			user_id, user_name, username, user_contact,
			kost_id, kost_name, kost_address, kost_owner, kost_owner_phone, loc, kost_type,
			months, start_date, end_date,
			created_at, expires_at
		) VALUES (
			$1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,
			$20,$21,$22,$23,$24,$25,$26,$27,$28,$29,$30,$31,$32,$33,$34,$35,$36,$37,$38,$39
		)
		RETURNING id`,
		t.TransactionID, t.ReferenceNumber, t.InvoiceNumber, t.ContractNumber,
		t.Plan, t.PlanName,
		t.BaseAmount, t.Subtotal, t.Discount, t.AdminFee, t.ServiceFee, t.Total,
		t.AmountPaid, t.Remaining,
		t.DPPercentage, t.DPAmount, inst,
		t.DepositAmount, nullStr(t.VerificationCode),
		t.PaymentMethod, t.PaymentChannel, t.GatewayChargeID,
		t.Status,
		t.UserID, t.UserName, t.Username, t.UserContact,
		t.KostID, t.KostName, t.KostAddress, t.KostOwner, t.KostOwnerPhone, t.Loc, t.KostType,
		t.Months, t.StartDate, t.EndDate,
		t.CreatedAt, t.ExpiresAt,
	).Scan(&t.ID)
}

func (r *repo) GetForUpdate(ctx context.Context, tx *sql.Tx, transactionID string) (*model.Transaction, error) {
	row := tx.QueryRowContext(ctx, `
		SELECT `+txColumns+`
		FROM transactions
		WHERE transaction_id = $1
		FOR UPDATE`,
		transactionID)
	return scanTransaction(row)
}

// Update writes the fields the state machine mutates after creation. Frozen
// financial columns stay untouched on purpose.
func (r *repo) Update(ctx context.Context, tx *sql.Tx, t *model.Transaction) error {
	inst, err := json.Marshal(t.Installments)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `
		UPDATE transactions
		SET status = $2,
			amount_paid = $3,
			remaining_amount = $4,
			installments = $5,
			qr_data = $6,
			qr_validated_at = $7,
			contract_accepted_at = $8,
			confirmed_at = $9,
			completed_at = $10,
			failed_at = $11,
			fail_reason = $12
		WHERE transaction_id = $1`,
		t.TransactionID, t.Status, t.AmountPaid, t.Remaining, inst,
		t.QRData, t.QRValidatedAt,
		t.ContractAcceptedAt, t.ConfirmedAt, t.CompletedAt, t.FailedAt, t.FailReason,
	)
	return err
}

// InsertBooking reports whether a row was created. The unique index on
// transaction_id makes re-materialization a no-op.
func (r *repo) InsertBooking(ctx context.Context, tx *sql.Tx, b *model.Booking) (bool, error) {
	res, err := tx.ExecContext(ctx, `
		INSERT INTO bookings (
			id, transaction_id, status,
			user_id, user_name, username, user_contact,
			kost_id, kost_name, kost_address, loc, kost_type,
			months, start_date, end_date,
			payment_option, payment_method,
			subtotal, discount, admin_fee, service_fee, total,
			amount_paid, remaining_amount,
			invoice_number, contract_number, created_at
		) VALUES (
			$1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,
			$16,$17,$18,$19,$20,$21,$22,$23,$24,$25,$26,$27
		)
		ON CONFLICT (transaction_id) DO NOTHING`,
		b.ID, b.TransactionID, b.Status,
		b.UserID, b.UserName, b.Username, b.UserContact,
		b.KostID, b.KostName, b.KostAddress, b.Loc, b.KostType,
		b.Months, b.StartDate, b.EndDate,
		b.Plan, b.PaymentMethod,
		b.Subtotal, b.Discount, b.AdminFee, b.ServiceFee, b.Total,
		b.AmountPaid, b.Remaining,
		b.InvoiceNumber, b.ContractNumber, b.CreatedAt,
	)
	if err != nil {
		return false, err
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}

func (r *repo) ByID(ctx context.Context, transactionID string) (*model.Transaction, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+txColumns+`
		FROM transactions
		WHERE transaction_id = $1`,
		transactionID)
	return scanTransaction(row)
}

func (r *repo) ByChargeID(ctx context.Context, chargeID string) (string, error) {
	var id string
	err := r.db.QueryRowContext(ctx, `
		SELECT transaction_id
		FROM transactions
		WHERE gateway_charge_id = $1`,
		chargeID,
	).Scan(&id)
	return id, err
}

func (r *repo) ListByUser(ctx context.Context, userID int64) ([]model.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+txColumns+`
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

func (r *repo) ListAll(ctx context.Context) ([]model.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+txColumns+`
		FROM transactions
		ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

func (r *repo) ExpireBefore(ctx context.Context, cutoff time.Time, reason string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE transactions
		SET status = 'EXPIRED',
			failed_at = $1,
			fail_reason = $2
		WHERE expires_at < $1
		AND status NOT IN ('COMPLETED','DP_PAID','WAITING_VERIFICATION','FAILED','EXPIRED')`,
		cutoff, reason,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// scanning

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (*model.Transaction, error) {
	t := &model.Transaction{}
	var inst []byte
	var code sql.NullString
	err := row.Scan(
		&t.ID, &t.TransactionID, &t.ReferenceNumber, &t.InvoiceNumber, &t.ContractNumber,
		&t.Plan, &t.PlanName,
		&t.BaseAmount, &t.Subtotal, &t.Discount, &t.AdminFee, &t.ServiceFee, &t.Total,
		&t.AmountPaid, &t.Remaining,
		&t.DPPercentage, &t.DPAmount, &inst,
		&t.DepositAmount, &code,
		&t.PaymentMethod, &t.PaymentChannel, &t.GatewayChargeID,
		&t.Status,
		&t.UserID, &t.UserName, &t.Username, &t.UserContact,
		&t.KostID, &t.KostName, &t.KostAddress, &t.KostOwner, &t.KostOwnerPhone, &t.Loc, &t.KostType,
		&t.Months, &t.StartDate, &t.EndDate,
		&t.QRData, &t.QRValidatedAt,
		&t.ContractAcceptedAt, &t.ConfirmedAt, &t.CompletedAt, &t.FailedAt, &t.FailReason,
		&t.CreatedAt, &t.ExpiresAt,
	)
	if err != nil {
		return nil, err
	}
	if len(inst) > 0 {
		if err := json.Unmarshal(inst, &t.Installments); err != nil {
			return nil, err
		}
	}
	t.VerificationCode = code.String
	return t, nil
}

func collect(rows *sql.Rows) ([]model.Transaction, error) {
	defer rows.Close()
	var out []model.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

func nullStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
