package booking

import (
	"context"
	"database/sql"

	"github.com/hanqt132-beep/kost-versi2/model"
)

type Repo interface {
	ListByUser(ctx context.Context, userID int64) ([]model.Booking, error)
	ClearByUser(ctx context.Context, userID int64) (int64, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) ListByUser(ctx context.Context, userID int64) ([]model.Booking, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, transaction_id, status,
		       user_id, user_name, username, user_contact,
		       kost_id, kost_name, kost_address, loc, kost_type,
		       months, start_date, end_date,
		       payment_option, payment_method,
		       subtotal, discount, admin_fee, service_fee, total,
		       amount_paid, remaining_amount,
		       invoice_number, contract_number, created_at
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Booking
	for rows.Next() {
		var b model.Booking
		if err := rows.Scan(
			&b.ID, &b.TransactionID, &b.Status,
			&b.UserID, &b.UserName, &b.Username, &b.UserContact,
			&b.KostID, &b.KostName, &b.KostAddress, &b.Loc, &b.KostType,
			&b.Months, &b.StartDate, &b.EndDate,
			&b.Plan, &b.PaymentMethod,
			&b.Subtotal, &b.Discount, &b.AdminFee, &b.ServiceFee, &b.Total,
			&b.AmountPaid, &b.Remaining,
			&b.InvoiceNumber, &b.ContractNumber, &b.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *repo) ClearByUser(ctx context.Context, userID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE user_id = $1`, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
