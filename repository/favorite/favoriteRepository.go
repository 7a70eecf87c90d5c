package favorite

import (
	"context"
	"database/sql"

	"github.com/hanqt132-beep/kost-versi2/model"
)

type Repo interface {
	// Toggle flips membership and reports whether the kost is now a favorite.
	Toggle(ctx context.Context, userID, kostID int64) (bool, error)
	List(ctx context.Context, userID int64) ([]model.Kost, error)
	Clear(ctx context.Context, userID int64) (int64, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Toggle(ctx context.Context, userID, kostID int64) (bool, error) {
	// Try to remove first; a zero row count means it wasn't there yet.
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM favorites
		WHERE user_id = $1 AND kost_id = $2`,
		userID, kostID)
	if err != nil {
		return false, err
	}
	if aff, _ := res.RowsAffected(); aff > 0 {
		return false, nil
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO favorites (user_id, kost_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, kost_id) DO NOTHING`,
		userID, kostID)
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *repo) List(ctx context.Context, userID int64) ([]model.Kost, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT k.id, k.name, k.type, k.loc, k.address, k.price, k.img,
		       k.rating, k.reviews, k.verified, k.promo, COALESCE(k.promo_percent, 0),
		       k.available, k.rooms, k.owner, k.owner_phone
		FROM favorites f
		JOIN kosts k ON k.id = f.kost_id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Kost
	for rows.Next() {
		var k model.Kost
		if err := rows.Scan(
			&k.ID, &k.Name, &k.Type, &k.Loc, &k.Address, &k.Price, &k.Img,
			&k.Rating, &k.Reviews, &k.Verified, &k.Promo, &k.PromoPercent,
			&k.Available, &k.Rooms, &k.Owner, &k.OwnerPhone,
		); err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, rows.Err()
}

func (r *repo) Clear(ctx context.Context, userID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM favorites WHERE user_id = $1`, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
