// repository/kost/kostRepository.go
package kost

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/hanqt132-beep/kost-versi2/model"
)

type Repo interface {
	List(ctx context.Context, f model.KostFilter) ([]model.Kost, error)
	ByID(ctx context.Context, id int64) (*model.Kost, error)
	Insert(ctx context.Context, k *model.Kost) error
	Update(ctx context.Context, k *model.Kost) error
	Delete(ctx context.Context, id int64) (bool, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

const kostColumns = `
	id, name, type, loc, address, price, img, images, facilities,
	rating, reviews, verified, promo, COALESCE(promo_percent, 0), available, rooms,
	description, owner, owner_phone, created_at, updated_at`

func (r *repo) List(ctx context.Context, f model.KostFilter) ([]model.Kost, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}

	if f.Loc != "" {
		add("loc = $%d", f.Loc)
	}
	if f.Type != "" {
		add("type = $%d", f.Type)
	}
	if f.Query != "" {
		args = append(args, f.Query)
		n := len(args)
		where = append(where, fmt.Sprintf(
			"(name ILIKE '%%' || $%d || '%%' OR address ILIKE '%%' || $%d || '%%')", n, n))
	}
	if f.PriceMin > 0 {
		add("price >= $%d", f.PriceMin)
	}
	if f.PriceMax > 0 {
		add("price <= $%d", f.PriceMax)
	}
	if f.PromoOnly {
		where = append(where, "promo = TRUE")
	}

	q := `SELECT ` + kostColumns + ` FROM kosts`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Kost
	for rows.Next() {
		k, err := scanKost(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *k)
	}
	return out, rows.Err()
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Kost, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+kostColumns+` FROM kosts WHERE id = $1`, id)
	return scanKost(row)
}

func (r *repo) Insert(ctx context.Context, k *model.Kost) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO kosts (
			name, type, loc, address, price, img, images, facilities,
			promo, promo_percent, available, rooms, description, owner, owner_phone
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
		RETURNING id, rating, reviews, verified, created_at, updated_at`,
		k.Name, k.Type, k.Loc, k.Address, k.Price, k.Img,
		pq.Array(k.Images), pq.Array(k.Facilities),
		k.Promo, k.PromoPercent, k.Available, k.Rooms, k.Description, k.Owner, k.OwnerPhone,
	).Scan(&k.ID, &k.Rating, &k.Reviews, &k.Verified, &k.CreatedAt, &k.UpdatedAt)
}

func (r *repo) Update(ctx context.Context, k *model.Kost) error {
	k.UpdatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		UPDATE kosts
		SET name = $2, type = $3, loc = $4, address = $5, price = $6,
			img = $7, images = $8, facilities = $9,
			promo = $10, promo_percent = $11, available = $12, rooms = $13,
			description = $14, owner = $15, owner_phone = $16,
			updated_at = $17
		WHERE id = $1`,
		k.ID, k.Name, k.Type, k.Loc, k.Address, k.Price,
		k.Img, pq.Array(k.Images), pq.Array(k.Facilities),
		k.Promo, k.PromoPercent, k.Available, k.Rooms,
		k.Description, k.Owner, k.OwnerPhone, k.UpdatedAt,
	)
	return err
}

// Delete removes the listing only; historical transactions keep their
// denormalized snapshot so they are unaffected.
func (r *repo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM kosts WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanKost(row rowScanner) (*model.Kost, error) {
	k := &model.Kost{}
	var images, facilities pq.StringArray
	err := row.Scan(
		&k.ID, &k.Name, &k.Type, &k.Loc, &k.Address, &k.Price, &k.Img, &images, &facilities,
		&k.Rating, &k.Reviews, &k.Verified, &k.Promo, &k.PromoPercent, &k.Available, &k.Rooms,
		&k.Description, &k.Owner, &k.OwnerPhone, &k.CreatedAt, &k.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	k.Images = images
	k.Facilities = facilities
	return k, nil
}
