package booking

import (
	"context"

	"github.com/hanqt132-beep/kost-versi2/model"
	bookingrepo "github.com/hanqt132-beep/kost-versi2/repository/booking"
)

// Bookings are created exclusively by the transaction service when a
// transaction completes; this service is the read side.

type Repo = bookingrepo.Repo

type Service interface {
	Mine(ctx context.Context, userID int64) ([]model.Booking, error)
	Clear(ctx context.Context, userID int64) (int64, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) Mine(ctx context.Context, userID int64) ([]model.Booking, error) {
	if userID == 0 {
		return nil, nil
	}
	return s.r.ListByUser(ctx, userID)
}

func (s *service) Clear(ctx context.Context, userID int64) (int64, error) {
	if userID == 0 {
		return 0, nil
	}
	return s.r.ClearByUser(ctx, userID)
}
