package favorite

import (
	"context"

	"github.com/hanqt132-beep/kost-versi2/model"
)

type Repo interface {
	Toggle(ctx context.Context, userID, kostID int64) (bool, error)
	List(ctx context.Context, userID int64) ([]model.Kost, error)
	Clear(ctx context.Context, userID int64) (int64, error)
}

type Service interface {
	// Toggle reports whether the kost is a favorite after the flip. All
	// operations are no-ops for an unauthenticated (zero) user id.
	Toggle(ctx context.Context, userID, kostID int64) (bool, error)
	List(ctx context.Context, userID int64) ([]model.Kost, error)
	Clear(ctx context.Context, userID int64) (int64, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) Toggle(ctx context.Context, userID, kostID int64) (bool, error) {
	if userID == 0 {
		return false, nil
	}
	return s.r.Toggle(ctx, userID, kostID)
}

func (s *service) List(ctx context.Context, userID int64) ([]model.Kost, error) {
	if userID == 0 {
		return nil, nil
	}
	return s.r.List(ctx, userID)
}

func (s *service) Clear(ctx context.Context, userID int64) (int64, error) {
	if userID == 0 {
		return 0, nil
	}
	return s.r.Clear(ctx, userID)
}
