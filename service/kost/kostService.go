package kost

import (
	"context"
	"database/sql"
	"errors"

	"github.com/hanqt132-beep/kost-versi2/model"
	kostrepo "github.com/hanqt132-beep/kost-versi2/repository/kost"
)

type ErrCode string

const (
	ErrNotFound ErrCode = "KOST_NOT_FOUND"
	ErrBadInput ErrCode = "BAD_INPUT"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

type Repo = kostrepo.Repo

type Service interface {
	List(ctx context.Context, f model.KostFilter) ([]model.Kost, error)
	Detail(ctx context.Context, id int64) (*model.Kost, error)
	Create(ctx context.Context, req model.CreateKostReq) (*model.Kost, error)
	Update(ctx context.Context, id int64, req model.UpdateKostReq) (*model.Kost, error)
	Delete(ctx context.Context, id int64) error
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) List(ctx context.Context, f model.KostFilter) ([]model.Kost, error) {
	return s.r.List(ctx, f)
}

func (s *service) Detail(ctx context.Context, id int64) (*model.Kost, error) {
	k, err := s.r.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrNotFound)
		}
		return nil, err
	}
	return k, nil
}

func (s *service) Create(ctx context.Context, req model.CreateKostReq) (*model.Kost, error) {
	if req.Name == "" || req.Price <= 0 || req.Owner == "" {
		return nil, makeErr(ErrBadInput)
	}
	if req.Promo && (req.PromoPercent < 0 || req.PromoPercent > 100) {
		return nil, makeErr(ErrBadInput)
	}

	k := &model.Kost{
		Name:         req.Name,
		Type:         model.KostType(req.Type),
		Loc:          req.Loc,
		Address:      req.Address,
		Price:        req.Price,
		Img:          req.Img,
		Images:       req.Images,
		Facilities:   req.Facilities,
		Promo:        req.Promo,
		PromoPercent: req.PromoPercent,
		Available:    req.Available,
		Rooms:        req.Rooms,
		Description:  req.Description,
		Owner:        req.Owner,
		OwnerPhone:   req.OwnerPhone,
	}
	if err := s.r.Insert(ctx, k); err != nil {
		return nil, err
	}
	return k, nil
}

func (s *service) Update(ctx context.Context, id int64, req model.UpdateKostReq) (*model.Kost, error) {
	k, err := s.r.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrNotFound)
		}
		return nil, err
	}

	if req.Name != nil {
		k.Name = *req.Name
	}
	if req.Type != nil {
		k.Type = model.KostType(*req.Type)
	}
	if req.Loc != nil {
		k.Loc = *req.Loc
	}
	if req.Address != nil {
		k.Address = *req.Address
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return nil, makeErr(ErrBadInput)
		}
		k.Price = *req.Price
	}
	if req.Img != nil {
		k.Img = *req.Img
	}
	if req.Images != nil {
		k.Images = req.Images
	}
	if req.Facilities != nil {
		k.Facilities = req.Facilities
	}
	if req.Promo != nil {
		k.Promo = *req.Promo
	}
	if req.PromoPercent != nil {
		if *req.PromoPercent < 0 || *req.PromoPercent > 100 {
			return nil, makeErr(ErrBadInput)
		}
		k.PromoPercent = *req.PromoPercent
	}
	if req.Available != nil {
		k.Available = *req.Available
	}
	if req.Rooms != nil {
		k.Rooms = *req.Rooms
	}
	if req.Description != nil {
		k.Description = *req.Description
	}
	if req.Owner != nil {
		k.Owner = *req.Owner
	}
	if req.OwnerPhone != nil {
		k.OwnerPhone = *req.OwnerPhone
	}

	if err := s.r.Update(ctx, k); err != nil {
		return nil, err
	}
	return k, nil
}

// Delete removes the listing without cascading: transactions and bookings keep
// the denormalized snapshot captured at initiation, so history stays intact.
func (s *service) Delete(ctx context.Context, id int64) error {
	ok, err := s.r.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return makeErr(ErrNotFound)
	}
	return nil
}
