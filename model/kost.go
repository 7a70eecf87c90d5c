package model

import "time"

type KostType string

const (
	KostPutri  KostType = "Putri"
	KostPutra  KostType = "Putra"
	KostCampur KostType = "Campur"
)

type Kost struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Type         KostType  `json:"type"`
	Loc          string    `json:"loc"`
	Address      string    `json:"address"`
	Price        int64     `json:"price"` // rupiah per month
	Img          string    `json:"img,omitempty"`
	Images       []string  `json:"images,omitempty"`
	Facilities   []string  `json:"facilities,omitempty"`
	Rating       float64   `json:"rating"`
	Reviews      int       `json:"reviews"`
	Verified     bool      `json:"verified"`
	Promo        bool      `json:"promo"`
	PromoPercent int       `json:"promo_percent,omitempty"`
	Available    bool      `json:"available"`
	Rooms        int       `json:"rooms"`
	Description  string    `json:"description,omitempty"`
	Owner        string    `json:"owner"`
	OwnerPhone   string    `json:"owner_phone"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// swagger:model CreateKostReq
type CreateKostReq struct {
	Name         string   `json:"name" validate:"required"`
	Type         string   `json:"type" validate:"required,oneof=Putri Putra Campur"`
	Loc          string   `json:"loc" validate:"required"`
	Address      string   `json:"address" validate:"required"`
	Price        int64    `json:"price" validate:"required,gt=0"`
	Img          string   `json:"img"`
	Images       []string `json:"images"`
	Facilities   []string `json:"facilities"`
	Promo        bool     `json:"promo"`
	PromoPercent int      `json:"promo_percent" validate:"gte=0,lte=100"`
	Available    bool     `json:"available"`
	Rooms        int      `json:"rooms" validate:"gte=0"`
	Description  string   `json:"description"`
	Owner        string   `json:"owner" validate:"required"`
	OwnerPhone   string   `json:"owner_phone" validate:"required"`
}

// swagger:model UpdateKostReq
type UpdateKostReq struct {
	Name         *string  `json:"name"`
	Type         *string  `json:"type" validate:"omitempty,oneof=Putri Putra Campur"`
	Loc          *string  `json:"loc"`
	Address      *string  `json:"address"`
	Price        *int64   `json:"price" validate:"omitempty,gt=0"`
	Img          *string  `json:"img"`
	Images       []string `json:"images"`
	Facilities   []string `json:"facilities"`
	Promo        *bool    `json:"promo"`
	PromoPercent *int     `json:"promo_percent" validate:"omitempty,gte=0,lte=100"`
	Available    *bool    `json:"available"`
	Rooms        *int     `json:"rooms" validate:"omitempty,gte=0"`
	Description  *string  `json:"description"`
	Owner        *string  `json:"owner"`
	OwnerPhone   *string  `json:"owner_phone"`
}

// KostFilter narrows listing queries; zero values mean "no constraint".
type KostFilter struct {
	Loc       string
	Type      string
	Query     string
	PriceMin  int64
	PriceMax  int64
	PromoOnly bool
}
