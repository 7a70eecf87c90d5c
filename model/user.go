package model

import "time"

type User struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Username     string     `json:"username"`
	Contact      string     `json:"contact"`
	PasswordHash string     `json:"-"`
	Photo        string     `json:"photo,omitempty"`
	Role         string     `json:"role"` // admin | user
	NIK          *string    `json:"nik,omitempty"`
	Address      *string    `json:"address,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
}

// RegisterReq represents user registration payload
// swagger:model RegisterReq
type RegisterReq struct {
	Name     string `json:"name" validate:"required"`
	Username string `json:"username" validate:"required,min=3"`
	Contact  string `json:"contact" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
	Photo    string `json:"photo"`
}

// LoginReq allows login by username or contact.
// swagger:model LoginReq
type LoginReq struct {
	Identity string `json:"identity" validate:"required"`
	Password string `json:"password" validate:"required"`
}
