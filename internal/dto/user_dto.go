package dto

import "github.com/adistaps/simola-backend/internal/model"

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	AccessToken string         `json:"access_token"`
	TokenType   string         `json:"token_type"`
	ExpiresIn   int64          `json:"expires_in"`
	User        *model.User    `json:"user"`
	Role        *model.Role    `json:"role"`
	Profile     *model.Profile `json:"profile"`
}

type CreateUserInput struct {
	Nama         string  `json:"nama" form:"nama" binding:"required"`
	Email        string  `json:"email" form:"email" binding:"required,email"`
	Password     string  `json:"password" form:"password" binding:"required,min=8"`
	Role         string  `json:"role" form:"role" binding:"required,oneof=admin petugas dispatcher"`
	NomorTelepon *string `json:"nomor_telepon" form:"nomor_telepon"`
	UnitKerja    *string `json:"unit_kerja" form:"unit_kerja"`
}

type UpdateUserInput struct {
	Nama         string  `json:"nama" form:"nama"`
	Email        string  `json:"email" form:"email" binding:"omitempty,email"`
	Password     string  `json:"password" form:"password" binding:"omitempty,min=8"`
	Role         string  `json:"role" form:"role" binding:"omitempty,oneof=admin petugas dispatcher"`
	NomorTelepon *string `json:"nomor_telepon" form:"nomor_telepon"`
	UnitKerja    *string `json:"unit_kerja" form:"unit_kerja"`
}

type UpdateProfileInput struct {
	Nama         string  `json:"nama" form:"nama"`
	NomorTelepon *string `json:"nomor_telepon" form:"nomor_telepon"`
	UnitKerja    *string `json:"unit_kerja" form:"unit_kerja"`
}

type UserResponse struct {
	User    *model.User    `json:"user"`
	Role    *model.Role    `json:"role"`
	Profile *model.Profile `json:"profile"`
}
