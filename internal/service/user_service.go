package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/adistaps/simola-backend/internal/dto"
	"github.com/adistaps/simola-backend/internal/model"
	"github.com/adistaps/simola-backend/internal/repository"
	"github.com/adistaps/simola-backend/pkg/apperror"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService interface {
	CreateUser(ctx context.Context, input dto.CreateUserInput) (*dto.UserResponse, error)
	GetAllUsers(ctx context.Context) ([]*model.User, error)
	GetUser(ctx context.Context, id string) (*dto.UserResponse, error)
	UpdateUser(ctx context.Context, id string, input dto.UpdateUserInput) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, userID string, input dto.UpdateProfileInput) (*model.Profile, error)
}

type userService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) CreateUser(ctx context.Context, input dto.CreateUserInput) (*dto.UserResponse, error) {
	if _, err := s.repo.FindByEmail(ctx, input.Email); err == nil {
		return nil, fmt.Errorf("%w: email sudah terdaftar", apperror.ErrBadRequest)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	role, err := s.repo.FindRoleByName(ctx, input.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: role %s tidak ditemukan", apperror.ErrBadRequest, input.Role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:        input.Email,
		PasswordHash: string(hash),
		RoleID:       &role.ID,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	profile := &model.Profile{
		UserID:       user.ID,
		Nama:         input.Nama,
		NomorTelepon: input.NomorTelepon,
		UnitKerja:    input.UnitKerja,
	}
	// Insert profile yang gagal tidak membatalkan usernya. Profile bisa
	// sudah ada kalau dibuat proses lain di antara dua insert ini.
	if err := s.repo.CreateProfile(ctx, profile); err != nil {
		log.Printf("profile insert untuk user %s gagal, dilanjutkan: %v", user.ID, err)
	}

	created, err := s.repo.FindByID(ctx, user.ID.String())
	if err != nil {
		return nil, err
	}
	created.PasswordHash = ""

	return &dto.UserResponse{
		User:    created,
		Role:    &created.Role,
		Profile: created.Profile,
	}, nil
}

func (s *userService) GetAllUsers(ctx context.Context) ([]*model.User, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		u.PasswordHash = ""
	}
	return users, nil
}

func (s *userService) GetUser(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	user.PasswordHash = ""

	return &dto.UserResponse{
		User:    user,
		Role:    &user.Role,
		Profile: user.Profile,
	}, nil
}

func (s *userService) UpdateUser(ctx context.Context, id string, input dto.UpdateUserInput) (*dto.UserResponse, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	if input.Email != "" && input.Email != user.Email {
		if _, err := s.repo.FindByEmail(ctx, input.Email); err == nil {
			return nil, fmt.Errorf("%w: email sudah terdaftar", apperror.ErrBadRequest)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Email = input.Email
	}

	if input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	if input.Role != "" {
		role, err := s.repo.FindRoleByName(ctx, input.Role)
		if err != nil {
			return nil, fmt.Errorf("%w: role %s tidak ditemukan", apperror.ErrBadRequest, input.Role)
		}
		user.RoleID = &role.ID
		user.Role = *role
	}

	profile := user.Profile
	if profile == nil {
		profile = &model.Profile{UserID: user.ID}
	}
	if input.Nama != "" {
		profile.Nama = input.Nama
	}
	if input.NomorTelepon != nil {
		profile.NomorTelepon = input.NomorTelepon
	}
	if input.UnitKerja != nil {
		profile.UnitKerja = input.UnitKerja
	}

	if err := s.repo.Update(ctx, user, profile); err != nil {
		return nil, err
	}

	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	updated.PasswordHash = ""

	return &dto.UserResponse{
		User:    updated,
		Role:    &updated.Role,
		Profile: updated.Profile,
	}, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, input dto.UpdateProfileInput) (*model.Profile, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	profile := user.Profile
	if profile == nil {
		profile = &model.Profile{UserID: user.ID}
	}
	if input.Nama != "" {
		profile.Nama = input.Nama
	}
	if input.NomorTelepon != nil {
		profile.NomorTelepon = input.NomorTelepon
	}
	if input.UnitKerja != nil {
		profile.UnitKerja = input.UnitKerja
	}

	if err := s.repo.Update(ctx, user, profile); err != nil {
		return nil, err
	}
	return profile, nil
}
