package service

import (
	"context"
	"time"

	"github.com/adistaps/simola-backend/internal/dto"
	"github.com/adistaps/simola-backend/internal/model"
	"github.com/adistaps/simola-backend/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func gormNotFound() error {
	return gorm.ErrRecordNotFound
}

// fakeReportRepo merekam pemanggilan supaya test bisa memastikan operasi
// mana yang benar-benar menyentuh database.
type fakeReportRepo struct {
	reports     []model.Report
	createErr   error
	createCalls int
	updateCalls []map[string]interface{}
}

func (f *fakeReportRepo) Create(ctx context.Context, report *model.Report) error {
	f.createCalls++
	if f.createErr != nil {
		return f.createErr
	}
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now()
	}
	f.reports = append(f.reports, *report)
	return nil
}

func (f *fakeReportRepo) FindAll(ctx context.Context, filter dto.ReportFilter) ([]model.Report, error) {
	out := make([]model.Report, len(f.reports))
	copy(out, f.reports)
	return out, nil
}

func (f *fakeReportRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Report, error) {
	for i := range f.reports {
		if f.reports[i].ID == id {
			r := f.reports[i]
			return &r, nil
		}
	}
	return nil, apperror.ErrNotFound
}

func (f *fakeReportRepo) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	f.updateCalls = append(f.updateCalls, fields)
	for i := range f.reports {
		if f.reports[i].ID != id {
			continue
		}
		if v, ok := fields["status"]; ok {
			f.reports[i].Status = v.(model.ReportStatus)
		}
		if v, ok := fields["tanggal_selesai"]; ok {
			t := v.(time.Time)
			f.reports[i].TanggalSelesai = &t
		}
	}
	return nil
}

func (f *fakeReportRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for i := range f.reports {
		if f.reports[i].ID == id {
			f.reports = append(f.reports[:i], f.reports[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeUserRepo struct {
	users       []*model.User
	createErr   error
	profileErr  error
	profiles    []*model.Profile
	roles       map[string]*model.Role
	createCalls int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		roles: map[string]*model.Role{
			model.RoleAdmin:      {ID: 1, Name: model.RoleAdmin},
			model.RolePetugas:    {ID: 2, Name: model.RolePetugas},
			model.RoleDispatcher: {ID: 3, Name: model.RoleDispatcher},
		},
	}
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, user *model.User) error {
	f.createCalls++
	if f.createErr != nil {
		return f.createErr
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.RoleID != nil {
		for _, role := range f.roles {
			if role.ID == *user.RoleID {
				user.Role = *role
			}
		}
	}
	f.users = append(f.users, user)
	return nil
}

func (f *fakeUserRepo) CreateProfile(ctx context.Context, profile *model.Profile) error {
	if f.profileErr != nil {
		return f.profileErr
	}
	f.profiles = append(f.profiles, profile)
	for _, u := range f.users {
		if u.ID == profile.UserID {
			u.Profile = profile
		}
	}
	return nil
}

// cloneUser meniru gorm yang selalu mengembalikan struct segar, bukan
// pointer ke data internal.
func cloneUser(u *model.User) *model.User {
	c := *u
	if u.Profile != nil {
		p := *u.Profile
		c.Profile = &p
	}
	return &c
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	for _, u := range f.users {
		if u.ID.String() == id {
			return cloneUser(u), nil
		}
	}
	return nil, gormNotFound()
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, gormNotFound()
}

func (f *fakeUserRepo) FindRoleByName(ctx context.Context, name string) (*model.Role, error) {
	role, ok := f.roles[name]
	if !ok {
		return nil, gormNotFound()
	}
	return role, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *model.User, profile *model.Profile) error {
	for i, stored := range f.users {
		if stored.ID == user.ID {
			updated := cloneUser(user)
			if profile != nil {
				p := *profile
				updated.Profile = &p
			}
			f.users[i] = updated
			return nil
		}
	}
	return gormNotFound()
}

func (f *fakeUserRepo) FindAll(ctx context.Context) ([]*model.User, error) {
	out := make([]*model.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (f *fakeUserRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.users)), nil
}
