package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/parkgrid/parkgrid-api/internal/dto"
	"github.com/parkgrid/parkgrid-api/internal/models"
	appErrors "github.com/parkgrid/parkgrid-api/pkg/errors"
)

type userRepoStub struct {
	users   map[string]*models.User
	filter  models.UserFilter
	deleted []string
}

func newUserRepoStub() *userRepoStub {
	return &userRepoStub{users: make(map[string]*models.User)}
}

func (m *userRepoStub) List(ctx context.Context, filter models.UserFilter) ([]models.User, int, error) {
	m.filter = filter
	result := make([]models.User, 0, len(m.users))
	for _, user := range m.users {
		result = append(result, *user)
	}
	return result, len(result), nil
}

func (m *userRepoStub) FindByID(ctx context.Context, id string) (*models.User, error) {
	if user, ok := m.users[id]; ok {
		clone := *user
		return &clone, nil
	}
	return nil, sql.ErrNoRows
}

func (m *userRepoStub) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *userRepoStub) Create(ctx context.Context, user *models.User) error {
	m.users[user.ID] = user
	return nil
}

func (m *userRepoStub) Update(ctx context.Context, user *models.User) error {
	m.users[user.ID] = user
	return nil
}

func (m *userRepoStub) Delete(ctx context.Context, id string) error {
	if user, ok := m.users[id]; ok {
		user.Active = false
		m.deleted = append(m.deleted, id)
		return nil
	}
	return sql.ErrNoRows
}

type pendingCheckStub struct {
	pendingUsers    map[string]bool
	pendingVehicles map[string]bool
}

func (m *pendingCheckStub) HasPendingForUser(ctx context.Context, userID string) (bool, error) {
	return m.pendingUsers[userID], nil
}

func (m *pendingCheckStub) HasPendingForVehicle(ctx context.Context, vehicleID, excludeID string) (bool, error) {
	return m.pendingVehicles[vehicleID], nil
}

func newUserServiceForTest(repo *userRepoStub, pending *pendingCheckStub, audit *auditStub) *UserService {
	if pending == nil {
		pending = &pendingCheckStub{}
	}
	if audit == nil {
		audit = &auditStub{}
	}
	return NewUserService(repo, pending, audit, validator.New(), zap.NewNop())
}

func TestUserServiceCreate(t *testing.T) {
	repo := newUserRepoStub()
	audit := &auditStub{}
	svc := newUserServiceForTest(repo, nil, audit)

	user, err := svc.Create(context.Background(), dto.CreateUserRequest{
		Email:    "Admin@Example.com",
		Password: "password",
		FullName: "Lot Admin",
		Role:     models.RoleAdmin,
	}, "admin-1", models.RequestMeta{})
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", user.Email)
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.True(t, user.Active)
	assert.NotEqual(t, "password", user.PasswordHash)
	require.Len(t, audit.logs, 1)
	assert.Equal(t, models.AuditActionUserCreate, audit.logs[0].Action)
}

func TestUserServiceCreateDuplicateEmail(t *testing.T) {
	repo := newUserRepoStub()
	repo.users["u1"] = &models.User{ID: "u1", Email: "taken@example.com"}
	svc := newUserServiceForTest(repo, nil, nil)

	_, err := svc.Create(context.Background(), dto.CreateUserRequest{
		Email:    "taken@example.com",
		Password: "password",
		FullName: "Duplicate",
		Role:     models.RoleUser,
	}, "admin-1", models.RequestMeta{})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
}

func TestUserServiceUpdateOwnRoleForbidden(t *testing.T) {
	repo := newUserRepoStub()
	repo.users["admin-1"] = &models.User{ID: "admin-1", Email: "admin@example.com", Role: models.RoleAdmin, Active: true}
	svc := newUserServiceForTest(repo, nil, nil)

	role := models.RoleUser
	_, err := svc.Update(context.Background(), "admin-1", dto.UpdateUserRequest{Role: &role}, "admin-1", models.RequestMeta{})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErr.Code)
	assert.Equal(t, models.RoleAdmin, repo.users["admin-1"].Role)
}

func TestUserServiceUpdateRoleByOtherAdmin(t *testing.T) {
	repo := newUserRepoStub()
	repo.users["u1"] = &models.User{ID: "u1", Email: "user@example.com", Role: models.RoleUser, Active: true}
	svc := newUserServiceForTest(repo, nil, nil)

	role := models.RoleAdmin
	updated, err := svc.Update(context.Background(), "u1", dto.UpdateUserRequest{Role: &role}, "admin-1", models.RequestMeta{})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, updated.Role)
}

func TestUserServiceDeleteSelfForbidden(t *testing.T) {
	repo := newUserRepoStub()
	repo.users["admin-1"] = &models.User{ID: "admin-1", Active: true}
	svc := newUserServiceForTest(repo, nil, nil)

	err := svc.Delete(context.Background(), "admin-1", "admin-1", models.RequestMeta{})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErr.Code)
	assert.True(t, repo.users["admin-1"].Active)
}

func TestUserServiceDeleteBlockedOnPendingRequest(t *testing.T) {
	repo := newUserRepoStub()
	repo.users["u1"] = &models.User{ID: "u1", Active: true}
	pending := &pendingCheckStub{pendingUsers: map[string]bool{"u1": true}}
	svc := newUserServiceForTest(repo, pending, nil)

	err := svc.Delete(context.Background(), "u1", "admin-1", models.RequestMeta{})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrActiveRequest.Code, appErr.Code)
	assert.True(t, repo.users["u1"].Active)
}

func TestUserServiceDeleteDeactivates(t *testing.T) {
	repo := newUserRepoStub()
	repo.users["u1"] = &models.User{ID: "u1", Active: true}
	audit := &auditStub{}
	svc := newUserServiceForTest(repo, nil, audit)

	err := svc.Delete(context.Background(), "u1", "admin-1", models.RequestMeta{})
	require.NoError(t, err)
	assert.False(t, repo.users["u1"].Active)
	require.Len(t, audit.logs, 1)
	assert.Equal(t, models.AuditActionUserDelete, audit.logs[0].Action)
}

func TestUserServiceUpdateProfileEmailTaken(t *testing.T) {
	repo := newUserRepoStub()
	repo.users["u1"] = &models.User{ID: "u1", Email: "me@example.com", Active: true}
	repo.users["u2"] = &models.User{ID: "u2", Email: "taken@example.com", Active: true}
	svc := newUserServiceForTest(repo, nil, nil)

	email := "taken@example.com"
	_, err := svc.UpdateProfile(context.Background(), "u1", dto.UpdateProfileRequest{Email: &email})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
}

func TestUserServiceList(t *testing.T) {
	repo := newUserRepoStub()
	repo.users["u1"] = &models.User{ID: "u1"}
	repo.users["u2"] = &models.User{ID: "u2"}
	svc := newUserServiceForTest(repo, nil, nil)

	users, pagination, err := svc.List(context.Background(), models.UserFilter{Page: 2, PageSize: 10})
	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, 2, pagination.Page)
	assert.Equal(t, 10, pagination.PageSize)
	assert.Equal(t, 2, pagination.TotalCount)
}
