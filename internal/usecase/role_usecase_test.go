package usecase

import (
	"context"
	"errors"
	"testing"

	"dental-lab-backend/internal/delivery/dto"
	"dental-lab-backend/internal/domain/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

type roleFixture struct {
	usecase RoleUsecase
	roles   *fakeRoleRepo
	users   *fakeUserRepo
	audit   *fakeAudit
	mock    sqlmock.Sqlmock
}

func newRoleFixture(t *testing.T) *roleFixture {
	db, mock := newTestDB(t)
	roles := newFakeRoleRepo()
	users := newFakeUserRepo()
	audit := &fakeAudit{}

	return &roleFixture{
		usecase: NewRoleUsecase(db, testLogger(), roles, users, audit),
		roles:   roles,
		users:   users,
		audit:   audit,
		mock:    mock,
	}
}

func TestCreateRole(t *testing.T) {
	f := newRoleFixture(t)
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	resp, err := f.usecase.CreateRole(context.Background(), uuid.New(), &dto.CreateRoleRequest{
		Name:        "TECHNICIAN",
		Description: "Lab bench work",
	})
	if err != nil {
		t.Fatalf("CreateRole returned error: %v", err)
	}
	if resp.Name != "TECHNICIAN" {
		t.Errorf("name = %s, want TECHNICIAN", resp.Name)
	}
	if len(f.audit.actions) != 1 || f.audit.actions[0] != entity.AuditActionRoleCreate {
		t.Errorf("expected role.create audit entry, got %v", f.audit.actions)
	}
}

func TestCreateRoleDuplicateName(t *testing.T) {
	f := newRoleFixture(t)
	f.roles.createErr = &pgconn.PgError{Code: "23505", ConstraintName: "roles_name_key"}
	f.mock.ExpectBegin()
	f.mock.ExpectRollback()

	_, err := f.usecase.CreateRole(context.Background(), uuid.New(), &dto.CreateRoleRequest{Name: "ADMIN"})
	if !errors.Is(err, ErrRoleAlreadyExists) {
		t.Fatalf("expected ErrRoleAlreadyExists, got %v", err)
	}
}

func TestDeleteRoleRefusesWhenAssigned(t *testing.T) {
	f := newRoleFixture(t)
	f.roles.add(&entity.Role{ID: 7, Name: "TECHNICIAN"})
	f.roles.userCount = 3
	f.mock.ExpectBegin()
	f.mock.ExpectRollback()

	err := f.usecase.DeleteRole(context.Background(), uuid.New(), 7)
	if !errors.Is(err, ErrRoleHasUsers) {
		t.Fatalf("expected ErrRoleHasUsers, got %v", err)
	}
	if len(f.roles.deleted) != 0 {
		t.Fatal("expected no delete to happen")
	}
}

func TestDeleteRoleUnassigned(t *testing.T) {
	f := newRoleFixture(t)
	f.roles.add(&entity.Role{ID: 7, Name: "TECHNICIAN"})
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	if err := f.usecase.DeleteRole(context.Background(), uuid.New(), 7); err != nil {
		t.Fatalf("DeleteRole returned error: %v", err)
	}
	if len(f.roles.deleted) != 1 {
		t.Fatal("expected role to be deleted")
	}
}

func TestAssignRole(t *testing.T) {
	f := newRoleFixture(t)
	user := &entity.User{ID: uuid.New(), Email: "tech@lab.test"}
	f.users.add(user)
	f.roles.add(&entity.Role{ID: 2, Name: entity.RoleStaff})
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	if err := f.usecase.AssignRole(context.Background(), uuid.New(), user.ID, 2); err != nil {
		t.Fatalf("AssignRole returned error: %v", err)
	}
	if len(f.roles.assigned) != 1 {
		t.Fatalf("expected 1 assignment, got %d", len(f.roles.assigned))
	}
}

func TestAssignRoleUnknownUser(t *testing.T) {
	f := newRoleFixture(t)
	f.roles.add(&entity.Role{ID: 2, Name: entity.RoleStaff})
	f.mock.ExpectBegin()
	f.mock.ExpectRollback()

	err := f.usecase.AssignRole(context.Background(), uuid.New(), uuid.New(), 2)
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestReplacePermissions(t *testing.T) {
	f := newRoleFixture(t)
	f.roles.add(&entity.Role{ID: 4, Name: "BILLING"})
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	resp, err := f.usecase.ReplacePermissions(context.Background(), uuid.New(), 4, []int{10, 11})
	if err != nil {
		t.Fatalf("ReplacePermissions returned error: %v", err)
	}
	if resp == nil {
		t.Fatal("expected updated role in response")
	}
	if got := f.roles.replaced[4]; len(got) != 2 {
		t.Fatalf("expected permission set replaced, got %v", got)
	}
}
