package usecase

import (
	"context"
	"io"
	"sync"
	"testing"

	"dental-lab-backend/internal/domain/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newTestDB wires gorm to sqlmock so transaction begin/commit/rollback flow
// through a real driver while repositories are faked.
func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open gorm: %v", err)
	}
	return db, mock
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func boolPtr(b bool) *bool { return &b }

// fakeUserRepo

type fakeUserRepo struct {
	byEmail   map[string]*entity.User
	byID      map[uuid.UUID]*entity.User
	createErr error

	created     []*entity.User
	passwords   map[uuid.UUID]string
	deactivated []uuid.UUID
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail:   map[string]*entity.User{},
		byID:      map[uuid.UUID]*entity.User{},
		passwords: map[uuid.UUID]string{},
	}
}

func (f *fakeUserRepo) add(user *entity.User) {
	f.byEmail[user.Email] = user
	f.byID[user.ID] = user
}

func (f *fakeUserRepo) Create(_ *gorm.DB, user *entity.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.IsActive == nil {
		user.IsActive = boolPtr(true)
	}
	f.created = append(f.created, user)
	f.add(user)
	return nil
}

func (f *fakeUserRepo) FindByEmail(_ *gorm.DB, email string) (*entity.User, error) {
	return f.byEmail[email], nil
}

func (f *fakeUserRepo) FindByID(_ *gorm.DB, id uuid.UUID) (*entity.User, error) {
	return f.byID[id], nil
}

func (f *fakeUserRepo) FindAll(_ *gorm.DB, offset, limit int) ([]entity.User, int64, error) {
	users := make([]entity.User, 0, len(f.byID))
	for _, u := range f.byID {
		users = append(users, *u)
	}
	return users, int64(len(users)), nil
}

func (f *fakeUserRepo) Update(_ *gorm.DB, user *entity.User) error {
	f.add(user)
	return nil
}

func (f *fakeUserRepo) UpdatePassword(_ *gorm.DB, id uuid.UUID, hash string) error {
	f.passwords[id] = hash
	if u, ok := f.byID[id]; ok {
		u.Password = hash
	}
	return nil
}

func (f *fakeUserRepo) SetActive(_ *gorm.DB, id uuid.UUID, active bool) error {
	if !active {
		f.deactivated = append(f.deactivated, id)
	}
	if u, ok := f.byID[id]; ok {
		u.IsActive = boolPtr(active)
	}
	return nil
}

// fakeRoleRepo

type fakeRoleRepo struct {
	byName    map[string]*entity.Role
	byID      map[int]*entity.Role
	userCount int64
	createErr error

	assigned [][2]string
	replaced map[int][]int
	deleted  []int
}

func newFakeRoleRepo() *fakeRoleRepo {
	return &fakeRoleRepo{
		byName:   map[string]*entity.Role{},
		byID:     map[int]*entity.Role{},
		replaced: map[int][]int{},
	}
}

func (f *fakeRoleRepo) add(role *entity.Role) {
	f.byName[role.Name] = role
	f.byID[role.ID] = role
}

func (f *fakeRoleRepo) Create(_ *gorm.DB, role *entity.Role) error {
	if f.createErr != nil {
		return f.createErr
	}
	if role.ID == 0 {
		role.ID = len(f.byID) + 1
	}
	f.add(role)
	return nil
}

func (f *fakeRoleRepo) FindByID(_ *gorm.DB, id int) (*entity.Role, error) {
	return f.byID[id], nil
}

func (f *fakeRoleRepo) FindByName(_ *gorm.DB, name string) (*entity.Role, error) {
	return f.byName[name], nil
}

func (f *fakeRoleRepo) FindAll(_ *gorm.DB) ([]entity.Role, error) {
	roles := make([]entity.Role, 0, len(f.byID))
	for _, r := range f.byID {
		roles = append(roles, *r)
	}
	return roles, nil
}

func (f *fakeRoleRepo) Delete(_ *gorm.DB, id int) error {
	f.deleted = append(f.deleted, id)
	delete(f.byID, id)
	return nil
}

func (f *fakeRoleRepo) CountUsers(_ *gorm.DB, roleID int) (int64, error) {
	return f.userCount, nil
}

func (f *fakeRoleRepo) AddToUser(_ *gorm.DB, userID uuid.UUID, roleID int) error {
	f.assigned = append(f.assigned, [2]string{userID.String(), f.byID[roleID].Name})
	return nil
}

func (f *fakeRoleRepo) RemoveFromUser(_ *gorm.DB, userID uuid.UUID, roleID int) error {
	return nil
}

func (f *fakeRoleRepo) ReplacePermissions(_ *gorm.DB, roleID int, permissionIDs []int) error {
	f.replaced[roleID] = permissionIDs
	return nil
}

func (f *fakeRoleRepo) CreatePermission(_ *gorm.DB, permission *entity.Permission) error {
	if permission.ID == 0 {
		permission.ID = 1
	}
	return nil
}

func (f *fakeRoleRepo) FindAllPermissions(_ *gorm.DB) ([]entity.Permission, error) {
	return nil, nil
}

// fakeSessionRepo

type fakeSessionRepo struct {
	sessions map[string]*entity.Session

	deletedTokens []string
	deletedUsers  []uuid.UUID
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]*entity.Session{}}
}

func (f *fakeSessionRepo) Create(_ *gorm.DB, session *entity.Session) error {
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	f.sessions[session.RefreshToken] = session
	return nil
}

func (f *fakeSessionRepo) FindByToken(_ *gorm.DB, refreshToken string) (*entity.Session, error) {
	return f.sessions[refreshToken], nil
}

func (f *fakeSessionRepo) DeleteByToken(_ *gorm.DB, refreshToken string) error {
	f.deletedTokens = append(f.deletedTokens, refreshToken)
	delete(f.sessions, refreshToken)
	return nil
}

func (f *fakeSessionRepo) DeleteAllByUserID(_ *gorm.DB, userID uuid.UUID) error {
	f.deletedUsers = append(f.deletedUsers, userID)
	for token, s := range f.sessions {
		if s.UserID == userID {
			delete(f.sessions, token)
		}
	}
	return nil
}

func (f *fakeSessionRepo) DeleteExpired(_ *gorm.DB) (int64, error) {
	return 0, nil
}

// fakeCaseRepo

type fakeCaseRepo struct {
	cases map[uuid.UUID]*entity.Case
	files map[uuid.UUID]*entity.CaseFile
	notes []entity.CaseNote

	createErr     error
	createFileErr error
	updated       []*entity.Case
}

func newFakeCaseRepo() *fakeCaseRepo {
	return &fakeCaseRepo{
		cases: map[uuid.UUID]*entity.Case{},
		files: map[uuid.UUID]*entity.CaseFile{},
	}
}

func (f *fakeCaseRepo) Create(_ *gorm.DB, c *entity.Case) error {
	if f.createErr != nil {
		return f.createErr
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	f.cases[c.ID] = c
	return nil
}

func (f *fakeCaseRepo) FindByID(_ *gorm.DB, id uuid.UUID) (*entity.Case, error) {
	return f.cases[id], nil
}

func (f *fakeCaseRepo) FindAll(_ *gorm.DB, filter entity.CaseFilter, offset, limit int) ([]entity.Case, int64, error) {
	cases := make([]entity.Case, 0, len(f.cases))
	for _, c := range f.cases {
		cases = append(cases, *c)
	}
	return cases, int64(len(cases)), nil
}

func (f *fakeCaseRepo) Update(_ *gorm.DB, c *entity.Case) error {
	f.updated = append(f.updated, c)
	f.cases[c.ID] = c
	return nil
}

func (f *fakeCaseRepo) Delete(_ *gorm.DB, id uuid.UUID) error {
	delete(f.cases, id)
	return nil
}

func (f *fakeCaseRepo) CreateNote(_ *gorm.DB, note *entity.CaseNote) error {
	if note.ID == uuid.Nil {
		note.ID = uuid.New()
	}
	f.notes = append(f.notes, *note)
	return nil
}

func (f *fakeCaseRepo) FindNotes(_ *gorm.DB, caseID uuid.UUID, includeInternal bool) ([]entity.CaseNote, error) {
	var notes []entity.CaseNote
	for _, n := range f.notes {
		if n.CaseID != caseID {
			continue
		}
		if n.IsInternal && !includeInternal {
			continue
		}
		notes = append(notes, n)
	}
	return notes, nil
}

func (f *fakeCaseRepo) CreateFile(_ *gorm.DB, file *entity.CaseFile) error {
	if f.createFileErr != nil {
		return f.createFileErr
	}
	if file.ID == uuid.Nil {
		file.ID = uuid.New()
	}
	f.files[file.ID] = file
	return nil
}

func (f *fakeCaseRepo) FindFiles(_ *gorm.DB, caseID uuid.UUID) ([]entity.CaseFile, error) {
	var files []entity.CaseFile
	for _, file := range f.files {
		if file.CaseID == caseID {
			files = append(files, *file)
		}
	}
	return files, nil
}

func (f *fakeCaseRepo) FindFileByID(_ *gorm.DB, id uuid.UUID) (*entity.CaseFile, error) {
	return f.files[id], nil
}

func (f *fakeCaseRepo) DeleteFile(_ *gorm.DB, id uuid.UUID) error {
	delete(f.files, id)
	return nil
}

// fakeStageRepo

type fakeStageRepo struct {
	stages map[uuid.UUID]*entity.WorkflowStage
	counts map[entity.StageStatus]int64
}

func newFakeStageRepo() *fakeStageRepo {
	return &fakeStageRepo{
		stages: map[uuid.UUID]*entity.WorkflowStage{},
		counts: map[entity.StageStatus]int64{},
	}
}

func (f *fakeStageRepo) Create(_ *gorm.DB, stage *entity.WorkflowStage) error {
	if stage.ID == uuid.Nil {
		stage.ID = uuid.New()
	}
	f.stages[stage.ID] = stage
	return nil
}

func (f *fakeStageRepo) FindByID(_ *gorm.DB, id uuid.UUID) (*entity.WorkflowStage, error) {
	return f.stages[id], nil
}

func (f *fakeStageRepo) FindByCaseID(_ *gorm.DB, caseID uuid.UUID) ([]entity.WorkflowStage, error) {
	var stages []entity.WorkflowStage
	for _, s := range f.stages {
		if s.CaseID == caseID {
			stages = append(stages, *s)
		}
	}
	return stages, nil
}

func (f *fakeStageRepo) Update(_ *gorm.DB, stage *entity.WorkflowStage) error {
	f.stages[stage.ID] = stage
	return nil
}

func (f *fakeStageRepo) Delete(_ *gorm.DB, id uuid.UUID) error {
	delete(f.stages, id)
	return nil
}

func (f *fakeStageRepo) CountByStatus(_ *gorm.DB, caseID uuid.UUID) (map[entity.StageStatus]int64, error) {
	return f.counts, nil
}

// fakeInvoiceRepo

type fakeInvoiceRepo struct {
	invoices map[uuid.UUID]*entity.Invoice
	updated  []*entity.Invoice

	createErr error
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{invoices: map[uuid.UUID]*entity.Invoice{}}
}

func (f *fakeInvoiceRepo) Create(_ *gorm.DB, invoice *entity.Invoice) error {
	if f.createErr != nil {
		return f.createErr
	}
	if invoice.ID == uuid.Nil {
		invoice.ID = uuid.New()
	}
	f.invoices[invoice.ID] = invoice
	return nil
}

func (f *fakeInvoiceRepo) FindByID(_ *gorm.DB, id uuid.UUID) (*entity.Invoice, error) {
	return f.invoices[id], nil
}

func (f *fakeInvoiceRepo) FindByIDForUpdate(_ *gorm.DB, id uuid.UUID) (*entity.Invoice, error) {
	return f.invoices[id], nil
}

func (f *fakeInvoiceRepo) FindAll(_ *gorm.DB, filter entity.InvoiceFilter, offset, limit int) ([]entity.Invoice, int64, error) {
	invoices := make([]entity.Invoice, 0, len(f.invoices))
	for _, inv := range f.invoices {
		invoices = append(invoices, *inv)
	}
	return invoices, int64(len(invoices)), nil
}

func (f *fakeInvoiceRepo) Update(_ *gorm.DB, invoice *entity.Invoice) error {
	f.updated = append(f.updated, invoice)
	f.invoices[invoice.ID] = invoice
	return nil
}

// fakePaymentRepo

type fakePaymentRepo struct {
	payments []entity.Payment
}

func (f *fakePaymentRepo) Create(_ *gorm.DB, payment *entity.Payment) error {
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	f.payments = append(f.payments, *payment)
	return nil
}

func (f *fakePaymentRepo) FindByInvoiceID(_ *gorm.DB, invoiceID uuid.UUID) ([]entity.Payment, error) {
	var payments []entity.Payment
	for _, p := range f.payments {
		if p.InvoiceID == invoiceID {
			payments = append(payments, p)
		}
	}
	return payments, nil
}

func (f *fakePaymentRepo) SumByInvoiceID(_ *gorm.DB, invoiceID uuid.UUID) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, p := range f.payments {
		if p.InvoiceID == invoiceID {
			sum = sum.Add(p.Amount)
		}
	}
	return sum, nil
}

// fakeDentistRepo

type fakeDentistRepo struct {
	profiles     map[uuid.UUID]*entity.DentistProfile
	applications map[uuid.UUID]*entity.DentistApplication
	createErr    error
}

func newFakeDentistRepo() *fakeDentistRepo {
	return &fakeDentistRepo{
		profiles:     map[uuid.UUID]*entity.DentistProfile{},
		applications: map[uuid.UUID]*entity.DentistApplication{},
	}
}

func (f *fakeDentistRepo) Create(_ *gorm.DB, profile *entity.DentistProfile) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.profiles[profile.UserID] = profile
	return nil
}

func (f *fakeDentistRepo) FindByUserID(_ *gorm.DB, userID uuid.UUID) (*entity.DentistProfile, error) {
	return f.profiles[userID], nil
}

func (f *fakeDentistRepo) FindAll(_ *gorm.DB, offset, limit int) ([]entity.DentistProfile, int64, error) {
	profiles := make([]entity.DentistProfile, 0, len(f.profiles))
	for _, p := range f.profiles {
		profiles = append(profiles, *p)
	}
	return profiles, int64(len(profiles)), nil
}

func (f *fakeDentistRepo) Update(_ *gorm.DB, profile *entity.DentistProfile) error {
	f.profiles[profile.UserID] = profile
	return nil
}

func (f *fakeDentistRepo) CreateApplication(_ *gorm.DB, application *entity.DentistApplication) error {
	if application.ID == uuid.Nil {
		application.ID = uuid.New()
	}
	f.applications[application.ID] = application
	return nil
}

func (f *fakeDentistRepo) FindApplicationByID(_ *gorm.DB, id uuid.UUID) (*entity.DentistApplication, error) {
	return f.applications[id], nil
}

func (f *fakeDentistRepo) FindApplications(_ *gorm.DB, status entity.ApplicationStatus, offset, limit int) ([]entity.DentistApplication, int64, error) {
	var applications []entity.DentistApplication
	for _, a := range f.applications {
		if status != "" && a.Status != status {
			continue
		}
		applications = append(applications, *a)
	}
	return applications, int64(len(applications)), nil
}

func (f *fakeDentistRepo) UpdateApplication(_ *gorm.DB, application *entity.DentistApplication) error {
	f.applications[application.ID] = application
	return nil
}

// fakeStaffRepo

type fakeStaffRepo struct {
	profiles  map[uuid.UUID]*entity.StaffProfile
	createErr error
}

func newFakeStaffRepo() *fakeStaffRepo {
	return &fakeStaffRepo{profiles: map[uuid.UUID]*entity.StaffProfile{}}
}

func (f *fakeStaffRepo) Create(_ *gorm.DB, profile *entity.StaffProfile) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.profiles[profile.UserID] = profile
	return nil
}

func (f *fakeStaffRepo) FindByUserID(_ *gorm.DB, userID uuid.UUID) (*entity.StaffProfile, error) {
	return f.profiles[userID], nil
}

func (f *fakeStaffRepo) FindAll(_ *gorm.DB, offset, limit int) ([]entity.StaffProfile, int64, error) {
	profiles := make([]entity.StaffProfile, 0, len(f.profiles))
	for _, p := range f.profiles {
		profiles = append(profiles, *p)
	}
	return profiles, int64(len(profiles)), nil
}

func (f *fakeStaffRepo) Update(_ *gorm.DB, profile *entity.StaffProfile) error {
	f.profiles[profile.UserID] = profile
	return nil
}

// fakeMailer

type sentMail struct {
	to, subject, body string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

func (f *fakeMailer) Send(to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMail{to, subject, body})
	return nil
}

func (f *fakeMailer) SendAsync(to, subject, body string) {
	f.Send(to, subject, body)
}

func (f *fakeMailer) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

// fakeStorage

type fakeStorage struct {
	uploaded []string
	deleted  []string
}

func (f *fakeStorage) Upload(_ context.Context, _ io.Reader, publicID string) (string, error) {
	f.uploaded = append(f.uploaded, publicID)
	return "https://files.example.test/" + publicID, nil
}

func (f *fakeStorage) Delete(_ context.Context, publicID string) error {
	f.deleted = append(f.deleted, publicID)
	return nil
}

// fakeAudit

type fakeAudit struct {
	actions []string
}

func (f *fakeAudit) Log(_ *gorm.DB, _ *uuid.UUID, action, _, _ string, _, _ interface{}) error {
	f.actions = append(f.actions, action)
	return nil
}
