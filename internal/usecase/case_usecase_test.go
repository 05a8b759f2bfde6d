package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"dental-lab-backend/internal/delivery/dto"
	"dental-lab-backend/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

type caseFixture struct {
	usecase  CaseUsecase
	cases    *fakeCaseRepo
	dentists *fakeDentistRepo
	storage  *fakeStorage
	mailer   *fakeMailer
}

func newCaseFixture(t *testing.T) *caseFixture {
	db, _ := newTestDB(t)
	cases := newFakeCaseRepo()
	dentists := newFakeDentistRepo()
	storage := &fakeStorage{}
	mailer := &fakeMailer{}

	return &caseFixture{
		usecase:  NewCaseUsecase(db, testLogger(), cases, dentists, storage, mailer),
		cases:    cases,
		dentists: dentists,
		storage:  storage,
		mailer:   mailer,
	}
}

func (f *caseFixture) seedDentist(email string) *entity.DentistProfile {
	profile := &entity.DentistProfile{
		UserID:        uuid.New(),
		LicenseNumber: "LIC-" + uuid.NewString()[:8],
		Status:        entity.DentistStatusVerified,
		User:          entity.User{ID: uuid.New(), Email: email},
	}
	f.dentists.profiles[profile.UserID] = profile
	return profile
}

func TestCreateCase(t *testing.T) {
	f := newCaseFixture(t)
	dentist := f.seedDentist("dentist@clinic.test")

	resp, err := f.usecase.CreateCase(context.Background(), uuid.New(), &dto.CreateCaseRequest{
		DentistID:   dentist.UserID,
		PatientName: "Jordan Doe",
		Description: "Upper molar crown",
	})
	if err != nil {
		t.Fatalf("CreateCase returned error: %v", err)
	}
	if resp.Status != string(entity.CaseStatusReceived) {
		t.Errorf("status = %s, want RECEIVED", resp.Status)
	}
	if resp.Priority != string(entity.CasePriorityMedium) {
		t.Errorf("priority = %s, want MEDIUM default", resp.Priority)
	}
	if !strings.HasPrefix(resp.CaseNumber, "CASE-") {
		t.Errorf("case number %q missing CASE- prefix", resp.CaseNumber)
	}
}

func TestCreateCaseUnknownDentist(t *testing.T) {
	f := newCaseFixture(t)

	_, err := f.usecase.CreateCase(context.Background(), uuid.New(), &dto.CreateCaseRequest{
		DentistID:   uuid.New(),
		PatientName: "Jordan Doe",
	})
	if !errors.Is(err, ErrDentistNotFound) {
		t.Fatalf("expected ErrDentistNotFound, got %v", err)
	}
}

func TestCreateCaseDentistRemovedConcurrently(t *testing.T) {
	f := newCaseFixture(t)
	dentist := f.seedDentist("gone@clinic.test")
	f.cases.createErr = &pgconn.PgError{Code: "23503", ConstraintName: "cases_dentist_id_fkey"}

	_, err := f.usecase.CreateCase(context.Background(), uuid.New(), &dto.CreateCaseRequest{
		DentistID:   dentist.UserID,
		PatientName: "Jordan Doe",
	})
	if !errors.Is(err, ErrDentistNotFound) {
		t.Fatalf("expected ErrDentistNotFound on foreign key violation, got %v", err)
	}
}

func TestUpdateCaseCompletedStampsDateAndNotifies(t *testing.T) {
	f := newCaseFixture(t)
	dentist := f.seedDentist("notify@clinic.test")
	c := &entity.Case{
		ID:        uuid.New(),
		DentistID: dentist.UserID,
		Status:    entity.CaseStatusInProgress,
		Dentist:   *dentist,
	}
	f.cases.cases[c.ID] = c

	completed := string(entity.CaseStatusCompleted)
	resp, err := f.usecase.UpdateCase(context.Background(), c.ID, &dto.UpdateCaseRequest{Status: &completed})
	if err != nil {
		t.Fatalf("UpdateCase returned error: %v", err)
	}
	if resp.CompletedDate == nil {
		t.Fatal("expected completed date to be stamped")
	}
	if f.mailer.count() != 1 {
		t.Fatalf("expected 1 status notification, got %d", f.mailer.count())
	}
}

func TestUpdateCaseSameStatusSendsNothing(t *testing.T) {
	f := newCaseFixture(t)
	dentist := f.seedDentist("quiet@clinic.test")
	c := &entity.Case{
		ID:        uuid.New(),
		DentistID: dentist.UserID,
		Status:    entity.CaseStatusInProgress,
		Dentist:   *dentist,
	}
	f.cases.cases[c.ID] = c

	same := string(entity.CaseStatusInProgress)
	if _, err := f.usecase.UpdateCase(context.Background(), c.ID, &dto.UpdateCaseRequest{Status: &same}); err != nil {
		t.Fatalf("UpdateCase returned error: %v", err)
	}
	if f.mailer.count() != 0 {
		t.Fatalf("expected no notification, got %d", f.mailer.count())
	}
}

func TestListNotesHidesInternal(t *testing.T) {
	f := newCaseFixture(t)
	dentist := f.seedDentist("notes@clinic.test")
	c := &entity.Case{ID: uuid.New(), DentistID: dentist.UserID}
	f.cases.cases[c.ID] = c

	author := uuid.New()
	if _, err := f.usecase.AddNote(context.Background(), c.ID, author, &dto.CreateCaseNoteRequest{
		Content: "Shade A2 confirmed with patient",
	}); err != nil {
		t.Fatalf("AddNote returned error: %v", err)
	}
	if _, err := f.usecase.AddNote(context.Background(), c.ID, author, &dto.CreateCaseNoteRequest{
		Content:    "Technician rework needed",
		IsInternal: true,
	}); err != nil {
		t.Fatalf("AddNote returned error: %v", err)
	}

	external, err := f.usecase.ListNotes(context.Background(), c.ID, false)
	if err != nil {
		t.Fatalf("ListNotes returned error: %v", err)
	}
	if len(external) != 1 {
		t.Fatalf("expected 1 external note, got %d", len(external))
	}

	all, err := f.usecase.ListNotes(context.Background(), c.ID, true)
	if err != nil {
		t.Fatalf("ListNotes returned error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 notes for internal readers, got %d", len(all))
	}
}

func TestAddFileCleansUpOnDBFailure(t *testing.T) {
	f := newCaseFixture(t)
	dentist := f.seedDentist("files@clinic.test")
	c := &entity.Case{ID: uuid.New(), DentistID: dentist.UserID}
	f.cases.cases[c.ID] = c
	f.cases.createFileErr = errors.New("insert failed")

	_, err := f.usecase.AddFile(context.Background(), c.ID, uuid.New(), "scan.stl", "model/stl", 1024, strings.NewReader("data"))
	if err == nil {
		t.Fatal("expected AddFile to fail")
	}
	if len(f.storage.uploaded) != 1 || len(f.storage.deleted) != 1 {
		t.Fatalf("expected uploaded object to be cleaned up, uploads=%d deletes=%d", len(f.storage.uploaded), len(f.storage.deleted))
	}
	if f.storage.uploaded[0] != f.storage.deleted[0] {
		t.Fatal("expected the same object to be deleted that was uploaded")
	}
}

func TestDeleteFile(t *testing.T) {
	f := newCaseFixture(t)
	file := &entity.CaseFile{
		ID:          uuid.New(),
		CaseID:      uuid.New(),
		FileName:    "scan.stl",
		StoragePath: "cases/x/scan.stl",
	}
	f.cases.files[file.ID] = file

	if err := f.usecase.DeleteFile(context.Background(), file.ID); err != nil {
		t.Fatalf("DeleteFile returned error: %v", err)
	}
	if len(f.storage.deleted) != 1 || f.storage.deleted[0] != file.StoragePath {
		t.Fatalf("expected stored object removed, got %v", f.storage.deleted)
	}
	if _, ok := f.cases.files[file.ID]; ok {
		t.Fatal("expected file row removed")
	}
}
