package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"dental-lab-backend/internal/delivery/dto"
	"dental-lab-backend/internal/delivery/http/middleware"
	"dental-lab-backend/internal/usecase"
	"dental-lab-backend/pkg/response"
	"dental-lab-backend/pkg/validator"

	"github.com/google/uuid"
)

// stubAuthUsecase returns the configured error from every mutation so handler
// error mapping can be exercised without a database.
type stubAuthUsecase struct {
	err error
}

func (s *stubAuthUsecase) Register(_ context.Context, _ *dto.RegisterRequest) (*dto.TokenResponse, error) {
	return nil, s.err
}

func (s *stubAuthUsecase) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return nil, s.err
}

func (s *stubAuthUsecase) Logout(_ context.Context, _ uuid.UUID) error {
	return s.err
}

func (s *stubAuthUsecase) RefreshToken(_ context.Context, _ *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	return nil, s.err
}

func (s *stubAuthUsecase) UpdatePassword(_ context.Context, _ uuid.UUID, _ *dto.UpdatePasswordRequest) error {
	return s.err
}

func (s *stubAuthUsecase) ForgotPassword(_ context.Context, _ *dto.ForgotPasswordRequest) error {
	return s.err
}

func (s *stubAuthUsecase) ResetPassword(_ context.Context, _ *dto.ResetPasswordRequest) error {
	return s.err
}

func (s *stubAuthUsecase) GetCurrentUser(_ context.Context, _ uuid.UUID) (*dto.UserResponse, error) {
	return nil, s.err
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return resp
}

func TestRegisterDuplicateEmailCode(t *testing.T) {
	h := NewAuthHandler(&stubAuthUsecase{err: usecase.ErrEmailAlreadyExists}, validator.NewValidator())

	body := `{"email":"taken@lab.test","password":"secret-pass","first_name":"Sam","last_name":"Reyes"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusConflict)
	}
	resp := decodeResponse(t, rec)
	if resp.Code != "EMAIL_ALREADY_EXISTS" {
		t.Errorf("code = %q, want EMAIL_ALREADY_EXISTS", resp.Code)
	}
}

func TestUpdatePasswordWrongOldPasswordUnauthorized(t *testing.T) {
	h := NewAuthHandler(&stubAuthUsecase{err: usecase.ErrInvalidPassword}, validator.NewValidator())

	body := `{"old_password":"wrong-pass","new_password":"fresh-password"}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/auth/password", strings.NewReader(body))
	req = req.WithContext(context.WithValue(req.Context(), middleware.UserIDKey, uuid.New()))
	rec := httptest.NewRecorder()

	h.UpdatePassword(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	resp := decodeResponse(t, rec)
	if resp.Code != "INVALID_OLD_PASSWORD" {
		t.Errorf("code = %q, want INVALID_OLD_PASSWORD", resp.Code)
	}
}
