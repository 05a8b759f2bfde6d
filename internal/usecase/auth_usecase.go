package usecase

import (
	"context"
	"errors"
	"time"

	"dental-lab-backend/internal/converter"
	"dental-lab-backend/internal/delivery/dto"
	"dental-lab-backend/internal/domain/entity"
	"dental-lab-backend/internal/domain/repository"
	"dental-lab-backend/internal/service"
	"dental-lab-backend/pkg/jwt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailAlreadyExists  = errors.New("email already exists")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrAccountInactive     = errors.New("account is inactive")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrInvalidPassword     = errors.New("invalid password")
	ErrInvalidResetToken   = errors.New("invalid or expired reset token")
	ErrUserNotFound        = errors.New("user not found")
)

const passwordResetPrefix = "password_reset:"
const passwordResetTTL = 15 * time.Minute

type AuthUsecase interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, userID uuid.UUID) error
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	UpdatePassword(ctx context.Context, userID uuid.UUID, req *dto.UpdatePasswordRequest) error
	ForgotPassword(ctx context.Context, req *dto.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
}

type authUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	userRepo    repository.UserRepository
	roleRepo    repository.RoleRepository
	sessionRepo repository.SessionRepository
	jwtService  *jwt.JWTService
	redisClient *redis.Client
	mailer      service.Mailer
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	sessionRepo repository.SessionRepository,
	jwtService *jwt.JWTService,
	redisClient *redis.Client,
	mailer service.Mailer,
) AuthUsecase {
	return &authUsecase{
		db:          db,
		log:         log,
		userRepo:    userRepo,
		roleRepo:    roleRepo,
		sessionRepo: sessionRepo,
		jwtService:  jwtService,
		redisClient: redisClient,
		mailer:      mailer,
	}
}

func (u *authUsecase) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	active := true
	user := &entity.User{
		Email:     req.Email,
		Password:  string(hashedPassword),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		IsActive:  &active,
	}

	if err := u.userRepo.Create(tx, user); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	// Attach the default role when it exists; its absence is not fatal.
	roles := []string{}
	defaultRole, err := u.roleRepo.FindByName(tx, entity.RoleUser)
	if err != nil {
		u.log.Warnf("Failed to look up default role: %+v", err)
		return nil, err
	}
	if defaultRole != nil {
		if err := u.roleRepo.AddToUser(tx, user.ID, defaultRole.ID); err != nil {
			u.log.Warnf("Failed to assign default role: %+v", err)
			return nil, err
		}
		roles = append(roles, defaultRole.Name)
		user.Roles = []entity.Role{*defaultRole}
	}

	tokens, err := u.issueTokenPair(tx, user, roles)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	tokens.User = converter.UserToResponse(user)
	return tokens, nil
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	db := u.db.WithContext(ctx)

	user, err := u.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}

	// Unknown email and wrong password produce the same error so responses
	// carry no enumeration signal.
	if user == nil || !user.HasPassword() {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.Active() {
		return nil, ErrAccountInactive
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := u.userRepo.Update(db, user); err != nil {
		u.log.Warnf("Failed to update last login: %+v", err)
		return nil, err
	}

	// Prior sessions stay valid; concurrent sessions are allowed.
	tokens, err := u.issueTokenPair(db, user, user.RoleNames())
	if err != nil {
		return nil, err
	}

	tokens.User = converter.UserToResponse(user)
	return tokens, nil
}

// Logout revokes every refresh token of the user in one statement. Already
// issued access tokens stay valid until their own expiry.
func (u *authUsecase) Logout(ctx context.Context, userID uuid.UUID) error {
	if err := u.sessionRepo.DeleteAllByUserID(u.db.WithContext(ctx), userID); err != nil {
		u.log.Warnf("Failed to delete sessions for user %s: %+v", userID, err)
		return err
	}
	return nil
}

func (u *authUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := u.jwtService.ValidateToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}
	if claims.TokenType != jwt.RefreshToken {
		return nil, ErrInvalidRefreshToken
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	// A cryptographically valid token is worthless without a live session
	// row; logout removes the rows, which is the revocation contract.
	session, err := u.sessionRepo.FindByToken(tx, req.RefreshToken)
	if err != nil {
		u.log.Warnf("Failed to find session: %+v", err)
		return nil, err
	}
	if session == nil || session.Expired() {
		return nil, ErrInvalidRefreshToken
	}

	user, err := u.userRepo.FindByID(tx, session.UserID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil || !user.Active() {
		return nil, ErrInvalidRefreshToken
	}

	// Rotate: the old token dies with its session row.
	if err := u.sessionRepo.DeleteByToken(tx, req.RefreshToken); err != nil {
		u.log.Warnf("Failed to delete old session: %+v", err)
		return nil, err
	}

	tokens, err := u.issueTokenPair(tx, user, user.RoleNames())
	if err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	tokens.User = converter.UserToResponse(user)
	return tokens, nil
}

func (u *authUsecase) UpdatePassword(ctx context.Context, userID uuid.UUID, req *dto.UpdatePasswordRequest) error {
	db := u.db.WithContext(ctx)

	user, err := u.userRepo.FindByID(db, userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	// Provisioned accounts start with an empty hash; their first password set
	// skips the old-password check.
	if user.HasPassword() {
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); err != nil {
			return ErrInvalidPassword
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return err
	}

	// Existing sessions survive a password change.
	return u.userRepo.UpdatePassword(db, userID, string(hashedPassword))
}

// ForgotPassword never reveals whether the email exists. When it does, a
// single-use token lands in redis with a short TTL and the email goes out
// fire-and-forget.
func (u *authUsecase) ForgotPassword(ctx context.Context, req *dto.ForgotPasswordRequest) error {
	user, err := u.userRepo.FindByEmail(u.db.WithContext(ctx), req.Email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return err
	}
	if user == nil || !user.Active() {
		return nil
	}

	token := uuid.New().String()
	key := passwordResetPrefix + token
	if err := u.redisClient.Set(ctx, key, user.ID.String(), passwordResetTTL).Err(); err != nil {
		u.log.Warnf("Failed to store reset token: %+v", err)
		return err
	}

	subject, body := service.PasswordResetBody(token)
	u.mailer.SendAsync(user.Email, subject, body)
	return nil
}

func (u *authUsecase) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error {
	key := passwordResetPrefix + req.Token

	// GETDEL makes the token single-use even under concurrent attempts.
	userIDStr, err := u.redisClient.GetDel(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrInvalidResetToken
		}
		u.log.Warnf("Failed to consume reset token: %+v", err)
		return err
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return ErrInvalidResetToken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return err
	}

	return u.userRepo.UpdatePassword(u.db.WithContext(ctx), userID, string(hashedPassword))
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return converter.UserToResponse(user), nil
}

// issueTokenPair mints an access/refresh pair and persists the refresh
// session row on the given handle (transaction or plain connection).
func (u *authUsecase) issueTokenPair(db *gorm.DB, user *entity.User, roles []string) (*dto.TokenResponse, error) {
	accessToken, err := u.jwtService.GenerateAccessToken(user.ID, user.Email, roles)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	refreshToken, expiresAt, err := u.jwtService.GenerateRefreshToken(user.ID)
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	session := &entity.Session{
		UserID:       user.ID,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
	}
	if err := u.sessionRepo.Create(db, session); err != nil {
		u.log.Warnf("Failed to create session: %+v", err)
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
	}, nil
}
