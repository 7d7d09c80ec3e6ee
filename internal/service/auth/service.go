package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hrsuite/hr-backend-go/internal/domain/audit"
	"github.com/hrsuite/hr-backend-go/internal/domain/auth"
	"github.com/hrsuite/hr-backend-go/internal/domain/notification"
	"github.com/hrsuite/hr-backend-go/internal/domain/user"
	"github.com/hrsuite/hr-backend-go/internal/pkg/email"
	"github.com/hrsuite/hr-backend-go/internal/pkg/jwt"
	"github.com/hrsuite/hr-backend-go/internal/service/claims"
	"golang.org/x/crypto/bcrypt"
)

const (
	bcryptCost       = 12
	resetTokenExpiry = 1 * time.Hour
)

type AuthServiceImpl struct {
	userRepo        user.UserRepository
	jwtService      jwt.Service
	auditSvc        audit.Service
	notificationSvc notification.Service
	mailer          email.Mailer
	frontendURL     string
}

func NewAuthService(
	userRepo user.UserRepository,
	jwtService jwt.Service,
	auditSvc audit.Service,
	notificationSvc notification.Service,
	mailer email.Mailer,
	frontendURL string,
) auth.AuthService {
	return &AuthServiceImpl{
		userRepo:        userRepo,
		jwtService:      jwtService,
		auditSvc:        auditSvc,
		notificationSvc: notificationSvc,
		mailer:          mailer,
		frontendURL:     frontendURL,
	}
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func hashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// Register implements auth.AuthService.
func (a *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (auth.UserSummary, error) {
	if err := req.Validate(); err != nil {
		return auth.UserSummary{}, err
	}

	caller, err := claims.FromContext(ctx)
	if err != nil {
		return auth.UserSummary{}, err
	}

	exists, err := a.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return auth.UserSummary{}, err
	}
	if exists {
		return auth.UserSummary{}, user.ErrUserEmailExists
	}

	hashed, err := hashPassword(req.Password)
	if err != nil {
		return auth.UserSummary{}, err
	}

	created, err := a.userRepo.Create(ctx, user.User{
		Email:        req.Email,
		PasswordHash: hashed,
		Role:         user.Role(req.Role),
		IsActive:     true,
		IsFirstLogin: true,
		CreatedBy:    &caller.UserID,
	})
	if err != nil {
		return auth.UserSummary{}, err
	}

	a.auditSvc.Log(ctx, audit.Entry{
		UserID:     caller.UserID,
		Action:     audit.ActionCreate,
		EntityType: "user",
		EntityID:   &created.ID,
		NewValues: map[string]interface{}{
			"email": created.Email,
			"role":  string(created.Role),
		},
	})

	_ = a.notificationSvc.QueueNotification(ctx, notification.CreateNotificationRequest{
		RecipientID:    created.ID,
		Type:           notification.TypeAccountCreated,
		Title:          "Compte créé",
		Message:        "Votre compte a été créé. Veuillez changer votre mot de passe à la première connexion.",
		RecipientEmail: created.Email,
		ReferenceType:  refType(notification.RefUser),
		ReferenceID:    &created.ID,
	})

	return auth.UserSummary{
		ID:           created.ID,
		Email:        created.Email,
		Role:         string(created.Role),
		EmployeeID:   created.EmployeeID,
		IsFirstLogin: created.IsFirstLogin,
	}, nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	userData, err := a.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	if !userData.IsActive {
		return auth.TokenResponse{}, auth.ErrAccountInactive
	}

	return a.issueToken(ctx, userData)
}

// LoginWithGoogle implements auth.AuthService.
func (a *AuthServiceImpl) LoginWithGoogle(ctx context.Context, googleEmail string, verified bool) (auth.TokenResponse, error) {
	if !verified {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	userData, err := a.userRepo.GetByEmail(ctx, googleEmail)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrGoogleEmailNotLinked
		}
		return auth.TokenResponse{}, err
	}

	if !userData.IsActive {
		return auth.TokenResponse{}, auth.ErrAccountInactive
	}

	return a.issueToken(ctx, userData)
}

func (a *AuthServiceImpl) issueToken(ctx context.Context, userData user.User) (auth.TokenResponse, error) {
	token, expiresAt, err := a.jwtService.GenerateAccessToken(userData.ID, userData.Email, userData.EmployeeID, userData.Role)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	if err := a.userRepo.SetLastLogin(ctx, userData.ID, time.Now().UTC()); err != nil {
		slog.Error("Failed to record last login", "user_id", userData.ID, "error", err)
	}

	a.auditSvc.Log(ctx, audit.Entry{
		UserID:     userData.ID,
		Action:     audit.ActionLogin,
		EntityType: "user",
		EntityID:   &userData.ID,
	})

	return auth.TokenResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		User: auth.UserSummary{
			ID:           userData.ID,
			Email:        userData.Email,
			Role:         string(userData.Role),
			EmployeeID:   userData.EmployeeID,
			IsFirstLogin: userData.IsFirstLogin,
		},
	}, nil
}

// ForgotPassword implements auth.AuthService.
func (a *AuthServiceImpl) ForgotPassword(ctx context.Context, req auth.ForgotPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	userData, err := a.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			// Do not reveal whether the email is registered
			return nil
		}
		return err
	}

	rawToken := make([]byte, 32)
	if _, err := rand.Read(rawToken); err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	token := hex.EncodeToString(rawToken)

	expiry := time.Now().UTC().Add(resetTokenExpiry)
	if err := a.userRepo.SetResetToken(ctx, userData.ID, hashResetToken(token), expiry); err != nil {
		return err
	}

	resetLink := fmt.Sprintf("%s/reset-password?token=%s", a.frontendURL, token)
	body := fmt.Sprintf(
		"Bonjour,\n\nUne réinitialisation de mot de passe a été demandée pour votre compte.\n"+
			"Ce lien expire dans une heure :\n\n%s\n\n"+
			"Si vous n'êtes pas à l'origine de cette demande, ignorez ce message.",
		resetLink,
	)
	if err := a.mailer.Send(userData.Email, "Réinitialisation de votre mot de passe", body); err != nil {
		slog.Error("Failed to send password reset email", "user_id", userData.ID, "error", err)
	}

	_ = a.notificationSvc.QueueNotification(ctx, notification.CreateNotificationRequest{
		RecipientID:   userData.ID,
		Type:          notification.TypePasswordReset,
		Title:         "Réinitialisation demandée",
		Message:       "Une demande de réinitialisation de mot de passe a été enregistrée pour votre compte.",
		ReferenceType: refType(notification.RefUser),
		ReferenceID:   &userData.ID,
	})

	return nil
}

// ResetPassword implements auth.AuthService.
func (a *AuthServiceImpl) ResetPassword(ctx context.Context, req auth.ResetPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	userData, err := a.userRepo.GetByResetToken(ctx, hashResetToken(req.Token))
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.ErrInvalidToken
		}
		return err
	}

	if userData.PasswordResetExpiry == nil || userData.PasswordResetExpiry.Before(time.Now().UTC()) {
		return auth.ErrResetTokenExpired
	}

	hashed, err := hashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	if err := a.userRepo.UpdatePassword(ctx, userData.ID, hashed); err != nil {
		return err
	}
	// A completed reset also clears the first-login flag
	if err := a.userRepo.ClearResetToken(ctx, userData.ID, true); err != nil {
		return err
	}

	a.auditSvc.Log(ctx, audit.Entry{
		UserID:     userData.ID,
		Action:     audit.ActionPasswordReset,
		EntityType: "user",
		EntityID:   &userData.ID,
	})

	return nil
}

// ChangePassword implements auth.AuthService.
func (a *AuthServiceImpl) ChangePassword(ctx context.Context, req auth.ChangePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	caller, err := claims.FromContext(ctx)
	if err != nil {
		return err
	}

	userData, err := a.userRepo.GetByID(ctx, caller.UserID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userData.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return auth.ErrWrongCurrentPassword
	}

	hashed, err := hashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	if err := a.userRepo.UpdatePassword(ctx, userData.ID, hashed); err != nil {
		return err
	}
	if err := a.userRepo.ClearResetToken(ctx, userData.ID, true); err != nil {
		return err
	}

	a.auditSvc.Log(ctx, audit.Entry{
		UserID:     userData.ID,
		Action:     audit.ActionPasswordChange,
		EntityType: "user",
		EntityID:   &userData.ID,
	})

	return nil
}

func refType(rt notification.ReferenceType) *notification.ReferenceType {
	return &rt
}
