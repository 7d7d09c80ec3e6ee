package auth

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/hrsuite/hr-backend-go/internal/domain/audit"
	"github.com/hrsuite/hr-backend-go/internal/domain/auth"
	"github.com/hrsuite/hr-backend-go/internal/domain/notification"
	"github.com/hrsuite/hr-backend-go/internal/domain/user"
	"github.com/hrsuite/hr-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func authedCtx(t *testing.T, userID, role string) context.Context {
	t.Helper()

	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"user_id": userID,
		"email":   "caller@example.com",
		"role":    role,
		"type":    "access",
	})
	require.NoError(t, err)

	return jwtauth.NewContext(context.Background(), token, nil)
}

type stubUserRepo struct {
	byEmail map[string]user.User
	byID    map[string]user.User
	created []user.User
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	u, ok := s.byEmail[email]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (s *stubUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := s.byID[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (s *stubUserRepo) Create(ctx context.Context, newUser user.User) (user.User, error) {
	newUser.ID = "user-new"
	s.created = append(s.created, newUser)
	return newUser, nil
}

func (s *stubUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, ok := s.byEmail[email]
	return ok, nil
}

func (s *stubUserRepo) List(ctx context.Context, filter user.ListUsersFilter) ([]user.User, int64, error) {
	return nil, 0, nil
}

func (s *stubUserRepo) Update(ctx context.Context, req user.UpdateUserRequest) (user.User, error) {
	return user.User{}, nil
}

func (s *stubUserRepo) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	return nil
}

func (s *stubUserRepo) SetActive(ctx context.Context, userID string, active bool) error {
	return nil
}

func (s *stubUserRepo) SetLastLogin(ctx context.Context, userID string, at time.Time) error {
	return nil
}

func (s *stubUserRepo) SetResetToken(ctx context.Context, userID, tokenHash string, expiry time.Time) error {
	return nil
}

func (s *stubUserRepo) GetByResetToken(ctx context.Context, tokenHash string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (s *stubUserRepo) ClearResetToken(ctx context.Context, userID string, clearFirstLogin bool) error {
	return nil
}

type stubAuditService struct {
	entries []audit.Entry
}

func (s *stubAuditService) Log(ctx context.Context, entry audit.Entry) {
	s.entries = append(s.entries, entry)
}

func (s *stubAuditService) List(ctx context.Context, filter audit.Filter) ([]audit.AuditLogResponse, int64, error) {
	return nil, 0, nil
}

func (s *stubAuditService) Stop() {}

type stubNotificationService struct {
	queued []notification.CreateNotificationRequest
}

func (s *stubNotificationService) QueueNotification(ctx context.Context, req notification.CreateNotificationRequest) error {
	s.queued = append(s.queued, req)
	return nil
}

func (s *stubNotificationService) QueueBulkNotification(ctx context.Context, reqs []notification.CreateNotificationRequest) error {
	s.queued = append(s.queued, reqs...)
	return nil
}

func (s *stubNotificationService) GetNotifications(ctx context.Context, recipientID string, page, limit int, unreadOnly bool) (*notification.NotificationListResponse, error) {
	return nil, nil
}

func (s *stubNotificationService) GetNotification(ctx context.Context, recipientID string, id string) (notification.NotificationResponse, error) {
	return notification.NotificationResponse{}, nil
}

func (s *stubNotificationService) MarkAsRead(ctx context.Context, recipientID string, id string) (notification.NotificationResponse, error) {
	return notification.NotificationResponse{}, nil
}

func (s *stubNotificationService) MarkAllAsRead(ctx context.Context, recipientID string) (notification.MarkAllAsReadResponse, error) {
	return notification.MarkAllAsReadResponse{}, nil
}

func (s *stubNotificationService) Delete(ctx context.Context, recipientID string, id string) error {
	return nil
}

func (s *stubNotificationService) Subscribe(ctx context.Context, recipientID string) (<-chan notification.SSEEvent, func()) {
	ch := make(chan notification.SSEEvent)
	return ch, func() { close(ch) }
}

func (s *stubNotificationService) Stop() {}

type stubMailer struct {
	sent []string
}

func (m *stubMailer) Send(to, subject, body string) error {
	m.sent = append(m.sent, to)
	return nil
}

func newService(userRepo *stubUserRepo, notifications *stubNotificationService, mailer *stubMailer) auth.AuthService {
	jwtService := jwt.NewJWTService("test-secret", "15m")
	return NewAuthService(userRepo, jwtService, &stubAuditService{}, notifications, mailer, "https://hr.example.com")
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestLogin_Succeeds(t *testing.T) {
	t.Parallel()

	repo := &stubUserRepo{byEmail: map[string]user.User{
		"alice@example.com": {
			ID:           "user-1",
			Email:        "alice@example.com",
			PasswordHash: hashed(t, "correct-horse"),
			Role:         user.RoleEmployee,
			IsActive:     true,
		},
	}}

	svc := newService(repo, &stubNotificationService{}, &stubMailer{})

	resp, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "alice@example.com",
		Password: "correct-horse",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "user-1", resp.User.ID)
	assert.Equal(t, "EMPLOYEE", resp.User.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()

	repo := &stubUserRepo{byEmail: map[string]user.User{
		"alice@example.com": {
			ID:           "user-1",
			Email:        "alice@example.com",
			PasswordHash: hashed(t, "correct-horse"),
			IsActive:     true,
		},
	}}

	svc := newService(repo, &stubNotificationService{}, &stubMailer{})

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong",
	})

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_UnknownEmailLooksLikeBadPassword(t *testing.T) {
	t.Parallel()

	svc := newService(&stubUserRepo{byEmail: map[string]user.User{}}, &stubNotificationService{}, &stubMailer{})

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_InactiveAccount(t *testing.T) {
	t.Parallel()

	repo := &stubUserRepo{byEmail: map[string]user.User{
		"alice@example.com": {
			ID:           "user-1",
			Email:        "alice@example.com",
			PasswordHash: hashed(t, "correct-horse"),
			IsActive:     false,
		},
	}}

	svc := newService(repo, &stubNotificationService{}, &stubMailer{})

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "alice@example.com",
		Password: "correct-horse",
	})

	assert.ErrorIs(t, err, auth.ErrAccountInactive)
}

func TestRegister_RejectsDuplicateEmail(t *testing.T) {
	t.Parallel()

	repo := &stubUserRepo{byEmail: map[string]user.User{
		"taken@example.com": {ID: "user-1", Email: "taken@example.com"},
	}}

	svc := newService(repo, &stubNotificationService{}, &stubMailer{})

	_, err := svc.Register(authedCtx(t, "admin-1", "ADMIN_RH"), auth.RegisterRequest{
		Email:    "taken@example.com",
		Password: "longenough",
		Role:     "EMPLOYEE",
	})

	assert.ErrorIs(t, err, user.ErrUserEmailExists)
}

func TestRegister_QueuesWelcomeNotification(t *testing.T) {
	t.Parallel()

	repo := &stubUserRepo{byEmail: map[string]user.User{}}
	notifications := &stubNotificationService{}

	svc := newService(repo, notifications, &stubMailer{})

	created, err := svc.Register(authedCtx(t, "admin-1", "ADMIN_RH"), auth.RegisterRequest{
		Email:    "new@example.com",
		Password: "longenough",
		Role:     "EMPLOYEE",
	})

	require.NoError(t, err)
	assert.True(t, created.IsFirstLogin)
	require.Len(t, repo.created, 1)
	assert.True(t, repo.created[0].IsActive)

	require.Len(t, notifications.queued, 1)
	assert.Equal(t, notification.TypeAccountCreated, notifications.queued[0].Type)
	assert.Equal(t, "new@example.com", notifications.queued[0].RecipientEmail)
}

func TestForgotPassword_UnknownEmailIsSilent(t *testing.T) {
	t.Parallel()

	mailer := &stubMailer{}
	svc := newService(&stubUserRepo{byEmail: map[string]user.User{}}, &stubNotificationService{}, mailer)

	err := svc.ForgotPassword(context.Background(), auth.ForgotPasswordRequest{
		Email: "nobody@example.com",
	})

	require.NoError(t, err)
	assert.Empty(t, mailer.sent)
}

func TestForgotPassword_SendsResetEmail(t *testing.T) {
	t.Parallel()

	repo := &stubUserRepo{byEmail: map[string]user.User{
		"alice@example.com": {ID: "user-1", Email: "alice@example.com", IsActive: true},
	}}
	mailer := &stubMailer{}

	svc := newService(repo, &stubNotificationService{}, mailer)

	err := svc.ForgotPassword(context.Background(), auth.ForgotPasswordRequest{
		Email: "alice@example.com",
	})

	require.NoError(t, err)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "alice@example.com", mailer.sent[0])
}
