package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/tcasystem/internal/app/models"
	"github.com/yigit/tcasystem/internal/app/models/dto"
	"github.com/yigit/tcasystem/internal/app/repositories"
	"github.com/yigit/tcasystem/internal/app/repositories/memory"
	"github.com/yigit/tcasystem/internal/pkg/apperrors"
	"github.com/yigit/tcasystem/internal/pkg/auth"
)

type sentReset struct {
	email, name, token string
	validFor           time.Duration
}

type recordingNotifier struct {
	mu       sync.Mutex
	welcomed []string
	resets   []sentReset
}

func (n *recordingNotifier) Welcome(toEmail, _ string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.welcomed = append(n.welcomed, toEmail)
}

func (n *recordingNotifier) PasswordReset(toEmail, toName, token string, validFor time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.resets = append(n.resets, sentReset{email: toEmail, name: toName, token: token, validFor: validFor})
}

func newTestJWT() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "tcasystem-test",
	})
}

func newTeacherService(t *testing.T) (*TeacherService, *repositories.Repositories, *recordingNotifier) {
	t.Helper()
	repos := memory.NewRepositories()
	notifier := &recordingNotifier{}
	svc := NewTeacherService(repos, newTestJWT(), notifier, 15*time.Minute, zerolog.Nop())
	return svc, repos, notifier
}

func registerAda(t *testing.T, svc *TeacherService) *models.Teacher {
	t.Helper()
	teacher, err := svc.Register(context.Background(), &dto.RegisterTeacherRequest{
		Name: "Ada Lovelace", Email: "ada@college.edu", Dept: "CSE", Password: "engine42",
	})
	require.NoError(t, err)
	return teacher
}

func TestTeacherService_Register(t *testing.T) {
	svc, _, notifier := newTeacherService(t)
	ctx := context.Background()

	teacher := registerAda(t, svc)
	assert.Equal(t, models.FirstTeacherID, teacher.ID)
	assert.NotEqual(t, "engine42", teacher.PasswordHash)
	assert.True(t, auth.CheckPassword(teacher.PasswordHash, "engine42"))
	assert.Equal(t, []string{"ada@college.edu"}, notifier.welcomed)

	second, err := svc.Register(ctx, &dto.RegisterTeacherRequest{
		Name: "Alan Turing", Email: "alan@college.edu", Dept: "IT", Password: "enigma99",
	})
	require.NoError(t, err)
	assert.Equal(t, models.FirstTeacherID+1, second.ID)

	_, err = svc.Register(ctx, &dto.RegisterTeacherRequest{
		Name: "Impostor", Email: "ada@college.edu", Dept: "ME", Password: "whatever",
	})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
	assert.Equal(t, "Email already registered", apperrors.Message(err, ""))

	_, err = svc.Register(ctx, &dto.RegisterTeacherRequest{
		Name: "Grace", Email: "grace@college.edu", Dept: "EEE", Password: "cobol123",
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Len(t, notifier.welcomed, 2)
}

func TestTeacherService_Login(t *testing.T) {
	svc, _, _ := newTeacherService(t)
	ctx := context.Background()
	registerAda(t, svc)

	_, err := svc.Login(ctx, &dto.LoginRequest{Email: "ghost@college.edu", Password: "x"})
	assert.ErrorIs(t, err, apperrors.ErrEmailNotRegistered)

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "ada@college.edu", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	token, err := svc.Login(ctx, &dto.LoginRequest{Email: "ada@college.edu", Password: "engine42"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", token.TokenType)
	assert.Equal(t, int64(3600), token.ExpiresIn)

	claims, err := svc.jwtService.ValidateToken(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, models.RoleTeacher, claims.Role)
	assert.Equal(t, models.FirstTeacherID, claims.TeacherID)
}

func TestTeacherService_ListAndDelete(t *testing.T) {
	svc, _, _ := newTeacherService(t)
	ctx := context.Background()
	registerAda(t, svc)

	teachers, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, teachers, 1)

	require.NoError(t, svc.Delete(ctx, "ada@college.edu"))
	assert.ErrorIs(t, svc.Delete(ctx, "ada@college.edu"), apperrors.ErrTeacherNotFound)

	teachers, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, teachers)
}

func TestTeacherService_PasswordReset(t *testing.T) {
	svc, repos, notifier := newTeacherService(t)
	ctx := context.Background()
	registerAda(t, svc)

	err := svc.ForgotPassword(ctx, "ghost@college.edu")
	assert.ErrorIs(t, err, apperrors.ErrResetUserNotFound)
	assert.Equal(t, "User with this email not found", apperrors.Message(err, ""))

	require.NoError(t, svc.ForgotPassword(ctx, "ada@college.edu"))
	require.Len(t, notifier.resets, 1)
	sent := notifier.resets[0]
	assert.Len(t, sent.token, auth.ResetTokenLength)
	assert.Equal(t, 15*time.Minute, sent.validFor)

	err = svc.ResetPassword(ctx, &dto.ResetPasswordRequest{Email: "alan@college.edu", Token: sent.token, NewPassword: "newpass1"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidResetToken)

	require.NoError(t, svc.ResetPassword(ctx, &dto.ResetPasswordRequest{Email: "ada@college.edu", Token: sent.token, NewPassword: "newpass1"}))

	teacher, err := repos.Teachers.GetByEmail(ctx, "ada@college.edu")
	require.NoError(t, err)
	assert.True(t, auth.CheckPassword(teacher.PasswordHash, "newpass1"))

	err = svc.ResetPassword(ctx, &dto.ResetPasswordRequest{Email: "ada@college.edu", Token: sent.token, NewPassword: "again123"})
	assert.ErrorIs(t, err, apperrors.ErrResetTokenAlreadyUsed)

	err = svc.ResetPassword(ctx, &dto.ResetPasswordRequest{Email: "ada@college.edu", Token: "unknown", NewPassword: "again123"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidResetToken)
}

func TestTeacherService_ResetTokenExpires(t *testing.T) {
	svc, _, notifier := newTeacherService(t)
	ctx := context.Background()
	registerAda(t, svc)

	issued := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }
	require.NoError(t, svc.ForgotPassword(ctx, "ada@college.edu"))

	svc.now = func() time.Time { return issued.Add(16 * time.Minute) }
	err := svc.ResetPassword(ctx, &dto.ResetPasswordRequest{Email: "ada@college.edu", Token: notifier.resets[0].token, NewPassword: "late1234"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidResetToken)
}

func TestTeacherService_NewResetTokenReplacesOld(t *testing.T) {
	svc, _, notifier := newTeacherService(t)
	ctx := context.Background()
	registerAda(t, svc)

	require.NoError(t, svc.ForgotPassword(ctx, "ada@college.edu"))
	require.NoError(t, svc.ForgotPassword(ctx, "ada@college.edu"))
	require.Len(t, notifier.resets, 2)

	err := svc.ResetPassword(ctx, &dto.ResetPasswordRequest{Email: "ada@college.edu", Token: notifier.resets[0].token, NewPassword: "newpass1"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidResetToken)
	assert.NoError(t, svc.ResetPassword(ctx, &dto.ResetPasswordRequest{Email: "ada@college.edu", Token: notifier.resets[1].token, NewPassword: "newpass1"}))
}
