package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/tcasystem/internal/app/models"
	"github.com/yigit/tcasystem/internal/app/models/dto"
	"github.com/yigit/tcasystem/internal/app/repositories"
	"github.com/yigit/tcasystem/internal/pkg/apperrors"
	"github.com/yigit/tcasystem/internal/pkg/auth"
)

// AccountNotifier delivers account emails without blocking the caller
type AccountNotifier interface {
	Welcome(toEmail, toName string)
	PasswordReset(toEmail, toName, token string, validFor time.Duration)
}

// TeacherService handles teacher accounts and their credentials
type TeacherService struct {
	teachers    repositories.TeacherStore
	resetTokens repositories.ResetTokenStore
	jwtService  *auth.JWTService
	notifier    AccountNotifier
	resetTTL    time.Duration
	logger      zerolog.Logger
	now         func() time.Time
}

// NewTeacherService creates a new TeacherService
func NewTeacherService(
	repos *repositories.Repositories,
	jwtService *auth.JWTService,
	notifier AccountNotifier,
	resetTTL time.Duration,
	logger zerolog.Logger,
) *TeacherService {
	return &TeacherService{
		teachers:    repos.Teachers,
		resetTokens: repos.ResetTokens,
		jwtService:  jwtService,
		notifier:    notifier,
		resetTTL:    resetTTL,
		logger:      logger,
		now:         time.Now,
	}
}

// Register creates a teacher account and sends the welcome email
func (s *TeacherService) Register(ctx context.Context, req *dto.RegisterTeacherRequest) (*models.Teacher, error) {
	dept := models.Department(req.Dept)
	if !dept.IsValid() {
		return nil, apperrors.ErrInvalidDepartment
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	teacher := &models.Teacher{
		Email:        strings.TrimSpace(req.Email),
		Name:         strings.TrimSpace(req.Name),
		Dept:         dept,
		PasswordHash: hash,
	}
	if err := s.teachers.Create(ctx, teacher); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("error creating teacher: %w", err)
	}

	s.logger.Info().Int64("teacherID", teacher.ID).Str("email", teacher.Email).Msg("Teacher registered")
	s.notifier.Welcome(teacher.Email, teacher.Name)

	return teacher, nil
}

// Login verifies a teacher's password and issues an access token
func (s *TeacherService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	teacher, err := s.teachers.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.ErrEmailNotRegistered
		}
		return nil, fmt.Errorf("error retrieving teacher: %w", err)
	}

	if !auth.CheckPassword(teacher.PasswordHash, req.Password) {
		s.logger.Warn().Str("email", req.Email).Msg("Teacher login rejected")
		return nil, apperrors.ErrInvalidPassword
	}

	token, expiresIn, err := s.jwtService.GenerateAccessToken(auth.Principal{
		TeacherID: teacher.ID,
		Name:      teacher.Name,
		Email:     teacher.Email,
		Role:      models.RoleTeacher,
	})
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		Email:       teacher.Email,
		ExpiresIn:   expiresIn,
	}, nil
}

// List returns every teacher
func (s *TeacherService) List(ctx context.Context) ([]*models.Teacher, error) {
	teachers, err := s.teachers.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing teachers: %w", err)
	}
	return teachers, nil
}

// Delete removes a teacher account. The teacher's allotment is left in place
// and disappears from the aggregate views.
func (s *TeacherService) Delete(ctx context.Context, email string) error {
	if err := s.teachers.DeleteByEmail(ctx, email); err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return apperrors.ErrTeacherNotFound
		}
		return fmt.Errorf("error deleting teacher: %w", err)
	}

	s.logger.Info().Str("email", email).Msg("Teacher deleted")
	return nil
}

// ForgotPassword issues a single-use reset token and emails the reset link
func (s *TeacherService) ForgotPassword(ctx context.Context, email string) error {
	teacher, err := s.teachers.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return apperrors.ErrResetUserNotFound
		}
		return fmt.Errorf("error retrieving teacher: %w", err)
	}

	now := s.now()
	if removed, err := s.resetTokens.DeleteExpired(ctx, now); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to purge expired reset tokens")
	} else if removed > 0 {
		s.logger.Debug().Int64("removed", removed).Msg("Purged expired reset tokens")
	}

	value, err := auth.GenerateResetToken()
	if err != nil {
		return err
	}

	token := &models.PasswordResetToken{
		Token:        value,
		TeacherEmail: teacher.Email,
		ExpiresAt:    now.Add(s.resetTTL).UTC(),
	}
	if err := s.resetTokens.Create(ctx, token); err != nil {
		return fmt.Errorf("error storing reset token: %w", err)
	}

	s.logger.Info().Str("email", teacher.Email).Time("expiresAt", token.ExpiresAt).Msg("Password reset requested")
	s.notifier.PasswordReset(teacher.Email, teacher.Name, value, s.resetTTL)
	return nil
}

// ResetPassword redeems a reset token and stores the new password
func (s *TeacherService) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error {
	token, err := s.resetTokens.Get(ctx, req.Token)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidResetToken) {
			return err
		}
		return fmt.Errorf("error retrieving reset token: %w", err)
	}

	if !auth.ConstantTimeEqual(token.TeacherEmail, req.Email) {
		return apperrors.ErrInvalidResetToken
	}
	if token.Used {
		return apperrors.ErrResetTokenAlreadyUsed
	}
	if !token.IsUsable(s.now()) {
		return apperrors.ErrInvalidResetToken
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	// MarkUsed succeeds once per token, so concurrent redemptions cannot both proceed.
	if err := s.resetTokens.MarkUsed(ctx, req.Token); err != nil {
		if errors.Is(err, apperrors.ErrResetTokenAlreadyUsed) {
			return err
		}
		return fmt.Errorf("error consuming reset token: %w", err)
	}

	if err := s.teachers.UpdatePassword(ctx, token.TeacherEmail, hash); err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return apperrors.ErrTeacherNotFound
		}
		return fmt.Errorf("error updating password: %w", err)
	}

	s.logger.Info().Str("email", token.TeacherEmail).Msg("Password reset completed")
	return nil
}
