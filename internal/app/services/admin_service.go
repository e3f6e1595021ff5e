package services

import (
	"github.com/rs/zerolog"
	"github.com/yigit/tcasystem/internal/app/models"
	"github.com/yigit/tcasystem/internal/app/models/dto"
	"github.com/yigit/tcasystem/internal/pkg/apperrors"
	"github.com/yigit/tcasystem/internal/pkg/auth"
)

// AdminCredential is one accepted admin email and password pair
type AdminCredential struct {
	Email    string
	Password string
}

// AdminService authenticates the shared admin accounts
type AdminService struct {
	credentials []AdminCredential
	jwtService  *auth.JWTService
	logger      zerolog.Logger
}

// NewAdminService creates a new AdminService
func NewAdminService(credentials []AdminCredential, jwtService *auth.JWTService, logger zerolog.Logger) *AdminService {
	return &AdminService{
		credentials: credentials,
		jwtService:  jwtService,
		logger:      logger,
	}
}

// Login checks the pair against every configured credential and issues an
// admin token on a match.
func (s *AdminService) Login(req *dto.LoginRequest) (*dto.TokenResponse, error) {
	matched := false
	for _, c := range s.credentials {
		// evaluate both comparisons for every entry
		emailOK := auth.ConstantTimeEqual(c.Email, req.Email)
		passwordOK := auth.ConstantTimeEqual(c.Password, req.Password)
		if emailOK && passwordOK {
			matched = true
		}
	}
	if !matched {
		s.logger.Warn().Str("email", req.Email).Msg("Admin login rejected")
		return nil, apperrors.ErrInvalidAdminLogin
	}

	token, expiresIn, err := s.jwtService.GenerateAccessToken(auth.Principal{
		Email: req.Email,
		Role:  models.RoleAdmin,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("email", req.Email).Msg("Admin logged in")
	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		Email:       req.Email,
		ExpiresIn:   expiresIn,
	}, nil
}
