package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"

	"github.com/agriconnect/agriconnect-api/internal/domain/entity"
	"github.com/agriconnect/agriconnect-api/internal/domain/enum"
	"github.com/agriconnect/agriconnect-api/internal/domain/repository"
	"github.com/agriconnect/agriconnect-api/pkg/apperror"
	"github.com/agriconnect/agriconnect-api/pkg/oauth"
	"github.com/agriconnect/agriconnect-api/pkg/utils"
)

// AuthService handles authentication-related operations
type AuthService struct {
	userRepo    repository.UserRepository
	jwtManager  *utils.JWTManager
	googleOAuth *oauth.GoogleOAuthService
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repository.UserRepository,
	jwtManager *utils.JWTManager,
	googleOAuth *oauth.GoogleOAuthService,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		jwtManager:  jwtManager,
		googleOAuth: googleOAuth,
	}
}

// RegisterInput represents the registration input
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     enum.Role
	Location *string
}

// LoginInput represents the login input
type LoginInput struct {
	Email    string
	Password string
}

// AuthOutput represents a successful authentication
type AuthOutput struct {
	User         *entity.User
	AccessToken  string
	RefreshToken string
}

// Register creates a new buyer or farmer account
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*AuthOutput, error) {
	if !input.Role.Valid() || input.Role == enum.RoleAdmin {
		return nil, apperror.NewBadRequestError("Role must be buyer or farmer")
	}

	existing, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Email already registered")
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: hashed,
		Role:     input.Role,
		Location: input.Location,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.issueTokens(user)
}

// Login authenticates a user and returns tokens
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthOutput, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrInvalidCredentials
	}
	if user.Password == "" || !utils.CheckPasswordHash(input.Password, user.Password) {
		return nil, apperror.ErrInvalidCredentials
	}

	return s.issueTokens(user)
}

// RefreshToken exchanges a valid refresh token for a new token pair
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*AuthOutput, error) {
	userID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrInvalidToken
	}

	return s.issueTokens(user)
}

// GetGoogleAuthURL returns the Google consent URL together with the state
// value the callback must echo back
func (s *AuthService) GetGoogleAuthURL() (url string, state string, err error) {
	if s.googleOAuth == nil || !s.googleOAuth.IsConfigured() {
		return "", "", oauth.ErrOAuthNotConfigured
	}

	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", "", err
	}
	state = hex.EncodeToString(buf)
	return s.googleOAuth.GetAuthURL(state), state, nil
}

// GoogleRedirectURLs returns the frontend destinations the OAuth callback
// should redirect to. Either may be empty when no frontend is configured.
func (s *AuthService) GoogleRedirectURLs() (success, failure string) {
	if s.googleOAuth == nil {
		return "", ""
	}
	return s.googleOAuth.GetFrontendSuccessURL(), s.googleOAuth.GetFrontendErrorURL()
}

// HandleGoogleCallback completes the Google sign-in flow. First-time users
// are registered as buyers; farmers and admins are created through the
// regular channels.
func (s *AuthService) HandleGoogleCallback(ctx context.Context, code string) (*AuthOutput, error) {
	if s.googleOAuth == nil || !s.googleOAuth.IsConfigured() {
		return nil, oauth.ErrOAuthNotConfigured
	}

	token, err := s.googleOAuth.ExchangeCode(ctx, code)
	if err != nil {
		return nil, apperror.NewBadRequestError("Invalid authorization code")
	}

	info, err := s.googleOAuth.GetUserInfo(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, info.Email)
	if err != nil {
		return nil, err
	}

	if user == nil {
		user = &entity.User{
			Name:       info.Name,
			Email:      info.Email,
			Role:       enum.RoleBuyer,
			Provider:   "google",
			ProviderID: &info.ID,
		}
		if info.Picture != "" {
			user.Photo = &info.Picture
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}
	} else if user.ProviderID == nil || *user.ProviderID == "" {
		// Link the Google identity to an existing password account
		user.Provider = "google"
		user.ProviderID = &info.ID
		if user.Photo == nil && info.Picture != "" {
			user.Photo = &info.Picture
		}
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
	}

	return s.issueTokens(user)
}

func (s *AuthService) issueTokens(user *entity.User) (*AuthOutput, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email, user.Name, user.Role)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthOutput{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
