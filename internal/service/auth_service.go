package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/GTDGit/pharmreg_api/internal/models"
	"github.com/GTDGit/pharmreg_api/internal/utils"
)

// UserStore looks operators up by username.
type UserStore interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	GenerateJWT(username, lang string) (string, error)
}

// LoginResult is returned to the client after a successful login.
type LoginResult struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Lang     string `json:"lang"`
}

type AuthService struct {
	users       UserStore
	tokens      TokenIssuer
	defaultLang string
}

func NewAuthService(users UserStore, tokens TokenIssuer, defaultLang string) *AuthService {
	return &AuthService{users: users, tokens: tokens, defaultLang: defaultLang}
}

// Login checks the password and issues a token carrying the username and UI language.
// Unknown, inactive and wrong-password logins all yield utils.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password, lang string) (*LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, utils.Validation("Username and password are required")
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		log.Warn().Str("username", username).Msg("Login for unknown user")
		return nil, utils.ErrInvalidCredentials
	}
	if !user.IsActive {
		log.Warn().Str("username", username).Msg("Login for inactive user")
		return nil, utils.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.Warn().Str("username", username).Msg("Password verification failed")
		return nil, utils.ErrInvalidCredentials
	}

	lang = resolveLang(lang, s.defaultLang)
	token, err := s.tokens.GenerateJWT(user.Username, lang)
	if err != nil {
		return nil, err
	}

	log.Info().Str("username", username).Str("lang", lang).Msg("Login successful")
	return &LoginResult{Token: token, Username: user.Username, Lang: lang}, nil
}

// CreateUser stores a new active operator with a bcrypt password hash.
func (s *AuthService) CreateUser(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || len(password) < 8 {
		return nil, utils.Validation("Username and a password of at least 8 characters are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
