package services

import (
	"fmt"
	"strings"
	"time"

	"pizza_pantry_backend/internal/models"
	"pizza_pantry_backend/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

// AuthResponse DTO
type AuthResponse struct {
	User        models.User `json:"user"`
	AccessToken string      `json:"access_token"`
	ExpiresAt   time.Time   `json:"expires_at"`
}

// DemoAccount is a built-in sign-in. The password is hashed at start-up and
// the plain text is not kept.
type DemoAccount struct {
	User     models.User
	Password string
}

// DemoAccounts are the two accounts the pantry ships with.
func DemoAccounts() []DemoAccount {
	return []DemoAccount{
		{User: models.User{ID: "1", Email: "admin@pizzapantry.com", Name: "Admin User"}, Password: "admin123"},
		{User: models.User{ID: "2", Email: "staff@pizzapantry.com", Name: "Staff User"}, Password: "staff123"},
	}
}

// --- AuthService Interface ---
type AuthService interface {
	Login(req models.Credentials) (*AuthResponse, error)
	ParseToken(token string) (*models.User, error)
	GetUser(userID string) (*models.User, error)
}

type account struct {
	user models.User
	hash []byte
}

// --- authService Implementation ---
type authService struct {
	issuer   *utils.TokenIssuer
	byEmail  map[string]account
	byUserID map[string]models.User
}

// NewAuthService hashes the given accounts with bcrypt and signs tokens with issuer.
func NewAuthService(issuer *utils.TokenIssuer, accounts []DemoAccount) (AuthService, error) {
	s := &authService{
		issuer:   issuer,
		byEmail:  make(map[string]account, len(accounts)),
		byUserID: make(map[string]models.User, len(accounts)),
	}
	for _, a := range accounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(a.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password for %s: %w", a.User.Email, err)
		}
		s.byEmail[normalizeEmail(a.User.Email)] = account{user: a.User, hash: hash}
		s.byUserID[a.User.ID] = a.User
	}
	return s, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Login checks the credentials and issues an access token.
func (s *authService) Login(req models.Credentials) (*AuthResponse, error) {
	acct, ok := s.byEmail[normalizeEmail(req.Email)]
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(acct.hash, []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.issuer.GenerateAccessToken(acct.user.ID, acct.user.Name, acct.user.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}
	utils.LogInfo("User signed in", map[string]interface{}{"user_id": acct.user.ID})
	return &AuthResponse{
		User:        acct.user,
		AccessToken: token,
		ExpiresAt:   time.Now().Add(s.issuer.TTL()).UTC(),
	}, nil
}

// ParseToken validates a token and returns the user it was issued to.
func (s *authService) ParseToken(token string) (*models.User, error) {
	claims, err := s.issuer.ValidateToken(token)
	if err != nil {
		return nil, err
	}
	return &models.User{ID: claims.UserID, Name: claims.Name, Email: claims.Email}, nil
}

// GetUser looks up a demo account by id.
func (s *authService) GetUser(userID string) (*models.User, error) {
	user, ok := s.byUserID[userID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}
	return &user, nil
}
