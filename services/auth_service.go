package services

import (
	"fmt"
	"notekeeper/database"
	"notekeeper/models"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	bcryptCost      = 12
	defaultTokenTTL = 24 * time.Hour
)

// AccessTokenClaims are the claims carried by an access token
type AccessTokenClaims struct {
	UserID string `json:"user_id"`
	jwt.StandardClaims
}

// AuthService handles registration, login, and token validation
type AuthService struct {
	repo     UserRepository
	secret   string
	tokenTTL time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(repo UserRepository, secret string) *AuthService {
	return &AuthService{
		repo:     repo,
		secret:   secret,
		tokenTTL: defaultTokenTTL,
	}
}

// Register creates a new user with a bcrypt-hashed password
func (as *AuthService) Register(username, password string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    now,
		LastLoginAt:  now,
	}

	if err := as.repo.CreateUser(user); err != nil {
		if database.IsUsernameTaken(err) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	return user, nil
}

// Login verifies credentials and issues an access token. Unknown username
// and wrong password are reported identically.
func (as *AuthService) Login(username, password string) (string, *models.User, error) {
	user, err := as.repo.GetUserByUsername(username)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := as.generateToken(user.ID)
	if err != nil {
		return "", nil, err
	}

	if err := as.repo.TouchLastLogin(user.ID); err != nil {
		return "", nil, err
	}
	user.LastLoginAt = time.Now().UTC()

	return token, user, nil
}

// GetUser loads the user behind a validated token subject
func (as *AuthService) GetUser(userID string) (*models.User, error) {
	user, err := as.repo.GetUser(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUnauthorized
	}
	return user, nil
}

// ValidateToken checks signature and expiry and returns the user id
func (as *AuthService) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AccessTokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(as.secret), nil
	})
	if err != nil {
		return "", ErrUnauthorized
	}

	claims, ok := token.Claims.(*AccessTokenClaims)
	if !ok || !token.Valid || claims.UserID == "" {
		return "", ErrUnauthorized
	}
	return claims.UserID, nil
}

func (as *AuthService) generateToken(userID string) (string, error) {
	claims := AccessTokenClaims{
		UserID: userID,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: time.Now().Add(as.tokenTTL).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(as.secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
