package auth

import (
	"context"
	"fmt"
	"time"

	"autoschool/internal/authz"
	"autoschool/internal/models"
	"autoschool/pkg/tokenstore"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

const tokenLifetime = 24 * time.Hour

type Service struct {
	repo      Repository
	tokens    tokenstore.Store
	jwtSecret []byte
}

func NewService(repo Repository, tokens tokenstore.Store, jwtSecret string) *Service {
	return &Service{
		repo:      repo,
		tokens:    tokens,
		jwtSecret: []byte(jwtSecret),
	}
}

func (s *Service) Login(username, password string) (string, error) {
	user, err := s.repo.GetUserByUsername(username)
	if err != nil {
		return "", fmt.Errorf("%w: invalid credentials", models.ErrForbidden)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", fmt.Errorf("%w: invalid credentials", models.ErrForbidden)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      time.Now().Add(tokenLifetime).Unix(),
	})

	return token.SignedString(s.jwtSecret)
}

// Logout puts the presented token on the revocation list for the remainder
// of its lifetime. The middleware rejects revoked tokens afterwards.
func (s *Service) Logout(ctx context.Context, tokenString string) error {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return fmt.Errorf("%w: invalid token", models.ErrValidation)
	}

	ttl := tokenLifetime
	if exp, ok := claims["exp"].(float64); ok {
		ttl = time.Until(time.Unix(int64(exp), 0))
	}
	return s.tokens.Revoke(ctx, tokenString, ttl)
}

type CreateUserRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Role        string `json:"role"`
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
}

// CreateUser runs the full creation policy before touching the database:
// role must parse, the requester must be permitted to create that role, and
// the password must pass the strength validator. Either everything passes
// and a row is written, or nothing is persisted.
func (s *Service) CreateUser(requester *models.User, req CreateUserRequest) (*models.User, error) {
	role, err := models.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}
	if err := authz.CanCreateUser(requester, role); err != nil {
		return nil, err
	}
	if req.Username == "" {
		return nil, fmt.Errorf("%w: username is required", models.ErrValidation)
	}
	if err := ValidatePassword(req.Password); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:    req.Username,
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Role:        role,
		PhoneNumber: req.PhoneNumber,
		Password:    string(hashed),
	}
	if err := s.repo.CreateUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) ListUsers() ([]models.User, error) {
	return s.repo.ListUsers()
}

func (s *Service) GetUser(id uint) (*models.User, error) {
	return s.repo.GetUserByID(id)
}

func (s *Service) DeleteUser(id uint) error {
	return s.repo.DeleteUser(id)
}
