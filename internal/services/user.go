package services

import (
	"context"
	"fmt"
	"time"

	"hangouts-backend/internal/errs"
	"hangouts-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Identity is the decoded identity provider subject carried by a bearer token
type Identity struct {
	UID     string
	Email   *string
	Name    *string
	Picture *string
}

// UserStore is the persistence gateway for users
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	List(ctx context.Context) ([]*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByProviderUID(ctx context.Context, providerUID string) (*models.User, error)
	Upsert(ctx context.Context, user *models.User) (*models.User, error)
	Update(ctx context.Context, id string, email, displayName, photoURL *string) (*models.User, error)
	UpdatePhotoURL(ctx context.Context, id, photoURL string) error
	Delete(ctx context.Context, id string) error
}

// UserService handles user-related business logic and identity token verification
type UserService struct {
	users     UserStore
	jwtSecret string
}

// NewUserService creates a new user service
func NewUserService(users UserStore, jwtSecret string) *UserService {
	return &UserService{
		users:     users,
		jwtSecret: jwtSecret,
	}
}

// ValidateToken verifies a bearer token and returns the identity it carries
func (s *UserService) ValidateToken(tokenString string) (*Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse token", errs.ErrUnauthorized)
	}
	if !token.Valid {
		return nil, fmt.Errorf("%w: invalid token", errs.ErrUnauthorized)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("%w: invalid token claims", errs.ErrUnauthorized)
	}

	uid, ok := claims["uid"].(string)
	if !ok || uid == "" {
		return nil, fmt.Errorf("%w: uid not found in token", errs.ErrUnauthorized)
	}

	identity := &Identity{UID: uid}
	if email, ok := claims["email"].(string); ok {
		identity.Email = &email
	}
	if name, ok := claims["name"].(string); ok {
		identity.Name = &name
	}
	if picture, ok := claims["picture"].(string); ok {
		identity.Picture = &picture
	}
	return identity, nil
}

// CreateUser creates a user with an explicit identity provider UID
func (s *UserService) CreateUser(ctx context.Context, providerUID string, email, displayName, photoURL *string) (*models.User, error) {
	if providerUID == "" {
		return nil, fmt.Errorf("%w: providerUid required", errs.ErrInvalidInput)
	}

	user := &models.User{
		ID:          uuid.New().String(),
		ProviderUID: providerUID,
		Email:       email,
		DisplayName: displayName,
		PhotoURL:    photoURL,
		CreatedAt:   time.Now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ListUsers returns all users, newest first
func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.users.List(ctx)
}

// GetUser returns a user by ID
func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

// UpdateUser patches profile fields on a user
func (s *UserService) UpdateUser(ctx context.Context, id string, email, displayName, photoURL *string) (*models.User, error) {
	return s.users.Update(ctx, id, email, displayName, photoURL)
}

// DeleteUser deletes a user by ID
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	return s.users.Delete(ctx, id)
}

// Me returns the stored user matching the verified identity
func (s *UserService) Me(ctx context.Context, identity *Identity) (*models.User, error) {
	return s.users.GetByProviderUID(ctx, identity.UID)
}

// Sync upserts the stored user from the verified identity's claims
func (s *UserService) Sync(ctx context.Context, identity *Identity) (*models.User, error) {
	user := &models.User{
		ID:          uuid.New().String(),
		ProviderUID: identity.UID,
		Email:       identity.Email,
		DisplayName: identity.Name,
		PhotoURL:    identity.Picture,
		CreatedAt:   time.Now(),
	}
	return s.users.Upsert(ctx, user)
}
