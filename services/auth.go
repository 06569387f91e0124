package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"cityhelp-be/authz"
	"cityhelp-be/errs"
	"cityhelp-be/logger"
	"cityhelp-be/models"
	authUtils "cityhelp-be/utils"
)

// Tokens signs and verifies session tokens.
type Tokens interface {
	GenerateToken(userID, role string) (string, error)
	ParseToken(token string) (*authUtils.Claims, error)
}

type SignupInput struct {
	Name     string `json:"name" validate:"required,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Session is a signed-in user and their token.
type Session struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type AuthService struct {
	users  UserStore
	tokens Tokens
	authz  Authorizer
	now    func() time.Time
}

func NewAuthService(users UserStore, tokens Tokens, az Authorizer) *AuthService {
	return &AuthService{users: users, tokens: tokens, authz: az, now: time.Now}
}

// Register creates a citizen account. Emails are unique.
func (s *AuthService) Register(ctx context.Context, in SignupInput) (*models.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	now := s.now()
	user := &models.User{
		ID:        primitive.NewObjectID(),
		Name:      in.Name,
		Email:     in.Email,
		Password:  in.Password,
		Role:      models.RoleCitizen,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := user.HashPassword(); err != nil {
		return nil, errs.Wrap(err, "hash password")
	}

	if err := s.users.Insert(ctx, user); err != nil {
		if errors.Is(err, errs.ErrConflict) {
			return nil, errs.Conflict("User with this email already exists")
		}
		return nil, asPersistence("create user", err)
	}

	logger.FromContext(ctx).Info().Str("user_id", user.ID.Hex()).Msg("user registered")
	return user, nil
}

// Login checks credentials and issues a session token.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*Session, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, errs.Unauthorized("Invalid credentials")
		}
		return nil, asPersistence("load user", err)
	}
	if !user.IsActive || !user.ComparePassword(in.Password) {
		return nil, errs.Unauthorized("Invalid credentials")
	}

	token, err := s.tokens.GenerateToken(user.ID.Hex(), string(user.Role))
	if err != nil {
		return nil, errs.Wrap(err, "generate token")
	}
	return &Session{Token: token, User: user}, nil
}

// Authenticate resolves a bearer token to its user. The user must still exist.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, errs.Unauthorized("No authorization token provided")
	}
	claims, err := s.tokens.ParseToken(token)
	if err != nil {
		return nil, errs.Unauthorized("Invalid authorization token")
	}
	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, errs.Unauthorized("Invalid token claims")
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, errs.Unauthorized("User not found")
		}
		return nil, asPersistence("load user", err)
	}
	if !user.IsActive {
		return nil, errs.Unauthorized("Account is disabled")
	}
	return user, nil
}

// ListUsers returns every account.
func (s *AuthService) ListUsers(ctx context.Context, actor *models.User) ([]models.User, error) {
	if err := s.authz.Decide(actor, authz.ListUsers, nil).Err(); err != nil {
		return nil, err
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, asPersistence("list users", err)
	}
	return users, nil
}

// UpdateRole sets a user's role to admin or citizen.
func (s *AuthService) UpdateRole(ctx context.Context, id primitive.ObjectID, rawRole string, actor *models.User) (*models.User, error) {
	if err := s.authz.Decide(actor, authz.UpdateRole, nil).Err(); err != nil {
		return nil, err
	}
	role, ok := models.ParseRole(strings.ToLower(strings.TrimSpace(rawRole)))
	if !ok {
		return nil, errs.Validation("Invalid role")
	}

	user, err := s.users.SetRole(ctx, id, role)
	if err != nil {
		return nil, asPersistence("update role", err)
	}
	logger.FromContext(ctx).Info().Str("user_id", id.Hex()).Str("role", string(role)).
		Str("actor_id", actor.ID.Hex()).Msg("user role updated")
	return user, nil
}
