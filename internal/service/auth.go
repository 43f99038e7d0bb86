package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"

	"feedbackManagement/internal/apperr"
	"feedbackManagement/internal/auth"
	"feedbackManagement/models"
	"feedbackManagement/repository"
)

const minPasswordLen = 6

var emailValidator = validator.New()

// RegisterInput is a new account.
type RegisterInput struct {
	Name      string
	Email     string
	Password  string
	Role      models.Role
	ManagerID *int64
}

// Token is the login response.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Register creates a user. Emails are unique ignoring case.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Name == "" {
		return nil, apperr.Validation("Name is required")
	}
	if err := emailValidator.Var(in.Email, "required,email"); err != nil {
		return nil, apperr.Validation("A valid email is required")
	}
	if len(in.Password) < minPasswordLen {
		return nil, apperr.Validation("Password must be at least 6 characters")
	}
	if !in.Role.Valid() {
		return nil, apperr.Validation("Role must be manager or employee")
	}
	if in.ManagerID != nil && in.Role != models.RoleEmployee {
		return nil, apperr.Validation("Only employees can have a manager")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, wrap("hash password", err)
	}

	var created *models.User
	err = s.inTx(ctx, func(st *repository.Store) error {
		existing, err := st.Users.GetByEmail(ctx, in.Email)
		if err != nil {
			return wrap("lookup email", err)
		}
		if existing != nil {
			return apperr.Conflict("Email already registered")
		}
		if in.ManagerID != nil {
			mgr, err := st.Users.GetByID(ctx, *in.ManagerID)
			if err != nil {
				return wrap("lookup manager", err)
			}
			if mgr == nil || !mgr.IsManager() {
				return apperr.Validation("manager_id must reference a manager")
			}
		}
		created, err = st.Users.Create(ctx, &models.User{
			Name: in.Name, Email: in.Email, PasswordHash: hash, Role: in.Role, ManagerID: in.ManagerID, CreatedAt: s.now(),
		})
		return wrap("create user", err)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Int64("user_id", created.ID).Str("role", string(created.Role)).Msg("user registered")
	return created, nil
}

// Login checks credentials and issues an access token.
func (s *Service) Login(ctx context.Context, email, password string) (*Token, error) {
	var u *models.User
	err := s.inTx(ctx, func(st *repository.Store) error {
		var err error
		u, err = st.Users.GetByEmail(ctx, strings.TrimSpace(email))
		return wrap("lookup email", err)
	})
	if err != nil {
		return nil, err
	}
	if u == nil || !auth.VerifyPassword(password, u.PasswordHash) {
		return nil, apperr.InvalidCredentials("Incorrect email or password")
	}
	tok, err := s.codec.Encode(u.ID, u.Role)
	if err != nil {
		return nil, wrap("issue token", err)
	}
	return &Token{AccessToken: tok, TokenType: "bearer"}, nil
}

// Me returns the caller's stored profile.
func (s *Service) Me(ctx context.Context, caller auth.Identity) (*models.User, error) {
	var u *models.User
	err := s.inTx(ctx, func(st *repository.Store) error {
		var err error
		u, err = st.Users.GetByID(ctx, caller.UserID)
		return wrap("get user", err)
	})
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.NotFound("User not found")
	}
	return u, nil
}
