package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"feedbackManagement/internal/apperr"
	"feedbackManagement/models"
)

// Identity is the authenticated caller.
type Identity struct {
	UserID    int64
	Role      models.Role
	Name      string
	Email     string
	ManagerID *int64
}

// IdentityOf builds an Identity from a stored user.
func IdentityOf(u *models.User) Identity {
	return Identity{UserID: u.ID, Role: u.Role, Name: u.Name, Email: u.Email, ManagerID: u.ManagerID}
}

type identityKey struct{}

// WithIdentity stores the identity in context.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// FromContext retrieves the identity from context (if any).
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

// UserFinder is the part of the identity store the gate needs.
type UserFinder interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// Gate resolves bearer tokens into identities.
type Gate struct {
	codec *TokenCodec
	users UserFinder
}

func NewGate(codec *TokenCodec, users UserFinder) *Gate {
	return &Gate{codec: codec, users: users}
}

// Codec returns the token codec the gate verifies with.
func (g *Gate) Codec() *TokenCodec { return g.codec }

// Resolve decodes token and loads the user it names. The identity carries the
// stored role, not the one embedded in the token.
func (g *Gate) Resolve(ctx context.Context, token string) (Identity, error) {
	if strings.TrimSpace(token) == "" {
		return Identity{}, apperr.InvalidCredentials("Could not validate credentials")
	}
	claims, err := g.codec.Decode(token)
	if err != nil {
		return Identity{}, apperr.InvalidCredentials("Could not validate credentials")
	}
	u, err := g.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return Identity{}, fmt.Errorf("resolve user %d: %w", claims.UserID, err)
	}
	if u == nil {
		return Identity{}, apperr.InvalidCredentials("Could not validate credentials")
	}
	return IdentityOf(u), nil
}

// ResolveHeader parses an "Authorization: Bearer <token>" value and resolves it.
func (g *Gate) ResolveHeader(ctx context.Context, header string) (Identity, error) {
	tok, err := BearerToken(header)
	if err != nil {
		return Identity{}, apperr.InvalidCredentials("Not authenticated")
	}
	return g.Resolve(ctx, tok)
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, error) {
	if header == "" {
		return "", errors.New("missing authorization")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization header")
	}
	tok := strings.TrimSpace(parts[1])
	if tok == "" {
		return "", errors.New("empty bearer token")
	}
	return tok, nil
}

// RequireRole fails with apperr.ErrForbidden when the caller does not hold role.
// It performs no data scoping.
func RequireRole(id Identity, role models.Role) error {
	if id.Role != role {
		return apperr.Forbidden("Insufficient permissions")
	}
	return nil
}

// RequireManager ensures the caller is a manager.
func RequireManager(id Identity) error { return RequireRole(id, models.RoleManager) }

// RequireEmployee ensures the caller is an employee.
func RequireEmployee(id Identity) error { return RequireRole(id, models.RoleEmployee) }
