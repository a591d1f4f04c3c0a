// Package auth implements the credential gate in front of the record
// store, plus the JWT tokens the HTTP layer hands out after the gate
// admits a caller.
package auth

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/hosteldesk/backend/internal/models"
	"github.com/hosteldesk/backend/internal/store"
)

// Gate validates credentials against the user collection and maintains
// the active session. Failures are reported as a boolean, never an
// error: a bad login is an expected outcome, not a fault.
//
// Stored credentials are compared in PLAINTEXT by default, faithful to
// the system this replaces. That is not acceptable for a real
// deployment: set HashPasswords so signups store bcrypt hashes, and
// re-register existing accounts. Login transparently verifies both forms.
type Gate struct {
	store  *store.Store
	logger *zap.Logger

	// HashPasswords makes Signup store a bcrypt hash instead of the raw
	// credential.
	HashPasswords bool
}

func NewGate(s *store.Store, logger *zap.Logger) *Gate {
	return &Gate{store: s, logger: logger}
}

// Login checks id and password against the user collection. On a match
// the session becomes that user with the password stripped; on a miss
// any existing session is left untouched. The admitted user is returned
// directly so callers never re-read the shared session slot, which
// another login may overwrite at any time.
func (g *Gate) Login(ctx context.Context, id, password string) (models.User, bool) {
	u, found := g.store.AuthUserByID(id)
	if !found || !credentialMatches(u.Password, password) {
		return models.User{}, false
	}

	g.store.SetSession(ctx, u.User)
	g.logger.Info("login", zap.String("user", u.ID), zap.String("role", string(u.Role)))
	return u.User, true
}

// Signup registers a new student account and immediately establishes its
// session, returning the created user. Returns false with no mutation
// when the id is already taken by any account.
func (g *Gate) Signup(ctx context.Context, id, name, password string) (models.User, bool) {
	stored := password
	if g.HashPasswords {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			g.logger.Error("hash password", zap.Error(err))
			return models.User{}, false
		}
		stored = string(hash)
	}

	newUser := models.AuthUser{
		User: models.User{
			ID:         id,
			Name:       name,
			Email:      deriveEmail(name),
			Role:       models.RoleStudent,
			RoomNumber: "Unassigned",
		},
		Password: stored,
	}

	if !g.store.AddUser(ctx, newUser) {
		return models.User{}, false
	}

	// Signup implies login.
	g.store.SetSession(ctx, newUser.User)
	g.logger.Info("signup", zap.String("user", id))
	return newUser.User, true
}

// Logout clears the session unconditionally.
func (g *Gate) Logout(ctx context.Context) {
	g.store.ClearSession(ctx)
}

// credentialMatches verifies a presented password against the stored
// credential: bcrypt when the stored value carries a bcrypt prefix,
// plaintext equality otherwise.
func credentialMatches(stored, presented string) bool {
	if strings.HasPrefix(stored, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(presented)) == nil
	}
	return stored == presented
}

// deriveEmail builds the account email the same way the signup form
// always has: lowercased name, spaces replaced with dots, fixed domain.
func deriveEmail(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", ".") + "@hostel.com"
}
