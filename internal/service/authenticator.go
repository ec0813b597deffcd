package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/stemsi/schoolhealth-backend/internal/model"
)

// Common auth errors.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionNotFound    = errors.New("session not found")
	ErrTokenInvalid       = errors.New("invalid session token")
)

// Authenticator resolves credentials to an identity. Any mismatch must be
// reported as ErrInvalidCredentials without saying which field was wrong.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*model.Identity, error)
}

type staticAccount struct {
	password string
	identity model.Identity
}

// StaticAuthenticator checks credentials against a fixed in-memory table.
type StaticAuthenticator struct {
	accounts map[string]staticAccount
}

// NewStaticAuthenticator creates the authenticator holding the built-in demo accounts.
func NewStaticAuthenticator() *StaticAuthenticator {
	a := &StaticAuthenticator{accounts: make(map[string]staticAccount)}
	a.add("admin123", model.Identity{ID: "1", Name: "Nguyễn Văn Admin", Email: "admin@school.edu.vn", Role: model.RoleAdmin})
	a.add("medical123", model.Identity{ID: "2", Name: "Bs. Trần Thị Y", Email: "medical@school.edu.vn", Role: model.RoleMedicalStaff})
	a.add("parent123", model.Identity{ID: "3", Name: "Lê Văn Phụ Huynh", Email: "parent@gmail.com", Role: model.RoleParent})
	a.add("teacher123", model.Identity{ID: "4", Name: "Cô Phạm Thị Giáo Viên", Email: "teacher@school.edu.vn", Role: model.RoleTeacher})
	return a
}

func (a *StaticAuthenticator) add(password string, identity model.Identity) {
	a.accounts[identity.Email] = staticAccount{password: password, identity: identity}
}

// Authenticate implements Authenticator. Email matching is exact, as in the
// credential table.
func (a *StaticAuthenticator) Authenticate(ctx context.Context, email, password string) (*model.Identity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	acct, ok := a.accounts[strings.TrimSpace(email)]
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if subtle.ConstantTimeCompare([]byte(acct.password), []byte(password)) != 1 {
		return nil, ErrInvalidCredentials
	}

	identity := acct.identity
	return &identity, nil
}

// Accounts returns the identities known to the authenticator.
func (a *StaticAuthenticator) Accounts() []model.Identity {
	out := make([]model.Identity, 0, len(a.accounts))
	for _, role := range model.AllRoles {
		for _, acct := range a.accounts {
			if acct.identity.Role == role {
				out = append(out, acct.identity)
			}
		}
	}
	return out
}
