package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stemsi/schoolhealth-backend/internal/model"
)

func TestStaticAuthenticator(t *testing.T) {
	auth := NewStaticAuthenticator()
	ctx := context.Background()

	tests := []struct {
		email, password string
		role            model.Role
		id              string
	}{
		{"admin@school.edu.vn", "admin123", model.RoleAdmin, "1"},
		{"medical@school.edu.vn", "medical123", model.RoleMedicalStaff, "2"},
		{"parent@gmail.com", "parent123", model.RoleParent, "3"},
		{"teacher@school.edu.vn", "teacher123", model.RoleTeacher, "4"},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			id, err := auth.Authenticate(ctx, tt.email, tt.password)
			require.NoError(t, err)
			assert.Equal(t, tt.role, id.Role)
			assert.Equal(t, tt.id, id.ID)
			assert.Equal(t, tt.email, id.Email)
		})
	}
}

func TestStaticAuthenticator_SameErrorForUnknownEmailAndBadPassword(t *testing.T) {
	auth := NewStaticAuthenticator()
	ctx := context.Background()

	_, errUnknown := auth.Authenticate(ctx, "nobody@school.edu.vn", "admin123")
	_, errBadPass := auth.Authenticate(ctx, "admin@school.edu.vn", "admin124")

	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.ErrorIs(t, errBadPass, ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errBadPass.Error())
}

func TestStaticAuthenticator_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewStaticAuthenticator().Authenticate(ctx, "admin@school.edu.vn", "admin123")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStaticAuthenticator_Accounts(t *testing.T) {
	accounts := NewStaticAuthenticator().Accounts()
	require.Len(t, accounts, 4)
	for i, role := range model.AllRoles {
		assert.Equal(t, role, accounts[i].Role)
	}
}
