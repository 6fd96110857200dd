package jwt

import (
	"context"
	"testing"

	"github.com/escuela-horarios/attendance-backend/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken_RoundTripsActor(t *testing.T) {
	svc := NewJWTService("test-secret-key-for-jwt", "1h")
	groupID := int64(12)

	token, expiresAt, err := svc.GenerateAccessToken(user.User{ID: 7, Email: "luis@escuela.edu", Role: user.RoleGroupLeader, GroupID: &groupID})
	require.NoError(t, err)
	assert.Greater(t, expiresAt, int64(0))

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)
	claims, err := decoded.AsMap(context.Background())
	require.NoError(t, err)

	actor, err := ActorFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, int64(7), actor.UserID)
	assert.Equal(t, user.RoleGroupLeader, actor.Role)
	require.NotNil(t, actor.GroupID)
	assert.Equal(t, int64(12), *actor.GroupID)
}

func TestActorFromClaims_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		claims map[string]interface{}
	}{
		{"wrong type", map[string]interface{}{"type": "refresh", "user_id": float64(1), "role": "admin"}},
		{"missing user", map[string]interface{}{"type": "access", "role": "admin"}},
		{"unknown role", map[string]interface{}{"type": "access", "user_id": float64(1), "role": "janitor"}},
		{"fractional id", map[string]interface{}{"type": "access", "user_id": 1.5, "role": "admin"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ActorFromClaims(tt.claims)
			assert.ErrorIs(t, err, ErrInvalidClaims)
		})
	}
}
