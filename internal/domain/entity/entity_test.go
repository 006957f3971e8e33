package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClaimsFor(t *testing.T) {
	identity := &Identity{
		ID:       42,
		Username: "alice",
		Roles: Roles{
			{ID: 2, Name: RoleAdmin},
			{ID: 1, Name: RoleUser},
			{ID: 3, Name: RoleUser},
		},
	}

	claims := ClaimsFor(identity)

	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, "42", claims.IdentityID)
	assert.Equal(t, []string{"ROLE_ADMIN", "ROLE_USER"}, claims.Roles)
}

func TestRoles_Contains(t *testing.T) {
	roles := Roles{{Name: RoleUser}}

	assert.True(t, roles.Contains(RoleUser))
	assert.False(t, roles.Contains(RoleAdmin))
}

func TestRefreshToken_IsExpired(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	token := &RefreshToken{ExpiresAt: now}

	assert.True(t, token.IsExpired(now))
	assert.True(t, token.IsExpired(now.Add(time.Second)))
	assert.False(t, token.IsExpired(now.Add(-time.Second)))
}
