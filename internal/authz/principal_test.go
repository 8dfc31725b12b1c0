package authz_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/sindigo/sindigo/internal/authz"
	"github.com/sindigo/sindigo/internal/domain"
)

func TestResolvePrincipal(t *testing.T) {
	userID := uuid.New()
	personID := uuid.New()

	t.Run("full claims", func(t *testing.T) {
		p, err := authz.ResolvePrincipal(userID.String(), personID.String(), true)
		assert.NoError(t, err)
		assert.Equal(t, userID, p.UserID)
		assert.NotNil(t, p.PersonID)
		assert.Equal(t, personID, *p.PersonID)
		assert.True(t, p.IsPlatformAdmin)
	})

	t.Run("missing user id is unauthenticated", func(t *testing.T) {
		_, err := authz.ResolvePrincipal("", "", false)
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("garbage user id is unauthenticated", func(t *testing.T) {
		_, err := authz.ResolvePrincipal("not-a-uuid", "", false)
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("malformed person id is ignored", func(t *testing.T) {
		p, err := authz.ResolvePrincipal(userID.String(), "not-a-uuid", false)
		assert.NoError(t, err)
		assert.Nil(t, p.PersonID)
	})

	t.Run("nil person id is ignored", func(t *testing.T) {
		p, err := authz.ResolvePrincipal(userID.String(), uuid.Nil.String(), false)
		assert.NoError(t, err)
		assert.Nil(t, p.PersonID)
	})
}
