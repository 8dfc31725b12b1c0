package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sindigo/sindigo/internal/authz"
	"github.com/sindigo/sindigo/internal/domain"
)

func TestNormalizeKind(t *testing.T) {
	cases := []struct {
		token string
		want  authz.EntityKind
	}{
		{"chamado", authz.KindTicket},
		{"CHAMADO", authz.KindTicket},
		{"  reserva  ", authz.KindReservation},
		{"cobranca_unidade", authz.KindUnitCharge},
		{"cobranca-unidade", authz.KindUnitCharge},
		{"Cobranca Unidade", authz.KindUnitCharge},
	}
	for _, tc := range cases {
		kind, err := authz.NormalizeKind(tc.token)
		assert.NoError(t, err, "token %q", tc.token)
		assert.Equal(t, tc.want, kind, "token %q", tc.token)
	}
}

func TestNormalizeKindUnknown(t *testing.T) {
	for _, token := range []string{"", "documento", "cobranca", "chamados"} {
		_, err := authz.NormalizeKind(token)
		assert.ErrorIs(t, err, domain.ErrInvalidArgument, "token %q", token)
	}
}

func TestKindsSorted(t *testing.T) {
	kinds := authz.Kinds()
	assert.Equal(t, []authz.EntityKind{
		authz.KindTicket,
		authz.KindUnitCharge,
		authz.KindReservation,
	}, kinds)
}
