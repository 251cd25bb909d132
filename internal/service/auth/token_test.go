package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarukeshwar2016/Inclusicity/internal/domain/account"
)

func testAccount(role account.Role) *account.Account {
	return &account.Account{ID: uuid.New(), Role: role}
}

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour, "inclusicity-test")
	acc := testAccount(account.RoleHelper)

	token, err := issuer.Issue(acc)
	require.NoError(t, err)

	identity, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, acc.ID, identity.AccountID)
	assert.Equal(t, account.RoleHelper, identity.Role)
}

func TestTokenIssuer_RejectsExpired(t *testing.T) {
	issuer := NewTokenIssuer("secret", -time.Minute, "inclusicity-test")

	token, err := issuer.Issue(testAccount(account.RoleRequester))
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	assert.Error(t, err)
}

func TestTokenIssuer_RejectsWrongSecret(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour, "inclusicity-test")
	other := NewTokenIssuer("different", time.Hour, "inclusicity-test")

	token, err := issuer.Issue(testAccount(account.RoleRequester))
	require.NoError(t, err)

	_, err = other.Verify(token)
	assert.Error(t, err)
}

func TestTokenIssuer_RejectsGarbage(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour, "inclusicity-test")

	_, err := issuer.Verify("not.a.token")
	assert.Error(t, err)

	_, err = issuer.Verify("")
	assert.Error(t, err)
}
