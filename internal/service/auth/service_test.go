package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarukeshwar2016/Inclusicity/internal/domain/account"
	apperrors "github.com/sarukeshwar2016/Inclusicity/pkg/errors"
	"github.com/sarukeshwar2016/Inclusicity/pkg/logger"
)

// memAccountRepo is an in-memory account.Repository with the same unique
// email constraint as the SQL store.
type memAccountRepo struct {
	accounts map[uuid.UUID]*account.Account
}

func newMemAccountRepo() *memAccountRepo {
	return &memAccountRepo{accounts: make(map[uuid.UUID]*account.Account)}
}

func (m *memAccountRepo) Create(_ context.Context, acc *account.Account) error {
	for _, existing := range m.accounts {
		if existing.Email == acc.Email {
			return account.ErrEmailTaken
		}
	}
	cp := *acc
	m.accounts[acc.ID] = &cp
	return nil
}

func (m *memAccountRepo) GetByID(_ context.Context, id uuid.UUID) (*account.Account, error) {
	acc, ok := m.accounts[id]
	if !ok {
		return nil, account.ErrAccountNotFound
	}
	cp := *acc
	return &cp, nil
}

func (m *memAccountRepo) GetByEmail(_ context.Context, email string) (*account.Account, error) {
	for _, acc := range m.accounts {
		if acc.Email == email {
			cp := *acc
			return &cp, nil
		}
	}
	return nil, account.ErrAccountNotFound
}

func (m *memAccountRepo) SetAvailability(_ context.Context, id uuid.UUID, available bool) error {
	acc, ok := m.accounts[id]
	if !ok {
		return account.ErrAccountNotFound
	}
	acc.Available = available
	return nil
}

func (m *memAccountRepo) SetVerified(_ context.Context, id uuid.UUID) error {
	acc, ok := m.accounts[id]
	if !ok {
		return account.ErrAccountNotFound
	}
	acc.Verified = true
	return nil
}

func (m *memAccountRepo) UpdateReputation(_ context.Context, helperID uuid.UUID, avg float64, total int) error {
	acc, ok := m.accounts[helperID]
	if !ok {
		return account.ErrAccountNotFound
	}
	acc.AvgRating = &avg
	acc.TotalReviews = total
	return nil
}

func (m *memAccountRepo) ListUnverifiedHelpers(_ context.Context) ([]*account.Account, error) {
	var out []*account.Account
	for _, acc := range m.accounts {
		if acc.Role == account.RoleHelper && !acc.Verified {
			cp := *acc
			out = append(out, &cp)
		}
	}
	return out, nil
}

func newTestService() (*Service, *memAccountRepo) {
	repo := newMemAccountRepo()
	tokens := NewTokenIssuer("test-secret", time.Hour, "inclusicity-test")
	return NewService(repo, tokens, logger.NewNop()), repo
}

func requesterInput() SignupInput {
	return SignupInput{
		Name:     "Asha",
		Email:    "asha@example.com",
		Password: "secret123",
		Age:      30,
		City:     "Chennai",
	}
}

func helperInput() HelperSignupInput {
	return HelperSignupInput{
		Name:     "Ravi",
		Email:    "ravi@example.com",
		Password: "secret123",
		Age:      25,
		City:     "Chennai",
		Phone:    "9000000000",
		NGOID:    "NGO-42",
		Skills:   []string{"mobility assistance"},
	}
}

func TestSignupRequester_HashesPassword(t *testing.T) {
	svc, _ := newTestService()

	acc, err := svc.SignupRequester(context.Background(), requesterInput())
	require.NoError(t, err)

	assert.Equal(t, account.RoleRequester, acc.Role)
	assert.NotEqual(t, "secret123", acc.PasswordHash)
	assert.NotEmpty(t, acc.PasswordHash)
}

func TestSignupRequester_NormalizesEmail(t *testing.T) {
	svc, _ := newTestService()

	in := requesterInput()
	in.Email = "  Asha@Example.COM "
	acc, err := svc.SignupRequester(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", acc.Email)
}

func TestSignup_DuplicateEmailConflictsAcrossRoles(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.SignupRequester(context.Background(), requesterInput())
	require.NoError(t, err)

	// Same email, different role
	in := helperInput()
	in.Email = "asha@example.com"
	_, err = svc.SignupHelper(context.Background(), in)
	assert.ErrorIs(t, err, apperrors.ErrEmailTaken)
}

func TestSignupHelper_StartsUnverified(t *testing.T) {
	svc, _ := newTestService()

	acc, err := svc.SignupHelper(context.Background(), helperInput())
	require.NoError(t, err)

	assert.Equal(t, account.RoleHelper, acc.Role)
	assert.False(t, acc.Verified)
	assert.True(t, acc.Available)
}

func TestSignupHelper_RejectsMinors(t *testing.T) {
	svc, _ := newTestService()

	in := helperInput()
	in.Age = 17
	_, err := svc.SignupHelper(context.Background(), in)
	assert.Error(t, err)
}

func TestSignupHelper_RequiresSkills(t *testing.T) {
	svc, _ := newTestService()

	in := helperInput()
	in.Skills = nil
	_, err := svc.SignupHelper(context.Background(), in)
	assert.Error(t, err)
}

func TestLogin_Success(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.SignupRequester(context.Background(), requesterInput())
	require.NoError(t, err)

	token, acc, err := svc.Login(context.Background(), "asha@example.com", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, account.RoleRequester, acc.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.SignupRequester(context.Background(), requesterInput())
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "asha@example.com", "wrong")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _ := newTestService()

	_, _, err := svc.Login(context.Background(), "ghost@example.com", "secret123")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLogin_UnverifiedHelperRefused(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.SignupHelper(context.Background(), helperInput())
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "ravi@example.com", "secret123")
	assert.ErrorIs(t, err, apperrors.ErrHelperNotVerified)
}

func TestVerifyHelper_FlowToLogin(t *testing.T) {
	svc, _ := newTestService()

	applied, err := svc.SignupHelper(context.Background(), helperInput())
	require.NoError(t, err)

	pending, err := svc.PendingHelpers(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 1)

	verified, already, err := svc.VerifyHelper(context.Background(), applied.ID)
	require.NoError(t, err)
	assert.False(t, already)
	assert.True(t, verified.Verified)

	// Second verify is idempotent and reports the prior state
	_, already, err = svc.VerifyHelper(context.Background(), applied.ID)
	require.NoError(t, err)
	assert.True(t, already)

	token, _, err := svc.Login(context.Background(), "ravi@example.com", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	pending, err = svc.PendingHelpers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestVerifyHelper_RequesterLooksMissing(t *testing.T) {
	svc, _ := newTestService()

	acc, err := svc.SignupRequester(context.Background(), requesterInput())
	require.NoError(t, err)

	_, _, err = svc.VerifyHelper(context.Background(), acc.ID)
	assert.ErrorIs(t, err, apperrors.ErrAccountNotFound)
}
