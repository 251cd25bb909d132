package matching

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarukeshwar2016/Inclusicity/internal/domain/account"
	"github.com/sarukeshwar2016/Inclusicity/internal/domain/rating"
	"github.com/sarukeshwar2016/Inclusicity/internal/domain/request"
	apperrors "github.com/sarukeshwar2016/Inclusicity/pkg/errors"
	"github.com/sarukeshwar2016/Inclusicity/pkg/logger"
)

// fakeRequestRepo is an in-memory request.Repository with the same
// conditional-write semantics as the SQL store.
type fakeRequestRepo struct {
	mu       sync.Mutex
	requests map[uuid.UUID]*request.Request
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: make(map[uuid.UUID]*request.Request)}
}

func (f *fakeRequestRepo) Create(_ context.Context, req *request.Request) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *req
	f.requests[req.ID] = &cp
	return nil
}

func (f *fakeRequestRepo) GetByID(_ context.Context, id uuid.UUID) (*request.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.requests[id]
	if !ok {
		return nil, request.ErrRequestNotFound
	}
	cp := *req
	return &cp, nil
}

func (f *fakeRequestRepo) ListByRequester(_ context.Context, requesterID uuid.UUID) ([]*request.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*request.Request
	for _, req := range f.requests {
		if req.RequesterID == requesterID {
			cp := *req
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) ListByHelper(_ context.Context, helperID uuid.UUID) ([]*request.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*request.Request
	for _, req := range f.requests {
		if req.HelperID != nil && *req.HelperID == helperID {
			cp := *req
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) ListPendingByCity(_ context.Context, city string) ([]*request.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*request.Request
	for _, req := range f.requests {
		if req.City == city && req.Status == request.StatusPending {
			cp := *req
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch {
		case a.NeededAt != nil && b.NeededAt != nil:
			return a.NeededAt.Before(*b.NeededAt)
		case a.NeededAt != nil:
			return true
		case b.NeededAt != nil:
			return false
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	})
	return out, nil
}

func (f *fakeRequestRepo) GetActiveByHelper(_ context.Context, helperID uuid.UUID) (*request.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, req := range f.requests {
		if req.Status == request.StatusAccepted && req.HelperID != nil && *req.HelperID == helperID {
			cp := *req
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeRequestRepo) UpdateStatus(_ context.Context, id uuid.UUID, expected, next request.Status, fields request.TransitionFields) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.requests[id]
	if !ok || req.Status != expected {
		return request.ErrStatusConflict
	}
	req.Status = next
	switch next {
	case request.StatusAccepted:
		req.HelperID = fields.HelperID
		req.AcceptedAt = &fields.At
	case request.StatusCompleted:
		req.CompletedAt = &fields.At
	case request.StatusCancelled:
		req.CancelledBy = fields.CancelledBy
		req.CancelledAt = &fields.At
	}
	return nil
}

// fakeAccountRepo is an in-memory account.Repository
type fakeAccountRepo struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]*account.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[uuid.UUID]*account.Account)}
}

func (f *fakeAccountRepo) put(acc *account.Account) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *acc
	f.accounts[acc.ID] = &cp
}

func (f *fakeAccountRepo) Create(_ context.Context, acc *account.Account) error {
	f.put(acc)
	return nil
}

func (f *fakeAccountRepo) GetByID(_ context.Context, id uuid.UUID) (*account.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	acc, ok := f.accounts[id]
	if !ok {
		return nil, account.ErrAccountNotFound
	}
	cp := *acc
	return &cp, nil
}

func (f *fakeAccountRepo) GetByEmail(_ context.Context, email string) (*account.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, acc := range f.accounts {
		if acc.Email == email {
			cp := *acc
			return &cp, nil
		}
	}
	return nil, account.ErrAccountNotFound
}

func (f *fakeAccountRepo) SetAvailability(_ context.Context, id uuid.UUID, available bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	acc, ok := f.accounts[id]
	if !ok {
		return account.ErrAccountNotFound
	}
	acc.Available = available
	return nil
}

func (f *fakeAccountRepo) SetVerified(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	acc, ok := f.accounts[id]
	if !ok {
		return account.ErrAccountNotFound
	}
	acc.Verified = true
	return nil
}

func (f *fakeAccountRepo) UpdateReputation(_ context.Context, helperID uuid.UUID, avg float64, total int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	acc, ok := f.accounts[helperID]
	if !ok {
		return account.ErrAccountNotFound
	}
	acc.AvgRating = &avg
	acc.TotalReviews = total
	return nil
}

func (f *fakeAccountRepo) ListUnverifiedHelpers(_ context.Context) ([]*account.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*account.Account
	for _, acc := range f.accounts {
		if acc.Role == account.RoleHelper && !acc.Verified {
			cp := *acc
			out = append(out, &cp)
		}
	}
	return out, nil
}

// fakeRatingRepo is an in-memory rating.Repository
type fakeRatingRepo struct {
	mu      sync.Mutex
	ratings map[uuid.UUID]*rating.Rating // keyed by request id
}

func newFakeRatingRepo() *fakeRatingRepo {
	return &fakeRatingRepo{ratings: make(map[uuid.UUID]*rating.Rating)}
}

func (f *fakeRatingRepo) Create(_ context.Context, r *rating.Rating) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.ratings[r.RequestID]; ok {
		return rating.ErrAlreadyRated
	}
	cp := *r
	f.ratings[r.RequestID] = &cp
	return nil
}

func (f *fakeRatingRepo) ExistsForRequest(_ context.Context, requestID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.ratings[requestID]
	return ok, nil
}

func (f *fakeRatingRepo) ListByHelper(_ context.Context, helperID uuid.UUID) ([]*rating.Rating, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*rating.Rating
	for _, r := range f.ratings {
		if r.HelperID == helperID {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

// test fixture

type engineFixture struct {
	engine   *Engine
	requests *fakeRequestRepo
	accounts *fakeAccountRepo
	ratings  *fakeRatingRepo
}

func newEngineFixture() *engineFixture {
	requests := newFakeRequestRepo()
	accounts := newFakeAccountRepo()
	ratings := newFakeRatingRepo()
	return &engineFixture{
		engine:   NewEngine(requests, accounts, ratings, nil, logger.NewNop()),
		requests: requests,
		accounts: accounts,
		ratings:  ratings,
	}
}

func (f *engineFixture) addRequester(city string) *account.Account {
	acc := &account.Account{
		ID:   uuid.New(),
		Name: "Asha",
		Role: account.RoleRequester,
		City: city,
	}
	f.accounts.put(acc)
	return acc
}

func (f *engineFixture) addHelper(city string, available bool) *account.Account {
	acc := &account.Account{
		ID:        uuid.New(),
		Name:      "Ravi",
		Role:      account.RoleHelper,
		City:      city,
		Verified:  true,
		Available: available,
	}
	f.accounts.put(acc)
	return acc
}

func (f *engineFixture) addPendingRequest(requesterID uuid.UUID, city string) *request.Request {
	req := &request.Request{
		ID:          uuid.New(),
		RequesterID: requesterID,
		City:        city,
		Need:        "grocery run",
		Status:      request.StatusPending,
		CreatedAt:   time.Now().UTC(),
	}
	_ = f.requests.Create(context.Background(), req)
	return req
}

func TestCreate_RequiresCityAndNeed(t *testing.T) {
	f := newEngineFixture()
	requester := f.addRequester("Chennai")

	_, err := f.engine.Create(context.Background(), requester.ID, CreateInput{City: "  ", Need: "ride"})
	assert.Error(t, err)

	_, err = f.engine.Create(context.Background(), requester.ID, CreateInput{City: "Chennai", Need: ""})
	assert.Error(t, err)
}

func TestCreate_StartsPending(t *testing.T) {
	f := newEngineFixture()
	requester := f.addRequester("Chennai")

	req, err := f.engine.Create(context.Background(), requester.ID, CreateInput{
		City:       "Chennai",
		Need:       "pharmacy pickup",
		NeededDate: "2026-09-01",
		NeededTime: "14:30",
	})
	require.NoError(t, err)

	assert.Equal(t, request.StatusPending, req.Status)
	assert.Nil(t, req.HelperID)
	require.NotNil(t, req.NeededAt)
	assert.Equal(t, 14, req.NeededAt.Hour())
}

func TestCreate_RejectsPartialSchedule(t *testing.T) {
	f := newEngineFixture()
	requester := f.addRequester("Chennai")

	tests := []struct {
		name string
		date string
		tod  string
	}{
		{"date without time", "2026-09-01", ""},
		{"time without date", "", "14:30"},
		{"malformed date", "01/09/2026", "14:30"},
		{"malformed time", "2026-09-01", "2pm"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.engine.Create(context.Background(), requester.ID, CreateInput{
				City: "Chennai", Need: "ride", NeededDate: tt.date, NeededTime: tt.tod,
			})
			assert.ErrorIs(t, err, apperrors.ErrInvalidSchedule)
		})
	}
}

func TestListAvailable_FiltersByCityAndStatus(t *testing.T) {
	f := newEngineFixture()
	requester := f.addRequester("Chennai")
	helper := f.addHelper("Chennai", true)

	inCity := f.addPendingRequest(requester.ID, "Chennai")
	f.addPendingRequest(requester.ID, "Mumbai")

	accepted := f.addPendingRequest(requester.ID, "Chennai")
	require.NoError(t, f.requests.UpdateStatus(context.Background(), accepted.ID,
		request.StatusPending, request.StatusAccepted,
		request.TransitionFields{HelperID: &helper.ID, At: time.Now()}))

	results, err := f.engine.ListAvailable(context.Background(), helper.ID)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, inCity.ID, results[0].ID)
	assert.Equal(t, "Asha", results[0].RequesterName)
}

func TestListAvailable_RefusedWhenUnavailable(t *testing.T) {
	f := newEngineFixture()
	helper := f.addHelper("Chennai", false)

	_, err := f.engine.ListAvailable(context.Background(), helper.ID)
	assert.ErrorIs(t, err, apperrors.ErrHelperNotAvailable)
}

func TestListAvailable_OrdersBySchedule(t *testing.T) {
	f := newEngineFixture()
	requester := f.addRequester("Chennai")
	helper := f.addHelper("Chennai", true)

	later := time.Now().Add(4 * time.Hour)
	sooner := time.Now().Add(1 * time.Hour)

	unscheduled := f.addPendingRequest(requester.ID, "Chennai")

	reqLater := f.addPendingRequest(requester.ID, "Chennai")
	reqLater.NeededAt = &later
	_ = f.requests.Create(context.Background(), reqLater)

	reqSooner := f.addPendingRequest(requester.ID, "Chennai")
	reqSooner.NeededAt = &sooner
	_ = f.requests.Create(context.Background(), reqSooner)

	results, err := f.engine.ListAvailable(context.Background(), helper.ID)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, reqSooner.ID, results[0].ID)
	assert.Equal(t, reqLater.ID, results[1].ID)
	assert.Equal(t, unscheduled.ID, results[2].ID)
}

func TestAccept_AssignsAndFlipsAvailability(t *testing.T) {
	f := newEngineFixture()
	requester := f.addRequester("Chennai")
	helper := f.addHelper("Chennai", true)
	req := f.addPendingRequest(requester.ID, "Chennai")

	accepted, err := f.engine.Accept(context.Background(), helper.ID, req.ID)
	require.NoError(t, err)

	assert.Equal(t, request.StatusAccepted, accepted.Status)
	require.NotNil(t, accepted.HelperID)
	assert.Equal(t, helper.ID, *accepted.HelperID)
	assert.NotNil(t, accepted.AcceptedAt)

	fresh, err := f.accounts.GetByID(context.Background(), helper.ID)
	require.NoError(t, err)
	assert.False(t, fresh.Available)
}

func TestAccept_RefusedWhenUnavailable(t *testing.T) {
	f := newEngineFixture()
	requester := f.addRequester("Chennai")
	helper := f.addHelper("Chennai", false)
	req := f.addPendingRequest(requester.ID, "Chennai")

	_, err := f.engine.Accept(context.Background(), helper.ID, req.ID)
	assert.ErrorIs(t, err, apperrors.ErrHelperNotAvailable)
}

func TestAccept_NonPendingLooksMissing(t *testing.T) {
	f := newEngineFixture()
	requester := f.addRequester("Chennai")
	winner := f.addHelper("Chennai", true)
	loser := f.addHelper("Chennai", true)
	req := f.addPendingRequest(requester.ID, "Chennai")

	_, err := f.engine.Accept(context.Background(), winner.ID, req.ID)
	require.NoError(t, err)

	// The loser re-reads after the winner committed, so the precheck
	// already sees a non-pending request.
	_, err = f.engine.Accept(context.Background(), loser.ID, req.ID)
	assert.ErrorIs(t, err, apperrors.ErrRequestNotFound)

	fresh, err := f.accounts.GetByID(context.Background(), loser.ID)
	require.NoError(t, err)
	assert.True(t, fresh.Available, "losing helper keeps availability")
}

func TestAccept_ConcurrentAcceptsHaveOneWinner(t *testing.T) {
	f := newEngineFixture()
	requester := f.addRequester("Chennai")
	req := f.addPendingRequest(requester.ID, "Chennai")

	const n = 16
	helpers := make([]*account.Account, n)
	for i := range helpers {
		helpers[i] = f.addHelper("Chennai", true)
	}

	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.engine.Accept(context.Background(), helpers[i].ID, req.ID)
		}(i)
	}
	wg.Wait()

	winners := 0
	for i, err := range errs {
		if err == nil {
			winners++
			fresh, getErr := f.accounts.GetByID(context.Background(), helpers[i].ID)
			require.NoError(t, getErr)
			assert.False(t, fresh.Available, "winner is no longer available")
			continue
		}
		isLoss := err == apperrors.ErrRequestTaken || err == apperrors.ErrRequestNotFound
		assert.True(t, isLoss, "loser gets a taken/missing response, got %v", err)
		fresh, getErr := f.accounts.GetByID(context.Background(), helpers[i].ID)
		require.NoError(t, getErr)
		assert.True(t, fresh.Available, "loser keeps availability")
	}
	assert.Equal(t, 1, winners, "exactly one helper wins the request")

	final, err := f.requests.GetByID(context.Background(), req.ID)
	require.NoError(t, err)
	assert.Equal(t, request.StatusAccepted, final.Status)
	assert.NotNil(t, final.HelperID)
}

func TestComplete_RestoresAvailability(t *testing.T) {
	f := newEngineFixture()
	requester := f.addRequester("Chennai")
	helper := f.addHelper("Chennai", true)
	req := f.addPendingRequest(requester.ID, "Chennai")

	_, err := f.engine.Accept(context.Background(), helper.ID, req.ID)
	require.NoError(t, err)

	completed, err := f.engine.Complete(context.Background(), helper.ID, req.ID)
	require.NoError(t, err)
	assert.Equal(t, request.StatusCompleted, completed.Status)
	assert.NotNil(t, completed.CompletedAt)

	fresh, err := f.accounts.GetByID(context.Background(), helper.ID)
	require.NoError(t, err)
	assert.True(t, fresh.Available)
}

func TestComplete_SecondAttemptLooksMissing(t *testing.T) {
	f := newEngineFixture()
	requester := f.addRequester("Chennai")
	helper := f.addHelper("Chennai", true)
	req := f.addPendingRequest(requester.ID, "Chennai")

	_, err := f.engine.Accept(context.Background(), helper.ID, req.ID)
	require.NoError(t, err)
	_, err = f.engine.Complete(context.Background(), helper.ID, req.ID)
	require.NoError(t, err)

	_, err = f.engine.Complete(context.Background(), helper.ID, req.ID)
	assert.ErrorIs(t, err, apperrors.ErrRequestNotFound)
}

func TestComplete_ForeignAssignmentLooksMissing(t *testing.T) {
	f := newEngineFixture()
	requester := f.addRequester("Chennai")
	owner := f.addHelper("Chennai", true)
	other := f.addHelper("Chennai", true)
	req := f.addPendingRequest(requester.ID, "Chennai")

	_, err := f.engine.Accept(context.Background(), owner.ID, req.ID)
	require.NoError(t, err)

	_, err = f.engine.Complete(context.Background(), other.ID, req.ID)
	assert.ErrorIs(t, err, apperrors.ErrRequestNotFound)
}

func TestCancelByRequester_PendingRequest(t *testing.T) {
	f := newEngineFixture()
	requester := f.addRequester("Chennai")
	req := f.addPendingRequest(requester.ID, "Chennai")

	cancelled, err := f.engine.CancelByRequester(context.Background(), requester.ID, req.ID)
	require.NoError(t, err)
	assert.Equal(t, request.StatusCancelled, cancelled.Status)
	assert.Equal(t, request.CancelledByRequester, cancelled.CancelledBy)
}

func TestCancelByRequester_ReleasesAssignedHelper(t *testing.T) {
	f := newEngineFixture()
	requester := f.addRequester("Chennai")
	helper := f.addHelper("Chennai", true)
	req := f.addPendingRequest(requester.ID, "Chennai")

	_, err := f.engine.Accept(context.Background(), helper.ID, req.ID)
	require.NoError(t, err)

	_, err = f.engine.CancelByRequester(context.Background(), requester.ID, req.ID)
	require.NoError(t, err)

	fresh, err := f.accounts.GetByID(context.Background(), helper.ID)
	require.NoError(t, err)
	assert.True(t, fresh.Available, "helper released when their assignment is cancelled")
}

func TestCancelByRequester_ForeignRequestLooksMissing(t *testing.T) {
	f := newEngineFixture()
	owner := f.addRequester("Chennai")
	stranger := f.addRequester("Chennai")
	req := f.addPendingRequest(owner.ID, "Chennai")

	_, err := f.engine.CancelByRequester(context.Background(), stranger.ID, req.ID)
	assert.ErrorIs(t, err, apperrors.ErrRequestNotFound)
}

func TestCancelByRequester_TerminalRequestLooksMissing(t *testing.T) {
	f := newEngineFixture()
	requester := f.addRequester("Chennai")
	helper := f.addHelper("Chennai", true)
	req := f.addPendingRequest(requester.ID, "Chennai")

	_, err := f.engine.Accept(context.Background(), helper.ID, req.ID)
	require.NoError(t, err)
	_, err = f.engine.Complete(context.Background(), helper.ID, req.ID)
	require.NoError(t, err)

	_, err = f.engine.CancelByRequester(context.Background(), requester.ID, req.ID)
	assert.ErrorIs(t, err, apperrors.ErrRequestNotFound)
}

func TestCancelByHelper_RestoresAvailabilityAndStaysTerminal(t *testing.T) {
	f := newEngineFixture()
	requester := f.addRequester("Chennai")
	helper := f.addHelper("Chennai", true)
	other := f.addHelper("Chennai", true)
	req := f.addPendingRequest(requester.ID, "Chennai")

	_, err := f.engine.Accept(context.Background(), helper.ID, req.ID)
	require.NoError(t, err)

	cancelled, err := f.engine.CancelByHelper(context.Background(), helper.ID, req.ID)
	require.NoError(t, err)
	assert.Equal(t, request.StatusCancelled, cancelled.Status)
	assert.Equal(t, request.CancelledByHelper, cancelled.CancelledBy)

	fresh, err := f.accounts.GetByID(context.Background(), helper.ID)
	require.NoError(t, err)
	assert.True(t, fresh.Available)

	// A helper-cancelled request is never re-offered
	_, err = f.engine.Accept(context.Background(), other.ID, req.ID)
	assert.ErrorIs(t, err, apperrors.ErrRequestNotFound)
}

func TestCancelByHelper_PendingRequestLooksMissing(t *testing.T) {
	f := newEngineFixture()
	requester := f.addRequester("Chennai")
	helper := f.addHelper("Chennai", true)
	req := f.addPendingRequest(requester.ID, "Chennai")

	_, err := f.engine.CancelByHelper(context.Background(), helper.ID, req.ID)
	assert.ErrorIs(t, err, apperrors.ErrRequestNotFound)
}

func TestSetAvailability_RefusedWhileAssigned(t *testing.T) {
	f := newEngineFixture()
	requester := f.addRequester("Chennai")
	helper := f.addHelper("Chennai", true)
	req := f.addPendingRequest(requester.ID, "Chennai")

	_, err := f.engine.Accept(context.Background(), helper.ID, req.ID)
	require.NoError(t, err)

	err = f.engine.SetAvailability(context.Background(), helper.ID, true)
	assert.ErrorIs(t, err, apperrors.ErrHelperBusy)

	// Turning off while assigned is always allowed
	err = f.engine.SetAvailability(context.Background(), helper.ID, false)
	assert.NoError(t, err)
}

func TestSetAvailability_Toggle(t *testing.T) {
	f := newEngineFixture()
	helper := f.addHelper("Chennai", true)

	require.NoError(t, f.engine.SetAvailability(context.Background(), helper.ID, false))
	fresh, err := f.accounts.GetByID(context.Background(), helper.ID)
	require.NoError(t, err)
	assert.False(t, fresh.Available)

	require.NoError(t, f.engine.SetAvailability(context.Background(), helper.ID, true))
	fresh, err = f.accounts.GetByID(context.Background(), helper.ID)
	require.NoError(t, err)
	assert.True(t, fresh.Available)
}

func TestSetAvailability_RequesterForbidden(t *testing.T) {
	f := newEngineFixture()
	requester := f.addRequester("Chennai")

	err := f.engine.SetAvailability(context.Background(), requester.ID, true)
	assert.Error(t, err)
}

func TestMyRequests_RatedFlagAndCounterpart(t *testing.T) {
	f := newEngineFixture()
	requester := f.addRequester("Chennai")
	helper := f.addHelper("Chennai", true)
	req := f.addPendingRequest(requester.ID, "Chennai")

	_, err := f.engine.Accept(context.Background(), helper.ID, req.ID)
	require.NoError(t, err)
	_, err = f.engine.Complete(context.Background(), helper.ID, req.ID)
	require.NoError(t, err)

	require.NoError(t, f.ratings.Create(context.Background(), &rating.Rating{
		ID:          uuid.New(),
		RequestID:   req.ID,
		RequesterID: requester.ID,
		HelperID:    helper.ID,
		Score:       5,
	}))

	views, err := f.engine.MyRequests(context.Background(), requester.ID, account.RoleRequester)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.True(t, views[0].IsRated)
	assert.Equal(t, "Ravi", views[0].CounterpartName)

	helperViews, err := f.engine.MyRequests(context.Background(), helper.ID, account.RoleHelper)
	require.NoError(t, err)
	require.Len(t, helperViews, 1)
	assert.Equal(t, "Asha", helperViews[0].CounterpartName)
}
