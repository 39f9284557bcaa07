package wizard

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"traveline/local-app/internal/api"
	"traveline/local-app/internal/log"
	"traveline/local-app/internal/model"
)

type plannerMock struct {
	mock.Mock
}

func (m *plannerMock) RecommendedDestinations(ctx context.Context, q model.DestinationQuery) ([]model.Destination, error) {
	args := m.Called(ctx, q)
	d, _ := args.Get(0).([]model.Destination)
	return d, args.Error(1)
}

func (m *plannerMock) RecommendedHotels(ctx context.Context, destinationID int, budget string) ([]model.Hotel, error) {
	args := m.Called(ctx, destinationID, budget)
	h, _ := args.Get(0).([]model.Hotel)
	return h, args.Error(1)
}

func (m *plannerMock) CreatePlanWithRecommendations(ctx context.Context, req model.PlanRequest) (*model.TravelPlan, error) {
	args := m.Called(ctx, req)
	p, _ := args.Get(0).(*model.TravelPlan)
	return p, args.Error(1)
}

var (
	prefs = model.Preferences{
		ID: 1, Budget: model.BudgetLow, Interest: model.InterestBeach,
		Objective: model.ObjectiveLeisure, NumTravelers: 2,
		BudgetMax: decimal.NewNullDecimal(decimal.NewFromInt(900)),
	}
	params       = model.TripParameters{TravelDate: "2025-07-01", ReturnDate: "2025-07-05", Country: "Tanzania"}
	destinations = []model.Destination{{ID: 1, Name: "Zanzibar"}, {ID: 2, Name: "Mafia Island"}}
	hotels       = []model.Hotel{{ID: 10, Name: "Coral Inn"}, {ID: 11, Name: "Reef Lodge"}}
	networkErr   = errors.New("network error: connection refused")
)

func wantQuery() model.DestinationQuery {
	return model.DestinationQuery{
		Budget: "low", Interest: "beach", Country: "Tanzania",
		Objective: "leisure", BudgetMax: "900",
	}
}

func atHotelChoice(t *testing.T, p *plannerMock) *Wizard {
	t.Helper()
	p.On("RecommendedDestinations", mock.Anything, wantQuery()).Return(destinations, nil).Once()
	p.On("RecommendedHotels", mock.Anything, 2, "low").Return(hotels, nil).Once()

	w := New(p, prefs, log.NewNop())
	require.NoError(t, w.SubmitParameters(context.Background(), params))
	require.NoError(t, w.SelectDestination(context.Background(), 2))
	require.Equal(t, StageHotelChoice, w.Stage())
	return w
}

func TestHappyPath(t *testing.T) {
	p := new(plannerMock)
	w := atHotelChoice(t, p)

	plan := &model.TravelPlan{ID: 77}
	p.On("CreatePlanWithRecommendations", mock.Anything, model.PlanRequest{
		TravelDate: "2025-07-01", ReturnDate: "2025-07-05", Budget: "low", NumTravelers: 2,
		Interest: "beach", Country: "Tanzania", Destination: 2, Hotel: 11,
	}).Return(plan, nil).Once()

	require.NoError(t, w.SelectHotel(context.Background(), 11))

	s := w.Snapshot()
	assert.Equal(t, StageConfirmed, s.Stage)
	require.NotNil(t, s.Plan)
	assert.Equal(t, 77, s.Plan.ID)
	assert.Equal(t, 2, s.DestinationID)
	assert.Equal(t, 11, s.HotelID)
	assert.Empty(t, s.LastError)
	p.AssertExpectations(t)
}

func TestHotelFetchFailureStaysAtDestinationChoice(t *testing.T) {
	p := new(plannerMock)
	p.On("RecommendedDestinations", mock.Anything, wantQuery()).Return(destinations, nil).Once()
	p.On("RecommendedHotels", mock.Anything, 1, "low").Return(nil, networkErr).Once()

	w := New(p, prefs, log.NewNop())
	require.NoError(t, w.SubmitParameters(context.Background(), params))
	err := w.SelectDestination(context.Background(), 1)
	require.ErrorIs(t, err, networkErr)

	s := w.Snapshot()
	assert.Equal(t, StageDestinationChoice, s.Stage)
	assert.Equal(t, destinations, s.Destinations)
	assert.Zero(t, s.DestinationID)
	assert.NotEmpty(t, s.LastError)
	assert.False(t, s.Pending)
}

func TestPlanCreationFailureKeepsHotelChoice(t *testing.T) {
	p := new(plannerMock)
	w := atHotelChoice(t, p)
	p.On("CreatePlanWithRecommendations", mock.Anything, mock.Anything).
		Return(nil, &api.Error{Status: 400, Message: "Missing required fields"}).Once()

	before := w.Snapshot()
	require.Error(t, w.SelectHotel(context.Background(), 10))
	after := w.Snapshot()

	assert.Equal(t, StageHotelChoice, after.Stage)
	assert.Equal(t, before.Hotels, after.Hotels)
	assert.Equal(t, before.DestinationID, after.DestinationID)
	assert.Equal(t, "Missing required fields", after.LastError)
	assert.Nil(t, after.Plan)
}

func TestSubmitParametersValidation(t *testing.T) {
	p := new(plannerMock)
	w := New(p, prefs, log.NewNop())

	entered := model.TripParameters{TravelDate: "2025-07-01", Country: "Kenya"}
	err := w.SubmitParameters(context.Background(), entered)
	require.Error(t, err)

	s := w.Snapshot()
	assert.Equal(t, StageParameters, s.Stage)
	assert.Equal(t, entered, s.Params)
	assert.Contains(t, s.LastError, "return_date is required")
	p.AssertNotCalled(t, "RecommendedDestinations", mock.Anything, mock.Anything)
}

func TestEmptyRecommendationsStayPut(t *testing.T) {
	p := new(plannerMock)
	p.On("RecommendedDestinations", mock.Anything, mock.Anything).Return([]model.Destination{}, nil).Once()

	w := New(p, prefs, log.NewNop())
	require.ErrorIs(t, w.SubmitParameters(context.Background(), params), ErrNoResults)
	s := w.Snapshot()
	assert.Equal(t, StageParameters, s.Stage)
	assert.Contains(t, s.LastError, "No destinations")
}

func TestUnknownChoiceAndWrongStage(t *testing.T) {
	p := new(plannerMock)
	w := New(p, prefs, log.NewNop())

	assert.ErrorIs(t, w.SelectDestination(context.Background(), 1), ErrInvalidTransition)
	assert.ErrorIs(t, w.SelectHotel(context.Background(), 10), ErrInvalidTransition)
	assert.ErrorIs(t, w.Back(), ErrInvalidTransition)

	p.On("RecommendedDestinations", mock.Anything, mock.Anything).Return(destinations, nil).Once()
	require.NoError(t, w.SubmitParameters(context.Background(), params))
	assert.ErrorIs(t, w.SelectDestination(context.Background(), 99), ErrUnknownChoice)
	assert.ErrorIs(t, w.SubmitParameters(context.Background(), params), ErrInvalidTransition)
	assert.Equal(t, StageDestinationChoice, w.Stage())
}

func TestBackDiscardsCurrentList(t *testing.T) {
	p := new(plannerMock)
	w := atHotelChoice(t, p)

	require.NoError(t, w.Back())
	s := w.Snapshot()
	assert.Equal(t, StageDestinationChoice, s.Stage)
	assert.Empty(t, s.Hotels)
	assert.Equal(t, destinations, s.Destinations)

	require.NoError(t, w.Back())
	s = w.Snapshot()
	assert.Equal(t, StageParameters, s.Stage)
	assert.Empty(t, s.Destinations)
	assert.Equal(t, params, s.Params)
}

func TestConcurrentActionIsBusyAndResetDiscardsLateResult(t *testing.T) {
	p := new(plannerMock)
	started := make(chan struct{})
	release := make(chan struct{})
	p.On("RecommendedDestinations", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(destinations, nil).Once()

	w := New(p, prefs, log.NewNop())
	done := make(chan error, 1)
	go func() { done <- w.SubmitParameters(context.Background(), params) }()

	<-started
	assert.True(t, w.Pending())
	assert.ErrorIs(t, w.SubmitParameters(context.Background(), params), ErrBusy)
	assert.ErrorIs(t, w.Back(), ErrBusy)

	w.Reset()
	close(release)

	assert.ErrorIs(t, <-done, ErrStale)
	s := w.Snapshot()
	assert.Equal(t, StageParameters, s.Stage)
	assert.Empty(t, s.Destinations)
	assert.False(t, s.Pending)
}

func TestResetAfterConfirmation(t *testing.T) {
	p := new(plannerMock)
	w := atHotelChoice(t, p)
	p.On("CreatePlanWithRecommendations", mock.Anything, mock.Anything).Return(&model.TravelPlan{ID: 5}, nil).Once()
	require.NoError(t, w.SelectHotel(context.Background(), 10))

	assert.ErrorIs(t, w.Back(), ErrInvalidTransition)
	w.Reset()
	assert.Equal(t, State{Stage: StageParameters}, w.Snapshot())
}

func TestUpdatePreferencesOnlyBeforeSearch(t *testing.T) {
	p := new(plannerMock)
	w := New(p, prefs, log.NewNop())

	changed := prefs
	changed.Budget = model.BudgetHigh
	require.NoError(t, w.UpdatePreferences(changed))

	p.On("RecommendedDestinations", mock.Anything, mock.MatchedBy(func(q model.DestinationQuery) bool {
		return q.Budget == "high"
	})).Return(destinations, nil).Once()
	require.NoError(t, w.SubmitParameters(context.Background(), params))
	assert.ErrorIs(t, w.UpdatePreferences(prefs), ErrInvalidTransition)
}

// flakyPlanner succeeds or fails at random.
type flakyPlanner struct {
	rng *rand.Rand
}

func (f flakyPlanner) RecommendedDestinations(context.Context, model.DestinationQuery) ([]model.Destination, error) {
	if f.rng.Intn(3) == 0 {
		return nil, networkErr
	}
	return destinations, nil
}

func (f flakyPlanner) RecommendedHotels(context.Context, int, string) ([]model.Hotel, error) {
	if f.rng.Intn(3) == 0 {
		return nil, networkErr
	}
	return hotels, nil
}

func (f flakyPlanner) CreatePlanWithRecommendations(context.Context, model.PlanRequest) (*model.TravelPlan, error) {
	if f.rng.Intn(3) == 0 {
		return nil, networkErr
	}
	return &model.TravelPlan{ID: 1}, nil
}

func TestStagesAreOnlyReachedInOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	ctx := context.Background()

	for run := 0; run < 200; run++ {
		w := New(flakyPlanner{rng: rng}, prefs, log.NewNop())
		seenDestinationChoice := false

		for step := 0; step < 20; step++ {
			prev := w.Stage()
			switch rng.Intn(5) {
			case 0:
				_ = w.SubmitParameters(ctx, params)
			case 1:
				_ = w.SelectDestination(ctx, 1+rng.Intn(3))
			case 2:
				_ = w.SelectHotel(ctx, 9+rng.Intn(4))
			case 3:
				_ = w.Back()
			case 4:
				if rng.Intn(4) == 0 {
					w.Reset()
					seenDestinationChoice = false
				}
			}

			s := w.Snapshot()
			if s.Stage == StageDestinationChoice {
				seenDestinationChoice = true
				require.NotEmpty(t, s.Destinations)
			}
			if s.Stage == StageHotelChoice || s.Stage == StageConfirmed {
				require.True(t, seenDestinationChoice, "reached %s without destination choice", s.Stage)
				require.NotEmpty(t, s.Hotels)
				require.True(t, containsDestination(s.Destinations, s.DestinationID))
			}
			if s.Stage == StageConfirmed {
				require.NotNil(t, s.Plan)
				require.True(t, containsHotel(s.Hotels, s.HotelID))
			}
			if s.Stage > prev+1 {
				t.Fatalf("skipped from %s to %s", prev, s.Stage)
			}
		}
	}
}
