// Package wizard drives the four-stage trip-planning flow: trip
// parameters, destination choice, hotel choice and the confirmed plan.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"traveline/local-app/internal/api"
	"traveline/local-app/internal/log"
	"traveline/local-app/internal/model"
)

// Stage is a step of the wizard.
type Stage int

const (
	StageParameters Stage = iota
	StageDestinationChoice
	StageHotelChoice
	StageConfirmed
)

func (s Stage) String() string {
	switch s {
	case StageParameters:
		return "parameters"
	case StageDestinationChoice:
		return "destination"
	case StageHotelChoice:
		return "hotel"
	case StageConfirmed:
		return "confirmed"
	default:
		return "unknown"
	}
}

var (
	ErrBusy              = errors.New("a request is already in progress")
	ErrInvalidTransition = errors.New("action not available at this stage")
	ErrUnknownChoice     = errors.New("choice is not in the list")
	// ErrStale is returned by a call whose wizard was reset while it ran.
	ErrStale = errors.New("planning session was reset")
	// ErrNoResults is returned when a recommendation call succeeds empty.
	ErrNoResults = errors.New("no recommendations found")
)

// Planner is the part of the REST client the wizard uses.
type Planner interface {
	RecommendedDestinations(ctx context.Context, q model.DestinationQuery) ([]model.Destination, error)
	RecommendedHotels(ctx context.Context, destinationID int, budget string) ([]model.Hotel, error)
	CreatePlanWithRecommendations(ctx context.Context, req model.PlanRequest) (*model.TravelPlan, error)
}

// State is a copy of the wizard's data at one moment.
type State struct {
	Stage         Stage
	Params        model.TripParameters
	Destinations  []model.Destination
	DestinationID int
	Hotels        []model.Hotel
	HotelID       int
	Plan          *model.TravelPlan
	// LastError is the message of the most recent failed action, cleared by
	// the next successful one.
	LastError string
	Pending   bool
}

// Wizard is one trip-planning session. Actions are serialised: while a
// network call is in flight every other action returns ErrBusy.
type Wizard struct {
	mu      sync.Mutex
	planner Planner
	prefs   model.Preferences
	logger  *log.Logger

	stage         Stage
	params        model.TripParameters
	destinations  []model.Destination
	destinationID int
	hotels        []model.Hotel
	hotelID       int
	plan          *model.TravelPlan
	lastError     string

	pending    bool
	generation uint64
}

// New starts a wizard at the parameters stage using the stored preferences.
func New(planner Planner, prefs model.Preferences, logger *log.Logger) *Wizard {
	return &Wizard{planner: planner, prefs: prefs, logger: logger}
}

// Snapshot returns a copy of the current state.
func (w *Wizard) Snapshot() State {
	w.mu.Lock()
	defer w.mu.Unlock()

	s := State{
		Stage:         w.stage,
		Params:        w.params,
		Destinations:  append([]model.Destination(nil), w.destinations...),
		DestinationID: w.destinationID,
		Hotels:        append([]model.Hotel(nil), w.hotels...),
		HotelID:       w.hotelID,
		LastError:     w.lastError,
		Pending:       w.pending,
	}
	if w.plan != nil {
		plan := *w.plan
		s.Plan = &plan
	}
	return s
}

// Stage returns the current stage.
func (w *Wizard) Stage() Stage {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stage
}

// Pending reports whether a network call is in flight.
func (w *Wizard) Pending() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pending
}

// UpdatePreferences replaces the preferences used for the next search. It
// only applies before destinations have been fetched.
func (w *Wizard) UpdatePreferences(prefs model.Preferences) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stage != StageParameters || w.pending {
		return ErrInvalidTransition
	}
	w.prefs = prefs
	return nil
}

// ready reports whether an action for the given stage may start.
func (w *Wizard) ready(want Stage) error {
	if w.pending {
		return ErrBusy
	}
	if w.stage != want {
		return fmt.Errorf("%w: at %s stage", ErrInvalidTransition, w.stage)
	}
	return nil
}

// start marks a call in flight and returns the generation its result must
// match.
func (w *Wizard) start() uint64 {
	w.pending = true
	return w.generation
}

// finish re-acquires the lock after a call and reports whether the result
// still belongs to this wizard run. The caller must hold w.mu afterwards.
func (w *Wizard) finish(gen uint64) bool {
	w.mu.Lock()
	if gen != w.generation {
		return false
	}
	w.pending = false
	return true
}

func (w *Wizard) fail(ctx context.Context, action string, err error, fallback string) error {
	if errors.Is(err, api.ErrNetwork) {
		fallback = api.NetworkMessage
	}
	w.lastError = api.DisplayMessage(err, fallback)
	w.logger.Warn(ctx, "Wizard action failed", log.Fields{"action": action, "stage": w.stage.String(), "error": err})
	return err
}

// SubmitParameters validates the dates, fetches destination recommendations
// for the preferences and moves to destination choice.
func (w *Wizard) SubmitParameters(ctx context.Context, params model.TripParameters) error {
	w.mu.Lock()
	if err := w.ready(StageParameters); err != nil {
		w.mu.Unlock()
		return err
	}
	// Entered values are kept even when they fail validation.
	w.params = params
	if err := model.Validate(params); err != nil {
		w.lastError = model.ValidationMessage(err)
		w.mu.Unlock()
		return fmt.Errorf("invalid trip parameters: %s", w.lastError)
	}
	gen := w.start()
	query := w.destinationQuery()
	w.mu.Unlock()

	destinations, err := w.planner.RecommendedDestinations(ctx, query)
	if err == nil && len(destinations) == 0 {
		err = ErrNoResults
	}

	if !w.finish(gen) {
		w.mu.Unlock()
		return ErrStale
	}
	defer w.mu.Unlock()

	if err != nil {
		fallback := "Could not load destinations. Please try again."
		if errors.Is(err, ErrNoResults) {
			fallback = "No destinations match your preferences. Try another country or update your preferences."
		}
		return w.fail(ctx, "submit_parameters", err, fallback)
	}
	w.destinations = destinations
	w.destinationID = 0
	w.lastError = ""
	w.stage = StageDestinationChoice
	w.logger.Info(ctx, "Destinations recommended", log.Fields{"count": len(destinations)})
	return nil
}

func (w *Wizard) destinationQuery() model.DestinationQuery {
	q := model.DestinationQuery{
		Budget:    string(w.prefs.Budget),
		Interest:  string(w.prefs.Interest),
		Country:   w.params.Country,
		Objective: string(w.prefs.Objective),
		Location:  w.prefs.Location,
	}
	if w.prefs.BudgetMin.Valid {
		q.BudgetMin = w.prefs.BudgetMin.Decimal.String()
	}
	if w.prefs.BudgetMax.Valid {
		q.BudgetMax = w.prefs.BudgetMax.Decimal.String()
	}
	return q
}

// SelectDestination picks a destination from the recommended list, fetches
// its hotels and moves to hotel choice.
func (w *Wizard) SelectDestination(ctx context.Context, destinationID int) error {
	w.mu.Lock()
	if err := w.ready(StageDestinationChoice); err != nil {
		w.mu.Unlock()
		return err
	}
	if !containsDestination(w.destinations, destinationID) {
		w.lastError = fmt.Sprintf("destination %d is not one of the recommendations", destinationID)
		w.mu.Unlock()
		return ErrUnknownChoice
	}
	gen := w.start()
	budget := string(w.prefs.Budget)
	w.mu.Unlock()

	hotels, err := w.planner.RecommendedHotels(ctx, destinationID, budget)
	if err == nil && len(hotels) == 0 {
		err = ErrNoResults
	}

	if !w.finish(gen) {
		w.mu.Unlock()
		return ErrStale
	}
	defer w.mu.Unlock()

	if err != nil {
		fallback := "Could not load hotels. Please try again."
		if errors.Is(err, ErrNoResults) {
			fallback = "No hotels available for this destination. Pick another one."
		}
		return w.fail(ctx, "select_destination", err, fallback)
	}
	w.destinationID = destinationID
	w.hotels = hotels
	w.hotelID = 0
	w.lastError = ""
	w.stage = StageHotelChoice
	w.logger.Info(ctx, "Hotels recommended", log.Fields{"destinationId": destinationID, "count": len(hotels)})
	return nil
}

// SelectHotel picks a hotel and asks the backend to create the plan.
func (w *Wizard) SelectHotel(ctx context.Context, hotelID int) error {
	w.mu.Lock()
	if err := w.ready(StageHotelChoice); err != nil {
		w.mu.Unlock()
		return err
	}
	if !containsHotel(w.hotels, hotelID) {
		w.lastError = fmt.Sprintf("hotel %d is not one of the recommendations", hotelID)
		w.mu.Unlock()
		return ErrUnknownChoice
	}
	gen := w.start()
	req := model.PlanRequest{
		TravelDate:   w.params.TravelDate,
		ReturnDate:   w.params.ReturnDate,
		Budget:       string(w.prefs.Budget),
		NumTravelers: w.prefs.NumTravelers,
		Interest:     string(w.prefs.Interest),
		Country:      w.params.Country,
		Destination:  w.destinationID,
		Hotel:        hotelID,
	}
	w.mu.Unlock()

	plan, err := w.planner.CreatePlanWithRecommendations(ctx, req)

	if !w.finish(gen) {
		w.mu.Unlock()
		return ErrStale
	}
	defer w.mu.Unlock()

	if err != nil {
		return w.fail(ctx, "select_hotel", err, "Could not create the travel plan. Please try again.")
	}
	w.hotelID = hotelID
	w.plan = plan
	w.lastError = ""
	w.stage = StageConfirmed
	w.logger.Info(ctx, "Travel plan created", log.Fields{"planId": plan.ID})
	return nil
}

// Back returns to the previous choice stage, discarding that stage's list.
func (w *Wizard) Back() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.pending {
		return ErrBusy
	}
	switch w.stage {
	case StageDestinationChoice:
		w.destinations = nil
		w.destinationID = 0
		w.stage = StageParameters
	case StageHotelChoice:
		w.hotels = nil
		w.hotelID = 0
		w.destinationID = 0
		w.stage = StageDestinationChoice
	default:
		return fmt.Errorf("%w: cannot go back from %s stage", ErrInvalidTransition, w.stage)
	}
	w.lastError = ""
	return nil
}

// Reset starts over at the parameters stage. A call still in flight is
// abandoned and its result discarded.
func (w *Wizard) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.generation++
	w.pending = false
	w.stage = StageParameters
	w.params = model.TripParameters{}
	w.destinations = nil
	w.destinationID = 0
	w.hotels = nil
	w.hotelID = 0
	w.plan = nil
	w.lastError = ""
}

func containsDestination(list []model.Destination, id int) bool {
	for _, d := range list {
		if d.ID == id {
			return true
		}
	}
	return false
}

func containsHotel(list []model.Hotel, id int) bool {
	for _, h := range list {
		if h.ID == id {
			return true
		}
	}
	return false
}
