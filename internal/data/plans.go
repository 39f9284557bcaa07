package data

import (
	"context"
	"errors"

	"traveline/local-app/internal/api"
	"traveline/local-app/internal/log"
	"traveline/local-app/internal/model"
)

// PlansAPI is the part of the REST client the saved-plan views use.
type PlansAPI interface {
	TravelPlans(ctx context.Context) ([]model.TravelPlan, error)
	TravelPlan(ctx context.Context, id int) (*model.TravelPlan, error)
	UpdateTravelPlan(ctx context.Context, id int, fields map[string]any) (*model.TravelPlan, error)
	DeleteTravelPlan(ctx context.Context, id int) error
	GenerateItinerary(ctx context.Context, planID int) (*api.GeneratedItinerary, error)
}

// Plans manages the user's saved travel plans.
type Plans struct {
	api    PlansAPI
	logger *log.Logger
}

// NewPlans creates a Plans view.
func NewPlans(client PlansAPI, logger *log.Logger) *Plans {
	return &Plans{api: client, logger: logger}
}

// List returns every saved plan.
func (p *Plans) List(ctx context.Context) ([]model.TravelPlan, error) {
	return p.api.TravelPlans(ctx)
}

// Show returns one plan.
func (p *Plans) Show(ctx context.Context, id int) (*model.TravelPlan, error) {
	return p.api.TravelPlan(ctx, id)
}

// Delete removes a plan.
func (p *Plans) Delete(ctx context.Context, id int) error {
	if err := p.api.DeleteTravelPlan(ctx, id); err != nil {
		return err
	}
	p.logger.Info(ctx, "Travel plan deleted", log.Fields{"plan": id})
	return nil
}

// Itinerary asks the server to build a day-by-day itinerary for a plan.
func (p *Plans) Itinerary(ctx context.Context, id int) (*api.GeneratedItinerary, error) {
	it, err := p.api.GenerateItinerary(ctx, id)
	if err != nil {
		return nil, err
	}
	p.logger.Info(ctx, "Itinerary generated", log.Fields{"plan": id, "days": len(it.Days)})
	return it, nil
}

// SetNotes replaces a plan's notes.
func (p *Plans) SetNotes(ctx context.Context, id int, notes string) (*model.TravelPlan, error) {
	if len(notes) > 2000 {
		return nil, errors.New("notes must be at most 2000 characters")
	}
	return p.api.UpdateTravelPlan(ctx, id, map[string]any{"notes": notes})
}
