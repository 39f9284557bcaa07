package api

import (
	"context"
	"fmt"

	"traveline/local-app/internal/model"
)

// TravelPlanInput is the body for creating a plan by hand.
type TravelPlanInput struct {
	Destination  int    `json:"destination,omitempty"`
	Hotel        int    `json:"hotel,omitempty"`
	Transport    int    `json:"transport,omitempty"`
	TravelDate   string `json:"travel_date"`
	ReturnDate   string `json:"return_date"`
	Budget       string `json:"budget"`
	NumTravelers int    `json:"num_travelers"`
	Notes        string `json:"notes,omitempty"`
}

// TravelPlans lists the current user's plans.
func (c *Client) TravelPlans(ctx context.Context) ([]model.TravelPlan, error) {
	var out listOf[model.TravelPlan]
	if err := c.get(ctx, "/travel-plans/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TravelPlan returns one of the current user's plans.
func (c *Client) TravelPlan(ctx context.Context, id int) (*model.TravelPlan, error) {
	var p model.TravelPlan
	if err := c.get(ctx, fmt.Sprintf("/travel-plans/%d/", id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateTravelPlan stores a plan built by hand.
func (c *Client) CreateTravelPlan(ctx context.Context, in TravelPlanInput) (*model.TravelPlan, error) {
	var p model.TravelPlan
	if err := c.post(ctx, "/travel-plans/", in, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreatePlanWithRecommendations asks the backend to assemble and store a
// plan from the trip request.
func (c *Client) CreatePlanWithRecommendations(ctx context.Context, req model.PlanRequest) (*model.TravelPlan, error) {
	var resp struct {
		Message    string            `json:"message"`
		TravelPlan *model.TravelPlan `json:"travel_plan"`
	}
	if err := c.post(ctx, "/travel-plans/create_plan_with_recommendations/", req, &resp); err != nil {
		return nil, err
	}
	if resp.TravelPlan == nil {
		return nil, fmt.Errorf("create plan response has no travel_plan")
	}
	return resp.TravelPlan, nil
}

// UpdateTravelPlan changes the given fields of a plan.
func (c *Client) UpdateTravelPlan(ctx context.Context, id int, fields map[string]any) (*model.TravelPlan, error) {
	var p model.TravelPlan
	if err := c.patch(ctx, fmt.Sprintf("/travel-plans/%d/", id), fields, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// DeleteTravelPlan removes a plan.
func (c *Client) DeleteTravelPlan(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/travel-plans/%d/", id))
}

// GeneratedItinerary is the result of generating a plan's itinerary.
type GeneratedItinerary struct {
	Message string            `json:"message"`
	Days    []model.Itinerary `json:"itinerary"`
}

// GenerateItinerary builds a day-by-day itinerary for a plan.
func (c *Client) GenerateItinerary(ctx context.Context, planID int) (*GeneratedItinerary, error) {
	var out GeneratedItinerary
	if err := c.post(ctx, fmt.Sprintf("/travel-plans/%d/generate_itinerary/", planID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Itineraries lists the itinerary days of the current user's plans.
func (c *Client) Itineraries(ctx context.Context) ([]model.Itinerary, error) {
	var out listOf[model.Itinerary]
	if err := c.get(ctx, "/itineraries/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Itinerary returns one itinerary day.
func (c *Client) Itinerary(ctx context.Context, id int) (*model.Itinerary, error) {
	var it model.Itinerary
	if err := c.get(ctx, fmt.Sprintf("/itineraries/%d/", id), nil, &it); err != nil {
		return nil, err
	}
	return &it, nil
}
