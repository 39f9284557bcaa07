package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"traveline/local-app/internal/model"
)

// recommendations is the envelope of every */recommended/ endpoint.
type recommendations[T any] struct {
	Count           int `json:"count"`
	Recommendations []T `json:"recommendations"`
}

func destinationValues(q model.DestinationQuery) url.Values {
	v := url.Values{}
	set := func(key, value string) {
		if value != "" {
			v.Set(key, value)
		}
	}
	set("budget", q.Budget)
	set("interest", q.Interest)
	set("country", q.Country)
	set("budget_min", q.BudgetMin)
	set("budget_max", q.BudgetMax)
	set("objective", q.Objective)
	set("location", q.Location)
	return v
}

// Destinations lists every destination.
func (c *Client) Destinations(ctx context.Context) ([]model.Destination, error) {
	var out listOf[model.Destination]
	if err := c.get(ctx, "/destinations/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RecommendedDestinations lists destinations matching the query, best first.
func (c *Client) RecommendedDestinations(ctx context.Context, q model.DestinationQuery) ([]model.Destination, error) {
	var resp recommendations[model.Destination]
	if err := c.get(ctx, "/destinations/recommended/", destinationValues(q), &resp); err != nil {
		return nil, err
	}
	return resp.Recommendations, nil
}

// Destination returns one destination.
func (c *Client) Destination(ctx context.Context, id int) (*model.Destination, error) {
	var d model.Destination
	if err := c.get(ctx, fmt.Sprintf("/destinations/%d/", id), nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// RecommendedHotels lists hotels at a destination that fit the budget level.
func (c *Client) RecommendedHotels(ctx context.Context, destinationID int, budget string) ([]model.Hotel, error) {
	q := url.Values{"destination_id": {strconv.Itoa(destinationID)}}
	if budget != "" {
		q.Set("budget", budget)
	}
	var resp recommendations[model.Hotel]
	if err := c.get(ctx, "/hotels/recommended/", q, &resp); err != nil {
		return nil, err
	}
	return resp.Recommendations, nil
}

// Hotels lists every hotel.
func (c *Client) Hotels(ctx context.Context) ([]model.Hotel, error) {
	var out listOf[model.Hotel]
	if err := c.get(ctx, "/hotels/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Hotel returns one hotel.
func (c *Client) Hotel(ctx context.Context, id int) (*model.Hotel, error) {
	var h model.Hotel
	if err := c.get(ctx, fmt.Sprintf("/hotels/%d/", id), nil, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// RecommendedTransport lists transport options for a distance and budget level.
func (c *Client) RecommendedTransport(ctx context.Context, distanceKm int, budget string) ([]model.Transport, error) {
	q := url.Values{"distance_km": {strconv.Itoa(distanceKm)}}
	if budget != "" {
		q.Set("budget", budget)
	}
	var resp recommendations[model.Transport]
	if err := c.get(ctx, "/transports/recommended/", q, &resp); err != nil {
		return nil, err
	}
	return resp.Recommendations, nil
}

// Transports lists every transport option.
func (c *Client) Transports(ctx context.Context) ([]model.Transport, error) {
	var out listOf[model.Transport]
	if err := c.get(ctx, "/transports/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
