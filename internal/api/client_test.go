package api

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"traveline/local-app/internal/apitest"
	"traveline/local-app/internal/model"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func newClient(t *testing.T, srv *apitest.Server, token string) *Client {
	t.Helper()
	c, err := New(srv.BaseURL(), staticToken(token), WithTimeout(2*time.Second))
	require.NoError(t, err)
	return c
}

func TestNewRejectsBadBaseURL(t *testing.T) {
	_, err := New("localhost:8000", nil)
	assert.Error(t, err)
}

func TestAuthorizationHeader(t *testing.T) {
	srv := apitest.New(t)
	srv.Router.Get("/destinations/", apitest.Reply(http.StatusOK, []any{}))

	_, err := newClient(t, srv, "abc").Destinations(context.Background())
	require.NoError(t, err)
	_, err = newClient(t, srv, "").Destinations(context.Background())
	require.NoError(t, err)

	reqs := srv.Requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, "Token abc", reqs[0].Authorization)
	assert.Empty(t, reqs[1].Authorization)
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name  string
		reply map[string]any
		want  model.Credentials
	}{
		{
			name:  "full response",
			reply: map[string]any{"token": "t1", "user_id": 7, "username": "ana", "is_staff": true},
			want:  model.Credentials{Token: "t1", Username: "ana", UserID: "7", IsAdmin: true},
		},
		{
			name:  "legacy token only",
			reply: map[string]any{"token": "t2"},
			want:  model.Credentials{Token: "t2", Username: "typed"},
		},
		{
			name:  "superuser implies admin",
			reply: map[string]any{"token": "t3", "user_id": "9", "username": "root", "is_superuser": true},
			want:  model.Credentials{Token: "t3", Username: "root", UserID: "9", IsAdmin: true, IsSuperuser: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := apitest.New(t)
			srv.Router.Post("/auth/login/", apitest.Reply(http.StatusOK, tt.reply))

			resp, err := newClient(t, srv, "").Login(context.Background(), "typed", "secret")
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.Credentials("typed"))

			req, ok := srv.Last(http.MethodPost, "/api/auth/login/")
			require.True(t, ok)
			assert.Equal(t, map[string]any{"username": "typed", "password": "secret"}, req.JSON(t))
		})
	}
}

func TestErrorDecoding(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     any
		sentinel error
		display  string
	}{
		{name: "error key", status: 401, body: map[string]any{"error": "Invalid credentials"}, sentinel: ErrUnauthorized, display: "Invalid credentials"},
		{name: "detail key", status: 403, body: map[string]any{"detail": "You do not have permission."}, sentinel: ErrForbidden, display: "You do not have permission."},
		{name: "field errors win", status: 400, body: map[string]any{"message": "bad", "username": []string{"A user with that username already exists."}}, sentinel: ErrBadRequest, display: "username: A user with that username already exists."},
		{name: "non field errors", status: 400, body: map[string]any{"non_field_errors": []string{"Dates overlap."}}, sentinel: ErrBadRequest, display: "Dates overlap."},
		{name: "no body", status: 500, body: nil, sentinel: ErrServer, display: "fallback"},
		{name: "not found", status: 404, body: map[string]any{"detail": "Not found."}, sentinel: ErrNotFound, display: "Not found."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := apitest.New(t)
			srv.Router.Get("/destinations/{id}/", apitest.Reply(tt.status, tt.body))

			_, err := newClient(t, srv, "tok").Destination(context.Background(), 1)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.sentinel)

			var apiErr *Error
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.display, DisplayMessage(err, "fallback"))
		})
	}
}

func TestNetworkErrorUsesFallback(t *testing.T) {
	srv := apitest.New(t)
	c := newClient(t, srv, "")
	srv.Close()

	_, err := c.Destinations(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNetwork)
	assert.Equal(t, "Something went wrong", DisplayMessage(err, "Something went wrong"))
}

func TestMyPreferences(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		srv := apitest.New(t)
		srv.Router.Get("/preferences/my_preferences/", apitest.Reply(http.StatusOK, map[string]any{
			"id": 4, "user": 7, "budget": "low", "interest": "beach", "num_travelers": 2,
		}))

		lookup, err := newClient(t, srv, "tok").MyPreferences(context.Background())
		require.NoError(t, err)
		rec, ok := lookup.Record()
		require.True(t, ok)
		assert.Equal(t, 4, rec.ID)
		assert.Equal(t, model.BudgetLow, rec.Budget)
	})

	t.Run("not found is a normal branch", func(t *testing.T) {
		srv := apitest.New(t)
		srv.Router.Get("/preferences/my_preferences/", apitest.Reply(http.StatusNotFound, map[string]any{"message": "No preferences set"}))

		lookup, err := newClient(t, srv, "tok").MyPreferences(context.Background())
		require.NoError(t, err)
		_, ok := lookup.Record()
		assert.False(t, ok)
	})

	t.Run("other failures propagate", func(t *testing.T) {
		srv := apitest.New(t)
		srv.Router.Get("/preferences/my_preferences/", apitest.Reply(http.StatusUnauthorized, map[string]any{"detail": "Invalid token."}))

		_, err := newClient(t, srv, "tok").MyPreferences(context.Background())
		assert.ErrorIs(t, err, ErrUnauthorized)
	})
}

func TestRecommendedDestinationsQuery(t *testing.T) {
	srv := apitest.New(t)
	srv.Router.Get("/destinations/recommended/", apitest.Reply(http.StatusOK, map[string]any{
		"count": 2,
		"recommendations": []map[string]any{
			{"id": 1, "name": "Zanzibar", "budget_min": "100.00"},
			{"id": 2, "name": "Mombasa", "budget_min": nil},
		},
	}))

	got, err := newClient(t, srv, "tok").RecommendedDestinations(context.Background(), model.DestinationQuery{
		Budget: "low", Interest: "beach", Country: "Tanzania",
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Zanzibar", got[0].Name)
	assert.True(t, got[0].BudgetMin.Valid)
	assert.False(t, got[1].BudgetMin.Valid)

	req, ok := srv.Last(http.MethodGet, "/api/destinations/recommended/")
	require.True(t, ok)
	assert.Equal(t, map[string][]string{"budget": {"low"}, "interest": {"beach"}, "country": {"Tanzania"}}, req.Query)
}

func TestCreatePlanWithRecommendations(t *testing.T) {
	srv := apitest.New(t)
	srv.Router.Post("/travel-plans/create_plan_with_recommendations/", apitest.Reply(http.StatusCreated, map[string]any{
		"message": "Travel plan created with recommendations",
		"travel_plan": map[string]any{
			"id": 11, "budget": "1200.00", "travel_date": "2025-07-01", "return_date": "2025-07-05",
			"itinerary": []map[string]any{{"day_number": 1}, {"day_number": 2}},
		},
	}))

	plan, err := newClient(t, srv, "tok").CreatePlanWithRecommendations(context.Background(), model.PlanRequest{
		TravelDate: "2025-07-01", ReturnDate: "2025-07-05", Budget: "low", NumTravelers: 2,
		Interest: "beach", Destination: 3, Hotel: 8,
	})
	require.NoError(t, err)
	assert.Equal(t, 11, plan.ID)
	assert.Equal(t, "1200", plan.Budget.String())
	assert.Len(t, plan.Itinerary, 2)

	req, _ := srv.Last(http.MethodPost, "/api/travel-plans/create_plan_with_recommendations/")
	body := req.JSON(t)
	assert.EqualValues(t, 3, body["destination"])
	assert.EqualValues(t, 8, body["hotel"])
	assert.NotContains(t, body, "country")
}

func TestManualPlanAndItineraries(t *testing.T) {
	srv := apitest.New(t)
	srv.Router.Post("/travel-plans/", apitest.Reply(http.StatusCreated, map[string]any{
		"id": 4, "budget": "300.00", "travel_date": "2025-08-01", "return_date": "2025-08-03",
	}))
	srv.Router.Get("/itineraries/", apitest.Reply(http.StatusOK, []map[string]any{
		{"id": 1, "travel_plan": 4, "day_number": 1},
		{"id": 2, "travel_plan": 4, "day_number": 2},
	}))
	srv.Router.Get("/itineraries/{id}/", apitest.Reply(http.StatusOK, map[string]any{
		"id": 2, "travel_plan": 4, "day_number": 2, "activities": "Stone Town walk",
	}))

	c := newClient(t, srv, "tok")
	plan, err := c.CreateTravelPlan(context.Background(), TravelPlanInput{
		Destination: 3, TravelDate: "2025-08-01", ReturnDate: "2025-08-03", Budget: "300", NumTravelers: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, plan.ID)

	req, _ := srv.Last(http.MethodPost, "/api/travel-plans/")
	body := req.JSON(t)
	assert.EqualValues(t, 3, body["destination"])
	assert.NotContains(t, body, "hotel")

	days, err := c.Itineraries(context.Background())
	require.NoError(t, err)
	assert.Len(t, days, 2)

	day, err := c.Itinerary(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Stone Town walk", day.Activities)
}

func TestListEnvelopes(t *testing.T) {
	srv := apitest.New(t)
	srv.Router.Get("/dashboard/upcoming-trips/", apitest.Reply(http.StatusOK, map[string]any{
		"count": 1, "trips": []map[string]any{{"id": 5}},
	}))
	srv.Router.Get("/dashboard/past-trips/", apitest.Reply(http.StatusOK, []map[string]any{{"id": 1}, {"id": 2}}))
	srv.Router.Get("/hotels/", apitest.Reply(http.StatusOK, map[string]any{
		"count": 1, "next": nil, "results": []map[string]any{{"id": 3, "price_per_night": "80.50"}},
	}))

	c := newClient(t, srv, "tok")
	upcoming, err := c.UpcomingTrips(context.Background())
	require.NoError(t, err)
	assert.Len(t, upcoming, 1)

	past, err := c.PastTrips(context.Background())
	require.NoError(t, err)
	assert.Len(t, past, 2)

	hotels, err := c.Hotels(context.Background())
	require.NoError(t, err)
	require.Len(t, hotels, 1)
	assert.Equal(t, "80.5", hotels[0].PricePerNight.String())
}

func TestAdminResourceCRUD(t *testing.T) {
	srv := apitest.New(t)
	srv.Router.Route("/admin/hotels", func(r chi.Router) {
		r.Get("/", apitest.Reply(http.StatusOK, []map[string]any{{"id": 1, "name": "Palm"}}))
		r.Post("/", apitest.Reply(http.StatusCreated, map[string]any{"id": 2, "name": "Reef"}))
		r.Patch("/{id}/", apitest.Reply(http.StatusOK, map[string]any{"id": 2, "name": "Reef Lodge"}))
		r.Delete("/{id}/", apitest.Reply(http.StatusNoContent, nil))
	})

	c := newClient(t, srv, "tok")
	ctx := context.Background()

	list, err := c.AdminList(ctx, ResourceHotels)
	require.NoError(t, err)
	assert.Equal(t, "Palm", list[0]["name"])

	created, err := c.AdminCreate(ctx, ResourceHotels, model.Record{"name": "Reef"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, created["id"])

	updated, err := c.AdminUpdate(ctx, ResourceHotels, 2, model.Record{"name": "Reef Lodge"})
	require.NoError(t, err)
	assert.Equal(t, "Reef Lodge", updated["name"])

	require.NoError(t, c.AdminDelete(ctx, ResourceHotels, 2))
	assert.Equal(t, 1, srv.Count(http.MethodDelete, "/api/admin/hotels/2/"))
}

func TestParseResource(t *testing.T) {
	r, err := ParseResource("transport")
	require.NoError(t, err)
	assert.Equal(t, ResourceTransport, r)

	_, err = ParseResource("users")
	assert.Error(t, err)
}
