package data

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"traveline/local-app/internal/api"
	"traveline/local-app/internal/apitest"
	"traveline/local-app/internal/log"
	"traveline/local-app/internal/model"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func newClient(t *testing.T, srv *apitest.Server) *api.Client {
	t.Helper()
	c, err := api.New(srv.BaseURL(), staticToken("tok"), api.WithTimeout(2*time.Second))
	require.NoError(t, err)
	return c
}

func TestDashboardPartialFailure(t *testing.T) {
	srv := apitest.New(t)
	srv.Router.Get("/dashboard/stats/", apitest.Reply(http.StatusOK, map[string]any{"total_plans": 3, "upcoming_trips": 1}))
	srv.Router.Get("/dashboard/upcoming-trips/", apitest.Reply(http.StatusInternalServerError, map[string]any{"error": "boom"}))
	srv.Router.Get("/dashboard/past-trips/", apitest.Reply(http.StatusOK, []any{map[string]any{"id": 4, "travel_date": "2024-01-01"}}))

	v := NewDashboard(newClient(t, srv), log.NewNop()).Load(context.Background())

	require.NoError(t, v.StatsErr)
	assert.Equal(t, 3, v.Stats.TotalPlans)
	assert.ErrorIs(t, v.UpcomingErr, api.ErrServer)
	assert.Nil(t, v.Upcoming)
	require.NoError(t, v.PastErr)
	require.Len(t, v.Past, 1)
	assert.Equal(t, 4, v.Past[0].ID)
	assert.ErrorIs(t, v.Err(), api.ErrServer)
}

func TestDashboardAllParts(t *testing.T) {
	srv := apitest.New(t)
	srv.Router.Get("/dashboard/stats/", apitest.Reply(http.StatusOK, map[string]any{"total_plans": 0}))
	srv.Router.Get("/dashboard/upcoming-trips/", apitest.Reply(http.StatusOK, map[string]any{"trips": []any{}}))
	srv.Router.Get("/dashboard/past-trips/", apitest.Reply(http.StatusOK, []any{}))

	v := NewDashboard(newClient(t, srv), log.NewNop()).Load(context.Background())
	assert.NoError(t, v.Err())
	assert.Empty(t, v.Upcoming)
	assert.Empty(t, v.Past)
}

func TestBudget(t *testing.T) {
	srv := apitest.New(t)
	srv.Router.Get("/budget/summary/", apitest.Reply(http.StatusOK, map[string]any{"total_plans": 2, "total_budget": "3000.50"}))
	srv.Router.Get("/budget/breakdown/5/", apitest.Reply(http.StatusOK, map[string]any{"plan_id": 5, "nights": 4, "hotel_cost": "480.00"}))

	b := NewBudget(newClient(t, srv))

	sum, err := b.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, sum.TotalPlans)
	assert.Equal(t, "3000.5", sum.TotalBudget.Decimal.String())

	br, err := b.Breakdown(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 4, br.Nights)
	assert.Equal(t, "480", br.HotelCost.Decimal.String())
}

type sessionSpy struct {
	logouts int
}

func (s *sessionSpy) Logout(context.Context) error {
	s.logouts++
	return nil
}

func TestProfile(t *testing.T) {
	t.Run("update rejects empty", func(t *testing.T) {
		srv := apitest.New(t)
		_, err := NewProfile(newClient(t, srv), &sessionSpy{}, log.NewNop()).Update(context.Background(), model.ProfileUpdate{})
		assert.Error(t, err)
		assert.Empty(t, srv.Requests())
	})

	t.Run("update sends only set fields", func(t *testing.T) {
		srv := apitest.New(t)
		srv.Router.Patch("/users/profile/", apitest.Reply(http.StatusOK, map[string]any{"id": 1, "username": "ana", "email": "a@x.io"}))

		p, err := NewProfile(newClient(t, srv), &sessionSpy{}, log.NewNop()).Update(context.Background(), model.ProfileUpdate{Email: "a@x.io"})
		require.NoError(t, err)
		assert.Equal(t, "a@x.io", p.Email)

		req, ok := srv.Last(http.MethodPatch, "/users/profile/")
		require.True(t, ok)
		assert.Equal(t, map[string]any{"email": "a@x.io"}, req.JSON(t))
	})

	t.Run("password confirmation mismatch", func(t *testing.T) {
		srv := apitest.New(t)
		err := NewProfile(newClient(t, srv), &sessionSpy{}, log.NewNop()).ChangePassword(context.Background(), model.PasswordChange{
			OldPassword: "old", NewPassword: "new1", ConfirmPassword: "new2",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "passwords do not match")
		assert.Empty(t, srv.Requests())
	})

	t.Run("delete logs out", func(t *testing.T) {
		srv := apitest.New(t)
		srv.Router.Delete("/users/delete_account/", apitest.Reply(http.StatusNoContent, nil))
		spy := &sessionSpy{}

		require.NoError(t, NewProfile(newClient(t, srv), spy, log.NewNop()).DeleteAccount(context.Background()))
		assert.Equal(t, 1, spy.logouts)
	})

	t.Run("failed delete keeps session", func(t *testing.T) {
		srv := apitest.New(t)
		srv.Router.Delete("/users/delete_account/", apitest.Reply(http.StatusInternalServerError, map[string]any{"error": "nope"}))
		spy := &sessionSpy{}

		assert.Error(t, NewProfile(newClient(t, srv), spy, log.NewNop()).DeleteAccount(context.Background()))
		assert.Zero(t, spy.logouts)
	})
}

func TestDestinationDetail(t *testing.T) {
	srv := apitest.New(t)
	srv.Router.Get("/destinations/2/", apitest.Reply(http.StatusOK, map[string]any{"id": 2, "name": "Sigiriya"}))
	srv.Router.Get("/hotels/", apitest.Reply(http.StatusOK, []any{
		map[string]any{"id": 10, "destination": 2, "name": "Rock Inn"},
		map[string]any{"id": 11, "destination": 3, "name": "Elsewhere"},
	}))

	d, err := NewDestinations(newClient(t, srv)).Detail(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Sigiriya", d.Destination.Name)
	require.Len(t, d.Hotels, 1)
	assert.Equal(t, "Rock Inn", d.Hotels[0].Name)
	assert.NoError(t, d.HotelsErr)
}

func TestDestinationDetailErrors(t *testing.T) {
	t.Run("hotel failure is partial", func(t *testing.T) {
		srv := apitest.New(t)
		srv.Router.Get("/destinations/2/", apitest.Reply(http.StatusOK, map[string]any{"id": 2, "name": "Sigiriya"}))
		srv.Router.Get("/hotels/", apitest.Reply(http.StatusInternalServerError, nil))

		d, err := NewDestinations(newClient(t, srv)).Detail(context.Background(), 2)
		require.NoError(t, err)
		assert.Error(t, d.HotelsErr)
		assert.Empty(t, d.Hotels)
	})

	t.Run("missing destination fails", func(t *testing.T) {
		srv := apitest.New(t)
		srv.Router.Get("/destinations/9/", apitest.Reply(http.StatusNotFound, map[string]any{"detail": "Not found."}))
		srv.Router.Get("/hotels/", apitest.Reply(http.StatusOK, []any{}))

		_, err := NewDestinations(newClient(t, srv)).Detail(context.Background(), 9)
		assert.ErrorIs(t, err, api.ErrNotFound)
	})
}

func TestPlans(t *testing.T) {
	srv := apitest.New(t)
	srv.Router.Patch("/travel-plans/3/", apitest.Reply(http.StatusOK, map[string]any{"id": 3, "notes": "bring hat"}))
	srv.Router.Delete("/travel-plans/3/", apitest.Reply(http.StatusNoContent, nil))
	srv.Router.Post("/travel-plans/3/generate_itinerary/", apitest.Reply(http.StatusOK, map[string]any{
		"message":   "Itinerary generated",
		"itinerary": []any{map[string]any{"day": 1}, map[string]any{"day": 2}},
	}))

	p := NewPlans(newClient(t, srv), log.NewNop())
	ctx := context.Background()

	plan, err := p.SetNotes(ctx, 3, "bring hat")
	require.NoError(t, err)
	assert.Equal(t, "bring hat", plan.Notes)
	req, _ := srv.Last(http.MethodPatch, "/travel-plans/3/")
	assert.Equal(t, map[string]any{"notes": "bring hat"}, req.JSON(t))

	it, err := p.Itinerary(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, it.Days, 2)

	require.NoError(t, p.Delete(ctx, 3))
	assert.Equal(t, 1, srv.Count(http.MethodDelete, "/travel-plans/3/"))
}

func TestAdminOverviewPartial(t *testing.T) {
	srv := apitest.New(t)
	srv.Router.Get("/admin/dashboard/", apitest.Reply(http.StatusOK, map[string]any{"total_users": 12}))
	srv.Router.Get("/admin/users/", apitest.Reply(http.StatusForbidden, map[string]any{"detail": "no"}))
	srv.Router.Get("/admin/preferences-tracking/", apitest.Reply(http.StatusOK, map[string]any{
		"total_users_with_preferences": 5,
		"interest_distribution":        map[string]any{"beach": 3},
	}))

	o := NewAdmin(newClient(t, srv), log.NewNop()).Overview(context.Background())
	require.NoError(t, o.DashErr)
	assert.Equal(t, 12, o.Dashboard.TotalUsers)
	assert.ErrorIs(t, o.UsersErr, api.ErrForbidden)
	require.NoError(t, o.TrackingErr)
	assert.Equal(t, 3, o.Tracking.InterestDistribution["beach"])
}

func TestAdminCreateRequiresFields(t *testing.T) {
	srv := apitest.New(t)
	srv.Router.Post("/admin/hotels/", apitest.Reply(http.StatusCreated, map[string]any{"id": 40, "name": "Palm"}))
	a := NewAdmin(newClient(t, srv), log.NewNop())

	_, err := a.Create(context.Background(), api.ResourceHotels, model.Record{"name": "Palm"})
	require.Error(t, err)
	assert.Equal(t, "missing required fields: destination, price_per_night", err.Error())
	assert.Zero(t, srv.Count(http.MethodPost, "/admin/hotels/"))

	rec := model.Record{"name": "Palm", "destination": 2, "price_per_night": "120.00"}
	out, err := a.Create(context.Background(), api.ResourceHotels, rec)
	require.NoError(t, err)
	assert.Equal(t, "Palm", out["name"])

	req, ok := srv.Last(http.MethodPost, "/admin/hotels/")
	require.True(t, ok)
	assert.Equal(t, map[string]any{"name": "Palm", "destination": float64(2), "price_per_night": "120.00"}, req.JSON(t))
}

func TestAdminUpdateRejectsEmpty(t *testing.T) {
	srv := apitest.New(t)
	_, err := NewAdmin(newClient(t, srv), log.NewNop()).Update(context.Background(), api.ResourceTransport, 1, model.Record{})
	assert.Error(t, err)
}

func TestMissingFields(t *testing.T) {
	tests := []struct {
		resource api.Resource
		rec      model.Record
		want     []string
	}{
		{api.ResourceDestinations, model.Record{"name": "A", "country": "LK", "city": "K", "category": "beach", "budget_level": "low"}, nil},
		{api.ResourceDestinations, model.Record{"name": "", "country": "LK"}, []string{"name", "city", "category", "budget_level"}},
		{api.ResourceTransport, model.Record{"origin": "A", "destination": "B", "transport_type": "bus", "distance_km": 0, "estimated_price": "5"}, nil},
	}
	for _, tt := range tests {
		t.Run(string(tt.resource), func(t *testing.T) {
			assert.Equal(t, tt.want, MissingFields(tt.resource, tt.rec))
		})
	}
}

func TestParseRecord(t *testing.T) {
	rec, err := ParseRecord([]string{
		"name=Galle Fort",
		"distance_km=120",
		"is_active=false",
		"objectives_supported=leisure, family,,",
		"price_per_night=99.50",
		"note=",
	})
	require.NoError(t, err)
	assert.Equal(t, model.Record{
		"name":                 "Galle Fort",
		"distance_km":          120,
		"is_active":            false,
		"objectives_supported": []string{"leisure", "family"},
		"price_per_night":      "99.50",
		"note":                 "",
	}, rec)

	_, err = ParseRecord([]string{"novalue"})
	assert.Error(t, err)
	_, err = ParseRecord([]string{"=x"})
	assert.Error(t, err)
}

func TestAdminToggle(t *testing.T) {
	srv := apitest.New(t)
	srv.Router.Post("/admin/users/8/toggle-status/", apitest.Reply(http.StatusOK, map[string]any{"message": "User deactivated", "is_active": false}))

	res, err := NewAdmin(newClient(t, srv), log.NewNop()).ToggleUser(context.Background(), 8)
	require.NoError(t, err)
	assert.False(t, res.IsActive)
	assert.Equal(t, "User deactivated", res.Message)
}
