// Package data loads the read-only and admin views shown by the CLI.
// Views that need several independent calls issue them concurrently and
// keep each part's error, so one failing call never hides the others.
package data

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"traveline/local-app/internal/log"
	"traveline/local-app/internal/model"
)

// DashboardAPI is the part of the REST client the dashboard uses.
type DashboardAPI interface {
	DashboardStats(ctx context.Context) (*model.DashboardStats, error)
	UpcomingTrips(ctx context.Context) ([]model.TravelPlan, error)
	PastTrips(ctx context.Context) ([]model.TravelPlan, error)
}

// DashboardView is the dashboard with one result per part.
type DashboardView struct {
	Stats       *model.DashboardStats
	StatsErr    error
	Upcoming    []model.TravelPlan
	UpcomingErr error
	Past        []model.TravelPlan
	PastErr     error
}

// Err joins the errors of every failed part.
func (v DashboardView) Err() error {
	return errors.Join(v.StatsErr, v.UpcomingErr, v.PastErr)
}

// Dashboard loads the user dashboard.
type Dashboard struct {
	api    DashboardAPI
	logger *log.Logger
}

// NewDashboard creates a Dashboard loader.
func NewDashboard(client DashboardAPI, logger *log.Logger) *Dashboard {
	return &Dashboard{api: client, logger: logger}
}

// Load fetches the three parts concurrently. It always returns a view; the
// parts that failed carry their error.
func (d *Dashboard) Load(ctx context.Context) DashboardView {
	var (
		v DashboardView
		g errgroup.Group
	)

	g.Go(func() error {
		v.Stats, v.StatsErr = d.api.DashboardStats(ctx)
		return v.StatsErr
	})
	g.Go(func() error {
		v.Upcoming, v.UpcomingErr = d.api.UpcomingTrips(ctx)
		return v.UpcomingErr
	})
	g.Go(func() error {
		v.Past, v.PastErr = d.api.PastTrips(ctx)
		return v.PastErr
	})

	if err := g.Wait(); err != nil {
		d.logger.Warn(ctx, "Dashboard partially loaded", log.Fields{"error": v.Err()})
	}
	return v
}
