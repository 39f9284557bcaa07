package data

import (
	"context"

	"golang.org/x/sync/errgroup"

	"traveline/local-app/internal/model"
)

// CatalogAPI is the part of the REST client the destination view uses.
type CatalogAPI interface {
	Destination(ctx context.Context, id int) (*model.Destination, error)
	Hotels(ctx context.Context) ([]model.Hotel, error)
}

// DestinationDetail is one destination with the hotels located there.
type DestinationDetail struct {
	Destination *model.Destination
	Hotels      []model.Hotel
	HotelsErr   error
}

// Destinations loads destination details.
type Destinations struct {
	api CatalogAPI
}

// NewDestinations creates a Destinations loader.
func NewDestinations(client CatalogAPI) *Destinations {
	return &Destinations{api: client}
}

// Detail fetches the destination and its hotels concurrently. A failed
// hotel fetch is reported in HotelsErr; a failed destination fetch fails
// the whole view.
func (d *Destinations) Detail(ctx context.Context, id int) (*DestinationDetail, error) {
	var (
		out DestinationDetail
		g   errgroup.Group
	)
	g.Go(func() error {
		dest, err := d.api.Destination(ctx, id)
		out.Destination = dest
		return err
	})
	g.Go(func() error {
		hotels, err := d.api.Hotels(ctx)
		if err != nil {
			out.HotelsErr = err
			return nil
		}
		for _, h := range hotels {
			if h.Destination == id {
				out.Hotels = append(out.Hotels, h)
			}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}
