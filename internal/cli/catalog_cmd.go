package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"traveline/local-app/internal/model"
	"traveline/local-app/internal/ui"
)

func (c *CLI) destList(ctx context.Context, _ model.Command) error {
	list, err := c.client.Destinations(ctx)
	if err != nil {
		return err
	}
	c.destinationTable(list, false)
	return nil
}

func (c *CLI) destShow(ctx context.Context, cmd model.Command) error {
	id, err := parseID(cmd.Args[0])
	if err != nil {
		return err
	}
	detail, err := c.destinations.Detail(ctx, id)
	if err != nil {
		return err
	}

	d := detail.Destination
	c.ui.Heading(fmt.Sprintf("%s, %s", d.Name, d.Country))
	c.ui.Field("City", d.City)
	c.ui.Field("Category", string(d.Category))
	c.ui.Field("Budget level", string(d.BudgetLevel))
	c.ui.Field("Budget range", budgetRange(d))
	c.ui.Field("Best season", d.BestSeason)
	c.ui.Field("Temperature", d.AvgTemperature)
	c.ui.Field("Objectives", strings.Join(d.ObjectivesSupported, ", "))
	c.ui.Field("Image", d.PrimaryImage())
	c.ui.Field("Booking", d.BookingURL)
	if d.Description != "" {
		c.ui.Println(d.Description)
	}
	if len(d.Images) > 1 {
		c.ui.Println("Gallery:")
		for _, img := range d.Images {
			c.ui.Printf("  %s %s\n", img.ImageURL, img.Caption)
		}
	}

	switch {
	case detail.HotelsErr != nil:
		c.ui.Warning("Hotels could not be loaded: " + errorMessage(detail.HotelsErr))
	case len(detail.Hotels) == 0:
		c.ui.Info("No hotels listed for this destination.")
	default:
		c.ui.Heading("Hotels")
		c.hotelTable(detail.Hotels, false)
	}
	return nil
}

func budgetRange(d *model.Destination) string {
	if !d.BudgetMin.Valid && !d.BudgetMax.Valid {
		return ""
	}
	return ui.NullMoney(d.BudgetMin) + " - " + ui.NullMoney(d.BudgetMax)
}

func (c *CLI) destRecommend(ctx context.Context, cmd model.Command) error {
	q, err := c.destinationQuery(ctx, cmd.Args)
	if err != nil {
		return err
	}
	list, err := c.client.RecommendedDestinations(ctx, q)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		c.ui.Info("No destinations match those filters.")
		return nil
	}
	c.destinationTable(list, false)
	return nil
}

// destinationQuery starts from the saved preferences, when there are any,
// and applies key=value filters on top.
func (c *CLI) destinationQuery(ctx context.Context, args []string) (model.DestinationQuery, error) {
	var q model.DestinationQuery
	if form, err := c.preferenceForm(ctx); err == nil {
		if p, ok := form.Record(); ok {
			q.Budget = string(p.Budget)
			q.Interest = string(p.Interest)
			q.Objective = string(p.Objective)
			q.Location = p.Location
		}
	}

	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return q, fmt.Errorf("expected key=value, got %q", arg)
		}
		switch strings.ToLower(key) {
		case "budget":
			q.Budget = value
		case "interest":
			q.Interest = value
		case "country":
			q.Country = value
		case "min", "budget_min":
			q.BudgetMin = value
		case "max", "budget_max":
			q.BudgetMax = value
		case "objective":
			q.Objective = value
		case "location":
			q.Location = value
		default:
			return q, fmt.Errorf("unknown filter %q", key)
		}
	}
	return q, nil
}

func (c *CLI) hotelList(ctx context.Context, _ model.Command) error {
	list, err := c.client.Hotels(ctx)
	if err != nil {
		return err
	}
	c.hotelTable(list, false)
	return nil
}

func (c *CLI) hotelShow(ctx context.Context, cmd model.Command) error {
	id, err := parseID(cmd.Args[0])
	if err != nil {
		return err
	}
	h, err := c.client.Hotel(ctx, id)
	if err != nil {
		return err
	}
	c.ui.Heading(h.Name)
	c.ui.Field("Destination", h.DestinationName)
	c.ui.Field("Stars", ui.Int(h.Stars))
	c.ui.Field("Per night", ui.Money(h.PricePerNight))
	c.ui.Field("Budget", string(h.BudgetCategory))
	c.ui.Field("Amenities", h.Amenities)
	c.ui.Field("Image", h.ImageURL)
	if h.Description != "" {
		c.ui.Println(h.Description)
	}
	return nil
}

func (c *CLI) hotelRecommend(ctx context.Context, cmd model.Command) error {
	destID, err := parseID(cmd.Args[0])
	if err != nil {
		return err
	}
	budget := ""
	if len(cmd.Args) > 1 {
		budget = cmd.Args[1]
	}
	list, err := c.client.RecommendedHotels(ctx, destID, budget)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		c.ui.Info("No hotels match.")
		return nil
	}
	c.hotelTable(list, false)
	return nil
}

func (c *CLI) transportList(ctx context.Context, _ model.Command) error {
	list, err := c.client.Transports(ctx)
	if err != nil {
		return err
	}
	c.transportTable(list)
	return nil
}

func (c *CLI) transportRecommend(ctx context.Context, cmd model.Command) error {
	km, err := strconv.Atoi(cmd.Args[0])
	if err != nil || km < 0 {
		return fmt.Errorf("%q is not a distance in km", cmd.Args[0])
	}
	budget := ""
	if len(cmd.Args) > 1 {
		budget = cmd.Args[1]
	}
	list, err := c.client.RecommendedTransport(ctx, km, budget)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		c.ui.Info("No transport options match.")
		return nil
	}
	c.transportTable(list)
	return nil
}

// destinationTable prints destinations; numbered lists show the position
// used to choose an entry.
func (c *CLI) destinationTable(list []model.Destination, numbered bool) {
	headers := []string{"ID", "Name", "Country", "Category", "Budget"}
	if numbered {
		headers = append([]string{"#"}, headers...)
	}
	rows := make([][]string, len(list))
	for i, d := range list {
		row := []string{strconv.Itoa(d.ID), d.Name, d.Country, string(d.Category), string(d.BudgetLevel)}
		if numbered {
			row = append([]string{strconv.Itoa(i + 1)}, row...)
		}
		rows[i] = row
	}
	c.ui.Table(headers, rows)
}

func (c *CLI) hotelTable(list []model.Hotel, numbered bool) {
	headers := []string{"ID", "Name", "Stars", "Per night", "Budget"}
	if numbered {
		headers = append([]string{"#"}, headers...)
	}
	rows := make([][]string, len(list))
	for i, h := range list {
		row := []string{strconv.Itoa(h.ID), h.Name, ui.Int(h.Stars), ui.Money(h.PricePerNight), string(h.BudgetCategory)}
		if numbered {
			row = append([]string{strconv.Itoa(i + 1)}, row...)
		}
		rows[i] = row
	}
	c.ui.Table(headers, rows)
}

func (c *CLI) transportTable(list []model.Transport) {
	rows := make([][]string, len(list))
	for i, t := range list {
		rows[i] = []string{
			strconv.Itoa(t.ID), t.TransportType, t.Origin, t.Destination,
			strconv.Itoa(t.DistanceKm), ui.Money(t.EstimatedPrice), t.Availability,
		}
	}
	c.ui.Table([]string{"ID", "Type", "From", "To", "Km", "Price", "Availability"}, rows)
}
