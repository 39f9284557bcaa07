package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"traveline/local-app/internal/api"
	"traveline/local-app/internal/model"
	"traveline/local-app/internal/ui"
	"traveline/local-app/internal/wizard"
)

var errNoPlanning = errors.New("no trip is being planned; start with 'plan start'")

func (c *CLI) planStart(ctx context.Context, _ model.Command) error {
	form, err := c.preferenceForm(ctx)
	if err != nil {
		return err
	}
	prefs, ok := form.Record()
	if !ok {
		return errors.New("save your travel preferences first with 'prefs set'")
	}

	c.mu.Lock()
	if c.wizard != nil {
		c.wizard.Reset()
	}
	c.wizard = wizard.New(c.client, prefs, c.logger)
	c.mu.Unlock()

	c.ui.Success("Planning started.")
	c.ui.Info("Enter your dates: plan params <travel_date> <return_date> [country]")
	return nil
}

func (c *CLI) activeWizard() (*wizard.Wizard, error) {
	w := c.currentWizard()
	if w == nil {
		return nil, errNoPlanning
	}
	return w, nil
}

// wizardError attaches the wizard's own message to failures that set one.
func wizardError(w *wizard.Wizard, err error) error {
	var apiErr *api.Error
	switch {
	case errors.Is(err, wizard.ErrNoResults),
		errors.Is(err, wizard.ErrUnknownChoice),
		errors.Is(err, api.ErrNetwork),
		errors.As(err, &apiErr):
		if msg := w.Snapshot().LastError; msg != "" {
			return &messageError{msg: msg, err: err}
		}
	case errors.Is(err, wizard.ErrStale):
		return &messageError{msg: "The planning session was reset; that result was discarded.", err: err}
	}
	return err
}

func (c *CLI) planParams(ctx context.Context, cmd model.Command) error {
	w, err := c.activeWizard()
	if err != nil {
		return err
	}
	params := model.TripParameters{TravelDate: cmd.Args[0], ReturnDate: cmd.Args[1]}
	if len(cmd.Args) > 2 {
		params.Country = cmd.Args[2]
	}
	if err := w.SubmitParameters(ctx, params); err != nil {
		return wizardError(w, err)
	}

	s := w.Snapshot()
	c.ui.Heading(fmt.Sprintf("%d recommended destinations", len(s.Destinations)))
	c.destinationTable(s.Destinations, true)
	c.ui.Info("Choose one with 'plan dest <number>'.")
	return nil
}

func (c *CLI) planDestination(ctx context.Context, cmd model.Command) error {
	w, err := c.activeWizard()
	if err != nil {
		return err
	}
	byID, args := cmd.Flag("--id")
	s := w.Snapshot()
	ids := make([]int, len(s.Destinations))
	for i, d := range s.Destinations {
		ids[i] = d.ID
	}
	id, err := pick(args[0], ids, byID)
	if err != nil {
		return err
	}
	if err := w.SelectDestination(ctx, id); err != nil {
		return wizardError(w, err)
	}

	s = w.Snapshot()
	c.ui.Heading(fmt.Sprintf("%d recommended hotels", len(s.Hotels)))
	c.hotelTable(s.Hotels, true)
	c.ui.Info("Choose one with 'plan hotel <number>', or 'plan back' for another destination.")
	return nil
}

func (c *CLI) planHotel(ctx context.Context, cmd model.Command) error {
	w, err := c.activeWizard()
	if err != nil {
		return err
	}
	byID, args := cmd.Flag("--id")
	s := w.Snapshot()
	ids := make([]int, len(s.Hotels))
	for i, h := range s.Hotels {
		ids[i] = h.ID
	}
	id, err := pick(args[0], ids, byID)
	if err != nil {
		return err
	}
	if err := w.SelectHotel(ctx, id); err != nil {
		return wizardError(w, err)
	}

	plan := w.Snapshot().Plan
	c.ui.Success(fmt.Sprintf("Travel plan %d created.", plan.ID))
	c.printPlan(*plan)
	return nil
}

func (c *CLI) planBack(context.Context, model.Command) error {
	w, err := c.activeWizard()
	if err != nil {
		return err
	}
	if err := w.Back(); err != nil {
		return err
	}
	s := w.Snapshot()
	switch s.Stage {
	case wizard.StageParameters:
		c.ui.Info("Back to dates: plan params <travel_date> <return_date> [country]")
	case wizard.StageDestinationChoice:
		c.destinationTable(s.Destinations, true)
	}
	return nil
}

func (c *CLI) planReset(context.Context, model.Command) error {
	w, err := c.activeWizard()
	if err != nil {
		return err
	}
	w.Reset()
	c.ui.Success("Planning reset.")
	return nil
}

func (c *CLI) planStatus(context.Context, model.Command) error {
	w, err := c.activeWizard()
	if err != nil {
		return err
	}
	s := w.Snapshot()
	c.ui.Field("Stage", s.Stage.String())
	c.ui.Field("Travel date", s.Params.TravelDate)
	c.ui.Field("Return date", s.Params.ReturnDate)
	c.ui.Field("Country", s.Params.Country)
	if s.DestinationID != 0 {
		c.ui.Field("Destination", strconv.Itoa(s.DestinationID))
	}
	if s.Plan != nil {
		c.ui.Field("Plan", strconv.Itoa(s.Plan.ID))
	}
	if s.Pending {
		c.ui.Info("A request is in progress.")
	}
	if s.LastError != "" {
		c.ui.Warning(s.LastError)
	}
	switch s.Stage {
	case wizard.StageDestinationChoice:
		c.destinationTable(s.Destinations, true)
	case wizard.StageHotelChoice:
		c.hotelTable(s.Hotels, true)
	}
	return nil
}

func (c *CLI) planList(ctx context.Context, _ model.Command) error {
	plans, err := c.plans.List(ctx)
	if err != nil {
		return err
	}
	if len(plans) == 0 {
		c.ui.Info("No saved plans yet.")
		return nil
	}
	c.planTable(plans)
	return nil
}

func (c *CLI) planShow(ctx context.Context, cmd model.Command) error {
	id, err := parseID(cmd.Args[0])
	if err != nil {
		return err
	}
	plan, err := c.plans.Show(ctx, id)
	if err != nil {
		return err
	}
	c.printPlan(*plan)
	return nil
}

func (c *CLI) planDelete(ctx context.Context, cmd model.Command) error {
	id, err := parseID(cmd.Args[0])
	if err != nil {
		return err
	}
	if ok, err := c.confirm(fmt.Sprintf("Delete travel plan %d?", id)); err != nil || !ok {
		return err
	}
	if err := c.plans.Delete(ctx, id); err != nil {
		return err
	}
	c.ui.Success(fmt.Sprintf("Travel plan %d deleted.", id))
	return nil
}

func (c *CLI) planItinerary(ctx context.Context, cmd model.Command) error {
	id, err := parseID(cmd.Args[0])
	if err != nil {
		return err
	}
	it, err := c.plans.Itinerary(ctx, id)
	if err != nil {
		return err
	}
	if it.Message != "" {
		c.ui.Success(it.Message)
	}
	c.itineraryTable(it.Days)
	return nil
}

func (c *CLI) planNotes(ctx context.Context, cmd model.Command) error {
	id, err := parseID(cmd.Args[0])
	if err != nil {
		return err
	}
	if _, err := c.plans.SetNotes(ctx, id, cmd.Args[1]); err != nil {
		return err
	}
	c.ui.Success("Notes saved.")
	return nil
}

func (c *CLI) printPlan(p model.TravelPlan) {
	c.ui.Heading(fmt.Sprintf("Plan %d: %s", p.ID, p.DestinationName()))
	c.ui.Field("Dates", p.TravelDate+" to "+p.ReturnDate)
	c.ui.Field("Budget", ui.Money(p.Budget))
	c.ui.Field("Travelers", strconv.Itoa(p.NumTravelers))
	if p.HotelDetails != nil {
		c.ui.Field("Hotel", fmt.Sprintf("%s (%s per night)", p.HotelDetails.Name, ui.Money(p.HotelDetails.PricePerNight)))
	}
	if p.TransportDetails != nil {
		t := p.TransportDetails
		c.ui.Field("Transport", fmt.Sprintf("%s from %s (%s)", t.TransportType, t.Origin, ui.Money(t.EstimatedPrice)))
	}
	c.ui.Field("Notes", p.Notes)
	if len(p.Itinerary) > 0 {
		c.itineraryTable(p.Itinerary)
	}
}

func (c *CLI) planTable(plans []model.TravelPlan) {
	rows := make([][]string, len(plans))
	for i, p := range plans {
		rows[i] = []string{strconv.Itoa(p.ID), p.DestinationName(), p.TravelDate, p.ReturnDate, ui.Money(p.Budget), strconv.Itoa(p.NumTravelers)}
	}
	c.ui.Table([]string{"ID", "Destination", "From", "To", "Budget", "Travelers"}, rows)
}

func (c *CLI) itineraryTable(days []model.Itinerary) {
	rows := make([][]string, len(days))
	for i, d := range days {
		rows[i] = []string{strconv.Itoa(d.DayNumber), ui.Truncate(d.Activities, 60), d.Accommodation}
	}
	c.ui.Table([]string{"Day", "Activities", "Stay"}, rows)
}

// confirm asks a yes/no question through the prompter.
func (c *CLI) confirm(question string) (bool, error) {
	answer, err := c.prompter.ReadLine(question + " [y/N] ")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	}
	c.ui.Info("Cancelled.")
	return false, nil
}
