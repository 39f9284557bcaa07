package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"traveline/local-app/internal/model"
)

type access int

const (
	accessPublic access = iota
	accessUser
	accessAdmin
)

// command binds one scope/operation to its argument rules and handler.
type command struct {
	scope     string
	operation string
	minArgs   int
	// maxArgs < 0 means no limit.
	maxArgs int
	access  access
	run     func(ctx context.Context, cmd model.Command) error
}

func (c *CLI) commandTable() map[string]map[string]*command {
	list := []*command{
		{scope: "auth", operation: "login", minArgs: 1, maxArgs: 2, run: c.authLogin},
		{scope: "auth", operation: "logout", access: accessUser, run: c.authLogout},
		{scope: "auth", operation: "register", minArgs: 2, maxArgs: 4, run: c.authRegister},
		{scope: "auth", operation: "whoami", run: c.authWhoami},
		{scope: "auth", operation: "passwd", access: accessUser, run: c.authPasswd},

		{scope: "prefs", operation: "show", access: accessUser, run: c.prefsShow},
		{scope: "prefs", operation: "set", minArgs: 0, maxArgs: -1, access: accessUser, run: c.prefsSet},

		{scope: "plan", operation: "start", access: accessUser, run: c.planStart},
		{scope: "plan", operation: "params", minArgs: 2, maxArgs: 3, access: accessUser, run: c.planParams},
		{scope: "plan", operation: "dest", minArgs: 1, maxArgs: 2, access: accessUser, run: c.planDestination},
		{scope: "plan", operation: "hotel", minArgs: 1, maxArgs: 2, access: accessUser, run: c.planHotel},
		{scope: "plan", operation: "back", access: accessUser, run: c.planBack},
		{scope: "plan", operation: "reset", access: accessUser, run: c.planReset},
		{scope: "plan", operation: "status", access: accessUser, run: c.planStatus},
		{scope: "plan", operation: "list", access: accessUser, run: c.planList},
		{scope: "plan", operation: "show", minArgs: 1, maxArgs: 1, access: accessUser, run: c.planShow},
		{scope: "plan", operation: "delete", minArgs: 1, maxArgs: 1, access: accessUser, run: c.planDelete},
		{scope: "plan", operation: "itinerary", minArgs: 1, maxArgs: 1, access: accessUser, run: c.planItinerary},
		{scope: "plan", operation: "notes", minArgs: 2, maxArgs: 2, access: accessUser, run: c.planNotes},

		{scope: "dest", operation: "list", run: c.destList},
		{scope: "dest", operation: "show", minArgs: 1, maxArgs: 1, run: c.destShow},
		{scope: "dest", operation: "recommend", maxArgs: -1, access: accessUser, run: c.destRecommend},

		{scope: "hotel", operation: "list", run: c.hotelList},
		{scope: "hotel", operation: "show", minArgs: 1, maxArgs: 1, run: c.hotelShow},
		{scope: "hotel", operation: "recommend", minArgs: 1, maxArgs: 2, access: accessUser, run: c.hotelRecommend},

		{scope: "transport", operation: "list", run: c.transportList},
		{scope: "transport", operation: "recommend", minArgs: 1, maxArgs: 2, access: accessUser, run: c.transportRecommend},

		{scope: "budget", operation: "summary", access: accessUser, run: c.budgetSummary},
		{scope: "budget", operation: "breakdown", minArgs: 1, maxArgs: 1, access: accessUser, run: c.budgetBreakdown},

		{scope: "dashboard", access: accessUser, run: c.showDashboard},

		{scope: "profile", operation: "show", access: accessUser, run: c.profileShow},
		{scope: "profile", operation: "update", minArgs: 1, maxArgs: -1, access: accessUser, run: c.profileUpdate},
		{scope: "profile", operation: "delete", access: accessUser, run: c.profileDelete},

		{scope: "admin", operation: "dashboard", access: accessAdmin, run: c.adminDashboard},
		{scope: "admin", operation: "users", access: accessAdmin, run: c.adminUsers},
		{scope: "admin", operation: "user", minArgs: 1, maxArgs: 1, access: accessAdmin, run: c.adminUser},
		{scope: "admin", operation: "toggle", minArgs: 1, maxArgs: 1, access: accessAdmin, run: c.adminToggle},
		{scope: "admin", operation: "plans", access: accessAdmin, run: c.adminPlans},
		{scope: "admin", operation: "prefs", access: accessAdmin, run: c.adminPrefs},
		{scope: "admin", operation: "list", minArgs: 1, maxArgs: 1, access: accessAdmin, run: c.adminList},
		{scope: "admin", operation: "show", minArgs: 2, maxArgs: 2, access: accessAdmin, run: c.adminShow},
		{scope: "admin", operation: "create", minArgs: 2, maxArgs: -1, access: accessAdmin, run: c.adminCreate},
		{scope: "admin", operation: "update", minArgs: 3, maxArgs: -1, access: accessAdmin, run: c.adminUpdate},
		{scope: "admin", operation: "delete", minArgs: 2, maxArgs: 2, access: accessAdmin, run: c.adminDelete},

		{scope: "help", maxArgs: 2, run: c.help},
		{scope: "exit", run: c.exit},
		{scope: "quit", run: c.exit},
	}

	table := make(map[string]map[string]*command)
	for _, cmd := range list {
		if table[cmd.scope] == nil {
			table[cmd.scope] = make(map[string]*command)
		}
		table[cmd.scope][cmd.operation] = cmd
	}
	return table
}

func (c *CLI) lookup(cmd model.Command) (*command, error) {
	ops, ok := c.commands[cmd.Scope]
	if !ok {
		return nil, fmt.Errorf("unknown command %q. Type 'help' for the list of commands", cmd.Scope)
	}
	if entry, ok := ops[""]; ok {
		return entry, nil
	}
	if cmd.Operation == "" {
		return nil, &UsageError{Syntax: scopeSyntax(cmd.Scope), Reason: fmt.Sprintf("%s needs an operation", cmd.Scope)}
	}
	entry, ok := ops[cmd.Operation]
	if !ok {
		return nil, fmt.Errorf("unknown %s operation %q. Type 'help %s' for its operations", cmd.Scope, cmd.Operation, cmd.Scope)
	}
	return entry, nil
}

// validate checks the argument count; --id is not counted.
func (s *command) validate(cmd model.Command) error {
	_, args := cmd.Flag("--id")
	n := len(args)
	if n < s.minArgs || (s.maxArgs >= 0 && n > s.maxArgs) {
		return &UsageError{Syntax: helpFor(s.scope, s.operation).Syntax, Reason: argCountReason(s)}
	}
	return nil
}

func argCountReason(s *command) string {
	name := s.scope
	if s.operation != "" {
		name += " " + s.operation
	}
	switch {
	case s.maxArgs < 0:
		return fmt.Sprintf("%s needs at least %d argument(s)", name, s.minArgs)
	case s.minArgs == s.maxArgs && s.minArgs == 0:
		return fmt.Sprintf("%s takes no arguments", name)
	case s.minArgs == s.maxArgs:
		return fmt.Sprintf("%s needs %d argument(s)", name, s.minArgs)
	default:
		return fmt.Sprintf("%s needs %d to %d arguments", name, s.minArgs, s.maxArgs)
	}
}

var (
	errLoginRequired = errors.New("please log in first: auth login <username>")
	errAdminRequired = errors.New("this command needs an admin account")
)

func (c *CLI) authorize(s *command) error {
	switch s.access {
	case accessUser:
		if !c.session.IsAuthenticated() {
			return errLoginRequired
		}
	case accessAdmin:
		if !c.session.IsAuthenticated() {
			return errLoginRequired
		}
		if !c.session.IsAdmin() {
			return errAdminRequired
		}
	}
	return nil
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%q is not a valid id", s)
	}
	return id, nil
}

// pick resolves a choice typed as a 1-based list position, or as a record
// id when byID is set.
func pick(arg string, ids []int, byID bool) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", arg)
	}
	if byID {
		return n, nil
	}
	if n < 1 || n > len(ids) {
		return 0, fmt.Errorf("choose a number between 1 and %d", len(ids))
	}
	return ids[n-1], nil
}

func (c *CLI) exit(context.Context, model.Command) error {
	c.ui.Info("Goodbye!")
	return ErrExit
}
