package cli

import (
	"context"
	"fmt"
	"strings"

	"traveline/local-app/internal/model"
)

// CommandHelp is the help text of one scope/operation.
type CommandHelp struct {
	Scope     string
	Operation string
	ShortDesc string
	LongDesc  string
	Syntax    string
	Arguments []string
	Options   []string
	Examples  []string
}

var scopeOrder = []string{"auth", "prefs", "plan", "dest", "hotel", "transport", "budget", "dashboard", "profile", "admin", "help", "exit", "quit"}

var commandHelps = []CommandHelp{
	{
		Scope: "auth", Operation: "login",
		ShortDesc: "Log in",
		LongDesc:  "Logs in with a username and password. The password is prompted for when not given.",
		Syntax:    "auth login <username> [password]",
		Examples:  []string{"auth login ana"},
	},
	{
		Scope: "auth", Operation: "logout",
		ShortDesc: "Log out",
		LongDesc:  "Ends the session on the server and forgets the stored token.",
		Syntax:    "auth logout",
	},
	{
		Scope: "auth", Operation: "register",
		ShortDesc: "Create an account",
		LongDesc:  "Creates an account. The password and its confirmation are prompted for.",
		Syntax:    "auth register <username> <email> [first_name] [last_name]",
		Examples:  []string{`auth register ana ana@example.com Ana "de Silva"`},
	},
	{
		Scope: "auth", Operation: "whoami",
		ShortDesc: "Show the logged-in user",
		LongDesc:  "Shows the username, user id and roles of the current session.",
		Syntax:    "auth whoami",
	},
	{
		Scope: "auth", Operation: "passwd",
		ShortDesc: "Change password",
		LongDesc:  "Changes the account password. Old and new passwords are prompted for.",
		Syntax:    "auth passwd",
	},
	{
		Scope: "prefs", Operation: "show",
		ShortDesc: "Show travel preferences",
		LongDesc:  "Shows the saved travel preferences, or the defaults when none are saved yet.",
		Syntax:    "prefs show",
	},
	{
		Scope: "prefs", Operation: "set",
		ShortDesc: "Save travel preferences",
		LongDesc:  "Changes the given preference fields and saves them. The first save creates the record; later saves update it.",
		Syntax:    "prefs set [key=value]...",
		Arguments: []string{
			"budget=low|medium|high",
			"min=<amount>, max=<amount>: budget bounds; an empty value clears the bound",
			"interest=beach|wildlife|historical|city_tour|adventure|culture",
			"objective=leisure|adventure|honeymoon|business|family",
			"accommodation=hotel|resort|apartment|villa|hostel|guesthouse",
			"location=<text>",
			"travelers=<1-20>",
		},
		Examples: []string{"prefs set budget=low interest=beach travelers=2"},
	},
	{
		Scope: "plan", Operation: "start",
		ShortDesc: "Start planning a trip",
		LongDesc:  "Starts a new planning session from the saved preferences, discarding any session in progress.",
		Syntax:    "plan start",
	},
	{
		Scope: "plan", Operation: "params",
		ShortDesc: "Enter trip dates and country",
		LongDesc:  "Enters the trip dates and optional country and fetches recommended destinations.",
		Syntax:    "plan params <travel_date> <return_date> [country]",
		Examples:  []string{"plan params 2025-06-01 2025-06-10 Tanzania"},
	},
	{
		Scope: "plan", Operation: "dest",
		ShortDesc: "Choose a destination",
		LongDesc:  "Chooses a recommended destination by its list number and fetches its hotels.",
		Syntax:    "plan dest <number> [--id]",
		Options:   []string{"--id: treat the argument as a destination id"},
	},
	{
		Scope: "plan", Operation: "hotel",
		ShortDesc: "Choose a hotel and create the plan",
		LongDesc:  "Chooses a recommended hotel by its list number and creates the travel plan.",
		Syntax:    "plan hotel <number> [--id]",
		Options:   []string{"--id: treat the argument as a hotel id"},
	},
	{
		Scope: "plan", Operation: "back",
		ShortDesc: "Go back one step",
		LongDesc:  "Returns to the previous choice, discarding the current list.",
		Syntax:    "plan back",
	},
	{
		Scope: "plan", Operation: "reset",
		ShortDesc: "Start planning over",
		LongDesc:  "Returns to the first step and clears every choice.",
		Syntax:    "plan reset",
	},
	{
		Scope: "plan", Operation: "status",
		ShortDesc: "Show planning progress",
		LongDesc:  "Shows the current step, the entered values and the choices made so far.",
		Syntax:    "plan status",
	},
	{
		Scope: "plan", Operation: "list",
		ShortDesc: "List saved plans",
		LongDesc:  "Lists every saved travel plan.",
		Syntax:    "plan list",
	},
	{
		Scope: "plan", Operation: "show",
		ShortDesc: "Show a saved plan",
		LongDesc:  "Shows one saved travel plan with its itinerary.",
		Syntax:    "plan show <plan_id>",
	},
	{
		Scope: "plan", Operation: "delete",
		ShortDesc: "Delete a saved plan",
		LongDesc:  "Deletes a saved travel plan after confirmation.",
		Syntax:    "plan delete <plan_id>",
	},
	{
		Scope: "plan", Operation: "itinerary",
		ShortDesc: "Generate an itinerary",
		LongDesc:  "Asks the server to build a day-by-day itinerary for a saved plan.",
		Syntax:    "plan itinerary <plan_id>",
	},
	{
		Scope: "plan", Operation: "notes",
		ShortDesc: "Set plan notes",
		LongDesc:  "Replaces the notes of a saved plan. Quote notes that contain spaces.",
		Syntax:    `plan notes <plan_id> "<text>"`,
	},
	{
		Scope: "dest", Operation: "list",
		ShortDesc: "List destinations",
		LongDesc:  "Lists every destination.",
		Syntax:    "dest list",
	},
	{
		Scope: "dest", Operation: "show",
		ShortDesc: "Show a destination",
		LongDesc:  "Shows a destination with its images and hotels.",
		Syntax:    "dest show <destination_id>",
	},
	{
		Scope: "dest", Operation: "recommend",
		ShortDesc: "Recommend destinations",
		LongDesc:  "Recommends destinations. Without filters the saved preferences are used.",
		Syntax:    "dest recommend [key=value]...",
		Arguments: []string{"budget, interest, country, min, max, objective, location"},
		Examples:  []string{"dest recommend budget=medium interest=wildlife country=Kenya"},
	},
	{
		Scope: "hotel", Operation: "list",
		ShortDesc: "List hotels",
		LongDesc:  "Lists every hotel.",
		Syntax:    "hotel list",
	},
	{
		Scope: "hotel", Operation: "show",
		ShortDesc: "Show a hotel",
		LongDesc:  "Shows one hotel.",
		Syntax:    "hotel show <hotel_id>",
	},
	{
		Scope: "hotel", Operation: "recommend",
		ShortDesc: "Recommend hotels",
		LongDesc:  "Recommends hotels at a destination for a budget level.",
		Syntax:    "hotel recommend <destination_id> [budget]",
	},
	{
		Scope: "transport", Operation: "list",
		ShortDesc: "List transport options",
		LongDesc:  "Lists every transport option.",
		Syntax:    "transport list",
	},
	{
		Scope: "transport", Operation: "recommend",
		ShortDesc: "Recommend transport",
		LongDesc:  "Recommends transport for a distance and budget level.",
		Syntax:    "transport recommend <distance_km> [budget]",
	},
	{
		Scope: "budget", Operation: "summary",
		ShortDesc: "Show budget summary",
		LongDesc:  "Shows budgets and estimated costs across all plans.",
		Syntax:    "budget summary",
	},
	{
		Scope: "budget", Operation: "breakdown",
		ShortDesc: "Show a plan's costs",
		LongDesc:  "Shows the hotel and transport costs of one plan.",
		Syntax:    "budget breakdown <plan_id>",
	},
	{
		Scope:     "dashboard",
		ShortDesc: "Show your dashboard",
		LongDesc:  "Shows plan statistics with upcoming and past trips.",
		Syntax:    "dashboard",
	},
	{
		Scope: "profile", Operation: "show",
		ShortDesc: "Show your account",
		LongDesc:  "Shows the account details.",
		Syntax:    "profile show",
	},
	{
		Scope: "profile", Operation: "update",
		ShortDesc: "Update your account",
		LongDesc:  "Changes email, first name or last name.",
		Syntax:    "profile update [email=<email>] [first=<name>] [last=<name>]",
	},
	{
		Scope: "profile", Operation: "delete",
		ShortDesc: "Delete your account",
		LongDesc:  "Deletes the account after confirmation and logs out.",
		Syntax:    "profile delete",
	},
	{
		Scope: "admin", Operation: "dashboard",
		ShortDesc: "Show site overview",
		LongDesc:  "Shows site counts, users and preference statistics.",
		Syntax:    "admin dashboard",
	},
	{
		Scope: "admin", Operation: "users",
		ShortDesc: "List users",
		LongDesc:  "Lists every user account.",
		Syntax:    "admin users",
	},
	{
		Scope: "admin", Operation: "user",
		ShortDesc: "Show a user",
		LongDesc:  "Shows one user with their plans and preferences.",
		Syntax:    "admin user <user_id>",
	},
	{
		Scope: "admin", Operation: "toggle",
		ShortDesc: "Activate or deactivate a user",
		LongDesc:  "Flips a user account between active and inactive.",
		Syntax:    "admin toggle <user_id>",
	},
	{
		Scope: "admin", Operation: "plans",
		ShortDesc: "List all plans",
		LongDesc:  "Lists the travel plans of every user.",
		Syntax:    "admin plans",
	},
	{
		Scope: "admin", Operation: "prefs",
		ShortDesc: "Show preference statistics",
		LongDesc:  "Shows how users have set their preferences.",
		Syntax:    "admin prefs",
	},
	{
		Scope: "admin", Operation: "list",
		ShortDesc: "List catalogue records",
		LongDesc:  "Lists the records of a catalogue resource.",
		Syntax:    "admin list <destinations|hotels|transport>",
	},
	{
		Scope: "admin", Operation: "show",
		ShortDesc: "Show a catalogue record",
		LongDesc:  "Shows every field of one catalogue record.",
		Syntax:    "admin show <destinations|hotels|transport> <id>",
	},
	{
		Scope: "admin", Operation: "create",
		ShortDesc: "Create a catalogue record",
		LongDesc:  "Creates a record from key=value fields. Lists such as objectives_supported are comma separated.",
		Syntax:    "admin create <destinations|hotels|transport> <key=value>...",
		Arguments: []string{
			"destinations need name, country, city, category, budget_level",
			"hotels need name, destination, price_per_night",
			"transport needs origin, destination, transport_type, distance_km, estimated_price",
		},
		Examples: []string{`admin create hotels name="Palm Stay" destination=2 price_per_night=120.00`},
	},
	{
		Scope: "admin", Operation: "update",
		ShortDesc: "Update a catalogue record",
		LongDesc:  "Changes the given fields of a record.",
		Syntax:    "admin update <destinations|hotels|transport> <id> <key=value>...",
	},
	{
		Scope: "admin", Operation: "delete",
		ShortDesc: "Delete a catalogue record",
		LongDesc:  "Deletes a record after confirmation.",
		Syntax:    "admin delete <destinations|hotels|transport> <id>",
	},
	{
		Scope:     "help",
		ShortDesc: "Show help",
		LongDesc:  "Shows all commands, the commands of a scope, or one command in detail.",
		Syntax:    "help [scope] [operation]",
	},
	{Scope: "exit", ShortDesc: "Exit the program", LongDesc: "Exits the program.", Syntax: "exit"},
	{Scope: "quit", ShortDesc: "Exit the program", LongDesc: "Exits the program.", Syntax: "quit"},
}

func helpFor(scope, operation string) CommandHelp {
	for _, h := range commandHelps {
		if h.Scope == scope && h.Operation == operation {
			return h
		}
	}
	return CommandHelp{Scope: scope, Operation: operation}
}

func scopeSyntax(scope string) string {
	var ops []string
	for _, h := range commandHelps {
		if h.Scope == scope && h.Operation != "" {
			ops = append(ops, h.Operation)
		}
	}
	return fmt.Sprintf("%s <%s>", scope, strings.Join(ops, "|"))
}

func (c *CLI) help(_ context.Context, cmd model.Command) error {
	switch len(cmd.Args) {
	case 0:
		c.showGeneralHelp()
	case 1:
		return c.showScopeHelp(strings.ToLower(cmd.Args[0]))
	default:
		return c.showOperationHelp(strings.ToLower(cmd.Args[0]), strings.ToLower(cmd.Args[1]))
	}
	return nil
}

func (c *CLI) showGeneralHelp() {
	c.ui.Println("Command syntax: <scope> [operation] [arguments] [options]")
	currentScope := ""
	for _, h := range commandHelps {
		if h.Scope != currentScope {
			c.ui.Heading("\n" + h.Scope)
			currentScope = h.Scope
		}
		c.ui.Printf("  %-12s %s\n", h.Operation, h.ShortDesc)
	}
}

func (c *CLI) showScopeHelp(scope string) error {
	found := false
	for _, h := range commandHelps {
		if h.Scope != scope {
			continue
		}
		if !found {
			c.ui.Heading(fmt.Sprintf("Commands for %s:", scope))
			found = true
		}
		c.ui.Printf("  %-40s %s\n", h.Syntax, h.ShortDesc)
	}
	if !found {
		return fmt.Errorf("no help for %q", scope)
	}
	return nil
}

func (c *CLI) showOperationHelp(scope, operation string) error {
	for _, h := range commandHelps {
		if h.Scope != scope || h.Operation != operation {
			continue
		}
		c.ui.Heading(fmt.Sprintf("%s %s", scope, operation))
		c.ui.Println(h.LongDesc)
		c.ui.Printf("Syntax: %s\n", h.Syntax)
		if len(h.Arguments) > 0 {
			c.ui.Println("Arguments:")
			for _, a := range h.Arguments {
				c.ui.Printf("  %s\n", a)
			}
		}
		if len(h.Options) > 0 {
			c.ui.Println("Options:")
			for _, o := range h.Options {
				c.ui.Printf("  %s\n", o)
			}
		}
		if len(h.Examples) > 0 {
			c.ui.Println("Examples:")
			for _, e := range h.Examples {
				c.ui.Printf("  %s\n", e)
			}
		}
		return nil
	}
	return fmt.Errorf("no help for %q %q", scope, operation)
}
