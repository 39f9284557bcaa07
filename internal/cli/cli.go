// Package cli turns command lines into calls on the session, the planning
// wizard and the REST client, and prints the results.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/chzyer/readline"

	"traveline/local-app/internal/api"
	"traveline/local-app/internal/data"
	"traveline/local-app/internal/event"
	"traveline/local-app/internal/log"
	"traveline/local-app/internal/model"
	"traveline/local-app/internal/preference"
	"traveline/local-app/internal/session"
	"traveline/local-app/internal/ui"
	"traveline/local-app/internal/wizard"
)

// ErrExit is returned by Execute when the user asks to leave.
var ErrExit = errors.New("exit requested")

// UsageError reports a command typed with the wrong arguments.
type UsageError struct {
	Syntax string
	Reason string
}

func (e *UsageError) Error() string {
	if e.Syntax == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s (usage: %s)", e.Reason, e.Syntax)
}

// Prompter reads answers to interactive questions.
type Prompter interface {
	ReadLine(prompt string) (string, error)
	ReadPassword(prompt string) (string, error)
}

// LineReader supplies command lines to Run.
type LineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
}

// Deps are the components the CLI drives.
type Deps struct {
	Session  *session.Manager
	Events   *event.EventManager
	Client   *api.Client
	UI       *ui.UI
	Prompter Prompter
	Logger   *log.Logger
}

// CLI executes commands for one interactive user.
type CLI struct {
	session  *session.Manager
	client   *api.Client
	ui       *ui.UI
	prompter Prompter
	logger   *log.Logger

	dashboard    *data.Dashboard
	budget       *data.Budget
	profile      *data.Profile
	destinations *data.Destinations
	plans        *data.Plans
	admin        *data.Admin

	commands map[string]map[string]*command

	mu     sync.Mutex
	form   *preference.Form
	wizard *wizard.Wizard
}

// New builds a CLI and subscribes it to session changes.
func New(d Deps) *CLI {
	c := &CLI{
		session:      d.Session,
		client:       d.Client,
		ui:           d.UI,
		prompter:     d.Prompter,
		logger:       d.Logger,
		dashboard:    data.NewDashboard(d.Client, d.Logger),
		budget:       data.NewBudget(d.Client),
		profile:      data.NewProfile(d.Client, d.Session, d.Logger),
		destinations: data.NewDestinations(d.Client),
		plans:        data.NewPlans(d.Client, d.Logger),
		admin:        data.NewAdmin(d.Client, d.Logger),
	}
	if c.prompter == nil {
		c.prompter = d.UI
	}
	c.commands = c.commandTable()

	d.Events.Subscribe(event.SessionLoggedIn, c.dropUserState)
	d.Events.Subscribe(event.SessionLoggedOut, c.dropUserState)
	d.Events.Subscribe(event.SessionExpired, c.dropUserState)
	return c
}

// dropUserState forgets the preference form and any planning session, which
// belong to the user who owned them.
func (c *CLI) dropUserState(event.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.wizard != nil {
		c.wizard.Reset()
	}
	c.wizard = nil
	c.form = nil
}

// Prompt returns the prompt for the current session and wizard stage.
func (c *CLI) Prompt() string {
	if !c.session.IsAuthenticated() {
		return c.ui.PromptString("", "")
	}
	stage := ""
	if w := c.currentWizard(); w != nil {
		stage = w.Stage().String()
	}
	return c.ui.PromptString(c.session.Username(), stage)
}

// Run reads and executes lines until the user exits or input ends.
func (c *CLI) Run(ctx context.Context, rl LineReader) error {
	c.ui.Info("Welcome to Traveline. Type 'help' for the list of commands.")
	for {
		rl.SetPrompt(c.Prompt())
		line, err := rl.Readline()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			c.ui.Info("Use 'exit' or 'quit' to exit the program.")
			continue
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return fmt.Errorf("failed to read command: %w", err)
		}

		if err := c.Execute(ctx, line); errors.Is(err, ErrExit) {
			return nil
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

// ExecuteScript runs every non-blank line of a file that does not start
// with '#'. Failing commands are reported and the script continues.
func (c *CLI) ExecuteScript(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open script: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		c.ui.PrintlnColored(c.Prompt()+line, ui.ColorWhite)
		if err := c.Execute(ctx, line); errors.Is(err, ErrExit) {
			return ErrExit
		}
	}
	return scanner.Err()
}

// Execute parses and runs one command line. Errors are printed; the
// returned error is for callers that need the outcome.
func (c *CLI) Execute(ctx context.Context, line string) error {
	args := ParseArgs(line)
	if len(args) == 0 {
		return nil
	}

	cmd := toCommand(args)
	c.logger.Command(ctx, "Command received", log.Fields{"scope": cmd.Scope, "operation": cmd.Operation, "argCount": len(cmd.Args)})

	entry, err := c.lookup(cmd)
	if err != nil {
		c.ui.Error(err.Error())
		return err
	}
	// Single-word scopes take their operation slot as an argument.
	if entry.operation == "" && cmd.Operation != "" {
		cmd.Args = append([]string{cmd.Operation}, cmd.Args...)
		cmd.Operation = ""
	}
	if err := entry.validate(cmd); err != nil {
		c.ui.Error(err.Error())
		return err
	}
	if err := c.authorize(entry); err != nil {
		c.ui.Warning(err.Error())
		return err
	}

	err = entry.run(ctx, cmd)
	if err != nil && !errors.Is(err, ErrExit) {
		c.report(ctx, cmd, err)
	}
	return err
}

func toCommand(args []string) model.Command {
	cmd := model.Command{Scope: strings.ToLower(args[0])}
	if len(args) > 1 {
		cmd.Operation = strings.ToLower(args[1])
		cmd.Args = args[2:]
	}
	return cmd
}

// report prints a failed command's message. An unauthorized answer ends
// the session.
func (c *CLI) report(ctx context.Context, cmd model.Command, err error) {
	c.logger.Error(ctx, "Command failed", log.Fields{"scope": cmd.Scope, "operation": cmd.Operation, "error": err})

	if errors.Is(err, api.ErrUnauthorized) && c.session.IsAuthenticated() {
		if expErr := c.session.Expire(ctx); expErr != nil {
			c.logger.Error(ctx, "Failed to clear expired session", log.Fields{"error": expErr})
		}
		c.ui.Warning("Your session has expired. Please log in again.")
		return
	}
	c.ui.Error(errorMessage(err))
}

// messageError carries display text prepared by the component that failed.
type messageError struct {
	msg string
	err error
}

func (e *messageError) Error() string { return e.msg }
func (e *messageError) Unwrap() error { return e.err }

func errorMessage(err error) string {
	var me *messageError
	switch {
	case errors.As(err, &me):
		return me.msg
	case errors.Is(err, api.ErrNetwork):
		return api.NetworkMessage
	default:
		return api.DisplayMessage(err, err.Error())
	}
}

// ParseArgs splits a line on spaces, keeping double-quoted text together.
func ParseArgs(input string) []string {
	var args []string
	var current strings.Builder
	inQuotes, quoted := false, false

	for _, char := range input {
		switch {
		case char == '"':
			inQuotes = !inQuotes
			quoted = true
		case (char == ' ' || char == '\t') && !inQuotes:
			if current.Len() > 0 || quoted {
				args = append(args, current.String())
				current.Reset()
			}
			quoted = false
		default:
			current.WriteRune(char)
		}
	}
	if current.Len() > 0 || quoted {
		args = append(args, current.String())
	}
	return args
}

// Completer completes scopes and operations for readline.
func (c *CLI) Completer() readline.AutoCompleter {
	var items []readline.PrefixCompleterInterface
	for _, scope := range scopeOrder {
		var ops []readline.PrefixCompleterInterface
		for _, h := range commandHelps {
			if h.Scope == scope && h.Operation != "" {
				ops = append(ops, readline.PcItem(h.Operation))
			}
		}
		items = append(items, readline.PcItem(scope, ops...))
	}
	return readline.NewPrefixCompleter(items...)
}

func (c *CLI) currentWizard() *wizard.Wizard {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.wizard
}
