// Package ui prints coloured output and reads prompted input on the terminal.
package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"golang.org/x/term"
)

// UI writes to the terminal and reads answers to prompts.
type UI struct {
	writer   io.Writer
	input    io.Reader
	reader   *bufio.Reader
	useColor bool
	prompt   string
}

// New creates a UI writing to w and reading prompts from standard input.
func New(w io.Writer, useColor bool) *UI {
	return NewWithInput(w, os.Stdin, useColor)
}

// NewWithInput creates a UI reading prompts from r.
func NewWithInput(w io.Writer, r io.Reader, useColor bool) *UI {
	return &UI{writer: w, input: r, reader: bufio.NewReader(r), useColor: useColor}
}

// Writer returns the underlying output.
func (u *UI) Writer() io.Writer {
	return u.writer
}

func (u *UI) colorize(message string, color Color) string {
	if !u.useColor || color == ColorDefault {
		return message
	}
	return fmt.Sprintf("%s%s%s", color, message, ColorDefault)
}

func (u *UI) Print(message string) {
	fmt.Fprint(u.writer, message)
}

func (u *UI) Printf(format string, args ...any) {
	fmt.Fprintf(u.writer, format, args...)
}

func (u *UI) Println(message string) {
	fmt.Fprintln(u.writer, message)
}

func (u *UI) PrintlnColored(message string, color Color) {
	fmt.Fprintln(u.writer, u.colorize(message, color))
}

func (u *UI) Error(message string) {
	fmt.Fprintf(u.writer, "%s %s\n", u.colorize("!", ColorRed), u.colorize(message, ColorLightOrange))
}

func (u *UI) Success(message string) {
	u.PrintlnColored(message, ColorLightGreen)
}

func (u *UI) Warning(message string) {
	fmt.Fprintf(u.writer, "%s %s\n", u.colorize("?", ColorLightRed), u.colorize(message, ColorLightYellow))
}

func (u *UI) Info(message string) {
	u.PrintlnColored(message, ColorGray)
}

// Heading prints a section title.
func (u *UI) Heading(title string) {
	u.PrintlnColored(title, ColorBold)
}

// Field prints an aligned "label: value" line; empty values print as "-".
func (u *UI) Field(label, value string) {
	if value == "" {
		value = "-"
	}
	fmt.Fprintf(u.writer, "  %-18s %s\n", u.colorize(label+":", ColorGray), value)
}

// PromptString builds the command prompt: "user [stage] > " when logged in,
// "> " otherwise.
func (u *UI) PromptString(user, stage string) string {
	var b strings.Builder
	if user != "" {
		b.WriteString(u.colorize(user, ColorLightBlue))
		if stage != "" {
			b.WriteString(" ")
			b.WriteString(u.colorize("["+stage+"]", ColorLightPurple))
		}
		b.WriteString(" ")
	}
	b.WriteString(u.colorize("> ", ColorGreen))
	return b.String()
}

// Table prints rows under headers in aligned columns.
func (u *UI) Table(headers []string, rows [][]string) {
	tw := tabwriter.NewWriter(u.writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	under := make([]string, len(headers))
	for i, h := range headers {
		under[i] = strings.Repeat("-", len(h))
	}
	fmt.Fprintln(tw, strings.Join(under, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	tw.Flush()
}

// Interactive reports whether input comes from a terminal.
func (u *UI) Interactive() bool {
	f, ok := u.input.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// SetPrompt sets the prompt Readline prints.
func (u *UI) SetPrompt(prompt string) {
	u.prompt = prompt
}

// Readline reads one command line, for input that is not a terminal.
func (u *UI) Readline() (string, error) {
	return u.ReadLine(u.prompt)
}

// ReadLine prints prompt and reads one line of input.
func (u *UI) ReadLine(prompt string) (string, error) {
	u.Print(prompt)
	line, err := u.reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ReadPassword reads a line without echo when input is a terminal. Other
// inputs are read as plain lines.
func (u *UI) ReadPassword(prompt string) (string, error) {
	if !u.Interactive() {
		return u.ReadLine(prompt)
	}

	u.Print(prompt)
	password, err := term.ReadPassword(int(u.input.(*os.File).Fd()))
	u.Println("")
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(password), nil
}
