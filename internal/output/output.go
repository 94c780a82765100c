// Package output renders issues and command results for the terminal.
package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/ylchen07/sentry-cli/internal/apperr"
)

// Format selects how results are printed.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
)

// ParseFormat accepts "table" or "json", case-insensitively.
func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case FormatTable, "":
		return FormatTable, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", apperr.Validation(fmt.Sprintf("unknown output format %q (expected table or json)", value))
	}
}

// Options are established once per invocation and passed to every renderer.
type Options struct {
	Format  Format
	Quiet   bool
	Verbose bool
	Color   bool
}

// Renderer writes results to out and failures to errOut.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	opts   Options
	now    func() time.Time

	green  *color.Color
	red    *color.Color
	yellow *color.Color
	cyan   *color.Color
	blue   *color.Color
	bold   *color.Color
	faint  *color.Color
}

// NewRenderer builds a Renderer. Colour codes are only emitted when opts.Color is set.
func NewRenderer(out, errOut io.Writer, opts Options) *Renderer {
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	if opts.Format == "" {
		opts.Format = FormatTable
	}

	r := &Renderer{
		out:    out,
		errOut: errOut,
		opts:   opts,
		now:    time.Now,
		green:  color.New(color.FgGreen),
		red:    color.New(color.FgRed),
		yellow: color.New(color.FgYellow),
		cyan:   color.New(color.FgCyan),
		blue:   color.New(color.FgBlue),
		bold:   color.New(color.Bold),
		faint:  color.New(color.Faint),
	}

	for _, c := range []*color.Color{r.green, r.red, r.yellow, r.cyan, r.blue, r.bold, r.faint} {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return r
}

// Options returns the options the renderer was built with.
func (r *Renderer) Options() Options {
	return r.opts
}

// Success prints a confirmation line. Quiet mode suppresses it.
func (r *Renderer) Success(msg string) {
	if r.opts.Quiet {
		return
	}
	if r.opts.Format == FormatJSON {
		r.writeJSON(map[string]string{"message": msg})
		return
	}
	fmt.Fprintf(r.out, "%s %s\n", r.green.Sprint("✓"), msg)
}

// Message prints an informational line. Quiet mode suppresses it.
func (r *Renderer) Message(msg string) {
	if r.opts.Quiet {
		return
	}
	if r.opts.Format == FormatJSON {
		r.writeJSON(map[string]string{"message": msg})
		return
	}
	fmt.Fprintln(r.out, msg)
}

// Println writes a line regardless of quiet mode.
func (r *Renderer) Println(a ...any) {
	fmt.Fprintln(r.out, a...)
}

// Error prints err to errOut. In verbose mode every wrapped cause follows.
func (r *Renderer) Error(err error) {
	if err == nil {
		return
	}

	fmt.Fprintf(r.errOut, "%s %s\n", r.red.Sprint("✗"), err.Error())

	if !r.opts.Verbose {
		return
	}

	for cause := errors.Unwrap(err); cause != nil; cause = errors.Unwrap(cause) {
		fmt.Fprintf(r.errOut, "  caused by: %v\n", cause)
	}
}

// JSON writes v as indented JSON.
func (r *Renderer) JSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return apperr.JSON(err)
	}
	if _, err := fmt.Fprintln(r.out, string(data)); err != nil {
		return apperr.IO(err)
	}
	return nil
}

func (r *Renderer) writeJSON(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	fmt.Fprintln(r.out, string(data))
}

// IsTerminal reports whether w is attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
