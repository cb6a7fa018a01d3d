package lint

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/rlch/cypherparse/lsp"
)

// Formatter renders lint events and results.
type Formatter interface {
	Format(event Event, result *Result) error
	Summary(result *Result) error
}

// Format names.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatLSP  = "lsp"
)

// NewFormatter returns the formatter registered under name.
func NewFormatter(name string, w io.Writer, colorize bool) (Formatter, error) {
	switch name {
	case "", FormatText:
		return NewTextFormatter(w, colorize), nil
	case FormatJSON:
		return NewJSONFormatter(w), nil
	case FormatLSP:
		return NewLSPFormatter(w), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// FormatHandler is a Handler that delegates to a Formatter.
type FormatHandler struct {
	formatter Formatter
	stderr    io.Writer
}

// NewFormatHandler creates a handler that formats events.
func NewFormatHandler(f Formatter, stderr io.Writer) *FormatHandler {
	return &FormatHandler{formatter: f, stderr: stderr}
}

// Event formats the event.
func (h *FormatHandler) Event(_ context.Context, event Event, result *Result) error {
	return h.formatter.Format(event, result)
}

// Err writes to stderr.
func (h *FormatHandler) Err(text string) error {
	_, err := h.stderr.Write([]byte(text + "\n"))

	return err
}

// Summary renders the final summary.
func (h *FormatHandler) Summary(result *Result) error {
	return h.formatter.Summary(result)
}

// -----------------------------------------------------------------------------
// Text Formatter
// -----------------------------------------------------------------------------

type textStyles struct {
	Location lipgloss.Style
	Error    lipgloss.Style
	Caret    lipgloss.Style
	Pass     lipgloss.Style
	Fail     lipgloss.Style
}

// TextFormatter prints compiler-style diagnostics with source context.
type TextFormatter struct {
	w        io.Writer
	colorize bool
	styles   textStyles
}

// NewTextFormatter creates a text formatter.
func NewTextFormatter(w io.Writer, colorize bool) *TextFormatter {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(termenv.ANSI)

	return &TextFormatter{
		w:        w,
		colorize: colorize,
		styles: textStyles{
			Location: r.NewStyle().Bold(true),
			Error:    r.NewStyle().Foreground(lipgloss.Color("1")),
			Caret:    r.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
			Pass:     r.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
			Fail:     r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		},
	}
}

func (f *TextFormatter) render(style lipgloss.Style, text string) string {
	if !f.colorize {
		return text
	}

	return style.Render(text)
}

// Format prints the diagnostics of a failed or errored file.
func (f *TextFormatter) Format(event Event, _ *Result) error {
	switch event.Action {
	case ActionChecked:
		return nil
	case ActionError:
		_, err := fmt.Fprintf(f.w, "%s %s\n",
			f.render(f.styles.Location, event.File+":"),
			f.render(f.styles.Error, "error: "+errString(event.Error)))

		return err
	case ActionFailed:
	}

	for _, e := range event.Errors() {
		loc := fmt.Sprintf("%s:%d:%d:", event.File, e.Position.Line, e.Position.Column)

		_, err := fmt.Fprintf(f.w, "%s %s\n    %s\n    %s%s\n",
			f.render(f.styles.Location, loc),
			f.render(f.styles.Error, e.Message),
			e.Context,
			strings.Repeat(" ", e.ContextOffset),
			f.render(f.styles.Caret, "^"))
		if err != nil {
			return err
		}
	}

	for _, src := range event.Failures {
		_, err := fmt.Fprintf(f.w, "%s %s\n",
			f.render(f.styles.Location, event.File+":"),
			f.render(f.styles.Error, "assertion failed: "+src))
		if err != nil {
			return err
		}
	}

	return nil
}

// Summary prints the final counts.
func (f *TextFormatter) Summary(result *Result) error {
	status := f.render(f.styles.Pass, "PASS")
	if !result.Ok() {
		status = f.render(f.styles.Fail, "FAIL")
	}

	_, err := fmt.Fprintf(f.w, "%s %d files, %d clean, %d failed, %d errors in %s\n",
		status,
		result.Total,
		result.Clean,
		result.Failed,
		result.Errored,
		result.Elapsed().Round(time.Millisecond),
	)

	return err
}

func errString(err error) string {
	if err == nil {
		return ""
	}

	return err.Error()
}

// -----------------------------------------------------------------------------
// JSON Formatter
// -----------------------------------------------------------------------------

// JSONFormatter writes one JSON object per event followed by a summary
// object.
type JSONFormatter struct {
	enc *json.Encoder
}

// NewJSONFormatter creates a JSON lines formatter.
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{enc: json.NewEncoder(w)}
}

type jsonEvent struct {
	Time     time.Time `json:"time"`
	Action   Action    `json:"action"`
	File     string    `json:"file"`
	Elapsed  float64   `json:"elapsed"`
	NNodes   int       `json:"nnodes"`
	Errors   any       `json:"errors,omitempty"`
	Failures []string  `json:"failures,omitempty"`
	Error    string    `json:"error,omitempty"`
}

type jsonSummary struct {
	Action  string  `json:"action"`
	Total   int     `json:"total"`
	Clean   int     `json:"clean"`
	Failed  int     `json:"failed"`
	Errored int     `json:"errored"`
	Elapsed float64 `json:"elapsed"`
}

// Format encodes the event.
func (f *JSONFormatter) Format(event Event, _ *Result) error {
	je := jsonEvent{
		Time:     event.Time,
		Action:   event.Action,
		File:     event.File,
		Elapsed:  event.Elapsed.Seconds(),
		Failures: event.Failures,
		Error:    errString(event.Error),
	}

	if event.Outcome != nil {
		je.NNodes = event.Outcome.NNodes

		if len(event.Outcome.Errors) > 0 {
			je.Errors = event.Outcome.Errors
		}
	}

	return f.enc.Encode(je)
}

// Summary encodes the final counts.
func (f *JSONFormatter) Summary(result *Result) error {
	return f.enc.Encode(jsonSummary{
		Action:  "summary",
		Total:   result.Total,
		Clean:   result.Clean,
		Failed:  result.Failed,
		Errored: result.Errored,
		Elapsed: result.Elapsed().Seconds(),
	})
}

// -----------------------------------------------------------------------------
// LSP Formatter
// -----------------------------------------------------------------------------

// LSPFormatter writes one publishDiagnostics payload per parsed file, so
// editors and CI annotators can consume lint output directly.
type LSPFormatter struct {
	enc *json.Encoder
}

// NewLSPFormatter creates an LSP diagnostics formatter.
func NewLSPFormatter(w io.Writer) *LSPFormatter {
	return &LSPFormatter{enc: json.NewEncoder(w)}
}

// Format encodes the diagnostics of the file. Files that could not be read
// are skipped.
func (f *LSPFormatter) Format(event Event, _ *Result) error {
	if event.Outcome == nil {
		return nil
	}

	return f.enc.Encode(lsp.PublishParams(event.File, event.Outcome))
}

// Summary is a no-op.
func (f *LSPFormatter) Summary(_ *Result) error {
	return nil
}
