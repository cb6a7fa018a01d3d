package lint

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"go.lsp.dev/protocol"

	"github.com/rlch/cypherparse"
)

var errTestRead = errors.New("test: read failed")

func failedEvent(t *testing.T) Event {
	t.Helper()

	out, err := cypherparse.Parse("MATCH (n RETURN n")
	if err == nil {
		t.Fatal("expected a parse error")
	}

	return Event{Action: ActionFailed, File: "q.cypher", Outcome: out, Failures: []string{"NNodes > 100"}}
}

func TestTextFormatter_Format(t *testing.T) {
	var buf bytes.Buffer

	f := NewTextFormatter(&buf, false)

	_ = f.Format(Event{Action: ActionChecked, File: "ok.cypher"}, nil)

	if buf.Len() != 0 {
		t.Error("clean files should produce no output")
	}

	_ = f.Format(failedEvent(t), nil)

	want := "q.cypher:1:10: unexpected keyword 'RETURN', expected ')'\n" +
		"    MATCH (n RETURN n\n" +
		"             ^\n" +
		"q.cypher: assertion failed: NNodes > 100\n"

	if got := buf.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}

	buf.Reset()

	_ = f.Format(Event{Action: ActionError, File: "gone.cypher", Error: errTestRead}, nil)

	if got, want := buf.String(), "gone.cypher: error: test: read failed\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTextFormatter_Colorize(t *testing.T) {
	var buf bytes.Buffer

	_ = NewTextFormatter(&buf, true).Format(failedEvent(t), nil)

	if !strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("expected ANSI escapes in:\n%q", buf.String())
	}
}

func TestTextFormatter_Summary(t *testing.T) {
	var buf bytes.Buffer

	f := NewTextFormatter(&buf, false)

	result := NewResult()
	result.Add(Event{Action: ActionChecked, File: "a.cypher"})
	result.Add(failedEvent(t))
	result.Finish()

	_ = f.Summary(result)

	if !strings.HasPrefix(buf.String(), "FAIL 2 files, 1 clean, 1 failed, 0 errors in ") {
		t.Errorf("unexpected summary %q", buf.String())
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer

	f := NewJSONFormatter(&buf)

	_ = f.Format(failedEvent(t), nil)
	_ = f.Format(Event{Action: ActionError, File: "gone.cypher", Error: errTestRead}, nil)

	result := NewResult()
	result.Add(failedEvent(t))
	result.Finish()

	_ = f.Summary(result)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), buf.String())
	}

	var ev struct {
		Action   string              `json:"action"`
		File     string              `json:"file"`
		Errors   []cypherparse.Error `json:"errors"`
		Failures []string            `json:"failures"`
		Error    string              `json:"error"`
	}

	if err := json.Unmarshal([]byte(lines[0]), &ev); err != nil {
		t.Fatal(err)
	}

	if ev.Action != "failed" || ev.File != "q.cypher" || len(ev.Errors) != 1 || len(ev.Failures) != 1 {
		t.Errorf("unexpected event %+v", ev)
	}

	if ev.Errors[0].Position.Offset != 9 {
		t.Errorf("offset = %d, want 9", ev.Errors[0].Position.Offset)
	}

	ev.Error = ""
	if err := json.Unmarshal([]byte(lines[1]), &ev); err != nil {
		t.Fatal(err)
	}

	if ev.Error != "test: read failed" {
		t.Errorf("error = %q", ev.Error)
	}

	var summary jsonSummary
	if err := json.Unmarshal([]byte(lines[2]), &summary); err != nil {
		t.Fatal(err)
	}

	if summary.Action != "summary" || summary.Total != 1 || summary.Failed != 1 {
		t.Errorf("unexpected summary %+v", summary)
	}
}

func TestLSPFormatter(t *testing.T) {
	var buf bytes.Buffer

	f := NewLSPFormatter(&buf)

	_ = f.Format(Event{Action: ActionError, File: "gone.cypher", Error: errTestRead}, nil)

	if buf.Len() != 0 {
		t.Error("unreadable files should produce no output")
	}

	_ = f.Format(failedEvent(t), nil)

	var params protocol.PublishDiagnosticsParams
	if err := json.Unmarshal(buf.Bytes(), &params); err != nil {
		t.Fatal(err)
	}

	if !strings.HasSuffix(string(params.URI), "/q.cypher") {
		t.Errorf("uri = %q", params.URI)
	}

	if len(params.Diagnostics) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(params.Diagnostics))
	}

	if got := params.Diagnostics[0].Range.Start; got.Line != 0 || got.Character != 9 {
		t.Errorf("start = %+v, want 0:9", got)
	}
}

func TestNewFormatter(t *testing.T) {
	var buf bytes.Buffer

	for _, name := range []string{"", FormatText, FormatJSON, FormatLSP} {
		if _, err := NewFormatter(name, &buf, false); err != nil {
			t.Errorf("NewFormatter(%q) error = %v", name, err)
		}
	}

	if _, err := NewFormatter("xml", &buf, false); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("NewFormatter(xml) error = %v, want ErrUnknownFormat", err)
	}
}

func TestFormatHandler_Err(t *testing.T) {
	var stdout, stderr bytes.Buffer

	h := NewFormatHandler(NewTextFormatter(&stdout, false), &stderr)

	if err := h.Err("warning: test: read failed"); err != nil {
		t.Fatal(err)
	}

	if got, want := stderr.String(), "warning: test: read failed\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	if stdout.Len() != 0 {
		t.Error("warnings should not reach the formatter output")
	}
}
