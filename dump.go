package cypherparse

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// dumpStyles colors the columns of a tree dump.
type dumpStyles struct {
	ID     lipgloss.Style
	Range  lipgloss.Style
	Indent lipgloss.Style
	Kind   lipgloss.Style
	Detail lipgloss.Style
}

func newDumpStyles() dumpStyles {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.ANSI)

	return dumpStyles{
		ID:     r.NewStyle().Foreground(lipgloss.Color("8")),
		Range:  r.NewStyle().Foreground(lipgloss.Color("6")),
		Indent: r.NewStyle().Foreground(lipgloss.Color("8")),
		Kind:   r.NewStyle().Foreground(lipgloss.Color("4")).Bold(true),
		Detail: r.NewStyle().Foreground(lipgloss.Color("3")),
	}
}

type dumpLine struct {
	id     int
	span   Span
	depth  int
	kind   string
	detail string
}

// segment is a run of text rendered with one style.
type segment struct {
	text  string
	style *lipgloss.Style
}

// Dump renders the trees rooted at roots, one node per line:
//
//	@id start..end  > > kind  field=value ...
//
// Lines are truncated to width runes when width is positive.
func Dump(w io.Writer, roots []Node, width int, colorize bool) error {
	ids := make(map[Node]int)

	var lines []dumpLine

	for _, root := range roots {
		collectDumpLines(root, 0, ids, &lines)
	}

	idWidth, offWidth, kindWidth := 1, 1, 0
	for _, l := range lines {
		idWidth = max(idWidth, len(strconv.Itoa(l.id)))
		offWidth = max(offWidth, len(strconv.Itoa(l.span.End.Offset)))
		kindWidth = max(kindWidth, 2*l.depth+len(l.kind))
	}

	styles := newDumpStyles()

	for _, l := range lines {
		indent := strings.Repeat("> ", l.depth)
		pad := strings.Repeat(" ", kindWidth-len(indent)-len(l.kind))

		segs := []segment{
			{text: fmt.Sprintf("@%-*d ", idWidth, l.id), style: &styles.ID},
			{text: fmt.Sprintf("%*d..%-*d", offWidth, l.span.Start.Offset, offWidth, l.span.End.Offset), style: &styles.Range},
			{text: "  "},
			{text: indent, style: &styles.Indent},
			{text: l.kind, style: &styles.Kind},
		}

		if l.detail != "" {
			segs = append(segs, segment{text: pad + "  "}, segment{text: l.detail, style: &styles.Detail})
		}

		if _, err := io.WriteString(w, renderSegments(segs, width, colorize)+"\n"); err != nil {
			return err
		}
	}

	return nil
}

func collectDumpLines(n Node, depth int, ids map[Node]int, lines *[]dumpLine) {
	if isNil(n) {
		return
	}

	ids[n] = len(ids)

	i := len(*lines)
	*lines = append(*lines, dumpLine{id: ids[n], span: n.Span(), depth: depth, kind: n.Kind().String()})

	for _, c := range Children(n) {
		collectDumpLines(c, depth+1, ids, lines)
	}

	// Children have ids now.
	(*lines)[i].detail = describeFields(n, ids)
}

func describeFields(n Node, ids map[Node]int) string {
	ref := func(c Node) string {
		return "@" + strconv.Itoa(ids[c])
	}

	var parts []string

	for _, f := range n.fields() {
		var s string

		switch v := f.value.(type) {
		case nil:
			continue
		case Node:
			s = ref(v)
		case []Node:
			if len(v) == 0 {
				continue
			}

			refs := make([]string, len(v))
			for i, c := range v {
				refs[i] = ref(c)
			}

			s = "[" + strings.Join(refs, ", ") + "]"
		case []entry:
			refs := make([]string, len(v))
			for i, e := range v {
				refs[i] = ref(e.key) + ":" + ref(e.value)
			}

			s = "{" + strings.Join(refs, ", ") + "}"
		case []alternative:
			refs := make([]string, len(v))
			for i, a := range v {
				refs[i] = ref(a.predicate) + ":" + ref(a.value)
			}

			s = "[" + strings.Join(refs, ", ") + "]"
		case []*Operator:
			syms := make([]string, len(v))
			for i, op := range v {
				syms[i] = op.Symbol
			}

			s = "[" + strings.Join(syms, ", ") + "]"
		case string:
			s = strconv.Quote(v)
		default:
			s = fmt.Sprint(v)
		}

		parts = append(parts, f.name+"="+s)
	}

	return strings.Join(parts, " ")
}

// renderSegments joins segs, truncating the plain text to width runes and
// styling each segment when colorize is set.
func renderSegments(segs []segment, width int, colorize bool) string {
	var sb strings.Builder

	budget := width

	for _, seg := range segs {
		text := seg.text

		if width > 0 {
			if budget <= 0 {
				break
			}

			if n := utf8.RuneCountInString(text); n > budget {
				text = string([]rune(text)[:budget])
			}

			budget -= utf8.RuneCountInString(text)
		}

		if colorize && seg.style != nil && text != "" {
			text = seg.style.Render(text)
		}

		sb.WriteString(text)
	}

	return strings.TrimRight(sb.String(), " ")
}
