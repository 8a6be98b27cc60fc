// Package report renders result rows for operators.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Mindburn-Labs/sortbench/pkg/results"
)

// Format selects an output rendering.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatHTML     Format = "html"
)

// ParseFormat accepts a format name; the empty string means text.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatMarkdown, FormatJSON, FormatHTML:
		return f, nil
	case "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unknown report format %q", s)
	}
}

// numeric marks the right-aligned columns of results.Header.
var numeric = []bool{false, false, true, true, true, true, false, false}

type row struct {
	cols []string
}

func newRow(cols ...string) *row {
	return &row{cols: cols}
}

// Write renders rows to w.
func Write(w io.Writer, rows []results.Row, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if rows == nil {
			rows = []results.Row{}
		}
		return enc.Encode(rows)
	case FormatText, "":
		_, err := w.Write(renderText(table(rows)))
		return err
	case FormatMarkdown:
		_, err := w.Write(renderMarkdown(table(rows)))
		return err
	case FormatHTML:
		_, err := w.Write(renderHTML(table(rows)))
		return err
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

func table(rows []results.Row) []*row {
	p := message.NewPrinter(language.English)
	out := make([]*row, 0, len(rows)+1)
	out = append(out, newRow(results.Header...))
	for _, r := range rows {
		rec := r.Record()
		rec[2] = p.Sprintf("%d", r.N)
		if r.Comparisons != nil {
			rec[4] = p.Sprintf("%d", *r.Comparisons)
		}
		if r.Swaps != nil {
			rec[5] = p.Sprintf("%d", *r.Swaps)
		}
		out = append(out, newRow(rec...))
	}
	return out
}

func widths(t []*row) []int {
	max := make([]int, len(results.Header))
	for _, r := range t {
		for i, s := range r.cols {
			if n := utf8.RuneCountInString(s); max[i] < n {
				max[i] = n
			}
		}
	}
	return max
}

func renderText(t []*row) []byte {
	max := widths(t)
	last := len(results.Header) - 1

	var buf bytes.Buffer
	for n, r := range t {
		for i, s := range r.cols {
			switch {
			case i == 0:
				fmt.Fprintf(&buf, "%-*s", max[i], s)
			case i == last:
				fmt.Fprintf(&buf, "  %s", s)
			case numeric[i] && n > 0:
				fmt.Fprintf(&buf, "  %*s", max[i], s)
			default:
				fmt.Fprintf(&buf, "  %-*s", max[i], s)
			}
		}
		buf.Truncate(len(bytes.TrimRight(buf.Bytes(), " ")))
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

func renderMarkdown(t []*row) []byte {
	var buf bytes.Buffer
	writeLine := func(cols []string) {
		buf.WriteString("|")
		for _, c := range cols {
			fmt.Fprintf(&buf, " %s |", strings.ReplaceAll(c, "|", `\|`))
		}
		buf.WriteByte('\n')
	}

	writeLine(t[0].cols)
	sep := make([]string, len(t[0].cols))
	for i := range sep {
		sep[i] = "---"
		if numeric[i] {
			sep[i] = "---:"
		}
	}
	writeLine(sep)
	for _, r := range t[1:] {
		writeLine(r.cols)
	}
	return buf.Bytes()
}

func renderHTML(t []*row) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "<style>.sortbench td:nth-child(n+3):nth-child(-n+6) { text-align: right; padding: 0em 1em; }</style>\n")
	fmt.Fprintf(&buf, "<table class='sortbench'>\n")
	printRow := func(r *row, tag string) {
		fmt.Fprintf(&buf, "<tr>")
		for _, cell := range r.cols {
			fmt.Fprintf(&buf, "<%s>%s</%s>", tag, html.EscapeString(cell), tag)
		}
		fmt.Fprintf(&buf, "</tr>\n")
	}
	printRow(t[0], "th")
	for _, r := range t[1:] {
		printRow(r, "td")
	}
	fmt.Fprintf(&buf, "</table>\n")
	return buf.Bytes()
}
