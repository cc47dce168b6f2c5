package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Formatter prints diagnostics in the stable format spec.md §6 fixes:
//
//	<severity>: <message>
//	 --> <relative-path>:<line+1>:<column>
//	<line+1> | <source-line>
//	          ^^^^ <indicator-message>
//
// spec.md's <line+1>:<column> names a 0-based internal Position
// (lines and columns both 0-based) displayed with the line bumped by
// one and the column printed as-is. Span keeps lines and columns
// 1-based internally instead (§4.1's lexer starts both at 1), so
// Format displays Span.Line unmodified (already the "+1" form) and
// Span.Column-1 (undoing the 1-based start to land back on spec.md's
// 0-based display column) — scenario 6's "foo" at the file's first
// token renders as "1:0".
//
// Whether colors are emitted follows fatih/color's own detection (on
// when stdout is a TTY); the writer passed to NewFormatter is not
// inspected. Callers can force them off (e.g. for a non-interactive CI
// log) via DisableColor.
// Grounded on the teacher's internal/diag/formatter.go header/span/
// underline rendering, generalized down to spec.md's single-span
// contract, with the redColor/yellowColor/cyanColor split from
// akashmaji946-go-mix/main/main.go.
type Formatter struct {
	out         io.Writer
	sourceLines map[string][]string // path -> lines, loaded lazily
	loadSource  func(path string) (string, error)

	errColor  *color.Color
	warnColor *color.Color
	hintColor *color.Color
}

// NewFormatter returns a formatter writing to out. loadSource reads
// the full text of a source path on demand (the driver supplies this
// so the formatter never has to know how sources were discovered).
func NewFormatter(out io.Writer, loadSource func(path string) (string, error)) *Formatter {
	f := &Formatter{
		out:         out,
		sourceLines: make(map[string][]string),
		loadSource:  loadSource,
		errColor:    color.New(color.FgRed, color.Bold),
		warnColor:   color.New(color.FgYellow, color.Bold),
		hintColor:   color.New(color.FgCyan),
	}
	return f
}

// DisableColor turns off ANSI emission regardless of TTY detection —
// useful for --display-errors output redirected to a file.
func (f *Formatter) DisableColor() {
	f.errColor.DisableColor()
	f.warnColor.DisableColor()
	f.hintColor.DisableColor()
}

func (f *Formatter) colorFor(sev Severity) *color.Color {
	switch sev {
	case SeverityError:
		return f.errColor
	case SeverityWarning:
		return f.warnColor
	default:
		return f.hintColor
	}
}

func (f *Formatter) lines(path string) []string {
	if lines, ok := f.sourceLines[path]; ok {
		return lines
	}
	if f.loadSource == nil {
		return nil
	}
	src, err := f.loadSource(path)
	if err != nil {
		f.sourceLines[path] = nil
		return nil
	}
	lines := strings.Split(src, "\n")
	f.sourceLines[path] = lines
	return lines
}

// displayPath strips a leading "./" per spec.md §6.
func displayPath(path string) string {
	return strings.TrimPrefix(path, "./")
}

// Format prints a single diagnostic.
func (f *Formatter) Format(d Diagnostic) {
	c := f.colorFor(d.Severity)
	c.Fprintf(f.out, "%s", string(d.Severity))
	fmt.Fprintf(f.out, ": %s\n", d.Message)

	path := d.Span.Path
	if path == "" {
		return
	}
	fmt.Fprintf(f.out, " --> %s:%d:%d\n", displayPath(path), d.Span.Line, d.Span.Column-1)

	lines := f.lines(path)
	if d.Span.Line-1 < 0 || d.Span.Line-1 >= len(lines) {
		return
	}
	lineText := lines[d.Span.Line-1]
	lineNo := fmt.Sprintf("%d", d.Span.Line)

	fmt.Fprintf(f.out, "%s | %s\n", lineNo, lineText)

	width := d.Span.End - d.Span.Begin
	if width < 1 {
		width = 1
	}
	pad := strings.Repeat(" ", len(lineNo)+3+d.Span.Column-1)
	marks := strings.Repeat("^", width)
	if d.Indicator != "" {
		fmt.Fprintf(f.out, "%s%s %s\n", pad, marks, d.Indicator)
	} else {
		fmt.Fprintf(f.out, "%s%s\n", pad, marks)
	}
}

// FormatBundle prints every diagnostic in a bundle, separated by a
// blank line, matching the original Rust implementation's grouping of
// multiple messages for one source (src/message.rs).
func (f *Formatter) FormatBundle(b Bundle) {
	for i, d := range b.Diagnostics {
		if i > 0 {
			fmt.Fprintln(f.out)
		}
		f.Format(d)
	}
}
