package diag_test

import (
	"bytes"
	"testing"

	"github.com/sflang/sfl/internal/config"
	"github.com/sflang/sfl/internal/diag"
	"github.com/sflang/sfl/internal/driver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFormatScenario6Position covers spec.md §6's literal render
// contract end to end: "foo", an undefined name and the file's only
// token, is reported at display position "1:0" — Span.Line prints
// unmodified (already in "+1" form) and Span.Column-1 undoes the
// lexer's 1-based start column.
func TestFormatScenario6Position(t *testing.T) {
	report := driver.Run(config.Default(), map[string]string{
		"./main.sfl": "foo",
	})
	require.True(t, report.Fatal)
	require.NotEmpty(t, report.Diagnostics)

	var buf bytes.Buffer
	f := diag.NewFormatter(&buf, func(p string) (string, error) { return "foo", nil })
	f.DisableColor()
	f.Format(report.Diagnostics[0])

	assert.Contains(t, buf.String(), "1:0")
}
