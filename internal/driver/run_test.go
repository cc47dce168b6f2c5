package driver_test

import (
	"testing"

	"github.com/sflang/sfl/internal/config"
	"github.com/sflang/sfl/internal/driver"
	"github.com/sflang/sfl/internal/interp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSuccess(t *testing.T) {
	report := driver.Run(config.Default(), map[string]string{
		"./main.sfl": "1 + 2",
	})
	require.False(t, report.Fatal)
	require.Empty(t, report.Diagnostics)
	result, ok := report.Results["./main.sfl"]
	require.True(t, ok)
	assert.Equal(t, "Int", result.Type.String())
	assert.Equal(t, interp.Number(3), result.Value)
}

// TestRunTypeErrorHalts covers scenario 6: an undefined name is a
// hard (type-check) failure, so the pipeline never reaches Eval.
func TestRunTypeErrorHalts(t *testing.T) {
	report := driver.Run(config.Default(), map[string]string{
		"./main.sfl": "foo",
	})
	assert.True(t, report.Fatal)
	assert.NotEmpty(t, report.Diagnostics)
	_, ok := report.Results["./main.sfl"]
	assert.False(t, ok)
}

// TestRunSyntaxErrorResilientContinues covers scenario 7: `1 +` is a
// syntax error the parser recovers from (SoftErr); under the default
// resilient=true config the pipeline continues into type-checking,
// where the resulting Ast::Err yields its own type error and the run
// still ends up Fatal overall (just later in the pipeline).
func TestRunSyntaxErrorResilientContinues(t *testing.T) {
	report := driver.Run(config.Default(), map[string]string{
		"./main.sfl": "1 +",
	})
	assert.True(t, report.Fatal)
	assert.NotEmpty(t, report.Diagnostics)
}

// TestRunNonResilientHaltsOnSoftErr covers the resilient=false branch:
// the same dangling-operator SoftErr now halts the pipeline at the
// parser instead of continuing to type-checking.
func TestRunNonResilientHaltsOnSoftErr(t *testing.T) {
	cfg := config.Default()
	cfg.Resilient = false
	report := driver.Run(cfg, map[string]string{
		"./main.sfl": "1 +",
	})
	assert.True(t, report.Fatal)
	assert.NotEmpty(t, report.Diagnostics)
	_, hasResult := report.Results["./main.sfl"]
	assert.False(t, hasResult)
}

// TestRunFileVariant covers the file/definition grammar reaching the
// real pipeline, not just parser/ast package tests: a source starting
// with 'def' is dispatched to ParseFile instead of ParseExpression.
func TestRunFileVariant(t *testing.T) {
	report := driver.Run(config.Default(), map[string]string{
		"./main.sfl": "def helper { 1 }\ndef main { helper + 2 }",
	})
	require.False(t, report.Fatal)
	require.Empty(t, report.Diagnostics)
	result, ok := report.Results["./main.sfl"]
	require.True(t, ok)
	assert.Equal(t, "Int", result.Type.String())
	assert.Equal(t, interp.Number(3), result.Value)
}

func TestRunMultipleSources(t *testing.T) {
	report := driver.Run(config.Default(), map[string]string{
		"./a.sfl": "1 + 1",
		"./b.sfl": "2 + 2",
	})
	require.False(t, report.Fatal)
	assert.Equal(t, interp.Number(2), report.Results["./a.sfl"].Value)
	assert.Equal(t, interp.Number(4), report.Results["./b.sfl"].Value)
}
