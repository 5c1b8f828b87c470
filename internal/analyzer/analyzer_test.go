package analyzer

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/seb-luk/olo-platform/internal/config"
	"github.com/seb-luk/olo-platform/internal/errors"
	"github.com/seb-luk/olo-platform/internal/filetype"
	"github.com/seb-luk/olo-platform/internal/models"
	"github.com/seb-luk/olo-platform/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checksOf(result models.AnalysisResult) map[string]bool {
	out := make(map[string]bool, len(result.Checks))
	for _, c := range result.Checks {
		out[c.Name] = c.Passed
	}
	return out
}

func TestAnalyze_SimpleObject(t *testing.T) {
	ir, err := parser.ParseString(`{"name": "John Doe", "age": 30, "is_student": false, "score": 99.5}`, config.FormatAuto)
	require.NoError(t, err)

	result, err := NewAnalyzer().Analyze(ir)
	require.NoError(t, err)

	assert.Equal(t, "json", result.Format)
	assert.Equal(t, models.Map, result.RootKind)
	assert.Equal(t, map[string]bool{
		"primitive":    false,
		"map":          true,
		"list":         false,
		"data":         true,
		"serializable": true,
	}, checksOf(result))
	assert.Nil(t, result.Guard)
	assert.False(t, result.Deep)
	assert.Empty(t, result.Issues)
	assert.True(t, result.Valid())
}

func TestAnalyze_ChecksInReportOrder(t *testing.T) {
	ir, err := parser.ParseString(`[1, 2]`, config.FormatAuto)
	require.NoError(t, err)

	result, err := NewAnalyzer().Analyze(ir)
	require.NoError(t, err)

	names := make([]string, 0, len(result.Checks))
	for _, c := range result.Checks {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"primitive", "map", "list", "data", "serializable"}, names)
	assert.Equal(t, models.List, result.RootKind)
}

func TestAnalyze_PrimitiveAndNullRoots(t *testing.T) {
	ir, err := parser.ParseString(`"text"`, config.FormatAuto)
	require.NoError(t, err)
	result, err := NewAnalyzer().Analyze(ir)
	require.NoError(t, err)
	assert.Equal(t, models.Primitive, result.RootKind)
	assert.True(t, checksOf(result)["data"])

	ir, err = parser.ParseString(`null`, config.FormatJSON)
	require.NoError(t, err)
	result, err = NewAnalyzer().Analyze(ir)
	require.NoError(t, err)
	assert.Equal(t, models.Invalid, result.RootKind)
	assert.False(t, checksOf(result)["data"])
	assert.False(t, result.Valid())
}

func TestAnalyze_ShallowByDefault(t *testing.T) {
	// nested null is not data, but only the root is checked
	ir, err := parser.ParseString(`{"a": [1, null]}`, config.FormatJSON)
	require.NoError(t, err)

	result, err := NewAnalyzer().Analyze(ir)
	require.NoError(t, err)
	assert.True(t, checksOf(result)["data"])
	assert.Empty(t, result.Issues)
	assert.Zero(t, result.Nodes)
}

func TestAnalyze_DeepFindsNestedIssues(t *testing.T) {
	ir, err := parser.ParseString(`{"users": [{"name": null}, {"name": "b"}], "meta": {"tags": [null]}}`, config.FormatJSON)
	require.NoError(t, err)

	cfg := config.NewConfig()
	cfg.Inspect.Deep = true
	result, err := NewAnalyzerWithConfig(cfg).Analyze(ir)
	require.NoError(t, err)

	assert.True(t, checksOf(result)["data"])
	assert.True(t, result.Deep)
	assert.Equal(t, 9, result.Nodes)
	assert.Equal(t, []models.Issue{
		{Path: "meta/tags/0", Type: "<nil>", Reason: "null value"},
		{Path: "users/0/name", Type: "<nil>", Reason: "null value"},
	}, result.Issues)
	assert.False(t, result.Valid())
}

func TestAnalyze_DeepUsesPathSeparator(t *testing.T) {
	ir, err := parser.ParseString("spec:\n  ports:\n    - 1: http\n", config.FormatYAML)
	require.NoError(t, err)

	cfg := config.NewConfig()
	cfg.Inspect.Deep = true
	cfg.Inspect.PathSeparator = "."
	result, err := NewAnalyzerWithConfig(cfg).Analyze(ir)
	require.NoError(t, err)

	require.Len(t, result.Issues, 1)
	assert.Equal(t, "spec.ports.0", result.Issues[0].Path)
	assert.Equal(t, "map with non-text keys", result.Issues[0].Reason)
}

func TestAnalyze_DeepEmptyKey(t *testing.T) {
	ir, err := parser.ParseString(`{"a": {"": null}}`, config.FormatJSON)
	require.NoError(t, err)

	cfg := config.NewConfig()
	cfg.Inspect.Deep = true
	result, err := NewAnalyzerWithConfig(cfg).Analyze(ir)
	require.NoError(t, err)

	require.Len(t, result.Issues, 1)
	assert.Equal(t, `a/""`, result.Issues[0].Path)
}

func TestAnalyze_DeepRootIssue(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Inspect.Deep = true
	result, err := NewAnalyzerWithConfig(cfg).Analyze(models.IntermediateRepresentation{Root: nil, Format: "json"})
	require.NoError(t, err)

	require.Len(t, result.Issues, 1)
	assert.Equal(t, "$", result.Issues[0].Path)
}

func TestAnalyze_Guard(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		guard    string
		expected bool
	}{
		{"numbers", `[1, 2, 3]`, "list_of_number", true},
		{"mixed numbers", `[1, "2", 3]`, "list_of_number", false},
		{"empty list", `[]`, "list_of_number", true},
		{"camel case name", `[{}, {"a": 1}]`, "listOfMap", true},
		{"list of lists", `[[1], [], [2, 3]]`, "list-of-list-of-number", true},
		{"not a list", `{"a": 1}`, "list_of_data", false},
		{"plain guard", `{"a": 1}`, "serializable", true},
		{"string", `"x"`, "string", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ir, err := parser.ParseString(tt.input, config.FormatJSON)
			require.NoError(t, err)

			cfg := config.NewConfig()
			cfg.Inspect.Guard = tt.guard
			result, err := NewAnalyzerWithConfig(cfg).Analyze(ir)
			require.NoError(t, err)

			require.NotNil(t, result.Guard)
			assert.Equal(t, config.NormalizeGuardName(tt.guard), result.Guard.Name)
			assert.Equal(t, tt.expected, result.Guard.Passed)
		})
	}
}

func TestAnalyze_UnknownGuard(t *testing.T) {
	ir, err := parser.ParseString(`[]`, config.FormatJSON)
	require.NoError(t, err)

	cfg := config.NewConfig()
	cfg.Inspect.Guard = "list_of_widgets"
	_, err = NewAnalyzerWithConfig(cfg).Analyze(ir)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrUnknownGuard)
	assert.ErrorIs(t, err, &errors.AppError{Type: errors.ErrorTypeClassification})
}

func TestAnalyze_FileType(t *testing.T) {
	ir, err := parser.ParseString(`"# Title"`, config.FormatJSON)
	require.NoError(t, err)

	cfg := config.NewConfig()
	cfg.Inspect.FileType = filetype.Markdown
	result, err := NewAnalyzerWithConfig(cfg).Analyze(ir)
	require.NoError(t, err)
	assert.Equal(t, filetype.Markdown, result.FileType)
}

func TestAnalyze_DebugLogging(t *testing.T) {
	ir, err := parser.ParseString(`[1]`, config.FormatJSON)
	require.NoError(t, err)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	cfg := config.NewConfig()
	cfg.Inspect.Guard = "list_of_number"
	_, err = NewAnalyzerWithConfig(cfg).WithLogger(logger).Analyze(ir)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "classified root")
	assert.Contains(t, buf.String(), "kind=list")
	assert.Contains(t, buf.String(), "guard=list_of_number")
}

func TestLookupGuard(t *testing.T) {
	for _, name := range GuardNames() {
		g, err := LookupGuard(name)
		require.NoError(t, err, name)
		assert.NotNil(t, g)

		_, err = LookupGuard("list_of_" + name)
		assert.NoError(t, err, name)
	}

	_, err := LookupGuard("list_of_")
	assert.ErrorIs(t, err, errors.ErrUnknownGuard)

	_, err = LookupGuard("widget")
	assert.ErrorIs(t, err, errors.ErrUnknownGuard)
}
