package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/seb-luk/olo-platform/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(stdin string) (*Context, *bytes.Buffer) {
	var out bytes.Buffer
	return &Context{
		Logger: slog.New(slog.DiscardHandler),
		Stdin:  strings.NewReader(stdin),
		Stdout: &out,
	}, &out
}

// writeTemp writes content to name inside a fresh temp dir and returns its path
func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestClassify_FromStdin(t *testing.T) {
	ctx, out := testContext(`{"name": "John", "age": 30, "active": true}`)

	cmd := &ClassifyCmd{}
	require.NoError(t, cmd.Run(ctx))

	assert.Contains(t, out.String(), "format           json\n")
	assert.Contains(t, out.String(), "kind             map\n")
	assert.Contains(t, out.String(), "result: valid\n")
}

func TestClassify_FromFileWithGuard(t *testing.T) {
	input := writeTemp(t, "values.yaml", "- 1\n- 2.5\n- 3\n")
	ctx, out := testContext("")

	cmd := &ClassifyCmd{Input: input, Guard: "listOfNumber", OutputFormat: "json"}
	require.NoError(t, cmd.Run(ctx))

	var report map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	assert.Equal(t, "yaml", report["format"])
	assert.Equal(t, "list", report["root_kind"])
	assert.Equal(t, map[string]any{"name": "list_of_number", "passed": true}, report["guard"])
	assert.Equal(t, true, report["valid"])
}

func TestClassify_DeepWithFileType(t *testing.T) {
	ctx, out := testContext(`{"doc": {"body": null}}`)

	cmd := &ClassifyCmd{Deep: true, Separator: ".", FileType: "markdown"}
	require.NoError(t, cmd.Run(ctx))

	assert.Contains(t, out.String(), "MarkDown (markdown)")
	assert.Contains(t, out.String(), "doc.body")
	assert.Contains(t, out.String(), "null value")
	assert.Contains(t, out.String(), "result: invalid\n")
}

func TestClassify_WithOutputFile(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "report.yaml")
	ctx, out := testContext(`[{"id": 1}]`)

	cmd := &ClassifyCmd{Output: outputPath, OutputFormat: "yaml"}
	require.NoError(t, cmd.Run(ctx))
	assert.Empty(t, out.String())

	content, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "root_kind: list")
	assert.Contains(t, string(content), "valid: true")
}

func TestClassify_ConfigFile(t *testing.T) {
	configPath := writeTemp(t, ".olotypes.yml", `
output:
  format: json
inspect:
  guard: map
`)
	ctx, out := testContext(`{"a": 1}`)

	cmd := &ClassifyCmd{Config: configPath}
	require.NoError(t, cmd.Run(ctx))

	var report map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	assert.Equal(t, map[string]any{"name": "map", "passed": true}, report["guard"])
}

func TestClassify_DebugFromConfigFile(t *testing.T) {
	configPath := writeTemp(t, ".olotypes.yml", `
dev:
  debug: true
`)
	ctx, out := testContext(`[1, 2]`)
	var stderr bytes.Buffer
	ctx.Stderr = &stderr

	cmd := &ClassifyCmd{Config: configPath}
	require.NoError(t, cmd.Run(ctx))

	assert.True(t, ctx.Debug)
	assert.Contains(t, stderr.String(), "loaded configuration")
	assert.Contains(t, stderr.String(), "classified root")
	assert.Contains(t, out.String(), "result: valid\n")
}

func TestClassify_NoDebugByDefault(t *testing.T) {
	ctx, _ := testContext(`[1, 2]`)
	var stderr bytes.Buffer
	ctx.Stderr = &stderr
	ctx.Logger = newLogger(&stderr, false)

	require.NoError(t, (&ClassifyCmd{}).Run(ctx))
	assert.False(t, ctx.Debug)
	assert.Empty(t, stderr.String())
}

func TestClassify_Errors(t *testing.T) {
	tests := []struct {
		name      string
		stdin     string
		cmd       ClassifyCmd
		errorType errors.ErrorType
		sentinel  error
	}{
		{"empty stdin", "", ClassifyCmd{}, errors.ErrorTypeInput, errors.ErrEmptyInput},
		{"invalid json", `{"a": }`, ClassifyCmd{InputFormat: "json"}, errors.ErrorTypeParsing, errors.ErrInvalidJSON},
		{"missing file", "", ClassifyCmd{Input: "/nonexistent/path/value.json"}, errors.ErrorTypeInput, errors.ErrFileNotFound},
		{"unknown guard", `[]`, ClassifyCmd{Guard: "list_of_widgets"}, errors.ErrorTypeClassification, errors.ErrUnknownGuard},
		{"unknown output format", `[]`, ClassifyCmd{OutputFormat: "xml"}, errors.ErrorTypeConfig, nil},
		{"unknown file type", `[]`, ClassifyCmd{FileType: "pdf"}, errors.ErrorTypeConfig, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := testContext(tt.stdin)
			err := tt.cmd.Run(ctx)
			require.Error(t, err)
			assert.ErrorIs(t, err, &errors.AppError{Type: tt.errorType})
			if tt.sentinel != nil {
				assert.ErrorIs(t, err, tt.sentinel)
			}
		})
	}
}

func TestClassify_WriteOutputFileError(t *testing.T) {
	ctx, _ := testContext(`1`)
	cmd := &ClassifyCmd{Output: "/nonexistent/dir/report.txt"}

	err := cmd.Run(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, &errors.AppError{Type: errors.ErrorTypeOutput})
}

func TestJoin(t *testing.T) {
	tests := []struct {
		name     string
		cmd      JoinCmd
		expected string
	}{
		{"default separator", JoinCmd{Separator: " ", Segments: []string{"olo", "rich", "text"}}, "olo rich text\n"},
		{"skips empty", JoinCmd{Separator: "-", Segments: []string{"", "a", "", "b", ""}}, "a-b\n"},
		{"no segments", JoinCmd{Separator: "/"}, "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, out := testContext("")
			require.NoError(t, tt.cmd.Run(ctx))
			assert.Equal(t, tt.expected, out.String())
		})
	}
}

func TestFormats(t *testing.T) {
	ctx, out := testContext("")
	require.NoError(t, (&FormatsCmd{Names: true}).Run(ctx))
	assert.Equal(t, "ort\norte\nhtml\nplain\nmarkdown\n", out.String())

	ctx, out = testContext("")
	require.NoError(t, (&FormatsCmd{}).Run(ctx))
	assert.Contains(t, out.String(), "html      HyperTextMarkupLanguage\n")
}

func TestCLI_ParsesCommands(t *testing.T) {
	var cli CLI
	parser, err := kong.New(&cli, kong.Name("olotypes"), kong.Vars{"version": Version}, kong.Exit(func(int) {}))
	require.NoError(t, err)

	kctx, err := parser.Parse([]string{"--debug", "join", "-s", ",", "a", "b"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(kctx.Command(), "join"))
	assert.True(t, cli.Debug)
	assert.Equal(t, ",", cli.Join.Separator)

	ctx, out := testContext("")
	require.NoError(t, kctx.Run(ctx))
	assert.Equal(t, "a,b\n", out.String())
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, false).Debug("hidden")
	assert.Empty(t, buf.String())

	newLogger(&buf, true).Debug("shown", "key", "value")
	assert.Contains(t, buf.String(), "msg=shown")
	assert.Contains(t, buf.String(), "key=value")
}
