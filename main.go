package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/seb-luk/olo-platform/internal/analyzer"
	"github.com/seb-luk/olo-platform/internal/config"
	"github.com/seb-luk/olo-platform/internal/errors"
	"github.com/seb-luk/olo-platform/internal/filetype"
	"github.com/seb-luk/olo-platform/internal/formatter"
	"github.com/seb-luk/olo-platform/internal/models"
	"github.com/seb-luk/olo-platform/internal/parser"
	"github.com/seb-luk/olo-platform/internal/strs"
)

// Version information
const (
	Version = "0.1.0"
)

// CLI defines the command-line interface
type CLI struct {
	Debug   bool             `help:"Enable debug logging." short:"d"`
	Version kong.VersionFlag `help:"Show version information." short:"v"`

	Classify ClassifyCmd `cmd:"" help:"Classify a JSON or YAML value with the runtime type guards."`
	Join     JoinCmd     `cmd:"" help:"Join strings with a separator, skipping empty segments."`
	Formats  FormatsCmd  `cmd:"" help:"List the document file types."`
}

// Context holds the runtime context passed to every command
type Context struct {
	Debug  bool
	Logger *slog.Logger
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// enableDebug switches the logger to debug level once, when debug is first
// turned on by the config file rather than the command line.
func (c *Context) enableDebug() {
	if c.Debug {
		return
	}
	c.Debug = true
	w := c.Stderr
	if w == nil {
		w = os.Stderr
	}
	c.Logger = newLogger(w, true)
}

// ClassifyCmd reads one value and reports how the guards classify it
type ClassifyCmd struct {
	Input        string `help:"Path to input JSON or YAML file. If not specified, reads from stdin." short:"i" type:"path"`
	Output       string `help:"Path to output report file. If not specified, writes to stdout." short:"o" type:"path"`
	Config       string `help:"Path to config file. Defaults to the nearest .olotypes.yml." short:"c" type:"path"`
	InputFormat  string `help:"Input format (auto, json, yaml)." name:"input-format"`
	OutputFormat string `help:"Report format (text, json, yaml)." name:"output-format" short:"f"`
	Deep         bool   `help:"Walk the whole value and report nested values that are not data."`
	Guard        string `help:"Guard to apply to the root, e.g. map or list_of_number." short:"g"`
	FileType     string `help:"File type the value is declared as (ort, orte, html, plain, markdown)." name:"file-type" short:"t"`
	Separator    string `help:"Separator used for paths in deep reports."`
}

// Run executes the classify command
func (c *ClassifyCmd) Run(ctx *Context) error {
	configPath := c.Config
	if configPath == "" {
		configPath = config.FindConfigFile()
	}
	cfg, err := config.LoadConfigWithCLI(configPath, config.CLIOverrides{
		InputFormat:   c.InputFormat,
		OutputFormat:  c.OutputFormat,
		Deep:          c.Deep,
		PathSeparator: c.Separator,
		Guard:         c.Guard,
		FileType:      c.FileType,
		Debug:         ctx.Debug,
	})
	if err != nil {
		return errors.NewConfigError("failed to load configuration", err)
	}
	if cfg.Dev.Debug {
		ctx.enableDebug()
	}
	ctx.Logger.Debug("loaded configuration", "path", configPath, "input", cfg.Input.Format, "output", cfg.Output.Format)

	ir, err := c.parseInput(ctx, cfg.Input.Format)
	if err != nil {
		return err
	}

	result, err := analyzer.NewAnalyzerWithConfig(cfg).WithLogger(ctx.Logger).Analyze(ir)
	if err != nil {
		return err
	}

	report, err := formatter.NewFormatter().Format(result, cfg.Output.Format)
	if err != nil {
		return err
	}

	return c.writeOutput(ctx, report)
}

// parseInput reads the value from file or stdin
func (c *ClassifyCmd) parseInput(ctx *Context, format string) (models.IntermediateRepresentation, error) {
	if c.Input != "" {
		return parser.ParseFile(c.Input, format)
	}

	if f, ok := ctx.Stdin.(*os.File); ok {
		stdinInfo, err := f.Stat()
		if err != nil {
			return models.IntermediateRepresentation{}, errors.NewInputError("failed to access stdin", err)
		}
		// Terminal is interactive (not piped)
		if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
			return models.IntermediateRepresentation{}, errors.NewInputError("no input provided", errors.ErrNoInput)
		}
	}

	data, err := io.ReadAll(ctx.Stdin)
	if err != nil {
		return models.IntermediateRepresentation{}, errors.NewInputError("failed to read from stdin", err)
	}
	if len(data) == 0 {
		return models.IntermediateRepresentation{}, errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}

	return parser.ParseBytes(data, format)
}

// writeOutput writes the report to file or stdout
func (c *ClassifyCmd) writeOutput(ctx *Context, report string) error {
	if c.Output != "" {
		err := os.WriteFile(c.Output, []byte(report), 0644)
		if err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", c.Output), err)
		}
		ctx.Logger.Debug("wrote report", "path", c.Output)
		return nil
	}

	if _, err := io.WriteString(ctx.Stdout, report); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// JoinCmd prints its arguments joined into one string
type JoinCmd struct {
	Separator string   `help:"Separator placed between non-empty segments." short:"s" default:" "`
	Segments  []string `arg:"" optional:"" sep:"none" help:"Segments to join."`
}

// Run executes the join command
func (j *JoinCmd) Run(ctx *Context) error {
	ctx.Logger.Debug("joining segments", "count", len(j.Segments), "separator", j.Separator)
	if _, err := fmt.Fprintln(ctx.Stdout, strs.Join(j.Segments, j.Separator)); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// FormatsCmd lists every file type with its name and label
type FormatsCmd struct {
	Names bool `help:"Print only the short names, one per line."`
}

// Run executes the formats command
func (f *FormatsCmd) Run(ctx *Context) error {
	var out string
	if f.Names {
		names := make([]string, 0, len(filetype.All()))
		for _, ft := range filetype.All() {
			names = append(names, ft.Name())
		}
		out = strings.Join(names, "\n") + "\n"
	} else {
		out = formatter.NewFormatter().FormatFileTypes(filetype.All())
	}
	if _, err := io.WriteString(ctx.Stdout, out); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// newLogger returns a text logger on w, at debug level when debug is set
func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("olotypes"),
		kong.Description("Runtime type guards for JSON and YAML data"),
		kong.UsageOnError(),
		kong.Vars{"version": Version},
	)

	err := ctx.Run(&Context{
		Debug:  cli.Debug,
		Logger: newLogger(os.Stderr, cli.Debug),
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	})
	if err != nil {
		// Use our custom error handling to provide user-friendly error messages
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: olotypes --help\n")
		os.Exit(1)
	}
}
