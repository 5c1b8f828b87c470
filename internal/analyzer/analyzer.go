package analyzer

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/seb-luk/olo-platform/internal/config"
	"github.com/seb-luk/olo-platform/internal/errors"
	"github.com/seb-luk/olo-platform/internal/guards"
	"github.com/seb-luk/olo-platform/internal/models"
	"github.com/seb-luk/olo-platform/internal/strs"
)

// listPrefix lifts the guard that follows it with guards.ListOf.
const listPrefix = "list_of_"

// namedGuards are the guards selectable by name from config and flags.
var namedGuards = map[string]guards.Guard{
	"data":         guards.IsJsData,
	"map":          guards.IsJsMap,
	"list":         guards.IsJsList,
	"primitive":    guards.IsJsProperty,
	"string":       guards.IsString,
	"number":       guards.IsNumber,
	"bool":         guards.IsBool,
	"date":         guards.IsDate,
	"serializable": guards.IsSerializable,
}

// rootChecks run against every root value, in report order.
var rootChecks = []string{"primitive", "map", "list", "data", "serializable"}

// GuardNames returns the base guard names in report order followed by the
// item-only guards.
func GuardNames() []string {
	return append(append([]string{}, rootChecks...), "string", "number", "bool", "date")
}

// LookupGuard resolves a guard by name. Names are normalized to snake_case and
// each leading "list_of_" wraps the rest in guards.ListOf, so "list_of_map"
// and "listOfListOfNumber" both resolve.
func LookupGuard(name string) (guards.Guard, error) {
	key := config.NormalizeGuardName(name)
	if rest, ok := strings.CutPrefix(key, listPrefix); ok {
		item, err := LookupGuard(rest)
		if err != nil {
			return nil, err
		}
		return guards.ListOf(item), nil
	}
	if g, ok := namedGuards[key]; ok {
		return g, nil
	}
	return nil, fmt.Errorf("%w '%s'", errors.ErrUnknownGuard, name)
}

// Analyzer classifies parsed values
type Analyzer struct {
	// config holds configuration settings for analysis
	config *config.Config
	logger *slog.Logger
}

// NewAnalyzer creates a new Analyzer instance.
func NewAnalyzer() *Analyzer {
	return NewAnalyzerWithConfig(config.NewConfig())
}

// NewAnalyzerWithConfig creates a new Analyzer instance with custom configuration.
func NewAnalyzerWithConfig(cfg *config.Config) *Analyzer {
	return &Analyzer{
		config: cfg,
		logger: slog.New(slog.DiscardHandler),
	}
}

// WithLogger sets the logger debug output goes to.
func (a *Analyzer) WithLogger(logger *slog.Logger) *Analyzer {
	if logger != nil {
		a.logger = logger
	}
	return a
}

// Analyze classifies the root of ir and, when configured, applies the named
// guard and walks the whole value looking for nested values that are not data.
func (a *Analyzer) Analyze(ir models.IntermediateRepresentation) (models.AnalysisResult, error) {
	result := models.AnalysisResult{
		Format:   ir.Format,
		RootKind: guards.KindOf(ir.Root),
		Checks:   make([]models.Check, 0, len(rootChecks)),
		FileType: a.config.Inspect.FileType,
		Deep:     a.config.Inspect.Deep,
	}

	for _, name := range rootChecks {
		passed := namedGuards[name](ir.Root)
		result.Checks = append(result.Checks, models.Check{Name: name, Passed: passed})
	}
	a.logger.Debug("classified root", "format", ir.Format, "kind", result.RootKind)

	if name := a.config.Inspect.Guard; name != "" {
		guard, err := LookupGuard(name)
		if err != nil {
			return models.AnalysisResult{}, errors.NewClassificationError(
				fmt.Sprintf("unknown guard '%s'", name), err,
			)
		}
		result.Guard = &models.Check{
			Name:   config.NormalizeGuardName(name),
			Passed: guard(ir.Root),
		}
		a.logger.Debug("applied guard", "guard", result.Guard.Name, "passed", result.Guard.Passed)
	}

	if a.config.Inspect.Deep {
		result.Issues, result.Nodes = a.findIssues(ir.Root)
		a.logger.Debug("walked value", "nodes", result.Nodes, "issues", len(result.Issues))
	}

	return result, nil
}

// findIssues walks root and returns every nested value that is not data.
func (a *Analyzer) findIssues(root models.JSONValue) ([]models.Issue, int) {
	issues := make([]models.Issue, 0)
	nodes := 0

	guards.Walk(root, strs.NewPath(a.config.Separator()), func(n guards.Node) bool {
		nodes++
		switch {
		case n.Cycle:
			issues = append(issues, models.Issue{
				Path:   displayPath(n.Path),
				Type:   fmt.Sprintf("%T", n.Value),
				Reason: "cyclic reference",
			})
		case n.Kind == models.Invalid:
			issues = append(issues, models.Issue{
				Path:   displayPath(n.Path),
				Type:   fmt.Sprintf("%T", n.Value),
				Reason: guards.Reason(n.Value),
			})
		}
		return true
	})

	return issues, nodes
}

// displayPath renders the root as "$" so it is visible in reports.
func displayPath(p strs.Path) string {
	if p.IsRoot() {
		return "$"
	}
	return p.String()
}
