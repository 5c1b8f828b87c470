package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/seb-luk/olo-platform/internal/config"
	"github.com/seb-luk/olo-platform/internal/errors"
	"github.com/seb-luk/olo-platform/internal/filetype"
	"github.com/seb-luk/olo-platform/internal/models"
	"gopkg.in/yaml.v3"
)

// Formatter renders analysis results for people or machines
type Formatter struct{}

// NewFormatter creates a new Formatter instance
func NewFormatter() *Formatter {
	return &Formatter{}
}

// Format renders result as text, json or yaml
func (f *Formatter) Format(result models.AnalysisResult, format string) (string, error) {
	switch format {
	case config.FormatText, "":
		return f.formatText(result), nil
	case config.FormatJSON:
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return "", errors.NewFormatError("failed to encode JSON report", err)
		}
		return string(data) + "\n", nil
	case config.FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(result); err != nil {
			return "", errors.NewFormatError("failed to encode YAML report", err)
		}
		if err := enc.Close(); err != nil {
			return "", errors.NewFormatError("failed to encode YAML report", err)
		}
		return buf.String(), nil
	default:
		return "", errors.NewFormatError(
			fmt.Sprintf("unknown output format '%s'", format),
			errors.ErrUnknownFormat,
		)
	}
}

// formatText lays the result out as aligned key/value rows
func (f *Formatter) formatText(result models.AnalysisResult) string {
	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "format\t%s\n", result.Format)
	fmt.Fprintf(tw, "kind\t%s\n", result.RootKind)
	if result.FileType != "" {
		fmt.Fprintf(tw, "file type\t%s (%s)\n", result.FileType.Label(), result.FileType.Name())
	}
	for _, c := range result.Checks {
		fmt.Fprintf(tw, "is %s\t%s\n", c.Name, yesNo(c.Passed))
	}
	if result.Guard != nil {
		fmt.Fprintf(tw, "guard %s\t%s\n", result.Guard.Name, yesNo(result.Guard.Passed))
	}
	_ = tw.Flush()

	if result.Deep {
		fmt.Fprintf(&buf, "\n%d nodes, %d issues\n", result.Nodes, len(result.Issues))
		if len(result.Issues) > 0 {
			tw = tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
			for _, issue := range result.Issues {
				fmt.Fprintf(tw, "  %s\t%s\t%s\n", issue.Path, issue.Type, issue.Reason)
			}
			_ = tw.Flush()
		}
	}

	verdict := "valid"
	if !result.Valid() {
		verdict = "invalid"
	}
	fmt.Fprintf(&buf, "\nresult: %s\n", verdict)

	return buf.String()
}

// FormatFileTypes renders the file type enumeration as a name/label table
func (f *Formatter) FormatFileTypes(types []filetype.FileType) string {
	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tLABEL")
	for _, ft := range types {
		fmt.Fprintf(tw, "%s\t%s\n", ft.Name(), ft.Label())
	}
	_ = tw.Flush()
	return buf.String()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
