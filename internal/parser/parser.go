package parser

import (
	"bytes"
	"encoding/json"
	stderrors "errors" // Standard errors package
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/seb-luk/olo-platform/internal/config"
	"github.com/seb-luk/olo-platform/internal/errors" // Custom errors package
	"github.com/seb-luk/olo-platform/internal/models"
	"gopkg.in/yaml.v3"
)

// DetectFormat guesses whether data is JSON or YAML. Input whose first
// non-space byte opens a JSON object, array or string is JSON; anything else
// is YAML.
func DetectFormat(data []byte) string {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return config.FormatJSON
	}
	switch trimmed[0] {
	case '{', '[', '"':
		return config.FormatJSON
	default:
		return config.FormatYAML
	}
}

// Parse reads a single JSON value or YAML document from reader into an
// IntermediateRepresentation. format is one of auto, json or yaml.
func Parse(reader io.Reader, format string) (models.IntermediateRepresentation, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return models.IntermediateRepresentation{}, errors.NewInputError("failed to read input", err)
	}
	return ParseBytes(data, format)
}

// ParseBytes is Parse over an in-memory buffer.
func ParseBytes(data []byte, format string) (models.IntermediateRepresentation, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return models.IntermediateRepresentation{}, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
	}

	if format == "" || format == config.FormatAuto {
		format = DetectFormat(data)
	}

	var root models.JSONValue
	var err error
	switch format {
	case config.FormatJSON:
		root, err = decodeJSON(data)
	case config.FormatYAML:
		root, err = decodeYAML(data)
	default:
		return models.IntermediateRepresentation{}, errors.NewInputError(
			fmt.Sprintf("unknown input format '%s'", format),
			errors.ErrUnknownFormat,
		)
	}
	if err != nil {
		return models.IntermediateRepresentation{}, err
	}

	root = normalizeValue(root)
	ir := models.IntermediateRepresentation{
		Root:   root,
		Format: format,
	}
	_, ir.RootIsArray = root.(models.JSONArray)

	return ir, nil
}

func decodeJSON(data []byte) (models.JSONValue, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber() // Ensure numbers are read as json.Number

	var rootValue models.JSONValue
	if err := decoder.Decode(&rootValue); err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
		}
		var syntaxError *json.SyntaxError
		if stderrors.As(err, &syntaxError) {
			return nil, errors.NewParsingError(
				fmt.Sprintf("JSON syntax error at offset %d", syntaxError.Offset),
				errors.ErrInvalidJSON,
			)
		}
		if stderrors.Is(err, io.ErrUnexpectedEOF) {
			return nil, errors.NewParsingError("unexpected end of JSON input", errors.ErrInvalidJSON)
		}
		return nil, errors.NewParsingError("failed to decode JSON", err)
	}

	// Only whitespace may follow the first value.
	if len(bytes.TrimSpace(data[decoder.InputOffset():])) > 0 {
		var trailingValue interface{}
		if err := decoder.Decode(&trailingValue); err != nil {
			return nil, errors.NewParsingError("invalid trailing data after first JSON value", errors.ErrInvalidJSON)
		}
		return nil, errors.NewParsingError("multiple JSON values found at the root", errors.ErrMultipleValues)
	}

	return rootValue, nil
}

func decodeYAML(data []byte) (models.JSONValue, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))

	var rootValue models.JSONValue
	if err := decoder.Decode(&rootValue); err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
		}
		return nil, errors.NewParsingError(
			fmt.Sprintf("YAML syntax error: %v", err),
			errors.ErrInvalidYAML,
		)
	}

	var next interface{}
	if err := decoder.Decode(&next); err == nil {
		return nil, errors.NewParsingError("multiple YAML documents found", errors.ErrMultipleValues)
	} else if !stderrors.Is(err, io.EOF) {
		return nil, errors.NewParsingError("invalid trailing YAML document", errors.ErrInvalidYAML)
	}

	return rootValue, nil
}

// normalizeValue converts decoded maps and slices into model types. Maps with
// non-string keys are kept as they are so the map classifier can reject them.
func normalizeValue(val models.JSONValue) models.JSONValue {
	switch v := val.(type) {
	case map[string]interface{}:
		obj := make(models.JSONObject, len(v))
		for key, value := range v {
			obj[key] = normalizeValue(value)
		}
		return obj
	case map[interface{}]interface{}:
		for key, value := range v {
			v[key] = normalizeValue(value)
		}
		return v
	case []interface{}:
		arr := make(models.JSONArray, len(v))
		for i, value := range v {
			arr[i] = normalizeValue(value)
		}
		return arr
	default:
		return v // Primitives are returned as is
	}
}

// ParseString parses JSON or YAML from a string
func ParseString(input string, format string) (models.IntermediateRepresentation, error) {
	if strings.TrimSpace(input) == "" {
		return models.IntermediateRepresentation{}, errors.NewInputError("input string is empty", errors.ErrEmptyInput)
	}
	return ParseBytes([]byte(input), format)
}

// ParseFile parses JSON or YAML from a file path. With format auto, a .yml or
// .yaml extension selects YAML and .json selects JSON before content sniffing.
func ParseFile(filePath string, format string) (models.IntermediateRepresentation, error) {
	if strings.TrimSpace(filePath) == "" {
		return models.IntermediateRepresentation{}, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return models.IntermediateRepresentation{}, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return models.IntermediateRepresentation{}, errors.NewInputError(
			fmt.Sprintf("failed to open file '%s'", filePath),
			err,
		)
	}
	defer func() {
		if err := file.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing file: %v\n", err)
		}
	}()

	stat, err := file.Stat()
	if err != nil {
		return models.IntermediateRepresentation{}, errors.NewInputError(
			fmt.Sprintf("failed to get file stats for '%s'", filePath),
			err,
		)
	}
	if stat.Size() == 0 {
		return models.IntermediateRepresentation{}, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}

	if format == "" || format == config.FormatAuto {
		format = formatFromExtension(filePath)
	}

	return Parse(file, format)
}

func formatFromExtension(filePath string) string {
	lower := strings.ToLower(filePath)
	switch {
	case strings.HasSuffix(lower, ".yml"), strings.HasSuffix(lower, ".yaml"):
		return config.FormatYAML
	case strings.HasSuffix(lower, ".json"):
		return config.FormatJSON
	default:
		return config.FormatAuto
	}
}
