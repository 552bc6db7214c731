package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/invopop/jsonschema"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/papapumpkin/bazi/internal/chart"
)

// ErrUnknownFormat is returned by Write for a format it cannot produce.
var ErrUnknownFormat = errors.New("unknown output format")

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatTOML = "toml"
	FormatYAML = "yaml"
)

// JSON encodes the chart result as indented JSON.
func JSON(res *chart.Result, lang Lang) ([]byte, error) {
	data, err := json.MarshalIndent(NewView(res, lang), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("render: json: %w", err)
	}
	return append(data, '\n'), nil
}

// TOML encodes the chart result as a TOML document.
func TOML(res *chart.Result, lang Lang) ([]byte, error) {
	data, err := toml.Marshal(NewView(res, lang))
	if err != nil {
		return nil, fmt.Errorf("render: toml: %w", err)
	}
	return data, nil
}

// YAML encodes the chart result as a YAML document.
func YAML(res *chart.Result, lang Lang) ([]byte, error) {
	data, err := yaml.Marshal(NewView(res, lang))
	if err != nil {
		return nil, fmt.Errorf("render: yaml: %w", err)
	}
	return data, nil
}

// Write renders res to w in the given format.
func Write(w io.Writer, format string, res *chart.Result, lang Lang) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatText, "":
		data = []byte(Text(res, lang))
	case FormatJSON:
		data, err = JSON(res, lang)
	case FormatTOML:
		data, err = TOML(res, lang)
	case FormatYAML:
		data, err = YAML(res, lang)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// WriteLuck renders only the luck timeline of res. It returns an error if
// res was built without one.
func WriteLuck(w io.Writer, format string, res *chart.Result, lang Lang) error {
	if res.Luck == nil {
		return errors.New("render: chart has no luck timeline")
	}
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatText, "":
		data = []byte(LuckText(*res.Luck, lang))
	case FormatJSON:
		data, err = json.MarshalIndent(NewView(res, lang).Luck, "", "  ")
		data = append(data, '\n')
	case FormatTOML:
		data, err = toml.Marshal(NewView(res, lang).Luck)
	case FormatYAML:
		data, err = yaml.Marshal(NewView(res, lang).Luck)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return fmt.Errorf("render: luck: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// Schema returns the JSON Schema describing JSON output.
func Schema() ([]byte, error) {
	r := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	s := r.Reflect(&View{})
	s.Title = "bazi chart"
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("render: schema: %w", err)
	}
	return append(data, '\n'), nil
}
