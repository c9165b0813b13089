// Package render writes conversion results as text tables or as structured
// documents (JSON, YAML, CBOR) for pointctl.
package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/danmuck/pointcode/internal/convert"
	"github.com/danmuck/pointcode/internal/pointcode"
	"github.com/danmuck/pointcode/internal/pointcode/schema"
	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"
)

var ErrUnknownFormat = errors.New("render: unknown output format")

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCBOR Format = "cbor"
)

func ParseFormat(raw string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(raw))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatYAML, FormatCBOR:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, raw)
	}
}

// cborMode uses Core Deterministic Encoding so equal results encode to equal
// bytes.
var cborMode cbor.EncMode

func init() {
	var err error
	cborMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("render: CBOR encoder initialization failed: " + err.Error())
	}
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func WriteValue(w io.Writer, f Format, v pointcode.Value) error {
	return write(w, f, v, func() string {
		rows := [][]string{
			{"schema", v.Schema},
			{"formatted", v.Formatted},
			{"decimal", strconv.FormatUint(v.Decimal, 10)},
			{"hex", v.Hex},
			{"octal", v.Octal()},
			{"binary", v.Binary},
		}
		for i, bits := range v.FieldBits() {
			rows = append(rows, []string{
				fmt.Sprintf("field %d", i+1),
				fmt.Sprintf("%d (%s)", v.Fields[i], bits),
			})
		}
		return grid(nil, rows)
	})
}

func WriteRepresentations(w io.Writer, f Format, rows []convert.Representation) error {
	return write(w, f, rows, func() string {
		cells := make([][]string, 0, len(rows))
		for _, r := range rows {
			cells = append(cells, []string{r.SchemaName, r.Formatted})
		}
		return grid([]string{"Standard", "Point Code"}, cells)
	})
}

func WriteBreakdown(w io.Writer, f Format, b convert.Breakdown) error {
	return write(w, f, b, func() string {
		rows := [][]string{
			{"input", b.Input + " (" + b.InputBase.String() + ")"},
			{"decimal", strconv.FormatUint(b.Decimal, 10)},
			{"binary", b.Binary},
			{"octal", b.Octal},
			{"hex", b.Hex},
		}
		if b.OutputBase != 0 {
			rows = append(rows, []string{"output (" + b.OutputBase.String() + ")", b.Output})
		}
		return grid(nil, rows)
	})
}

func WriteSchemas(w io.Writer, f Format, list []schema.Schema) error {
	infos := make([]schema.Info, 0, len(list))
	for _, s := range list {
		infos = append(infos, s.Info())
	}
	return write(w, f, infos, func() string {
		rows := make([][]string, 0, len(list))
		for _, s := range list {
			rows = append(rows, []string{
				s.ID(),
				s.Name(),
				s.Layout(),
				strconv.Itoa(s.TotalBits()),
				strings.Join(s.Aliases(), ", "),
			})
		}
		return grid([]string{"ID", "Name", "Layout", "Bits", "Aliases"}, rows)
	})
}

func write(w io.Writer, f Format, v any, text func() string) error {
	switch f {
	case FormatText, "":
		_, err := io.WriteString(w, text()+"\n")
		return err
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case FormatCBOR:
		data, err := cborMode.Marshal(v)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
	}
}

func grid(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Rows(rows...)
	if len(headers) > 0 {
		t = t.Headers(headers...)
	}
	return t.String()
}
