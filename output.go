package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/goccy/go-json"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/term"

	"github.com/wcharczuk/bitmath/pkg/bitmath"
)

// record is one output row. Input is what was given on the command line,
// Path a file the size belongs to and Detail a command specific column.
type record struct {
	Input  string
	Path   string
	Size   bitmath.Size
	Detail string
}

type jsonRecord struct {
	Input  string  `json:"input,omitempty"`
	Path   string  `json:"path,omitempty"`
	Size   string  `json:"size"`
	Value  float64 `json:"value"`
	Unit   string  `json:"unit"`
	Bytes  float64 `json:"bytes"`
	Bits   float64 `json:"bits"`
	Detail string  `json:"detail,omitempty"`
}

type printer struct {
	w      io.Writer
	output string
	width  int
}

func newPrinter(w io.Writer, output string) *printer {
	if w == nil {
		w = os.Stdout
	}
	return &printer{w: w, output: output, width: terminalWidth(w)}
}

// terminalWidth is the column count of w when it is a terminal, otherwise 0.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

// print writes records with the formatter carried by ctx.
func (p *printer) print(ctx context.Context, records []record) error {
	format := bitmath.FormatterFromContext(ctx)
	switch p.output {
	case "json":
		out := make([]jsonRecord, len(records))
		for i, r := range records {
			out[i] = jsonRecord{
				Input:  r.Input,
				Path:   r.Path,
				Size:   format.Format(r.Size),
				Value:  r.Size.Value(),
				Unit:   r.Size.Unit().String(),
				Bytes:  r.Size.Bytes(),
				Bits:   r.Size.Bits(),
				Detail: r.Detail,
			}
		}
		return p.writeJSON(out)
	case "table":
		var hasInput, hasPath, hasDetail bool
		for _, r := range records {
			hasInput = hasInput || r.Input != ""
			hasPath = hasPath || r.Path != ""
			hasDetail = hasDetail || r.Detail != ""
		}
		header := table.Row{}
		if hasInput {
			header = append(header, "Input")
		}
		header = append(header, "Size", "Bytes")
		if hasDetail {
			header = append(header, "Detail")
		}
		if hasPath {
			header = append(header, "Path")
		}
		t := p.newTable(header)
		for _, r := range records {
			row := table.Row{}
			if hasInput {
				row = append(row, r.Input)
			}
			row = append(row, format.Format(r.Size), r.Size.Bytes())
			if hasDetail {
				row = append(row, r.Detail)
			}
			if hasPath {
				row = append(row, r.Path)
			}
			t.AppendRow(row)
		}
		t.Render()
		return nil
	default:
		for _, r := range records {
			fields := []string{format.Format(r.Size)}
			if r.Detail != "" {
				fields = append(fields, r.Detail)
			}
			if r.Path != "" {
				fields = append(fields, r.Path)
			}
			if _, err := fmt.Fprintln(p.w, strings.Join(fields, "\t")); err != nil {
				return err
			}
		}
		return nil
	}
}

// printResult writes a result that is not a size, e.g. a comparison.
func (p *printer) printResult(input string, value any, display string) error {
	switch p.output {
	case "json":
		return p.writeJSON([]map[string]any{{"input": input, "result": value}})
	case "table":
		t := p.newTable(table.Row{"Input", "Result"})
		t.AppendRow(table.Row{input, display})
		t.Render()
		return nil
	default:
		_, err := fmt.Fprintln(p.w, display)
		return err
	}
}

func (p *printer) writeJSON(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %v", err)
	}
	return nil
}

func (p *printer) newTable(header table.Row) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(p.w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(header)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Bytes", Align: text.AlignRight, Transformer: bytesTransformer},
	})
	if p.width > 0 {
		t.SetAllowedRowLength(p.width)
	}
	return t
}

var bytesTransformer text.Transformer = func(v any) string {
	if f, ok := v.(float64); ok {
		return humanize.Commaf(f)
	}
	return fmt.Sprint(v)
}
