package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/vidbrief/internal/doctree"
	"github.com/dgallion1/vidbrief/internal/render"
	"github.com/dgallion1/vidbrief/internal/report"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by --format.
const (
	FormatTerminal = "terminal"
	FormatHTML     = "html"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
)

// Formats lists every --format value.
var Formats = []string{FormatTerminal, FormatHTML, FormatMarkdown, FormatJSON, FormatYAML}

func checkFormat(format string) error {
	for _, f := range Formats {
		if f == format {
			return nil
		}
	}
	return fmt.Errorf("unknown format %q (want one of %s)", format, strings.Join(Formats, ", "))
}

// writeDocument writes doc to w in the requested format.
func writeDocument(w io.Writer, doc *doctree.Document, format string, width int) error {
	switch format {
	case FormatTerminal:
		_, err := fmt.Fprintln(w, render.Terminal(doc, width))
		return err
	case FormatHTML:
		return render.WriteHTML(w, doc)
	case FormatMarkdown:
		_, err := fmt.Fprintln(w, render.Markdown(doc))
		return err
	}
	return writeData(w, doc, format)
}

// writeLayout writes a report layout to w. Markdown has no report form.
func writeLayout(w io.Writer, l report.Layout, format string, width int) error {
	switch format {
	case FormatTerminal:
		_, err := fmt.Fprintln(w, render.TerminalReport(l, width))
		return err
	case FormatHTML:
		out, err := render.ReportHTML(l)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, out)
		return err
	case FormatMarkdown:
		return fmt.Errorf("markdown output is not available for entity reports")
	}
	return writeData(w, l, format)
}

func writeData(w io.Writer, v any, format string) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatYAML:
		data, err = yaml.Marshal(v)
	default:
		data, err = json.MarshalIndent(v, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = w.Write(data)
	return err
}
