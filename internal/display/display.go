package display

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/dyike/eodhd-cli/internal/dataflows"
)

// WriteBody prints a response body. Unless raw is set, a body holding exactly
// one JSON value is re-indented with sorted keys; anything else is printed
// as received.
func WriteBody(w io.Writer, body []byte, raw bool) error {
	if !raw {
		if pretty, ok := PrettyJSON(body); ok {
			_, err := w.Write(pretty)
			return err
		}
	}

	if _, err := w.Write(body); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// PrettyJSON re-encodes body with two-space indentation and sorted object
// keys. Numbers keep their original text. The result ends in a newline.
func PrettyJSON(body []byte) ([]byte, bool) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, false
	}
	// Reject trailing data such as `{} {}` or `1 2`.
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, false
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, false
	}
	return buf.Bytes(), true
}

// ResultsDisplay writes command output and diagnostics.
type ResultsDisplay struct {
	out    io.Writer
	errOut io.Writer
	styles styles
}

// NewResultsDisplay binds the display to the output and error streams.
func NewResultsDisplay(out, errOut io.Writer) *ResultsDisplay {
	return &ResultsDisplay{
		out:    out,
		errOut: errOut,
		styles: newStyles(errOut),
	}
}

// ShowBody prints a successful response body.
func (d *ResultsDisplay) ShowBody(body []byte, raw bool) error {
	return WriteBody(d.out, body, raw)
}

// ShowError prints err as a short diagnostic on the error stream.
func (d *ResultsDisplay) ShowError(err error) {
	if err == nil {
		return
	}
	label := d.styles.errorLabel.Render("Error:")

	var te *dataflows.TransportError
	var ce *dataflows.ConfigError
	var ue *dataflows.UsageError

	switch {
	case errors.As(err, &te):
		fmt.Fprintf(d.errOut, "%s %s\n", label, te.Error())
		if te.URL != "" {
			fmt.Fprintf(d.errOut, "%s %s\n", d.styles.fieldLabel.Render("URL:"), te.URL)
		}
		if te.Body != "" {
			fmt.Fprintf(d.errOut, "%s %s\n", d.styles.fieldLabel.Render("Response:"), te.Body)
		}
	case errors.As(err, &ce):
		fmt.Fprintf(d.errOut, "%s %s\n", label, ce.Error())
		fmt.Fprintln(d.errOut, d.styles.hint.Render("Get your API token at https://eodhd.com/"))
	case errors.As(err, &ue):
		fmt.Fprintf(d.errOut, "%s %s\n", label, ue.Error())
		fmt.Fprintln(d.errOut, d.styles.hint.Render("Run 'eodhd --help' for usage."))
	default:
		fmt.Fprintf(d.errOut, "%s %v\n", label, err)
	}
}
