package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"addrscan/internal/config"
)

// render writes v as indented JSON, or the text view otherwise.
func render(w io.Writer, format string, v interface{}, text func() string) error {
	if format == config.OutputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	_, err := fmt.Fprintln(w, text())
	return err
}
