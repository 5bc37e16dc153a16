package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	domain "github.com/donaldgifford/groceries/pkg/types"
)

// lineWriter wraps an io.Writer with error tracking.
type lineWriter struct {
	w   io.Writer
	err error
}

func (lw *lineWriter) println(s string) {
	if lw.err != nil {
		return
	}
	_, lw.err = fmt.Fprintln(lw.w, s)
}

func printItemNames(w io.Writer, items []domain.Item) error {
	lw := &lineWriter{w: w}
	for i := range items {
		lw.println(items[i].Name)
	}
	return lw.err
}

func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
