package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// stdoutIsTTY reports whether stdout is an interactive terminal. Table
// headers are suppressed when piping so output stays script-friendly.
func stdoutIsTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}

// printTable writes aligned columns to the given writer. headers and
// each row must have the same length. Headers are only printed for
// interactive terminals.
func printTable(w io.Writer, headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}

	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	if stdoutIsTTY() {
		printRow(w, headers, widths)
	}

	for _, row := range rows {
		printRow(w, row, widths)
	}
}

// printRow writes one space-padded row.
func printRow(w io.Writer, cells []string, widths []int) {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		parts[i] = fmt.Sprintf("%-*s", widths[i], cell)
	}

	fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
}

// cellString renders a record field value for table output.
func cellString(v any) string {
	if v == nil {
		return ""
	}

	switch t := v.(type) {
	case float64:
		// Render integral numbers without a trailing ".000000".
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}

		return fmt.Sprintf("%g", t)
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}
