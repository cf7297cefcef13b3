// Package output renders list-command results as tables or JSON.
package output

import (
	"encoding/json"
	"io"

	"github.com/olekukonko/tablewriter"
)

// Table renders headers and rows as an aligned text table.
func Table(w io.Writer, headers []string, rows [][]string) error {
	table := tablewriter.NewTable(w)
	table.Header(headers)
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}

// JSON writes v as indented JSON.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
