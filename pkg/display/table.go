package display

import (
	"io"

	"github.com/pterm/pterm"

	"github.com/arthur-debert/tabexport/pkg/sink/text"
)

// Table renders grid as a boxed table; with header set, row 0 is styled
// as the table header.
func Table(w io.Writer, grid *text.Grid, header bool) error {
	if grid.Rows() == 0 {
		return nil
	}

	data := make(pterm.TableData, grid.Rows())
	for row := range data {
		data[row] = make([]string, grid.Cols())
		for col := range data[row] {
			data[row][col] = grid.Get(row, col)
		}
	}

	out, err := pterm.DefaultTable.
		WithHasHeader(header).
		WithBoxed(true).
		WithData(data).
		Srender()
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out+"\n")
	return err
}
