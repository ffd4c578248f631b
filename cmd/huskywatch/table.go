package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
)

// stateTable accumulates one persisted-state listing and renders it either as
// a rounded table (interactive terminals) or as tab-separated lines (pipes
// and --plain), so scripted callers get parseable output.
type stateTable struct {
	headers    []string
	rightAlign map[int]bool
	rows       [][]string
}

func newStateTable(headers ...string) *stateTable {
	return &stateTable{headers: headers, rightAlign: map[int]bool{}}
}

func (t *stateTable) alignRight(columns ...int) *stateTable {
	for _, col := range columns {
		t.rightAlign[col] = true
	}
	return t
}

func (t *stateTable) addRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *stateTable) writeTo(out io.Writer, pretty bool) {
	if !pretty {
		for _, row := range t.rows {
			fmt.Fprintln(out, strings.Join(row, "\t"))
		}
		return
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(t.headers))
	for i, h := range t.headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range t.rows {
		cells := make(table.Row, len(t.headers))
		for i := range t.headers {
			if i < len(row) {
				cells[i] = row[i]
			} else {
				cells[i] = ""
			}
		}
		tw.AppendRow(cells)
	}

	configs := make([]table.ColumnConfig, 0, len(t.headers))
	for i := range t.headers {
		align := text.AlignLeft
		if t.rightAlign[i] {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	fmt.Fprintln(out, tw.Render())
}

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
