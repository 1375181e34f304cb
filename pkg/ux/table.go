// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ux

import (
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// Table wraps tablewriter with a string-row API
type Table struct {
	*tablewriter.Table
}

// NewTable creates a table writing to w with the given headers
func NewTable(w io.Writer, headers ...string) *Table {
	t := &Table{Table: tablewriter.NewTable(w)}
	if len(headers) > 0 {
		anyHeaders := make([]any, len(headers))
		for i, h := range headers {
			anyHeaders[i] = h
		}
		t.Table.Header(anyHeaders...)
	}
	return t
}

// DefaultTable creates a table on the user writer
func DefaultTable(headers ...string) *Table {
	return NewTable(Logger.writer, headers...)
}

// AlignRight right-aligns every row cell, for amount columns
func (t *Table) AlignRight() *Table {
	t.Table.Configure(func(config *tablewriter.Config) {
		config.Row.Alignment.Global = tw.AlignRight
	})
	return t
}

func (t *Table) AppendRow(row ...string) {
	_ = t.Table.Append(row)
}

func (t *Table) Render() {
	_ = t.Table.Render()
}
