package panels

import (
	"bytes"
	"context"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Panel is one dashboard tile: it refetches its data through the
// aggregator and renders itself as an ASCII table.
type Panel interface {
	ID() string
	Refresh(ctx context.Context, year int)
	Render(focused bool) string
}

const (
	IDDrivers      = "drivers"
	IDConstructors = "constructors"
	IDSchedule     = "schedule"
	IDResults      = "results"
)

// newTable wires a writer the way every panel renders: rounded borders,
// heavy borders when the panel has focus.
func newTable(b *bytes.Buffer, title string, focused bool) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(b)
	t.SetStyle(table.StyleRounded)
	if focused {
		t.SetStyle(table.StyleBold)
	}
	t.SetTitle(title)
	return t
}
