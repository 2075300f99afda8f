package panels

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"lazyf1/pkg/model"
	"lazyf1/pkg/season"
)

type SchedulePanel struct {
	agg *season.Aggregator

	mu   sync.Mutex
	year int
	rows []model.ScheduleRow
}

func NewSchedulePanel(agg *season.Aggregator) *SchedulePanel {
	return &SchedulePanel{agg: agg}
}

func (p *SchedulePanel) ID() string {
	return IDSchedule
}

func (p *SchedulePanel) Refresh(ctx context.Context, year int) {
	rows := p.agg.ScheduleRows(ctx, year)
	p.mu.Lock()
	p.year = year
	p.rows = rows
	p.mu.Unlock()
}

func (p *SchedulePanel) Render(focused bool) string {
	p.mu.Lock()
	defer p.mu.Unlock()

	var b bytes.Buffer
	t := newTable(&b, fmt.Sprintf("Race Schedule %d", p.year), focused)
	t.AppendHeader(table.Row{"Round", "Grand Prix", "Circuit", "Date", "Status"})
	for _, row := range p.rows {
		t.AppendRow(table.Row{row.Round, row.Name, row.Circuit, row.Date, colorizeStatus(row.Status)})
	}
	t.Render()
	return b.String()
}

func colorizeStatus(status string) string {
	switch status {
	case model.StatusCompleted:
		return text.FgHiGreen.Sprint(status)
	case model.StatusInProgress:
		return text.FgHiYellow.Sprint(status)
	case model.StatusUpcoming:
		return text.FgHiBlue.Sprint(status)
	}
	return status
}
