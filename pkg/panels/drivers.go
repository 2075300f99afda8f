package panels

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/jedib0t/go-pretty/v6/table"

	"lazyf1/pkg/helper"
	"lazyf1/pkg/model"
	"lazyf1/pkg/season"
)

type DriversPanel struct {
	agg *season.Aggregator

	mu        sync.Mutex
	year      int
	standings []model.Standing
}

func NewDriversPanel(agg *season.Aggregator) *DriversPanel {
	return &DriversPanel{agg: agg}
}

func (p *DriversPanel) ID() string {
	return IDDrivers
}

func (p *DriversPanel) Refresh(ctx context.Context, year int) {
	standings := p.agg.DriverStandings(ctx, year)
	p.mu.Lock()
	p.year = year
	p.standings = standings
	p.mu.Unlock()
}

func (p *DriversPanel) Render(focused bool) string {
	p.mu.Lock()
	defer p.mu.Unlock()

	var b bytes.Buffer
	t := newTable(&b, fmt.Sprintf("Driver Standings %d", p.year), focused)
	t.AppendHeader(table.Row{"Pos", "Driver", "Team", "Points", "Wins"})
	for _, s := range p.standings {
		if s.IsSentinel() {
			t.AppendRow(table.Row{s.Position, s.Name, "", "", ""})
			continue
		}
		t.AppendRow(table.Row{s.Position, s.Name, s.Detail, helper.FormatPoints(s.Points), s.Wins})
	}
	t.Render()
	return b.String()
}
