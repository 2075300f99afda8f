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

type ConstructorsPanel struct {
	agg *season.Aggregator

	mu        sync.Mutex
	year      int
	standings []model.Standing
}

func NewConstructorsPanel(agg *season.Aggregator) *ConstructorsPanel {
	return &ConstructorsPanel{agg: agg}
}

func (p *ConstructorsPanel) ID() string {
	return IDConstructors
}

func (p *ConstructorsPanel) Refresh(ctx context.Context, year int) {
	standings := p.agg.ConstructorStandings(ctx, year)
	p.mu.Lock()
	p.year = year
	p.standings = standings
	p.mu.Unlock()
}

func (p *ConstructorsPanel) Render(focused bool) string {
	p.mu.Lock()
	defer p.mu.Unlock()

	var b bytes.Buffer
	t := newTable(&b, fmt.Sprintf("Constructor Standings %d", p.year), focused)
	t.AppendHeader(table.Row{"Pos", "Team", "Nationality", "Points", "Wins"})
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
