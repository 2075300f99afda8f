package panels

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/jedib0t/go-pretty/v6/table"

	"lazyf1/pkg/cursor"
	"lazyf1/pkg/helper"
	"lazyf1/pkg/model"
	"lazyf1/pkg/season"
)

// ResultsPanel shows one completed race's classification. The dashboard
// moves the cursor and tells the panel the new index explicitly; the panel
// itself never mutates it.
type ResultsPanel struct {
	agg *season.Aggregator

	mu      sync.Mutex
	year    int
	index   int
	results []model.RaceResult
}

func NewResultsPanel(agg *season.Aggregator) *ResultsPanel {
	return &ResultsPanel{agg: agg, index: cursor.Latest}
}

func (p *ResultsPanel) ID() string {
	return IDResults
}

// SetIndex points the panel at a completed-race index. The next Refresh
// fetches that race.
func (p *ResultsPanel) SetIndex(index int) {
	p.mu.Lock()
	p.index = index
	p.mu.Unlock()
}

func (p *ResultsPanel) Refresh(ctx context.Context, year int) {
	p.mu.Lock()
	index := p.index
	p.mu.Unlock()

	results := p.agg.RaceResults(ctx, year, index)

	p.mu.Lock()
	p.year = year
	p.results = results
	p.mu.Unlock()
}

func (p *ResultsPanel) Render(focused bool) string {
	p.mu.Lock()
	defer p.mu.Unlock()

	raceName := ""
	if len(p.results) > 0 && !p.results[0].IsSentinel() {
		raceName = p.results[0].RaceName + " "
	}

	var b bytes.Buffer
	t := newTable(&b, fmt.Sprintf("Race Results %s%d", raceName, p.year), focused)
	t.AppendHeader(table.Row{"Pos", "Driver", "Team", "Time", "Points"})
	for _, r := range p.results {
		if r.IsSentinel() {
			t.AppendRow(table.Row{r.Position, r.Driver, "", "", ""})
			continue
		}
		t.AppendRow(table.Row{r.Position, r.Driver, r.Team, r.Time, helper.FormatPoints(r.Points)})
	}
	t.Render()
	return b.String()
}
