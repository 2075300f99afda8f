package dashboard

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/term"

	"lazyf1/pkg/cursor"
	"lazyf1/pkg/panels"
	"lazyf1/pkg/season"
	"lazyf1/pkg/settings"
)

const helpLine = "q quit · r refresh · p/n race · 1-4 focus · tab panel · / search · [ ] season"

// Dashboard runs the single cooperative UI loop: a refresh ticker and the
// keyboard feed one select loop, and every fetch runs synchronously inside
// it, blocking the triggering action until it returns.
type Dashboard struct {
	agg       *season.Aggregator
	panelList []panels.Panel
	results   *panels.ResultsPanel
	cur       *cursor.Cursor
	store     *settings.Manager // nil when the prefs DB could not be opened
	statusSub <-chan season.Status
	refresh   time.Duration

	in  io.Reader
	out io.Writer

	mu        sync.Mutex
	year      int
	focus     int
	status    string
	searching bool
	query     string
}

func New(agg *season.Aggregator, results *panels.ResultsPanel, others []panels.Panel, cur *cursor.Cursor, store *settings.Manager, statusSub <-chan season.Status, prefs settings.Prefs, refresh time.Duration) *Dashboard {
	list := append([]panels.Panel{}, others...)
	list = append(list, results)
	cur.Restore(prefs.RaceIndex)
	results.SetIndex(cur.Index())
	return &Dashboard{
		agg:       agg,
		panelList: list,
		results:   results,
		cur:       cur,
		store:     store,
		statusSub: statusSub,
		refresh:   refresh,
		in:        os.Stdin,
		out:       os.Stdout,
		year:      prefs.Season,
		status:    "Ready",
	}
}

// SetIO replaces stdin/stdout, used by tests.
func (d *Dashboard) SetIO(in io.Reader, out io.Writer) {
	d.in = in
	d.out = out
}

func (d *Dashboard) Run(ctx context.Context) error {
	if f, ok := d.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		oldState, err := term.MakeRaw(int(f.Fd()))
		if err != nil {
			return err
		}
		defer term.Restore(int(f.Fd()), oldState)
	}

	// the helper goroutines stop when Run returns
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	keys := make(chan keyEvent)
	go readKeys(ctx, d.in, keys)
	go d.statusUpdater(ctx)

	d.refreshAll(ctx)
	d.paint()

	ticker := time.NewTicker(d.refresh)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.storePrefs()
			return nil
		case <-ticker.C:
			d.refreshAll(ctx)
			d.paint()
		case k, ok := <-keys:
			if !ok {
				d.storePrefs()
				return nil
			}
			if quit := d.handleKey(ctx, k); quit {
				d.storePrefs()
				return nil
			}
			d.paint()
		}
	}
}

func (d *Dashboard) refreshAll(ctx context.Context) {
	for _, p := range d.panelList {
		p.Refresh(ctx, d.currentYear())
	}
}

func (d *Dashboard) handleKey(ctx context.Context, k keyEvent) bool {
	if d.inSearch() {
		d.handleSearchKey(ctx, k)
		return false
	}

	switch k.kind {
	case keyTab:
		d.moveFocus(1)
	case keyBackTab:
		d.moveFocus(-1)
	case keyLeft:
		d.previousRace(ctx)
	case keyRight:
		d.nextRace(ctx)
	case keyRune:
		switch k.r {
		case 'q':
			return true
		case 'r':
			d.refreshAll(ctx)
		case 'p':
			d.previousRace(ctx)
		case 'n':
			d.nextRace(ctx)
		case '1', '2', '3', '4':
			d.setFocus(int(k.r - '1'))
		case '/':
			d.startSearch()
		case '[':
			d.changeSeason(ctx, -1)
		case ']':
			d.changeSeason(ctx, +1)
		}
	}
	return false
}

func (d *Dashboard) previousRace(ctx context.Context) {
	completed := len(d.agg.CompletedEvents(ctx, d.currentYear()))
	index := d.cur.StepBack(completed)
	d.results.SetIndex(index)
	d.results.Refresh(ctx, d.currentYear())
	d.storePrefs()
}

func (d *Dashboard) nextRace(ctx context.Context) {
	completed := len(d.agg.CompletedEvents(ctx, d.currentYear()))
	index := d.cur.StepForward(completed)
	d.results.SetIndex(index)
	d.results.Refresh(ctx, d.currentYear())
	d.storePrefs()
}

func (d *Dashboard) changeSeason(ctx context.Context, delta int) {
	d.mu.Lock()
	year := d.year + delta
	if year < 1950 {
		d.mu.Unlock()
		return
	}
	d.year = year
	d.mu.Unlock()

	d.cur.Reset()
	d.results.SetIndex(d.cur.Index())
	d.storePrefs()
	d.refreshAll(ctx)
}

func (d *Dashboard) startSearch() {
	d.mu.Lock()
	d.searching = true
	d.query = ""
	d.mu.Unlock()
}

func (d *Dashboard) handleSearchKey(ctx context.Context, k keyEvent) {
	d.mu.Lock()
	switch k.kind {
	case keyEscape:
		d.searching = false
		d.query = ""
		d.mu.Unlock()
		return
	case keyBackspace:
		if len(d.query) > 0 {
			d.query = d.query[:len(d.query)-1]
		}
		d.mu.Unlock()
		return
	case keyRune:
		d.query += string(k.r)
		d.mu.Unlock()
		return
	case keyEnter:
		query := d.query
		d.searching = false
		d.query = ""
		d.mu.Unlock()
		d.jumpToRace(ctx, query)
		return
	}
	d.mu.Unlock()
}

// jumpToRace moves the cursor to the completed race whose name best matches
// the query.
func (d *Dashboard) jumpToRace(ctx context.Context, query string) {
	if strings.TrimSpace(query) == "" {
		return
	}
	events := d.agg.CompletedEvents(ctx, d.currentYear())
	if len(events) == 0 {
		return
	}
	names := make([]string, len(events))
	for i, ev := range events {
		names[i] = ev.Name
	}
	ranks := fuzzy.RankFindNormalizedFold(query, names)
	if len(ranks) == 0 {
		d.setStatus(fmt.Sprintf("No race matches %q", query))
		return
	}
	best := ranks[0]
	for _, r := range ranks[1:] {
		if r.Distance < best.Distance {
			best = r
		}
	}
	index := d.cur.Set(best.OriginalIndex, len(events))
	d.results.SetIndex(index)
	d.results.Refresh(ctx, d.currentYear())
	d.storePrefs()
}

func (d *Dashboard) storePrefs() {
	if d.store == nil {
		return
	}
	err := d.store.Store(settings.Prefs{Season: d.currentYear(), RaceIndex: d.cur.Index()})
	if err != nil {
		log.Printf("Error storing prefs: %s", err.Error())
	}
}

func (d *Dashboard) statusUpdater(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case st, ok := <-d.statusSub:
			if !ok {
				return
			}
			d.setStatus(st.Message)
			d.paint()
		}
	}
}

func (d *Dashboard) setStatus(message string) {
	d.mu.Lock()
	d.status = message
	d.mu.Unlock()
}

func (d *Dashboard) currentYear() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.year
}

func (d *Dashboard) inSearch() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.searching
}

func (d *Dashboard) setFocus(i int) {
	d.mu.Lock()
	d.focus = i
	d.mu.Unlock()
}

func (d *Dashboard) moveFocus(delta int) {
	d.mu.Lock()
	d.focus = (d.focus + delta + len(d.panelList)) % len(d.panelList)
	d.mu.Unlock()
}

func (d *Dashboard) paint() {
	d.mu.Lock()
	defer d.mu.Unlock()

	rendered := make([]string, len(d.panelList))
	for i, p := range d.panelList {
		rendered[i] = p.Render(i == d.focus)
	}

	statusLine := d.status
	if d.searching {
		statusLine = "/" + d.query
	}

	var b strings.Builder
	b.WriteString(ansiClear)
	b.WriteString(rawNewlines(fmt.Sprintf("lazyf1 · Formula 1 %d\n\n", d.year)))
	b.WriteString(rawNewlines(sideBySide(rendered[0], rendered[1])))
	b.WriteString(rawNewlines(sideBySide(rendered[2], rendered[3])))
	b.WriteString(rawNewlines(fmt.Sprintf("\n%s\n%s\n", statusLine, helpLine)))
	fmt.Fprint(d.out, b.String())
}
