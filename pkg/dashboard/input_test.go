package dashboard

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func collectKeys(t *testing.T, in io.Reader) []keyEvent {
	t.Helper()
	out := make(chan keyEvent)
	go readKeys(context.Background(), in, out)

	events := []keyEvent{}
	for ev := range out {
		events = append(events, ev)
	}
	return events
}

// trickleReader hands over one byte per Read call, like a loaded pty that
// splits an escape sequence across reads.
type trickleReader struct {
	data []byte
}

func (r *trickleReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, io.EOF
	}
	p[0] = r.data[0]
	r.data = r.data[1:]
	return 1, nil
}

func TestReadKeys_Runes(t *testing.T) {
	events := collectKeys(t, strings.NewReader("qrpn"))

	assert.Equal(t, []keyEvent{
		{kind: keyRune, r: 'q'},
		{kind: keyRune, r: 'r'},
		{kind: keyRune, r: 'p'},
		{kind: keyRune, r: 'n'},
	}, events)
}

func TestReadKeys_SpecialBytes(t *testing.T) {
	events := collectKeys(t, strings.NewReader("\t\r\x7f"))

	assert.Equal(t, []keyEvent{
		{kind: keyTab},
		{kind: keyEnter},
		{kind: keyBackspace},
	}, events)
}

func TestReadKeys_ArrowAndBackTabSequences(t *testing.T) {
	events := collectKeys(t, strings.NewReader("\x1b[C\x1b[D\x1b[Z"))

	assert.Equal(t, []keyEvent{
		{kind: keyRight},
		{kind: keyLeft},
		{kind: keyBackTab},
	}, events)
}

func TestReadKeys_SequenceSplitAcrossReads(t *testing.T) {
	// the bytes of an arrow key arrive one read at a time; the '[' must not
	// leak through as a season-change rune
	events := collectKeys(t, &trickleReader{data: []byte("\x1b[Cq")})

	assert.Equal(t, []keyEvent{
		{kind: keyRight},
		{kind: keyRune, r: 'q'},
	}, events)
}

func TestReadKeys_BareEscapeThenRune(t *testing.T) {
	events := collectKeys(t, strings.NewReader("\x1bq"))

	assert.Equal(t, []keyEvent{
		{kind: keyEscape},
		{kind: keyRune, r: 'q'},
	}, events)
}

func TestReadKeys_CtrlCQuits(t *testing.T) {
	events := collectKeys(t, strings.NewReader("\x03"))

	assert.Equal(t, []keyEvent{{kind: keyRune, r: 'q'}}, events)
}

func TestReadKeys_UnknownSequenceSwallowed(t *testing.T) {
	// cursor-up is unbound, it must not leak an 'A' rune
	events := collectKeys(t, strings.NewReader("\x1b[Aq"))

	assert.Equal(t, []keyEvent{
		{kind: keyEscape},
		{kind: keyRune, r: 'q'},
	}, events)
}
