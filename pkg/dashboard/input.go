package dashboard

import (
	"bufio"
	"context"
	"io"
)

type keyKind int

const (
	keyRune keyKind = iota
	keyEnter
	keyEscape
	keyTab
	keyBackTab
	keyLeft
	keyRight
	keyBackspace
)

type keyEvent struct {
	kind keyKind
	r    rune
}

// readKeys turns the raw-mode byte stream into key events. Sends stop when
// ctx is done, so the goroutine cannot outlive the loop it feeds; it may
// still sit in one blocking Read until the next byte arrives.
func readKeys(ctx context.Context, in io.Reader, out chan<- keyEvent) {
	r := bufio.NewReader(in)
	for {
		b, err := r.ReadByte()
		if err != nil {
			close(out)
			return
		}
		var events []keyEvent
		if b == 0x1b {
			events = readEscapeSequence(r)
		} else {
			events = []keyEvent{byteEvent(b)}
		}
		for _, ev := range events {
			select {
			case out <- ev:
			case <-ctx.Done():
				return
			}
		}
	}
}

func byteEvent(b byte) keyEvent {
	switch b {
	case '\r', '\n':
		return keyEvent{kind: keyEnter}
	case '\t':
		return keyEvent{kind: keyTab}
	case 0x7f, 0x08:
		return keyEvent{kind: keyBackspace}
	case 0x03: // ctrl-c behaves like quit in raw mode
		return keyEvent{kind: keyRune, r: 'q'}
	}
	return keyEvent{kind: keyRune, r: rune(b)}
}

// readEscapeSequence classifies the bytes after an escape byte. The terminal
// writes a CSI sequence in one go but a slow pipe may split it, so the
// follow-up bytes are read blocking instead of trusting the buffer.
func readEscapeSequence(r *bufio.Reader) []keyEvent {
	b, err := r.ReadByte()
	if err != nil {
		return []keyEvent{{kind: keyEscape}}
	}
	if b != '[' {
		// a bare escape followed by an ordinary key
		return []keyEvent{{kind: keyEscape}, byteEvent(b)}
	}
	b, err = r.ReadByte()
	if err != nil {
		return []keyEvent{{kind: keyEscape}}
	}
	switch b {
	case 'C':
		return []keyEvent{{kind: keyRight}}
	case 'D':
		return []keyEvent{{kind: keyLeft}}
	case 'Z':
		return []keyEvent{{kind: keyBackTab}}
	}
	// unhandled sequence (up/down, function keys), swallow it
	return []keyEvent{{kind: keyEscape}}
}
