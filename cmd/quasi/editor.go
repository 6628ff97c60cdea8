package main

import (
	"fmt"
	"io"
	"unicode"

	"atomicgo.dev/keyboard/keys"
)

type editAction int

const (
	editNone editAction = iota
	editSubmit
	editCancel
	editEOF
	editClear
)

// lineEditor holds the line being typed at the REPL prompt and the history
// of submitted lines. It has no terminal state of its own.
type lineEditor struct {
	buf     []rune
	cursor  int
	history []string
	histIdx int    // -1 when not browsing history
	saved   []rune // line being typed before history browsing began
}

func newLineEditor(history []string) *lineEditor {
	return &lineEditor{history: history, histIdx: -1}
}

func (e *lineEditor) String() string { return string(e.buf) }

// handle applies one key press and reports what the caller should do.
func (e *lineEditor) handle(key keys.Key) editAction {
	switch key.Code {
	case keys.Enter:
		return editSubmit
	case keys.CtrlC:
		if len(e.buf) == 0 {
			return editCancel
		}
		e.reset()
	case keys.CtrlD:
		if len(e.buf) == 0 {
			return editEOF
		}
		e.deleteForward()
	case keys.CtrlL:
		return editClear
	case keys.Backspace, keys.CtrlH:
		if e.cursor > 0 {
			e.buf = append(e.buf[:e.cursor-1], e.buf[e.cursor:]...)
			e.cursor--
		}
	case keys.Delete:
		e.deleteForward()
	case keys.Left:
		if e.cursor > 0 {
			e.cursor--
		}
	case keys.Right:
		if e.cursor < len(e.buf) {
			e.cursor++
		}
	case keys.Home, keys.CtrlA:
		e.cursor = 0
	case keys.End, keys.CtrlE:
		e.cursor = len(e.buf)
	case keys.CtrlU:
		e.buf = append([]rune{}, e.buf[e.cursor:]...)
		e.cursor = 0
	case keys.CtrlK:
		e.buf = e.buf[:e.cursor]
	case keys.CtrlW:
		e.deleteWordBackward()
	case keys.Up:
		e.historyUp()
	case keys.Down:
		e.historyDown()
	case keys.Space:
		e.insert(' ')
	case keys.Tab:
		e.insert(' ', ' ', ' ', ' ')
	case keys.RuneKey:
		e.insert(key.Runes...)
	}
	return editNone
}

func (e *lineEditor) insert(rs ...rune) {
	tail := append([]rune{}, e.buf[e.cursor:]...)
	e.buf = append(append(e.buf[:e.cursor], rs...), tail...)
	e.cursor += len(rs)
}

func (e *lineEditor) deleteForward() {
	if e.cursor < len(e.buf) {
		e.buf = append(e.buf[:e.cursor], e.buf[e.cursor+1:]...)
	}
}

func (e *lineEditor) deleteWordBackward() {
	end := e.cursor
	for e.cursor > 0 && !isWordChar(e.buf[e.cursor-1]) {
		e.cursor--
	}
	for e.cursor > 0 && isWordChar(e.buf[e.cursor-1]) {
		e.cursor--
	}
	e.buf = append(e.buf[:e.cursor], e.buf[end:]...)
}

func (e *lineEditor) historyUp() {
	if len(e.history) == 0 {
		return
	}
	switch {
	case e.histIdx == -1:
		e.saved = append([]rune{}, e.buf...)
		e.histIdx = len(e.history) - 1
	case e.histIdx > 0:
		e.histIdx--
	default:
		return
	}
	e.set([]rune(e.history[e.histIdx]))
}

func (e *lineEditor) historyDown() {
	if e.histIdx == -1 {
		return
	}
	if e.histIdx < len(e.history)-1 {
		e.histIdx++
		e.set([]rune(e.history[e.histIdx]))
		return
	}
	e.histIdx = -1
	e.set(e.saved)
}

func (e *lineEditor) set(rs []rune) {
	e.buf = append([]rune{}, rs...)
	e.cursor = len(e.buf)
}

func (e *lineEditor) reset() {
	e.buf = nil
	e.cursor = 0
	e.histIdx = -1
	e.saved = nil
}

// take returns the current line, records it in history and clears the
// editor. Consecutive duplicates are recorded once.
func (e *lineEditor) take() string {
	line := string(e.buf)
	if line != "" && (len(e.history) == 0 || e.history[len(e.history)-1] != line) {
		e.history = append(e.history, line)
	}
	e.reset()
	return line
}

// redraw rewrites the prompt line and places the terminal cursor.
func (e *lineEditor) redraw(w io.Writer, prompt string) {
	fmt.Fprintf(w, "\r\x1b[K%s%s", prompt, string(e.buf))
	if back := len(e.buf) - e.cursor; back > 0 {
		fmt.Fprintf(w, "\x1b[%dD", back)
	}
}

func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '.'
}
