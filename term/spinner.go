package term

import (
	"strings"
	"time"

	"atomicgo.dev/cursor"
)

var defaultFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinner is a one line terminal animation. It starts ticking on the
// first SetString call.
type spinner struct {
	frames   []string
	interval time.Duration
	index    int
	suffix   string
	ticker   *time.Ticker
}

func NewCustomSpinner(frames []string, interval time.Duration) *spinner {
	return &spinner{
		frames:   frames,
		interval: interval,
	}
}

func NewSpinner() *spinner {
	return NewCustomSpinner(defaultFrames, time.Millisecond*77)
}

// SetString sets the text behind the animation. The spinner owns a
// single line, so only the first line of suffix is used.
func (s *spinner) SetString(suffix string) {
	if s.ticker == nil {
		defer s.start()
	}
	suffix = strings.TrimSpace(suffix)
	suffix = strings.Split(suffix, "\n")[0]
	s.suffix = " " + suffix
}

func (s *spinner) start() {
	s.ticker = time.NewTicker(s.interval)
	go func() {
		for range s.ticker.C {
			s.index = (s.index + 1) % len(s.frames)
			cursor.StartOfLine()
			print(s.frames[s.index] + s.suffix)
		}
	}()
}

// Stop halts the animation, clearing its line when clearLine is set.
func (s *spinner) Stop(clearLine bool) {
	if s.ticker != nil {
		s.ticker.Stop()
	}
	s.ticker = nil
	if clearLine {
		cursor.ClearLine()
		cursor.StartOfLine()
	} else {
		println()
	}
}
