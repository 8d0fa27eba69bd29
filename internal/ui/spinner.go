package ui

import (
	"fmt"
	"time"
)

// Spinner is a stdout progress indicator for slow RPC work: campaign
// enumeration and the submit-then-confirm wait, which polls for a receipt
// every couple of seconds. It writes to the current line only, so session
// log output pushes it down rather than interleaving.
type Spinner struct {
	msg  string
	stop chan struct{}
	done chan struct{}
}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func NewSpinner(msg string) *Spinner {
	return &Spinner{
		msg:  msg,
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
}

// Start animates until Stop is called.
func (s *Spinner) Start() {
	go func() {
		defer close(s.done)
		tick := time.NewTicker(80 * time.Millisecond)
		defer tick.Stop()
		frame := 0
		for {
			select {
			case <-s.stop:
				// Blank the spinner line before the result is printed.
				fmt.Printf("\r%*s\r", len(s.msg)+4, "")
				return
			case <-tick.C:
				fmt.Printf("\r%s  %s", StyleChain.Render(spinnerFrames[frame%len(spinnerFrames)]), s.msg)
				frame++
			}
		}
	}()
}

// Stop halts the animation and clears the line. Must be called exactly once.
func (s *Spinner) Stop() {
	close(s.stop)
	<-s.done
}
