// Package spinning provides a friendly spinning symbol to display while the program is searching for a
// movement, and a graceful handling of interruptions.
package spinning

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"k8s.io/klog/v2"
)

// Spinning is a spinner running on its own goroutine, until Done is called.
type Spinning struct {
	wg     sync.WaitGroup
	cancel func()
}

var (
	ThemeAscii = []rune(`|/-\`)
	ThemeBlob  = []rune("◐◓◑◒")

	// Theme defaults to ThemeBlob, but it can be set to anything else.
	Theme = ThemeBlob

	// Interval between two frames.
	Interval = 250 * time.Millisecond
)

// SafeInterrupt will capture SigInt (Ctrl+C) and SigTerm and call the provided onInterrupt.
// If the program hasn't exited after gracePeriod, it calls Reset to reset the terminal and exits.
func SafeInterrupt(onInterrupt func(), gracePeriod time.Duration) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		s := <-sigChan
		fmt.Println()
		klog.Errorf("Got interrupted (signal %q), shutting down... (%s)", s, gracePeriod)
		if onInterrupt != nil {
			go onInterrupt()
		}
		time.Sleep(gracePeriod)
		Reset()
		klog.Fatalf("Graceful shutting down %s period expired, exiting.", gracePeriod)
	}()
}

// Reset terminal: make cursor visible, restore default terminal colors.
func Reset() {
	fmt.Print("\033[?25h\033[39;49;0m\n")
}

// New starts a spinning display on stdout, until Spinning.Done is called or ctx is done.
func New(ctx context.Context) *Spinning {
	return NewWithWriter(ctx, os.Stdout)
}

// NewWithWriter is like New, but it writes the spinner to w.
func NewWithWriter(ctx context.Context, w io.Writer) *Spinning {
	s := &Spinning{}
	ctx, s.cancel = context.WithCancel(ctx)
	theme := Theme
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(Interval)
		defer ticker.Stop()
		_, _ = fmt.Fprint(w, "\033[?25l")                    // Hide cursor.
		defer func() { _, _ = fmt.Fprint(w, "\033[?25h") }() // Restore cursor.

		_, _ = fmt.Fprint(w, " ")
		for idx := 0; ; idx = (idx + 1) % len(theme) {
			_, _ = fmt.Fprintf(w, "\b%c", theme[idx])
			select {
			case <-ctx.Done():
				_, _ = fmt.Fprint(w, "\b \b")
				return
			case <-ticker.C:
			}
		}
	}()
	return s
}

// Done stops the spinner and waits for it to clear itself. It can be called more than once.
func (s *Spinning) Done() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.wg.Wait()
}

// While displays a spinner on w while fn runs, and returns its results.
func While[T any](ctx context.Context, w io.Writer, fn func() (T, bool)) (T, bool) {
	s := NewWithWriter(ctx, w)
	defer s.Done()
	return fn()
}
