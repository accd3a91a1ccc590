// Package supervisor runs the anytime search in a separate process, and harvests its best movement at a
// wall-clock deadline.
//
// The search process never stops by itself: Strategy kills it once the deadline passes, after reading the
// last movement it published to a shared memory register (see package shmem). This is the only way a
// search at a given depth is interrupted.
package supervisor

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/blobwar/blobwarGo/internal/searchers/anytime"
	"github.com/blobwar/blobwarGo/internal/shmem"
	"github.com/blobwar/blobwarGo/internal/state"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// DefaultDeadline is the time given to the search process for each movement.
const DefaultDeadline = time.Second

// Strategy implements searchers.Strategy for state.Board by running the search in another process.
type Strategy struct {
	deadline     time.Duration
	searchConfig string
	command      string
	args         []string
	env          []string
}

// New creates a Strategy that gives deadline to each search. searchConfig is passed to the search process
// with the -search flag, e.g. "alphabeta,parallel=root".
//
// By default, the search process is the current executable, run with "-anytime -search=<searchConfig>".
func New(deadline time.Duration, searchConfig string) *Strategy {
	return &Strategy{deadline: deadline, searchConfig: searchConfig}
}

// WithCommand sets the executable and leading arguments of the search process. The "-anytime" and
// "-search" flags are appended to args.
func (s *Strategy) WithCommand(command string, args ...string) *Strategy {
	s.command = command
	s.args = args
	return s
}

// WithEnv adds "key=value" environment variables to the search process, besides shmem.EnvVar and the
// current process environment.
func (s *Strategy) WithEnv(env ...string) *Strategy {
	s.env = append(s.env, env...)
	return s
}

// Deadline returns the time given to each search.
func (s *Strategy) Deadline() time.Duration { return s.deadline }

// SearchConfig returns the configuration passed to the search process.
func (s *Strategy) SearchConfig() string { return s.searchConfig }

// String implements fmt.Stringer.
func (s *Strategy) String() string {
	return fmt.Sprintf("Anytime (%s, deadline: %s)", s.searchConfig, s.deadline)
}

// ComputeNextMove implements searchers.Strategy.
//
// It blocks until the deadline, unless the search process exits earlier. If the search process didn't
// publish any movement in time, or failed to start, the first legal movement is returned instead.
func (s *Strategy) ComputeNextMove(board state.Board) (move state.Movement, found bool) {
	for move = range board.Movements() {
		found = true
		break
	}
	if !found {
		return
	}
	published, ok, err := s.search(board)
	if err != nil {
		klog.Errorf("Anytime search failed, falling back to the first movement %s: %+v", move, err)
		return move, true
	}
	if !ok || !board.IsValid(published) {
		klog.Warningf("Anytime search didn't publish a valid movement within %s, falling back to the first movement %s",
			s.deadline, move)
		return move, true
	}
	return published, true
}

// search runs the search process until the deadline and returns what it published. ok is false if
// nothing was published.
func (s *Strategy) search(board state.Board) (move state.Movement, ok bool, err error) {
	path, err := shmem.TempPath()
	if err != nil {
		return
	}
	register, err := shmem.Create(path)
	if err != nil {
		_ = os.Remove(path)
		return
	}
	defer func() {
		if removeErr := register.Remove(); removeErr != nil {
			klog.Warningf("Failed to remove shared memory register: %v", removeErr)
		}
	}()

	command := s.command
	if command == "" {
		command, err = os.Executable()
		if err != nil {
			return move, false, errors.Wrap(err, "failed to find the current executable")
		}
	}
	args := append(append([]string(nil), s.args...), "-anytime", "-search="+s.searchConfig)
	cmd := exec.Command(command, args...)
	cmd.Env = append(append(os.Environ(), s.env...), shmem.EnvVar+"="+path)
	cmd.Stdin = strings.NewReader(board.String())
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr
	if err = cmd.Start(); err != nil {
		return move, false, errors.Wrapf(err, "failed to start search process %q", command)
	}
	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	timer := time.NewTimer(s.deadline)
	defer timer.Stop()
	select {
	case <-timer.C:
		move, ok, _ = register.Load()
		// Kill is SIGKILL on unix: there is nothing the search process needs to clean up.
		if killErr := cmd.Process.Kill(); killErr != nil {
			klog.Warningf("Failed to kill search process: %v", killErr)
		}
		<-done
	case waitErr := <-done:
		move, ok, _ = register.Load()
		if waitErr != nil && !ok {
			return move, false, errors.Wrap(waitErr, "search process failed")
		}
		klog.V(1).Infof("Search process exited before the deadline")
	}
	if klog.V(1).Enabled() {
		klog.Infof("Anytime search: move=%s (published=%v)", move, ok)
	}
	return
}

// RunSearchProcess is the entry point of the search process: it reads the board snapshot from stdin,
// connects to the register named by shmem.EnvVar and runs driver on it, publishing every completed depth.
//
// It returns an error only if the board can't be read or the register can't be connected to, in which case
// the process should abort. Otherwise, it only returns when the driver does (see anytime.Driver.Run).
func RunSearchProcess(ctx context.Context, stdin io.Reader, driver *anytime.Driver[state.Board, state.Movement]) error {
	text, err := io.ReadAll(stdin)
	if err != nil {
		return errors.Wrap(err, "failed to read board from stdin")
	}
	board, err := state.Parse(string(text))
	if err != nil {
		return errors.WithMessage(err, "failed to parse board from stdin")
	}
	path := os.Getenv(shmem.EnvVar)
	if path == "" {
		return errors.Errorf("environment variable %s with the shared memory register path is not set", shmem.EnvVar)
	}
	register, err := shmem.Connect(path)
	if err != nil {
		return err
	}
	defer func() { _ = register.Close() }()
	depth := driver.Run(ctx, board, register)
	klog.V(1).Infof("Search process finished at depth %d", depth)
	return nil
}
