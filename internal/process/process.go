// Package process implements the process.v1 spawn/shutdown lifecycle
// supplemented from original_source/tests/integration/api/process.rs: the
// compositor can launch arbitrary client programs (a terminal, a status
// bar) detached from its own process group so they survive independently
// of any single window.
package process

import (
	"os/exec"
	"sync"
	"syscall"

	"github.com/anmitsu/go-shlex"
	"golang.org/x/sys/unix"
)

// Handle tracks one spawned process.
type Handle struct {
	PID     int
	Command []string
	cmd     *exec.Cmd
}

// Spawner launches and tracks processes using exec.Cmd plus a
// process-group SysProcAttr, so a spawned shell and everything it forks
// can be torn down together. handles is touched both from the event loop
// (Spawn/Shutdown/Handles) and from each spawned process's own wait
// goroutine, so it needs its own lock rather than riding on the
// single-threaded event loop convention the rest of core assumes.
type Spawner struct {
	mu      sync.Mutex
	handles map[int]*Handle
}

// NewSpawner returns an empty Spawner.
func NewSpawner() *Spawner {
	return &Spawner{handles: make(map[int]*Handle)}
}

// Spawn parses commandLine shell-style (quoting, escaping) and launches it
// detached in its own process group so that signaling the compositor does
// not also signal spawned clients.
func (s *Spawner) Spawn(commandLine string) (*Handle, error) {
	args, err := shlex.Split(commandLine, true)
	if err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return nil, exec.ErrNotFound
	}

	cmd := exec.Command(args[0], args[1:]...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	if err := cmd.Start(); err != nil {
		return nil, err
	}

	h := &Handle{PID: cmd.Process.Pid, Command: args, cmd: cmd}
	s.mu.Lock()
	s.handles[h.PID] = h
	s.mu.Unlock()

	go func() {
		_ = cmd.Wait()
		s.mu.Lock()
		delete(s.handles, h.PID)
		s.mu.Unlock()
	}()

	return h, nil
}

// Shutdown sends SIGTERM to the process group of pid, giving the child a
// chance to exit cleanly before a caller escalates to SIGKILL. The handle
// is untracked immediately; the wait goroutine's own removal on natural
// exit is then a harmless no-op.
func (s *Spawner) Shutdown(pid int) error {
	s.mu.Lock()
	h, ok := s.handles[pid]
	if ok {
		delete(s.handles, pid)
	}
	s.mu.Unlock()
	if !ok {
		return exec.ErrNotFound
	}
	return unix.Kill(-h.PID, unix.SIGTERM)
}

// Handles returns every still-tracked process, for diagnostics.
func (s *Spawner) Handles() []*Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Handle, 0, len(s.handles))
	for _, h := range s.handles {
		out = append(out, h)
	}
	return out
}
