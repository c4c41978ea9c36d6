package rpcserver

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/pinnacle-wm/pinnacle/internal/api"
	"github.com/pinnacle-wm/pinnacle/internal/command"
)

func startTestServer(t *testing.T, handler Handler) (*Server, string) {
	t.Helper()
	sock := filepath.Join(t.TempDir(), "pinnacle.sock")
	s, err := Listen(sock, handler)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	go s.Serve()
	t.Cleanup(func() { s.Close() })
	return s, sock
}

func TestCallRoundTrip(t *testing.T) {
	_, sock := startTestServer(t, func(kind api.Kind, payload json.RawMessage) (any, error) {
		var req struct{ Name string }
		_ = json.Unmarshal(payload, &req)
		return map[string]string{"echo": req.Name}, nil
	})

	c, err := dialWithRetry(sock)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer c.Close()

	resp, err := c.Call("greet", map[string]string{"Name": "pinnacle"})
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	if resp.Err != nil {
		t.Fatalf("unexpected error response: %+v", resp.Err)
	}
	got := resp.Payload.(map[string]any)["echo"]
	if got != "pinnacle" {
		t.Fatalf("expected echoed name, got %v", got)
	}
}

func TestCallErrorTranslatesCommandErrorKind(t *testing.T) {
	_, sock := startTestServer(t, func(kind api.Kind, payload json.RawMessage) (any, error) {
		return nil, command.Errorf(command.NotFound, "window 7 not found")
	})

	c, err := dialWithRetry(sock)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer c.Close()

	resp, err := c.Call("window.focus", nil)
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	if resp.Err == nil || resp.Err.Kind != "not_found" {
		t.Fatalf("expected not_found error kind, got %+v", resp.Err)
	}
}

// dialWithRetry tolerates the accept goroutine not having started yet.
func dialWithRetry(sock string) (*Client, error) {
	var lastErr error
	for i := 0; i < 20; i++ {
		c, err := Dial(sock)
		if err == nil {
			return c, nil
		}
		lastErr = err
		time.Sleep(5 * time.Millisecond)
	}
	return nil, lastErr
}
