// Package rpcserver implements the thin local transport the command
// surface and signal bus ride on: a Unix domain socket with a
// length-prefixed JSON frame carrying an api.Message envelope. A real
// generated RPC wire schema is treated as out of scope here; this is a
// Go-native substitute sufficient to exercise the core state machine
// end to end.
package rpcserver

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"os"
	"sync"

	"github.com/pinnacle-wm/pinnacle/internal/api"
	"github.com/pinnacle-wm/pinnacle/internal/command"
	"github.com/pinnacle-wm/pinnacle/internal/logger"
)

// Handler processes one decoded request payload and returns the response
// payload, or an error (ideally a *command.Error) to translate into the
// wire error shape.
type Handler func(kind api.Kind, payload json.RawMessage) (any, error)

// Server accepts connections on a Unix domain socket. Serve runs the
// accept loop and starts one goroutine per accepted connection, which
// reads requests and calls Handler. Handler is therefore called from
// several goroutines, possibly at the same time; a Handler that touches
// shared state (such as core.State) must serialize those calls itself.
type Server struct {
	path    string
	ln      net.Listener
	handler Handler

	mu    sync.Mutex
	conns map[net.Conn]struct{}
}

// Listen creates (replacing any stale socket file) and binds the Unix
// domain socket at socketPath.
func Listen(socketPath string, handler Handler) (*Server, error) {
	_ = os.Remove(socketPath)
	ln, err := net.Listen("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("rpcserver: listen %s: %w", socketPath, err)
	}
	return &Server{path: socketPath, ln: ln, handler: handler, conns: make(map[net.Conn]struct{})}, nil
}

// Serve runs the accept loop until the listener is closed.
func (s *Server) Serve() error {
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			return err
		}
		s.mu.Lock()
		s.conns[conn] = struct{}{}
		s.mu.Unlock()
		go s.serveConn(conn)
	}
}

func (s *Server) serveConn(conn net.Conn) {
	defer func() {
		s.mu.Lock()
		delete(s.conns, conn)
		s.mu.Unlock()
		conn.Close()
	}()

	for {
		msg, err := readMessage(conn)
		if err != nil {
			if err != io.EOF {
				logger.Debugf("rpcserver: read error: %v", err)
			}
			return
		}
		if err := writeMessage(conn, s.dispatch(msg)); err != nil {
			logger.Debugf("rpcserver: write error: %v", err)
			return
		}
	}
}

func (s *Server) dispatch(msg api.Message) api.Message {
	var raw json.RawMessage
	if msg.Payload != nil {
		if b, err := json.Marshal(msg.Payload); err == nil {
			raw = b
		}
	}

	result, err := s.handler(msg.Kind, raw)
	if err != nil {
		kind := command.Fatal.String()
		if ce, ok := command.AsError(err); ok {
			kind = ce.Kind.String()
		}
		return api.Message{Kind: msg.Kind, ReqID: msg.ReqID, Err: &api.ErrorPayload{Kind: kind, Message: err.Error()}}
	}
	return api.Message{Kind: msg.Kind, ReqID: msg.ReqID, Payload: result}
}

// Close shuts down the listener and every open connection, and removes
// the socket file.
func (s *Server) Close() error {
	err := s.ln.Close()
	s.mu.Lock()
	for c := range s.conns {
		c.Close()
	}
	s.mu.Unlock()
	_ = os.Remove(s.path)
	return err
}

func readMessage(r io.Reader) (api.Message, error) {
	var length uint32
	if err := binary.Read(r, binary.BigEndian, &length); err != nil {
		return api.Message{}, err
	}
	buf := make([]byte, length)
	if _, err := io.ReadFull(r, buf); err != nil {
		return api.Message{}, err
	}
	var msg api.Message
	if err := json.Unmarshal(buf, &msg); err != nil {
		return api.Message{}, err
	}
	return msg, nil
}

func writeMessage(w io.Writer, msg api.Message) error {
	b, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	if len(b) > int(^uint32(0)) {
		return fmt.Errorf("rpcserver: message too large: %d bytes", len(b))
	}
	if err := binary.Write(w, binary.BigEndian, uint32(len(b))); err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}
