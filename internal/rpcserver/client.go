package rpcserver

import (
	"net"
	"sync"

	"github.com/pinnacle-wm/pinnacle/internal/api"
)

// Client is a connection to a Server, used by `pinnacle top`'s dashboard.
type Client struct {
	conn   net.Conn
	mu     sync.Mutex
	nextID uint64
}

// Dial connects to the Unix domain socket at socketPath.
func Dial(socketPath string) (*Client, error) {
	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn}, nil
}

// Call sends one request and waits for its matching response. Requests
// on one Client are necessarily serialized (one in flight at a time).
// Client has no streaming call; it only does request/response.
func (c *Client) Call(kind api.Kind, payload any) (api.Message, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	req := api.Message{Kind: kind, ReqID: c.nextID, Payload: payload}
	if err := writeMessage(c.conn, req); err != nil {
		return api.Message{}, err
	}
	return readMessage(c.conn)
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}
