package harness

import (
	"context"
	"fmt"
	"net"

	"github.com/shadesmith/shadesmith/internal/harness/wire"
)

// Client talks to a remote validation server. Each call opens one
// connection, sends one request and reads at most one response, matching
// the server's one-request-per-connection discipline.
type Client struct {
	addr   string
	dialer net.Dialer
}

// NewClient returns a client for the server at addr.
func NewClient(addr string) *Client {
	return &Client{addr: addr}
}

// Validate implements the Validator interface against the remote server.
func (c *Client) Validate(ctx context.Context, source string) (ValidateResult, error) {
	conn, err := c.dial(ctx)
	if err != nil {
		return ValidateResult{}, err
	}
	defer conn.Close()

	if err := wire.WriteRequest(conn, wire.Request{Kind: wire.ReqValidate, Source: source}); err != nil {
		return ValidateResult{}, err
	}
	resp, err := wire.ReadResponse(conn)
	if err != nil {
		return ValidateResult{}, err
	}
	if resp.Kind != wire.RespValidate {
		return ValidateResult{}, fmt.Errorf("unexpected response tag %d to validate", resp.Kind)
	}
	return ValidateResult{OK: resp.OK, Message: resp.Message}, nil
}

// GetCount queries the server's request counter.
func (c *Client) GetCount(ctx context.Context) (uint64, error) {
	conn, err := c.dial(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Close()

	if err := wire.WriteRequest(conn, wire.Request{Kind: wire.ReqGetCount}); err != nil {
		return 0, err
	}
	resp, err := wire.ReadResponse(conn)
	if err != nil {
		return 0, err
	}
	if resp.Kind != wire.RespCount {
		return 0, fmt.Errorf("unexpected response tag %d to get-count", resp.Kind)
	}
	return resp.Count, nil
}

// ResetCount zeroes the server's request counter. The protocol defines no
// response for a reset.
func (c *Client) ResetCount(ctx context.Context) error {
	conn, err := c.dial(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()
	return wire.WriteRequest(conn, wire.Request{Kind: wire.ReqResetCount})
}

func (c *Client) dial(ctx context.Context) (net.Conn, error) {
	conn, err := c.dialer.DialContext(ctx, "tcp", c.addr)
	if err != nil {
		return nil, fmt.Errorf("dialing %s: %w", c.addr, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}
	return conn, nil
}
