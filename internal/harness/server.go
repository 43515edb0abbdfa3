// Package harness runs one generated program through several independent
// compiler backends and compares their verdicts. The generator core knows
// nothing about any of this; it hands over a syntactically complete
// program as text, and the harness does the rest.
package harness

import (
	"context"
	"fmt"
	"net"
	"sync/atomic"

	"github.com/shadesmith/shadesmith/internal/harness/wire"
)

// ValidateResult is one backend's verdict on one program.
type ValidateResult struct {
	OK      bool
	Message string
}

// Validator compiles or checks one program. Implementations must be safe
// for concurrent use; the server runs one validation per connection.
type Validator interface {
	Validate(ctx context.Context, source string) (ValidateResult, error)
}

// ValidatorFunc adapts a function to the Validator interface.
type ValidatorFunc func(ctx context.Context, source string) (ValidateResult, error)

func (f ValidatorFunc) Validate(ctx context.Context, source string) (ValidateResult, error) {
	return f(ctx, source)
}

// Server exposes a Validator over the wire protocol: a request counter
// query, a counter reset, and validate-this-source. Each connection carries
// exactly one request. A bounded worker pool caps concurrent validations.
type Server struct {
	validator Validator
	counter   atomic.Uint64
	workers   chan struct{}
}

// NewServer wraps validator. parallelism bounds concurrent connections;
// zero or negative means one.
func NewServer(validator Validator, parallelism int) *Server {
	if parallelism < 1 {
		parallelism = 1
	}
	return &Server{
		validator: validator,
		workers:   make(chan struct{}, parallelism),
	}
}

// Count returns how many requests the server has accepted since the last
// reset.
func (s *Server) Count() uint64 {
	return s.counter.Load()
}

// Serve accepts connections on ln until ctx is cancelled or the listener
// fails.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("accepting connection: %w", err)
		}

		s.counter.Add(1)
		s.workers <- struct{}{}
		go func() {
			defer func() { <-s.workers }()
			defer conn.Close()
			s.handle(ctx, conn)
		}()
	}
}

func (s *Server) handle(ctx context.Context, conn net.Conn) {
	req, err := wire.ReadRequest(conn)
	if err != nil {
		return
	}

	switch req.Kind {
	case wire.ReqGetCount:
		_ = wire.WriteResponse(conn, wire.Response{
			Kind:  wire.RespCount,
			Count: s.counter.Load(),
		})
	case wire.ReqResetCount:
		// No response by protocol.
		s.counter.Store(0)
	case wire.ReqValidate:
		result, err := s.validator.Validate(ctx, req.Source)
		if err != nil {
			result = ValidateResult{OK: false, Message: err.Error()}
		}
		_ = wire.WriteResponse(conn, wire.Response{
			Kind:    wire.RespValidate,
			OK:      result.OK,
			Message: result.Message,
		})
	}
}
