// Package wire implements the binary-framed request/response protocol
// spoken to a remote validation server over a stream socket.
//
// Every frame is a 32-bit big-endian length followed by a funbit-encoded
// body. A request body is a one-byte tag optionally followed by a source
// payload; a response body is a one-byte tag followed by either a 64-bit
// counter or an ok byte plus diagnostic text.
package wire

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/funvibe/funbit/pkg/funbit"
)

// RequestKind tags a request body.
type RequestKind uint8

const (
	// ReqGetCount asks how many requests the server has handled.
	ReqGetCount RequestKind = iota + 1
	// ReqResetCount zeroes the server's counter. It has no response.
	ReqResetCount
	// ReqValidate asks the server to compile Source and report the result.
	ReqValidate
)

// ResponseKind tags a response body.
type ResponseKind uint8

const (
	// RespCount carries the server's request counter.
	RespCount ResponseKind = iota + 1
	// RespValidate carries a validation verdict.
	RespValidate
)

// Request is one client message.
type Request struct {
	Kind   RequestKind
	Source string
}

// Response is one server message.
type Response struct {
	Kind    ResponseKind
	Count   uint64
	OK      bool
	Message string
}

// maxFrameLen guards against a corrupt or hostile peer announcing an
// absurd frame.
const maxFrameLen = 16 << 20

// WriteRequest frames and writes one request.
func WriteRequest(w io.Writer, req Request) error {
	b := funbit.NewBuilder()
	funbit.AddInteger(b, int(req.Kind), funbit.WithSize(8))
	if req.Kind == ReqValidate {
		funbit.AddBinary(b, []byte(req.Source))
	}
	return writeFrame(w, b)
}

// ReadRequest reads and decodes one request.
func ReadRequest(r io.Reader) (Request, error) {
	body, err := readFrame(r)
	if err != nil {
		return Request{}, err
	}

	m := funbit.NewMatcher()
	var kind int
	var rest []byte
	funbit.Integer(m, &kind, funbit.WithSize(8))
	funbit.RestBinary(m, &rest)
	if _, err := m.Match(funbit.NewBitStringFromBytes(body)); err != nil {
		return Request{}, fmt.Errorf("decoding request: %w", err)
	}

	req := Request{Kind: RequestKind(kind)}
	switch req.Kind {
	case ReqGetCount, ReqResetCount:
		if len(rest) != 0 {
			return Request{}, fmt.Errorf("unexpected %d-byte payload on request tag %d", len(rest), kind)
		}
	case ReqValidate:
		req.Source = string(rest)
	default:
		return Request{}, fmt.Errorf("unknown request tag %d", kind)
	}
	return req, nil
}

// WriteResponse frames and writes one response.
func WriteResponse(w io.Writer, resp Response) error {
	b := funbit.NewBuilder()
	funbit.AddInteger(b, int(resp.Kind), funbit.WithSize(8))
	switch resp.Kind {
	case RespCount:
		funbit.AddInteger(b, resp.Count, funbit.WithSize(64))
	case RespValidate:
		ok := 0
		if resp.OK {
			ok = 1
		}
		funbit.AddInteger(b, ok, funbit.WithSize(8))
		funbit.AddBinary(b, []byte(resp.Message))
	default:
		return fmt.Errorf("unknown response tag %d", resp.Kind)
	}
	return writeFrame(w, b)
}

// ReadResponse reads and decodes one response.
func ReadResponse(r io.Reader) (Response, error) {
	body, err := readFrame(r)
	if err != nil {
		return Response{}, err
	}

	m := funbit.NewMatcher()
	var kind int
	var rest []byte
	funbit.Integer(m, &kind, funbit.WithSize(8))
	funbit.RestBinary(m, &rest)
	if _, err := m.Match(funbit.NewBitStringFromBytes(body)); err != nil {
		return Response{}, fmt.Errorf("decoding response: %w", err)
	}

	resp := Response{Kind: ResponseKind(kind)}
	switch resp.Kind {
	case RespCount:
		cm := funbit.NewMatcher()
		var count uint64
		funbit.Integer(cm, &count, funbit.WithSize(64))
		if _, err := cm.Match(funbit.NewBitStringFromBytes(rest)); err != nil {
			return Response{}, fmt.Errorf("decoding count: %w", err)
		}
		resp.Count = count
	case RespValidate:
		if len(rest) < 1 {
			return Response{}, fmt.Errorf("validate response body too short")
		}
		resp.OK = rest[0] != 0
		resp.Message = string(rest[1:])
	default:
		return Response{}, fmt.Errorf("unknown response tag %d", kind)
	}
	return resp, nil
}

func writeFrame(w io.Writer, b *funbit.Builder) error {
	bits, err := b.Build()
	if err != nil {
		return fmt.Errorf("encoding frame: %w", err)
	}
	body := bits.ToBytes()

	var header [4]byte
	binary.BigEndian.PutUint32(header[:], uint32(len(body)))
	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("writing frame header: %w", err)
	}
	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("writing frame body: %w", err)
	}
	return nil
}

func readFrame(r io.Reader) ([]byte, error) {
	var header [4]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, fmt.Errorf("reading frame header: %w", err)
	}
	n := binary.BigEndian.Uint32(header[:])
	if n > maxFrameLen {
		return nil, fmt.Errorf("frame length %d exceeds limit", n)
	}
	body := make([]byte, n)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, fmt.Errorf("reading frame body: %w", err)
	}
	return body, nil
}
