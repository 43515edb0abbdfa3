package harness

import (
	"context"
	"fmt"

	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/desc/protoparse"
	"github.com/jhump/protoreflect/dynamic"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/reflect/protoreflect"
)

const (
	grpcServiceName = "shadesmith.Validator"
	grpcMethodName  = "Validate"
)

// GrpcValidator reaches a vendor compiler exposed as a gRPC service. The
// service is invoked dynamically: the .proto is parsed at runtime and
// request/response messages are built by field name, so no generated stubs
// are compiled in.
type GrpcValidator struct {
	conn   *grpc.ClientConn
	method *desc.MethodDescriptor
}

// NewGrpcValidator connects to target using the service definition in
// protoPath (see validator.proto).
func NewGrpcValidator(target, protoPath string) (*GrpcValidator, error) {
	parser := protoparse.Parser{ImportPaths: []string{"."}}
	fds, err := parser.ParseFiles(protoPath)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", protoPath, err)
	}

	var method *desc.MethodDescriptor
	for _, fd := range fds {
		if svc := fd.FindService(grpcServiceName); svc != nil {
			method = svc.FindMethodByName(grpcMethodName)
		}
	}
	if method == nil {
		return nil, fmt.Errorf("service %s/%s not found in %s", grpcServiceName, grpcMethodName, protoPath)
	}
	field := method.UnwrapMethod().Input().Fields().ByName("source")
	if field == nil || field.Kind() != protoreflect.StringKind {
		return nil, fmt.Errorf("%s request in %s has no string field %q", grpcMethodName, protoPath, "source")
	}

	conn, err := grpc.NewClient(target, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", target, err)
	}

	return &GrpcValidator{conn: conn, method: method}, nil
}

// Validate implements the Validator interface over gRPC.
func (v *GrpcValidator) Validate(ctx context.Context, source string) (ValidateResult, error) {
	req := dynamic.NewMessage(v.method.GetInputType())
	if err := req.TrySetFieldByName("source", source); err != nil {
		return ValidateResult{}, fmt.Errorf("building request: %w", err)
	}
	resp := dynamic.NewMessage(v.method.GetOutputType())

	methodPath := fmt.Sprintf("/%s/%s", grpcServiceName, grpcMethodName)
	if err := v.conn.Invoke(ctx, methodPath, req, resp); err != nil {
		return ValidateResult{}, fmt.Errorf("RPC failed: %w", err)
	}

	ok, _ := resp.GetFieldByName("ok").(bool)
	message, _ := resp.GetFieldByName("message").(string)
	return ValidateResult{OK: ok, Message: message}, nil
}

// Close releases the underlying connection.
func (v *GrpcValidator) Close() error {
	return v.conn.Close()
}
