package fileservice

import (
	"fmt"

	"google.golang.org/grpc/encoding"
)

// CodecName is the content subtype the codec announces. It matches the
// default protobuf codec so the client interoperates with generated servers.
const CodecName = "proto"

// Codec marshals the messages of this package. It is installed per call
// (grpc.ForceCodec) and per server (grpc.ForceServerCodec) rather than
// registered globally, so it never replaces the process-wide proto codec.
type Codec struct{}

var _ encoding.Codec = Codec{}

func (Codec) Name() string { return CodecName }

func (Codec) Marshal(v any) ([]byte, error) {
	m, ok := v.(Message)
	if !ok {
		return nil, fmt.Errorf("fileservice codec: cannot marshal %T", v)
	}
	return Marshal(m), nil
}

func (Codec) Unmarshal(data []byte, v any) error {
	m, ok := v.(Message)
	if !ok {
		return fmt.Errorf("fileservice codec: cannot unmarshal into %T", v)
	}
	if err := Unmarshal(data, m); err != nil {
		return fmt.Errorf("fileservice codec: %T: %w", v, err)
	}
	return nil
}
