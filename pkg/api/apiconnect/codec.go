// Package apiconnect binds the api messages to Connect handlers and clients.
package apiconnect

import (
	"encoding/json"

	"connectrpc.com/connect"
)

// CodecName is registered under the name Connect uses for application/json.
const CodecName = "json"

// Codec marshals plain Go messages as JSON.
type Codec struct{}

var _ connect.Codec = Codec{}

func (Codec) Name() string { return CodecName }

func (Codec) Marshal(msg any) ([]byte, error) { return json.Marshal(msg) }

func (Codec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, msg)
}

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append(append([]connect.HandlerOption{}, opts...), connect.WithCodec(Codec{}))
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append(append([]connect.ClientOption{}, opts...), connect.WithCodec(Codec{}))
}
