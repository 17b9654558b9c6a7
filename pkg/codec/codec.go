package codec

import jsoniter "github.com/json-iterator/go"

// JSON encodes payloads as compact JSON with struct fields in declaration
// order, compatible with encoding/json tags.
var JSON Codec = jsonCodec{api: jsoniter.ConfigCompatibleWithStandardLibrary}

type jsonCodec struct {
	api jsoniter.API
}

func (j jsonCodec) Marshal(v any) ([]byte, error) {
	return j.api.Marshal(v)
}

func (j jsonCodec) Unmarshal(b []byte, out any) error {
	return j.api.Unmarshal(b, out)
}

func (j jsonCodec) Valid(b []byte) bool {
	return j.api.Valid(b)
}

type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(b []byte, out any) error
	Valid(b []byte) bool
}
