package gateway

import "encoding/json"

// Payload is a settled response body. The gateway records whether the
// backend declared it JSON; callers pick the reading they need.
type Payload struct {
	raw    []byte
	isJSON bool
}

// NewPayload wraps an already-settled body. Fakes standing in for the
// client use it; production payloads come out of Client calls.
func NewPayload(raw []byte, isJSON bool) Payload {
	return Payload{raw: raw, isJSON: isJSON}
}

// IsJSON reports whether the backend declared a JSON content type.
func (p Payload) IsJSON() bool {
	return p.isJSON
}

// Text returns the body verbatim.
func (p Payload) Text() string {
	return string(p.raw)
}

// Decode unmarshals the body into v.
func (p Payload) Decode(v any) error {
	return json.Unmarshal(p.raw, v)
}
