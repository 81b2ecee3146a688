package render

// Output is the per-call result of rendering a simplate. Logic pages receive
// it as the reserved `output` binding and may fill the body directly, which
// skips template rendering entirely. MediaType is exported so scripts can read
// (or override) the negotiated type; the body tracks set-ness separately so an
// explicitly empty body still counts as set.
type Output struct {
	MediaType string

	body    []byte
	bodySet bool
}

// NewOutput returns an Output for the negotiated media type with no body.
func NewOutput(mediaType string) *Output {
	return &Output{MediaType: mediaType}
}

// SetBody sets the body from a string. Exposed to logic pages through the
// `output` binding.
func (o *Output) SetBody(body string) {
	o.body = []byte(body)
	o.bodySet = true
}

// SetBodyBytes sets the body from raw bytes.
func (o *Output) SetBodyBytes(body []byte) {
	o.body = body
	o.bodySet = true
}

// Body returns the rendered body, nil when unset.
func (o *Output) Body() []byte {
	return o.body
}

// HasBody reports whether the body has been set, even to an empty value.
func (o *Output) HasBody() bool {
	return o.bodySet
}
