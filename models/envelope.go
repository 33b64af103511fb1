package models

import "net/http"

// RequestEnvelope is a transport-agnostic outbound HTTP call. It is built
// once per pull and consumed by exactly one transport call.
type RequestEnvelope struct {
	Method string
	URL    string
	Header http.Header
	Body   string
}

// ResponseEnvelope is the raw outcome of one transport call.
type ResponseEnvelope struct {
	StatusCode int
	Body       string
}
