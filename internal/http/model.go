package http

import (
	"context"
	"io"
)

type Request struct {
	Method string
	URL    string
	Body   interface{}
	Header Header
}

// Response is the head of an HTTP/1.x response together with the body
// reader chosen for it. The body must be consumed with Read and the
// response closed, which closes the underlying transport.
type Response struct {
	Version    Version
	StatusCode int
	Reason     string
	Header     Header

	Body io.ReadCloser
}

func (r *Response) Read(p []byte) (int, error) {
	return r.Body.Read(p)
}

func (r *Response) Close() error {
	return r.Body.Close()
}

type Handler = func(ctx context.Context, req *Request) (*Response, error)
type Middleware func(next Handler) Handler
