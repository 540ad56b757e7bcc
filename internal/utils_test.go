package internal_test

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"net"
	"sync/atomic"
	"testing"

	stdhttp "net/http"

	"github.com/frankli0324/go-httpc/internal"
	"github.com/frankli0324/go-httpc/internal/dialer"
	"github.com/frankli0324/go-httpc/internal/http"
)

// TestDialer answers every dial with one end of an in-memory pipe. The
// other end reads a whole request and hands its raw bytes to Handle.
type TestDialer struct {
	Handle func(raw []byte, conn net.Conn)
	dials  int32
}

// Dial implements dialer.Dialer.
func (d *TestDialer) Dial(ctx context.Context, s dialer.Scheme, t *http.Target) (net.Conn, error) {
	atomic.AddInt32(&d.dials, 1)
	client, server := net.Pipe()
	go func() {
		defer server.Close()
		var raw bytes.Buffer
		req, err := stdhttp.ReadRequest(bufio.NewReader(io.TeeReader(server, &raw)))
		if err != nil {
			return
		}
		io.Copy(io.Discard, req.Body)
		if d.Handle != nil {
			d.Handle(raw.Bytes(), server)
		}
	}()
	return client, nil
}

func (d *TestDialer) Dials() int {
	return int(atomic.LoadInt32(&d.dials))
}

func newTestClient(d *TestDialer) *internal.Client {
	c := &internal.Client{}
	c.UseDialer(func(dialer.Dialer) dialer.Dialer { return d })
	return c
}

// Respond returns a client whose peer answers any request with response
// and then closes the connection.
func Respond(response string) (*internal.Client, *TestDialer) {
	d := &TestDialer{Handle: func(_ []byte, conn net.Conn) {
		io.WriteString(conn, response)
	}}
	return newTestClient(d), d
}

// SendSingleRequest sends req and returns the bytes its peer received.
func SendSingleRequest(t *testing.T, req *http.Request) []byte {
	received := make(chan []byte, 1)
	c := newTestClient(&TestDialer{Handle: func(raw []byte, conn net.Conn) {
		received <- append([]byte(nil), raw...)
		io.WriteString(conn, "HTTP/1.1 200 OK\r\nContent-Length: 0\r\nConnection: close\r\n\r\n")
	}})
	resp, err := c.CtxDo(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	return <-received
}
