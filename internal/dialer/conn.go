package dialer

import (
	"context"
	"io"
	"net"
	"sync/atomic"
)

// Conn is a transport owned by a single exchange. It is closed on the first
// read or write error and as soon as the context of the exchange is done.
type Conn struct {
	conn   net.Conn
	closed atomic.Bool
	stop   func() bool
}

// Watch wraps c so that it is closed once ctx is done.
func Watch(ctx context.Context, c net.Conn) *Conn {
	wc := &Conn{conn: c}
	wc.stop = context.AfterFunc(ctx, func() {
		log.Debugf("closing connection to %v: %v", c.RemoteAddr(), context.Cause(ctx))
		wc.Close()
	})
	return wc
}

func (c *Conn) Closed() bool {
	return c.closed.Load()
}

func (c *Conn) Write(p []byte) (n int, err error) {
	n, err = c.conn.Write(p)
	if err != nil {
		if !c.Closed() {
			log.Errorf("error on write: %v", err)
		}
		c.Close()
	}
	return
}

func (c *Conn) Read(p []byte) (n int, err error) {
	n, err = c.conn.Read(p)
	if err != nil {
		if err != io.EOF && !c.Closed() {
			log.Errorf("error on read: %v", err)
		}
		c.Close()
	}
	return
}

func (c *Conn) Close() error {
	if c.closed.Swap(true) {
		return nil
	}
	c.stop()
	return c.conn.Close()
}
