package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
)

func ExampleClient() {
	cl := &Client{}
	resp, err := cl.CtxDo(context.Background(), &Request{
		Method: "GET",
		URL:    "http://www.google.com/?a=b",
		Header: http.Header{
			// "Connection": {"close"},
		},
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	defer resp.Close()
	b, err := io.ReadAll(resp)
	fmt.Println(err)
	fmt.Println(string(b))
}

func ExampleClient_Request() {
	cl, err := NewClient(Config{Verify: "/etc/ssl/certs/ca-certificates.crt"})
	if err != nil {
		fmt.Println(err)
		return
	}
	cl.Use(Metrics)
	RegisterMetrics(prometheus.DefaultRegisterer)

	cr, err := cl.Request(context.Background(), &Request{
		Method: "POST",
		URL:    "https://httpbin.org/post",
		Header: Header{"Transfer-Encoding": {"chunked"}},
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, part := range []string{"hello", " ", "world"} {
		if _, err := cr.Write([]byte(part)); err != nil {
			fmt.Println(err)
			return
		}
	}
	resp, err := cr.Finish()
	if err != nil {
		fmt.Println(err)
		return
	}
	defer resp.Close()
	io.Copy(os.Stdout, resp)
}

func ExampleClient_EnableUnixSockets() {
	cl := &Client{}
	cl.EnableUnixSockets()
	resp, err := cl.CtxDo(context.Background(), &Request{
		Method: "GET",
		URL:    "http+unix://%2Fvar%2Frun%2Fdocker.sock/version",
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	defer resp.Close()
	fmt.Println(resp.StatusCode)
}
