package http

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestParseTarget(t *testing.T) {
	cases := map[string]Target{
		"http://www.example.com":              {Host: "www.example.com", RequestURI: "/"},
		"http://www.example.com:8080/a?b=c#d": {Host: "www.example.com", Port: "8080", RequestURI: "/a?b=c"},
		"https://[2001:db8::1]/x":             {Host: "2001:db8::1", RequestURI: "/x"},
		"http://www.example.com/test?1=33=1":  {Host: "www.example.com", RequestURI: "/test?1=33=1"},
	}
	for raw, want := range cases {
		got, err := ParseTarget(raw, false)
		if err != nil {
			t.Errorf("ParseTarget(%q): %v", raw, err)
			continue
		}
		if *got != want {
			t.Errorf("ParseTarget(%q) = %+v, want %+v", raw, *got, want)
		}
	}
}

func TestParseSocketTarget(t *testing.T) {
	got, err := ParseTarget("http+unix://%2Fvar%2Frun%2Fapp.sock/v1/info?all=1", true)
	if err != nil {
		t.Fatal(err)
	}
	if got.Socket != "/var/run/app.sock" || got.RequestURI != "/v1/info?all=1" {
		t.Errorf("unexpected target %+v", *got)
	}
	if got.HostHeader() != "localhost" {
		t.Errorf("HostHeader() = %q", got.HostHeader())
	}

	got, err = ParseTarget("http+unix://tmp%2Fapp.sock", true)
	if err != nil {
		t.Fatal(err)
	}
	if got.Socket != "/tmp/app.sock" || got.RequestURI != "/" {
		t.Errorf("unexpected target %+v", *got)
	}
}

func TestParseTargetInvalid(t *testing.T) {
	for _, raw := range []string{"http:///path", "http://%zz/", "http+unix:///x"} {
		_, err := ParseTarget(raw, strings.HasPrefix(raw, "http+unix"))
		if !errors.Is(err, ErrInvalidURL) {
			t.Errorf("ParseTarget(%q) err = %v, want ErrInvalidURL", raw, err)
		}
	}
}

func TestHostHeaderBracketsIPv6(t *testing.T) {
	tg := &Target{Host: "::1"}
	if tg.HostHeader() != "[::1]" {
		t.Errorf("HostHeader() = %q", tg.HostHeader())
	}
}

func TestSchemeOf(t *testing.T) {
	if s, err := SchemeOf("HTTPS://example.com"); err != nil || s != "https" {
		t.Errorf("SchemeOf = %q, %v", s, err)
	}
	if s, err := SchemeOf("ftp://example.com"); err != nil || s != "ftp" {
		t.Errorf("SchemeOf = %q, %v", s, err)
	}
	for _, raw := range []string{"example.com", "://x", "1http://x"} {
		if _, err := SchemeOf(raw); !errors.Is(err, ErrInvalidURL) {
			t.Errorf("SchemeOf(%q) err = %v", raw, err)
		}
	}
}

func TestPrepareBody(t *testing.T) {
	for _, body := range []interface{}{"hello", []byte("hello"), bytes.NewBufferString("hello"), bytes.NewReader([]byte("hello")), strings.NewReader("hello")} {
		pr, err := (&Request{Method: "POST", URL: "http://x/", Body: body}).Prepare()
		if err != nil {
			t.Fatalf("%T: %v", body, err)
		}
		if string(pr.Body) != "hello" {
			t.Errorf("%T: body = %q", body, pr.Body)
		}
	}
	if _, err := (&Request{Method: "POST", URL: "http://x/", Body: 42}).Prepare(); err == nil {
		t.Error("expected unsupported body type error")
	}
}

func TestParseVersion(t *testing.T) {
	if v, err := ParseVersion("HTTP/1.1"); err != nil || v != HTTP11 {
		t.Errorf("ParseVersion = %v, %v", v, err)
	}
	if v, err := ParseVersion("HTTP/2.0"); err != nil || v != (Version{2, 0}) {
		t.Errorf("ParseVersion = %v, %v", v, err)
	}
	for _, s := range []string{"HTTP/1", "HTTPS/1.1", "HTTP/a.b", "HTTP/1.1x", ""} {
		if _, err := ParseVersion(s); err == nil {
			t.Errorf("ParseVersion(%q) succeeded", s)
		}
	}
	if HTTP10.String() != "HTTP/1.0" {
		t.Error(HTTP10.String())
	}
}
