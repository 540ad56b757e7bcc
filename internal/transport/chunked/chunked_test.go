package chunked

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/frankli0324/go-httpc/internal/http"
)

func TestReaderReassembles(t *testing.T) {
	r := NewReader(strings.NewReader("4\r\nWiki\r\n5\r\npedia\r\n0\r\n\r\n"))
	b, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "Wikipedia" {
		t.Errorf("got %q", b)
	}
}

func TestReaderOneByteAtATime(t *testing.T) {
	r := NewReader(iotest.OneByteReader(strings.NewReader("4\r\nWiki\r\n5;ext=1\r\npedia\r\n0\r\nTrailer: x\r\n\r\n")))
	if err := iotest.TestReader(r, []byte("Wikipedia")); err != nil {
		t.Error(err)
	}
}

func TestReaderNeverCrossesChunkBoundary(t *testing.T) {
	r := NewReader(strings.NewReader("4\r\nWiki\r\n5\r\npedia\r\n0\r\n\r\n"))
	buf := make([]byte, 64)
	n, err := r.Read(buf)
	if err != nil || string(buf[:n]) != "Wiki" {
		t.Fatalf("first read = %q, %v", buf[:n], err)
	}
	n, err = r.Read(buf[:2])
	if err != nil || string(buf[:n]) != "pe" || r.Remaining() != 3 {
		t.Fatalf("second read = %q, %v, remaining %d", buf[:n], err, r.Remaining())
	}
	n, err = r.Read(buf)
	if err != nil || string(buf[:n]) != "dia" {
		t.Fatalf("third read = %q, %v", buf[:n], err)
	}
	if _, err = r.Read(buf); err != io.EOF {
		t.Fatalf("final read err = %v", err)
	}
}

func TestReaderBareLF(t *testing.T) {
	b, err := io.ReadAll(NewReader(strings.NewReader("3\nabc\r\n0\n\n")))
	if err != nil || string(b) != "abc" {
		t.Errorf("got %q, %v", b, err)
	}
}

func TestReaderMalformed(t *testing.T) {
	for _, in := range []string{
		"x\r\nabc\r\n0\r\n\r\n",
		"\r\n",
		"3\r\nabcXY0\r\n\r\n",
		"ffffffffffffffff\r\n",
	} {
		_, err := io.ReadAll(NewReader(strings.NewReader(in)))
		var re *http.RequestError
		if !errors.As(err, &re) {
			t.Errorf("%q: err = %v, want RequestError", in, err)
		}
	}
}

func TestReaderConnectionLost(t *testing.T) {
	for _, in := range []string{"", "4\r\nWi", "4\r\nWiki", "4\r\nWiki\r\n"} {
		_, err := io.ReadAll(NewReader(strings.NewReader(in)))
		if !errors.Is(err, http.ErrConnectionLost) {
			t.Errorf("%q: err = %v, want ErrConnectionLost", in, err)
		}
	}
}

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.Write([]byte("Wiki"))
	w.Write(nil)
	w.Write([]byte("pedia in chunks"))
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	want := "4\r\nWiki\r\nf\r\npedia in chunks\r\n0\r\n\r\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
	b, err := io.ReadAll(NewReader(&buf))
	if err != nil || string(b) != "Wikipedia in chunks" {
		t.Errorf("round trip = %q, %v", b, err)
	}
}
