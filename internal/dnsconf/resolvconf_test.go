package dnsconf

import (
	"reflect"
	"strings"
	"testing"

	"github.com/frankli0324/go-httpc/internal/iputil"
)

func TestParseResolvConf(t *testing.T) {
	c := ParseResolvConf(strings.NewReader(`
# comment
; another comment
search example.test
NAMESERVER 192.0.2.53
nameserver	2001:DB8::53
nameserver 192.0.2.53
nameserver not-an-address
nameserver
options ndots:2
nameserver 198.51.100.53
nameserver 2001:db8:0::53
`))
	want := []Server{
		{iputil.FamilyInet, "192.0.2.53", 53},
		{iputil.FamilyInet6, "2001:db8::53", 53},
		{iputil.FamilyInet, "198.51.100.53", 53},
	}
	if got := c.Servers(); !reflect.DeepEqual(got, want) {
		t.Errorf("Servers() = %v, want %v", got, want)
	}
}

func TestResolvConfDedupKeepsFirstSeenOrder(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 3; i++ {
		b.WriteString("nameserver 203.0.113.2\nnameserver 203.0.113.1\n")
	}
	got := ParseResolvConf(strings.NewReader(b.String())).Servers()
	if len(got) != 2 || got[0].IP != "203.0.113.2" || got[1].IP != "203.0.113.1" {
		t.Errorf("Servers() = %v", got)
	}
}

func TestServerAddr(t *testing.T) {
	s, err := ParseServer("2001:db8::1")
	if err != nil {
		t.Fatal(err)
	}
	if s.Addr() != "[2001:db8::1]:53" {
		t.Errorf("Addr() = %q", s.Addr())
	}
	if _, err := ParseServer("ns.example"); err == nil {
		t.Error("expected error for a name")
	}
}

func TestParseResolvConfSkipsOversizedLine(t *testing.T) {
	input := "# " + strings.Repeat("x", 70000) + "\nnameserver 192.0.2.53\n"
	got := ParseResolvConf(strings.NewReader(input)).Servers()
	want := []Server{{iputil.FamilyInet, "192.0.2.53", 53}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Servers() = %v, want %v", got, want)
	}
}
