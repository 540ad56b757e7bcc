// Package iputil classifies and normalizes address literals. It is shared by
// the configuration parsers and the dialer so that every IP used as a map
// key or a dial target has one spelling.
package iputil

import (
	"errors"
	"net/netip"
	"strconv"

	"golang.org/x/sys/unix"
)

type Family int

const (
	FamilyUnix  Family = unix.AF_UNIX
	FamilyInet  Family = unix.AF_INET
	FamilyInet6 Family = unix.AF_INET6
)

func (f Family) String() string {
	switch f {
	case FamilyInet:
		return "inet"
	case FamilyInet6:
		return "inet6"
	case FamilyUnix:
		return "unix"
	}
	return "family(" + strconv.Itoa(int(f)) + ")"
}

// Network returns the tcp network name to dial for addresses of this family.
func (f Family) Network() string {
	switch f {
	case FamilyInet:
		return "tcp4"
	case FamilyInet6:
		return "tcp6"
	case FamilyUnix:
		return "unix"
	}
	return "tcp"
}

var ErrInvalidIP = errors.New("invalid IP address literal")

// ParseIP returns the family and canonical string form of an address
// literal. Zoned IPv6 addresses are rejected.
func ParseIP(s string) (Family, string, error) {
	addr, err := netip.ParseAddr(s)
	if err != nil || addr.Zone() != "" {
		return 0, "", ErrInvalidIP
	}
	if addr.Is4() {
		return FamilyInet, addr.String(), nil
	}
	return FamilyInet6, addr.String(), nil
}
