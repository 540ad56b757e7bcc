package http

import (
	"errors"
	"strconv"
	"strings"
)

type Version struct {
	Major, Minor int
}

var (
	HTTP10 = Version{1, 0}
	HTTP11 = Version{1, 1}
)

var errInvalidVersion = errors.New("invalid HTTP version")

// ParseVersion parses a protocol token of the form HTTP/<major>.<minor>.
func ParseVersion(s string) (Version, error) {
	rest, ok := strings.CutPrefix(s, "HTTP/")
	if !ok {
		return Version{}, errInvalidVersion
	}
	major, minor, ok := strings.Cut(rest, ".")
	if !ok {
		return Version{}, errInvalidVersion
	}
	ma, err := parseDigits(major)
	if err != nil {
		return Version{}, err
	}
	mi, err := parseDigits(minor)
	if err != nil {
		return Version{}, err
	}
	return Version{ma, mi}, nil
}

func parseDigits(s string) (int, error) {
	if s == "" || len(s) > 3 {
		return 0, errInvalidVersion
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, errInvalidVersion
		}
	}
	return strconv.Atoi(s)
}

func (v Version) String() string {
	return "HTTP/" + strconv.Itoa(v.Major) + "." + strconv.Itoa(v.Minor)
}
