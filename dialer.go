package http

import (
	"github.com/frankli0324/go-httpc/internal/dialer"
)

type Dialer = dialer.Dialer
type CoreDialer = dialer.CoreDialer
type Resolver = dialer.Resolver
