package dialer

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"

	"github.com/frankli0324/go-httpc/internal/http"
)

// NormalizeVerify interprets a verify setting: true verifies against the
// system roots, a string verifies against the CA bundle at that path and
// false disables verification. nil means true.
func NormalizeVerify(verify interface{}) (requireCert bool, caFile string, err error) {
	switch v := verify.(type) {
	case nil:
		return true, "", nil
	case bool:
		return v, "", nil
	case string:
		if v == "" {
			return false, "", fmt.Errorf("%w: empty CA bundle path", http.ErrInvalidVerify)
		}
		return true, v, nil
	}
	return false, "", fmt.Errorf("%w, got %T", http.ErrInvalidVerify, verify)
}

// NormalizeCert interprets a client certificate setting: nil for none, a
// string for a file holding both certificate and key, or a pair of paths.
func NormalizeCert(cert interface{}) (certFile, keyFile string, err error) {
	switch c := cert.(type) {
	case nil:
		return "", "", nil
	case string:
		if c == "" {
			return "", "", fmt.Errorf("%w: empty path", http.ErrInvalidCert)
		}
		return c, c, nil
	case [2]string:
		if c[0] == "" || c[1] == "" {
			return "", "", fmt.Errorf("%w: empty path", http.ErrInvalidCert)
		}
		return c[0], c[1], nil
	case []string:
		if len(c) != 2 || c[0] == "" || c[1] == "" {
			return "", "", fmt.Errorf("%w: want 2 paths, got %q", http.ErrInvalidCert, c)
		}
		return c[0], c[1], nil
	}
	return "", "", fmt.Errorf("%w, got %T", http.ErrInvalidCert, cert)
}

func (d *CoreDialer) tlsConfig(serverName string) (*tls.Config, error) {
	config := d.TLSConfig.Clone()
	if config == nil {
		config = &tls.Config{}
	}
	config.ServerName = serverName
	config.InsecureSkipVerify = d.SkipVerify
	if d.CAFile != "" {
		pem, err := os.ReadFile(d.CAFile)
		if err != nil {
			return nil, err
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("no certificates found in %s", d.CAFile)
		}
		config.RootCAs = pool
	}
	if d.CertFile != "" {
		cert, err := tls.LoadX509KeyPair(d.CertFile, d.KeyFile)
		if err != nil {
			return nil, err
		}
		config.Certificates = []tls.Certificate{cert}
	}
	return config, nil
}

// matchHostname checks the leaf certificate of the peer against hostname.
func matchHostname(state tls.ConnectionState, hostname string) error {
	if len(state.PeerCertificates) == 0 {
		return fmt.Errorf("%w: no peer certificate", http.ErrHostnameMismatch)
	}
	if err := state.PeerCertificates[0].VerifyHostname(hostname); err != nil {
		return fmt.Errorf("%w: %v", http.ErrHostnameMismatch, err)
	}
	return nil
}
