// Package signature verifies ed25519 request signatures over timestamp||body
package signature

import (
	"crypto/ed25519"
	"encoding/hex"
	"errors"
	"strings"
)

var (
	// ErrMissing means the timestamp or the signature was empty
	ErrMissing = errors.New("signature: missing timestamp or signature")
	// ErrEncoding means the signature is not valid hex
	ErrEncoding = errors.New("signature: signature is not hex")
	// ErrLength means the decoded signature is not ed25519.SignatureSize bytes
	ErrLength = errors.New("signature: wrong signature length")
	// ErrBadSignature means the cryptographic check failed
	ErrBadSignature = errors.New("signature: verification failed")
	// ErrPublicKey means the configured public key could not be parsed
	ErrPublicKey = errors.New("signature: invalid public key")
)

// ParsePublicKey decodes a 64 hex character ed25519 public key
func ParsePublicKey(s string) (ed25519.PublicKey, error) {
	b, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil || len(b) != ed25519.PublicKeySize {
		return nil, ErrPublicKey
	}
	return ed25519.PublicKey(b), nil
}

// Check verifies sigHex over the exact bytes of timestamp followed by body
// the returned error is one of the package sentinels, nil on success
func Check(pub ed25519.PublicKey, timestamp string, body []byte, sigHex string) error {
	if timestamp == "" || sigHex == "" {
		return ErrMissing
	}
	if len(pub) != ed25519.PublicKeySize {
		return ErrPublicKey
	}
	sig, err := hex.DecodeString(sigHex)
	if err != nil {
		return ErrEncoding
	}
	if len(sig) != ed25519.SignatureSize {
		return ErrLength
	}

	msg := make([]byte, 0, len(timestamp)+len(body))
	msg = append(msg, timestamp...)
	msg = append(msg, body...)
	if !ed25519.Verify(pub, msg, sig) {
		return ErrBadSignature
	}
	return nil
}

// Verify is the boolean form of Check, it never panics
func Verify(pub ed25519.PublicKey, timestamp string, body []byte, sigHex string) bool {
	return Check(pub, timestamp, body, sigHex) == nil
}

// Verifier binds a public key loaded once at startup
// it is immutable and safe for concurrent use
type Verifier struct {
	pub ed25519.PublicKey
}

// NewVerifier copies pub so later mutation by the caller cannot leak in
func NewVerifier(pub ed25519.PublicKey) Verifier {
	return Verifier{pub: append(ed25519.PublicKey(nil), pub...)}
}

// Check verifies a request signature against the bound key
func (v Verifier) Check(timestamp string, body []byte, sigHex string) error {
	return Check(v.pub, timestamp, body, sigHex)
}

// Verify reports whether the signature is valid for the bound key
func (v Verifier) Verify(timestamp string, body []byte, sigHex string) bool {
	return v.Check(timestamp, body, sigHex) == nil
}
