package testkit

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"
)

// Signature header names as sent by the platform
const (
	HeaderSignature = "X-Signature-Ed25519"
	HeaderTimestamp = "X-Signature-Timestamp"
)

// Keypair generates a fresh ed25519 keypair for signing test requests
func Keypair(t *testing.T) (ed25519.PublicKey, ed25519.PrivateKey) {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	return pub, priv
}

// Sign returns the hex signature over timestamp||body
func Sign(priv ed25519.PrivateKey, timestamp string, body []byte) string {
	msg := make([]byte, 0, len(timestamp)+len(body))
	msg = append(msg, timestamp...)
	msg = append(msg, body...)
	return hex.EncodeToString(ed25519.Sign(priv, msg))
}

// SignedRequest builds a POST carrying body and valid signature headers for priv
// a nil priv sets a well-formed signature that will not verify
func SignedRequest(priv ed25519.PrivateKey, target, body string) *http.Request {
	ts := strconv.FormatInt(time.Now().Unix(), 10)
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HeaderTimestamp, ts)
	if priv == nil {
		req.Header.Set(HeaderSignature, strings.Repeat("ab", ed25519.SignatureSize))
	} else {
		req.Header.Set(HeaderSignature, Sign(priv, ts, []byte(body)))
	}
	return req
}
