package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SignatureHeader is the request header carrying the webhook signature.
const SignatureHeader = "Payment-Signature"

// DefaultTolerance bounds how stale a signed timestamp may be before the
// delivery is rejected as a possible replay.
const DefaultTolerance = 5 * time.Minute

var (
	ErrBadSignature = errors.New("webhook signature verification failed")
)

// VerifySignature checks an HMAC-SHA256 signature of the form
// "t=<unix>,v1=<hex>" computed over "<unix>.<raw body>" with the shared
// webhook secret. The raw body must be the unparsed request bytes; any JSON
// interpretation happens only after this check passes.
func VerifySignature(payload []byte, header, secret string, tolerance time.Duration, now time.Time) error {
	var timestamp int64 = -1
	var signatures []string

	for _, part := range strings.Split(header, ",") {
		k, v, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch k {
		case "t":
			ts, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return ErrBadSignature
			}
			timestamp = ts
		case "v1":
			signatures = append(signatures, v)
		}
	}

	if timestamp < 0 || len(signatures) == 0 {
		return ErrBadSignature
	}

	signedAt := time.Unix(timestamp, 0)
	if tolerance > 0 && now.Sub(signedAt) > tolerance {
		return ErrBadSignature
	}

	expected := ComputeSignature(payload, secret, timestamp)
	for _, sig := range signatures {
		if hmac.Equal([]byte(sig), []byte(expected)) {
			return nil
		}
	}
	return ErrBadSignature
}

// ComputeSignature produces the hex HMAC the processor would attach for the
// given payload and timestamp. Exported for tests and local tooling.
func ComputeSignature(payload []byte, secret string, timestamp int64) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", timestamp)
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// SignaturePayload formats a complete signature header for the given payload,
// the counterpart of VerifySignature.
func SignaturePayload(payload []byte, secret string, timestamp int64) string {
	return fmt.Sprintf("t=%d,v1=%s", timestamp, ComputeSignature(payload, secret, timestamp))
}
