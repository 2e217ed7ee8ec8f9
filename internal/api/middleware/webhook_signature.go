package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strconv"
	"strings"
	"time"
)

// Webhook deliveries are signed svix-style: HMAC-SHA256 over
// "{id}.{timestamp}.{payload}" under the base64 secret, with one or more
// base64 signatures in the header, each prefixed "v1,".

const signatureTolerance = 5 * time.Minute

var (
	ErrMissingSignatureHeaders = errors.New("missing webhook signature headers")
	ErrStaleTimestamp          = errors.New("webhook timestamp outside tolerance")
	ErrBadSignature            = errors.New("webhook signature mismatch")
)

// WebhookVerifier checks delivery signatures from the identity provider.
type WebhookVerifier struct {
	secret []byte
	now    func() time.Time
}

// NewWebhookVerifier builds a verifier from the shared endpoint secret. The
// provider issues it with a "whsec_" prefix on the base64 key material.
func NewWebhookVerifier(secret string) (*WebhookVerifier, error) {
	raw := strings.TrimPrefix(secret, "whsec_")
	key, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, errors.New("webhook secret is not valid base64")
	}
	return &WebhookVerifier{secret: key, now: time.Now}, nil
}

// Verify checks the delivery headers against the raw request body.
func (v *WebhookVerifier) Verify(messageID, timestamp, signatureHeader string, payload []byte) error {
	if messageID == "" || timestamp == "" || signatureHeader == "" {
		return ErrMissingSignatureHeaders
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return ErrStaleTimestamp
	}
	sent := time.Unix(ts, 0)
	if diff := v.now().Sub(sent); diff > signatureTolerance || diff < -signatureTolerance {
		return ErrStaleTimestamp
	}

	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(messageID))
	mac.Write([]byte("."))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(payload)
	expected := mac.Sum(nil)

	// The header may carry several space-separated signatures (key rotation);
	// any one match accepts the delivery.
	for _, sig := range strings.Fields(signatureHeader) {
		raw, ok := strings.CutPrefix(sig, "v1,")
		if !ok {
			continue
		}
		decoded, err := base64.StdEncoding.DecodeString(raw)
		if err != nil {
			continue
		}
		if hmac.Equal(decoded, expected) {
			return nil
		}
	}
	return ErrBadSignature
}
