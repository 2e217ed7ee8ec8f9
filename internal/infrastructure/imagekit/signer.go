// Package imagekit signs direct-upload credentials for the image CDN.
// Clients upload cover images straight to the CDN; the API only hands out
// short-lived signatures and never sees the bytes.
package imagekit

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"strconv"
	"time"

	"github.com/google/uuid"
)

const credentialTTL = 30 * time.Minute

// Credentials are the parameters a client presents to the CDN upload endpoint.
type Credentials struct {
	Token     string `json:"token"`
	Expire    int64  `json:"expire"`
	Signature string `json:"signature"`
	PublicKey string `json:"publicKey"`
}

// Signer issues upload credentials using the account's private key.
type Signer struct {
	publicKey  string
	privateKey string
	now        func() time.Time
}

func NewSigner(publicKey, privateKey string) *Signer {
	return &Signer{publicKey: publicKey, privateKey: privateKey, now: time.Now}
}

// Sign returns fresh upload credentials: a random token, an expiry, and the
// HMAC-SHA1 of token+expire under the private key (the CDN's auth scheme).
func (s *Signer) Sign() Credentials {
	token := uuid.NewString()
	expire := s.now().Add(credentialTTL).Unix()

	mac := hmac.New(sha1.New, []byte(s.privateKey))
	mac.Write([]byte(token + strconv.FormatInt(expire, 10)))

	return Credentials{
		Token:     token,
		Expire:    expire,
		Signature: hex.EncodeToString(mac.Sum(nil)),
		PublicKey: s.publicKey,
	}
}
