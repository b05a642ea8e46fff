// Package session provides methods for signing and verifying stateless session tokens.
package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/dcslol/dcs_go_invite_shortener/internal/config"
	"github.com/dcslol/dcs_go_invite_shortener/internal/service/errors"
	"github.com/dcslol/dcs_go_invite_shortener/internal/service/modelsession"
	"github.com/dcslol/dcs_go_invite_shortener/internal/service/session"
)

// Check interface implementation explicitly
var (
	_ session.Codec = (*Codec)(nil)
)

// separator joins the payload and digest segments; it never occurs in raw
// URL-safe base64 output.
const separator = "."

// Codec signs and verifies compact session tokens with a process-wide secret.
type Codec struct {
	key []byte
}

// NewSessionCodec initializes a session codec with signing functionality.
func NewSessionCodec(cfg *config.SecretConfig) (*Codec, error) {
	if cfg == nil || cfg.SessionKey == "" {
		return nil, &errors.ServiceFoundNilDependency{Msg: "no session key was passed to session codec initializer"}
	}
	return &Codec{key: []byte(cfg.SessionKey)}, nil
}

// Sign serializes the payload, computes a keyed digest over the serialized
// bytes and joins both segments as base64url(payload).base64url(digest).
func (c *Codec) Sign(payload modelsession.Payload) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	digest := c.digest(data)
	return base64.RawURLEncoding.EncodeToString(data) + separator + base64.RawURLEncoding.EncodeToString(digest), nil
}

// Verify decodes both segments, recomputes the digest over the payload bytes
// and compares in constant time. Any failure yields nil.
func (c *Codec) Verify(token string) *modelsession.Payload {
	segments := strings.Split(token, separator)
	if len(segments) != 2 {
		return nil
	}
	data, err := base64.RawURLEncoding.DecodeString(segments[0])
	if err != nil {
		return nil
	}
	digest, err := base64.RawURLEncoding.DecodeString(segments[1])
	if err != nil {
		return nil
	}
	if !hmac.Equal(digest, c.digest(data)) {
		return nil
	}
	var payload modelsession.Payload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil
	}
	return &payload
}

func (c *Codec) digest(data []byte) []byte {
	mac := hmac.New(sha256.New, c.key)
	mac.Write(data)
	return mac.Sum(nil)
}
