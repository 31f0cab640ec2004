package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strings"
)

// AdminSubject is the token subject that grants access to the contact inbox.
const AdminSubject = "admin"

const minSecretLen = 32

// CreateToken signs subject with secret: base64url(subject) "." hex(hmac).
func CreateToken(subject string, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(subject))
	sig := hex.EncodeToString(mac.Sum(nil))
	return base64.URLEncoding.EncodeToString([]byte(subject)) + "." + sig
}

// VerifyToken checks the signature and returns the subject.
func VerifyToken(token string, secret []byte) (string, error) {
	parts := strings.SplitN(token, ".", 2)
	if len(parts) != 2 {
		return "", errors.New("invalid token format")
	}
	payload, err := base64.URLEncoding.DecodeString(parts[0])
	if err != nil {
		return "", err
	}

	mac := hmac.New(sha256.New, secret)
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(parts[1])) {
		return "", errors.New("invalid signature")
	}
	return string(payload), nil
}

// SecretBytes pads s to the minimum signing key length (32 bytes).
func SecretBytes(s string) []byte {
	b := []byte(s)
	if len(b) < minSecretLen {
		out := make([]byte, minSecretLen)
		copy(out, b)
		return out
	}
	return b
}
