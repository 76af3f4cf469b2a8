package cookie

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/hkdf"
)

// keyset holds the keys derived from one configured secret.
type keyset struct {
	signKey []byte
	aead    cipher.AEAD
}

func deriveKeyset(secret string) (keyset, error) {
	signKey, err := derive(secret, "shelfadmin/cookie/sign", 32)
	if err != nil {
		return keyset{}, err
	}
	encKey, err := derive(secret, "shelfadmin/cookie/encrypt", 32)
	if err != nil {
		return keyset{}, err
	}

	block, err := aes.NewCipher(encKey)
	if err != nil {
		return keyset{}, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return keyset{}, err
	}
	return keyset{signKey: signKey, aead: aead}, nil
}

func derive(secret, info string, n int) ([]byte, error) {
	key := make([]byte, n)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(info)), key); err != nil {
		return nil, fmt.Errorf("derive %s key: %w", info, err)
	}
	return key, nil
}

var b64 = base64.RawURLEncoding

func (k keyset) mac(name, value string) []byte {
	m := hmac.New(sha256.New, k.signKey)
	m.Write([]byte(name))
	m.Write([]byte{0})
	m.Write([]byte(value))
	return m.Sum(nil)
}

// sign produces base64(value) "." base64(hmac(name, value)).
func (k keyset) sign(name, value string) string {
	return b64.EncodeToString([]byte(value)) + "." + b64.EncodeToString(k.mac(name, value))
}

func verify(keys []keyset, name, signed string) (string, error) {
	encValue, encSig, ok := strings.Cut(signed, ".")
	if !ok {
		return "", ErrInvalidFormat
	}
	value, err := b64.DecodeString(encValue)
	if err != nil {
		return "", ErrInvalidFormat
	}
	sig, err := b64.DecodeString(encSig)
	if err != nil {
		return "", ErrInvalidFormat
	}

	for _, k := range keys {
		if hmac.Equal(sig, k.mac(name, string(value))) {
			return string(value), nil
		}
	}
	return "", ErrInvalidSignature
}

// seal encrypts value with the cookie name as additional data, so a sealed
// value only opens under the name it was written with.
func (k keyset) seal(name, value string) (string, error) {
	nonce := make([]byte, k.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	return b64.EncodeToString(k.aead.Seal(nonce, nonce, []byte(value), []byte(name))), nil
}

func open(keys []keyset, name, sealed string) (string, error) {
	raw, err := b64.DecodeString(sealed)
	if err != nil {
		return "", ErrInvalidFormat
	}

	for _, k := range keys {
		ns := k.aead.NonceSize()
		if len(raw) < ns+k.aead.Overhead() {
			return "", ErrInvalidFormat
		}
		if plain, err := k.aead.Open(nil, raw[:ns], raw[ns:], []byte(name)); err == nil {
			return string(plain), nil
		}
	}
	return "", ErrDecryptionFailed
}
