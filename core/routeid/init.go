// Package routeid encrypts ids placed in profile urls. The format is the
// OpenSSL "Salted__" envelope used by CryptoJS passphrase encryption, so
// links produced by older clients keep resolving. It hides ids, it does
// not protect anything: the secret ships with every client.
package routeid

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/md5"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/url"
	"strings"
)

var (
	ErrEmptySecret  = errors.New("route cipher secret is empty")
	ErrInvalidRoute = errors.New("invalid encrypted route id")
)

var saltedMagic = []byte("Salted__")

// Cipher encrypts route ids with a static passphrase.
type Cipher struct {
	secret []byte
}

func New(secret string) (*Cipher, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &Cipher{secret: []byte(secret)}, nil
}

// Encrypt returns the url escaped cipher text of id.
func (c *Cipher) Encrypt(id string) (string, error) {
	plain, err := json.Marshal(id)
	if err != nil {
		return "", err
	}
	salt := make([]byte, 8)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", err
	}
	key, iv := deriveKey(c.secret, salt)
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}
	plain = pad(plain, aes.BlockSize)
	sealed := make([]byte, len(plain))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(sealed, plain)

	envelope := make([]byte, 0, 16+len(sealed))
	envelope = append(envelope, saltedMagic...)
	envelope = append(envelope, salt...)
	envelope = append(envelope, sealed...)
	return url.QueryEscape(base64.StdEncoding.EncodeToString(envelope)), nil
}

// Decrypt accepts the escaped or the raw cipher text.
func (c *Cipher) Decrypt(text string) (string, error) {
	if strings.Contains(text, "%") {
		unescaped, err := url.PathUnescape(text)
		if err != nil {
			return "", ErrInvalidRoute
		}
		text = unescaped
	}
	envelope, err := base64.StdEncoding.DecodeString(text)
	if err != nil || len(envelope) < 16+aes.BlockSize || !bytes.Equal(envelope[:8], saltedMagic) {
		return "", ErrInvalidRoute
	}
	sealed := envelope[16:]
	if len(sealed)%aes.BlockSize != 0 {
		return "", ErrInvalidRoute
	}
	key, iv := deriveKey(c.secret, envelope[8:16])
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}
	plain := make([]byte, len(sealed))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plain, sealed)
	plain, err = unpad(plain, aes.BlockSize)
	if err != nil {
		return "", err
	}

	var id string
	if err := json.Unmarshal(plain, &id); err != nil || id == "" {
		return "", ErrInvalidRoute
	}
	return id, nil
}

// deriveKey is EVP_BytesToKey with MD5 and one iteration, giving an
// AES-256 key and its IV.
func deriveKey(secret, salt []byte) (key, iv []byte) {
	var derived, prev []byte
	for len(derived) < 48 {
		h := md5.New()
		h.Write(prev)
		h.Write(secret)
		h.Write(salt)
		prev = h.Sum(nil)
		derived = append(derived, prev...)
	}
	return derived[:32], derived[32:48]
}

func pad(b []byte, size int) []byte {
	n := size - len(b)%size
	return append(b, bytes.Repeat([]byte{byte(n)}, n)...)
}

func unpad(b []byte, size int) ([]byte, error) {
	if len(b) == 0 {
		return nil, ErrInvalidRoute
	}
	n := int(b[len(b)-1])
	if n == 0 || n > size || n > len(b) {
		return nil, ErrInvalidRoute
	}
	for _, v := range b[len(b)-n:] {
		if int(v) != n {
			return nil, ErrInvalidRoute
		}
	}
	return b[:len(b)-n], nil
}
