package media

import (
	"crypto/sha1"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrUnknownType       = errors.New("unknown upload type")
	ErrInvalidSignature  = errors.New("invalid upload signature")
	ErrSignatureExpired  = errors.New("upload signature has expired")
	ErrUnsupportedFormat = errors.New("Unsupported file format")
	ErrForeignObject     = errors.New("object is not kept by this storage")
)

// Folders per upload type.
var Folders = map[string]string{
	"postPic":    "posts",
	"profilePic": "profile",
	"bannerPic":  "banner",
}

// Signature authorizes a single upload.
type Signature struct {
	Signature    string `json:"signature" form:"signature"`
	Timestamp    int64  `json:"timestamp" form:"timestamp"`
	UploadPreset string `json:"upload_preset" form:"upload_preset"`
	PublicID     string `json:"public_id" form:"public_id"`
}

// Folder the signature uploads into.
func (s Signature) Folder() string {
	if n := strings.Index(s.PublicID, "/"); n > 0 {
		return s.PublicID[:n]
	}
	return ""
}

// Signer issues and checks upload signatures.
type Signer struct {
	Secret string
	Preset string
	MaxAge time.Duration

	now func() time.Time
}

func NewSigner(secret, preset string) *Signer {
	return &Signer{Secret: secret, Preset: preset, MaxAge: time.Hour, now: time.Now}
}

// Sign a new upload of kind for userID.
func (s *Signer) Sign(userID, kind string) (Signature, error) {
	folder, exists := Folders[kind]
	if !exists || userID == "" {
		return Signature{}, ErrUnknownType
	}
	ts := s.now().Unix()
	sig := Signature{
		Timestamp:    ts,
		UploadPreset: s.Preset,
		PublicID:     fmt.Sprintf("%s/%s_%d", folder, userID, ts),
	}
	sig.Signature = s.digest(sig)
	return sig, nil
}

// Verify checks sig was issued here for userID and is still fresh.
func (s *Signer) Verify(userID string, sig Signature) error {
	expected := s.digest(sig)
	if subtle.ConstantTimeCompare([]byte(expected), []byte(sig.Signature)) != 1 {
		return ErrInvalidSignature
	}
	if sig.UploadPreset != s.Preset {
		return ErrInvalidSignature
	}
	owner := "/" + userID + "_" + strconv.FormatInt(sig.Timestamp, 10)
	if userID == "" || !strings.HasSuffix(sig.PublicID, owner) {
		return ErrInvalidSignature
	}
	issued := time.Unix(sig.Timestamp, 0)
	if s.now().Sub(issued) > s.MaxAge {
		return ErrSignatureExpired
	}
	return nil
}

func (s *Signer) digest(sig Signature) string {
	payload := fmt.Sprintf("public_id=%s&timestamp=%d&upload_preset=%s%s", sig.PublicID, sig.Timestamp, sig.UploadPreset, s.Secret)
	sum := sha1.Sum([]byte(payload))
	return hex.EncodeToString(sum[:])
}
