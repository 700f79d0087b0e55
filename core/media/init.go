package media

import (
	"context"
	"regexp"
	"strings"

	"github.com/artworked/core/core/validate"
	"github.com/gabriel-vasile/mimetype"
	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("media")

// Extensions tried when deleting an object by public id.
var Extensions = []string{".jpg", ".jpeg", ".png", ".gif"}

var version = regexp.MustCompile(`^v\d+/`)

// Service is the upload backend: signed uploads into a Storage.
type Service struct {
	Signer  *Signer
	Storage Storage
}

func NewService(signer *Signer, storage Storage) *Service {
	return &Service{Signer: signer, Storage: storage}
}

// Upload stores data under the signed public id and returns its url.
func (s *Service) Upload(ctx context.Context, userID string, sig Signature, data []byte) (string, error) {
	if err := s.Signer.Verify(userID, sig); err != nil {
		return "", err
	}
	mime := mimetype.Detect(data)
	if !validate.IsAllowedImage(mime.String()) {
		return "", ErrUnsupportedFormat
	}
	if sig.Folder() == Folders["profilePic"] {
		resized, err := fitProfile(data, mime.String())
		if err != nil {
			return "", err
		}
		data = resized
	}
	path := sig.PublicID + mime.Extension()
	if err := s.Storage.Put(ctx, path, data, mime.String()); err != nil {
		return "", err
	}
	log.Debugf("Stored %s (%s, %d bytes)", path, mime.String(), len(data))
	return s.Storage.URL(path), nil
}

// Save signs and uploads in one step, for uploads received by the API itself.
func (s *Service) Save(ctx context.Context, userID, kind string, data []byte) (string, error) {
	sig, err := s.Signer.Sign(userID, kind)
	if err != nil {
		return "", err
	}
	return s.Upload(ctx, userID, sig, data)
}

// Delete removes an object given its url or public id.
func (s *Service) Delete(ctx context.Context, ref string) error {
	id := ref
	if strings.Contains(ref, "://") {
		id = s.PublicID(ref)
	}
	if id == "" {
		return ErrForeignObject
	}
	for _, ext := range Extensions {
		if err := s.Storage.Del(ctx, id+ext); err != nil {
			return err
		}
	}
	return nil
}

// PublicID extracts the public id of a stored object url. Urls from other
// hosts give an empty id.
func (s *Service) PublicID(url string) string {
	base := s.Storage.URL("")
	if !strings.HasPrefix(url, base) {
		return ""
	}
	id := strings.TrimPrefix(url, base)
	id = version.ReplaceAllString(id, "")
	if n := strings.LastIndex(id, "."); n > strings.LastIndex(id, "/") {
		id = id[:n]
	}
	return id
}
