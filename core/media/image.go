package media

import (
	"bytes"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"

	"github.com/nfnt/resize"
)

// Profile pictures are scaled down to fit this box.
const (
	ProfileWidth  = 400
	ProfileHeight = 400
)

func fitProfile(data []byte, mime string) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, ErrUnsupportedFormat
	}
	bounds := src.Bounds()
	if bounds.Dx() <= ProfileWidth && bounds.Dy() <= ProfileHeight {
		return data, nil
	}

	thumb := resize.Thumbnail(ProfileWidth, ProfileHeight, src, resize.Lanczos3)
	var out bytes.Buffer
	switch mime {
	case "image/png":
		err = png.Encode(&out, thumb)
	case "image/gif":
		err = gif.Encode(&out, thumb, nil)
	default:
		err = jpeg.Encode(&out, thumb, &jpeg.Options{Quality: 90})
	}
	if err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
