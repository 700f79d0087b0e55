package deps

import (
	"github.com/artworked/core/core/media"
)

// IgniteMedia sets up the upload backend over s3 or in memory storage.
func IgniteMedia(container Deps) (Deps, error) {
	runtime := container.Config().Copy()
	signer := media.NewSigner(runtime.Media.APISecret, runtime.Media.UploadPreset)

	var storage media.Storage
	switch runtime.Media.Driver {
	case "s3":
		bucket, err := media.NewS3(runtime.Media.AccessKey, runtime.Media.SecretKey, runtime.Media.Bucket)
		if err != nil {
			return container, err
		}
		storage = bucket
	default:
		storage = media.NewMemory(runtime.Media.BaseURL)
	}

	container.MediaProvider = media.NewService(signer, storage)
	return container, nil
}
