package media

import (
	"context"
	"strings"
	"sync"

	"github.com/mitchellh/goamz/aws"
	"github.com/mitchellh/goamz/s3"
)

// Storage keeps uploaded objects.
type Storage interface {
	Put(ctx context.Context, path string, data []byte, contentType string) error
	Del(ctx context.Context, path string) error
	URL(path string) string
}

// S3 stores objects in a public-read bucket.
type S3 struct {
	Bucket *s3.Bucket
}

// NewS3 bucket client. Empty keys fall back to the environment.
func NewS3(accessKey, secretKey, bucket string) (*S3, error) {
	auth, err := aws.GetAuth(accessKey, secretKey)
	if err != nil {
		return nil, err
	}
	service := s3.New(auth, aws.USWest)
	return &S3{Bucket: service.Bucket(bucket)}, nil
}

func (s *S3) Put(ctx context.Context, path string, data []byte, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.Bucket.Put(path, data, contentType, s3.ACL("public-read"))
}

func (s *S3) Del(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.Bucket.Del(path)
}

func (s *S3) URL(path string) string {
	return s.Bucket.URL(path)
}

// Object kept by the memory storage.
type Object struct {
	Data        []byte
	ContentType string
}

// Memory storage for tests and local runs.
type Memory struct {
	BaseURL string

	mu      sync.RWMutex
	objects map[string]Object
}

func NewMemory(baseURL string) *Memory {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Memory{BaseURL: baseURL, objects: map[string]Object{}}
}

func (m *Memory) Put(ctx context.Context, path string, data []byte, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	m.objects[path] = Object{Data: data, ContentType: contentType}
	m.mu.Unlock()
	return nil
}

func (m *Memory) Del(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	delete(m.objects, path)
	m.mu.Unlock()
	return nil
}

func (m *Memory) URL(path string) string {
	return m.BaseURL + path
}

// Get returns a stored object.
func (m *Memory) Get(path string) (Object, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, exists := m.objects[path]
	return o, exists
}

// Len is the number of stored objects.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}
