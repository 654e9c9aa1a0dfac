package test

import (
	"context"
	"fmt"
	"sync"

	"github.com/polkiloo/customers/internal/adapter/objectstore"
)

// ObjectStoreStub keeps objects in memory keyed by bucket and key.
type ObjectStoreStub struct {
	mu      sync.Mutex
	Objects map[string][]byte
	PutErr  error
	GetErr  error
}

// NewObjectStoreStub constructs an empty store.
func NewObjectStoreStub() *ObjectStoreStub {
	return &ObjectStoreStub{Objects: make(map[string][]byte)}
}

func objectPath(bucket, key string) string {
	return bucket + "/" + key
}

// Put copies data into the store.
func (s *ObjectStoreStub) Put(ctx context.Context, bucket, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.PutErr != nil {
		return s.PutErr
	}
	if s.Objects == nil {
		s.Objects = make(map[string][]byte)
	}
	s.Objects[objectPath(bucket, key)] = append([]byte(nil), data...)
	return nil
}

// Get returns a copy of the stored object.
func (s *ObjectStoreStub) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	data, ok := s.Objects[objectPath(bucket, key)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", objectstore.ErrObjectNotFound, key)
	}
	return append([]byte(nil), data...), nil
}

// Has reports whether an object exists at bucket/key.
func (s *ObjectStoreStub) Has(bucket, key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.Objects[objectPath(bucket, key)]
	return ok
}

var _ objectstore.Store = (*ObjectStoreStub)(nil)
