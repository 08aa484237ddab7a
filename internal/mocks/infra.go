package mocks

import (
	"context"

	"github.com/blog-platform-api/internal/models"
	"github.com/blog-platform-api/internal/realtime"
	"github.com/blog-platform-api/internal/service"
	"github.com/blog-platform-api/internal/storage"
)

// MockFeed is an in-memory Feed that records published events
type MockFeed struct {
	Published    []realtime.Event
	PublishError error
	Events       chan realtime.Event
}

// Verify interface compliance
var _ realtime.Feed = (*MockFeed)(nil)

func NewMockFeed() *MockFeed {
	return &MockFeed{
		Events: make(chan realtime.Event, 16),
	}
}

func (m *MockFeed) Publish(ctx context.Context, event realtime.Event) error {
	if m.PublishError != nil {
		return m.PublishError
	}
	m.Published = append(m.Published, event)
	return nil
}

func (m *MockFeed) Subscribe(ctx context.Context, table, scope string) (<-chan realtime.Event, realtime.Disposer, error) {
	return m.Events, func() {}, nil
}

// MockSummaryCache is an in-memory SummaryCache
type MockSummaryCache struct {
	Entries  map[string][]*models.BookmarkSummary
	GetError error
	SetError error
}

// Verify interface compliance
var _ service.SummaryCache = (*MockSummaryCache)(nil)

func NewMockSummaryCache() *MockSummaryCache {
	return &MockSummaryCache{
		Entries: make(map[string][]*models.BookmarkSummary),
	}
}

func (m *MockSummaryCache) Get(ctx context.Context, userID string) ([]*models.BookmarkSummary, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	return m.Entries[userID], nil
}

func (m *MockSummaryCache) Set(ctx context.Context, userID string, summaries []*models.BookmarkSummary) error {
	if m.SetError != nil {
		return m.SetError
	}
	m.Entries[userID] = summaries
	return nil
}

func (m *MockSummaryCache) Invalidate(ctx context.Context, userID string) error {
	delete(m.Entries, userID)
	return nil
}

// MockObjectStore is an in-memory ObjectStore
type MockObjectStore struct {
	Objects     map[string][]byte
	UploadError error
}

// Verify interface compliance
var _ storage.ObjectStore = (*MockObjectStore)(nil)

func NewMockObjectStore() *MockObjectStore {
	return &MockObjectStore{
		Objects: make(map[string][]byte),
	}
}

func (m *MockObjectStore) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if m.UploadError != nil {
		return "", m.UploadError
	}
	m.Objects[key] = data
	return "https://storage.test/" + key, nil
}

func (m *MockObjectStore) Delete(ctx context.Context, key string) error {
	delete(m.Objects, key)
	return nil
}

func (m *MockObjectStore) List(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	for key := range m.Objects {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			keys = append(keys, key)
		}
	}
	return keys, nil
}
