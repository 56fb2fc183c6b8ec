package usecase

import (
	"context"
	"encoding/base64"
	"sync"
	"testing"
	"time"

	journaldomain "journaly-backend/internal/journal/domain"
	"journaly-backend/internal/journal/repository"
	"journaly-backend/pkg/crypto"
	"journaly-backend/pkg/llm"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

// fakeJournalRepo is an in-memory JournalRepository recording calls.
type fakeJournalRepo struct {
	mu      sync.Mutex
	entries map[string]*journaldomain.JournalEntry
	chunks  []*journaldomain.VectorChunk

	similarOut []*journaldomain.SimilarChunk
	similarErr error

	lastSimilarVector  []float32
	lastSimilarExclude string

	updateEnrichmentErr error
	insertChunksErr     error
}

var _ repository.JournalRepository = (*fakeJournalRepo)(nil)

func newFakeJournalRepo() *fakeJournalRepo {
	return &fakeJournalRepo{entries: make(map[string]*journaldomain.JournalEntry)}
}

func (f *fakeJournalRepo) Create(entry *journaldomain.JournalEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	entry.CreatedAt = time.Now().UTC()
	copied := *entry
	f.entries[entry.ID] = &copied
	return nil
}

func (f *fakeJournalRepo) FindByID(userID, id string) (*journaldomain.JournalEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	entry, ok := f.entries[id]
	if !ok || entry.UserID != userID {
		return nil, nil
	}
	copied := *entry
	return &copied, nil
}

func (f *fakeJournalRepo) FindByUser(userID string) ([]*journaldomain.JournalEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*journaldomain.JournalEntry
	for _, entry := range f.entries {
		if entry.UserID == userID {
			copied := *entry
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeJournalRepo) FindByUserInRange(userID string, from, to time.Time) ([]*journaldomain.JournalEntry, error) {
	return f.FindByUser(userID)
}

func (f *fakeJournalRepo) Update(entry *journaldomain.JournalEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *entry
	f.entries[entry.ID] = &copied
	return nil
}

func (f *fakeJournalRepo) UpdateEnrichment(id string, summary string, tags datatypes.JSON, status string) error {
	if f.updateEnrichmentErr != nil {
		return f.updateEnrichmentErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if entry, ok := f.entries[id]; ok {
		entry.Summary = summary
		entry.Tags = tags
		entry.EnrichmentStatus = status
	}
	return nil
}

func (f *fakeJournalRepo) UpdateEnrichmentStatus(id, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if entry, ok := f.entries[id]; ok {
		entry.EnrichmentStatus = status
	}
	return nil
}

func (f *fakeJournalRepo) Delete(userID, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	entry, ok := f.entries[id]
	if !ok || entry.UserID != userID {
		return false, nil
	}
	delete(f.entries, id)
	return true, nil
}

func (f *fakeJournalRepo) InsertChunks(chunks []*journaldomain.VectorChunk) error {
	if f.insertChunksErr != nil {
		return f.insertChunksErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.chunks = append(f.chunks, chunks...)
	return nil
}

func (f *fakeJournalRepo) FindSimilar(userID string, vector []float32, excludeJournalID string, threshold float64, limit int) ([]*journaldomain.SimilarChunk, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastSimilarVector = vector
	f.lastSimilarExclude = excludeJournalID
	return f.similarOut, f.similarErr
}

// fakeCompleter returns a canned reply and records requests.
type fakeCompleter struct {
	mu       sync.Mutex
	reply    string
	err      error
	requests []llm.CompletionRequest
}

var _ llm.Completer = (*fakeCompleter)(nil)

func (f *fakeCompleter) Complete(_ context.Context, req llm.CompletionRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeCompleter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

// fakeEmbedder returns fixed chunks/vectors.
type fakeEmbedder struct {
	chunks  []string
	vectors [][]float32
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]string, [][]float32) {
	return f.chunks, f.vectors
}

func testCipher(t *testing.T) *crypto.Cipher {
	t.Helper()
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i * 7)
	}
	cipher, err := crypto.NewCipher(base64.StdEncoding.EncodeToString(key))
	require.NoError(t, err)
	return cipher
}
