package usecase

import (
	"context"
	"encoding/base64"
	"sync"
	"testing"
	"time"

	insightdomain "journaly-backend/internal/insight/domain"
	insightrepo "journaly-backend/internal/insight/repository"
	journaldomain "journaly-backend/internal/journal/domain"
	journalrepo "journaly-backend/internal/journal/repository"
	mooddomain "journaly-backend/internal/mood/domain"
	moodrepo "journaly-backend/internal/mood/repository"
	"journaly-backend/pkg/crypto"
	"journaly-backend/pkg/llm"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

// fakeInsightRepo is an in-memory InsightRepository keyed by week start.
type fakeInsightRepo struct {
	mu       sync.Mutex
	rows     map[string]*insightdomain.WeeklyInsight
	inserted int
}

var _ insightrepo.InsightRepository = (*fakeInsightRepo)(nil)

func newFakeInsightRepo() *fakeInsightRepo {
	return &fakeInsightRepo{rows: make(map[string]*insightdomain.WeeklyInsight)}
}

func insightKey(userID, insightType string, validFrom time.Time) string {
	return userID + "|" + insightType + "|" + validFrom.Format("2006-01-02")
}

func (f *fakeInsightRepo) FindByWeek(userID, insightType string, validFrom time.Time) (*insightdomain.WeeklyInsight, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[insightKey(userID, insightType, validFrom)]
	if !ok {
		return nil, nil
	}
	copied := *row
	return &copied, nil
}

func (f *fakeInsightRepo) Insert(insight *insightdomain.WeeklyInsight) (*insightdomain.WeeklyInsight, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := insightKey(insight.UserID, insight.InsightType, insight.ValidFrom)
	if existing, ok := f.rows[key]; ok {
		copied := *existing
		return &copied, nil
	}
	insight.ID = uuid.New().String()
	copied := *insight
	f.rows[key] = &copied
	f.inserted++
	return insight, nil
}

// fakeMoodRepo serves a fixed slice for range queries.
type fakeMoodRepo struct {
	moods []*mooddomain.MoodEntry
}

var _ moodrepo.MoodRepository = (*fakeMoodRepo)(nil)

func (f *fakeMoodRepo) Create(entry *mooddomain.MoodEntry) error { return nil }

func (f *fakeMoodRepo) LoggedOn(userID string, day time.Time) (bool, error) { return false, nil }

func (f *fakeMoodRepo) FindByUserInRange(userID string, from, to time.Time) ([]*mooddomain.MoodEntry, error) {
	return f.moods, nil
}

// fakeJournalRepo serves a fixed slice for range queries; the insight flow
// never touches the other methods.
type fakeJournalRepo struct {
	journals []*journaldomain.JournalEntry
}

var _ journalrepo.JournalRepository = (*fakeJournalRepo)(nil)

func (f *fakeJournalRepo) Create(*journaldomain.JournalEntry) error { return nil }

func (f *fakeJournalRepo) FindByID(userID, id string) (*journaldomain.JournalEntry, error) {
	return nil, nil
}

func (f *fakeJournalRepo) FindByUser(userID string) ([]*journaldomain.JournalEntry, error) {
	return nil, nil
}

func (f *fakeJournalRepo) FindByUserInRange(userID string, from, to time.Time) ([]*journaldomain.JournalEntry, error) {
	return f.journals, nil
}

func (f *fakeJournalRepo) Update(*journaldomain.JournalEntry) error { return nil }

func (f *fakeJournalRepo) UpdateEnrichment(id, summary string, tags datatypes.JSON, status string) error {
	return nil
}

func (f *fakeJournalRepo) UpdateEnrichmentStatus(id, status string) error { return nil }

func (f *fakeJournalRepo) Delete(userID, id string) (bool, error) { return false, nil }

func (f *fakeJournalRepo) InsertChunks([]*journaldomain.VectorChunk) error { return nil }

func (f *fakeJournalRepo) FindSimilar(userID string, vector []float32, excludeJournalID string, threshold float64, limit int) ([]*journaldomain.SimilarChunk, error) {
	return nil, nil
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

func testCipher(t *testing.T) *crypto.Cipher {
	t.Helper()
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i * 3)
	}
	cipher, err := crypto.NewCipher(base64.StdEncoding.EncodeToString(key))
	require.NoError(t, err)
	return cipher
}
