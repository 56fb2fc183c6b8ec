package usecase

import (
	"context"
	"testing"

	journaldomain "journaly-backend/internal/journal/domain"
	journaldto "journaly-backend/internal/journal/dto"
	"journaly-backend/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestUsecase(t *testing.T, repo *fakeJournalRepo, completer *fakeCompleter, embedder *fakeEmbedder) JournalUsecase {
	t.Helper()
	cipher := testCipher(t)
	enricher := NewEnrichmentWorker(repo, completer, embedder, cipher, zap.NewNop(), 1)
	return NewJournalUsecase(repo, cipher, embedder, completer, enricher, zap.NewNop())
}

func TestCreate_EncryptsAndReturnsPlaceholder(t *testing.T) {
	repo := newFakeJournalRepo()
	uc := newTestUsecase(t, repo, &fakeCompleter{}, &fakeEmbedder{})

	resp, err := uc.Create(context.Background(), "user-1", &journaldto.CreateJournalRequest{
		Content:   "today I felt fine",
		MoodScore: 4,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, journaldomain.SummaryPlaceholder, resp.Summary)
	assert.Equal(t, journaldomain.EnrichmentPending, resp.EnrichmentStatus)
	assert.Equal(t, "today I felt fine", resp.Content)

	stored := repo.entries[resp.ID]
	require.NotNil(t, stored)
	assert.NotEqual(t, "today I felt fine", stored.ContentEncrypted, "content must be stored encrypted")
}

func TestGet_DecryptsContent(t *testing.T) {
	repo := newFakeJournalRepo()
	uc := newTestUsecase(t, repo, &fakeCompleter{}, &fakeEmbedder{})

	created, err := uc.Create(context.Background(), "user-1", &journaldto.CreateJournalRequest{
		Content:   "a private thought",
		MoodScore: 2,
	})
	require.NoError(t, err)

	got, err := uc.Get("user-1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "a private thought", got.Content)
}

func TestGet_UnreadableContentGetsPlaceholder(t *testing.T) {
	repo := newFakeJournalRepo()
	uc := newTestUsecase(t, repo, &fakeCompleter{}, &fakeEmbedder{})

	entry := &journaldomain.JournalEntry{UserID: "user-1", ContentEncrypted: "corrupted-token"}
	require.NoError(t, repo.Create(entry))

	got, err := uc.Get("user-1", entry.ID)
	require.NoError(t, err)
	assert.Equal(t, "[Decryption Error]", got.Content)
}

func TestGet_OtherUsersEntryIsNotFound(t *testing.T) {
	repo := newFakeJournalRepo()
	uc := newTestUsecase(t, repo, &fakeCompleter{}, &fakeEmbedder{})

	created, err := uc.Create(context.Background(), "user-1", &journaldto.CreateJournalRequest{
		Content: "mine", MoodScore: 3,
	})
	require.NoError(t, err)

	_, err = uc.Get("user-2", created.ID)
	assert.ErrorIs(t, err, journaldomain.ErrNotFound)
}

func TestList_OmitsContent(t *testing.T) {
	repo := newFakeJournalRepo()
	uc := newTestUsecase(t, repo, &fakeCompleter{}, &fakeEmbedder{})

	_, err := uc.Create(context.Background(), "user-1", &journaldto.CreateJournalRequest{
		Content: "secret", MoodScore: 3,
	})
	require.NoError(t, err)

	list, err := uc.List("user-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Empty(t, list[0].Content)
}

func TestDelete_NotOwned(t *testing.T) {
	repo := newFakeJournalRepo()
	uc := newTestUsecase(t, repo, &fakeCompleter{}, &fakeEmbedder{})

	created, err := uc.Create(context.Background(), "user-1", &journaldto.CreateJournalRequest{
		Content: "mine", MoodScore: 3,
	})
	require.NoError(t, err)

	assert.ErrorIs(t, uc.Delete("user-2", created.ID), journaldomain.ErrNotFound)
	assert.NoError(t, uc.Delete("user-1", created.ID))
}

func TestDeepen_NoVectorsShortCircuits(t *testing.T) {
	repo := newFakeJournalRepo()
	completer := &fakeCompleter{reply: "should not be called"}
	uc := newTestUsecase(t, repo, completer, &fakeEmbedder{})

	resp, err := uc.Deepen(context.Background(), "user-1", &journaldto.DeepenRequest{
		Content: "unembeddable draft",
	})
	require.NoError(t, err)

	assert.Equal(t, "Could not analyze text.", resp.Prompt)
	assert.NotEmpty(t, resp.JournalID, "the draft is still persisted")
	assert.Zero(t, completer.callCount(), "no completion call on embedding failure")
}

func TestDeepen_CreatesDraftAndAsksQuestion(t *testing.T) {
	repo := newFakeJournalRepo()
	cipher := testCipher(t)

	pastEncrypted, err := cipher.Encrypt("I was anxious about work back then")
	require.NoError(t, err)
	repo.similarOut = []*journaldomain.SimilarChunk{
		{JournalID: "past-1", ContentEncrypted: pastEncrypted, Similarity: 0.82},
	}

	completer := &fakeCompleter{reply: "What does control mean to you?"}
	embedder := &fakeEmbedder{
		chunks:  []string{"first", "second"},
		vectors: [][]float32{{0.1, 0.2}, {0.3, 0.4}},
	}
	enricher := NewEnrichmentWorker(repo, completer, embedder, cipher, zap.NewNop(), 1)
	uc := NewJournalUsecase(repo, cipher, embedder, completer, enricher, zap.NewNop())

	resp, err := uc.Deepen(context.Background(), "user-1", &journaldto.DeepenRequest{
		Content: "I feel a loss of control",
	})
	require.NoError(t, err)

	assert.Equal(t, "What does control mean to you?", resp.Prompt)
	assert.NotEmpty(t, resp.JournalID)

	// Only the first chunk's vector queries the store, excluding the draft
	assert.Equal(t, []float32{0.1, 0.2}, repo.lastSimilarVector)
	assert.Equal(t, resp.JournalID, repo.lastSimilarExclude)

	// The draft exists with the draft defaults
	draft := repo.entries[resp.JournalID]
	require.NotNil(t, draft)
	assert.Equal(t, "Draft...", draft.Summary)

	// The prompt fed to the model contains the decrypted past excerpt
	require.Equal(t, 1, completer.callCount())
	req := completer.requests[0]
	assert.Contains(t, req.UserPrompt, "I was anxious about work back then")
	assert.Contains(t, req.UserPrompt, "I feel a loss of control")
	assert.Equal(t, llm.ModelDeepen, req.Model)
	assert.False(t, req.JSONMode, "deepen asks for free text")
}

func TestDeepen_UpdatesExistingEntry(t *testing.T) {
	repo := newFakeJournalRepo()
	completer := &fakeCompleter{reply: "And why now?"}
	embedder := &fakeEmbedder{chunks: []string{"x"}, vectors: [][]float32{{1}}}
	cipher := testCipher(t)
	enricher := NewEnrichmentWorker(repo, completer, embedder, cipher, zap.NewNop(), 1)
	uc := NewJournalUsecase(repo, cipher, embedder, completer, enricher, zap.NewNop())

	created, err := uc.Create(context.Background(), "user-1", &journaldto.CreateJournalRequest{
		Content: "old text", MoodScore: 3,
	})
	require.NoError(t, err)
	before := repo.entries[created.ID].ContentEncrypted

	resp, err := uc.Deepen(context.Background(), "user-1", &journaldto.DeepenRequest{
		Content:   "revised text",
		JournalID: created.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, created.ID, resp.JournalID)
	assert.NotEqual(t, before, repo.entries[created.ID].ContentEncrypted, "draft content updated in place")
}

func TestDeepen_UnknownEntryID(t *testing.T) {
	repo := newFakeJournalRepo()
	uc := newTestUsecase(t, repo, &fakeCompleter{}, &fakeEmbedder{chunks: []string{"x"}, vectors: [][]float32{{1}}})

	_, err := uc.Deepen(context.Background(), "user-1", &journaldto.DeepenRequest{
		Content:   "text",
		JournalID: "does-not-exist",
	})
	assert.ErrorIs(t, err, journaldomain.ErrNotFound)
}
