package usecase

import (
	"context"
	"fmt"
	"strings"

	journaldomain "journaly-backend/internal/journal/domain"
	journaldto "journaly-backend/internal/journal/dto"
	"journaly-backend/internal/journal/repository"
	"journaly-backend/pkg/crypto"
	"journaly-backend/pkg/embedding"
	"journaly-backend/pkg/llm"

	"go.uber.org/zap"
)

// Deepen parameters: similarity search scope and excerpt size.
const (
	deepenMatchThreshold = 0.5
	deepenMatchCount     = 3
	deepenExcerptLen     = 300

	// Returned when the draft could not be embedded at all.
	deepenFailureMessage = "Could not analyze text."

	// Mood score assigned to deepen-created drafts until the user picks one.
	draftMoodScore = 5
	draftSummary   = "Draft..."
)

const deepenSystemPrompt = "You are an empathetic, psychological journaling assistant. " +
	"The user is writing a journal entry. You have access to snippets of their past memories that are semantically similar. " +
	"Your goal is to provide ONE single, short, profound question that connects their current thought to their past patterns " +
	"or encourages them to dig deeper into the 'Why'. " +
	"Do not be preachy. Just ask the question."

type journalUsecase struct {
	journalRepo repository.JournalRepository
	cipher      *crypto.Cipher
	embedder    embedding.Embedder
	completer   llm.Completer
	enricher    *EnrichmentWorker
	logger      *zap.Logger
}

func NewJournalUsecase(
	journalRepo repository.JournalRepository,
	cipher *crypto.Cipher,
	embedder embedding.Embedder,
	completer llm.Completer,
	enricher *EnrichmentWorker,
	logger *zap.Logger,
) JournalUsecase {
	return &journalUsecase{
		journalRepo: journalRepo,
		cipher:      cipher,
		embedder:    embedder,
		completer:   completer,
		enricher:    enricher,
		logger:      logger,
	}
}

// Create persists a new encrypted entry and dispatches enrichment. The
// response carries the placeholder summary; the real one arrives in the
// background.
func (u *journalUsecase) Create(ctx context.Context, userID string, req *journaldto.CreateJournalRequest) (*journaldto.JournalResponse, error) {
	encrypted, err := u.cipher.Encrypt(req.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt content: %w", err)
	}

	entry := &journaldomain.JournalEntry{
		UserID:           userID,
		MoodScore:        req.MoodScore,
		ContentEncrypted: encrypted,
		Summary:          journaldomain.SummaryPlaceholder,
		EnrichmentStatus: journaldomain.EnrichmentPending,
	}
	if err := u.journalRepo.Create(entry); err != nil {
		return nil, err
	}

	// Fire-and-forget: the HTTP response does not wait for AI processing.
	// The job carries the plaintext so the pipeline never decrypts storage.
	u.enricher.Enqueue(EnrichmentJob{
		JournalID: entry.ID,
		UserID:    userID,
		Content:   req.Content,
	})

	return journaldto.ToJournalResponse(entry, req.Content), nil
}

// List returns the user's entries newest first, without content.
func (u *journalUsecase) List(userID string) ([]*journaldto.JournalResponse, error) {
	entries, err := u.journalRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}

	responses := make([]*journaldto.JournalResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, journaldto.ToJournalResponse(entry, ""))
	}
	return responses, nil
}

// Get returns one entry with its content decrypted for the editor. An entry
// that can no longer be decrypted comes back with the placeholder text.
func (u *journalUsecase) Get(userID, id string) (*journaldto.JournalResponse, error) {
	entry, err := u.journalRepo.FindByID(userID, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, journaldomain.ErrNotFound
	}

	content, ok := u.cipher.DecryptOrPlaceholder(entry.ContentEncrypted)
	if !ok {
		u.logger.Warn("journal content unreadable", zap.String("journal_id", id))
	}

	return journaldto.ToJournalResponse(entry, content), nil
}

// Update re-encrypts content and mood in place. Summary, tags and vectors are
// not regenerated; the enrichment from the original content stays as is.
func (u *journalUsecase) Update(userID, id string, req *journaldto.UpdateJournalRequest) (*journaldto.JournalResponse, error) {
	entry, err := u.journalRepo.FindByID(userID, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, journaldomain.ErrNotFound
	}

	encrypted, err := u.cipher.Encrypt(req.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt content: %w", err)
	}

	entry.ContentEncrypted = encrypted
	entry.MoodScore = req.MoodScore
	if err := u.journalRepo.Update(entry); err != nil {
		return nil, err
	}

	return journaldto.ToJournalResponse(entry, req.Content), nil
}

func (u *journalUsecase) Delete(userID, id string) error {
	deleted, err := u.journalRepo.Delete(userID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return journaldomain.ErrNotFound
	}
	return nil
}

// Deepen persists the draft, retrieves semantically related past entries and
// asks the LLM for one reflective follow-up question.
func (u *journalUsecase) Deepen(ctx context.Context, userID string, req *journaldto.DeepenRequest) (*journaldto.DeepenResponse, error) {
	encrypted, err := u.cipher.Encrypt(req.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt content: %w", err)
	}

	// The draft must exist before analysis so a brand new one gets an id.
	journalID := req.JournalID
	if journalID != "" {
		entry, err := u.journalRepo.FindByID(userID, journalID)
		if err != nil {
			return nil, err
		}
		if entry == nil {
			return nil, journaldomain.ErrNotFound
		}
		entry.ContentEncrypted = encrypted
		if err := u.journalRepo.Update(entry); err != nil {
			return nil, err
		}
	} else {
		entry := &journaldomain.JournalEntry{
			UserID:           userID,
			MoodScore:        draftMoodScore,
			ContentEncrypted: encrypted,
			Summary:          draftSummary,
			EnrichmentStatus: journaldomain.EnrichmentPending,
		}
		if err := u.journalRepo.Create(entry); err != nil {
			return nil, err
		}
		journalID = entry.ID
	}

	// Multi-chunk drafts query with their first chunk only.
	_, vectors := u.embedder.Embed(ctx, req.Content)
	if len(vectors) == 0 {
		return &journaldto.DeepenResponse{JournalID: journalID, Prompt: deepenFailureMessage}, nil
	}

	matches, err := u.journalRepo.FindSimilar(userID, vectors[0], journalID, deepenMatchThreshold, deepenMatchCount)
	if err != nil {
		return nil, err
	}

	var relatedContext strings.Builder
	for _, match := range matches {
		decrypted, ok := u.cipher.DecryptOrPlaceholder(match.ContentEncrypted)
		if !ok {
			u.logger.Warn("related chunk unreadable", zap.String("journal_id", match.JournalID))
		}
		relatedContext.WriteString(fmt.Sprintf("- Past Entry: %s...\n", excerpt(decrypted, deepenExcerptLen)))
	}

	userPrompt := fmt.Sprintf("CURRENT DRAFT:\n%q\n\nRELATED PAST MEMORIES:\n%s\nBased on this, what should I ask myself next?",
		req.Content, relatedContext.String())

	question, err := u.completer.Complete(ctx, llm.CompletionRequest{
		SystemPrompt: deepenSystemPrompt,
		UserPrompt:   userPrompt,
		Model:        llm.ModelDeepen,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate question: %w", err)
	}

	return &journaldto.DeepenResponse{JournalID: journalID, Prompt: question}, nil
}

// excerpt truncates s to at most n bytes.
func excerpt(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
