package usecase

import (
	"context"
	"encoding/json"
	"sync"

	journaldomain "journaly-backend/internal/journal/domain"
	"journaly-backend/internal/journal/repository"
	"journaly-backend/pkg/crypto"
	"journaly-backend/pkg/embedding"
	"journaly-backend/pkg/llm"

	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

const summarySystemPrompt = `Write a concise, emotionally-aware summary in 10 to 15 words. Return JSON: { "summary": string, "tags": string[] }`

// EnrichmentJob carries a freshly saved journal through the background
// pipeline. Content is the original plaintext, held only in memory; the
// pipeline never decrypts anything from storage.
type EnrichmentJob struct {
	JournalID string
	UserID    string
	Content   string
}

// EnrichmentWorker generates the AI summary, tags and chunk embeddings for
// saved journal entries without blocking the request that created them.
type EnrichmentWorker struct {
	journalRepo repository.JournalRepository
	completer   llm.Completer
	embedder    embedding.Embedder
	cipher      *crypto.Cipher
	logger      *zap.Logger

	jobQueue    chan EnrichmentJob
	workerWg    sync.WaitGroup
	workerCount int
	started     bool
	mu          sync.Mutex
}

func NewEnrichmentWorker(
	journalRepo repository.JournalRepository,
	completer llm.Completer,
	embedder embedding.Embedder,
	cipher *crypto.Cipher,
	logger *zap.Logger,
	workerCount int,
) *EnrichmentWorker {
	if workerCount <= 0 {
		workerCount = 3
	}

	return &EnrichmentWorker{
		journalRepo: journalRepo,
		completer:   completer,
		embedder:    embedder,
		cipher:      cipher,
		logger:      logger,
		jobQueue:    make(chan EnrichmentJob, 500),
		workerCount: workerCount,
	}
}

// Start launches the workers. Safe to call once.
func (w *EnrichmentWorker) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.started {
		return
	}

	for i := 0; i < w.workerCount; i++ {
		w.workerWg.Add(1)
		go w.worker()
	}
	w.started = true
	w.logger.Info("enrichment workers started", zap.Int("count", w.workerCount))
}

// Stop drains the queue and waits for in-flight jobs to finish.
func (w *EnrichmentWorker) Stop() {
	close(w.jobQueue)
	w.workerWg.Wait()
	w.logger.Info("enrichment workers stopped")
}

// Enqueue adds a job without blocking. When the queue is full the job is
// dropped; the entry keeps its pending status and placeholder summary.
func (w *EnrichmentWorker) Enqueue(job EnrichmentJob) bool {
	select {
	case w.jobQueue <- job:
		return true
	default:
		w.logger.Warn("enrichment queue full, dropping job", zap.String("journal_id", job.JournalID))
		return false
	}
}

func (w *EnrichmentWorker) worker() {
	defer w.workerWg.Done()

	for job := range w.jobQueue {
		w.processJob(job)
	}
}

type summaryResult struct {
	Summary string   `json:"summary"`
	Tags    []string `json:"tags"`
}

// processJob runs the summary completion and the embedding fan-out
// concurrently, joins both, then persists: summary/tags update first, chunk
// insert second. The two writes are not transactional; a failure between them
// leaves a summarized entry without vectors.
func (w *EnrichmentWorker) processJob(job EnrichmentJob) {
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		result  summaryResult
		sumErr  error
		chunks  []string
		vectors [][]float32
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		result, sumErr = w.generateSummary(ctx, job.Content)
	}()
	go func() {
		defer wg.Done()
		chunks, vectors = w.embedder.Embed(ctx, job.Content)
	}()
	wg.Wait()

	if sumErr != nil {
		w.logger.Error("enrichment summary failed",
			zap.String("journal_id", job.JournalID), zap.Error(sumErr))
		if err := w.journalRepo.UpdateEnrichmentStatus(job.JournalID, journaldomain.EnrichmentFailed); err != nil {
			w.logger.Error("failed to mark enrichment failed",
				zap.String("journal_id", job.JournalID), zap.Error(err))
		}
		return
	}

	tags, err := json.Marshal(result.Tags)
	if err != nil {
		tags = []byte("[]")
	}
	if err := w.journalRepo.UpdateEnrichment(job.JournalID, result.Summary, datatypes.JSON(tags), journaldomain.EnrichmentComplete); err != nil {
		w.logger.Error("failed to persist summary",
			zap.String("journal_id", job.JournalID), zap.Error(err))
		return
	}

	if len(vectors) == 0 {
		w.logger.Info("enrichment complete without vectors", zap.String("journal_id", job.JournalID))
		return
	}

	rows := make([]*journaldomain.VectorChunk, 0, len(vectors))
	for i, vector := range vectors {
		encryptedChunk, err := w.cipher.Encrypt(chunks[i])
		if err != nil {
			w.logger.Error("failed to encrypt chunk",
				zap.String("journal_id", job.JournalID), zap.Error(err))
			continue
		}
		rows = append(rows, &journaldomain.VectorChunk{
			JournalID:        job.JournalID,
			UserID:           job.UserID,
			ContentEncrypted: encryptedChunk,
			Embedding:        pgvector.NewVector(vector),
		})
	}

	if err := w.journalRepo.InsertChunks(rows); err != nil {
		w.logger.Error("failed to persist vector chunks",
			zap.String("journal_id", job.JournalID), zap.Error(err))
		return
	}

	w.logger.Info("enrichment complete",
		zap.String("journal_id", job.JournalID), zap.Int("chunks", len(rows)))
}

func (w *EnrichmentWorker) generateSummary(ctx context.Context, content string) (summaryResult, error) {
	raw, err := w.completer.Complete(ctx, llm.CompletionRequest{
		SystemPrompt: summarySystemPrompt,
		UserPrompt:   content,
		Model:        llm.ModelSummary,
		JSONMode:     true,
	})
	if err != nil {
		return summaryResult{}, err
	}

	var result summaryResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return summaryResult{}, err
	}
	return result, nil
}
