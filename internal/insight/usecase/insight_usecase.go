package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	insightdomain "journaly-backend/internal/insight/domain"
	insightdto "journaly-backend/internal/insight/dto"
	insightrepo "journaly-backend/internal/insight/repository"
	journaldomain "journaly-backend/internal/journal/domain"
	journalrepo "journaly-backend/internal/journal/repository"
	mooddomain "journaly-backend/internal/mood/domain"
	moodrepo "journaly-backend/internal/mood/repository"
	"journaly-backend/pkg/crypto"
	"journaly-backend/pkg/llm"

	"go.uber.org/zap"
)

// Data sufficiency gate: a week with less than this much data gets the
// synthetic empty payload instead of a generated insight.
const (
	minMoodsForInsight    = 2
	minJournalsForInsight = 1

	journalExcerptLen = 500
)

const insightSystemPrompt = "You are a reflective journaling coach reviewing one week of a user's moods and journal entries. " +
	"Return JSON with exactly these fields: " +
	`{ "headline": string, "summary": string, "pattern": string, "sentiment_trend": string, "actionable_tip": string }. ` +
	"headline is a short title for the week. summary is 2-3 warm, specific sentences. " +
	"pattern names one recurring theme you noticed. " +
	"sentiment_trend must be exactly one of: Rising, Falling, Stable, Volatile. " +
	"actionable_tip is one small concrete suggestion for next week."

// InsightUsecase produces cached weekly insight summaries.
type InsightUsecase interface {
	GetWeeklySummary(ctx context.Context, userID string, offset int) (*insightdto.WeeklySummaryResponse, error)
}

type insightUsecase struct {
	insightRepo insightrepo.InsightRepository
	moodRepo    moodrepo.MoodRepository
	journalRepo journalrepo.JournalRepository
	cipher      *crypto.Cipher
	completer   llm.Completer
	logger      *zap.Logger
	now         func() time.Time
}

func NewInsightUsecase(
	insightRepo insightrepo.InsightRepository,
	moodRepo moodrepo.MoodRepository,
	journalRepo journalrepo.JournalRepository,
	cipher *crypto.Cipher,
	completer llm.Completer,
	logger *zap.Logger,
) InsightUsecase {
	return &insightUsecase{
		insightRepo: insightRepo,
		moodRepo:    moodRepo,
		journalRepo: journalRepo,
		cipher:      cipher,
		completer:   completer,
		logger:      logger,
		now:         time.Now,
	}
}

// WeekWindow resolves the Monday-aligned UTC week for the given offset.
// offset 0 is the most recently completed week: the Monday strictly before
// the current week's Monday. The end date is the window's Sunday, inclusive.
func WeekWindow(now time.Time, offset int) (start, end time.Time) {
	today := now.UTC().Truncate(24 * time.Hour)
	daysSinceMonday := (int(today.Weekday()) + 6) % 7
	currentWeekStart := today.AddDate(0, 0, -daysSinceMonday)

	start = currentWeekStart.AddDate(0, 0, -7*(offset+1))
	end = start.AddDate(0, 0, 6)
	return start, end
}

func (u *insightUsecase) GetWeeklySummary(ctx context.Context, userID string, offset int) (*insightdto.WeeklySummaryResponse, error) {
	weekStart, weekEnd := WeekWindow(u.now(), offset)
	startISO := weekStart.Format("2006-01-02")
	endISO := weekEnd.Format("2006-01-02")

	// Cache lookup: a persisted insight is returned verbatim.
	cached, err := u.insightRepo.FindByWeek(userID, insightdomain.InsightTypeWeekly, weekStart)
	if err != nil {
		return nil, err
	}
	if cached != nil {
		var payload insightdomain.InsightPayload
		if err := json.Unmarshal(cached.Payload, &payload); err != nil {
			return nil, fmt.Errorf("stored insight payload unreadable: %w", err)
		}
		return &insightdto.WeeklySummaryResponse{
			ID:        cached.ID,
			WeekStart: startISO,
			WeekEnd:   endISO,
			Payload:   payload,
		}, nil
	}

	// The Sunday of the window counts in full.
	rangeEnd := weekStart.AddDate(0, 0, 7).Add(-time.Nanosecond)

	var (
		wg         sync.WaitGroup
		moods      []*mooddomain.MoodEntry
		journals   []*journaldomain.JournalEntry
		moodErr    error
		journalErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		moods, moodErr = u.moodRepo.FindByUserInRange(userID, weekStart, rangeEnd)
	}()
	go func() {
		defer wg.Done()
		journals, journalErr = u.journalRepo.FindByUserInRange(userID, weekStart, rangeEnd)
	}()
	wg.Wait()
	if moodErr != nil {
		return nil, moodErr
	}
	if journalErr != nil {
		return nil, journalErr
	}

	// Too little data: return the empty payload without persisting it, so a
	// later call can still generate a real insight once data is backfilled.
	if len(moods) < minMoodsForInsight && len(journals) < minJournalsForInsight {
		return &insightdto.WeeklySummaryResponse{
			WeekStart: startISO,
			WeekEnd:   endISO,
			Payload:   insightdomain.EmptyWeekPayload(),
		}, nil
	}

	payload := u.generatePayload(ctx, moods, journals, startISO, endISO)

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	insight, err := u.insightRepo.Insert(&insightdomain.WeeklyInsight{
		UserID:      userID,
		InsightType: insightdomain.InsightTypeWeekly,
		ValidFrom:   weekStart,
		ValidUntil:  weekEnd,
		Payload:     payloadJSON,
	})
	if err != nil {
		return nil, err
	}

	// The insert may have returned a concurrently created row; its payload
	// wins over the one generated here.
	var persisted insightdomain.InsightPayload
	if err := json.Unmarshal(insight.Payload, &persisted); err != nil {
		return nil, fmt.Errorf("stored insight payload unreadable: %w", err)
	}

	return &insightdto.WeeklySummaryResponse{
		ID:        insight.ID,
		WeekStart: startISO,
		WeekEnd:   endISO,
		Payload:   persisted,
	}, nil
}

// generatePayload builds the week's context block and asks the LLM for the
// structured insight. Any completion or parse failure degrades to the fixed
// fallback payload instead of failing the request.
func (u *insightUsecase) generatePayload(ctx context.Context, moods []*mooddomain.MoodEntry, journals []*journaldomain.JournalEntry, startISO, endISO string) insightdomain.InsightPayload {
	var contextBlock strings.Builder
	fmt.Fprintf(&contextBlock, "WEEK: %s to %s\n\nMOOD LOG:\n", startISO, endISO)
	for _, mood := range moods {
		fmt.Fprintf(&contextBlock, "%s: %d/5 (%s)\n", mood.CreatedAt.Format("2006-01-02"), mood.Score, mood.Label)
	}

	contextBlock.WriteString("\nJOURNAL ENTRIES:\n")
	for _, journal := range journals {
		content, ok := u.cipher.DecryptOrPlaceholder(journal.ContentEncrypted)
		if !ok {
			u.logger.Warn("journal content unreadable during insight generation",
				zap.String("journal_id", journal.ID))
		}
		fmt.Fprintf(&contextBlock, "%s: %s\n", journal.CreatedAt.Format("2006-01-02"), excerpt(content, journalExcerptLen))
	}

	raw, err := u.completer.Complete(ctx, llm.CompletionRequest{
		SystemPrompt: insightSystemPrompt,
		UserPrompt:   contextBlock.String(),
		Model:        llm.ModelInsight,
		JSONMode:     true,
	})
	if err != nil {
		u.logger.Warn("insight completion failed, using fallback", zap.Error(err))
		return insightdomain.FallbackPayload()
	}

	var payload insightdomain.InsightPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		u.logger.Warn("insight payload parse failed, using fallback", zap.Error(err))
		return insightdomain.FallbackPayload()
	}
	if !insightdomain.ValidTrend(payload.SentimentTrend) {
		payload.SentimentTrend = insightdomain.TrendStable
	}
	return payload
}

func excerpt(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
