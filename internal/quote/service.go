package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

const quotesURL = "https://api.api-ninjas.com/v2/quotes?category=inspirational%2Cwisdom"

// Quote is one daily inspirational quote.
type Quote struct {
	Quote  string `json:"quote"`
	Author string `json:"author"`
}

// fallbackQuote keeps the widget alive when the upstream API fails.
var fallbackQuote = Quote{
	Quote:  "The only journey is the one within.",
	Author: "Rainer Maria Rilke",
}

// Service fetches one quote per UTC day and caches it in memory. The upstream
// is rate limited, so every request past the first per day is a cache hit.
type Service struct {
	apiKey string
	client *http.Client
	logger *zap.Logger

	mu         sync.Mutex
	cachedDate string
	cached     *Quote
}

func NewService(apiKey string, logger *zap.Logger) *Service {
	return &Service{
		apiKey: apiKey,
		client: &http.Client{Timeout: 10 * time.Second},
		logger: logger,
	}
}

// DailyQuote returns today's quote, fetching it once per day. Any failure
// falls back to a fixed quote and is not cached, so the next request retries.
func (s *Service) DailyQuote(ctx context.Context) Quote {
	today := time.Now().UTC().Format("2006-01-02")

	s.mu.Lock()
	if s.cachedDate == today && s.cached != nil {
		quote := *s.cached
		s.mu.Unlock()
		return quote
	}
	s.mu.Unlock()

	quote, err := s.fetch(ctx)
	if err != nil {
		s.logger.Warn("daily quote fetch failed, using fallback", zap.Error(err))
		return fallbackQuote
	}

	s.mu.Lock()
	s.cachedDate = today
	s.cached = &quote
	s.mu.Unlock()

	return quote
}

func (s *Service) fetch(ctx context.Context) (Quote, error) {
	if s.apiKey == "" {
		return Quote{}, fmt.Errorf("quotes API key not configured")
	}

	req, err := http.NewRequestWithContext(ctx, "GET", quotesURL, nil)
	if err != nil {
		return Quote{}, err
	}
	req.Header.Set("X-Api-Key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return Quote{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Quote{}, fmt.Errorf("quotes API error: status %d", resp.StatusCode)
	}

	var quotes []Quote
	if err := json.NewDecoder(resp.Body).Decode(&quotes); err != nil {
		return Quote{}, err
	}
	if len(quotes) == 0 {
		return Quote{}, fmt.Errorf("no quote returned")
	}

	return quotes[0], nil
}
