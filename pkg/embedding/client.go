package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// perCallTimeout bounds each remote embedding request.
const perCallTimeout = 10 * time.Second

// Embedder obtains one vector per paragraph chunk of a text.
type Embedder interface {
	Embed(ctx context.Context, text string) (chunks []string, vectors [][]float32)
}

// Client calls a remote embedding endpoint once per chunk, concurrently.
type Client struct {
	url    string
	apiKey string
	client *http.Client
	logger *zap.Logger
}

func NewClient(url, apiKey string, logger *zap.Logger) *Client {
	return &Client{
		url:    url,
		apiKey: apiKey,
		client: &http.Client{Timeout: perCallTimeout},
		logger: logger,
	}
}

type embedRequest struct {
	Input string `json:"input"`
}

type embedResponse struct {
	Vector []float32 `json:"vector"`
}

// SplitChunks splits text on blank-line boundaries, dropping chunks that are
// only whitespace. When nothing survives the split, the whole input is one
// chunk.
func SplitChunks(text string) []string {
	var chunks []string
	for _, c := range strings.Split(text, "\n\n") {
		if strings.TrimSpace(c) != "" {
			chunks = append(chunks, c)
		}
	}
	if len(chunks) == 0 {
		chunks = []string{text}
	}
	return chunks
}

// Embed splits text into chunks and fetches a vector per chunk, fanning out
// one request per chunk. Results are collected by chunk index, so the returned
// parallel slices keep the original chunk order no matter which requests
// finish first. Chunks whose call fails are logged and dropped; if every call
// fails, both slices are empty.
func (c *Client) Embed(ctx context.Context, text string) ([]string, [][]float32) {
	chunks := SplitChunks(text)

	vectors := make([][]float32, len(chunks))
	var wg sync.WaitGroup
	for i, chunk := range chunks {
		wg.Add(1)
		go func(i int, chunk string) {
			defer wg.Done()
			vec, err := c.fetchVector(ctx, chunk)
			if err != nil {
				c.logger.Warn("embedding chunk dropped", zap.Int("chunk", i), zap.Error(err))
				return
			}
			vectors[i] = vec
		}(i, chunk)
	}
	wg.Wait()

	// Compact to successful pairs, preserving relative order.
	outChunks := make([]string, 0, len(chunks))
	outVectors := make([][]float32, 0, len(chunks))
	for i, vec := range vectors {
		if vec != nil {
			outChunks = append(outChunks, chunks[i])
			outVectors = append(outVectors, vec)
		}
	}
	return outChunks, outVectors
}

func (c *Client) fetchVector(ctx context.Context, chunk string) ([]float32, error) {
	body, err := json.Marshal(embedRequest{Input: chunk})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.url, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("embedding API error: status %d, body: %s", resp.StatusCode, string(respBody))
	}

	var result embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	if len(result.Vector) == 0 {
		return nil, fmt.Errorf("empty vector returned")
	}

	return result.Vector, nil
}
