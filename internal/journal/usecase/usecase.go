package usecase

import (
	"context"

	journaldto "journaly-backend/internal/journal/dto"
)

// JournalUsecase handles journal CRUD, the "go deeper" flow, and dispatch of
// background enrichment.
type JournalUsecase interface {
	Create(ctx context.Context, userID string, req *journaldto.CreateJournalRequest) (*journaldto.JournalResponse, error)
	List(userID string) ([]*journaldto.JournalResponse, error)
	Get(userID, id string) (*journaldto.JournalResponse, error)
	Update(userID, id string, req *journaldto.UpdateJournalRequest) (*journaldto.JournalResponse, error)
	Delete(userID, id string) error
	Deepen(ctx context.Context, userID string, req *journaldto.DeepenRequest) (*journaldto.DeepenResponse, error)
}
