package bot

import (
	"context"
	"errors"
	"fmt"

	"printit-bot/internal/pricing"
	"printit-bot/pkg/redis"
)

// StateStore persists per-chat dialog state. *redis.Client satisfies it.
type StateStore interface {
	SaveState(ctx context.Context, chatID int64, state any) error
	GetState(ctx context.Context, chatID int64, state any) error
	ClearState(ctx context.Context, chatID int64) error
}

// UserState is the in-progress order of one chat.
type UserState struct {
	Step          string          `json:"step"`
	Username      string          `json:"username,omitempty"`
	Options       pricing.Options `json:"options"`
	Address       string          `json:"address,omitempty"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	Notes         string          `json:"notes,omitempty"`
}

type StateStorage struct {
	store StateStore
}

func NewStateStorage(store StateStore) *StateStorage {
	return &StateStorage{store: store}
}

func (s *StateStorage) Save(ctx context.Context, chatID int64, state UserState) error {
	if err := s.store.SaveState(ctx, chatID, state); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}

// Get returns the chat's state; a chat with no dialog yields a zero
// state.
func (s *StateStorage) Get(ctx context.Context, chatID int64) (UserState, error) {
	var state UserState
	if err := s.store.GetState(ctx, chatID, &state); err != nil {
		if errors.Is(err, redis.ErrMiss) {
			return UserState{}, nil
		}
		return UserState{}, fmt.Errorf("failed to get state: %w", err)
	}
	return state, nil
}

func (s *StateStorage) Clear(ctx context.Context, chatID int64) error {
	if err := s.store.ClearState(ctx, chatID); err != nil {
		return fmt.Errorf("failed to clear state: %w", err)
	}
	return nil
}

// Update loads the state, applies fn and saves the result.
func (s *StateStorage) Update(ctx context.Context, chatID int64, fn func(*UserState)) (UserState, error) {
	state, err := s.Get(ctx, chatID)
	if err != nil {
		return UserState{}, err
	}
	fn(&state)
	if err := s.Save(ctx, chatID, state); err != nil {
		return UserState{}, err
	}
	return state, nil
}
