package service

import (
	"context"
	"errors"
	"time"

	"github.com/mesto/mesto-api/internal/apperr"
	"github.com/mesto/mesto-api/internal/metrics"
	"github.com/mesto/mesto-api/internal/model"
	"github.com/mesto/mesto-api/internal/repository"
)

// CardService handles card business logic.
type CardService struct {
	cards   CardStore
	metrics metrics.Recorder
}

// NewCardService creates a new CardService.
func NewCardService(cards CardStore, recorder metrics.Recorder) *CardService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &CardService{cards: cards, metrics: recorder}
}

// List returns every card, newest first.
func (s *CardService) List(ctx context.Context) ([]*model.Card, error) {
	cards, err := s.cards.ListCards(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return cards, nil
}

// Create posts a new card owned by ownerID.
func (s *CardService) Create(ctx context.Context, ownerID, name, link string) (*model.Card, error) {
	card := &model.Card{
		ID:        newID(),
		Name:      name,
		Link:      link,
		OwnerID:   ownerID,
		Likes:     []string{},
		CreatedAt: time.Now().UTC(),
	}

	if err := s.cards.CreateCard(ctx, card); err != nil {
		return nil, apperr.Internal(err)
	}

	s.metrics.IncCardCreated()
	return card, nil
}

// Delete removes a card. Only its owner may delete it.
func (s *CardService) Delete(ctx context.Context, cardID, userID string) (*model.Card, error) {
	card, err := s.cards.GetCardByID(ctx, cardID)
	if err != nil {
		return nil, cardLookupError(err)
	}
	if !card.IsOwnedBy(userID) {
		return nil, apperr.Forbidden(MsgForeignCardDelete)
	}

	deleted, err := s.cards.DeleteCard(ctx, cardID, userID)
	if err != nil {
		return nil, cardLookupError(err)
	}

	s.metrics.IncCardDeleted()
	return deleted, nil
}

// Like adds userID to the card's likes.
func (s *CardService) Like(ctx context.Context, cardID, userID string) (*model.Card, error) {
	card, err := s.cards.AddLike(ctx, cardID, userID)
	if err != nil {
		return nil, cardLookupError(err)
	}
	s.metrics.IncCardLiked()
	return card, nil
}

// Unlike removes userID from the card's likes.
func (s *CardService) Unlike(ctx context.Context, cardID, userID string) (*model.Card, error) {
	card, err := s.cards.RemoveLike(ctx, cardID, userID)
	if err != nil {
		return nil, cardLookupError(err)
	}
	s.metrics.IncCardUnliked()
	return card, nil
}

func cardLookupError(err error) error {
	if errors.Is(err, repository.ErrCardNotFound) {
		return apperr.Wrap(apperr.KindNotFound, MsgCardNotFound, err)
	}
	return apperr.Internal(err)
}
