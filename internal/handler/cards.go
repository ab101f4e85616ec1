package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mesto/mesto-api/internal/handler/dto"
	"github.com/mesto/mesto-api/internal/model"
	"github.com/mesto/mesto-api/internal/service"
	"github.com/mesto/mesto-api/internal/validate"
)

// CardHandler handles card endpoints. Every route requires authentication.
type CardHandler struct {
	cards     *service.CardService
	validator *validate.Validator
}

// NewCardHandler creates a new CardHandler.
func NewCardHandler(cards *service.CardService, validator *validate.Validator) *CardHandler {
	return &CardHandler{cards: cards, validator: validator}
}

// List returns every card, newest first.
// GET /cards
func (h *CardHandler) List(w http.ResponseWriter, r *http.Request) error {
	cards, err := h.cards.List(r.Context())
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, dto.ToCardResponses(cards))
	return nil
}

// Create posts a card owned by the caller.
// POST /cards
func (h *CardHandler) Create(w http.ResponseWriter, r *http.Request) error {
	userID, err := currentUserID(r)
	if err != nil {
		return err
	}

	var req dto.CreateCardRequest
	if err := h.validator.DecodeJSON(r, &req); err != nil {
		return err
	}

	card, err := h.cards.Create(r.Context(), userID, req.Name, req.Link)
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusCreated, dto.ToCardResponse(card))
	return nil
}

// Delete removes one of the caller's cards.
// DELETE /cards/{cardId}
func (h *CardHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	return h.withCard(w, r, h.cards.Delete)
}

// Like adds the caller to a card's likes.
// PUT /cards/{cardId}/likes
func (h *CardHandler) Like(w http.ResponseWriter, r *http.Request) error {
	return h.withCard(w, r, h.cards.Like)
}

// Unlike removes the caller from a card's likes.
// DELETE /cards/{cardId}/likes
func (h *CardHandler) Unlike(w http.ResponseWriter, r *http.Request) error {
	return h.withCard(w, r, h.cards.Unlike)
}

// cardAction is a CardService operation keyed by card and caller.
type cardAction func(ctx context.Context, cardID, userID string) (*model.Card, error)

// withCard validates {cardId}, runs action for the caller and writes the card.
func (h *CardHandler) withCard(w http.ResponseWriter, r *http.Request, action cardAction) error {
	userID, err := currentUserID(r)
	if err != nil {
		return err
	}

	cardID := chi.URLParam(r, "cardId")
	if err := h.validator.Var(validate.SourceParams, "cardId", cardID, "required,entityid"); err != nil {
		return err
	}

	card, err := action(r.Context(), cardID, userID)
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, dto.ToCardResponse(card))
	return nil
}
