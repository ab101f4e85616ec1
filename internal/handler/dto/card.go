package dto

import (
	"time"

	"github.com/mesto/mesto-api/internal/model"
)

// CreateCardRequest represents the request body for POST /cards.
type CreateCardRequest struct {
	Name string `json:"name" validate:"required,min=2,max=30"`
	Link string `json:"link" validate:"required,url,weburl"`
}

// CardResponse represents a card in API responses.
type CardResponse struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Link      string    `json:"link"`
	Owner     string    `json:"owner"`
	Likes     []string  `json:"likes"`
	CreatedAt time.Time `json:"created_at"`
}

// ToCardResponse converts a Card model to CardResponse DTO.
func ToCardResponse(card *model.Card) *CardResponse {
	likes := card.Likes
	if likes == nil {
		likes = []string{}
	}
	return &CardResponse{
		ID:        card.ID,
		Name:      card.Name,
		Link:      card.Link,
		Owner:     card.OwnerID,
		Likes:     likes,
		CreatedAt: card.CreatedAt,
	}
}

// ToCardResponses converts a slice of cards, never returning nil.
func ToCardResponses(cards []*model.Card) []*CardResponse {
	out := make([]*CardResponse, 0, len(cards))
	for _, c := range cards {
		out = append(out, ToCardResponse(c))
	}
	return out
}
