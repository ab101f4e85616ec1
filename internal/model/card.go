package model

import (
	"slices"
	"time"
)

// Card is a photo card posted by a user.
type Card struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Link      string    `json:"link"`
	OwnerID   string    `json:"owner"`
	Likes     []string  `json:"likes"`
	CreatedAt time.Time `json:"created_at"`
}

// IsOwnedBy reports whether userID created the card.
func (c *Card) IsOwnedBy(userID string) bool {
	return c.OwnerID != "" && c.OwnerID == userID
}

// IsLikedBy reports whether userID has liked the card.
func (c *Card) IsLikedBy(userID string) bool {
	return slices.Contains(c.Likes, userID)
}
