package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	"github.com/mesto/mesto-api/internal/model"
)

// ErrCardNotFound is returned when a card does not exist.
var ErrCardNotFound = errors.New("card not found")

const cardColumns = `id, name, link, owner_id, likes, created_at`

// CreateCard inserts a new card into the database.
func (r *Repository) CreateCard(ctx context.Context, card *model.Card) error {
	query := `
		INSERT INTO cards (id, name, link, owner_id, likes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	likes := card.Likes
	if likes == nil {
		likes = []string{}
	}

	_, err := r.pool.Exec(ctx, query,
		card.ID,
		card.Name,
		card.Link,
		card.OwnerID,
		pq.Array(likes),
		card.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create card: %w", err)
	}

	card.Likes = likes
	return nil
}

// ListCards returns every card, newest first.
func (r *Repository) ListCards(ctx context.Context) ([]*model.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards ORDER BY created_at DESC, id DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	defer rows.Close()

	cards := make([]*model.Card, 0)
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		cards = append(cards, card)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cards: %w", err)
	}

	return cards, nil
}

// GetCardByID retrieves a card by its ID.
func (r *Repository) GetCardByID(ctx context.Context, id string) (*model.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE id = $1`

	card, err := scanCard(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to get card: %w", err)
	}

	return card, nil
}

// DeleteCard removes a card owned by ownerID and returns it.
// A card owned by someone else is reported as ErrCardNotFound.
func (r *Repository) DeleteCard(ctx context.Context, id, ownerID string) (*model.Card, error) {
	query := `DELETE FROM cards WHERE id = $1 AND owner_id = $2 RETURNING ` + cardColumns

	card, err := scanCard(r.pool.QueryRow(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to delete card: %w", err)
	}

	return card, nil
}

// AddLike adds userID to the card's likes. Liking twice is a no-op.
func (r *Repository) AddLike(ctx context.Context, cardID, userID string) (*model.Card, error) {
	query := `
		UPDATE cards
		SET likes = CASE WHEN $2 = ANY(likes) THEN likes ELSE array_append(likes, $2) END
		WHERE id = $1
		RETURNING ` + cardColumns

	card, err := scanCard(r.pool.QueryRow(ctx, query, cardID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to like card: %w", err)
	}

	return card, nil
}

// RemoveLike removes userID from the card's likes.
func (r *Repository) RemoveLike(ctx context.Context, cardID, userID string) (*model.Card, error) {
	query := `
		UPDATE cards
		SET likes = array_remove(likes, $2)
		WHERE id = $1
		RETURNING ` + cardColumns

	card, err := scanCard(r.pool.QueryRow(ctx, query, cardID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to unlike card: %w", err)
	}

	return card, nil
}

func scanCard(row pgx.Row) (*model.Card, error) {
	var card model.Card
	var likes []string

	err := row.Scan(
		&card.ID,
		&card.Name,
		&card.Link,
		&card.OwnerID,
		pq.Array(&likes),
		&card.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if likes == nil {
		likes = []string{}
	}
	card.Likes = likes
	return &card, nil
}
