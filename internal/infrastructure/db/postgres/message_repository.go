package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/siccrm/crm-api/internal/core/domain"
)

// MessageRepository persists interaction messages. Messages are append-only;
// there is no update or delete.
type MessageRepository struct {
	pool *pgxpool.Pool
}

func NewMessageRepository(pool *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{pool: pool}
}

func (r *MessageRepository) ListByInteraction(ctx context.Context, interactionID int64, limit int) ([]*domain.Message, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT m.id, m.interaction_id, m.sender_id, u.name, m.body, m.sent_at, m.read_at
		   FROM messages m
		   JOIN users u ON u.id = m.sender_id
		  WHERE m.interaction_id = $1
		  ORDER BY m.sent_at ASC
		  LIMIT $2`,
		interactionID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var messages []*domain.Message
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.InteractionID, &m.SenderID, &m.SenderName, &m.Body, &m.SentAt, &m.ReadAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, &m)
	}
	return messages, rows.Err()
}

func (r *MessageRepository) Create(ctx context.Context, m *domain.Message) (*domain.Message, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO messages (interaction_id, sender_id, body, sent_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		m.InteractionID, m.SenderID, m.Body, m.SentAt,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}

	var out domain.Message
	err = r.pool.QueryRow(ctx,
		`SELECT m.id, m.interaction_id, m.sender_id, u.name, m.body, m.sent_at, m.read_at
		   FROM messages m
		   JOIN users u ON u.id = m.sender_id
		  WHERE m.id = $1`,
		id,
	).Scan(&out.ID, &out.InteractionID, &out.SenderID, &out.SenderName, &out.Body, &out.SentAt, &out.ReadAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMessageNotFound
		}
		return nil, fmt.Errorf("reload message: %w", err)
	}
	return &out, nil
}
