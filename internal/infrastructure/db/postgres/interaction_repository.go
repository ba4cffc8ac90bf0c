package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/siccrm/crm-api/internal/core/domain"
	"github.com/siccrm/crm-api/internal/core/ports"
)

const interactionColumns = `i.id, i.title, i.type, COALESCE(i.description, ''), i.contact_id,
	i.scheduled_at, i.duration_min, i.priority, i.status, COALESCE(i.notes, ''),
	i.created_by, i.created_at, i.updated_at,
	COALESCE(c.first_name, ''), COALESCE(c.last_name, ''), COALESCE(c.company, '')`

// InteractionRepository persists interactions and their participants.
type InteractionRepository struct {
	pool *pgxpool.Pool
}

func NewInteractionRepository(pool *pgxpool.Pool) *InteractionRepository {
	return &InteractionRepository{pool: pool}
}

func (r *InteractionRepository) Create(ctx context.Context, i *domain.Interaction) (*domain.Interaction, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO interactions
		   (title, type, description, contact_id, scheduled_at, duration_min,
		    priority, status, notes, created_by, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now(), now())
		 RETURNING id`,
		i.Title, string(i.Type), i.Description, i.ContactID, i.ScheduledAt,
		i.DurationMin, string(i.Priority), string(i.Status), i.Notes, i.CreatedBy,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("insert interaction: %w", err)
	}

	return r.FindByID(ctx, id)
}

func (r *InteractionRepository) FindByID(ctx context.Context, id int64) (*domain.Interaction, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+interactionColumns+`
		   FROM interactions i
		   LEFT JOIN contacts c ON c.id = i.contact_id
		  WHERE i.id = $1`,
		id,
	)

	it, err := scanInteraction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInteractionNotFound
		}
		return nil, fmt.Errorf("find interaction: %w", err)
	}
	return it, nil
}

func (r *InteractionRepository) List(ctx context.Context, filter ports.ListInteractionsFilter) ([]*domain.Interaction, int64, error) {
	where := ""
	args := []any{}
	if filter.Search != "" {
		where = `WHERE (i.title ILIKE $1 OR c.first_name ILIKE $1 OR c.last_name ILIKE $1 OR c.company ILIKE $1)`
		args = append(args, "%"+filter.Search+"%")
	}

	var total int64
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*)
		   FROM interactions i
		   LEFT JOIN contacts c ON c.id = i.contact_id `+where,
		args...,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count interactions: %w", err)
	}

	offset := (filter.Page - 1) * filter.PageSize
	listArgs := append(args, filter.PageSize, offset)
	listSQL := fmt.Sprintf(
		`SELECT %s
		   FROM interactions i
		   LEFT JOIN contacts c ON c.id = i.contact_id
		  %s
		  ORDER BY i.scheduled_at DESC NULLS LAST, i.created_at DESC
		  LIMIT $%d OFFSET $%d`,
		interactionColumns, where, len(args)+1, len(args)+2,
	)

	rows, err := r.pool.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list interactions: %w", err)
	}
	defer rows.Close()

	var items []*domain.Interaction
	for rows.Next() {
		it, err := scanInteraction(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan interaction: %w", err)
		}
		items = append(items, it)
	}
	return items, total, rows.Err()
}

func (r *InteractionRepository) Update(ctx context.Context, i *domain.Interaction) (*domain.Interaction, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE interactions SET
		   title = $1, type = $2, description = $3, contact_id = $4,
		   scheduled_at = $5, duration_min = $6, priority = $7, status = $8,
		   notes = $9, updated_at = now()
		 WHERE id = $10`,
		i.Title, string(i.Type), i.Description, i.ContactID, i.ScheduledAt,
		i.DurationMin, string(i.Priority), string(i.Status), i.Notes, i.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update interaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrInteractionNotFound
	}

	return r.FindByID(ctx, i.ID)
}

// Delete removes the participant rows and the interaction in one transaction.
func (r *InteractionRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM interaction_participants WHERE interaction_id = $1`, id,
	); err != nil {
		return fmt.Errorf("delete participants: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM interactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete interaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInteractionNotFound
	}

	return tx.Commit(ctx)
}

func (r *InteractionRepository) AddParticipant(ctx context.Context, p *domain.Participant) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO interaction_participants (interaction_id, user_id, role_in_interaction)
		 VALUES ($1, $2, NULLIF($3, ''))
		 ON CONFLICT (interaction_id, user_id) DO NOTHING`,
		p.InteractionID, p.UserID, p.RoleInInteraction,
	)
	if err != nil {
		return fmt.Errorf("add participant: %w", err)
	}
	return nil
}

func (r *InteractionRepository) IsParticipant(ctx context.Context, interactionID, userID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (
		   SELECT 1 FROM interaction_participants
		    WHERE interaction_id = $1 AND user_id = $2
		 )`,
		interactionID, userID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("participant check: %w", err)
	}
	return exists, nil
}

func scanInteraction(row pgx.Row) (*domain.Interaction, error) {
	var it domain.Interaction
	var typ, priority, status string
	err := row.Scan(
		&it.ID, &it.Title, &typ, &it.Description, &it.ContactID,
		&it.ScheduledAt, &it.DurationMin, &priority, &status, &it.Notes,
		&it.CreatedBy, &it.CreatedAt, &it.UpdatedAt,
		&it.ContactFirstName, &it.ContactLastName, &it.ContactCompany,
	)
	if err != nil {
		return nil, err
	}
	it.Type = domain.InteractionType(typ)
	it.Priority = domain.InteractionPriority(priority)
	it.Status = domain.InteractionStatus(status)
	return &it, nil
}
