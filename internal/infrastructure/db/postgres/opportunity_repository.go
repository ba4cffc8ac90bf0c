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

const opportunityColumns = `id, title, COALESCE(description, ''), contact_id, value, stage,
	probability, close_date, created_by, created_at, updated_at`

// OpportunityRepository persists opportunities.
type OpportunityRepository struct {
	pool *pgxpool.Pool
}

func NewOpportunityRepository(pool *pgxpool.Pool) *OpportunityRepository {
	return &OpportunityRepository{pool: pool}
}

func (r *OpportunityRepository) Create(ctx context.Context, o *domain.Opportunity) (*domain.Opportunity, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO opportunities
		   (title, description, contact_id, value, stage, probability, close_date, created_by, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())
		 RETURNING id`,
		o.Title, o.Description, o.ContactID, o.Value, string(o.Stage),
		o.Probability, o.CloseDate, o.CreatedBy,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("insert opportunity: %w", err)
	}

	return r.FindByID(ctx, id)
}

func (r *OpportunityRepository) FindByID(ctx context.Context, id int64) (*domain.Opportunity, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+opportunityColumns+` FROM opportunities WHERE id = $1`, id)

	o, err := scanOpportunity(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOpportunityNotFound
		}
		return nil, fmt.Errorf("find opportunity: %w", err)
	}
	return o, nil
}

func (r *OpportunityRepository) List(ctx context.Context, filter ports.ListOpportunitiesFilter) ([]*domain.Opportunity, int64, error) {
	where := ""
	args := []any{}
	if filter.Stage != "" {
		where = `WHERE stage = $1`
		args = append(args, filter.Stage)
	}

	var total int64
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM opportunities `+where, args...,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count opportunities: %w", err)
	}

	offset := (filter.Page - 1) * filter.PageSize
	listArgs := append(args, filter.PageSize, offset)
	listSQL := fmt.Sprintf(
		`SELECT %s FROM opportunities %s ORDER BY updated_at DESC LIMIT $%d OFFSET $%d`,
		opportunityColumns, where, len(args)+1, len(args)+2,
	)

	rows, err := r.pool.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list opportunities: %w", err)
	}
	defer rows.Close()

	var items []*domain.Opportunity
	for rows.Next() {
		o, err := scanOpportunity(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan opportunity: %w", err)
		}
		items = append(items, o)
	}
	return items, total, rows.Err()
}

func (r *OpportunityRepository) Update(ctx context.Context, o *domain.Opportunity) (*domain.Opportunity, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE opportunities SET
		   title = $1, description = $2, contact_id = $3, value = $4,
		   stage = $5, probability = $6, close_date = $7, updated_at = now()
		 WHERE id = $8`,
		o.Title, o.Description, o.ContactID, o.Value, string(o.Stage),
		o.Probability, o.CloseDate, o.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update opportunity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrOpportunityNotFound
	}

	return r.FindByID(ctx, o.ID)
}

func (r *OpportunityRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM opportunities WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete opportunity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOpportunityNotFound
	}
	return nil
}

func (r *OpportunityRepository) ListAll(ctx context.Context) ([]*domain.Opportunity, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+opportunityColumns+` FROM opportunities ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list opportunities: %w", err)
	}
	defer rows.Close()

	var items []*domain.Opportunity
	for rows.Next() {
		o, err := scanOpportunity(rows)
		if err != nil {
			return nil, fmt.Errorf("scan opportunity: %w", err)
		}
		items = append(items, o)
	}
	return items, rows.Err()
}

func scanOpportunity(row pgx.Row) (*domain.Opportunity, error) {
	var o domain.Opportunity
	var stage string
	err := row.Scan(
		&o.ID, &o.Title, &o.Description, &o.ContactID, &o.Value, &stage,
		&o.Probability, &o.CloseDate, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	o.Stage = domain.OpportunityStage(stage)
	return &o, nil
}
