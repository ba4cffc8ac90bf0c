package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/siccrm/crm-api/internal/core/domain"
)

// StatsRepository runs the aggregate queries behind the dashboard.
type StatsRepository struct {
	pool *pgxpool.Pool
}

func NewStatsRepository(pool *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{pool: pool}
}

func (r *StatsRepository) TotalContacts(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM contacts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count contacts: %w", err)
	}
	return n, nil
}

func (r *StatsRepository) InteractionsSince(ctx context.Context, cutoff time.Time) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM interactions WHERE created_at >= $1`, cutoff,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count interactions: %w", err)
	}
	return n, nil
}

func (r *StatsRepository) ActiveOpportunities(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM opportunities WHERE stage NOT IN ('closed_won', 'closed_lost')`,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count active opportunities: %w", err)
	}
	return n, nil
}

func (r *StatsRepository) ClosedOpportunities(ctx context.Context) (won, closed int64, err error) {
	err = r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FILTER (WHERE stage = 'closed_won'), COUNT(*)
		   FROM opportunities
		  WHERE stage IN ('closed_won', 'closed_lost')`,
	).Scan(&won, &closed)
	if err != nil {
		return 0, 0, fmt.Errorf("count closed opportunities: %w", err)
	}
	return won, closed, nil
}

// RecentActivity merges interactions and messages into one feed, newest first.
func (r *StatsRepository) RecentActivity(ctx context.Context, limit int) ([]*domain.ActivityItem, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT * FROM (
		   SELECT i.id,
		          'interaction' AS type,
		          i.title AS title,
		          '' AS description,
		          i.created_at AS time,
		          COALESCE(u.name, '') AS actor,
		          i.status AS status
		     FROM interactions i
		     LEFT JOIN users u ON u.id = i.created_by
		   UNION ALL
		   SELECT m.id,
		          'message',
		          'Message in interaction #' || m.interaction_id,
		          LEFT(m.body, 180),
		          m.sent_at,
		          COALESCE(u.name, ''),
		          'sent'
		     FROM messages m
		     LEFT JOIN users u ON u.id = m.sender_id
		 ) feed
		 ORDER BY time DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("recent activity: %w", err)
	}
	defer rows.Close()

	var items []*domain.ActivityItem
	for rows.Next() {
		var a domain.ActivityItem
		if err := rows.Scan(&a.ID, &a.Type, &a.Title, &a.Description, &a.Time, &a.Actor, &a.Status); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		items = append(items, &a)
	}
	return items, rows.Err()
}
