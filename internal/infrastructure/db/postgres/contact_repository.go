package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/siccrm/crm-api/internal/core/domain"
	"github.com/siccrm/crm-api/internal/core/ports"
)

const contactColumns = `id, first_name, last_name, COALESCE(email, ''), COALESCE(phone, ''),
	COALESCE(company, ''), COALESCE(address, ''), status, COALESCE(notes, ''),
	last_contact_at, created_at, updated_at`

// ContactRepository persists contacts.
type ContactRepository struct {
	pool *pgxpool.Pool
}

func NewContactRepository(pool *pgxpool.Pool) *ContactRepository {
	return &ContactRepository{pool: pool}
}

func (r *ContactRepository) Create(ctx context.Context, c *domain.Contact) (*domain.Contact, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO contacts
		   (first_name, last_name, email, phone, company, address, status, notes, last_contact_at, created_at, updated_at)
		 VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9, now(), now())
		 RETURNING id`,
		c.FirstName, c.LastName, c.Email, c.Phone, c.Company, c.Address,
		string(c.Status), c.Notes, c.LastContactAt,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("insert contact: %w", err)
	}

	return r.FindByID(ctx, id)
}

func (r *ContactRepository) FindByID(ctx context.Context, id int64) (*domain.Contact, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+contactColumns+` FROM contacts WHERE id = $1`, id)

	c, err := scanContact(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrContactNotFound
		}
		return nil, fmt.Errorf("find contact: %w", err)
	}
	return c, nil
}

func (r *ContactRepository) List(ctx context.Context, filter ports.ListContactsFilter) ([]*domain.Contact, int64, error) {
	where := ""
	args := []any{}
	if filter.Search != "" {
		where = `WHERE (first_name ILIKE $1 OR last_name ILIKE $1 OR email ILIKE $1 OR company ILIKE $1)`
		args = append(args, "%"+filter.Search+"%")
	}

	var total int64
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM contacts `+where, args...,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count contacts: %w", err)
	}

	offset := (filter.Page - 1) * filter.PageSize
	listArgs := append(args, filter.PageSize, offset)
	listSQL := fmt.Sprintf(
		`SELECT %s FROM contacts %s ORDER BY updated_at DESC LIMIT $%d OFFSET $%d`,
		contactColumns, where, len(args)+1, len(args)+2,
	)

	rows, err := r.pool.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	var contacts []*domain.Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan contact: %w", err)
		}
		contacts = append(contacts, c)
	}
	return contacts, total, rows.Err()
}

func (r *ContactRepository) Update(ctx context.Context, id int64, patch ports.ContactPatch) (*domain.Contact, error) {
	sets := []string{}
	args := []any{}
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if patch.FirstName != nil {
		add("first_name", *patch.FirstName)
	}
	if patch.LastName != nil {
		add("last_name", *patch.LastName)
	}
	if patch.Email != nil {
		add("email", *patch.Email)
	}
	if patch.Phone != nil {
		add("phone", *patch.Phone)
	}
	if patch.Company != nil {
		add("company", *patch.Company)
	}
	if patch.Address != nil {
		add("address", *patch.Address)
	}
	if patch.Status != nil {
		add("status", string(*patch.Status))
	}
	if patch.Notes != nil {
		add("notes", *patch.Notes)
	}
	if patch.LastContactAt != nil {
		add("last_contact_at", *patch.LastContactAt)
	}
	if len(sets) == 0 {
		return r.FindByID(ctx, id)
	}
	sets = append(sets, "updated_at = now()")

	args = append(args, id)
	sql := fmt.Sprintf(`UPDATE contacts SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(args))

	tag, err := r.pool.Exec(ctx, sql, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("update contact: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrContactNotFound
	}

	return r.FindByID(ctx, id)
}

func (r *ContactRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrContactNotFound
	}
	return nil
}

func (r *ContactRepository) RecentInteractions(ctx context.Context, contactID int64, limit int) ([]*domain.Interaction, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+interactionColumns+`
		   FROM interactions i
		   LEFT JOIN contacts c ON c.id = i.contact_id
		  WHERE i.contact_id = $1
		  ORDER BY COALESCE(i.scheduled_at, i.created_at) DESC
		  LIMIT $2`,
		contactID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("contact interactions: %w", err)
	}
	defer rows.Close()

	var items []*domain.Interaction
	for rows.Next() {
		it, err := scanInteraction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan interaction: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func scanContact(row pgx.Row) (*domain.Contact, error) {
	var c domain.Contact
	var status string
	err := row.Scan(
		&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.Company,
		&c.Address, &status, &c.Notes, &c.LastContactAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Status = domain.ContactStatus(status)
	return &c, nil
}
