package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"emkaan/api/internal/models"
)

const pageColumns = `id, name, slug, title, description, meta_title, meta_description, is_active, "order", created_at, updated_at`

type PageRepository struct {
	pool *pgxpool.Pool
}

func NewPageRepository(pool *pgxpool.Pool) *PageRepository {
	return &PageRepository{pool: pool}
}

func scanPage(row pgx.Row) (models.Page, error) {
	var page models.Page
	err := row.Scan(
		&page.ID,
		&page.Name,
		&page.Slug,
		&page.Title,
		&page.Description,
		&page.MetaTitle,
		&page.MetaDescription,
		&page.IsActive,
		&page.Order,
		&page.CreatedAt,
		&page.UpdatedAt,
	)
	return page, err
}

func (r *PageRepository) Create(ctx context.Context, page models.Page) error {
	const query = `
		INSERT INTO pages (
			id, name, slug, title, description, meta_title, meta_description, is_active, "order", created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW()
		)
	`

	_, err := r.pool.Exec(ctx, query,
		page.ID,
		page.Name,
		page.Slug,
		page.Title,
		page.Description,
		page.MetaTitle,
		page.MetaDescription,
		page.IsActive,
		page.Order,
	)
	if isUniqueViolation(err) {
		return ErrDuplicateSlug
	}
	return err
}

func (r *PageRepository) GetByID(ctx context.Context, id string) (models.Page, error) {
	const query = `SELECT ` + pageColumns + ` FROM pages WHERE id = $1`

	page, err := scanPage(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Page{}, ErrPageNotFound
		}
		return models.Page{}, err
	}
	return page, nil
}

// List returns all pages in display order.
func (r *PageRepository) List(ctx context.Context) ([]models.Page, error) {
	const query = `SELECT ` + pageColumns + ` FROM pages ORDER BY "order" ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []models.Page
	for rows.Next() {
		page, err := scanPage(rows)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}
	return pages, rows.Err()
}

func (r *PageRepository) Update(ctx context.Context, page models.Page) error {
	const query = `
		UPDATE pages
		SET name = $2,
		    slug = $3,
		    title = $4,
		    description = $5,
		    meta_title = $6,
		    meta_description = $7,
		    is_active = $8,
		    "order" = $9,
		    updated_at = NOW()
		WHERE id = $1
	`

	cmd, err := r.pool.Exec(ctx, query,
		page.ID,
		page.Name,
		page.Slug,
		page.Title,
		page.Description,
		page.MetaTitle,
		page.MetaDescription,
		page.IsActive,
		page.Order,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateSlug
		}
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrPageNotFound
	}
	return nil
}

// UpdateOrder sets only the display position of one page.
func (r *PageRepository) UpdateOrder(ctx context.Context, id string, order int) error {
	const query = `UPDATE pages SET "order" = $2, updated_at = NOW() WHERE id = $1`

	cmd, err := r.pool.Exec(ctx, query, id, order)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrPageNotFound
	}
	return nil
}

// DeleteCascade removes a page together with every section referencing it
// inside one transaction. Either both deletes commit or neither does: when
// the page row turns out not to exist, the section deletes roll back and
// ErrPageNotFound is returned.
func (r *PageRepository) DeleteCascade(ctx context.Context, id string) (models.Page, int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return models.Page{}, 0, err
	}
	defer tx.Rollback(ctx)

	cmd, err := tx.Exec(ctx, `DELETE FROM sections WHERE page_id = $1`, id)
	if err != nil {
		return models.Page{}, 0, err
	}
	sectionsDeleted := cmd.RowsAffected()

	const query = `DELETE FROM pages WHERE id = $1 RETURNING ` + pageColumns

	page, err := scanPage(tx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Page{}, 0, ErrPageNotFound
		}
		return models.Page{}, 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return models.Page{}, 0, err
	}
	return page, sectionsDeleted, nil
}
