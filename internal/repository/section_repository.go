package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"emkaan/api/internal/models"
)

const sectionColumns = `id, name, page_id, title, content, type, images, links, "order", is_active, COALESCE(is_arabic, FALSE), created_at, updated_at`

type SectionRepository struct {
	pool *pgxpool.Pool
}

func NewSectionRepository(pool *pgxpool.Pool) *SectionRepository {
	return &SectionRepository{pool: pool}
}

func scanSection(row pgx.Row) (models.Section, error) {
	var section models.Section
	err := row.Scan(
		&section.ID,
		&section.Name,
		&section.PageID,
		&section.Title,
		&section.Content,
		&section.Type,
		&section.Images,
		&section.Links,
		&section.Order,
		&section.IsActive,
		&section.IsArabic,
		&section.CreatedAt,
		&section.UpdatedAt,
	)
	return section, err
}

func (r *SectionRepository) collect(rows pgx.Rows) ([]models.Section, error) {
	defer rows.Close()

	var sections []models.Section
	for rows.Next() {
		section, err := scanSection(rows)
		if err != nil {
			return nil, err
		}
		sections = append(sections, section)
	}
	return sections, rows.Err()
}

// localeClause narrows a section query to one locale partition. Legacy rows
// predate the is_arabic column and count as non-Arabic, so the false branch
// matches NULL as well.
func localeClause(arabic *bool) string {
	switch {
	case arabic == nil:
		return ""
	case *arabic:
		return " AND is_arabic IS TRUE"
	default:
		return " AND (is_arabic IS FALSE OR is_arabic IS NULL)"
	}
}

// ListByPage returns all sections of a page in display order, optionally
// narrowed to one locale partition.
func (r *SectionRepository) ListByPage(ctx context.Context, pageID string, arabic *bool) ([]models.Section, error) {
	query := `SELECT ` + sectionColumns + ` FROM sections WHERE page_id = $1` +
		localeClause(arabic) + ` ORDER BY "order" ASC`

	rows, err := r.pool.Query(ctx, query, pageID)
	if err != nil {
		return nil, err
	}
	return r.collect(rows)
}

// ListActiveByPage is ListByPage restricted to active sections; it feeds the
// composed page reads.
func (r *SectionRepository) ListActiveByPage(ctx context.Context, pageID string, arabic *bool) ([]models.Section, error) {
	query := `SELECT ` + sectionColumns + ` FROM sections WHERE page_id = $1 AND is_active` +
		localeClause(arabic) + ` ORDER BY "order" ASC`

	rows, err := r.pool.Query(ctx, query, pageID)
	if err != nil {
		return nil, err
	}
	return r.collect(rows)
}

// GetByID returns one section together with a summary of its owning page.
func (r *SectionRepository) GetByID(ctx context.Context, id string) (models.Section, models.PageRef, error) {
	const query = `
		SELECT s.id, s.name, s.page_id, s.title, s.content, s.type, s.images, s.links,
		       s."order", s.is_active, COALESCE(s.is_arabic, FALSE), s.created_at, s.updated_at,
		       p.id, p.name, p.slug
		FROM sections s
		JOIN pages p ON p.id = s.page_id
		WHERE s.id = $1
	`

	var section models.Section
	var page models.PageRef
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&section.ID,
		&section.Name,
		&section.PageID,
		&section.Title,
		&section.Content,
		&section.Type,
		&section.Images,
		&section.Links,
		&section.Order,
		&section.IsActive,
		&section.IsArabic,
		&section.CreatedAt,
		&section.UpdatedAt,
		&page.ID,
		&page.Name,
		&page.Slug,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Section{}, models.PageRef{}, ErrSectionNotFound
		}
		return models.Section{}, models.PageRef{}, err
	}
	return section, page, nil
}

// NextOrder returns the append position for a new section within one
// (page, locale) partition: max existing order plus one, or 0 when the
// partition is empty.
func (r *SectionRepository) NextOrder(ctx context.Context, pageID string, arabic bool) (int, error) {
	const query = `
		SELECT COALESCE(MAX("order") + 1, 0)
		FROM sections
		WHERE page_id = $1 AND COALESCE(is_arabic, FALSE) = $2
	`

	var next int
	if err := r.pool.QueryRow(ctx, query, pageID, arabic).Scan(&next); err != nil {
		return 0, err
	}
	return next, nil
}

func (r *SectionRepository) Create(ctx context.Context, section models.Section) error {
	const query = `
		INSERT INTO sections (
			id, name, page_id, title, content, type, images, links, "order", is_active, is_arabic, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW()
		)
	`

	_, err := r.pool.Exec(ctx, query,
		section.ID,
		section.Name,
		section.PageID,
		section.Title,
		section.Content,
		section.Type,
		section.Images,
		section.Links,
		section.Order,
		section.IsActive,
		section.IsArabic,
	)
	if isForeignKeyViolation(err) {
		return ErrPageReference
	}
	return err
}

func (r *SectionRepository) Update(ctx context.Context, section models.Section) error {
	const query = `
		UPDATE sections
		SET name = $2,
		    page_id = $3,
		    title = $4,
		    content = $5,
		    type = $6,
		    images = $7,
		    links = $8,
		    "order" = $9,
		    is_active = $10,
		    is_arabic = $11,
		    updated_at = NOW()
		WHERE id = $1
	`

	cmd, err := r.pool.Exec(ctx, query,
		section.ID,
		section.Name,
		section.PageID,
		section.Title,
		section.Content,
		section.Type,
		section.Images,
		section.Links,
		section.Order,
		section.IsActive,
		section.IsArabic,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrPageReference
		}
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrSectionNotFound
	}
	return nil
}

// UpdateOrder sets only the display position of one section.
func (r *SectionRepository) UpdateOrder(ctx context.Context, id string, order int) error {
	const query = `UPDATE sections SET "order" = $2, updated_at = NOW() WHERE id = $1`

	cmd, err := r.pool.Exec(ctx, query, id, order)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrSectionNotFound
	}
	return nil
}

func (r *SectionRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM sections WHERE id = $1`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrSectionNotFound
	}
	return nil
}
