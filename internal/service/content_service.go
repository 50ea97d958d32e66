package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"emkaan/api/internal/ids"
	"emkaan/api/internal/models"
	"emkaan/api/internal/slug"
)

// ErrInvalidID rejects malformed identifiers before any store access.
var ErrInvalidID = errors.New("invalid id")

// ValidationError carries field-level messages for a 400 response.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// PageStore is the page persistence surface the content service drives.
type PageStore interface {
	List(ctx context.Context) ([]models.Page, error)
	GetByID(ctx context.Context, id string) (models.Page, error)
	Create(ctx context.Context, page models.Page) error
	Update(ctx context.Context, page models.Page) error
	UpdateOrder(ctx context.Context, id string, order int) error
	DeleteCascade(ctx context.Context, id string) (models.Page, int64, error)
}

// SectionStore is the section persistence surface the content service drives.
type SectionStore interface {
	ListByPage(ctx context.Context, pageID string, arabic *bool) ([]models.Section, error)
	ListActiveByPage(ctx context.Context, pageID string, arabic *bool) ([]models.Section, error)
	GetByID(ctx context.Context, id string) (models.Section, models.PageRef, error)
	NextOrder(ctx context.Context, pageID string, arabic bool) (int, error)
	Create(ctx context.Context, section models.Section) error
	Update(ctx context.Context, section models.Section) error
	UpdateOrder(ctx context.Context, id string, order int) error
	Delete(ctx context.Context, id string) error
}

// PageWithSections is a page composed with the sections attached to a read.
type PageWithSections struct {
	models.Page
	Sections []models.Section `json:"sections"`
}

// ContentService implements the content operations: composed page reads,
// page/section CRUD, the cascade-delete workflow and the reorder workflow.
// The redis client is optional; when present the composed page list is
// cached per locale and invalidated on every mutation.
type ContentService struct {
	pages    PageStore
	sections SectionStore
	cache    *redis.Client
	cacheTTL time.Duration
	log      zerolog.Logger
}

func NewContentService(pages PageStore, sections SectionStore, cache *redis.Client, cacheTTL time.Duration, log zerolog.Logger) *ContentService {
	return &ContentService{
		pages:    pages,
		sections: sections,
		cache:    cache,
		cacheTTL: cacheTTL,
		log:      log,
	}
}

func pageListCacheKey(arabic bool) string {
	if arabic {
		return "pages:list:ar"
	}
	return "pages:list:en"
}

// ListPages returns all pages in display order, each carrying its active
// sections for the requested locale sorted by position.
func (s *ContentService) ListPages(ctx context.Context, arabic bool) ([]PageWithSections, error) {
	key := pageListCacheKey(arabic)
	if s.cache != nil {
		raw, err := s.cache.Get(ctx, key).Bytes()
		if err == nil {
			var cached []PageWithSections
			if err := json.Unmarshal(raw, &cached); err == nil {
				return cached, nil
			}
			s.log.Warn().Str("key", key).Msg("discarding undecodable page list cache entry")
		} else if !errors.Is(err, redis.Nil) {
			s.log.Warn().Err(err).Str("key", key).Msg("page list cache read failed")
		}
	}

	pages, err := s.pages.List(ctx)
	if err != nil {
		return nil, err
	}

	locale := arabic
	composed := make([]PageWithSections, 0, len(pages))
	for _, page := range pages {
		sections, err := s.sections.ListActiveByPage(ctx, page.ID, &locale)
		if err != nil {
			return nil, err
		}
		composed = append(composed, PageWithSections{Page: page, Sections: sections})
	}

	if s.cache != nil {
		if raw, err := json.Marshal(composed); err == nil {
			if err := s.cache.Set(ctx, key, raw, s.cacheTTL).Err(); err != nil {
				s.log.Warn().Err(err).Str("key", key).Msg("page list cache write failed")
			}
		}
	}

	return composed, nil
}

// GetPage returns one page with all of its active sections. Unlike the list,
// the single read is not locale filtered; existing consumers rely on seeing
// both partitions at once.
func (s *ContentService) GetPage(ctx context.Context, id string) (PageWithSections, error) {
	if !ids.IsValid(id) {
		return PageWithSections{}, ErrInvalidID
	}

	page, err := s.pages.GetByID(ctx, id)
	if err != nil {
		return PageWithSections{}, err
	}

	sections, err := s.sections.ListActiveByPage(ctx, page.ID, nil)
	if err != nil {
		return PageWithSections{}, err
	}

	return PageWithSections{Page: page, Sections: sections}, nil
}

type CreatePageInput struct {
	Name            string
	Title           string
	Description     string
	MetaTitle       string
	MetaDescription string
	IsActive        *bool
	Order           *int
}

func (s *ContentService) CreatePage(ctx context.Context, input CreatePageInput) (models.Page, error) {
	var messages []string
	if strings.TrimSpace(input.Name) == "" {
		messages = append(messages, "name is required")
	}
	if strings.TrimSpace(input.Title) == "" {
		messages = append(messages, "title is required")
	}
	if len(messages) > 0 {
		return models.Page{}, &ValidationError{Messages: messages}
	}

	page := models.Page{
		ID:              ids.New(),
		Name:            strings.TrimSpace(input.Name),
		Title:           input.Title,
		Description:     input.Description,
		MetaTitle:       input.MetaTitle,
		MetaDescription: input.MetaDescription,
		IsActive:        true,
	}
	// The slug always derives from the name; caller-supplied slugs are
	// ignored.
	page.Slug = slug.Derive(page.Name)
	if input.IsActive != nil {
		page.IsActive = *input.IsActive
	}
	if input.Order != nil {
		page.Order = *input.Order
	}

	if err := s.pages.Create(ctx, page); err != nil {
		return models.Page{}, err
	}

	s.invalidatePageCache(ctx)
	return page, nil
}

type UpdatePageInput struct {
	Name            *string
	Title           *string
	Description     *string
	MetaTitle       *string
	MetaDescription *string
	IsActive        *bool
	Order           *int
}

// UpdatePage applies a partial update and re-runs schema validation against
// the patched record, re-deriving the slug from the effective name.
func (s *ContentService) UpdatePage(ctx context.Context, id string, input UpdatePageInput) (models.Page, error) {
	if !ids.IsValid(id) {
		return models.Page{}, ErrInvalidID
	}

	page, err := s.pages.GetByID(ctx, id)
	if err != nil {
		return models.Page{}, err
	}

	if input.Name != nil {
		page.Name = strings.TrimSpace(*input.Name)
	}
	if input.Title != nil {
		page.Title = *input.Title
	}
	if input.Description != nil {
		page.Description = *input.Description
	}
	if input.MetaTitle != nil {
		page.MetaTitle = *input.MetaTitle
	}
	if input.MetaDescription != nil {
		page.MetaDescription = *input.MetaDescription
	}
	if input.IsActive != nil {
		page.IsActive = *input.IsActive
	}
	if input.Order != nil {
		page.Order = *input.Order
	}

	var messages []string
	if page.Name == "" {
		messages = append(messages, "name is required")
	}
	if strings.TrimSpace(page.Title) == "" {
		messages = append(messages, "title is required")
	}
	if len(messages) > 0 {
		return models.Page{}, &ValidationError{Messages: messages}
	}

	page.Slug = slug.Derive(page.Name)

	if err := s.pages.Update(ctx, page); err != nil {
		return models.Page{}, err
	}

	s.invalidatePageCache(ctx)
	return page, nil
}

// DeletePage runs the cascade-delete workflow and reports the removed page
// together with how many of its sections went with it.
func (s *ContentService) DeletePage(ctx context.Context, id string) (models.Page, int64, error) {
	if !ids.IsValid(id) {
		return models.Page{}, 0, ErrInvalidID
	}

	page, sectionsDeleted, err := s.pages.DeleteCascade(ctx, id)
	if err != nil {
		return models.Page{}, 0, err
	}

	s.invalidatePageCache(ctx)
	return page, sectionsDeleted, nil
}

// OrderAssignment is one element of a reorder batch.
type OrderAssignment struct {
	ID    string `json:"id" binding:"required"`
	Order int    `json:"order"`
}

// OrderResult reports the outcome of one assignment. Assignments are
// independent: a failed element never blocks or rolls back the others.
type OrderResult struct {
	ID      string `json:"id"`
	Order   int    `json:"order"`
	Applied bool   `json:"applied"`
	Error   string `json:"error,omitempty"`
}

func (s *ContentService) applyReorder(ctx context.Context, batch []OrderAssignment, update func(context.Context, string, int) error) []OrderResult {
	results := make([]OrderResult, 0, len(batch))
	for _, item := range batch {
		result := OrderResult{ID: item.ID, Order: item.Order}
		if err := update(ctx, item.ID, item.Order); err != nil {
			result.Error = err.Error()
		} else {
			result.Applied = true
		}
		results = append(results, result)
	}
	return results
}

// ReorderPages applies each (id, order) assignment in caller order. Each
// update succeeds or fails on its own; partial application is the documented
// behavior, not a defect.
func (s *ContentService) ReorderPages(ctx context.Context, batch []OrderAssignment) []OrderResult {
	results := s.applyReorder(ctx, batch, s.pages.UpdateOrder)
	s.invalidatePageCache(ctx)
	return results
}

// ReorderSections is the section counterpart of ReorderPages.
func (s *ContentService) ReorderSections(ctx context.Context, batch []OrderAssignment) []OrderResult {
	results := s.applyReorder(ctx, batch, s.sections.UpdateOrder)
	s.invalidatePageCache(ctx)
	return results
}

// ListSections returns the sections of one page, optionally narrowed to one
// locale partition when the caller supplies the flag.
func (s *ContentService) ListSections(ctx context.Context, pageID string, arabic *bool) ([]models.Section, error) {
	if !ids.IsValid(pageID) {
		return nil, ErrInvalidID
	}
	return s.sections.ListByPage(ctx, pageID, arabic)
}

func (s *ContentService) GetSection(ctx context.Context, id string) (models.Section, models.PageRef, error) {
	if !ids.IsValid(id) {
		return models.Section{}, models.PageRef{}, ErrInvalidID
	}
	return s.sections.GetByID(ctx, id)
}

type CreateSectionInput struct {
	Name     string
	PageID   string
	Title    string
	Content  string
	Type     models.SectionType
	Images   []models.SectionImage
	Links    []models.SectionLink
	Order    *int
	IsActive *bool
	IsArabic bool
}

// CreateSection appends the new section to its (page, locale) partition:
// one past the highest existing position, or 0 in an empty partition. An
// explicitly supplied order is honored instead.
func (s *ContentService) CreateSection(ctx context.Context, input CreateSectionInput) (models.Section, error) {
	var messages []string
	if strings.TrimSpace(input.Name) == "" {
		messages = append(messages, "name is required")
	}
	if !ids.IsValid(input.PageID) {
		messages = append(messages, "page is required")
	}
	if strings.TrimSpace(input.Title) == "" {
		messages = append(messages, "title is required")
	}
	if strings.TrimSpace(input.Content) == "" {
		messages = append(messages, "content is required")
	}
	if !models.ValidSectionType(input.Type) {
		messages = append(messages, "type must be one of hero, about, services, contact, custom")
	}
	if len(messages) > 0 {
		return models.Section{}, &ValidationError{Messages: messages}
	}

	order := 0
	if input.Order != nil {
		order = *input.Order
	} else {
		next, err := s.sections.NextOrder(ctx, input.PageID, input.IsArabic)
		if err != nil {
			return models.Section{}, err
		}
		order = next
	}

	section := models.Section{
		ID:       ids.New(),
		Name:     strings.TrimSpace(input.Name),
		PageID:   input.PageID,
		Title:    input.Title,
		Content:  input.Content,
		Type:     input.Type,
		Images:   input.Images,
		Links:    input.Links,
		Order:    order,
		IsActive: true,
		IsArabic: input.IsArabic,
	}
	if input.IsActive != nil {
		section.IsActive = *input.IsActive
	}
	if section.Images == nil {
		section.Images = []models.SectionImage{}
	}
	if section.Links == nil {
		section.Links = []models.SectionLink{}
	}

	if err := s.sections.Create(ctx, section); err != nil {
		return models.Section{}, err
	}

	s.invalidatePageCache(ctx)
	return section, nil
}

type UpdateSectionInput struct {
	Name     *string
	PageID   *string
	Title    *string
	Content  *string
	Type     *models.SectionType
	Images   *[]models.SectionImage
	Links    *[]models.SectionLink
	Order    *int
	IsActive *bool
	IsArabic *bool
}

// UpdateSection applies a partial update and re-runs schema validation
// against the patched record.
func (s *ContentService) UpdateSection(ctx context.Context, id string, input UpdateSectionInput) (models.Section, error) {
	if !ids.IsValid(id) {
		return models.Section{}, ErrInvalidID
	}

	section, _, err := s.sections.GetByID(ctx, id)
	if err != nil {
		return models.Section{}, err
	}

	if input.Name != nil {
		section.Name = strings.TrimSpace(*input.Name)
	}
	if input.PageID != nil {
		section.PageID = *input.PageID
	}
	if input.Title != nil {
		section.Title = *input.Title
	}
	if input.Content != nil {
		section.Content = *input.Content
	}
	if input.Type != nil {
		section.Type = *input.Type
	}
	if input.Images != nil {
		section.Images = *input.Images
	}
	if input.Links != nil {
		section.Links = *input.Links
	}
	if input.Order != nil {
		section.Order = *input.Order
	}
	if input.IsActive != nil {
		section.IsActive = *input.IsActive
	}
	if input.IsArabic != nil {
		section.IsArabic = *input.IsArabic
	}

	var messages []string
	if section.Name == "" {
		messages = append(messages, "name is required")
	}
	if !ids.IsValid(section.PageID) {
		messages = append(messages, "page is required")
	}
	if strings.TrimSpace(section.Title) == "" {
		messages = append(messages, "title is required")
	}
	if strings.TrimSpace(section.Content) == "" {
		messages = append(messages, "content is required")
	}
	if !models.ValidSectionType(section.Type) {
		messages = append(messages, "type must be one of hero, about, services, contact, custom")
	}
	if len(messages) > 0 {
		return models.Section{}, &ValidationError{Messages: messages}
	}

	if err := s.sections.Update(ctx, section); err != nil {
		return models.Section{}, err
	}

	s.invalidatePageCache(ctx)
	return section, nil
}

func (s *ContentService) DeleteSection(ctx context.Context, id string) error {
	if !ids.IsValid(id) {
		return ErrInvalidID
	}

	if err := s.sections.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidatePageCache(ctx)
	return nil
}

// WarmPageCache recomposes and caches the page list for both locales. The
// cron scheduler calls this so anonymous readers rarely pay composition cost.
func (s *ContentService) WarmPageCache(ctx context.Context) error {
	s.invalidatePageCache(ctx)
	for _, arabic := range []bool{false, true} {
		if _, err := s.ListPages(ctx, arabic); err != nil {
			return err
		}
	}
	return nil
}

func (s *ContentService) invalidatePageCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, pageListCacheKey(false), pageListCacheKey(true)).Err(); err != nil {
		s.log.Warn().Err(err).Msg("page list cache invalidation failed")
	}
}
