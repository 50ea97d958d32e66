package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emkaan/api/internal/ids"
	"emkaan/api/internal/models"
	"emkaan/api/internal/repository"
)

// fakeStore backs both store interfaces in memory so workflow semantics can
// be exercised without postgres.
type fakeStore struct {
	pages       map[string]models.Page
	sections    map[string]models.Section
	orderErrors map[string]error
	calls       int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		pages:       make(map[string]models.Page),
		sections:    make(map[string]models.Section),
		orderErrors: make(map[string]error),
	}
}

func (f *fakeStore) List(ctx context.Context) ([]models.Page, error) {
	f.calls++
	pages := make([]models.Page, 0, len(f.pages))
	for _, p := range f.pages {
		pages = append(pages, p)
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i].Order < pages[j].Order })
	return pages, nil
}

func (f *fakeStore) GetByID(ctx context.Context, id string) (models.Page, error) {
	f.calls++
	page, ok := f.pages[id]
	if !ok {
		return models.Page{}, repository.ErrPageNotFound
	}
	return page, nil
}

func (f *fakeStore) Create(ctx context.Context, page models.Page) error {
	f.calls++
	for _, existing := range f.pages {
		if existing.Slug == page.Slug {
			return repository.ErrDuplicateSlug
		}
	}
	f.pages[page.ID] = page
	return nil
}

func (f *fakeStore) Update(ctx context.Context, page models.Page) error {
	f.calls++
	if _, ok := f.pages[page.ID]; !ok {
		return repository.ErrPageNotFound
	}
	for id, existing := range f.pages {
		if id != page.ID && existing.Slug == page.Slug {
			return repository.ErrDuplicateSlug
		}
	}
	f.pages[page.ID] = page
	return nil
}

func (f *fakeStore) UpdateOrder(ctx context.Context, id string, order int) error {
	f.calls++
	if err, ok := f.orderErrors[id]; ok {
		return err
	}
	if page, ok := f.pages[id]; ok {
		page.Order = order
		f.pages[id] = page
		return nil
	}
	if section, ok := f.sections[id]; ok {
		section.Order = order
		f.sections[id] = section
		return nil
	}
	return repository.ErrPageNotFound
}

func (f *fakeStore) DeleteCascade(ctx context.Context, id string) (models.Page, int64, error) {
	f.calls++
	page, ok := f.pages[id]
	if !ok {
		// Nothing is removed: the section deletes roll back with the
		// transaction.
		return models.Page{}, 0, repository.ErrPageNotFound
	}

	var removed int64
	for sid, section := range f.sections {
		if section.PageID == id {
			delete(f.sections, sid)
			removed++
		}
	}
	delete(f.pages, id)
	return page, removed, nil
}

func (f *fakeStore) sectionsOf(pageID string, arabic *bool, activeOnly bool) []models.Section {
	var out []models.Section
	for _, s := range f.sections {
		if s.PageID != pageID {
			continue
		}
		if activeOnly && !s.IsActive {
			continue
		}
		if arabic != nil && s.IsArabic != *arabic {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

func (f *fakeStore) ListByPage(ctx context.Context, pageID string, arabic *bool) ([]models.Section, error) {
	f.calls++
	return f.sectionsOf(pageID, arabic, false), nil
}

func (f *fakeStore) ListActiveByPage(ctx context.Context, pageID string, arabic *bool) ([]models.Section, error) {
	f.calls++
	return f.sectionsOf(pageID, arabic, true), nil
}

func (f *fakeStore) GetSectionByID(ctx context.Context, id string) (models.Section, models.PageRef, error) {
	section, ok := f.sections[id]
	if !ok {
		return models.Section{}, models.PageRef{}, repository.ErrSectionNotFound
	}
	page := f.pages[section.PageID]
	return section, models.PageRef{ID: page.ID, Name: page.Name, Slug: page.Slug}, nil
}

// GetByID on the section interface collides with the page one, so the fake
// is split with a thin adapter.
type fakeSectionStore struct{ *fakeStore }

func (f fakeSectionStore) GetByID(ctx context.Context, id string) (models.Section, models.PageRef, error) {
	f.calls++
	return f.GetSectionByID(ctx, id)
}

func (f fakeSectionStore) NextOrder(ctx context.Context, pageID string, arabic bool) (int, error) {
	f.calls++
	next := 0
	for _, s := range f.sections {
		if s.PageID == pageID && s.IsArabic == arabic && s.Order >= next {
			next = s.Order + 1
		}
	}
	return next, nil
}

func (f fakeSectionStore) Create(ctx context.Context, section models.Section) error {
	f.calls++
	if _, ok := f.pages[section.PageID]; !ok {
		return repository.ErrPageReference
	}
	f.sections[section.ID] = section
	return nil
}

func (f fakeSectionStore) Update(ctx context.Context, section models.Section) error {
	f.calls++
	if _, ok := f.sections[section.ID]; !ok {
		return repository.ErrSectionNotFound
	}
	f.sections[section.ID] = section
	return nil
}

func (f fakeSectionStore) Delete(ctx context.Context, id string) error {
	f.calls++
	if _, ok := f.sections[id]; !ok {
		return repository.ErrSectionNotFound
	}
	delete(f.sections, id)
	return nil
}

func newTestService(store *fakeStore) *ContentService {
	return NewContentService(store, fakeSectionStore{store}, nil, 0, zerolog.Nop())
}

func seedPage(store *fakeStore, name string, order int) models.Page {
	page := models.Page{
		ID:       ids.New(),
		Name:     name,
		Slug:     name,
		Title:    name,
		IsActive: true,
		Order:    order,
	}
	store.pages[page.ID] = page
	return page
}

func seedSection(store *fakeStore, pageID string, order int, arabic bool, active bool) models.Section {
	section := models.Section{
		ID:       ids.New(),
		Name:     fmt.Sprintf("section-%d", order),
		PageID:   pageID,
		Title:    "t",
		Content:  "c",
		Type:     models.SectionTypeCustom,
		Order:    order,
		IsActive: active,
		IsArabic: arabic,
	}
	store.sections[section.ID] = section
	return section
}

func TestCreatePageDerivesSlug(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	page, err := svc.CreatePage(context.Background(), CreatePageInput{Name: "About Us!", Title: "About"})
	require.NoError(t, err)
	assert.Equal(t, "about-us-", page.Slug)
	assert.True(t, page.IsActive)
	assert.Equal(t, 0, page.Order)
}

func TestCreatePageDuplicateSlug(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	first, err := svc.CreatePage(context.Background(), CreatePageInput{Name: "About Us", Title: "About"})
	require.NoError(t, err)

	_, err = svc.CreatePage(context.Background(), CreatePageInput{Name: "about   us", Title: "Other"})
	assert.ErrorIs(t, err, repository.ErrDuplicateSlug)

	// The first page is unaffected.
	kept, err := svc.GetPage(context.Background(), first.ID)
	require.NoError(t, err)
	assert.Equal(t, "about-us", kept.Slug)
}

func TestCreatePageValidation(t *testing.T) {
	svc := newTestService(newFakeStore())

	_, err := svc.CreatePage(context.Background(), CreatePageInput{Name: "  ", Title: ""})
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Len(t, validation.Messages, 2)
}

func TestUpdatePageRecomputesSlug(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	page := seedPage(store, "old-name", 0)

	name := "New Page Name"
	updated, err := svc.UpdatePage(context.Background(), page.ID, UpdatePageInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "new-page-name", updated.Slug)
}

func TestUpdatePageRevalidates(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	page := seedPage(store, "page", 0)

	empty := ""
	_, err := svc.UpdatePage(context.Background(), page.ID, UpdatePageInput{Title: &empty})
	var validation *ValidationError
	assert.ErrorAs(t, err, &validation)
}

func TestDeletePageCascades(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	target := seedPage(store, "target", 0)
	other := seedPage(store, "other", 1)
	for i := 0; i < 3; i++ {
		seedSection(store, target.ID, i, false, true)
	}
	seedSection(store, other.ID, 0, false, true)

	page, count, err := svc.DeletePage(context.Background(), target.ID)
	require.NoError(t, err)
	assert.Equal(t, target.ID, page.ID)
	assert.EqualValues(t, 3, count)

	_, err = svc.GetPage(context.Background(), target.ID)
	assert.ErrorIs(t, err, repository.ErrPageNotFound)

	// The unrelated page keeps its section.
	remaining, err := svc.ListSections(context.Background(), other.ID, nil)
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
}

func TestDeletePageNotFoundLeavesSections(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	page := seedPage(store, "page", 0)
	seedSection(store, page.ID, 0, false, true)
	seedSection(store, page.ID, 1, false, true)

	_, _, err := svc.DeletePage(context.Background(), ids.New())
	assert.ErrorIs(t, err, repository.ErrPageNotFound)
	assert.Len(t, store.sections, 2)
}

func TestDeletePageInvalidID(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	_, _, err := svc.DeletePage(context.Background(), "not-a-valid-id")
	assert.ErrorIs(t, err, ErrInvalidID)
	assert.Zero(t, store.calls, "malformed id must fail before any store access")
}

func TestCreateSectionAppendsPerPartition(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	page := seedPage(store, "page", 0)
	for i := 0; i < 3; i++ {
		seedSection(store, page.ID, i, false, true)
	}

	created, err := svc.CreateSection(context.Background(), CreateSectionInput{
		Name: "next", PageID: page.ID, Title: "t", Content: "c", Type: models.SectionTypeHero,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, created.Order)

	// The Arabic partition of the same page is independent and starts at 0.
	arabicFirst, err := svc.CreateSection(context.Background(), CreateSectionInput{
		Name: "ar", PageID: page.ID, Title: "t", Content: "c", Type: models.SectionTypeHero, IsArabic: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, arabicFirst.Order)
}

func TestCreateSectionExplicitOrder(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	page := seedPage(store, "page", 0)
	seedSection(store, page.ID, 0, false, true)

	explicit := 42
	created, err := svc.CreateSection(context.Background(), CreateSectionInput{
		Name: "pinned", PageID: page.ID, Title: "t", Content: "c",
		Type: models.SectionTypeCustom, Order: &explicit,
	})
	require.NoError(t, err)
	assert.Equal(t, 42, created.Order)
}

func TestCreateSectionUnknownPage(t *testing.T) {
	svc := newTestService(newFakeStore())

	_, err := svc.CreateSection(context.Background(), CreateSectionInput{
		Name: "s", PageID: ids.New(), Title: "t", Content: "c", Type: models.SectionTypeHero,
	})
	assert.ErrorIs(t, err, repository.ErrPageReference)
}

func TestCreateSectionValidation(t *testing.T) {
	svc := newTestService(newFakeStore())

	_, err := svc.CreateSection(context.Background(), CreateSectionInput{
		Name: "s", PageID: ids.New(), Title: "t", Content: "c", Type: "banner",
	})
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, validation.Messages[0], "type")
}

func TestListPagesLocaleFilter(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	page := seedPage(store, "page", 0)
	seedSection(store, page.ID, 1, false, true)
	seedSection(store, page.ID, 0, false, true)
	seedSection(store, page.ID, 0, true, true)
	seedSection(store, page.ID, 2, false, false) // inactive, never attached

	english, err := svc.ListPages(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, english, 1)
	require.Len(t, english[0].Sections, 2)
	assert.Equal(t, 0, english[0].Sections[0].Order)
	assert.Equal(t, 1, english[0].Sections[1].Order)

	arabicPages, err := svc.ListPages(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, arabicPages[0].Sections, 1)
	assert.True(t, arabicPages[0].Sections[0].IsArabic)
}

func TestGetPageIgnoresLocale(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	page := seedPage(store, "page", 0)
	seedSection(store, page.ID, 0, false, true)
	seedSection(store, page.ID, 0, true, true)

	got, err := svc.GetPage(context.Background(), page.ID)
	require.NoError(t, err)
	assert.Len(t, got.Sections, 2, "single page read returns both locale partitions")
}

func TestReorderIndependentFailures(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	a := seedPage(store, "a", 0)
	b := seedPage(store, "b", 1)
	broken := ids.New()
	store.orderErrors[broken] = errors.New("write failed")

	results := svc.ReorderPages(context.Background(), []OrderAssignment{
		{ID: a.ID, Order: 5},
		{ID: broken, Order: 9},
		{ID: b.ID, Order: 1},
	})

	require.Len(t, results, 3)
	assert.True(t, results[0].Applied)
	assert.False(t, results[1].Applied)
	assert.NotEmpty(t, results[1].Error)
	assert.True(t, results[2].Applied, "a failed element must not block later ones")

	assert.Equal(t, 5, store.pages[a.ID].Order)
	assert.Equal(t, 1, store.pages[b.ID].Order)
}

func TestReorderSections(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	page := seedPage(store, "page", 0)
	s1 := seedSection(store, page.ID, 0, false, true)
	s2 := seedSection(store, page.ID, 1, false, true)

	results := svc.ReorderSections(context.Background(), []OrderAssignment{
		{ID: s1.ID, Order: 1},
		{ID: s2.ID, Order: 0},
	})
	require.Len(t, results, 2)
	assert.Equal(t, 1, store.sections[s1.ID].Order)
	assert.Equal(t, 0, store.sections[s2.ID].Order)
}

func TestUpdateSectionPartial(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	page := seedPage(store, "page", 0)
	section := seedSection(store, page.ID, 0, false, true)

	title := "Updated Title"
	updated, err := svc.UpdateSection(context.Background(), section.ID, UpdateSectionInput{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Updated Title", updated.Title)
	assert.Equal(t, section.Content, updated.Content, "untouched fields survive a partial update")
}

func TestDeleteSection(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	page := seedPage(store, "page", 0)
	section := seedSection(store, page.ID, 0, false, true)

	require.NoError(t, svc.DeleteSection(context.Background(), section.ID))
	assert.ErrorIs(t, svc.DeleteSection(context.Background(), section.ID), repository.ErrSectionNotFound)
}
