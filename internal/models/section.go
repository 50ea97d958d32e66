package models

import "time"

type SectionType string

const (
	SectionTypeHero     SectionType = "hero"
	SectionTypeAbout    SectionType = "about"
	SectionTypeServices SectionType = "services"
	SectionTypeContact  SectionType = "contact"
	SectionTypeCustom   SectionType = "custom"
)

// ValidSectionType reports whether t is a member of the closed type set.
func ValidSectionType(t SectionType) bool {
	switch t {
	case SectionTypeHero, SectionTypeAbout, SectionTypeServices, SectionTypeContact, SectionTypeCustom:
		return true
	}
	return false
}

type SectionImage struct {
	URL string `json:"url"`
	Alt string `json:"alt"`
}

type SectionLink struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

// Section is a content block belonging to exactly one page. Sections of the
// same page are split by IsArabic into two locale partitions, each with its
// own contiguous ordering.
type Section struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	PageID    string         `json:"page"`
	Title     string         `json:"title"`
	Content   string         `json:"content"`
	Type      SectionType    `json:"type"`
	Images    []SectionImage `json:"images"`
	Links     []SectionLink  `json:"links"`
	Order     int            `json:"order"`
	IsActive  bool           `json:"isActive"`
	IsArabic  bool           `json:"isArabic"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}
