package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"emkaan/api/internal/models"
	"emkaan/api/internal/service"
)

func (h HandlerSet) ListSections(c *gin.Context) {
	pageID := c.Query("pageId")
	if pageID == "" {
		respondError(c, http.StatusBadRequest, "pageId is required")
		return
	}

	// The locale filter only applies when the caller sends the flag; an
	// absent flag returns both partitions.
	var arabic *bool
	if raw := c.Query("isArabic"); raw != "" {
		if parsed, err := strconv.ParseBool(raw); err == nil {
			arabic = &parsed
		}
	}

	sections, err := h.content.ListSections(c.Request.Context(), pageID, arabic)
	if err != nil {
		respondFromError(c, h.log, err)
		return
	}
	respondData(c, http.StatusOK, sections)
}

type sectionWithPage struct {
	models.Section
	Page models.PageRef `json:"page"`
}

func (h HandlerSet) GetSection(c *gin.Context) {
	section, page, err := h.content.GetSection(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondFromError(c, h.log, err)
		return
	}
	respondData(c, http.StatusOK, sectionWithPage{Section: section, Page: page})
}

type createSectionRequest struct {
	Name     string                 `json:"name" binding:"required"`
	Page     string                 `json:"page" binding:"required"`
	Title    string                 `json:"title" binding:"required"`
	Content  string                 `json:"content" binding:"required"`
	Type     models.SectionType     `json:"type" binding:"required"`
	Images   []models.SectionImage  `json:"images"`
	Links    []models.SectionLink   `json:"links"`
	Order    *int                   `json:"order"`
	IsActive *bool                  `json:"isActive"`
	IsArabic bool                   `json:"isArabic"`
}

func (h HandlerSet) CreateSection(c *gin.Context) {
	var req createSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	section, err := h.content.CreateSection(c.Request.Context(), service.CreateSectionInput{
		Name:     req.Name,
		PageID:   req.Page,
		Title:    req.Title,
		Content:  req.Content,
		Type:     req.Type,
		Images:   req.Images,
		Links:    req.Links,
		Order:    req.Order,
		IsActive: req.IsActive,
		IsArabic: req.IsArabic,
	})
	if err != nil {
		respondFromError(c, h.log, err)
		return
	}
	respondData(c, http.StatusCreated, section)
}

type updateSectionRequest struct {
	Name     *string                 `json:"name"`
	Page     *string                 `json:"page"`
	Title    *string                 `json:"title"`
	Content  *string                 `json:"content"`
	Type     *models.SectionType     `json:"type"`
	Images   *[]models.SectionImage  `json:"images"`
	Links    *[]models.SectionLink   `json:"links"`
	Order    *int                    `json:"order"`
	IsActive *bool                   `json:"isActive"`
	IsArabic *bool                   `json:"isArabic"`
}

func (h HandlerSet) UpdateSection(c *gin.Context) {
	var req updateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	section, err := h.content.UpdateSection(c.Request.Context(), c.Param("id"), service.UpdateSectionInput{
		Name:     req.Name,
		PageID:   req.Page,
		Title:    req.Title,
		Content:  req.Content,
		Type:     req.Type,
		Images:   req.Images,
		Links:    req.Links,
		Order:    req.Order,
		IsActive: req.IsActive,
		IsArabic: req.IsArabic,
	})
	if err != nil {
		respondFromError(c, h.log, err)
		return
	}
	respondData(c, http.StatusOK, section)
}

func (h HandlerSet) DeleteSection(c *gin.Context) {
	if err := h.content.DeleteSection(c.Request.Context(), c.Param("id")); err != nil {
		respondFromError(c, h.log, err)
		return
	}
	respondMessage(c, http.StatusOK, "Section deleted successfully", nil)
}

type reorderSectionsRequest struct {
	Sections []service.OrderAssignment `json:"sections" binding:"required,dive"`
}

func (h HandlerSet) ReorderSections(c *gin.Context) {
	var req reorderSectionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	results := h.content.ReorderSections(c.Request.Context(), req.Sections)
	respondMessage(c, http.StatusOK, "Section order updated successfully", results)
}
