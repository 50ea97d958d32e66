package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"emkaan/api/internal/service"
)

// parseLocale interprets the isArabic query flag: true selects the Arabic
// partition, anything else (including absence) the non-Arabic one.
func parseLocale(c *gin.Context) bool {
	arabic, err := strconv.ParseBool(c.Query("isArabic"))
	return err == nil && arabic
}

func (h HandlerSet) ListPages(c *gin.Context) {
	pages, err := h.content.ListPages(c.Request.Context(), parseLocale(c))
	if err != nil {
		respondFromError(c, h.log, err)
		return
	}
	respondData(c, http.StatusOK, pages)
}

func (h HandlerSet) GetPage(c *gin.Context) {
	page, err := h.content.GetPage(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondFromError(c, h.log, err)
		return
	}
	respondData(c, http.StatusOK, page)
}

type createPageRequest struct {
	Name            string `json:"name" binding:"required"`
	Title           string `json:"title" binding:"required"`
	Description     string `json:"description"`
	MetaTitle       string `json:"metaTitle"`
	MetaDescription string `json:"metaDescription"`
	IsActive        *bool  `json:"isActive"`
	Order           *int   `json:"order"`
}

func (h HandlerSet) CreatePage(c *gin.Context) {
	var req createPageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	page, err := h.content.CreatePage(c.Request.Context(), service.CreatePageInput{
		Name:            req.Name,
		Title:           req.Title,
		Description:     req.Description,
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
		IsActive:        req.IsActive,
		Order:           req.Order,
	})
	if err != nil {
		respondFromError(c, h.log, err)
		return
	}
	respondData(c, http.StatusCreated, page)
}

type updatePageRequest struct {
	Name            *string `json:"name"`
	Title           *string `json:"title"`
	Description     *string `json:"description"`
	MetaTitle       *string `json:"metaTitle"`
	MetaDescription *string `json:"metaDescription"`
	IsActive        *bool   `json:"isActive"`
	Order           *int    `json:"order"`
}

func (h HandlerSet) UpdatePage(c *gin.Context) {
	var req updatePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	page, err := h.content.UpdatePage(c.Request.Context(), c.Param("id"), service.UpdatePageInput{
		Name:            req.Name,
		Title:           req.Title,
		Description:     req.Description,
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
		IsActive:        req.IsActive,
		Order:           req.Order,
	})
	if err != nil {
		respondFromError(c, h.log, err)
		return
	}
	respondData(c, http.StatusOK, page)
}

func (h HandlerSet) DeletePage(c *gin.Context) {
	page, sectionsDeleted, err := h.content.DeletePage(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondFromError(c, h.log, err)
		return
	}

	respondMessage(c, http.StatusOK, "Page and associated sections deleted successfully", gin.H{
		"page":            page,
		"sectionsDeleted": sectionsDeleted,
	})
}

type reorderPagesRequest struct {
	Pages []service.OrderAssignment `json:"pages" binding:"required,dive"`
}

func (h HandlerSet) ReorderPages(c *gin.Context) {
	var req reorderPagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	results := h.content.ReorderPages(c.Request.Context(), req.Pages)
	respondMessage(c, http.StatusOK, "Page order updated successfully", results)
}
