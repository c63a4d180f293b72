package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/survey-api/internal/domain/entity"
	"github.com/yourusername/survey-api/internal/handler/dto"
	"github.com/yourusername/survey-api/internal/handler/helper"
	"github.com/yourusername/survey-api/internal/service"
)

// CatalogHandler serves programmes, classes and people
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates the handler
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

func (h *CatalogHandler) CreateProgramme(c *gin.Context) {
	var req dto.CreateProgrammeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}
	p, err := h.catalogService.CreateProgramme(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		handleError(c, "CatalogHandler", err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *CatalogHandler) GetProgramme(c *gin.Context) {
	p, err := h.catalogService.GetProgramme(c.Request.Context(), c.MustGet("programmeID").(uint))
	if err != nil {
		handleError(c, "CatalogHandler", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *CatalogHandler) ListProgrammes(c *gin.Context) {
	page, pageSize := helper.PageParams(c)
	items, total, err := h.catalogService.ListProgrammes(c.Request.Context(), page, pageSize)
	if err != nil {
		handleError(c, "CatalogHandler", err)
		return
	}
	if items == nil {
		items = []entity.Programme{}
	}
	c.JSON(http.StatusOK, &dto.PaginatedResponse{Items: items, Total: total, Page: page, PerPage: pageSize})
}

func (h *CatalogHandler) DeleteProgramme(c *gin.Context) {
	if err := h.catalogService.DeleteProgramme(c.Request.Context(), c.MustGet("programmeID").(uint)); err != nil {
		handleError(c, "CatalogHandler", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CatalogHandler) CreateClass(c *gin.Context) {
	var req dto.CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}
	class, err := h.catalogService.CreateClass(c.Request.Context(), req.Name, req.ProgrammeID)
	if err != nil {
		handleError(c, "CatalogHandler", err)
		return
	}
	c.JSON(http.StatusCreated, class)
}

// GetClass returns the class with its active members
func (h *CatalogHandler) GetClass(c *gin.Context) {
	id := c.MustGet("classID").(uint)
	class, err := h.catalogService.GetClass(c.Request.Context(), id)
	if err != nil {
		handleError(c, "CatalogHandler", err)
		return
	}
	members, err := h.catalogService.ListMembers(c.Request.Context(), id)
	if err != nil {
		handleError(c, "CatalogHandler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"class": class, "members": dto.NewPersonListResponse(members)})
}

// ListClasses handles GET /api/classes?programme_id=&page=&page_size=
func (h *CatalogHandler) ListClasses(c *gin.Context) {
	programmeID, err := helper.OptionalUintQuery(c, "programme_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid programme_id"})
		return
	}
	page, pageSize := helper.PageParams(c)
	items, total, err := h.catalogService.ListClasses(c.Request.Context(), programmeID, page, pageSize)
	if err != nil {
		handleError(c, "CatalogHandler", err)
		return
	}
	if items == nil {
		items = []entity.Class{}
	}
	c.JSON(http.StatusOK, &dto.PaginatedResponse{Items: items, Total: total, Page: page, PerPage: pageSize})
}

func (h *CatalogHandler) DeleteClass(c *gin.Context) {
	if err := h.catalogService.DeleteClass(c.Request.Context(), c.MustGet("classID").(uint)); err != nil {
		handleError(c, "CatalogHandler", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Enrol handles POST /api/classes/:id/people/:personId
func (h *CatalogHandler) Enrol(c *gin.Context) {
	link, err := h.catalogService.Enrol(c.Request.Context(), c.MustGet("classID").(uint), c.MustGet("personID").(uint))
	if err != nil {
		handleError(c, "CatalogHandler", err)
		return
	}
	c.JSON(http.StatusOK, link)
}

// Unenrol handles DELETE /api/classes/:id/people/:personId
func (h *CatalogHandler) Unenrol(c *gin.Context) {
	if err := h.catalogService.Unenrol(c.Request.Context(), c.MustGet("classID").(uint), c.MustGet("personID").(uint)); err != nil {
		handleError(c, "CatalogHandler", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CatalogHandler) CreatePerson(c *gin.Context) {
	var req dto.CreatePersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}
	p, err := h.catalogService.CreatePerson(c.Request.Context(), req.Name, req.Email, req.Role, req.Password)
	if err != nil {
		handleError(c, "CatalogHandler", err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewPersonResponse(p))
}
