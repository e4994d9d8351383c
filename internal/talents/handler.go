package talents

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"screening-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches talent routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/talents/from-screening", h.promote)
	rg.GET("/talents", h.list)
	rg.GET("/talents/graph", h.graph)
	rg.GET("/talents/:id", h.get)
}

type promoteRequest struct {
	ScreeningID string    `json:"screeningId"`
	SkillNames  *[]string `json:"skillNames"`
}

func (h *Handler) promote(c *gin.Context) {
	var req promoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.ScreeningID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "screeningId is required", nil)
		return
	}

	// A present-but-empty skillNames is an explicit "no skills" override.
	var override []string
	if req.SkillNames != nil {
		override = *req.SkillNames
		if override == nil {
			override = []string{}
		}
	}

	talent, skills, err := h.Svc.Promote(c.Request.Context(), req.ScreeningID, override)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "screening resume not found", nil)
		case errors.Is(err, ErrAlreadyPromoted):
			respond.Error(c, http.StatusConflict, "conflict", "resume already promoted", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to promote resume", nil)
		}
		return
	}

	c.Set("talentId", talent.ID)
	c.Set("screeningId", req.ScreeningID)
	respond.JSON(c, http.StatusCreated, toResponse(talent, skills))
}

func (h *Handler) get(c *gin.Context) {
	talent, skills, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "talent not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch talent", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, toResponse(talent, skills))
}

func (h *Handler) list(c *gin.Context) {
	f := Filter{
		Name:   c.Query("name"),
		School: c.Query("school"),
		Major:  c.Query("major"),
		Degree: c.Query("degree"),
	}
	if v := c.Query("grad_year_min"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			f.GradYearMin = &parsed
		}
	}
	if v := c.Query("grad_year_max"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			f.GradYearMax = &parsed
		}
	}
	if v := c.Query("page"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			f.Page = parsed
		}
	}
	if v := c.Query("page_size"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			f.PageSize = parsed
		}
	}

	items, total, err := h.Svc.List(c.Request.Context(), f)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list talents", nil)
		return
	}

	resp := make([]TalentResponse, 0, len(items))
	for _, talent := range items {
		resp = append(resp, toResponse(talent, nil))
	}
	respond.JSON(c, http.StatusOK, gin.H{"total": total, "items": resp})
}

func (h *Handler) graph(c *gin.Context) {
	data, err := h.Svc.Graph(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to build graph", nil)
		return
	}
	respond.JSON(c, http.StatusOK, toGraphResponse(data))
}
