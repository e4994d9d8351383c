package conditions

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

// RegisterRoutes attaches condition routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/screening/conditions", h.create)
	rg.GET("/screening/conditions", h.list)
	rg.GET("/screening/conditions/:id", h.get)
	rg.PUT("/screening/conditions/:id", h.update)
	rg.DELETE("/screening/conditions/:id", h.remove)
}

type conditionRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Criteria    Criteria `json:"criteria"`
	Status      string   `json:"status"`
}

func (h *Handler) create(c *gin.Context) {
	var req conditionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	cond, err := h.Svc.Create(c.Request.Context(), CreateInput{
		Name:        req.Name,
		Description: req.Description,
		Criteria:    req.Criteria,
		Status:      req.Status,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create condition", nil)
		}
		return
	}

	c.Set("conditionId", cond.ID)
	respond.JSON(c, http.StatusCreated, toResponse(cond))
}

func (h *Handler) get(c *gin.Context) {
	cond, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "condition not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch condition", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, toResponse(cond))
}

func (h *Handler) update(c *gin.Context) {
	var req conditionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	cond, err := h.Svc.Update(c.Request.Context(), c.Param("id"), CreateInput{
		Name:        req.Name,
		Description: req.Description,
		Criteria:    req.Criteria,
		Status:      req.Status,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "condition not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update condition", nil)
		}
		return
	}

	c.Set("conditionId", cond.ID)
	respond.JSON(c, http.StatusOK, toResponse(cond))
}

func (h *Handler) remove(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "condition not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete condition", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"status": "deleted"})
}

func (h *Handler) list(c *gin.Context) {
	f := Filter{
		Status:         c.Query("status"),
		IncludeDeleted: c.Query("include_deleted") == "true",
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
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list conditions", nil)
		}
		return
	}

	resp := make([]ConditionResponse, 0, len(items))
	for _, cond := range items {
		resp = append(resp, toResponse(cond))
	}
	respond.JSON(c, http.StatusOK, gin.H{"total": total, "items": resp})
}
