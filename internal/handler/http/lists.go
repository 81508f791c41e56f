package httpx

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"example.com/taskdesk/internal/domain"
)

func (h *Handler) lists(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Lists(currentUser(c).ID))
}

func (h *Handler) createList(c *gin.Context) {
	var req domain.ListInput
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "Invalid request data")
		return
	}
	in, err := req.Normalize()
	if err != nil {
		writeError(c, http.StatusBadRequest, "Name is required")
		return
	}
	list := h.store.CreateList(currentUser(c).ID, domain.List{
		Name:        in.Name,
		Color:       in.Color,
		Description: in.Description,
	})
	c.JSON(http.StatusOK, list)
}

func (h *Handler) updateList(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req struct {
		Name        *string `json:"name"`
		Color       *string `json:"color"`
		Description *string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "Invalid request data")
		return
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		writeError(c, http.StatusBadRequest, "Name is required")
		return
	}
	list, err := h.store.UpdateList(currentUser(c).ID, id, func(l *domain.List) error {
		if req.Name != nil {
			l.Name = strings.TrimSpace(*req.Name)
		}
		if req.Color != nil && *req.Color != "" {
			l.Color = *req.Color
		}
		if req.Description != nil {
			l.Description = *req.Description
		}
		return nil
	})
	if err != nil {
		writeStoreError(c, err, "List not found")
		return
	}
	c.JSON(http.StatusOK, list)
}

// deleteList unassigns the list's tasks rather than deleting them.
func (h *Handler) deleteList(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.store.DeleteList(currentUser(c).ID, id); err != nil {
		writeStoreError(c, err, "List not found")
		return
	}
	c.Status(http.StatusOK)
}
