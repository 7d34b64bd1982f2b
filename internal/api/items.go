package api

import (
	"net/http"

	"shareit/internal/models"

	"github.com/gin-gonic/gin"
)

type createItemRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	Available   *bool  `json:"available" binding:"required"`
	RequestID   *int64 `json:"request_id"`
}

type commentRequest struct {
	Text string `json:"text" binding:"required"`
}

func (s *HTTPServer) createItem(c *gin.Context) {
	var req createItemRequest
	if err := bindJSON(c, &req); err != nil {
		s.fail(c, err)
		return
	}
	item, err := s.svc.Items.CreateItem(c.Request.Context(), actorID(c), models.Item{
		Name:        req.Name,
		Description: req.Description,
		Available:   *req.Available,
		RequestID:   req.RequestID,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (s *HTTPServer) listOwnerItems(c *gin.Context) {
	views, err := s.svc.Items.ListOwnerItems(c.Request.Context(), actorID(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (s *HTTPServer) searchItems(c *gin.Context) {
	from, size, err := s.page(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	items, err := s.svc.Items.SearchItems(c.Request.Context(), c.Query("text"), from, size)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (s *HTTPServer) getItem(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		s.fail(c, err)
		return
	}
	view, err := s.svc.Items.GetItemView(c.Request.Context(), actorID(c), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (s *HTTPServer) updateItem(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		s.fail(c, err)
		return
	}
	var patch models.ItemPatch
	if err := bindJSON(c, &patch); err != nil {
		s.fail(c, err)
		return
	}
	item, err := s.svc.Items.UpdateItem(c.Request.Context(), actorID(c), id, patch)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (s *HTTPServer) deleteItem(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		s.fail(c, err)
		return
	}
	if err := s.svc.Items.DeleteItem(c.Request.Context(), actorID(c), id); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *HTTPServer) addComment(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		s.fail(c, err)
		return
	}
	var req commentRequest
	if err := bindJSON(c, &req); err != nil {
		s.fail(c, err)
		return
	}
	comment, err := s.svc.Items.AddComment(c.Request.Context(), actorID(c), id, req.Text)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}
