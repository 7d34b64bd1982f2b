package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type createRequestRequest struct {
	Description string `json:"description" binding:"required"`
}

func (s *HTTPServer) createRequest(c *gin.Context) {
	var req createRequestRequest
	if err := bindJSON(c, &req); err != nil {
		s.fail(c, err)
		return
	}
	created, err := s.svc.Requests.CreateRequest(c.Request.Context(), actorID(c), req.Description)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *HTTPServer) listOwnRequests(c *gin.Context) {
	reqs, err := s.svc.Requests.ListOwnRequests(c.Request.Context(), actorID(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, reqs)
}

func (s *HTTPServer) listOtherRequests(c *gin.Context) {
	from, size, err := s.page(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	reqs, err := s.svc.Requests.ListOtherRequests(c.Request.Context(), actorID(c), from, size)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, reqs)
}

func (s *HTTPServer) getRequest(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		s.fail(c, err)
		return
	}
	req, err := s.svc.Requests.GetRequest(c.Request.Context(), actorID(c), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}
