package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"shareit/internal/export"
	"shareit/internal/models"
	"shareit/internal/timeline"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type createBookingRequest struct {
	ItemID int64     `json:"item_id" binding:"required"`
	Start  time.Time `json:"start" binding:"required"`
	End    time.Time `json:"end" binding:"required"`
}

func (s *HTTPServer) createBooking(c *gin.Context) {
	var req createBookingRequest
	if err := bindJSON(c, &req); err != nil {
		s.fail(c, err)
		return
	}
	booking, err := s.svc.Bookings.CreateBooking(c.Request.Context(), actorID(c), req.ItemID, req.Start, req.End)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

func (s *HTTPServer) changeBookingStatus(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		s.fail(c, err)
		return
	}
	raw, ok := c.GetQuery("approved")
	if !ok {
		s.fail(c, badRequest("approved is required"))
		return
	}
	approve, err := strconv.ParseBool(raw)
	if err != nil {
		s.fail(c, badRequest("invalid approved %q", raw))
		return
	}

	booking, err := s.svc.Bookings.ChangeStatus(c.Request.Context(), actorID(c), id, approve)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

func (s *HTTPServer) getBooking(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		s.fail(c, err)
		return
	}
	booking, err := s.svc.Bookings.GetBooking(c.Request.Context(), actorID(c), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

func (s *HTTPServer) listBookerBookings(c *gin.Context) {
	s.listBookings(c, models.SubjectBooker)
}

func (s *HTTPServer) listOwnerBookings(c *gin.Context) {
	s.listBookings(c, models.SubjectOwner)
}

func (s *HTTPServer) listBookings(c *gin.Context, subject models.Subject) {
	from, size, err := s.page(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	bookings, err := s.svc.Bookings.ListBookings(c.Request.Context(), subject, actorID(c), c.Query("state"), from, size)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (s *HTTPServer) exportOwnerBookings(c *gin.Context) {
	ownerID := actorID(c)
	bookings, now, err := s.svc.Bookings.ExportBookings(c.Request.Context(), models.SubjectOwner, ownerID, c.Query("state"))
	if err != nil {
		s.fail(c, err)
		return
	}

	filter, _ := timeline.Lookup(c.Query("state"))
	report := export.BookingReport{OwnerID: ownerID, State: filter.State, Now: now, Bookings: bookings}

	if dir := s.cfg.Exports.Path; dir != "" {
		path, err := export.Save(dir, report)
		if err != nil {
			s.log.Warn().Err(err).Int64("owner_id", ownerID).Msg("failed to archive booking export")
		} else {
			s.log.Info().Str("file_path", path).Int("bookings", len(bookings)).Msg("booking export archived")
		}
	}

	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.FileName()))
	c.Status(http.StatusOK)
	if err := export.Write(c.Writer, report); err != nil {
		s.log.Error().Err(err).Int64("owner_id", ownerID).Msg("failed to write booking export")
	}
}
