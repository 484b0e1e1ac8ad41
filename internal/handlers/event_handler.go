package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/tessalate/internal/grid"
	"github.com/joshua-takyi/tessalate/internal/models"
	"github.com/joshua-takyi/tessalate/internal/services"
)

// respondError maps domain errors to status codes. Unknown errors are left to
// middleware.ErrorHandler.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidInput), errors.Is(err, grid.ErrInvalidTimeZone):
		c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse(err.Error()))
	default:
		_ = c.Error(err)
	}
}

func CreateEvent(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CreateEventRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request body: "+err.Error()))
			return
		}

		event, err := es.CreateEvent(c.Request.Context(), &req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, event)
	}
}

func GetEvent(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		event, err := es.GetEvent(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, event)
	}
}

func SubmitAvailability(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.AvailabilityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request body: "+err.Error()))
			return
		}

		event, err := es.SubmitAvailability(c.Request.Context(), c.Param("id"), &req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, event)
	}
}

func GetEventGrid(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		view, err := es.GetGrid(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(view, ""))
	}
}

func GetSlotDetail(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		detail, err := es.GetSlot(c.Request.Context(), c.Param("id"), c.Param("key"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(detail, ""))
	}
}

func GetParticipantAvailability(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		availability, err := es.GetAvailability(c.Request.Context(), c.Param("id"), c.Param("name"))
		if err != nil {
			respondError(c, err)
			return
		}
		message := ""
		if !availability.Exists {
			message = "participant has not responded yet"
		}
		c.JSON(http.StatusOK, models.SuccessResponse(availability, message))
	}
}
