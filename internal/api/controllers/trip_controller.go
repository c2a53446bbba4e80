package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wayfare/internal/models/request_models"
	"wayfare/internal/services"
	"wayfare/pkg/utils"
)

type TripController struct {
	tripService services.TripServiceInterface
}

func NewTripController(tripService services.TripServiceInterface) *TripController {
	return &TripController{
		tripService: tripService,
	}
}

// POST /api/trips
func (t *TripController) GenerateTripHandler(c *gin.Context) {
	var req request_models.TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	trip, err := t.tripService.GenerateTrip(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, trip, "Itinerary generated successfully")
}

// GET /api/trips/:id
func (t *TripController) GetTripHandler(c *gin.Context) {
	trip, err := t.tripService.GetTrip(c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, trip, "")
}

// GET /api/trips/:id/map
func (t *TripController) GetMapPinsHandler(c *gin.Context) {
	trip, err := t.tripService.GetTrip(c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, trip.Pins, "")
}

// GET /api/trips/:id/budget
func (t *TripController) GetBudgetHandler(c *gin.Context) {
	trip, err := t.tripService.GetTrip(c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, trip.Budget, "")
}

// GET /api/trips/:id/download?format=text|pdf
func (t *TripController) DownloadHandler(c *gin.Context) {
	format := c.DefaultQuery("format", "text")

	data, contentType, err := t.tripService.Export(c.Param("id"), format)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	filename := "wayfare-itinerary.txt"
	if format == "pdf" {
		filename = "wayfare-itinerary.pdf"
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, contentType, data)
}

// GET /health
func (t *TripController) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "wayfare API",
	})
}
