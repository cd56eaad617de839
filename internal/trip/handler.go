package trip

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type TripHandler struct {
	service  *Service
	pipeline *Pipeline
}

func NewTripHandler(service *Service, pipeline *Pipeline) *TripHandler {
	return &TripHandler{
		service:  service,
		pipeline: pipeline,
	}
}

func (h *TripHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/v1/trips/search", h.SearchOffersHandler)
	router.POST("/v1/trips/plan", h.PlanTripHandler)
}

// PlanRequest is the planning entrypoint payload. Either a structured
// trip_request or a free-text user_input must be set.
type PlanRequest struct {
	UserInput   string       `json:"user_input"`
	Currency    string       `json:"currency"`
	TripRequest *TripRequest `json:"trip_request"`
}

func (h *TripHandler) SearchOffersHandler(c *gin.Context) {
	var req TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid JSON body",
			"code":  ErrorCodeValidation,
		})
		return
	}

	result, err := h.service.SearchOffers(c.Request.Context(), req)
	if err != nil {
		sendError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *TripHandler) PlanTripHandler(c *gin.Context) {
	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid JSON body",
			"code":  ErrorCodeValidation,
		})
		return
	}
	if req.UserInput == "" && req.TripRequest == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "either user_input or trip_request is required",
			"code":  ErrorCodeValidation,
		})
		return
	}

	state := &State{
		UserInput:   req.UserInput,
		Currency:    req.Currency,
		TripRequest: req.TripRequest,
		Flights:     []FlightSummary{},
		Hotels:      []HotelSummary{},
	}
	h.pipeline.Run(c.Request.Context(), state)

	c.JSON(http.StatusOK, state)
}

func sendError(c *gin.Context, err error) {
	var appErr *AppError

	if errors.As(err, &appErr) {
		c.JSON(appErr.Status, gin.H{
			"error": appErr.Message,
			"code":  appErr.Code,
		})
		return
	}

	// Default to 500 for unknown errors
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   "Internal Server Error",
		"code":    ErrorCodeInternalFailure,
		"details": err.Error(),
	})
}
