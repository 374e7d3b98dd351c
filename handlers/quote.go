package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"beebee/models"
	"beebee/services/quote"
	"beebee/utils"
)

type QuoteHandler struct {
	estimator *quote.Estimator
}

func NewQuoteHandler(estimator *quote.Estimator) *QuoteHandler {
	return &QuoteHandler{estimator: estimator}
}

// EstimateHandler prices a job from the contact form's fields. Invalid
// numbers are ignored rather than rejected.
func (h *QuoteHandler) EstimateHandler(c *gin.Context) {
	var req models.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	in := quote.FromRequest(req.Service, req.CleaningType, req.SquareFootage, req.Bathrooms, req.Rooms)
	result := h.estimator.Estimate(in)

	c.JSON(http.StatusOK, models.QuoteResponse{
		QuoteResult: result,
		CanEstimate: quote.CanEstimate(in, result),
		Formatted:   quote.FormatRange(result.Low, result.High),
	})
}
