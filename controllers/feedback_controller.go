package controllers

import (
	"encoding/json"
	"net/http"

	"cozyconnect_server/apperror"
	"cozyconnect_server/services"
	"cozyconnect_server/utils"
)

// FeedbackController accepts feedback-page submissions.
type FeedbackController struct {
	FeedbackService *services.FeedbackService
}

// NewFeedbackController initializes the controller
func NewFeedbackController(feedbackService *services.FeedbackService) *FeedbackController {
	return &FeedbackController{FeedbackService: feedbackService}
}

// HandleSubmitFeedback - POST /api/feedback
func (c *FeedbackController) HandleSubmitFeedback(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Feedback string `json:"feedback"`
		Rating   int    `json:"rating"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.WriteError(w, apperror.NewInvalidInput("invalid request body", err))
		return
	}

	if _, err := c.FeedbackService.SubmitFeedback(r.Context(), request.Name, request.Email, request.Feedback, request.Rating); err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
