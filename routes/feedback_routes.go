package routes

import (
	"net/http"

	"cozyconnect_server/controllers"
	"cozyconnect_server/services"

	"github.com/gorilla/mux"
)

// RegisterFeedbackRoutes sets up the feedback submission route
func RegisterFeedbackRoutes(r *mux.Router, feedbackService *services.FeedbackService) {
	controller := controllers.NewFeedbackController(feedbackService)

	r.HandleFunc("/api/feedback", controller.HandleSubmitFeedback).Methods(http.MethodPost)
}
