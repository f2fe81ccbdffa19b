package routes

import (
	"net/http"

	"cozyconnect_server/controllers"
	"cozyconnect_server/services"

	"github.com/gorilla/mux"
)

// RegisterMatchRoutes sets up routes for swipe and match operations under /api/matches
func RegisterMatchRoutes(r *mux.Router, matchService *services.MatchService, profileService *services.ProfileService, auth *services.AuthService) {
	controller := controllers.NewMatchController(matchService, profileService)

	matchRouter := r.PathPrefix("/api/matches").Subrouter()
	matchRouter.Use(controllers.AuthMiddleware(auth))
	matchRouter.HandleFunc("", controller.HandleListMatches).Methods(http.MethodGet)
	matchRouter.HandleFunc("", controller.HandleSwipe).Methods(http.MethodPost)
	matchRouter.HandleFunc("", controller.HandleSetStatus).Methods(http.MethodPut)
	matchRouter.HandleFunc("", controller.HandleDeleteMatch).Methods(http.MethodDelete)
}
