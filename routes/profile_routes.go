package routes

import (
	"net/http"

	"cozyconnect_server/controllers"
	"cozyconnect_server/services"

	"github.com/gorilla/mux"
)

// RegisterProfileRoutes sets up routes for profile operations under /api
func RegisterProfileRoutes(r *mux.Router, profileService *services.ProfileService, linkService *services.LinkService, auth *services.AuthService) {
	controller := controllers.NewProfileController(profileService, linkService)
	authMiddleware := controllers.AuthMiddleware(auth)

	profilesRouter := r.PathPrefix("/api/profiles").Subrouter()
	profilesRouter.Use(authMiddleware)
	profilesRouter.HandleFunc("", controller.HandleListProfiles).Methods(http.MethodGet)

	profileRouter := r.PathPrefix("/api/profile").Subrouter()
	profileRouter.Use(authMiddleware)
	profileRouter.HandleFunc("", controller.HandleCreateProfile).Methods(http.MethodPost)
	profileRouter.HandleFunc("", controller.HandleUpdateProfile).Methods(http.MethodPut)
	profileRouter.HandleFunc("/me", controller.HandleGetOwnProfile).Methods(http.MethodGet)
	profileRouter.HandleFunc("/check", controller.HandleCheckProfile).Methods(http.MethodGet)
	profileRouter.HandleFunc("/request-code", controller.HandleRequestCode).Methods(http.MethodPost)
	profileRouter.HandleFunc("/link", controller.HandleLinkProfile).Methods(http.MethodPost)
}
