package routes

import (
	"net/http"

	"cozyconnect_server/controllers"
	"cozyconnect_server/services"

	"github.com/gorilla/mux"
)

// RegisterAuthRoutes sets up the OAuth and session routes under /api/auth
func RegisterAuthRoutes(r *mux.Router, authService *services.AuthService) {
	controller := controllers.NewAuthController(authService)

	authRouter := r.PathPrefix("/api/auth").Subrouter()
	authRouter.HandleFunc("/login", controller.HandleLogin).Methods(http.MethodGet)
	authRouter.HandleFunc("/callback", controller.HandleCallback).Methods(http.MethodGet)

	meRouter := r.PathPrefix("/api/auth/me").Subrouter()
	meRouter.Use(controllers.AuthMiddleware(authService))
	meRouter.HandleFunc("", controller.HandleMe).Methods(http.MethodGet)
}
