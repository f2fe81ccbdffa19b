package routes

import (
	"net/http"

	"cozyconnect_server/controllers"
	"cozyconnect_server/services"

	"github.com/gorilla/mux"
)

// RegisterUploadRoutes sets up routes for picture uploads
func RegisterUploadRoutes(r *mux.Router, s3Service *services.S3Service, auth *services.AuthService) {
	controller := controllers.NewUploadController(s3Service)

	uploadRouter := r.PathPrefix("/api").Subrouter()
	uploadRouter.Use(controllers.AuthMiddleware(auth))
	uploadRouter.HandleFunc("/upload", controller.HandleUpload).Methods(http.MethodPost)
	uploadRouter.HandleFunc("/generate-presigned-url", controller.HandleGeneratePresignedURL).Methods(http.MethodPost)
	uploadRouter.HandleFunc("/get-presigned-read-url", controller.HandleGetPresignedReadURL).Methods(http.MethodPost)
}
