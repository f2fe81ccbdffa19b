package controllers

import (
	"encoding/json"
	"net/http"

	"cozyconnect_server/apperror"
	"cozyconnect_server/models"
	"cozyconnect_server/services"
	"cozyconnect_server/utils"
)

// ProfileController exposes profile creation, lookup, update, the
// swipe deck, and the verification-code linking flow.
type ProfileController struct {
	ProfileService *services.ProfileService
	LinkService    *services.LinkService
}

// NewProfileController initializes the controller
func NewProfileController(profileService *services.ProfileService, linkService *services.LinkService) *ProfileController {
	return &ProfileController{ProfileService: profileService, LinkService: linkService}
}

func sessionEmailOrError(w http.ResponseWriter, r *http.Request) (string, bool) {
	email, ok := SessionEmail(r.Context())
	if !ok {
		utils.WriteError(w, apperror.NewUnauthenticated("no verified identity on request"))
		return "", false
	}
	return email, true
}

// HandleListProfiles - GET /api/profiles, the shuffled swipe deck
func (c *ProfileController) HandleListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := c.ProfileService.ListProfiles(r.Context())
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"profiles": profiles,
	})
}

// HandleCreateProfile - POST /api/profile
func (c *ProfileController) HandleCreateProfile(w http.ResponseWriter, r *http.Request) {
	email, ok := sessionEmailOrError(w, r)
	if !ok {
		return
	}

	var request struct {
		Name         string                    `json:"name"`
		ShortIntro   string                    `json:"shortIntro"`
		CompanyTitle string                    `json:"companyTitle"`
		Location     string                    `json:"location"`
		Email        string                    `json:"email"`
		Instagram    string                    `json:"instagram"`
		LinkedinLink string                    `json:"linkedinLink"`
		GitHub       string                    `json:"github"`
		Categories   []string                  `json:"categories"`
		LookingFor   string                    `json:"lookingFor"`
		CanOffer     string                    `json:"canOffer"`
		OpenToWork   string                    `json:"openToWork"`
		Other        string                    `json:"other"`
		Picture      *models.PictureAttachment `json:"picture"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.WriteError(w, apperror.NewInvalidInput("invalid request body", err))
		return
	}

	profile, err := c.ProfileService.CreateProfile(r.Context(), email, services.CreateProfileInput{
		Name:         request.Name,
		ShortIntro:   request.ShortIntro,
		CompanyTitle: request.CompanyTitle,
		Location:     request.Location,
		Email:        request.Email,
		Instagram:    request.Instagram,
		LinkedinLink: request.LinkedinLink,
		GitHub:       request.GitHub,
		Categories:   request.Categories,
		LookingFor:   request.LookingFor,
		CanOffer:     request.CanOffer,
		OpenToWork:   request.OpenToWork,
		Other:        request.Other,
		Picture:      request.Picture,
	})
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    profile,
	})
}

// HandleGetOwnProfile - GET /api/profile/me
func (c *ProfileController) HandleGetOwnProfile(w http.ResponseWriter, r *http.Request) {
	email, ok := sessionEmailOrError(w, r)
	if !ok {
		return
	}

	profile, err := c.ProfileService.GetProfileByLinkedEmail(r.Context(), email)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"profile": profile,
	})
}

// HandleUpdateProfile - PUT /api/profile, partial update of the
// caller's own record
func (c *ProfileController) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	email, ok := sessionEmailOrError(w, r)
	if !ok {
		return
	}

	var fields map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		utils.WriteError(w, apperror.NewInvalidInput("invalid request body", err))
		return
	}

	profile, err := c.ProfileService.UpdateProfile(r.Context(), email, fields)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"profile": profile,
	})
}

// HandleCheckProfile - GET /api/profile/check, the post-login gate
func (c *ProfileController) HandleCheckProfile(w http.ResponseWriter, r *http.Request) {
	email, ok := sessionEmailOrError(w, r)
	if !ok {
		return
	}

	profile, err := c.LinkService.CheckProfile(r.Context(), email)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"profile": profile,
	})
}

// HandleRequestCode - POST /api/profile/request-code
func (c *ProfileController) HandleRequestCode(w http.ResponseWriter, r *http.Request) {
	email, ok := sessionEmailOrError(w, r)
	if !ok {
		return
	}

	var request struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.WriteError(w, apperror.NewInvalidInput("invalid request body", err))
		return
	}

	if err := c.LinkService.RequestCode(r.Context(), email, request.Name); err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Verification code sent to your email. Please check your inbox.",
	})
}

// HandleLinkProfile - POST /api/profile/link
func (c *ProfileController) HandleLinkProfile(w http.ResponseWriter, r *http.Request) {
	email, ok := sessionEmailOrError(w, r)
	if !ok {
		return
	}

	var request struct {
		Name             string `json:"name"`
		VerificationCode string `json:"verificationCode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.WriteError(w, apperror.NewInvalidInput("invalid request body", err))
		return
	}

	profile, err := c.LinkService.LinkProfile(r.Context(), email, request.Name, request.VerificationCode)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"profile": profile,
	})
}
