package controllers

import (
	"encoding/json"
	"net/http"

	"cozyconnect_server/apperror"
	"cozyconnect_server/models"
	"cozyconnect_server/services"
	"cozyconnect_server/utils"
)

// MatchController exposes the swipe and match endpoints.
type MatchController struct {
	MatchService   *services.MatchService
	ProfileService *services.ProfileService
}

// NewMatchController initializes the controller
func NewMatchController(matchService *services.MatchService, profileService *services.ProfileService) *MatchController {
	return &MatchController{MatchService: matchService, ProfileService: profileService}
}

// callerProfile resolves the authenticated session to its profile.
func (c *MatchController) callerProfile(r *http.Request) (*models.Profile, error) {
	email, ok := SessionEmail(r.Context())
	if !ok {
		return nil, apperror.NewUnauthenticated("no verified identity on request")
	}
	return c.ProfileService.GetProfileByLinkedEmail(r.Context(), email)
}

// MatchEntry is one row of the connections list: the other party's
// profile fields plus the match state.
type MatchEntry struct {
	models.Profile
	MatchID     string `json:"matchId"`
	MatchStatus string `json:"matchStatus"`
	OtherParty  string `json:"otherParty"`
}

// HandleListMatches - GET /api/matches
func (c *MatchController) HandleListMatches(w http.ResponseWriter, r *http.Request) {
	caller, err := c.callerProfile(r)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	matches, err := c.MatchService.ListMatchesForUser(r.Context(), caller.ID)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	otherIDs := make([]string, 0, len(matches))
	for _, m := range matches {
		otherIDs = append(otherIDs, m.OtherParty(caller.ID))
	}

	profiles, err := c.ProfileService.GetProfilesByIDs(r.Context(), otherIDs)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	byID := make(map[string]models.Profile, len(profiles))
	for _, p := range profiles {
		byID[p.ID] = p
	}

	entries := make([]MatchEntry, 0, len(matches))
	for _, m := range matches {
		otherID := m.OtherParty(caller.ID)
		profile, ok := byID[otherID]
		if !ok {
			// the other party's record disappeared; skip the row
			continue
		}
		entries = append(entries, MatchEntry{
			Profile:     profile,
			MatchID:     m.MatchID,
			MatchStatus: m.Status,
			OtherParty:  otherID,
		})
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"matches": entries,
	})
}

// HandleSwipe - POST /api/matches
func (c *MatchController) HandleSwipe(w http.ResponseWriter, r *http.Request) {
	var request struct {
		SwipedProfileID string `json:"swipedProfileId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.WriteError(w, apperror.NewInvalidInput("invalid request body", err))
		return
	}
	if request.SwipedProfileID == "" {
		utils.WriteError(w, apperror.NewInvalidInput("missing swipedProfileId", nil))
		return
	}

	caller, err := c.callerProfile(r)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	result, err := c.MatchService.ReconcileSwipe(r.Context(), caller.ID, request.SwipedProfileID)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":       true,
		"isMatch":       result.IsMatch,
		"matchId":       result.MatchID,
		"alreadySwiped": result.AlreadySwiped,
	})
}

// HandleSetStatus - PUT /api/matches
func (c *MatchController) HandleSetStatus(w http.ResponseWriter, r *http.Request) {
	var request struct {
		MatchID string `json:"matchId"`
		Status  string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.WriteError(w, apperror.NewInvalidInput("invalid request body", err))
		return
	}
	if request.MatchID == "" {
		utils.WriteError(w, apperror.NewInvalidInput("missing matchId", nil))
		return
	}

	caller, err := c.callerProfile(r)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	match, err := c.MatchService.SetMatchStatus(r.Context(), request.MatchID, request.Status, caller.ID)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"match":   match,
	})
}

// HandleDeleteMatch - DELETE /api/matches
func (c *MatchController) HandleDeleteMatch(w http.ResponseWriter, r *http.Request) {
	var request struct {
		MatchID string `json:"matchId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.WriteError(w, apperror.NewInvalidInput("invalid request body", err))
		return
	}
	if request.MatchID == "" {
		utils.WriteError(w, apperror.NewInvalidInput("missing matchId", nil))
		return
	}

	caller, err := c.callerProfile(r)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	if err := c.MatchService.DeleteMatch(r.Context(), request.MatchID, caller.ID); err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
