package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"cozyconnect_server/logger"
	"cozyconnect_server/models"
	"cozyconnect_server/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMatchTestController(profiles *stubProfileStore, matches *stubMatchStore) *MatchController {
	profileService := &services.ProfileService{Store: profiles, Log: logger.NewNop()}
	matchService := &services.MatchService{
		Matches:  matches,
		Profiles: profileService,
		Log:      logger.NewNop(),
	}
	return NewMatchController(matchService, profileService)
}

func authedRequest(method, target string, body interface{}, email string) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	r := httptest.NewRequest(method, target, &buf)
	return r.WithContext(ContextWithSessionEmail(r.Context(), email))
}

func TestHandleSwipe(t *testing.T) {
	t.Run("first swipe creates a pending request", func(t *testing.T) {
		controller := newMatchTestController(
			newStubProfileStore(
				stubProfile("p1", "Alice", "alice@example.com"),
				stubProfile("p2", "Bob", "bob@example.com"),
			),
			newStubMatchStore(),
		)

		w := httptest.NewRecorder()
		r := authedRequest(http.MethodPost, "/api/matches", map[string]string{"swipedProfileId": "p2"}, "alice@example.com")
		controller.HandleSwipe(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		var response struct {
			Success       bool   `json:"success"`
			IsMatch       bool   `json:"isMatch"`
			MatchID       string `json:"matchId"`
			AlreadySwiped bool   `json:"alreadySwiped"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.True(t, response.Success)
		assert.False(t, response.IsMatch)
		assert.NotEmpty(t, response.MatchID)
		assert.False(t, response.AlreadySwiped)
	})

	t.Run("reciprocated swipe reports a match", func(t *testing.T) {
		matches := newStubMatchStore(models.Match{
			MatchID:  "m1",
			SwiperID: "p1",
			SwipedID: "p2",
			Status:   models.MatchStatusPending,
		})
		controller := newMatchTestController(
			newStubProfileStore(
				stubProfile("p1", "Alice", "alice@example.com"),
				stubProfile("p2", "Bob", "bob@example.com"),
			),
			matches,
		)

		w := httptest.NewRecorder()
		r := authedRequest(http.MethodPost, "/api/matches", map[string]string{"swipedProfileId": "p1"}, "bob@example.com")
		controller.HandleSwipe(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		var response struct {
			IsMatch bool   `json:"isMatch"`
			MatchID string `json:"matchId"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.True(t, response.IsMatch)
		assert.Equal(t, "m1", response.MatchID)
	})

	t.Run("missing body field is a 400", func(t *testing.T) {
		controller := newMatchTestController(newStubProfileStore(), newStubMatchStore())

		w := httptest.NewRecorder()
		r := authedRequest(http.MethodPost, "/api/matches", map[string]string{}, "alice@example.com")
		controller.HandleSwipe(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("session without a profile is a 404", func(t *testing.T) {
		controller := newMatchTestController(
			newStubProfileStore(stubProfile("p2", "Bob", "bob@example.com")),
			newStubMatchStore(),
		)

		w := httptest.NewRecorder()
		r := authedRequest(http.MethodPost, "/api/matches", map[string]string{"swipedProfileId": "p2"}, "stranger@example.com")
		controller.HandleSwipe(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandleListMatches(t *testing.T) {
	matches := newStubMatchStore(
		models.Match{MatchID: "m1", SwiperID: "p1", SwipedID: "p2", Status: models.MatchStatusAccepted},
		models.Match{MatchID: "m2", SwiperID: "p3", SwipedID: "p1", Status: models.MatchStatusPending},
	)
	controller := newMatchTestController(
		newStubProfileStore(
			stubProfile("p1", "Alice", "alice@example.com"),
			stubProfile("p2", "Bob", "bob@example.com"),
			stubProfile("p3", "Carol", "carol@example.com"),
		),
		matches,
	)

	w := httptest.NewRecorder()
	r := authedRequest(http.MethodGet, "/api/matches", nil, "alice@example.com")
	controller.HandleListMatches(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var response struct {
		Success bool         `json:"success"`
		Matches []MatchEntry `json:"matches"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response.Success)
	require.Len(t, response.Matches, 2)

	byMatchID := make(map[string]MatchEntry, len(response.Matches))
	for _, entry := range response.Matches {
		byMatchID[entry.MatchID] = entry
	}
	assert.Equal(t, "p2", byMatchID["m1"].OtherParty)
	assert.Equal(t, "Bob", byMatchID["m1"].Name)
	assert.Equal(t, models.MatchStatusAccepted, byMatchID["m1"].MatchStatus)
	assert.Equal(t, "p3", byMatchID["m2"].OtherParty)
	assert.Equal(t, models.MatchStatusPending, byMatchID["m2"].MatchStatus)
}

func TestHandleDeleteMatch(t *testing.T) {
	newFixture := func() (*MatchController, *stubMatchStore) {
		matches := newStubMatchStore(models.Match{
			MatchID:  "m1",
			SwiperID: "p1",
			SwipedID: "p2",
			Status:   models.MatchStatusAccepted,
		})
		controller := newMatchTestController(
			newStubProfileStore(
				stubProfile("p1", "Alice", "alice@example.com"),
				stubProfile("p2", "Bob", "bob@example.com"),
				stubProfile("p3", "Mallory", "mallory@example.com"),
			),
			matches,
		)
		return controller, matches
	}

	t.Run("a party can undo the match", func(t *testing.T) {
		controller, matches := newFixture()

		w := httptest.NewRecorder()
		r := authedRequest(http.MethodDelete, "/api/matches", map[string]string{"matchId": "m1"}, "alice@example.com")
		controller.HandleDeleteMatch(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, matches.matches)
	})

	t.Run("a stranger gets a 404 and the record survives", func(t *testing.T) {
		controller, matches := newFixture()

		w := httptest.NewRecorder()
		r := authedRequest(http.MethodDelete, "/api/matches", map[string]string{"matchId": "m1"}, "mallory@example.com")
		controller.HandleDeleteMatch(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Len(t, matches.matches, 1)
	})
}

func TestHandleSetStatus(t *testing.T) {
	matches := newStubMatchStore(models.Match{
		MatchID:  "m1",
		SwiperID: "p1",
		SwipedID: "p2",
		Status:   models.MatchStatusPending,
	})
	controller := newMatchTestController(
		newStubProfileStore(
			stubProfile("p1", "Alice", "alice@example.com"),
			stubProfile("p2", "Bob", "bob@example.com"),
		),
		matches,
	)

	w := httptest.NewRecorder()
	r := authedRequest(http.MethodPut, "/api/matches", map[string]string{"matchId": "m1", "status": models.MatchStatusAccepted}, "bob@example.com")
	controller.HandleSetStatus(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	stored := matches.matches["m1"]
	assert.Equal(t, models.MatchStatusAccepted, stored.Status)
}
