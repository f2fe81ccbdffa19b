package services

import (
	"context"
	"errors"
	"testing"

	"cozyconnect_server/apperror"
	"cozyconnect_server/logger"
	"cozyconnect_server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProfileService(store *memProfileStore) *ProfileService {
	return &ProfileService{Store: store, Log: logger.NewNop()}
}

func TestGetProfileByLinkedEmail(t *testing.T) {
	svc := newTestProfileService(newMemProfileStore(
		testProfile("p1", "Alice", "alice@example.com"),
	))

	profile, err := svc.GetProfileByLinkedEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "p1", profile.ID)

	_, err = svc.GetProfileByLinkedEmail(context.Background(), "nobody@example.com")
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	_, err = svc.GetProfileByLinkedEmail(context.Background(), "")
	assert.True(t, errors.Is(err, apperror.ErrInvalidInput))
}

func TestGetProfilesByIDs_EmptyInputShortCircuits(t *testing.T) {
	store := newMemProfileStore(testProfile("p1", "Alice", "alice@example.com"))
	store.failWith = apperror.NewStoreUnavailable("store must not be called", nil)
	svc := newTestProfileService(store)

	profiles, err := svc.GetProfilesByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, profiles)
}

func TestCreateProfile(t *testing.T) {
	validInput := func() CreateProfileInput {
		return CreateProfileInput{
			Name:       "Carol",
			ShortIntro: "I roast coffee",
			Categories: []string{"Food"},
			LookingFor: "suppliers",
			CanOffer:   "beans",
			Picture:    &models.PictureAttachment{URL: "https://img.example.com/c.jpg", Filename: "c.jpg"},
		}
	}

	t.Run("creates and binds the linking identity", func(t *testing.T) {
		store := newMemProfileStore()
		svc := newTestProfileService(store)

		profile, err := svc.CreateProfile(context.Background(), "carol@example.com", validInput())
		require.NoError(t, err)
		assert.NotEmpty(t, profile.ID)
		assert.Equal(t, "carol@example.com", profile.LinkedEmail)
		assert.NotEmpty(t, profile.LastModified)

		stored, err := store.GetByLinkedEmail(context.Background(), "carol@example.com")
		require.NoError(t, err)
		assert.Equal(t, profile.ID, stored.ID)
	})

	t.Run("one profile per linking identity", func(t *testing.T) {
		store := newMemProfileStore(testProfile("p1", "Carol", "carol@example.com"))
		svc := newTestProfileService(store)

		_, err := svc.CreateProfile(context.Background(), "carol@example.com", validInput())
		assert.True(t, errors.Is(err, apperror.ErrConflict))
	})

	t.Run("required fields", func(t *testing.T) {
		svc := newTestProfileService(newMemProfileStore())

		for name, mutate := range map[string]func(*CreateProfileInput){
			"name":       func(in *CreateProfileInput) { in.Name = "" },
			"shortIntro": func(in *CreateProfileInput) { in.ShortIntro = "" },
			"categories": func(in *CreateProfileInput) { in.Categories = nil },
			"lookingFor": func(in *CreateProfileInput) { in.LookingFor = "" },
			"canOffer":   func(in *CreateProfileInput) { in.CanOffer = "" },
			"picture":    func(in *CreateProfileInput) { in.Picture = nil },
		} {
			input := validInput()
			mutate(&input)
			_, err := svc.CreateProfile(context.Background(), "carol@example.com", input)
			assert.Truef(t, errors.Is(err, apperror.ErrInvalidInput), "missing %s must be rejected", name)
		}
	})
}

func TestUpdateProfile(t *testing.T) {
	t.Run("partial update of own record", func(t *testing.T) {
		store := newMemProfileStore(testProfile("p1", "Alice", "alice@example.com"))
		svc := newTestProfileService(store)

		updated, err := svc.UpdateProfile(context.Background(), "alice@example.com", map[string]interface{}{
			"companyTitle": "Founder",
		})
		require.NoError(t, err)
		assert.Equal(t, "Founder", updated.CompanyTitle)
	})

	t.Run("identity fields are not writable", func(t *testing.T) {
		store := newMemProfileStore(testProfile("p1", "Alice", "alice@example.com"))
		svc := newTestProfileService(store)

		updated, err := svc.UpdateProfile(context.Background(), "alice@example.com", map[string]interface{}{
			"linkedEmail":  "mallory@example.com",
			"companyTitle": "Founder",
		})
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", updated.LinkedEmail)
	})

	t.Run("empty update set", func(t *testing.T) {
		svc := newTestProfileService(newMemProfileStore(testProfile("p1", "Alice", "alice@example.com")))

		_, err := svc.UpdateProfile(context.Background(), "alice@example.com", map[string]interface{}{})
		assert.True(t, errors.Is(err, apperror.ErrInvalidInput))
	})
}

func TestListProfiles_DeckOrdering(t *testing.T) {
	store := newMemProfileStore(
		testProfile("p1", "Alice", "alice@example.com"),
		testProfile("p2", "Bob", "bob@example.com"),
		testProfile("p3", "Carol", "carol@example.com"),
		testProfile("p4", "Join The Club", ""),
	)
	svc := newTestProfileService(store)
	svc.Featured = []string{"Carol", "Alice"}
	svc.Hidden = []string{"Join The Club"}

	deck, err := svc.ListProfiles(context.Background())
	require.NoError(t, err)

	require.Len(t, deck, 3)
	assert.Equal(t, "Carol", deck[0].Name)
	assert.Equal(t, "Alice", deck[1].Name)
	assert.Equal(t, "Bob", deck[2].Name)
	for _, p := range deck {
		assert.NotEqual(t, "Join The Club", p.Name)
	}
}
