package services

import (
	"context"
	"encoding/json"
	"math/rand"
	"strings"
	"time"

	"cozyconnect_server/apperror"
	"cozyconnect_server/logger"
	"cozyconnect_server/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const profileListCacheKey = "profiles:list"

// ProfileService is the gateway between identities and profile
// records. Lookups go straight to the store; only the full deck
// listing is cached, briefly, because it backs the busiest page.
type ProfileService struct {
	Store ProfileStore
	Log   logger.Logger

	// Cache may be nil; the listing then always hits the store.
	Cache    *redis.Client
	CacheTTL time.Duration

	// Featured names are pinned to the top of the deck in configured
	// order; Hidden names never appear.
	Featured []string
	Hidden   []string
}

// GetProfileByLinkedEmail resolves the single profile bound to the
// given sign-in identity.
func (ps *ProfileService) GetProfileByLinkedEmail(ctx context.Context, email string) (*models.Profile, error) {
	if email == "" {
		return nil, apperror.NewInvalidInput("email must not be empty", nil)
	}
	return ps.Store.GetByLinkedEmail(ctx, email)
}

// GetProfileByID resolves a profile by record identifier.
func (ps *ProfileService) GetProfileByID(ctx context.Context, id string) (*models.Profile, error) {
	if id == "" {
		return nil, apperror.NewInvalidInput("profile id must not be empty", nil)
	}
	return ps.Store.GetByID(ctx, id)
}

// GetProfilesByIDs batch-fetches profiles. An empty input returns an
// empty list without touching the store; result order is
// store-defined, not input order.
func (ps *ProfileService) GetProfilesByIDs(ctx context.Context, ids []string) ([]models.Profile, error) {
	if len(ids) == 0 {
		return []models.Profile{}, nil
	}
	return ps.Store.GetByIDs(ctx, ids)
}

// CreateProfileInput carries the required and optional fields of a
// profile-creation request.
type CreateProfileInput struct {
	Name         string
	ShortIntro   string
	CompanyTitle string
	Location     string
	Email        string
	Instagram    string
	LinkedinLink string
	GitHub       string
	Categories   []string
	LookingFor   string
	CanOffer     string
	OpenToWork   string
	Other        string
	Picture      *models.PictureAttachment
}

// CreateProfile validates and stores a new profile bound to
// linkedEmail. At most one profile may hold a given linking identity.
func (ps *ProfileService) CreateProfile(ctx context.Context, linkedEmail string, input CreateProfileInput) (*models.Profile, error) {
	switch {
	case strings.TrimSpace(input.Name) == "":
		return nil, apperror.NewInvalidInput("name is required", nil)
	case strings.TrimSpace(input.ShortIntro) == "":
		return nil, apperror.NewInvalidInput("short intro is required", nil)
	case len(input.Categories) == 0:
		return nil, apperror.NewInvalidInput("at least one category is required", nil)
	case strings.TrimSpace(input.LookingFor) == "":
		return nil, apperror.NewInvalidInput("looking for is required", nil)
	case strings.TrimSpace(input.CanOffer) == "":
		return nil, apperror.NewInvalidInput("can offer is required", nil)
	case input.Picture == nil || input.Picture.URL == "":
		return nil, apperror.NewInvalidInput("a profile picture is required", nil)
	}

	_, err := ps.Store.GetByLinkedEmail(ctx, linkedEmail)
	if err == nil {
		return nil, apperror.NewConflict("profile", "linked email", linkedEmail)
	}
	if !isNotFound(err) {
		return nil, err
	}

	profile := models.Profile{
		ID:           newRecordID(),
		Name:         input.Name,
		ShortIntro:   input.ShortIntro,
		CompanyTitle: input.CompanyTitle,
		Location:     input.Location,
		Email:        input.Email,
		LinkedEmail:  linkedEmail,
		Instagram:    input.Instagram,
		LinkedinLink: input.LinkedinLink,
		GitHub:       input.GitHub,
		Categories:   input.Categories,
		LookingFor:   input.LookingFor,
		CanOffer:     input.CanOffer,
		OpenToWork:   input.OpenToWork,
		Other:        input.Other,
		Picture:      []models.PictureAttachment{*input.Picture},
		LastModified: time.Now().UTC().Format(time.RFC3339),
	}

	if err := ps.Store.Put(ctx, profile); err != nil {
		return nil, err
	}
	ps.invalidateListing(ctx)
	ps.Log.Info("profile created", zap.String("profileId", profile.ID), zap.String("name", profile.Name))
	return &profile, nil
}

// UpdateProfile applies a partial update to the caller's own record,
// resolved by linking identity.
func (ps *ProfileService) UpdateProfile(ctx context.Context, linkedEmail string, fields map[string]interface{}) (*models.Profile, error) {
	if len(fields) == 0 {
		return nil, apperror.NewInvalidInput("no update data provided", nil)
	}

	current, err := ps.Store.GetByLinkedEmail(ctx, linkedEmail)
	if err != nil {
		return nil, err
	}

	// identity fields are never writable through an update request
	delete(fields, "profileId")
	delete(fields, "linkedEmail")
	delete(fields, "verificationCode")

	updated, err := ps.Store.Update(ctx, current.ID, fields)
	if err != nil {
		return nil, err
	}
	ps.invalidateListing(ctx)
	return updated, nil
}

// ListProfiles returns the swipe deck: hidden names removed, featured
// names pinned first in configured order, everyone else shuffled.
func (ps *ProfileService) ListProfiles(ctx context.Context) ([]models.Profile, error) {
	profiles, err := ps.cachedListing(ctx)
	if err != nil {
		return nil, err
	}

	hidden := make(map[string]bool, len(ps.Hidden))
	for _, name := range ps.Hidden {
		hidden[name] = true
	}
	featuredRank := make(map[string]int, len(ps.Featured))
	for i, name := range ps.Featured {
		featuredRank[name] = i
	}

	featured := make([]models.Profile, len(ps.Featured))
	var rest []models.Profile
	for _, p := range profiles {
		if hidden[p.Name] {
			continue
		}
		if rank, ok := featuredRank[p.Name]; ok {
			featured[rank] = p
			continue
		}
		rest = append(rest, p)
	}

	shuffleProfiles(rest)

	deck := make([]models.Profile, 0, len(profiles))
	for _, p := range featured {
		if p.ID != "" {
			deck = append(deck, p)
		}
	}
	return append(deck, rest...), nil
}

// cachedListing serves the raw scan from Redis when fresh, falling
// back to the store on any cache miss or cache error.
func (ps *ProfileService) cachedListing(ctx context.Context) ([]models.Profile, error) {
	if ps.Cache != nil {
		payload, err := ps.Cache.Get(ctx, profileListCacheKey).Bytes()
		if err == nil {
			var profiles []models.Profile
			if err := json.Unmarshal(payload, &profiles); err == nil {
				return profiles, nil
			}
		} else if err != redis.Nil {
			ps.Log.Warn("profile list cache read failed", zap.Error(err))
		}
	}

	profiles, err := ps.Store.List(ctx)
	if err != nil {
		return nil, err
	}

	if ps.Cache != nil {
		if payload, err := json.Marshal(profiles); err == nil {
			if err := ps.Cache.Set(ctx, profileListCacheKey, payload, ps.CacheTTL).Err(); err != nil {
				ps.Log.Warn("profile list cache write failed", zap.Error(err))
			}
		}
	}
	return profiles, nil
}

func (ps *ProfileService) invalidateListing(ctx context.Context) {
	if ps.Cache == nil {
		return
	}
	if err := ps.Cache.Del(ctx, profileListCacheKey).Err(); err != nil {
		ps.Log.Warn("profile list cache invalidation failed", zap.Error(err))
	}
}

// Fisher-Yates
func shuffleProfiles(profiles []models.Profile) {
	for i := len(profiles) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		profiles[i], profiles[j] = profiles[j], profiles[i]
	}
}
