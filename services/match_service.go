package services

import (
	"context"
	"errors"
	"time"

	"cozyconnect_server/apperror"
	"cozyconnect_server/logger"
	"cozyconnect_server/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProfileFinder is the slice of the profile gateway the engine needs:
// resolving swipe targets to live records.
type ProfileFinder interface {
	GetProfileByID(ctx context.Context, id string) (*models.Profile, error)
}

// MatchService decides what a right-swipe means: a new pending
// request, the completion of a mutual match, or a duplicate. One
// record lives per unordered pair; its swiperId field names the party
// that swiped first.
//
// The read-then-write sequence in ReconcileSwipe is not transactional.
// Two simultaneous first swipes can produce two pending records
// instead of one accepted one; the store enforces no uniqueness on
// the pair.
type MatchService struct {
	Matches  MatchStore
	Profiles ProfileFinder
	Log      logger.Logger
}

// SwipeResult is what a swipe resolves to.
type SwipeResult struct {
	IsMatch       bool   `json:"isMatch"`
	MatchID       string `json:"matchId"`
	AlreadySwiped bool   `json:"alreadySwiped,omitempty"`
	Status        string `json:"status"`
}

// ReconcileSwipe records that swiperID swiped right on swipedID and
// returns the resulting state. First applicable rule wins:
//
//	no record            -> create pending, swiper first
//	same swiper again    -> no mutation, flag alreadySwiped
//	reciprocated pending -> flip the record to accepted
//	otherwise            -> no mutation, idempotent re-swipe
func (s *MatchService) ReconcileSwipe(ctx context.Context, swiperID, swipedID string) (*SwipeResult, error) {
	if swiperID == swipedID {
		return nil, apperror.NewInvalidInput("cannot swipe on your own profile", nil)
	}

	if _, err := s.Profiles.GetProfileByID(ctx, swiperID); err != nil {
		return nil, err
	}
	if _, err := s.Profiles.GetProfileByID(ctx, swipedID); err != nil {
		return nil, err
	}

	existing, err := s.Matches.FindByPair(ctx, swiperID, swipedID)
	if err != nil && !errors.Is(err, apperror.ErrNotFound) {
		return nil, err
	}

	if existing == nil || errors.Is(err, apperror.ErrNotFound) {
		match := models.Match{
			MatchID:   uuid.New().String(),
			SwiperID:  swiperID,
			SwipedID:  swipedID,
			Status:    models.MatchStatusPending,
			CreatedAt: time.Now().UTC().Format(time.RFC3339),
		}
		if err := s.Matches.Create(ctx, match); err != nil {
			return nil, err
		}
		s.Log.Info("swipe recorded",
			zap.String("matchId", match.MatchID),
			zap.String("swiperId", swiperID),
			zap.String("swipedId", swipedID))
		return &SwipeResult{IsMatch: false, MatchID: match.MatchID, Status: match.Status}, nil
	}

	if existing.SwiperID == swiperID {
		return &SwipeResult{
			IsMatch:       existing.Status == models.MatchStatusAccepted,
			MatchID:       existing.MatchID,
			AlreadySwiped: true,
			Status:        existing.Status,
		}, nil
	}

	// the other party swiped first; a pending record means this swipe
	// is the reciprocation that completes the match
	if existing.Status == models.MatchStatusPending {
		updated, err := s.Matches.UpdateStatus(ctx, existing.MatchID, models.MatchStatusAccepted)
		if err != nil {
			return nil, err
		}
		s.Log.Info("mutual match",
			zap.String("matchId", updated.MatchID),
			zap.String("swiperId", swiperID),
			zap.String("swipedId", swipedID))
		return &SwipeResult{IsMatch: true, MatchID: updated.MatchID, Status: updated.Status}, nil
	}

	return &SwipeResult{
		IsMatch: existing.Status == models.MatchStatusAccepted,
		MatchID: existing.MatchID,
		Status:  existing.Status,
	}, nil
}

// SetMatchStatus lets the invitee accept or reject a pending incoming
// request. A requester who is not the swiped party on the record gets
// not-found rather than forbidden, so record existence is not leaked.
func (s *MatchService) SetMatchStatus(ctx context.Context, matchID, newStatus, requesterID string) (*models.Match, error) {
	if !models.AllowedMatchStatusUpdate(newStatus) {
		return nil, apperror.NewInvalidInput("status must be 'accepted' or 'rejected'", nil)
	}

	match, err := s.Matches.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if match.SwipedID != requesterID {
		return nil, apperror.NewNotFound("match", matchID)
	}

	updated, err := s.Matches.UpdateStatus(ctx, matchID, newStatus)
	if err != nil {
		return nil, err
	}
	s.Log.Info("match status set",
		zap.String("matchId", matchID),
		zap.String("status", newStatus))
	return updated, nil
}

// DeleteMatch undoes a swipe. The lookup and the authorization check
// are combined: a requester who is not a party sees the same
// not-found as a missing record, and nothing is deleted.
func (s *MatchService) DeleteMatch(ctx context.Context, matchID, requesterID string) error {
	match, err := s.Matches.GetByID(ctx, matchID)
	if err != nil {
		return err
	}
	if !match.HasParty(requesterID) {
		return apperror.NewNotFound("match", matchID)
	}

	if err := s.Matches.Delete(ctx, matchID); err != nil {
		return err
	}
	s.Log.Info("match deleted",
		zap.String("matchId", matchID),
		zap.String("requesterId", requesterID))
	return nil
}

// ListMatchesForUser returns every record where profileID is a party,
// in either role. Callers partition the list into incoming pending
// requests and connections.
func (s *MatchService) ListMatchesForUser(ctx context.Context, profileID string) ([]models.Match, error) {
	return s.Matches.ListForProfile(ctx, profileID)
}
