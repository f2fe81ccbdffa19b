package services

import (
	"context"
	"strings"
	"time"

	"cozyconnect_server/apperror"
	"cozyconnect_server/logger"
	"cozyconnect_server/models"

	"go.uber.org/zap"
)

// FeedbackStore persists feedback entries.
type FeedbackStore interface {
	Put(ctx context.Context, feedback models.Feedback) error
}

// FeedbackDynamoStore implements FeedbackStore on the Feedback table.
type FeedbackDynamoStore struct {
	Dynamo *DynamoService
}

func (s *FeedbackDynamoStore) Put(ctx context.Context, feedback models.Feedback) error {
	return s.Dynamo.PutItem(ctx, models.FeedbackTable, feedback)
}

// FeedbackService records feedback-page submissions.
type FeedbackService struct {
	Store FeedbackStore
	Log   logger.Logger
}

func (fs *FeedbackService) SubmitFeedback(ctx context.Context, name, email, text string, rating int) (*models.Feedback, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperror.NewInvalidInput("feedback text is required", nil)
	}

	feedback := models.Feedback{
		FeedbackID: newRecordID(),
		Name:       name,
		Email:      email,
		Feedback:   text,
		Rating:     rating,
		Date:       time.Now().UTC().Format("01/02/2006"),
	}

	if err := fs.Store.Put(ctx, feedback); err != nil {
		return nil, err
	}
	fs.Log.Info("feedback recorded", zap.String("feedbackId", feedback.FeedbackID))
	return &feedback, nil
}
