package models

// Feedback is a free-form rating submitted from the feedback page.
type Feedback struct {
	FeedbackID string `dynamodbav:"feedbackId" json:"feedbackId"`
	Name       string `dynamodbav:"name,omitempty" json:"name,omitempty"`
	Email      string `dynamodbav:"email,omitempty" json:"email,omitempty"`
	Feedback   string `dynamodbav:"feedback" json:"feedback"`
	Rating     int    `dynamodbav:"rating,omitempty" json:"rating,omitempty"`
	Date       string `dynamodbav:"date" json:"date"`
}

// FeedbackTable is the record-store table for feedback entries
const FeedbackTable = "Feedback"
