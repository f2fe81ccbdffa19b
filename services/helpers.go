package services

import (
	"errors"

	"cozyconnect_server/apperror"

	"github.com/google/uuid"
)

func isNotFound(err error) bool {
	return errors.Is(err, apperror.ErrNotFound)
}

func newRecordID() string {
	return uuid.New().String()
}
