package domain

import (
	"errors"
)

var (
	MesaageUserNotAllowed       = "user not allowed"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "failed to token invalid"

	ErrUserNotAllowed = errors.New("user not allowed")
	ErrTokenNotFound  = errors.New("failed to token not found")
	ErrTokenInvalid   = errors.New("token invalid")
	ErrTokenExpired   = errors.New("token expired")
)

type (
	// InsertResult mirrors the acknowledgment the store returns for an insert.
	InsertResult struct {
		Acknowledged bool `json:"acknowledged"`
		InsertedID   any  `json:"insertedId"`
	}

	UpdateResult struct {
		Acknowledged  bool  `json:"acknowledged"`
		MatchedCount  int64 `json:"matchedCount"`
		ModifiedCount int64 `json:"modifiedCount"`
		UpsertedCount int64 `json:"upsertedCount"`
		UpsertedID    any   `json:"upsertedId"`
	}

	DeleteResult struct {
		Acknowledged bool  `json:"acknowledged"`
		DeletedCount int64 `json:"deletedCount"`
	}

	MessageResponse struct {
		Message string `json:"message"`
	}
)
