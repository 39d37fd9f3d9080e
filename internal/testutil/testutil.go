package testutil

import (
	"crabigator/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestToken generates a token with a valid shape. A UUID is exactly
// the 36-character hyphenated format the shape check expects.
func NewTestToken() string {
	return uuid.NewString()
}

// NewTestCredential creates a test credential
func NewTestCredential(userID int64) *domain.Credential {
	return &domain.Credential{
		UserID:   userID,
		APIToken: NewTestToken(),
	}
}

// NewTestProfile creates a test WaniKani profile
func NewTestProfile(username string, level int) *domain.UserProfile {
	return &domain.UserProfile{
		ID:          "cafe0000-0000-0000-0000-000000000000",
		Username:    username,
		ProfileURL:  "https://www.wanikani.com/users/" + username,
		Level:       level,
		MaxLevel:    60,
		Subscribed:  true,
		LastUpdate:  "2024-03-01T10:00:00.000000Z",
		MemberSince: "2019-11-24T00:00:00.000000Z",
	}
}

// NewTestSummary creates a test summary
func NewTestSummary(lessons, reviews, upcoming []int64) *domain.Summary {
	return &domain.Summary{
		LastUpdate:       "2024-03-01T10:00:00.000000Z",
		AvailableLessons: lessons,
		AvailableReviews: reviews,
		UpcomingReviews:  upcoming,
	}
}
