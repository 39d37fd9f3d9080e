package domain

// UserProfile is a WaniKani user as exposed to command handlers.
type UserProfile struct {
	ID              string
	Username        string
	ProfileURL      string
	Level           int
	MaxLevel        int
	Subscribed      bool
	LastUpdate      string
	MemberSince     string
	OnVacationSince string

	// LevelProgressions accumulates fetched level history.
	LevelProgressions []LevelProgression
}

// Summary holds the subject ids a user can act on right now or soon.
// AvailableReviews is non-empty only when the summary's data_updated_at
// equals its next_reviews_at, which signals reviews due now.
type Summary struct {
	LastUpdate       string
	AvailableLessons []int64
	AvailableReviews []int64
	UpcomingReviews  []int64
}

// LevelProgression is one entry of the level_progressions resource.
type LevelProgression struct {
	ID          int64
	Level       int
	Passed      bool
	LastUpdate  string
	UnlockedAt  string
	StartedAt   string
	PassedAt    string
	CompletedAt string
	AbandonedAt string
}

// ItemCounts tallies assignments by subject type plus burned items,
// accumulated across all assignment pages.
type ItemCounts struct {
	Radicals   int
	Kanji      int
	Vocabulary int
	Burned     int
}

// Total returns the number of learned subjects regardless of type.
func (c ItemCounts) Total() int {
	return c.Radicals + c.Kanji + c.Vocabulary
}
