package wanikani

// Wire shapes of the WaniKani API v2 resources this bot consumes.
// Timestamps stay strings: the bot only ever compares or displays them.

type userEnvelope struct {
	DataUpdatedAt string   `json:"data_updated_at"`
	Data          userData `json:"data"`
}

type userData struct {
	ID                       string           `json:"id"`
	Username                 string           `json:"username"`
	ProfileURL               string           `json:"profile_url"`
	Level                    int              `json:"level"`
	StartedAt                string           `json:"started_at"`
	Subscribed               bool             `json:"subscribed"`
	Subscription             userSubscription `json:"subscription"`
	CurrentVacationStartedAt *string          `json:"current_vacation_started_at"`
}

type userSubscription struct {
	Type            string `json:"type"`
	MaxLevelGranted int    `json:"max_level_granted"`
}

type summaryEnvelope struct {
	DataUpdatedAt string      `json:"data_updated_at"`
	Data          summaryData `json:"data"`
}

type summaryData struct {
	Lessons       []reviewBucket `json:"lessons"`
	NextReviewsAt *string        `json:"next_reviews_at"`
	Reviews       []reviewBucket `json:"reviews"`
}

// reviewBucket groups subject ids by the time they become available.
type reviewBucket struct {
	AvailableAt string  `json:"available_at"`
	SubjectIDs  []int64 `json:"subject_ids"`
}

type assignmentsEnvelope struct {
	Pages pages            `json:"pages"`
	Data  []assignmentItem `json:"data"`
}

type pages struct {
	PerPage int     `json:"per_page"`
	NextURL *string `json:"next_url"`
}

type assignmentItem struct {
	Data assignmentData `json:"data"`
}

type assignmentData struct {
	SubjectType  string `json:"subject_type"`
	SRSStageName string `json:"srs_stage_name"`
}

type reviewsEnvelope struct {
	TotalCount int `json:"total_count"`
}

type levelProgressionsEnvelope struct {
	Data []levelProgressionItem `json:"data"`
}

type levelProgressionItem struct {
	ID            int64                `json:"id"`
	DataUpdatedAt string               `json:"data_updated_at"`
	Data          levelProgressionData `json:"data"`
}

type levelProgressionData struct {
	Level       int     `json:"level"`
	UnlockedAt  *string `json:"unlocked_at"`
	StartedAt   *string `json:"started_at"`
	PassedAt    *string `json:"passed_at"`
	CompletedAt *string `json:"completed_at"`
	AbandonedAt *string `json:"abandoned_at"`
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
