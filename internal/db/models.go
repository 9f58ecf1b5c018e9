package db

import (
	"database/sql"
	"time"
)

// Brief is a stored campaign brief. KeySellingPoints is a JSON array.
type Brief struct {
	ID               string
	ProductName      string
	Description      string
	TargetAudience   string
	CampaignGoals    string
	Tone             string
	KeySellingPoints string
	Platform         sql.NullString
	AdditionalNotes  sql.NullString
	CreatedAt        time.Time
}

// Ad is one generation result. Variations is a JSON array of strings and
// BrandVoice a JSON object; ParentID is set for regenerated ads.
type Ad struct {
	ID          string
	BriefID     string
	ParentID    sql.NullString
	AdType      string
	Variations  string
	BrandVoice  string
	FailedCount int64
	CreatedAt   time.Time
}

// Feedback is client feedback on an ad. Processed is the JSON analysis.
type Feedback struct {
	ID        string
	AdID      string
	BriefID   string
	Feedback  string
	Score     sql.NullInt64
	Processed string
	CreatedAt time.Time
}

// BrandVoice is a generated voice guide keyed by sanitized product name.
type BrandVoice struct {
	Key         string
	ProductName string
	Tone        string
	Guide       string
	Version     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Reflection is the model's reflection on one piece of feedback. Insights
// is the decoded JSON object, empty when the answer could not be parsed.
type Reflection struct {
	ID         string
	FeedbackID string
	AdID       string
	BriefID    string
	Reflection string
	Insights   string
	CreatedAt  time.Time
}

// ClientStrategy accumulates reflection insights for one brief. Strategy
// is a JSON object.
type ClientStrategy struct {
	BriefID     string
	Strategy    string
	UpdateCount int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
