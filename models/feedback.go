package models

import "time"

// Sentiment is the qualitative tag on a feedback item.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// Sentiments lists every sentiment category in display order.
var Sentiments = []Sentiment{SentimentPositive, SentimentNeutral, SentimentNegative}

// Valid reports whether s is a known sentiment.
func (s Sentiment) Valid() bool {
	switch s {
	case SentimentPositive, SentimentNeutral, SentimentNegative:
		return true
	}
	return false
}

// Feedback is structured feedback written by a manager for an employee.
// EmployeeName/EmployeeEmail and ManagerName are filled only by list queries that join users.
type Feedback struct {
	ID             int64     `db:"id" json:"id"`
	ManagerID      int64     `db:"manager_id" json:"manager_id"`
	EmployeeID     int64     `db:"employee_id" json:"employee_id"`
	Strengths      string    `db:"strengths" json:"strengths"`
	AreasToImprove string    `db:"areas_to_improve" json:"areas_to_improve"`
	Sentiment      Sentiment `db:"sentiment" json:"sentiment"`
	Acknowledged   bool      `db:"acknowledged" json:"acknowledged"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
	Tags           []Tag     `json:"tags"`

	EmployeeName  string `json:"employee_name,omitempty"`
	EmployeeEmail string `json:"employee_email,omitempty"`
	ManagerName   string `json:"manager_name,omitempty"`
}

// FeedbackContent is the author-supplied part of a feedback item.
type FeedbackContent struct {
	Strengths      string
	AreasToImprove string
	Sentiment      Sentiment
}

// FeedbackPatch is a partial update; nil fields are left untouched.
type FeedbackPatch struct {
	Strengths      *string
	AreasToImprove *string
	Sentiment      *Sentiment
}

// Empty reports whether the patch changes nothing.
func (p FeedbackPatch) Empty() bool {
	return p.Strengths == nil && p.AreasToImprove == nil && p.Sentiment == nil
}

// Tag is a label that can be attached to many feedback items.
type Tag struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Comment is a markdown comment on a feedback item.
type Comment struct {
	ID          int64     `db:"id" json:"id"`
	FeedbackID  int64     `db:"feedback_id" json:"feedback_id"`
	UserID      int64     `db:"user_id" json:"user_id"`
	Content     string    `db:"content" json:"content"`
	ContentHTML string    `json:"content_html,omitempty"`
	AuthorName  string    `json:"author_name,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
