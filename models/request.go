package models

import "time"

// RequestStatus tracks the lifecycle of a feedback request.
type RequestStatus string

const (
	RequestPending   RequestStatus = "pending"
	RequestCompleted RequestStatus = "completed"
	RequestRejected  RequestStatus = "rejected"
)

// Final reports whether s is a terminal status a target may set.
func (s RequestStatus) Final() bool {
	return s == RequestCompleted || s == RequestRejected
}

// FeedbackRequest is an employee asking a manager for feedback.
type FeedbackRequest struct {
	ID            int64         `db:"id" json:"id"`
	RequesterID   int64         `db:"requester_id" json:"requester_id"`
	TargetID      int64         `db:"target_id" json:"target_id"`
	Message       *string       `db:"message" json:"message"`
	Status        RequestStatus `db:"status" json:"status"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at" json:"updated_at"`
	RequesterName string        `json:"requester_name,omitempty"`
	TargetName    string        `json:"target_name,omitempty"`
}

// PeerFeedback is feedback exchanged between colleagues.
// FromUserID is nil in any view handed to the recipient of anonymous feedback.
type PeerFeedback struct {
	ID             int64     `db:"id" json:"id"`
	FromUserID     *int64    `db:"from_user_id" json:"from_user_id"`
	ToUserID       int64     `db:"to_user_id" json:"to_user_id"`
	Strengths      string    `db:"strengths" json:"strengths"`
	AreasToImprove string    `db:"areas_to_improve" json:"areas_to_improve"`
	Sentiment      Sentiment `db:"sentiment" json:"sentiment"`
	IsAnonymous    bool      `db:"is_anonymous" json:"is_anonymous"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// Anonymized returns a copy with the author withheld when the feedback is anonymous.
func (p PeerFeedback) Anonymized() PeerFeedback {
	if p.IsAnonymous {
		p.FromUserID = nil
	}
	return p
}

// Notification is an in-app message owned by a single user.
type Notification struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Message   string    `db:"message" json:"message"`
	Type      string    `db:"type" json:"type"`
	Read      bool      `db:"is_read" json:"is_read"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Notification types.
const (
	NotifyFeedback        = "feedback"
	NotifyFeedbackRequest = "feedback_request"
	NotifyRequestStatus   = "request_status"
	NotifyPeerFeedback    = "peer_feedback"
	NotifyComment         = "comment"
	NotifyTeam            = "team"
)
