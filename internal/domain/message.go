package domain

// MaxMessageLength is the longest message_text accepted, in characters.
const MaxMessageLength = 254

// Message is a text post. PostedBy references the account that existed at
// creation time; TimePostedEpoch is supplied by the caller.
type Message struct {
	MessageID       int    `json:"message_id" db:"message_id"`
	PostedBy        int    `json:"posted_by" db:"posted_by"`
	MessageText     string `json:"message_text" db:"message_text"`
	TimePostedEpoch int64  `json:"time_posted_epoch" db:"time_posted_epoch"`
}
