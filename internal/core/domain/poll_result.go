package domain

import "github.com/google/uuid"

type PollOptionResult struct {
	OptionID  uuid.UUID `json:"option_id"`
	Text      string    `json:"text"`
	VoteCount int64     `json:"vote_count"`
}

// PollResults is the read model for a single poll: live counts per
// option plus the caller's own selection, if any.
type PollResults struct {
	Poll          *Poll              `json:"poll"`
	Options       []PollOptionResult `json:"options"`
	VotedOptionID *uuid.UUID         `json:"user_voted_option_id,omitempty"`
}
