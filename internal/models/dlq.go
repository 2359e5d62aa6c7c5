package models

import (
	"time"
)

type FailedMessage struct {
	Payload    []byte    `json:"payload"`
	Timestamp  time.Time `json:"timestamp"`
	CauseError error     `json:"-"`

	// Error is a string representation of CauseError
	Error string `json:"error"`
}

func NewFailedMessage(payload []byte, ts time.Time, cause error) FailedMessage {
	return FailedMessage{
		Payload:    payload,
		Timestamp:  ts,
		CauseError: cause,
	}
}
