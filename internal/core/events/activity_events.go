package events

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

const EventTypeActivity = "activity.recorded"

type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

var activitySeq atomic.Uint64

// Activity records one successful mutation of an owned record. Seq grows with
// every activity built in this process and orders activities sharing a
// timestamp.
type Activity struct {
	ID       string    `json:"id"`
	Kind     string    `json:"kind"`
	Action   Action    `json:"action"`
	RecordID int64     `json:"recordId"`
	OwnerID  int64     `json:"-"`
	At       time.Time `json:"occurredAt"`
	Seq      uint64    `json:"-"`
}

func NewActivity(kind string, action Action, recordID, ownerID int64) *Activity {
	return &Activity{
		ID:       uuid.New().String(),
		Kind:     kind,
		Action:   action,
		RecordID: recordID,
		OwnerID:  ownerID,
		At:       time.Now().UTC(),
		Seq:      activitySeq.Add(1),
	}
}

func (a *Activity) EventType() string     { return EventTypeActivity }
func (a *Activity) EventID() string       { return a.ID }
func (a *Activity) OccurredAt() time.Time { return a.At }

// Before reports whether a happened before b.
func (a *Activity) Before(b *Activity) bool {
	if !a.At.Equal(b.At) {
		return a.At.Before(b.At)
	}
	return a.Seq < b.Seq
}
