// Package queue defines the message payloads exchanged over the broker and
// the consumer that turns them into audit log lines.
package queue

// EntityChangedQueue is the durable queue every write is announced on.
const EntityChangedQueue = "backoffice.entity_changed"

// Actions carried by EntityChangedEvent.
const (
	ActionCreated       = "created"
	ActionUpdated       = "updated"
	ActionDeleted       = "deleted"
	ActionStatusChanged = "status_changed"
	ActionFileAttached  = "file_attached"
)

// EntityChangedEvent is published after a create, update or delete has been
// committed.  It carries enough to write an audit trail without reading the
// primary database.
type EntityChangedEvent struct {
	Entity     string `json:"entity"`
	Action     string `json:"action"`
	EntityID   uint64 `json:"entity_id"`
	Label      string `json:"label,omitempty"`
	Actor      string `json:"actor,omitempty"`
	Detail     string `json:"detail,omitempty"`
	OccurredAt string `json:"occurred_at"`
}
