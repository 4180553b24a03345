// Package queue defines message payloads exchanged over the message
// broker and the background consumer that records them.
package queue

// LayoutSavedEvent is published when a classroom layout snapshot is
// appended to a class. It carries enough for downstream consumers to
// log or notify without reading the primary store.
type LayoutSavedEvent struct {
	ClassCode string `json:"class_code"`
	DeskCount int    `json:"desk_count"`
	SeatTotal int    `json:"seat_total"`
	CreatedAt string `json:"created_at"`
}

// RosterChangedEvent is published when the roster poll detects a size
// change and regenerates the scene, since that silently discards any
// manual rearrangement done since the last generation.
type RosterChangedEvent struct {
	ClassCode    string `json:"class_code"`
	PreviousSize int    `json:"previous_size"`
	RosterSize   int    `json:"roster_size"`
	ChangedAt    string `json:"changed_at"`
}
