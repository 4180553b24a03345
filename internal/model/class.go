package model

import (
	"encoding/json"
	"time"
)

// Class is the per-class record persisted in the key-value store under
// `class:<CODE>`. It holds the roster students submit themselves into
// and the append-only sequence of saved layouts.
//
// Fields:
//  Code     – six character join code, unique across classes.
//  Name     – display name chosen by the teacher.
//  Students – roster entries in submission order.
//  Layouts  – saved layout snapshots, oldest first. Append-only:
//             saving never overwrites an earlier layout.
type Class struct {
	Code     string    `json:"code"`
	Name     string    `json:"name"`
	Students []Student `json:"students"`
	Layouts  []Layout  `json:"layouts"`
}

// Roster returns the student display names in roster order.
func (c *Class) Roster() []string {
	names := make([]string, 0, len(c.Students))
	for _, s := range c.Students {
		names = append(names, s.Name)
	}
	return names
}

// Student is one roster entry: the display name plus the seating
// preferences and comments submitted with it.
type Student struct {
	Name        string    `json:"name"`
	Preferences []string  `json:"preferences"`
	Comments    string    `json:"comments,omitempty"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// Layout is one immutable saved snapshot of a scene. Data is the scene
// snapshot blob; only the canvas package interprets it. DeskCount caches
// the table count at save time so lists can show it without decoding.
type Layout struct {
	Data      json.RawMessage `json:"data"`
	CreatedAt time.Time       `json:"createdAt"`
	DeskCount int             `json:"deskCount"`
}
