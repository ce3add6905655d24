package models

import "time"

// AuditAction names the kind of change an audit entry records.
type AuditAction string

const (
	AuditActionCreated          AuditAction = "created"
	AuditActionUpdated          AuditAction = "updated"
	AuditActionDeleted          AuditAction = "deleted"
	AuditActionQuantityAdjusted AuditAction = "quantity_adjusted"
)

// Valid reports whether a is one of the known actions.
func (a AuditAction) Valid() bool {
	switch a {
	case AuditActionCreated, AuditActionUpdated, AuditActionDeleted, AuditActionQuantityAdjusted:
		return true
	}
	return false
}

// AuditLogEntry is an immutable record of one inventory change. Item and
// actor fields are copies taken when the change happened, so later renames
// or deletions do not rewrite history.
type AuditLogEntry struct {
	ID       string      `json:"id"`
	ItemID   string      `json:"itemId"`
	ItemName string      `json:"itemName"`
	Action   AuditAction `json:"action"`

	// Set for quantity_adjusted only.
	PreviousQuantity *float64 `json:"previousQuantity,omitempty"`
	NewQuantity      *float64 `json:"newQuantity,omitempty"`
	Adjustment       *float64 `json:"adjustment,omitempty"`
	Reason           string   `json:"reason,omitempty"`

	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	Timestamp time.Time `json:"timestamp"`
	Details   string    `json:"details,omitempty"`
}

// AuditQuery filters the audit page.
type AuditQuery struct {
	Search string      `form:"search"`
	Action AuditAction `form:"action"`
}

// Actor identifies who performed an action. It is copied by value into
// audit entries.
type Actor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SystemActor attributes changes made by tooling rather than a signed-in user.
var SystemActor = Actor{ID: "system", Name: "System"}
