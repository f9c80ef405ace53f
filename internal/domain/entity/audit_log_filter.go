package entity

import "github.com/google/uuid"

// AuditLogFilter is a domain-level filter for querying audit logs.
// Page is 1-based.
type AuditLogFilter struct {
	Action string
	UserID *uuid.UUID
	Page   int
	Limit  int
}

// Offset returns the row offset of the requested page
func (f AuditLogFilter) Offset() int {
	if f.Page < 1 {
		return 0
	}
	return (f.Page - 1) * f.Limit
}
