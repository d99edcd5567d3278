package models

import "database/sql"

// Member is a row of the members table.
type Member struct {
	MemberID     string         `db:"member_id"`
	WorkplaceID  string         `db:"workplace_id"`
	Name         string         `db:"name"`
	LinkedUserID sql.NullString `db:"linked_user_id"`
	AuditFields
}
