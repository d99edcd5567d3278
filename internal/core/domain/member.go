package domain

// Member is a participant in shared expenses. LinkedUserID, when set, is the
// external identity the member corresponds to and is the only reliable way to
// attribute a payer.
type Member struct {
	MemberID     string  `json:"memberID"`
	WorkplaceID  string  `json:"workplaceID"`
	Name         string  `json:"name"`
	LinkedUserID *string `json:"linkedUserID,omitempty"`
	AuditFields
}

// IsLinkedTo reports whether the member is linked to the given external identity.
func (m Member) IsLinkedTo(userID string) bool {
	return userID != "" && m.LinkedUserID != nil && *m.LinkedUserID == userID
}

// PlaceholderMember builds the synthetic roster entry used when a member referenced
// by historical data is no longer in the roster.
func PlaceholderMember(memberID string) Member {
	return Member{MemberID: memberID, Name: "Unknown member"}
}
