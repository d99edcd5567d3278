package dto

import "github.com/SscSPs/splitledger/internal/core/domain"

// IssueResponse reports a record that was skipped or booked with a caveat.
type IssueResponse struct {
	Kind          domain.IssueKind `json:"kind"`
	TransactionID string           `json:"transactionID,omitempty"`
	AccountID     string           `json:"accountID,omitempty"`
	MemberID      string           `json:"memberID,omitempty"`
	Message       string           `json:"message"`
}

// ToIssueResponses converts engine issues for the wire. It never returns nil.
func ToIssueResponses(issues []domain.Issue) []IssueResponse {
	res := make([]IssueResponse, len(issues))
	for i, is := range issues {
		res[i] = IssueResponse{
			Kind:          is.Kind,
			TransactionID: is.TransactionID,
			AccountID:     is.AccountID,
			MemberID:      is.MemberID,
			Message:       is.Message,
		}
	}
	return res
}
