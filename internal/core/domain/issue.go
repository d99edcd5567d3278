package domain

import (
	"errors"

	"github.com/SscSPs/splitledger/internal/apperrors"
)

// IssueKind classifies a non-fatal problem found while processing the log.
type IssueKind string

const (
	IssueValidation           IssueKind = "VALIDATION_ERROR"
	IssueReferentialIntegrity IssueKind = "REFERENTIAL_INTEGRITY_WARNING"
	IssueCurrencyFallback     IssueKind = "CURRENCY_FALLBACK"
	IssueAmbiguousAttribution IssueKind = "AMBIGUOUS_ATTRIBUTION"
)

// Issue is a problem isolated to a single record. Issues never abort a pass.
type Issue struct {
	Kind          IssueKind `json:"kind"`
	TransactionID string    `json:"transactionID,omitempty"`
	AccountID     string    `json:"accountID,omitempty"`
	MemberID      string    `json:"memberID,omitempty"`
	Message       string    `json:"message"`
	Err           error     `json:"-"`
}

func (i Issue) Error() string {
	return i.Message
}

func (i Issue) Unwrap() error {
	return i.Err
}

// IssueFromError maps an error onto the issue kind matching its sentinel.
func IssueFromError(transactionID string, err error) Issue {
	kind := IssueValidation
	switch {
	case errors.Is(err, apperrors.ErrReferentialIntegrity):
		kind = IssueReferentialIntegrity
	case errors.Is(err, apperrors.ErrAmbiguousAttribution):
		kind = IssueAmbiguousAttribution
	}
	return Issue{Kind: kind, TransactionID: transactionID, Message: err.Error(), Err: err}
}
