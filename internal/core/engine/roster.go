package engine

import (
	"fmt"
	"strings"

	"github.com/SscSPs/splitledger/internal/apperrors"
	"github.com/SscSPs/splitledger/internal/core/domain"
)

// minNameMatchLength keeps one-letter names from matching every description.
const minNameMatchLength = 2

// roster indexes the known members for payer attribution.
type roster struct {
	members []domain.Member
	byID    map[string]domain.Member
	byUser  map[string]domain.Member
}

func newRoster(members []domain.Member) *roster {
	r := &roster{
		members: members,
		byID:    make(map[string]domain.Member, len(members)),
		byUser:  make(map[string]domain.Member, len(members)),
	}
	for _, m := range members {
		r.byID[m.MemberID] = m
		if m.LinkedUserID != nil && *m.LinkedUserID != "" {
			r.byUser[*m.LinkedUserID] = m
		}
	}
	return r
}

func (r *roster) member(memberID string) (domain.Member, bool) {
	m, ok := r.byID[memberID]
	return m, ok
}

// selfID is the participant ID of the caller: the member linked to selfUserID,
// or the raw identity when the caller has no roster entry.
func (r *roster) selfID(selfUserID string) string {
	if m, ok := r.byUser[selfUserID]; ok {
		return m.MemberID
	}
	return selfUserID
}

// selfIDs lists every identity the caller may appear under as a payer.
func (r *roster) selfIDs(selfUserID string) []string {
	return []string{selfUserID, r.selfID(selfUserID)}
}

// payerAttribution is the outcome of resolving who paid a transaction.
type payerAttribution struct {
	MemberID   string
	Confidence domain.AttributionConfidence
	Issue      *domain.Issue
}

// resolvePayer maps the payer identity of tx onto a member. The linked identity
// and the member ID are authoritative; matching a member name inside the
// description is a degraded fallback and is always reported. The caller's own
// member (self) is never picked by that fallback.
func (r *roster) resolvePayer(tx domain.Transaction, self string) payerAttribution {
	payer := tx.Payer()
	if m, ok := r.byUser[payer]; ok {
		return payerAttribution{MemberID: m.MemberID, Confidence: domain.ConfidenceLinked}
	}
	if m, ok := r.byID[payer]; ok {
		return payerAttribution{MemberID: m.MemberID, Confidence: domain.ConfidenceLinked}
	}

	if candidates := r.matchDescription(tx.Description, self); len(candidates) > 0 {
		names := make([]string, len(candidates))
		for i, c := range candidates {
			names[i] = c.Name
		}
		err := fmt.Errorf("%w: payer %q of transaction %s matched by description to %s",
			apperrors.ErrAmbiguousAttribution, payer, tx.TransactionID, strings.Join(names, ", "))
		return payerAttribution{
			MemberID:   candidates[0].MemberID,
			Confidence: domain.ConfidenceDegraded,
			Issue: &domain.Issue{
				Kind:          domain.IssueAmbiguousAttribution,
				TransactionID: tx.TransactionID,
				MemberID:      candidates[0].MemberID,
				Message:       err.Error(),
				Err:           err,
			},
		}
	}

	err := fmt.Errorf("%w: payer %q of transaction %s is not in the roster", apperrors.ErrReferentialIntegrity, payer, tx.TransactionID)
	return payerAttribution{
		MemberID:   payer,
		Confidence: domain.ConfidencePlaceholder,
		Issue: &domain.Issue{
			Kind:          domain.IssueReferentialIntegrity,
			TransactionID: tx.TransactionID,
			MemberID:      payer,
			Message:       err.Error(),
			Err:           err,
		},
	}
}

// matchDescription returns roster members other than exclude whose name
// occurs in description, in roster order.
func (r *roster) matchDescription(description string, exclude string) []domain.Member {
	text := strings.ToLower(description)
	if text == "" {
		return nil
	}
	var out []domain.Member
	for _, m := range r.members {
		name := strings.ToLower(strings.TrimSpace(m.Name))
		if m.MemberID == exclude || len(name) < minNameMatchLength {
			continue
		}
		if strings.Contains(text, name) {
			out = append(out, m)
		}
	}
	return out
}
