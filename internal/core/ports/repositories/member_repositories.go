package repositories

import (
	"context"

	"github.com/SscSPs/splitledger/internal/core/domain"
)

// MemberReader defines read operations for the member roster
type MemberReader interface {
	// ListMembers returns the current roster of a workplace.
	ListMembers(ctx context.Context, workplaceID string) ([]domain.Member, error)
}

// MemberRepositoryFacade combines all member-related repository interfaces
type MemberRepositoryFacade interface {
	MemberReader
}
