package mapping

import (
	"database/sql"

	"github.com/SscSPs/splitledger/internal/core/domain"
	"github.com/SscSPs/splitledger/internal/models"
)

// ToModelMember converts a domain Member to a model Member
func ToModelMember(d domain.Member) models.Member {
	return models.Member{
		MemberID:     d.MemberID,
		WorkplaceID:  d.WorkplaceID,
		Name:         d.Name,
		LinkedUserID: toNullString(d.LinkedUserID),
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainMember converts a model Member to a domain Member
func ToDomainMember(m models.Member) domain.Member {
	return domain.Member{
		MemberID:     m.MemberID,
		WorkplaceID:  m.WorkplaceID,
		Name:         m.Name,
		LinkedUserID: fromNullString(m.LinkedUserID),
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainMemberSlice converts a slice of model Members to a slice of domain Members
func ToDomainMemberSlice(ms []models.Member) []domain.Member {
	ds := make([]domain.Member, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainMember(m)
	}
	return ds
}

func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
