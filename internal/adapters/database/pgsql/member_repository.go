package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/splitledger/internal/core/domain"
	portsrepo "github.com/SscSPs/splitledger/internal/core/ports/repositories"
	"github.com/SscSPs/splitledger/internal/models"
	"github.com/SscSPs/splitledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxMemberRepository struct {
	BaseRepository
}

func newPgxMemberRepository(pool *pgxpool.Pool) portsrepo.MemberRepositoryFacade {
	return &PgxMemberRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.MemberRepositoryFacade = (*PgxMemberRepository)(nil)

// ListMembers returns the current roster of a workplace.
func (r *PgxMemberRepository) ListMembers(ctx context.Context, workplaceID string) ([]domain.Member, error) {
	query := `
		SELECT member_id, workplace_id, name, linked_user_id,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM members
		WHERE workplace_id = $1
		ORDER BY name, member_id;
	`
	rows, err := r.Pool.Query(ctx, query, workplaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query members for workplace %s: %w", workplaceID, err)
	}

	members, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Member, error) {
		var m models.Member
		err := row.Scan(
			&m.MemberID,
			&m.WorkplaceID,
			&m.Name,
			&m.LinkedUserID,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read members: %w", err)
	}
	return mapping.ToDomainMemberSlice(members), nil
}
