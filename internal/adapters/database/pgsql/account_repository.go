package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/splitledger/internal/core/domain"
	portsrepo "github.com/SscSPs/splitledger/internal/core/ports/repositories"
	"github.com/SscSPs/splitledger/internal/models"
	"github.com/SscSPs/splitledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// ListAccounts retrieves every account of a workplace ordered by name.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, workplaceID string) ([]domain.Account, error) {
	query := `
		SELECT account_id, workplace_id, name, account_type, currency_code, initial_balance,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM accounts
		WHERE workplace_id = $1
		ORDER BY name, account_id;
	`
	rows, err := r.Pool.Query(ctx, query, workplaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts for workplace %s: %w", workplaceID, err)
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		var m models.Account
		if err := rows.Scan(
			&m.AccountID,
			&m.WorkplaceID,
			&m.Name,
			&m.AccountType,
			&m.CurrencyCode,
			&m.InitialBalance,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}

	return mapping.ToDomainAccountSlice(accounts), nil
}
