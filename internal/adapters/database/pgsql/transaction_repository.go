package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/splitledger/internal/apperrors"
	"github.com/SscSPs/splitledger/internal/core/domain"
	portsrepo "github.com/SscSPs/splitledger/internal/core/ports/repositories"
	"github.com/SscSPs/splitledger/internal/models"
	"github.com/SscSPs/splitledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for the transaction log.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryWithTx {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryWithTx
var _ portsrepo.TransactionRepositoryWithTx = (*PgxTransactionRepository)(nil)

const transactionColumns = `
	t.transaction_id, t.workplace_id, t.kind, t.amount, t.currency_code, t.transaction_date,
	t.description, t.source_account_id, t.destination_account_id, t.destination_amount,
	t.payer_id, t.is_shared, t.is_installment, t.series_id, t.installment_index,
	t.installment_total, t.is_settled, t.is_refund, t.deleted, t.trip_id,
	t.created_at, t.created_by, t.last_updated_at, t.last_updated_by`

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.WorkplaceID,
		&m.Kind,
		&m.Amount,
		&m.CurrencyCode,
		&m.TransactionDate,
		&m.Description,
		&m.SourceAccountID,
		&m.DestinationAccountID,
		&m.DestinationAmount,
		&m.PayerID,
		&m.IsShared,
		&m.IsInstallment,
		&m.SeriesID,
		&m.InstallmentIndex,
		&m.InstallmentTotal,
		&m.IsSettled,
		&m.IsRefund,
		&m.Deleted,
		&m.TripID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanSplit(row pgx.CollectableRow) (models.Split, error) {
	var s models.Split
	err := row.Scan(&s.TransactionID, &s.MemberID, &s.AssignedAmount, &s.IsSettled, &s.SettledAt)
	return s, err
}

// ListTransactions returns the whole log of a workplace with splits attached.
// Soft-deleted records are included; consumers decide how to treat them.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, workplaceID string) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + `
		FROM transactions t
		WHERE t.workplace_id = $1
		ORDER BY t.transaction_date, t.created_at, t.transaction_id;`

	rows, err := r.Pool.Query(ctx, query, workplaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for workplace %s: %w", workplaceID, err)
	}
	txModels, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Transaction, error) {
		return scanTransaction(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read transactions: %w", err)
	}

	splitQuery := `
		SELECT s.transaction_id, s.member_id, s.assigned_amount, s.is_settled, s.settled_at
		FROM transaction_splits s
		JOIN transactions t ON t.transaction_id = s.transaction_id
		WHERE t.workplace_id = $1
		ORDER BY s.transaction_id, s.position;`
	splitRows, err := r.Pool.Query(ctx, splitQuery, workplaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query splits for workplace %s: %w", workplaceID, err)
	}
	splits, err := pgx.CollectRows(splitRows, scanSplit)
	if err != nil {
		return nil, fmt.Errorf("failed to read splits: %w", err)
	}

	byTx := make(map[string][]models.Split, len(txModels))
	for _, s := range splits {
		byTx[s.TransactionID] = append(byTx[s.TransactionID], s)
	}

	out := make([]domain.Transaction, len(txModels))
	for i, m := range txModels {
		out[i] = mapping.ToDomainTransaction(m, byTx[m.TransactionID])
	}
	return out, nil
}

// FindTransactionByID retrieves one record and its splits.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, workplaceID string, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + `
		FROM transactions t
		WHERE t.workplace_id = $1 AND t.transaction_id = $2;`

	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, workplaceID, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}

	rows, err := r.Pool.Query(ctx, `
		SELECT transaction_id, member_id, assigned_amount, is_settled, settled_at
		FROM transaction_splits
		WHERE transaction_id = $1
		ORDER BY position;`, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query splits of transaction %s: %w", transactionID, err)
	}
	splits, err := pgx.CollectRows(rows, scanSplit)
	if err != nil {
		return nil, fmt.Errorf("failed to read splits of transaction %s: %w", transactionID, err)
	}

	tx := mapping.ToDomainTransaction(m, splits)
	return &tx, nil
}

// SaveInstallmentSeries inserts every installment and its splits in one database transaction.
func (r *PgxTransactionRepository) SaveInstallmentSeries(ctx context.Context, series []domain.Transaction) error {
	if len(series) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	// Will be ignored if transaction is committed successfully
	defer r.Rollback(ctx, tx)

	txnQuery := `
		INSERT INTO transactions (
			transaction_id, workplace_id, kind, amount, currency_code, transaction_date,
			description, source_account_id, destination_account_id, destination_amount,
			payer_id, is_shared, is_installment, series_id, installment_index,
			installment_total, is_settled, is_refund, deleted, trip_id,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24);
	`
	splitQuery := `
		INSERT INTO transaction_splits (transaction_id, member_id, position, assigned_amount, is_settled, settled_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`

	batch := &pgx.Batch{}
	for _, inst := range series {
		m, splits := mapping.ToModelTransaction(inst)
		batch.Queue(txnQuery,
			m.TransactionID,
			m.WorkplaceID,
			m.Kind,
			m.Amount,
			m.CurrencyCode,
			m.TransactionDate,
			m.Description,
			m.SourceAccountID,
			m.DestinationAccountID,
			m.DestinationAmount,
			m.PayerID,
			m.IsShared,
			m.IsInstallment,
			m.SeriesID,
			m.InstallmentIndex,
			m.InstallmentTotal,
			m.IsSettled,
			m.IsRefund,
			m.Deleted,
			m.TripID,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
		for pos, s := range splits {
			batch.Queue(splitQuery, s.TransactionID, s.MemberID, pos, s.AssignedAmount, s.IsSettled, s.SettledAt)
		}
	}

	// Close reports the first failing command of the batch
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert installment series "+series[0].SeriesID, err)
	}

	return r.Commit(ctx, tx)
}

// MarkSplitsSettled flags member splits as settled and, once none is left open,
// the transaction itself.
func (r *PgxTransactionRepository) MarkSplitsSettled(ctx context.Context, workplaceID string, transactionID string, memberIDs []string, userID string, at time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	_, err = tx.Exec(ctx, `
		UPDATE transaction_splits
		SET is_settled = TRUE, settled_at = $3
		WHERE transaction_id = $1 AND member_id = ANY($2) AND NOT is_settled;`,
		transactionID, memberIDs, at)
	if err != nil {
		return apperrors.NewAppError(500, "failed to settle splits of transaction "+transactionID, err)
	}

	tag, err := tx.Exec(ctx, `
		UPDATE transactions
		SET is_settled = is_settled OR NOT EXISTS (
		        SELECT 1 FROM transaction_splits
		        WHERE transaction_id = $2 AND NOT is_settled
		    ),
		    last_updated_at = $3,
		    last_updated_by = $4
		WHERE workplace_id = $1 AND transaction_id = $2 AND NOT deleted;`,
		workplaceID, transactionID, at, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update transaction "+transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
	}

	return r.Commit(ctx, tx)
}
