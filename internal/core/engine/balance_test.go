package engine_test

import (
	"testing"
	"time"

	"github.com/SscSPs/splitledger/internal/apperrors"
	"github.com/SscSPs/splitledger/internal/core/domain"
	"github.com/SscSPs/splitledger/internal/core/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const self = "user-self"

func TestReconstruct_BasicEffects(t *testing.T) {
	accounts := []domain.Account{account("A", "BRL", "1000.00"), account("B", "BRL", "0")}
	refund := expense("t4", "A", "20.00", day(2024, 1, 4))
	refund.IsRefund = true
	incomeRefund := income("t5", "B", "5.00", day(2024, 1, 5))
	incomeRefund.IsRefund = true

	txs := []domain.Transaction{
		expense("t1", "A", "100.00", day(2024, 1, 1)),
		income("t2", "A", "50.50", day(2024, 1, 2)),
		transfer("t3", "A", "B", "200.00", day(2024, 1, 3)),
		refund,
		incomeRefund,
	}

	res := engine.Reconstruct(accounts, txs, engine.ReconstructOptions{SelfUserID: self})

	assert.Empty(t, res.Issues)
	assert.True(t, dec("770.50").Equal(balanceOf(res.Accounts, "A")), "A = %s", balanceOf(res.Accounts, "A"))
	assert.True(t, dec("195.00").Equal(balanceOf(res.Accounts, "B")), "B = %s", balanceOf(res.Accounts, "B"))
}

func TestReconstruct_IgnoresStoredBalanceAndDoesNotMutateInput(t *testing.T) {
	acc := account("A", "BRL", "100")
	acc.Balance = dec("99999")
	accounts := []domain.Account{acc}
	txs := []domain.Transaction{expense("t1", "A", "10", day(2024, 1, 1))}

	res := engine.Reconstruct(accounts, txs, engine.ReconstructOptions{})

	assert.True(t, dec("90").Equal(res.Accounts[0].Balance))
	assert.True(t, dec("99999").Equal(accounts[0].Balance), "input account must not be mutated")
}

func TestReconstruct_Idempotent(t *testing.T) {
	accounts := []domain.Account{account("A", "BRL", "1000"), account("B", "USD", "10")}
	txs := []domain.Transaction{
		expense("t1", "A", "12.34", day(2024, 2, 1)),
		transfer("t2", "A", "B", "100", day(2024, 2, 2)),
		transfer("t3", "A", "Z", "1", day(2024, 2, 3)),
		income("t4", "B", "3.21", day(2024, 2, 4)),
	}

	first := engine.Reconstruct(accounts, txs, engine.ReconstructOptions{})
	second := engine.Reconstruct(accounts, txs, engine.ReconstructOptions{})

	require.Len(t, second.Accounts, len(first.Accounts))
	for i := range first.Accounts {
		assert.True(t, first.Accounts[i].Balance.Equal(second.Accounts[i].Balance))
	}
	assert.Equal(t, len(first.Issues), len(second.Issues))
}

func TestReconstruct_TransferToMissingDestinationIsReversed(t *testing.T) {
	accounts := []domain.Account{account("A", "BRL", "1000.00")}
	txs := []domain.Transaction{transfer("t1", "A", "B", "100.00", day(2024, 3, 1))}

	res := engine.Reconstruct(accounts, txs, engine.ReconstructOptions{})

	assert.True(t, dec("1000.00").Equal(balanceOf(res.Accounts, "A")))
	require.Len(t, res.Issues, 1)
	assert.Equal(t, domain.IssueReferentialIntegrity, res.Issues[0].Kind)
	assert.Equal(t, "B", res.Issues[0].AccountID)
	assert.ErrorIs(t, res.Issues[0], apperrors.ErrReferentialIntegrity)
}

func TestReconstruct_TransferConservation(t *testing.T) {
	accounts := []domain.Account{account("A", "BRL", "1000"), account("B", "USD", "0")}
	tx := transfer("t1", "A", "B", "500", day(2024, 3, 1))
	tx.DestinationAmount = ptr(dec("92.31"))

	res := engine.Reconstruct(accounts, []domain.Transaction{tx}, engine.ReconstructOptions{})

	assert.Empty(t, res.Issues)
	assert.True(t, dec("500").Equal(balanceOf(res.Accounts, "A")))
	assert.True(t, dec("92.31").Equal(balanceOf(res.Accounts, "B")))
}

func TestReconstruct_CrossCurrencyFallbackIsFlagged(t *testing.T) {
	accounts := []domain.Account{account("A", "BRL", "1000"), account("B", "USD", "0")}
	txs := []domain.Transaction{transfer("t1", "A", "B", "100", day(2024, 3, 1))}

	res := engine.Reconstruct(accounts, txs, engine.ReconstructOptions{})

	assert.True(t, dec("900").Equal(balanceOf(res.Accounts, "A")))
	assert.True(t, dec("100").Equal(balanceOf(res.Accounts, "B")))
	require.Len(t, res.Issues, 1)
	assert.Equal(t, domain.IssueCurrencyFallback, res.Issues[0].Kind)
}

func TestReconstruct_SkipsBadRecordsAndContinues(t *testing.T) {
	accounts := []domain.Account{account("A", "BRL", "100")}
	deleted := expense("t-del", "A", "50", day(2024, 1, 1))
	deleted.Deleted = true

	txs := []domain.Transaction{
		expense("t-zero", "A", "0", day(2024, 1, 1)),
		expense("t-neg", "A", "-5", day(2024, 1, 1)),
		deleted,
		expense("t-missing", "NOPE", "10", day(2024, 1, 1)),
		income("t-missing-income", "NOPE", "10", day(2024, 1, 1)),
		expense("t-ok", "A", "10", day(2024, 1, 2)),
	}

	res := engine.Reconstruct(accounts, txs, engine.ReconstructOptions{})

	assert.True(t, dec("90").Equal(balanceOf(res.Accounts, "A")))
	require.Len(t, res.Issues, 4)
	assert.Equal(t, domain.IssueValidation, res.Issues[0].Kind)
	assert.Equal(t, "t-zero", res.Issues[0].TransactionID)
	assert.Equal(t, domain.IssueValidation, res.Issues[1].Kind)
	assert.Equal(t, domain.IssueReferentialIntegrity, res.Issues[2].Kind)
	assert.Equal(t, domain.IssueReferentialIntegrity, res.Issues[3].Kind)
}

func TestReconstruct_ThirdPartyAndFloating(t *testing.T) {
	accounts := []domain.Account{account("A", "BRL", "100")}

	paidByFriend := expense("t1", "A", "40", day(2024, 1, 1))
	paidByFriend.PayerID = ptr("user-friend")

	paidBySelf := expense("t2", "A", "10", day(2024, 1, 1))
	paidBySelf.PayerID = ptr(self)
	paidBySelf.Splits = []domain.Split{split("m-friend", "5")}

	floatingShared := expense("t3", "", "30", day(2024, 1, 1))
	floatingShared.IsShared = true

	floatingInstallment := expense("t4", "", "30", day(2024, 1, 1))
	floatingInstallment.IsInstallment = true
	floatingInstallment.InstallmentIndex = 1
	floatingInstallment.InstallmentTotal = 3

	res := engine.Reconstruct(accounts, []domain.Transaction{paidByFriend, paidBySelf, floatingShared, floatingInstallment},
		engine.ReconstructOptions{SelfUserID: self})

	assert.Empty(t, res.Issues)
	assert.True(t, dec("90").Equal(balanceOf(res.Accounts, "A")), "A = %s", balanceOf(res.Accounts, "A"))
}

func TestReconstruct_CutoffIsInclusiveEndOfDay(t *testing.T) {
	accounts := []domain.Account{account("A", "BRL", "100")}
	txs := []domain.Transaction{
		expense("t1", "A", "10", time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)),
		expense("t2", "A", "20", time.Date(2024, 5, 10, 23, 59, 59, 0, time.UTC)),
		expense("t3", "A", "40", time.Date(2024, 5, 11, 0, 0, 0, 0, time.UTC)),
	}
	cutoff := time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC)

	res := engine.Reconstruct(accounts, txs, engine.ReconstructOptions{Cutoff: &cutoff})

	assert.True(t, dec("70").Equal(balanceOf(res.Accounts, "A")))
}

func TestReconstruct_TimeTravelMonotonicity(t *testing.T) {
	accounts := []domain.Account{account("A", "BRL", "500"), account("B", "BRL", "0")}
	txs := []domain.Transaction{
		expense("t1", "A", "10", day(2024, 1, 5)),
		transfer("t2", "A", "B", "25", day(2024, 1, 15)),
		income("t3", "B", "7.5", day(2024, 1, 20)),
		expense("t4", "B", "2.25", day(2024, 2, 1)),
	}
	d1, d2 := day(2024, 1, 10), day(2024, 1, 31)

	r1 := engine.Reconstruct(accounts, txs, engine.ReconstructOptions{Cutoff: &d1})
	r2 := engine.Reconstruct(accounts, txs, engine.ReconstructOptions{Cutoff: &d2})

	// only t2 and t3 fall in (d1, d2]
	assert.True(t, balanceOf(r1.Accounts, "A").Sub(dec("25")).Equal(balanceOf(r2.Accounts, "A")))
	assert.True(t, balanceOf(r1.Accounts, "B").Add(dec("32.5")).Equal(balanceOf(r2.Accounts, "B")))
}

func TestReconstruct_InvalidCombinationsAreValidationIssues(t *testing.T) {
	accounts := []domain.Account{account("A", "BRL", "100")}

	noDest := transfer("t1", "A", "", "10", day(2024, 1, 1))
	incomeWithSplits := income("t2", "A", "10", day(2024, 1, 1))
	incomeWithSplits.Splits = []domain.Split{split("m1", "5")}
	overSplit := expense("t3", "A", "10", day(2024, 1, 1))
	overSplit.Splits = []domain.Split{split("m1", "6"), split("m2", "6")}

	res := engine.Reconstruct(accounts, []domain.Transaction{noDest, incomeWithSplits, overSplit}, engine.ReconstructOptions{})

	assert.True(t, dec("100").Equal(balanceOf(res.Accounts, "A")))
	require.Len(t, res.Issues, 3)
	for _, issue := range res.Issues {
		assert.Equal(t, domain.IssueValidation, issue.Kind)
		assert.ErrorIs(t, issue, apperrors.ErrValidation)
	}
}

func TestReconstruct_PayerIsCallersOwnMemberID(t *testing.T) {
	accounts := []domain.Account{account("A", "BRL", "500")}
	tx := expense("t1", "A", "100", day(2024, 6, 1))
	tx.PayerID = ptr("m-self")
	tx.Splits = []domain.Split{split("m-bob", "40")}
	roster := []domain.Member{member("m-self", "Me", self), member("m-bob", "Bob", "")}

	res := engine.Reconstruct(accounts, []domain.Transaction{tx}, engine.ReconstructOptions{SelfUserID: self, Members: roster})

	assert.Empty(t, res.Issues)
	assert.Equal(t, "400.00", balanceOf(res.Accounts, "A").StringFixed(2))

	// without a roster the member ID is just another payer
	res = engine.Reconstruct(accounts, []domain.Transaction{tx}, engine.ReconstructOptions{SelfUserID: self})
	assert.Equal(t, "500.00", balanceOf(res.Accounts, "A").StringFixed(2))
}
