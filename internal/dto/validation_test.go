package dto_test

import (
	"testing"
	"time"

	"github.com/SscSPs/splitledger/internal/core/domain"
	"github.com/SscSPs/splitledger/internal/dto"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	v.SetTagName("binding")
	require.NoError(t, dto.RegisterValidations(v))
	return v
}

func validRequest() dto.CreateInstallmentSeriesRequest {
	return dto.CreateInstallmentSeriesRequest{
		Kind:            domain.KindExpense,
		Amount:          decimal.RequireFromString("100"),
		CurrencyCode:    "BRL",
		Date:            time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		SourceAccountID: "acc-1",
		Splits:          []dto.SplitRequest{{MemberID: "m-ana", AssignedAmount: decimal.RequireFromString("0")}},
		Count:           3,
	}
}

func TestRegisterValidations(t *testing.T) {
	v := newValidator(t)
	neg := decimal.RequireFromString("-5")

	tests := []struct {
		name    string
		mutate  func(*dto.CreateInstallmentSeriesRequest)
		wantErr string
	}{
		{"valid", func(*dto.CreateInstallmentSeriesRequest) {}, ""},
		{"zero amount", func(r *dto.CreateInstallmentSeriesRequest) { r.Amount = decimal.Zero }, "decimal_gt0"},
		{"negative amount", func(r *dto.CreateInstallmentSeriesRequest) { r.Amount = neg }, "decimal_gt0"},
		{"negative split", func(r *dto.CreateInstallmentSeriesRequest) { r.Splits[0].AssignedAmount = neg }, "decimal_gte0"},
		{"negative destination amount", func(r *dto.CreateInstallmentSeriesRequest) { r.DestinationAmount = &neg }, "decimal_gt0"},
		{"count too large", func(r *dto.CreateInstallmentSeriesRequest) { r.Count = 361 }, "max"},
		{"currency code length", func(r *dto.CreateInstallmentSeriesRequest) { r.CurrencyCode = "REAL" }, "len"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			err := v.Struct(req)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCreateInstallmentSeriesRequest_ToIntent(t *testing.T) {
	req := validRequest()
	req.Amount = decimal.RequireFromString("100.005")
	dest := "acc-2"
	req.DestinationAccountID = &dest

	tx := req.ToIntent("wp-1")

	assert.Equal(t, "wp-1", tx.WorkplaceID)
	assert.Equal(t, "100.01", tx.Amount.StringFixed(2))
	assert.Equal(t, "acc-2", *tx.DestinationAccountID)
	require.Len(t, tx.Splits, 1)
	assert.Equal(t, "m-ana", tx.Splits[0].MemberID)
	assert.False(t, tx.IsInstallment)
}
