package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hanqt132-beep/kost-versi2/model"
)

func fixedResolver() Resolver {
	return Resolver{
		Now:  func() time.Time { return time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC) },
		Code: func() string { return "123456" },
	}
}

func TestResolve_FullPlan(t *testing.T) {
	start := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	out, err := fixedResolver().Resolve(model.PlanFull, 3_247_500, start)
	require.NoError(t, err)
	require.Equal(t, int64(3_247_500), out.AmountDueNow)
	require.Empty(t, out.Installments)
	require.Zero(t, out.DPAmount)
	require.Zero(t, out.DepositAmount)
	require.Empty(t, out.VerificationCode)
}

func TestResolve_DepositPlan(t *testing.T) {
	start := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	out, err := fixedResolver().Resolve(model.PlanDeposit, 3_247_500, start)
	require.NoError(t, err)
	require.Equal(t, 30, out.DPPercentage)
	require.Equal(t, int64(974_250), out.DPAmount)
	require.Equal(t, int64(974_250), out.AmountDueNow)
	require.Equal(t, int64(2_273_250), out.Remaining)

	require.Len(t, out.Installments, 3)
	require.Equal(t, int64(757_750), out.Installments[0].Amount)
	require.Equal(t, int64(757_750), out.Installments[1].Amount)
	require.Equal(t, int64(757_750), out.Installments[2].Amount)
	require.Equal(t, start.Add(30*24*time.Hour), out.Installments[0].DueDate)
	require.Equal(t, start.Add(60*24*time.Hour), out.Installments[1].DueDate)
	require.Equal(t, start.Add(90*24*time.Hour), out.Installments[2].DueDate)
	for i, ins := range out.Installments {
		require.Equal(t, i+1, ins.Number)
		require.Equal(t, model.InstallmentPending, ins.Status)
	}
}

func TestResolve_DepositPlanLastInstallmentAbsorbsRemainder(t *testing.T) {
	start := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	out, err := fixedResolver().Resolve(model.PlanDeposit, 1_000_001, start)
	require.NoError(t, err)

	var sum int64
	for _, ins := range out.Installments {
		sum += ins.Amount
	}
	require.Equal(t, out.Remaining, sum)
	require.Equal(t, out.Remaining+out.DPAmount, int64(1_000_001))

	last := out.Installments[len(out.Installments)-1]
	for _, ins := range out.Installments[:len(out.Installments)-1] {
		require.LessOrEqual(t, last.Amount, ins.Amount)
	}
}

func TestResolve_PayOnLocation(t *testing.T) {
	start := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	out, err := fixedResolver().Resolve(model.PlanPayOnLocation, 3_245_000, start)
	require.NoError(t, err)
	require.Equal(t, LocationDeposit, out.AmountDueNow)
	require.Equal(t, LocationDeposit, out.DepositAmount)
	require.Equal(t, int64(3_245_000), out.Remaining)
	require.Equal(t, "123456", out.VerificationCode)
	require.Empty(t, out.Installments)
}

func TestResolve_GeneratedCodeShape(t *testing.T) {
	out, err := NewResolver().Resolve(model.PlanPayOnLocation, 500_000, time.Now())
	require.NoError(t, err)
	require.Len(t, out.VerificationCode, 6)
	for _, r := range out.VerificationCode {
		require.True(t, r >= '0' && r <= '9')
	}
}

func TestResolve_UnknownPlan(t *testing.T) {
	_, err := fixedResolver().Resolve(model.PaymentPlan("OPTION_X"), 100, time.Now())
	require.ErrorIs(t, err, ErrUnknownPlan)
}
