package pricing

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hanqt132-beep/kost-versi2/model"
)

func TestCompute_FullPlanWithPromo(t *testing.T) {
	// 1.2jt/month, 3 months, 10% promo
	q, err := Compute(1_200_000, 3, true, 10, model.PlanFull)
	require.NoError(t, err)
	require.Equal(t, int64(3_600_000), q.Subtotal)
	require.Equal(t, int64(360_000), q.Discount)
	require.Equal(t, int64(5_000), q.AdminFee)
	require.Equal(t, int64(2_500), q.ServiceFee)
	require.Equal(t, int64(3_247_500), q.Total)
}

func TestCompute_PromoNeedsMinimumStay(t *testing.T) {
	q, err := Compute(1_200_000, 2, true, 10, model.PlanFull)
	require.NoError(t, err)
	require.Equal(t, int64(0), q.Discount)
	require.Equal(t, int64(2_400_000+5_000+2_500), q.Total)
}

func TestCompute_NoPromoFlagNoDiscount(t *testing.T) {
	q, err := Compute(1_200_000, 6, false, 10, model.PlanFull)
	require.NoError(t, err)
	require.Equal(t, int64(0), q.Discount)
}

func TestCompute_DefaultPromoPercent(t *testing.T) {
	// percent unset falls back to 10
	q, err := Compute(1_000_000, 3, true, 0, model.PlanFull)
	require.NoError(t, err)
	require.Equal(t, int64(300_000), q.Discount)
}

func TestCompute_DiscountRoundsHalfUp(t *testing.T) {
	// 333 * 3 = 999; 10% = 99.9 -> 100
	q, err := Compute(333, 3, true, 10, model.PlanFull)
	require.NoError(t, err)
	require.Equal(t, int64(100), q.Discount)
}

func TestCompute_PayOnLocationWaivesServiceFee(t *testing.T) {
	q, err := Compute(1_200_000, 3, true, 10, model.PlanPayOnLocation)
	require.NoError(t, err)
	require.Equal(t, int64(0), q.ServiceFee)
	require.Equal(t, int64(3_245_000), q.Total)
}

func TestCompute_Validation(t *testing.T) {
	_, err := Compute(-1, 3, false, 0, model.PlanFull)
	require.ErrorIs(t, err, ErrInvalidPrice)

	_, err = Compute(1_000_000, 0, false, 0, model.PlanFull)
	require.ErrorIs(t, err, ErrInvalidMonths)

	_, err = Compute(1_000_000, 3, false, 0, model.PaymentPlan("OPTION_X"))
	require.ErrorIs(t, err, ErrUnknownPlan)
}
