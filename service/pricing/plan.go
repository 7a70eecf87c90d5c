package pricing

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/hanqt132-beep/kost-versi2/model"
)

const (
	DPPercentage       = 30
	MaxInstallments    = 3
	LocationDeposit    int64 = 100000
	installmentSpacing       = 30 * 24 * time.Hour
)

// Outcome describes what a chosen plan means for the computed total.
type Outcome struct {
	AmountDueNow     int64
	Remaining        int64
	DPPercentage     int
	DPAmount         int64
	DepositAmount    int64
	Installments     []model.Installment
	VerificationCode string
}

// Resolver derives plan outcomes. Now and Code are injectable so tests control
// dates and generated codes.
type Resolver struct {
	Now  func() time.Time
	Code func() string
}

func NewResolver() Resolver {
	return Resolver{Now: time.Now, Code: randomCode}
}

func (r Resolver) Resolve(plan model.PaymentPlan, total int64, startDate time.Time) (Outcome, error) {
	switch plan {
	case model.PlanFull:
		return Outcome{AmountDueNow: total, Remaining: total}, nil

	case model.PlanDeposit:
		dp := ceilDiv(total*DPPercentage, 100)
		remaining := total - dp
		return Outcome{
			AmountDueNow: dp,
			Remaining:    remaining,
			DPPercentage: DPPercentage,
			DPAmount:     dp,
			Installments: schedule(remaining, startDate, MaxInstallments),
		}, nil

	case model.PlanPayOnLocation:
		code := randomCode
		if r.Code != nil {
			code = r.Code
		}
		return Outcome{
			AmountDueNow:     LocationDeposit,
			Remaining:        total,
			DepositAmount:    LocationDeposit,
			VerificationCode: code(),
		}, nil
	}
	return Outcome{}, ErrUnknownPlan
}

// schedule splits remaining into n installments 30 days apart. Each is the
// ceiling share except the last, which absorbs the rounding remainder so the
// sum equals remaining exactly.
func schedule(remaining int64, startDate time.Time, n int) []model.Installment {
	if n <= 0 || remaining <= 0 {
		return nil
	}
	per := ceilDiv(remaining, int64(n))
	out := make([]model.Installment, 0, n)
	for i := 1; i <= n; i++ {
		amount := per
		if i == n {
			amount = remaining - per*int64(n-1)
		}
		out = append(out, model.Installment{
			Number:  i,
			Amount:  amount,
			DueDate: startDate.Add(time.Duration(i) * installmentSpacing),
			Status:  model.InstallmentPending,
		})
	}
	return out
}

func ceilDiv(a, b int64) int64 {
	return (a + b - 1) / b
}

// randomCode returns a 6-digit numeric display token. It is shown to the user
// for check-in confirmation and is not a security credential.
func randomCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "000000"
	}
	return fmt.Sprintf("%06d", n.Int64())
}
