package transaction

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hanqt132-beep/kost-versi2/model"
)

var testNow = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func txAt(status model.TransactionStatus, plan model.PaymentPlan) *model.Transaction {
	return &model.Transaction{
		TransactionID: "TXN202506ABCDEF",
		Status:        status,
		Plan:          plan,
		Total:         3_247_500,
		DPAmount:      974_250,
		DepositAmount: 100_000,
	}
}

func TestCanTransition_HappyPathQR(t *testing.T) {
	steps := []model.TransactionStatus{
		model.TxInitiated,
		model.TxPaymentSelected,
		model.TxScanning,
		model.TxScanned,
		model.TxConfirmed,
		model.TxProcessing,
		model.TxCompleted,
	}
	for i := 0; i < len(steps)-1; i++ {
		require.True(t, canTransition(steps[i], steps[i+1]),
			"%s -> %s should be legal", steps[i], steps[i+1])
	}
}

func TestCanTransition_NoSkippingQRSteps(t *testing.T) {
	require.False(t, canTransition(model.TxInitiated, model.TxScanning))
	require.False(t, canTransition(model.TxInitiated, model.TxProcessing))
	require.False(t, canTransition(model.TxScanning, model.TxConfirmed))
	require.False(t, canTransition(model.TxScanned, model.TxProcessing))
	require.False(t, canTransition(model.TxScanned, model.TxScanning))
}

func TestCanTransition_FailAndExpireFromAnyNonTerminal(t *testing.T) {
	nonTerminal := []model.TransactionStatus{
		model.TxInitiated, model.TxPaymentSelected, model.TxScanning,
		model.TxScanned, model.TxConfirmed, model.TxProcessing,
	}
	for _, from := range nonTerminal {
		require.True(t, canTransition(from, model.TxFailed), "fail from %s", from)
		require.True(t, canTransition(from, model.TxExpired), "expire from %s", from)
	}
}

func TestCanTransition_TerminalsRejectEverything(t *testing.T) {
	terminals := []model.TransactionStatus{
		model.TxCompleted, model.TxDPPaid, model.TxWaitingVerification,
		model.TxFailed, model.TxExpired,
	}
	all := append([]model.TransactionStatus{
		model.TxInitiated, model.TxPaymentSelected, model.TxScanning,
		model.TxScanned, model.TxConfirmed, model.TxProcessing,
	}, terminals...)
	for _, from := range terminals {
		for _, to := range all {
			require.False(t, canTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestApplyAcceptContract_PayOnLocationSkipsQR(t *testing.T) {
	tx := txAt(model.TxPaymentSelected, model.PlanPayOnLocation)
	require.NoError(t, applyAcceptContract(tx, testNow))
	require.Equal(t, model.TxProcessing, tx.Status)
	require.NotNil(t, tx.ContractAcceptedAt)
}

func TestApplyAcceptContract_QRPlansEnterScanning(t *testing.T) {
	for _, plan := range []model.PaymentPlan{model.PlanFull, model.PlanDeposit} {
		tx := txAt(model.TxPaymentSelected, plan)
		require.NoError(t, applyAcceptContract(tx, testNow))
		require.Equal(t, model.TxScanning, tx.Status)
	}
}

func TestApplyScan_RequiresPayload(t *testing.T) {
	tx := txAt(model.TxScanning, model.PlanFull)
	err := applyScan(tx, "", testNow)
	require.Error(t, err)
	require.Equal(t, ErrBadInput, Code(err))
	require.Equal(t, model.TxScanning, tx.Status)

	require.NoError(t, applyScan(tx, "qris://payload", testNow))
	require.Equal(t, model.TxScanned, tx.Status)
	require.NotNil(t, tx.QRData)
	require.NotNil(t, tx.QRValidatedAt)
}

func TestApplyConfirm_LandsInProcessing(t *testing.T) {
	tx := txAt(model.TxScanned, model.PlanFull)
	require.NoError(t, applyConfirm(tx, testNow))
	require.Equal(t, model.TxProcessing, tx.Status)
	require.NotNil(t, tx.ConfirmedAt)
}

func TestApplyComplete_PerPlanSettlement(t *testing.T) {
	cases := []struct {
		plan       model.PaymentPlan
		wantStatus model.TransactionStatus
		wantPaid   int64
	}{
		{model.PlanFull, model.TxCompleted, 3_247_500},
		{model.PlanDeposit, model.TxDPPaid, 974_250},
		{model.PlanPayOnLocation, model.TxWaitingVerification, 100_000},
	}
	for _, c := range cases {
		tx := txAt(model.TxProcessing, c.plan)
		done, err := applyComplete(tx, testNow)
		require.NoError(t, err)
		require.False(t, done)
		require.Equal(t, c.wantStatus, tx.Status)
		require.Equal(t, c.wantPaid, tx.AmountPaid)
		require.Equal(t, tx.Total-c.wantPaid, tx.Remaining)
		require.NotNil(t, tx.CompletedAt)
	}
}

func TestApplyComplete_Idempotent(t *testing.T) {
	tx := txAt(model.TxProcessing, model.PlanFull)
	_, err := applyComplete(tx, testNow)
	require.NoError(t, err)

	before := *tx
	done, err := applyComplete(tx, testNow.Add(time.Minute))
	require.NoError(t, err)
	require.True(t, done)
	require.Equal(t, before, *tx)
}

func TestApplyComplete_RejectsEarlyStates(t *testing.T) {
	tx := txAt(model.TxScanned, model.PlanFull)
	_, err := applyComplete(tx, testNow)
	require.Error(t, err)
	require.Equal(t, ErrInvalidTransition, Code(err))
}

func TestApplyFail_RequiresReason(t *testing.T) {
	tx := txAt(model.TxScanning, model.PlanFull)
	err := applyFail(tx, "", testNow)
	require.Error(t, err)
	require.Equal(t, ErrBadInput, Code(err))

	require.NoError(t, applyFail(tx, "pembayaran gagal", testNow))
	require.Equal(t, model.TxFailed, tx.Status)
	require.NotNil(t, tx.FailedAt)
	require.Equal(t, "pembayaran gagal", *tx.FailReason)
}

func TestApplyExpire(t *testing.T) {
	tx := txAt(model.TxPaymentSelected, model.PlanFull)
	require.NoError(t, applyExpire(tx, testNow))
	require.Equal(t, model.TxExpired, tx.Status)
	require.Equal(t, expiryReason, *tx.FailReason)

	err := applyExpire(tx, testNow)
	require.Error(t, err)
	require.Equal(t, ErrInvalidTransition, Code(err))
}

func TestMaterialize_StatusMapping(t *testing.T) {
	cases := []struct {
		tx   model.TransactionStatus
		want model.BookingStatus
	}{
		{model.TxCompleted, model.BookingApproved},
		{model.TxDPPaid, model.BookingDPPaid},
		{model.TxWaitingVerification, model.BookingWaitingPayment},
	}
	for _, c := range cases {
		tx := txAt(c.tx, model.PlanFull)
		tx.UserID = 7
		tx.KostID = 3
		tx.InvoiceNumber = "INV/2025/06/ABC123"

		b := materialize(tx, "booking-uuid", testNow)
		require.Equal(t, c.want, b.Status)
		require.Equal(t, "booking-uuid", b.ID)
		require.Equal(t, tx.TransactionID, b.TransactionID)
		require.Equal(t, int64(7), b.UserID)
		require.Equal(t, int64(3), b.KostID)
		require.Equal(t, tx.InvoiceNumber, b.InvoiceNumber)
		require.Equal(t, testNow, b.CreatedAt)
	}
}

func TestDocumentNumberFormats(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	id := newTransactionID(now)
	require.Regexp(t, `^TXN202506[A-Z0-9]{6}$`, id)
	require.Regexp(t, `^REF[A-Z0-9]{10}$`, newReferenceNumber())
	require.Regexp(t, `^INV/2025/06/[A-Z0-9]{6}$`, newInvoiceNumber(now))
	require.Regexp(t, `^KA-CONTRACT/2025/06/[A-Z0-9]{4}$`, newContractNumber(now))
}
