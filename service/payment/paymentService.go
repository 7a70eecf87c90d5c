package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	qrisrepo "github.com/hanqt132-beep/kost-versi2/repository/qris"
	txsvc "github.com/hanqt132-beep/kost-versi2/service/transaction"
)

// HandleQRIS is the completion signal for PROCESSING transactions: the gateway
// tells us a charge was paid or died, and we settle the matching transaction.

type Service interface {
	HandleQRIS(ctx context.Context, callbackToken string, raw []byte) error
}

type service struct {
	qv qrisrepo.Repo
	ts txsvc.Service
}

func New(qv qrisrepo.Repo, ts txsvc.Service) Service {
	return &service{qv: qv, ts: ts}
}

type qrChargeEvent struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func (s *service) HandleQRIS(ctx context.Context, callbackToken string, raw []byte) error {
	if err := s.qv.VerifyCallbackToken(callbackToken); err != nil {
		return err
	}

	var ev qrChargeEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		return fmt.Errorf("bad webhook json: %w", err)
	}
	if ev.ID == "" || ev.Status == "" {
		return errors.New("missing charge fields")
	}

	transactionID, err := s.ts.ByChargeID(ctx, ev.ID)
	if err != nil {
		return fmt.Errorf("charge not mapped to a transaction: %w", err)
	}

	switch ev.Status {
	case "PAID", "COMPLETED":
		_, err := s.ts.Complete(ctx, transactionID)
		return err
	case "EXPIRED":
		// The expiry sweeper owns the timeout transition; nothing to do here.
		return nil
	case "FAILED":
		_, err := s.ts.Fail(ctx, transactionID, "pembayaran ditolak oleh gateway")
		if c := txsvc.Code(err); c == txsvc.ErrInvalidTransition || c == txsvc.ErrExpired {
			// Already terminal; callbacks can arrive late or twice.
			return nil
		}
		return err
	default:
		return nil
	}
}
