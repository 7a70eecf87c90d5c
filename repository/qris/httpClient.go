package qrisrepo

import (
	"bytes"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/hanqt132-beep/kost-versi2/util/httpx"
)

type httpRepo struct {
	apiKey        string
	callbackToken string
	client        *http.Client
}

func NewHTTP(apiKey, callbackToken string) Repo {
	return &httpRepo{apiKey: apiKey, callbackToken: callbackToken, client: httpx.Client()}
}

func (r *httpRepo) CreateCharge(req CreateChargeReq) (*CreateChargeResp, error) {
	body := map[string]any{
		"external_id": req.ExternalID,
		"type":        "DYNAMIC",
		"amount":      req.Amount,
		"description": req.Description,
		"expires_in":  req.ExpirySec,
	}
	b, _ := json.Marshal(body)
	httpReq, err := http.NewRequest(http.MethodPost, "https://api.xendit.co/qr_codes", bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	httpReq.SetBasicAuth(r.apiKey, "")
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("qris create charge failed: %s", resp.Status)
	}

	var out struct {
		ID        string `json:"id"`
		QRString  string `json:"qr_string"`
		ExpiresAt string `json:"expires_at"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if out.ID == "" {
		return nil, errors.New("qris: empty charge id")
	}

	return &CreateChargeResp{ChargeID: out.ID, QRString: out.QRString, ExpiresAt: out.ExpiresAt}, nil
}

func (r *httpRepo) VerifyCallbackToken(token string) error {
	if r.callbackToken == "" {
		return nil
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(r.callbackToken)) != 1 {
		return errors.New("qris: callback token mismatch")
	}
	return nil
}
