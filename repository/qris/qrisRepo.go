package qrisrepo

type CreateChargeReq struct {
	ExternalID  string
	Amount      int64
	Description string
	ExpirySec   int
}

type CreateChargeResp struct {
	ChargeID  string
	QRString  string
	ExpiresAt string
}

type Repo interface {
	CreateCharge(req CreateChargeReq) (*CreateChargeResp, error)
	VerifyCallbackToken(token string) error
}
