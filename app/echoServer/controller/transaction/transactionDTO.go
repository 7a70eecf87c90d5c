package transaction

type InitiateReq struct {
	KostID        int64  `json:"kost_id" validate:"required,gt=0"`
	Months        int    `json:"months" validate:"required,gt=0"`
	StartDate     string `json:"start_date" validate:"required"` // RFC 3339 or YYYY-MM-DD
	PaymentOption string `json:"payment_option" validate:"required,oneof=OPTION_A OPTION_B OPTION_C"`
}

type ScanReq struct {
	QRData string `json:"qr_data" validate:"required"`
}

type CancelReq struct {
	Reason string `json:"reason"`
}
