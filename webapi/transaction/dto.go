package transaction

// CreateTransactionInput is the body of POST /transactions.
type CreateTransactionInput struct {
	PropertyID string `json:"propertyId" validate:"required,uuid"`
	Type       string `json:"type" validate:"required,oneof=rent_payment deposit commission"`
	Amount     int64  `json:"amount" validate:"required,gt=0"`
	Currency   string `json:"currency" validate:"omitempty,len=3"`
	Method     string `json:"paymentMethod" validate:"required,oneof=mtn_momo orange_money bank_transfer cash"`
	PayerPhone string `json:"payerPhone"`
}

// ProcessPaymentInput is the body of POST /transactions/:id/process.
// ReturnURL and CancelURL are required for Orange Money.
type ProcessPaymentInput struct {
	Method    string `json:"paymentMethod" validate:"omitempty,oneof=mtn_momo orange_money"`
	Phone     string `json:"phoneNumber"`
	ReturnURL string `json:"returnUrl" validate:"omitempty,url"`
	CancelURL string `json:"cancelUrl" validate:"omitempty,url"`
}

type RefundInput struct {
	Reason string `json:"reason" validate:"required,max=1000"`
}
