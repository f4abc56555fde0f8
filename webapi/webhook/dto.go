package webhook

// OrangeNotification is the body Orange Money posts to the notif_url of a web payment.
type OrangeNotification struct {
	Status     string `json:"status"`
	NotifToken string `json:"notif_token"`
	TxnID      string `json:"txn_id"`
	LegacyTxn  string `json:"txnid"`
	OrderID    string `json:"order_id"`
	Amount     int64  `json:"amount"`
}

// TransactionID returns the Orange transaction id, read from txn_id and
// falling back to the older txnid field.
func (n OrangeNotification) TransactionID() string {
	if n.TxnID != "" {
		return n.TxnID
	}
	return n.LegacyTxn
}

// MTNCallback is the subset of the request-to-pay callback body we read.
// Its status is not trusted; it is fetched again from MTN.
type MTNCallback struct {
	ExternalID             string `json:"externalId"`
	FinancialTransactionID string `json:"financialTransactionId"`
	Status                 string `json:"status"`
}
