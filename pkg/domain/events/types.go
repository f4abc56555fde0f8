package events

// EventTypes maps a wire type name to a constructor, used by the
// redis and kafka buses to decode envelopes.
var EventTypes = map[string]func() Event{
	EventTypePaymentProcessing.String():     func() Event { return &PaymentProcessing{} },
	EventTypePaymentCompleted.String():      func() Event { return &PaymentCompleted{} },
	EventTypePaymentFailed.String():         func() Event { return &PaymentFailed{} },
	EventTypeEscrowReleased.String():        func() Event { return &EscrowReleased{} },
	EventTypeRefundRequested.String():       func() Event { return &RefundRequested{} },
	EventTypeVerificationClaimed.String():   func() Event { return &VerificationClaimed{} },
	EventTypeVerificationCompleted.String(): func() Event { return &VerificationCompleted{} },
}
