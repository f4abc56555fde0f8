package payment

import (
	"context"

	"github.com/piolcm/piol/pkg/domain/transaction"
)

// PaymentProvider is the capability every mobile-money adapter offers.
type PaymentProvider interface {
	// Method is the payment method this provider settles.
	Method() transaction.Method

	// RequestCollection asks the payer to approve a payment. The returned
	// ProviderReference is generated client-side so it can be persisted
	// before the provider settles.
	RequestCollection(ctx context.Context, req *CollectionRequest) (*CollectionResult, error)

	// CheckStatus queries the provider for the current state of a collection.
	CheckStatus(ctx context.Context, providerReference string) (*StatusResult, error)
}

// Disburser is implemented by providers able to pay out to a mobile-money account.
type Disburser interface {
	Disburse(ctx context.Context, req *DisbursementRequest) (*DisbursementResult, error)
}

// AccountValidator is implemented by providers able to check that a wallet exists.
type AccountValidator interface {
	// ValidateAccount never fails on an unknown account: it reports Valid=false instead.
	ValidateAccount(ctx context.Context, phone string) (*AccountInfo, error)
}
