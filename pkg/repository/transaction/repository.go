package transaction

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/piolcm/piol/pkg/domain/transaction"
	"github.com/piolcm/piol/pkg/dto"
)

// Repository defines the interface for transaction data access operations.
// Transactions are never deleted.
type Repository interface {
	// Create inserts a new transaction. A reused reference fails with domain.ErrAlreadyExists.
	Create(ctx context.Context, tx *transaction.Transaction) error

	// Get retrieves a transaction by its ID.
	Get(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error)

	// GetByReference retrieves a transaction by its transactionReference.
	GetByReference(ctx context.Context, reference string) (*transaction.Transaction, error)

	// GetByMobileMoneyReference retrieves a transaction by its provider correlation id.
	GetByMobileMoneyReference(ctx context.Context, reference string) (*transaction.Transaction, error)

	// ListByUser lists the transactions where userID is the renter or the landlord, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*transaction.Transaction, error)

	// ListStale lists transactions in status last updated before cutoff, oldest first.
	ListStale(ctx context.Context, status transaction.Status, cutoff time.Time, limit int) ([]*transaction.Transaction, error)

	// Transition applies update only if the stored row still satisfies guard.
	// It reports whether the row changed; a missing row fails with domain.ErrNotFound.
	Transition(ctx context.Context, id uuid.UUID, guard dto.TransactionGuard, update dto.TransactionUpdate) (bool, error)
}
