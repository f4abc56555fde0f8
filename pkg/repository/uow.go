package repository

import (
	"context"
	"reflect"

	"github.com/piolcm/piol/pkg/repository/notification"
	"github.com/piolcm/piol/pkg/repository/property"
	"github.com/piolcm/piol/pkg/repository/transaction"
	"github.com/piolcm/piol/pkg/repository/user"
	"github.com/piolcm/piol/pkg/repository/verification"
)

// UnitOfWork defines the contract for transactional work and type-safe repository access.
//
// Do runs the given function in a transaction boundary, providing a UnitOfWork for repository access.
// Repositories obtained from the UnitOfWork passed to fn share its transaction; outside Do
// they run on the plain connection.
//
//	repoAny, err := uow.GetRepository(reflect.TypeOf((*user.Repository)(nil)).Elem())
//	repo := repoAny.(user.Repository)
type UnitOfWork interface {
	// Do executes the given function within a transaction boundary.
	// If the function returns an error, the transaction is rolled back.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	// GetRepository returns a repository of the requested interface type, bound to the current session.
	GetRepository(repoType reflect.Type) (any, error)

	UserRepository() (user.Repository, error)
	PropertyRepository() (property.Repository, error)
	TransactionRepository() (transaction.Repository, error)
	VerificationRepository() (verification.Repository, error)
	NotificationRepository() (notification.Repository, error)
}
