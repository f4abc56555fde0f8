package repository

import (
	"context"
	"fmt"
	"reflect"

	"github.com/piolcm/piol/pkg/repository"
	reponotification "github.com/piolcm/piol/pkg/repository/notification"
	repoproperty "github.com/piolcm/piol/pkg/repository/property"
	repotx "github.com/piolcm/piol/pkg/repository/transaction"
	repouser "github.com/piolcm/piol/pkg/repository/user"
	repoverification "github.com/piolcm/piol/pkg/repository/verification"
	"gorm.io/gorm"
)

// UoW provides transaction boundary and repository access in one abstraction.
// Every repository handed out inside Do shares the same *gorm.DB transaction.
type UoW struct {
	db           *gorm.DB
	tx           *gorm.DB
	repoRegistry map[reflect.Type]func(*gorm.DB) any
}

// NewUoW creates a new UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{
		db: db,
		repoRegistry: map[reflect.Type]func(*gorm.DB) any{
			typeOf[repouser.Repository]():         func(db *gorm.DB) any { return NewUserRepository(db) },
			typeOf[repoproperty.Repository]():     func(db *gorm.DB) any { return NewPropertyRepository(db) },
			typeOf[repotx.Repository]():           func(db *gorm.DB) any { return NewTransactionRepository(db) },
			typeOf[repoverification.Repository](): func(db *gorm.DB) any { return NewVerificationRepository(db) },
			typeOf[reponotification.Repository](): func(db *gorm.DB) any { return NewNotificationRepository(db) },
		},
	}
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Do runs the given function in a transaction boundary, providing a UoW with repository access.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	if u.tx != nil {
		// already inside a transaction: join it
		return fn(u)
	}
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txnUow := &UoW{db: u.db, tx: tx, repoRegistry: u.repoRegistry}
		return fn(txnUow)
	})
}

// GetRepository provides generic, type-safe access to repositories using the current session.
func (u *UoW) GetRepository(repoType reflect.Type) (any, error) {
	constructor, ok := u.repoRegistry[repoType]
	if !ok {
		return nil, fmt.Errorf("unsupported repository type: %v", repoType)
	}
	return constructor(u.session()), nil
}

func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func getTyped[T any](u *UoW) (T, error) {
	var zero T
	repoAny, err := u.GetRepository(typeOf[T]())
	if err != nil {
		return zero, err
	}
	repo, ok := repoAny.(T)
	if !ok {
		return zero, fmt.Errorf("invalid repository type %T", repoAny)
	}
	return repo, nil
}

// UserRepository returns the user repository bound to the current session.
func (u *UoW) UserRepository() (repouser.Repository, error) {
	return getTyped[repouser.Repository](u)
}

// PropertyRepository returns the property repository bound to the current session.
func (u *UoW) PropertyRepository() (repoproperty.Repository, error) {
	return getTyped[repoproperty.Repository](u)
}

// TransactionRepository returns the transaction repository bound to the current session.
func (u *UoW) TransactionRepository() (repotx.Repository, error) {
	return getTyped[repotx.Repository](u)
}

// VerificationRepository returns the verification repository bound to the current session.
func (u *UoW) VerificationRepository() (repoverification.Repository, error) {
	return getTyped[repoverification.Repository](u)
}

// NotificationRepository returns the notification repository bound to the current session.
func (u *UoW) NotificationRepository() (reponotification.Repository, error) {
	return getTyped[reponotification.Repository](u)
}

var _ repository.UnitOfWork = (*UoW)(nil)
