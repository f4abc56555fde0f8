package payment

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/piolcm/piol/pkg/authz"
	"github.com/piolcm/piol/pkg/domain"
	"github.com/piolcm/piol/pkg/domain/transaction"
	"github.com/piolcm/piol/pkg/domain/user"
	"github.com/piolcm/piol/pkg/repository"
	"github.com/piolcm/piol/pkg/utils"
)

// CreateTransaction opens a pending transaction for a payable property.
// The landlord is copied from the property; the caller must be a renter.
func (s *Service) CreateTransaction(
	ctx context.Context,
	ac *authz.AuthContext,
	in CreateTransactionInput,
) (tx *transaction.Transaction, err error) {
	const op = "payment.CreateTransaction"
	log := s.logger.With("context", "CreateTransaction", "propertyID", in.PropertyID)
	if err = authz.AssertRole(ac, op, user.RoleRenter); err != nil {
		return nil, err
	}
	phone := in.PayerPhone
	if phone == "" {
		phone = ac.User.Phone
	}
	if phone != "" {
		if phone, err = utils.NormalizeMSISDN(phone); err != nil {
			return nil, domain.NewValidationError(op, "payerPhone", err.Error())
		}
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		propRepo, err := uow.PropertyRepository()
		if err != nil {
			return err
		}
		prop, err := propRepo.Get(ctx, in.PropertyID)
		if err != nil {
			return domain.AsNotFound(err, op, "property")
		}
		if !prop.Payable() {
			return domain.NewInvalidStateError(op, "property", string(prop.Status),
				"property does not accept payments")
		}
		currency := in.Currency
		if currency == "" {
			currency = prop.Currency
		}
		tx, err = transaction.New(prop.ID, ac.UserID(), prop.LandlordID,
			in.Type, in.Amount, currency, in.Method, phone, s.now())
		if err != nil {
			return err
		}
		txRepo, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		return txRepo.Create(ctx, tx)
	})
	if err != nil {
		log.Error("CreateTransaction failed", "error", err)
		return nil, err
	}
	log.Info("CreateTransaction successful", "transactionID", tx.ID, "reference", tx.Reference)
	return tx, nil
}

// GetTransaction returns the transaction if the caller is its renter, its
// landlord or an admin. Anyone else gets nil, as if it did not exist.
func (s *Service) GetTransaction(
	ctx context.Context,
	ac *authz.AuthContext,
	id uuid.UUID,
) (*transaction.Transaction, error) {
	if !ac.Authenticated() {
		return nil, nil
	}
	tx, err := s.load(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !tx.IsParty(ac.UserID()) && !ac.User.IsAdmin() {
		return nil, nil
	}
	return tx, nil
}

// ListMyTransactions lists the caller's transactions as renter or landlord, newest first.
func (s *Service) ListMyTransactions(
	ctx context.Context,
	ac *authz.AuthContext,
) ([]*transaction.Transaction, error) {
	u, err := authz.RequireUser(ac, "payment.ListMyTransactions")
	if err != nil {
		return nil, err
	}
	repo, err := s.uow.TransactionRepository()
	if err != nil {
		return nil, err
	}
	return repo.ListByUser(ctx, u.ID)
}

func (s *Service) load(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	repo, err := s.uow.TransactionRepository()
	if err != nil {
		return nil, err
	}
	return repo.Get(ctx, id)
}
