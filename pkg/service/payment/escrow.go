package payment

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/piolcm/piol/pkg/authz"
	"github.com/piolcm/piol/pkg/domain"
	"github.com/piolcm/piol/pkg/domain/events"
	"github.com/piolcm/piol/pkg/domain/transaction"
	"github.com/piolcm/piol/pkg/dto"
	provider "github.com/piolcm/piol/pkg/provider/payment"
	"github.com/piolcm/piol/pkg/utils"
)

// ReleaseEscrowFunds pays the held funds, minus commission, out to the
// landlord's mobile-money account. The caller must be the landlord or an admin.
//
// Escrow stays held when the disbursement fails.
func (s *Service) ReleaseEscrowFunds(
	ctx context.Context,
	ac *authz.AuthContext,
	id uuid.UUID,
) (*ReleaseResult, error) {
	const op = "payment.ReleaseEscrowFunds"
	log := s.logger.With("context", "ReleaseEscrowFunds", "transactionID", id)
	if _, err := authz.RequireUser(ac, op); err != nil {
		return nil, err
	}
	tx, err := s.load(ctx, id)
	if err != nil {
		return nil, domain.AsNotFound(err, op, "transaction")
	}
	if err := authz.AssertOwner(ac, op, tx.LandlordID); err != nil {
		return nil, err
	}
	if !tx.EscrowHeld() {
		return nil, domain.NewInvalidStateError(op, "transaction", "escrow:"+string(tx.EscrowStatus),
			"escrow funds are not held")
	}

	userRepo, err := s.uow.UserRepository()
	if err != nil {
		return nil, err
	}
	landlord, err := userRepo.Get(ctx, tx.LandlordID)
	if err != nil {
		return nil, domain.AsNotFound(err, op, "landlord")
	}
	if landlord.Phone == "" {
		return nil, domain.NewValidationError(op, "landlord.phone", "landlord has no mobile-money number on file")
	}

	disburser, err := s.providers.Disburser(s.disbursementMethod)
	if err != nil {
		return nil, err
	}
	txRepo, err := s.uow.TransactionRepository()
	if err != nil {
		return nil, err
	}
	// claim the held funds before paying out; a concurrent release loses here
	claimed, err := txRepo.Transition(ctx, tx.ID, dto.EscrowIn(transaction.EscrowHeld), dto.TransactionUpdate{
		EscrowStatus: ptr(transaction.EscrowReleasing),
	})
	if err != nil {
		log.Error("ReleaseEscrowFunds failed", "error", err)
		return nil, err
	}
	if !claimed {
		log.Warn("ReleaseEscrowFunds failed: escrow no longer held")
		return nil, domain.NewInvalidStateError(op, "transaction", "escrow:"+string(transaction.EscrowReleasing),
			"escrow release is already in progress or done")
	}

	split := transaction.SplitEscrow(tx.Amount, s.commissionRate)
	res, err := disburser.Disburse(ctx, &provider.DisbursementRequest{
		TransactionID: tx.ID,
		Reference:     tx.Reference,
		Amount:        split.Disbursement,
		Currency:      tx.Currency,
		PayeePhone:    landlord.Phone,
		Message:       "Piol escrow release " + tx.Reference,
	})
	if err != nil {
		log.Error("ReleaseEscrowFunds failed: disbursement rejected", "error", err)
		if _, rerr := txRepo.Transition(context.WithoutCancel(ctx), tx.ID,
			dto.EscrowIn(transaction.EscrowReleasing), dto.TransactionUpdate{
				EscrowStatus: ptr(transaction.EscrowHeld),
			}); rerr != nil {
			log.Error("ReleaseEscrowFunds: escrow left releasing", "error", rerr)
		}
		return nil, err
	}

	changed, err := txRepo.Transition(context.WithoutCancel(ctx), tx.ID,
		dto.EscrowIn(transaction.EscrowReleasing), dto.TransactionUpdate{
			EscrowStatus:          ptr(transaction.EscrowReleased),
			DisbursementReference: ptr(res.ReferenceID),
			Commission:            ptr(split.Commission),
			DisbursedAmount:       ptr(split.Disbursement),
			ReleasedAt:            ptr(s.now()),
		})
	if err != nil || !changed {
		log.Error("ReleaseEscrowFunds failed: funds disbursed but release not recorded",
			"disbursementReference", res.ReferenceID, "error", err)
		if err == nil {
			err = domain.NewInvalidStateError(op, "transaction", "escrow:"+string(transaction.EscrowReleasing),
				"escrow release could not be recorded")
		}
		return nil, err
	}

	s.emit(ctx, &events.EscrowReleased{
		FlowEvent:             events.NewFlowEvent(tx.ID),
		TransactionID:         tx.ID,
		Reference:             tx.Reference,
		RenterID:              tx.RenterID,
		LandlordID:            tx.LandlordID,
		ReleasedBy:            ac.UserID(),
		Method:                string(s.disbursementMethod),
		Amount:                tx.Amount,
		Commission:            split.Commission,
		DisbursedAmount:       split.Disbursement,
		Currency:              tx.Currency,
		DisbursementReference: res.ReferenceID,
	})
	log.Info("ReleaseEscrowFunds successful", "commission", split.Commission,
		"disbursedAmount", split.Disbursement, "payee", utils.MaskPhone(landlord.Phone))

	return &ReleaseResult{
		TransactionID:   tx.ID,
		DisbursedAmount: split.Disbursement,
		Commission:      split.Commission,
		ReferenceID:     res.ReferenceID,
	}, nil
}

// RequestRefund lets the renter ask for held funds back. Admins are notified;
// the transaction itself does not change, refunds are settled by an admin.
func (s *Service) RequestRefund(
	ctx context.Context,
	ac *authz.AuthContext,
	id uuid.UUID,
	reason string,
) error {
	const op = "payment.RequestRefund"
	if _, err := authz.RequireUser(ac, op); err != nil {
		return err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return domain.NewValidationError(op, "reason", "is required")
	}
	tx, err := s.load(ctx, id)
	if err != nil {
		return domain.AsNotFound(err, op, "transaction")
	}
	if tx.RenterID != ac.UserID() {
		return domain.NewUnauthorizedError(op, "only the renter can request a refund")
	}
	if !tx.EscrowHeld() {
		return domain.NewInvalidStateError(op, "transaction", "escrow:"+string(tx.EscrowStatus),
			"refunds can only be requested while escrow is held")
	}
	s.emit(ctx, &events.RefundRequested{
		FlowEvent:     events.NewFlowEvent(tx.ID),
		TransactionID: tx.ID,
		Reference:     tx.Reference,
		RenterID:      tx.RenterID,
		LandlordID:    tx.LandlordID,
		Amount:        tx.Amount,
		Currency:      tx.Currency,
		Reason:        reason,
	})
	s.logger.Info("RequestRefund recorded", "transactionID", tx.ID)
	return nil
}

// ValidateAccount checks that phone is a registered MTN Mobile Money wallet.
// Unknown wallets are reported as invalid, not as errors.
func (s *Service) ValidateAccount(
	ctx context.Context,
	ac *authz.AuthContext,
	phone string,
) (*provider.AccountInfo, error) {
	const op = "payment.ValidateAccount"
	if _, err := authz.RequireUser(ac, op); err != nil {
		return nil, err
	}
	msisdn, err := utils.NormalizeMSISDN(phone)
	if err != nil {
		return &provider.AccountInfo{Valid: false}, nil
	}
	validator, err := s.providers.AccountValidator(transaction.MethodMTNMoMo)
	if err != nil {
		return nil, err
	}
	return validator.ValidateAccount(ctx, msisdn)
}
