package payment

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/piolcm/piol/pkg/authz"
	"github.com/piolcm/piol/pkg/domain"
	"github.com/piolcm/piol/pkg/domain/events"
	"github.com/piolcm/piol/pkg/domain/transaction"
	"github.com/piolcm/piol/pkg/dto"
	provider "github.com/piolcm/piol/pkg/provider/payment"
	"github.com/piolcm/piol/pkg/repository"
	"github.com/piolcm/piol/pkg/utils"
)

const (
	referenceWriteAttempts = 3
	referenceWriteBackoff  = 200 * time.Millisecond
)

// ProcessPayment moves a pending transaction to processing and asks its
// provider to collect the funds. If the provider call fails the transaction
// is marked failed before the provider error is returned; a retry needs a new
// transaction.
func (s *Service) ProcessPayment(
	ctx context.Context,
	ac *authz.AuthContext,
	in ProcessPaymentInput,
) (*ProcessPaymentResult, error) {
	const op = "payment.ProcessPayment"
	log := s.logger.With("context", "ProcessPayment", "transactionID", in.TransactionID)
	if _, err := authz.RequireUser(ac, op); err != nil {
		return nil, err
	}

	var (
		tx  *transaction.Transaction
		p   provider.PaymentProvider
		req *provider.CollectionRequest
	)
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		tx, err = repo.Get(ctx, in.TransactionID)
		if err != nil {
			return domain.AsNotFound(err, op, "transaction")
		}
		if tx.RenterID != ac.UserID() && !ac.User.IsAdmin() {
			return domain.NewUnauthorizedError(op, "only the renter can pay this transaction")
		}
		if in.Method != "" && in.Method != tx.Method {
			return domain.NewValidationError(op, "paymentMethod",
				fmt.Sprintf("transaction was created for %s", tx.Method))
		}
		if tx.Status != transaction.StatusPending {
			return domain.NewInvalidStateError(op, "transaction", string(tx.Status),
				"only pending transactions can be processed")
		}
		if p, err = s.providers.Get(tx.Method); err != nil {
			return err
		}
		if req, err = s.collectionRequest(op, tx, in); err != nil {
			return err
		}
		changed, err := repo.Transition(ctx, tx.ID, dto.StatusIn(transaction.StatusPending), dto.TransactionUpdate{
			Status:     ptr(transaction.StatusProcessing),
			PayerPhone: ptr(req.PayerPhone),
		})
		if err != nil {
			return err
		}
		if !changed {
			return domain.NewInvalidStateError(op, "transaction", string(tx.Status), "transaction changed concurrently")
		}
		return nil
	})
	if err != nil {
		log.Error("ProcessPayment failed", "error", err)
		return nil, err
	}

	res, err := p.RequestCollection(ctx, req)
	if err != nil {
		log.Error("ProcessPayment failed: provider rejected the collection", "method", tx.Method, "error", err)
		s.markFailed(context.WithoutCancel(ctx), tx, err.Error())
		return nil, err
	}

	if err = s.storeProviderReference(context.WithoutCancel(ctx), tx.ID, res); err != nil {
		log.Error("ProcessPayment failed: provider reference not stored",
			"providerReference", res.ProviderReference, "error", err)
		return nil, err
	}

	s.emit(ctx, &events.PaymentProcessing{
		FlowEvent:         events.NewFlowEvent(tx.ID),
		TransactionID:     tx.ID,
		Method:            string(tx.Method),
		ProviderReference: res.ProviderReference,
		Amount:            tx.Amount,
		Currency:          tx.Currency,
	})
	log.Info("ProcessPayment successful", "method", tx.Method, "providerReference", res.ProviderReference)

	out := &ProcessPaymentResult{
		TransactionID:    tx.ID,
		RequiresRedirect: res.RequiresRedirect,
		ReferenceID:      res.ProviderReference,
	}
	if res.RequiresRedirect {
		out.PaymentURL = res.PaymentURL
		out.PayToken = res.PayToken
		out.OrderID = res.OrderID
	}
	return out, nil
}

func (s *Service) collectionRequest(
	op string,
	tx *transaction.Transaction,
	in ProcessPaymentInput,
) (*provider.CollectionRequest, error) {
	req := &provider.CollectionRequest{
		TransactionID: tx.ID,
		Reference:     tx.Reference,
		Amount:        tx.Amount,
		Currency:      tx.Currency,
		PayerPhone:    tx.PayerPhone,
		Message:       "Piol " + string(tx.Type) + " " + tx.Reference,
	}
	if in.Phone != "" {
		phone, err := utils.NormalizeMSISDN(in.Phone)
		if err != nil {
			return nil, domain.NewValidationError(op, "phone", err.Error())
		}
		req.PayerPhone = phone
	}
	switch tx.Method {
	case transaction.MethodMTNMoMo:
		if req.PayerPhone == "" {
			return nil, domain.NewValidationError(op, "phone", "is required for MTN Mobile Money")
		}
	case transaction.MethodOrangeMoney:
		if in.ReturnURL == "" || in.CancelURL == "" {
			return nil, domain.NewValidationError(op, "returnUrl", "returnUrl and cancelUrl are required for Orange Money")
		}
		req.ReturnURL = in.ReturnURL
		req.CancelURL = in.CancelURL
		if s.callbackBaseURL != "" {
			req.NotifyURL = s.callbackBaseURL + "/webhooks/orange"
		}
	}
	return req, nil
}

// markFailed is the compensation of a failed collection request.
func (s *Service) markFailed(ctx context.Context, tx *transaction.Transaction, reason string) {
	var changed bool
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		changed, err = repo.Transition(ctx, tx.ID, dto.StatusIn(transaction.StatusProcessing), dto.TransactionUpdate{
			Status: ptr(transaction.StatusFailed),
		})
		return err
	})
	if err != nil {
		s.logger.Error("failed to mark transaction failed", "transactionID", tx.ID, "error", err)
		return
	}
	if changed {
		s.emit(ctx, paymentFailed(tx, reason))
	}
}

// CheckPaymentStatus polls the provider of a processing transaction and
// applies the answer. Transactions that are not processing are returned as stored.
func (s *Service) CheckPaymentStatus(
	ctx context.Context,
	ac *authz.AuthContext,
	id uuid.UUID,
) (*transaction.Transaction, error) {
	const op = "payment.CheckPaymentStatus"
	if _, err := authz.RequireUser(ac, op); err != nil {
		return nil, err
	}
	tx, err := s.load(ctx, id)
	if err != nil {
		return nil, domain.AsNotFound(err, op, "transaction")
	}
	if !tx.IsParty(ac.UserID()) && !ac.User.IsAdmin() {
		return nil, domain.NewUnauthorizedError(op, "caller is not a party to the transaction")
	}
	return s.refresh(ctx, tx)
}

// storeProviderReference records what the provider returned for an accepted
// collection. The provider already holds the request, so the write is retried
// rather than given up on the first failure.
func (s *Service) storeProviderReference(
	ctx context.Context,
	id uuid.UUID,
	res *provider.CollectionResult,
) (err error) {
	for attempt := 1; attempt <= referenceWriteAttempts; attempt++ {
		if attempt > 1 {
			time.Sleep(time.Duration(attempt-1) * referenceWriteBackoff)
		}
		err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
			repo, err := uow.TransactionRepository()
			if err != nil {
				return err
			}
			_, err = repo.Transition(ctx, id, dto.StatusIn(transaction.StatusProcessing), dto.TransactionUpdate{
				MobileMoneyReference: ptr(res.ProviderReference),
				PaymentURL:           ptr(res.PaymentURL),
				PayToken:             ptr(res.PayToken),
				NotifToken:           ptr(res.NotifToken),
			})
			return err
		})
		if err == nil {
			return nil
		}
		s.logger.Warn("storing provider reference failed", "transactionID", id,
			"attempt", attempt, "error", err)
	}
	return err
}

func (s *Service) refresh(ctx context.Context, tx *transaction.Transaction) (*transaction.Transaction, error) {
	if tx.Status != transaction.StatusProcessing {
		return tx, nil
	}
	if tx.MobileMoneyReference == "" {
		s.logger.Warn("processing transaction has no provider reference", "transactionID", tx.ID,
			"reference", tx.Reference)
		return tx, nil
	}
	p, err := s.providers.Get(tx.Method)
	if err != nil {
		return nil, err
	}
	res, err := p.CheckStatus(ctx, tx.MobileMoneyReference)
	if err != nil {
		s.logger.Error("status check failed", "transactionID", tx.ID, "method", tx.Method, "error", err)
		return nil, err
	}
	return s.ApplyProviderStatus(ctx, tx.ID, *res)
}

// ApplyProviderStatus is the single mutation through which provider answers
// reach a transaction, whether they come from polling or from a webhook.
//
// Only processing transactions change: SUCCESSFUL completes the payment and
// holds the escrow, FAILED fails it, PENDING only records that the provider
// answered. Applying the same result twice is a no-op.
func (s *Service) ApplyProviderStatus(
	ctx context.Context,
	id uuid.UUID,
	res provider.StatusResult,
) (*transaction.Transaction, error) {
	const op = "payment.ApplyProviderStatus"
	next := res.Status.PaymentStatus()
	update := dto.TransactionUpdate{CallbackReceived: ptr(true)}
	if res.FinancialTransactionID != "" {
		update.ExternalID = ptr(res.FinancialTransactionID)
	}
	switch next {
	case transaction.StatusCompleted:
		update.Status = ptr(next)
		update.EscrowStatus = ptr(transaction.EscrowHeld)
		update.CompletedAt = ptr(s.now())
	case transaction.StatusFailed:
		update.Status = ptr(next)
	}

	var (
		tx      *transaction.Transaction
		changed bool
	)
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		changed, err = repo.Transition(ctx, id, dto.StatusIn(transaction.StatusProcessing), update)
		if err != nil {
			return domain.AsNotFound(err, op, "transaction")
		}
		tx, err = repo.Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	if changed {
		switch next {
		case transaction.StatusCompleted:
			s.logger.Info("payment completed, escrow held", "transactionID", tx.ID, "externalID", tx.ExternalID)
			s.emit(ctx, &events.PaymentCompleted{
				FlowEvent:     events.NewFlowEvent(tx.ID),
				TransactionID: tx.ID,
				Reference:     tx.Reference,
				PropertyID:    tx.PropertyID,
				RenterID:      tx.RenterID,
				LandlordID:    tx.LandlordID,
				Method:        string(tx.Method),
				Amount:        tx.Amount,
				Currency:      tx.Currency,
				ExternalID:    tx.ExternalID,
			})
		case transaction.StatusFailed:
			s.logger.Info("payment failed", "transactionID", tx.ID, "reason", res.Reason)
			s.emit(ctx, paymentFailed(tx, res.Reason))
		}
	}
	return tx, nil
}

// HandleOrangeNotification applies an Orange Money web payment notification.
// The notification is trusted only if it carries the notif_token issued when
// the payment session was created.
func (s *Service) HandleOrangeNotification(
	ctx context.Context,
	orderID, notifToken string,
	res provider.StatusResult,
) (*transaction.Transaction, error) {
	const op = "payment.HandleOrangeNotification"
	if orderID == "" {
		return nil, domain.NewValidationError(op, "order_id", "is required")
	}
	repo, err := s.uow.TransactionRepository()
	if err != nil {
		return nil, err
	}
	tx, err := repo.GetByMobileMoneyReference(ctx, orderID)
	if err != nil {
		return nil, domain.AsNotFound(err, op, "transaction")
	}
	if tx.Method != transaction.MethodOrangeMoney {
		return nil, domain.NewNotFoundError(op, "transaction")
	}
	if tx.NotifToken == "" || subtle.ConstantTimeCompare([]byte(tx.NotifToken), []byte(notifToken)) != 1 {
		s.logger.Warn("orange notification rejected: notif_token mismatch", "transactionID", tx.ID)
		return nil, domain.NewUnauthorizedError(op, "invalid notif_token")
	}
	return s.ApplyProviderStatus(ctx, tx.ID, res)
}

// HandleMTNCallback reacts to an MTN request-to-pay callback. The callback
// body is not trusted: the transaction is located by its externalId (our
// reference) and its status is fetched again from MTN.
func (s *Service) HandleMTNCallback(ctx context.Context, externalID string) (*transaction.Transaction, error) {
	const op = "payment.HandleMTNCallback"
	if externalID == "" {
		return nil, domain.NewValidationError(op, "externalId", "is required")
	}
	repo, err := s.uow.TransactionRepository()
	if err != nil {
		return nil, err
	}
	tx, err := repo.GetByReference(ctx, externalID)
	if err != nil {
		return nil, domain.AsNotFound(err, op, "transaction")
	}
	if tx.Method != transaction.MethodMTNMoMo {
		return nil, domain.NewNotFoundError(op, "transaction")
	}
	return s.refresh(ctx, tx)
}

// ReconcileStale re-checks transactions stuck in processing for longer than
// olderThan. It only applies what providers report and never fails a
// transaction on its own.
func (s *Service) ReconcileStale(ctx context.Context, olderThan time.Duration, limit int) (*ReconcileReport, error) {
	log := s.logger.With("context", "ReconcileStale", "olderThan", olderThan)
	repo, err := s.uow.TransactionRepository()
	if err != nil {
		return nil, err
	}
	stale, err := repo.ListStale(ctx, transaction.StatusProcessing, s.now().Add(-olderThan), limit)
	if err != nil {
		return nil, err
	}
	report := &ReconcileReport{}
	for _, tx := range stale {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Checked++
		if tx.MobileMoneyReference == "" {
			report.Unreferenced = append(report.Unreferenced, tx.Reference)
			continue
		}
		updated, err := s.refresh(ctx, tx)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("%s: %v", tx.Reference, err))
			continue
		}
		switch updated.Status {
		case transaction.StatusCompleted:
			report.Completed++
		case transaction.StatusFailed:
			report.Failed++
		default:
			report.Pending++
		}
	}
	log.Info("ReconcileStale finished", "checked", report.Checked, "completed", report.Completed,
		"failed", report.Failed, "unreferenced", len(report.Unreferenced), "errors", len(report.Errors))
	return report, nil
}

func paymentFailed(tx *transaction.Transaction, reason string) *events.PaymentFailed {
	return &events.PaymentFailed{
		FlowEvent:     events.NewFlowEvent(tx.ID),
		TransactionID: tx.ID,
		Reference:     tx.Reference,
		RenterID:      tx.RenterID,
		LandlordID:    tx.LandlordID,
		Method:        string(tx.Method),
		Amount:        tx.Amount,
		Currency:      tx.Currency,
		Reason:        reason,
	}
}
