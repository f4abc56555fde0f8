package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/piolcm/piol/pkg/domain/transaction"
	"github.com/piolcm/piol/pkg/dto"
	repotx "github.com/piolcm/piol/pkg/repository/transaction"
	"gorm.io/gorm"
)

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a transaction repository on the given session.
func NewTransactionRepository(db *gorm.DB) repotx.Repository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, tx *transaction.Transaction) error {
	m := mapTransactionToModel(tx)
	return WrapError(func() error {
		return r.db.WithContext(ctx).Create(&m).Error
	})
}

func (r *transactionRepository) Get(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *transactionRepository) GetByReference(ctx context.Context, reference string) (*transaction.Transaction, error) {
	return r.first(ctx, "transaction_reference = ?", reference)
}

func (r *transactionRepository) GetByMobileMoneyReference(
	ctx context.Context,
	reference string,
) (*transaction.Transaction, error) {
	return r.first(ctx, "mobile_money_reference = ?", reference)
}

func (r *transactionRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*transaction.Transaction, error) {
	var models []Transaction
	if err := r.db.WithContext(ctx).
		Where("renter_id = ? OR landlord_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return mapTransactionsToDomain(models), nil
}

func (r *transactionRepository) ListStale(
	ctx context.Context,
	status transaction.Status,
	cutoff time.Time,
	limit int,
) ([]*transaction.Transaction, error) {
	var models []Transaction
	q := r.db.WithContext(ctx).
		Where("payment_status = ? AND updated_at < ?", string(status), cutoff).
		Order("updated_at ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&models).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return mapTransactionsToDomain(models), nil
}

// Transition is a single conditional UPDATE, so two concurrent writers cannot
// both move the row out of the guarded state.
func (r *transactionRepository) Transition(
	ctx context.Context,
	id uuid.UUID,
	guard dto.TransactionGuard,
	update dto.TransactionUpdate,
) (bool, error) {
	updates := mapTransactionUpdate(update)
	updates["updated_at"] = time.Now().UTC()

	q := r.db.WithContext(ctx).Model(&Transaction{}).Where("id = ?", id)
	if len(guard.Status) > 0 {
		statuses := make([]string, len(guard.Status))
		for i, s := range guard.Status {
			statuses[i] = string(s)
		}
		q = q.Where("payment_status IN ?", statuses)
	}
	if len(guard.Escrow) > 0 {
		escrow := make([]string, len(guard.Escrow))
		for i, s := range guard.Escrow {
			escrow[i] = string(s)
		}
		q = q.Where("escrow_status IN ?", escrow)
	}

	res := q.Updates(updates)
	if res.Error != nil {
		return false, MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected > 0 {
		return true, nil
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&Transaction{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, MapGormErrorToDomain(err)
	}
	if count == 0 {
		return false, MapGormErrorToDomain(gorm.ErrRecordNotFound)
	}
	return false, nil
}

func (r *transactionRepository) first(ctx context.Context, query string, arg any) (*transaction.Transaction, error) {
	var m Transaction
	if err := r.db.WithContext(ctx).Where(query, arg).First(&m).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return mapTransactionToDomain(&m), nil
}

func mapTransactionUpdate(u dto.TransactionUpdate) map[string]any {
	updates := make(map[string]any)
	if u.Status != nil {
		updates["payment_status"] = string(*u.Status)
	}
	if u.EscrowStatus != nil {
		updates["escrow_status"] = string(*u.EscrowStatus)
	}
	if u.MobileMoneyReference != nil {
		updates["mobile_money_reference"] = *u.MobileMoneyReference
	}
	if u.ExternalID != nil {
		updates["external_id"] = *u.ExternalID
	}
	if u.PayerPhone != nil {
		updates["payer_phone"] = *u.PayerPhone
	}
	if u.CallbackReceived != nil {
		updates["callback_received"] = *u.CallbackReceived
	}
	if u.CompletedAt != nil {
		updates["completed_at"] = *u.CompletedAt
	}
	if u.PaymentURL != nil {
		updates["payment_url"] = *u.PaymentURL
	}
	if u.PayToken != nil {
		updates["pay_token"] = *u.PayToken
	}
	if u.NotifToken != nil {
		updates["notif_token"] = *u.NotifToken
	}
	if u.DisbursementReference != nil {
		updates["disbursement_reference"] = *u.DisbursementReference
	}
	if u.Commission != nil {
		updates["commission"] = *u.Commission
	}
	if u.DisbursedAmount != nil {
		updates["disbursed_amount"] = *u.DisbursedAmount
	}
	if u.ReleasedAt != nil {
		updates["released_at"] = *u.ReleasedAt
	}
	return updates
}

func mapTransactionToModel(tx *transaction.Transaction) Transaction {
	return Transaction{
		ID:                    tx.ID,
		PropertyID:            tx.PropertyID,
		RenterID:              tx.RenterID,
		LandlordID:            tx.LandlordID,
		TransactionType:       string(tx.Type),
		Amount:                tx.Amount,
		Currency:              tx.Currency,
		PaymentMethod:         string(tx.Method),
		PaymentStatus:         string(tx.Status),
		TransactionReference:  tx.Reference,
		MobileMoneyReference:  nullable(tx.MobileMoneyReference),
		ExternalID:            nullable(tx.ExternalID),
		EscrowStatus:          string(tx.EscrowStatus),
		PayerPhone:            tx.PayerPhone,
		CallbackReceived:      tx.CallbackReceived,
		CompletedAt:           tx.CompletedAt,
		PaymentURL:            tx.PaymentURL,
		PayToken:              tx.PayToken,
		NotifToken:            tx.NotifToken,
		DisbursementReference: nullable(tx.DisbursementReference),
		Commission:            tx.Commission,
		DisbursedAmount:       tx.DisbursedAmount,
		ReleasedAt:            tx.ReleasedAt,
		CreatedAt:             tx.CreatedAt,
		UpdatedAt:             tx.UpdatedAt,
	}
}

func mapTransactionToDomain(m *Transaction) *transaction.Transaction {
	return &transaction.Transaction{
		ID:                    m.ID,
		PropertyID:            m.PropertyID,
		RenterID:              m.RenterID,
		LandlordID:            m.LandlordID,
		Type:                  transaction.Type(m.TransactionType),
		Amount:                m.Amount,
		Currency:              m.Currency,
		Method:                transaction.Method(m.PaymentMethod),
		Status:                transaction.Status(m.PaymentStatus),
		Reference:             m.TransactionReference,
		MobileMoneyReference:  deref(m.MobileMoneyReference),
		ExternalID:            deref(m.ExternalID),
		EscrowStatus:          transaction.EscrowStatus(m.EscrowStatus),
		PayerPhone:            m.PayerPhone,
		CallbackReceived:      m.CallbackReceived,
		CompletedAt:           m.CompletedAt,
		PaymentURL:            m.PaymentURL,
		PayToken:              m.PayToken,
		NotifToken:            m.NotifToken,
		DisbursementReference: deref(m.DisbursementReference),
		Commission:            m.Commission,
		DisbursedAmount:       m.DisbursedAmount,
		ReleasedAt:            m.ReleasedAt,
		CreatedAt:             m.CreatedAt,
		UpdatedAt:             m.UpdatedAt,
	}
}

func mapTransactionsToDomain(models []Transaction) []*transaction.Transaction {
	out := make([]*transaction.Transaction, 0, len(models))
	for i := range models {
		out = append(out, mapTransactionToDomain(&models[i]))
	}
	return out
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

var _ repotx.Repository = (*transactionRepository)(nil)
