package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/piolcm/piol/pkg/domain/verification"
	"gorm.io/datatypes"
)

// User represents a user record in the database.
type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	AuthSubject string    `gorm:"uniqueIndex;not null;size:128"`
	Name        string    `gorm:"not null;size:100"`
	Email       string    `gorm:"uniqueIndex;not null;size:255"`
	Phone       string    `gorm:"size:16"`
	Role        string    `gorm:"index;not null;size:16"`
	Password    string    `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the table name for the User model.
func (User) TableName() string { return "users" }

// Property represents a listing record in the database.
type Property struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey"`
	LandlordID         uuid.UUID  `gorm:"type:uuid;index;not null"`
	Title              string     `gorm:"not null;size:200"`
	City               string     `gorm:"index;not null;size:100"`
	Neighborhood       string     `gorm:"size:100"`
	MonthlyRent        int64      `gorm:"not null"`
	Currency           string     `gorm:"type:varchar(3);not null;default:'XAF'"`
	Status             string     `gorm:"index;not null;size:32"`
	VerificationStatus string     `gorm:"not null;size:32"`
	VerifierID         *uuid.UUID `gorm:"type:uuid"`
	VerifiedAt         *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName specifies the table name for the Property model.
func (Property) TableName() string { return "properties" }

// Transaction represents a persisted rent payment.
type Transaction struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey"`
	PropertyID            uuid.UUID `gorm:"type:uuid;index;not null"`
	RenterID              uuid.UUID `gorm:"type:uuid;index;not null"`
	LandlordID            uuid.UUID `gorm:"type:uuid;index;not null"`
	TransactionType       string    `gorm:"not null;size:32"`
	Amount                int64     `gorm:"not null"`
	Currency              string    `gorm:"type:varchar(3);not null;default:'XAF'"`
	PaymentMethod         string    `gorm:"not null;size:32"`
	PaymentStatus         string    `gorm:"index:idx_transactions_status_updated,priority:1;not null;size:32"`
	TransactionReference  string    `gorm:"uniqueIndex;not null;size:64"`
	MobileMoneyReference  *string   `gorm:"index;size:64"`
	ExternalID            *string   `gorm:"size:128"`
	EscrowStatus          string    `gorm:"not null;size:16"`
	PayerPhone            string    `gorm:"size:16"`
	CallbackReceived      bool      `gorm:"not null"`
	CompletedAt           *time.Time
	PaymentURL            string  `gorm:"size:512"`
	PayToken              string  `gorm:"size:256"`
	NotifToken            string  `gorm:"size:256"`
	DisbursementReference *string `gorm:"size:64"`
	Commission            *int64
	DisbursedAmount       *int64
	ReleasedAt            *time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time `gorm:"index:idx_transactions_status_updated,priority:2"`
}

// TableName specifies the table name for the Transaction model.
func (Transaction) TableName() string { return "transactions" }

// Verification represents an inspection assignment. Only one non-rejected
// row may exist per property and type.
type Verification struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	PropertyID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_verifications_active,where:status <> 'rejected'"`
	VerificationType string    `gorm:"not null;size:32;uniqueIndex:idx_verifications_active,where:status <> 'rejected'"`
	VerifierID       uuid.UUID `gorm:"type:uuid;index;not null"`
	Status           string    `gorm:"not null;size:16"`
	Notes            string    `gorm:"type:text"`
	VisitDate        *time.Time
	Documents        datatypes.JSONSlice[verification.Document] `gorm:"not null"`
	VisitPhotos      datatypes.JSONSlice[verification.Photo]    `gorm:"not null"`
	CompletedAt      *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName specifies the table name for the Verification model.
func (Verification) TableName() string { return "verifications" }

// Notification represents a message addressed to one user.
type Notification struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID  `gorm:"type:uuid;index;not null"`
	Type      string     `gorm:"not null;size:32"`
	Title     string     `gorm:"not null;size:200"`
	Message   string     `gorm:"type:text;not null"`
	RelatedID *uuid.UUID `gorm:"type:uuid"`
	Read      bool       `gorm:"not null"`
	CreatedAt time.Time  `gorm:"index"`
}

// TableName specifies the table name for the Notification model.
func (Notification) TableName() string { return "notifications" }

// Models lists every persisted model, in dependency order.
func Models() []any {
	return []any{&User{}, &Property{}, &Transaction{}, &Verification{}, &Notification{}}
}
