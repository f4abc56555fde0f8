package property

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/piolcm/piol/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDraft(t *testing.T) *Property {
	t.Helper()
	p, err := New(uuid.New(), "Studio Bastos", "Yaoundé", "Bastos", 150000, "")
	require.NoError(t, err)
	return p
}

func TestNew(t *testing.T) {
	t.Parallel()

	p := newDraft(t)
	assert.Equal(t, StatusDraft, p.Status)
	assert.Equal(t, VerificationPending, p.VerificationStatus)
	assert.Equal(t, DefaultCurrency, p.Currency)
	assert.False(t, p.Payable())

	_, err := New(uuid.New(), "Studio", "Douala", "", 0, "XAF")
	var de *domain.Error
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "monthlyRent", de.Field)
}

func TestVerificationLifecycle(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	p := newDraft(t)

	require.ErrorIs(t, p.StartVerification(now), domain.ErrInvalidState)
	require.NoError(t, p.SubmitForVerification(now))
	assert.Equal(t, StatusPendingVerification, p.Status)
	require.ErrorIs(t, p.SubmitForVerification(now), domain.ErrInvalidState)

	require.NoError(t, p.StartVerification(now))
	assert.Equal(t, VerificationInProgress, p.VerificationStatus)

	verifier := uuid.New()
	require.NoError(t, p.Approve(verifier, now))
	assert.Equal(t, StatusVerified, p.Status)
	assert.Equal(t, VerificationApproved, p.VerificationStatus)
	require.NotNil(t, p.VerifiedAt)
	assert.Equal(t, verifier, *p.VerifierID)
	assert.True(t, p.Payable())

	require.NoError(t, p.Approve(uuid.New(), now.Add(time.Hour)), "a second approved check")
	assert.Equal(t, verifier, *p.VerifierID)
	assert.Equal(t, now, *p.VerifiedAt)
}

func TestApproveAfterRejectionFails(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	p := newDraft(t)
	require.NoError(t, p.SubmitForVerification(now))
	require.NoError(t, p.StartVerification(now))
	p.Reject(now)

	var de *domain.Error
	require.ErrorAs(t, p.Approve(uuid.New(), now), &de)
	assert.Equal(t, domain.KindInvalidState, de.Kind)
	assert.Equal(t, string(StatusDraft), de.State)
	assert.Equal(t, StatusDraft, p.Status)
	assert.Equal(t, VerificationRejected, p.VerificationStatus)
	assert.False(t, p.Payable())
}

func TestRejectReturnsToDraft(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	p := newDraft(t)
	require.NoError(t, p.SubmitForVerification(now))
	require.NoError(t, p.StartVerification(now))
	p.Reject(now)

	assert.Equal(t, StatusDraft, p.Status)
	assert.Equal(t, VerificationRejected, p.VerificationStatus)
	require.NoError(t, p.SubmitForVerification(now), "rejected listings can be resubmitted")
	assert.Equal(t, VerificationPending, p.VerificationStatus)
}

func TestSetActive(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	tests := []struct {
		name       string
		status     Status
		vstatus    VerificationStatus
		active     bool
		wantErr    bool
		wantStatus Status
	}{
		{"activate approved", StatusVerified, VerificationApproved, true, false, StatusActive},
		{"activate pending", StatusPendingVerification, VerificationPending, true, true, StatusPendingVerification},
		{"activate in progress", StatusPendingVerification, VerificationInProgress, true, true, StatusPendingVerification},
		{"activate rejected", StatusDraft, VerificationRejected, true, true, StatusDraft},
		{"activate archived", StatusArchived, VerificationApproved, true, true, StatusArchived},
		{"deactivate active", StatusActive, VerificationApproved, false, false, StatusVerified},
		{"deactivate draft", StatusDraft, VerificationPending, false, true, StatusDraft},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := &Property{Status: tt.status, VerificationStatus: tt.vstatus}
			err := p.SetActive(tt.active, now)
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrInvalidState)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantStatus, p.Status)
		})
	}
}

func TestArchive(t *testing.T) {
	t.Parallel()

	p := newDraft(t)
	require.NoError(t, p.Archive(time.Now()))
	assert.Equal(t, StatusArchived, p.Status)
	assert.ErrorIs(t, p.Archive(time.Now()), domain.ErrInvalidState)
}
