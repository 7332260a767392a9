package donation

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRequest(t *testing.T) *Request {
	t.Helper()
	req, err := NewRequest(uuid.New(), "requester@example.com", decimal.NewFromInt(3))
	require.NoError(t, err)
	return req
}

func TestRequestAddDonation(t *testing.T) {
	t.Run("adds items from multiple donors", func(t *testing.T) {
		req := newTestRequest(t)

		require.NoError(t, req.AddDonation(uuid.New(), "donor1@example.com"))
		require.NoError(t, req.AddDonation(uuid.New(), "donor2@example.com"))
		require.NoError(t, req.AddDonation(uuid.New(), "donor1@example.com"))

		assert.Len(t, req.Items, 3)
		assert.ElementsMatch(t, []string{"donor1@example.com", "donor2@example.com"}, req.DonorEmails())
	})

	t.Run("rejects own donation", func(t *testing.T) {
		req := newTestRequest(t)
		err := req.AddDonation(uuid.New(), "requester@example.com")
		assert.ErrorContains(t, err, "own donation")
	})

	t.Run("rejects duplicate donation", func(t *testing.T) {
		req := newTestRequest(t)
		donationID := uuid.New()
		require.NoError(t, req.AddDonation(donationID, "donor@example.com"))
		assert.Error(t, req.AddDonation(donationID, "donor@example.com"))
	})
}

func TestRequestPlace(t *testing.T) {
	t.Run("raises placement event", func(t *testing.T) {
		req := newTestRequest(t)
		require.NoError(t, req.AddDonation(uuid.New(), "donor@example.com"))

		require.NoError(t, req.Place())

		events := req.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeRequestPlaced, events[0].EventType())
	})

	t.Run("requires at least one donation", func(t *testing.T) {
		req := newTestRequest(t)
		assert.Error(t, req.Place())
	})
}

func TestRequestLifecycle(t *testing.T) {
	t.Run("happy path pending to completed", func(t *testing.T) {
		req := newTestRequest(t)
		require.NoError(t, req.AddDonation(uuid.New(), "donor@example.com"))

		require.NoError(t, req.Approve())
		assert.Equal(t, RequestStatusApproved, req.Status)
		require.NotNil(t, req.ApprovedAt)

		require.NoError(t, req.Ship())
		assert.Equal(t, RequestStatusReceiving, req.Status)
		require.NotNil(t, req.ShippedAt)

		require.NoError(t, req.Complete())
		assert.Equal(t, RequestStatusCompleted, req.Status)
		require.NotNil(t, req.CompletedAt)
	})

	t.Run("decline requires reason and is terminal", func(t *testing.T) {
		req := newTestRequest(t)
		assert.Error(t, req.Decline(""))
		require.NoError(t, req.Decline("no longer available"))

		assert.Equal(t, RequestStatusDeclined, req.Status)
		assert.Error(t, req.Approve())
		assert.Error(t, req.Ship())
	})

	t.Run("cannot skip approval", func(t *testing.T) {
		req := newTestRequest(t)
		assert.Error(t, req.Ship())
		assert.Error(t, req.Complete())
	})

	t.Run("cannot modify after approval", func(t *testing.T) {
		req := newTestRequest(t)
		require.NoError(t, req.AddDonation(uuid.New(), "donor@example.com"))
		require.NoError(t, req.Approve())

		assert.Error(t, req.AddDonation(uuid.New(), "donor2@example.com"))
	})
}

func TestRequestStatusTransitions(t *testing.T) {
	cases := []struct {
		from    RequestStatus
		to      RequestStatus
		allowed bool
	}{
		{RequestStatusPending, RequestStatusApproved, true},
		{RequestStatusPending, RequestStatusDeclined, true},
		{RequestStatusPending, RequestStatusReceiving, false},
		{RequestStatusApproved, RequestStatusReceiving, true},
		{RequestStatusApproved, RequestStatusDeclined, false},
		{RequestStatusReceiving, RequestStatusCompleted, true},
		{RequestStatusCompleted, RequestStatusPending, false},
		{RequestStatusDeclined, RequestStatusApproved, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}
