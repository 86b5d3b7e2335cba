//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"storent/internal/domain/status"
	"storent/internal/pkg/clock"
	"storent/internal/pkg/errs"
	"storent/internal/usecase/commands"
	"storent/internal/usecase/shared"
	"storent/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	initErr     error
	initCalls   int
	verifyOK    bool
	verifyCalls int
}

func (g *fakeGateway) Init(_ context.Context, req commands.GatewayInitRequest) (*commands.GatewayInitResult, error) {
	g.initCalls++
	if g.initErr != nil {
		return nil, g.initErr
	}
	return &commands.GatewayInitResult{
		GatewayPaymentID: "gw-" + req.OrderID,
		PaymentURL:       "https://pay.example.com/" + req.OrderID,
		Status:           "NEW",
	}, nil
}

func (g *fakeGateway) VerifyNotification(map[string]string) bool {
	g.verifyCalls++
	return g.verifyOK
}

type paymentFixture struct {
	store   *fakeStore
	cache   *fakeCache
	gateway *fakeGateway
	clock   *clock.MockClock
	uc      commands.PaymentCommands
	active  *shared.StatusSnapshot
}

func newPaymentFixture(t *testing.T) *paymentFixture {
	t.Helper()
	store := newFakeStore()
	cache := newFakeCache()
	gw := &fakeGateway{verifyOK: true}
	clk := clock.NewMockClock(time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC))

	f := &paymentFixture{
		store:   store,
		cache:   cache,
		gateway: gw,
		clock:   clk,
		uc:      commands.NewPaymentUseCase(newFakeUoW(store), gw, cache, clk),
	}
	store.seedStatus(builder.NewStatusBuilder().AsWaiting().BuildSnapshot())
	f.active = store.seedStatus(builder.NewStatusBuilder().BuildSnapshot())
	store.seedStatus(builder.NewStatusBuilder().AsClosed().BuildSnapshot())
	return f
}

func confirmedNotif(paymentID uuid.UUID) commands.GatewayNotification {
	return commands.GatewayNotification{
		PaymentID: paymentID,
		Status:    "CONFIRMED",
		Success:   true,
		Params:    map[string]string{"OrderId": paymentID.String()},
	}
}

func TestInitPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("first payment goes pending with a payment URL", func(t *testing.T) {
		f := newPaymentFixture(t)
		clientID := uuid.New()
		cellID := uuid.New()
		days := 30

		result, err := f.uc.InitPayment(ctx, commands.InitPaymentRequest{
			ClientID:    &clientID,
			CellID:      &cellID,
			RentalDays:  &days,
			AmountCents: 150000,
		})
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.NotEmpty(t, result.PaymentURL)

		snap := f.store.payments[result.PaymentID]
		require.NotNil(t, snap)
		assert.Equal(t, shared.PaymentStatusPending, snap.Status)
		require.NotNil(t, snap.GatewayPaymentID)
	})

	t.Run("extension payment requires an existing rental", func(t *testing.T) {
		f := newPaymentFixture(t)
		missing := uuid.New()
		days := 10

		_, err := f.uc.InitPayment(ctx, commands.InitPaymentRequest{
			RentalID:    &missing,
			RentalDays:  &days,
			AmountCents: 50000,
		})
		assert.ErrorIs(t, err, commands.ErrRentalNotFound)
	})

	t.Run("gateway failure marks the payment failed", func(t *testing.T) {
		f := newPaymentFixture(t)
		f.gateway.initErr = errs.New("connection refused")
		clientID := uuid.New()
		cellID := uuid.New()
		days := 30

		_, err := f.uc.InitPayment(ctx, commands.InitPaymentRequest{
			ClientID:    &clientID,
			CellID:      &cellID,
			RentalDays:  &days,
			AmountCents: 150000,
		})
		assert.ErrorIs(t, err, commands.ErrGatewayUnavailable)

		require.Len(t, f.store.payments, 1)
		for _, snap := range f.store.payments {
			assert.Equal(t, shared.PaymentStatusFailed, snap.Status)
		}
	})

	t.Run("validation", func(t *testing.T) {
		f := newPaymentFixture(t)
		clientID := uuid.New()
		days := 30

		cases := []struct {
			name string
			req  commands.InitPaymentRequest
		}{
			{"non-positive amount", commands.InitPaymentRequest{AmountCents: 0}},
			{"no rental and no cell", commands.InitPaymentRequest{ClientID: &clientID, RentalDays: &days, AmountCents: 100}},
			{"first payment without days", commands.InitPaymentRequest{ClientID: &clientID, CellID: &clientID, AmountCents: 100}},
		}
		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				_, err := f.uc.InitPayment(ctx, c.req)
				assert.ErrorIs(t, err, commands.ErrDomainValidation)
				assert.Zero(t, f.gateway.initCalls)
			})
		}
	})
}

func TestConfirmPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("signature mismatch stops everything", func(t *testing.T) {
		f := newPaymentFixture(t)
		f.gateway.verifyOK = false
		snap := f.store.seedPayment(builder.NewPaymentBuilder().BuildSnapshot())

		err := f.uc.ConfirmPayment(ctx, confirmedNotif(snap.ID))
		assert.ErrorIs(t, err, commands.ErrSignatureMismatch)
		assert.Equal(t, shared.PaymentStatusNew, f.store.payments[snap.ID].Status)
	})

	t.Run("unknown payment", func(t *testing.T) {
		f := newPaymentFixture(t)

		err := f.uc.ConfirmPayment(ctx, confirmedNotif(uuid.New()))
		assert.ErrorIs(t, err, commands.ErrPaymentNotFound)
	})

	t.Run("first payment opens an active rental on the paid cell", func(t *testing.T) {
		f := newPaymentFixture(t)
		pay := builder.NewPaymentBuilder().BuildSnapshot()
		f.store.seedPayment(pay)
		f.store.seedCells(*pay.CellID)
		relay := f.store.seedRelay(*pay.CellID)

		require.NoError(t, f.uc.ConfirmPayment(ctx, confirmedNotif(pay.ID)))

		paid := f.store.payments[pay.ID]
		assert.Equal(t, shared.PaymentStatusPaid, paid.Status)
		require.NotNil(t, paid.RentalID, "the new rental is attached back")

		rentalSnap := f.store.rentals[*paid.RentalID]
		require.NotNil(t, rentalSnap)
		assert.Equal(t, status.KindActive, rentalSnap.Kind)
		assert.Equal(t, *pay.ClientID, rentalSnap.ClientID)
		assert.Equal(t, f.clock.Now().AddDate(0, 0, *pay.RentalDays), rentalSnap.EndDate)

		grant := f.store.grantFor(relay.ID, *paid.RentalID)
		require.NotNil(t, grant)
		assert.True(t, grant.active)
	})

	t.Run("extension payment pushes the rental forward", func(t *testing.T) {
		f := newPaymentFixture(t)
		cellID := uuid.New()
		f.store.seedCells(cellID)
		now := f.clock.Now()
		rentalSnap := builder.NewRentalBuilder().
			WithCellIDs(cellID).
			WithPeriod(now.AddDate(0, 0, -10), now.AddDate(0, 0, 20)).
			BuildSnapshot()
		rentalSnap.StatusID = f.active.ID
		f.store.seedRental(rentalSnap)

		pay := builder.NewPaymentBuilder().AsExtension(rentalSnap.ID, 15).BuildSnapshot()
		f.store.seedPayment(pay)

		require.NoError(t, f.uc.ConfirmPayment(ctx, confirmedNotif(pay.ID)))

		updated := f.store.rentals[rentalSnap.ID]
		assert.Equal(t, now.AddDate(0, 0, 35), updated.EndDate)
		assert.Equal(t, 1, updated.ExtensionCount)
	})

	t.Run("repeated callback is acknowledged once", func(t *testing.T) {
		f := newPaymentFixture(t)
		pay := builder.NewPaymentBuilder().BuildSnapshot()
		f.store.seedPayment(pay)
		f.store.seedCells(*pay.CellID)

		require.NoError(t, f.uc.ConfirmPayment(ctx, confirmedNotif(pay.ID)))
		createdAfterFirst := f.store.createdCount

		require.NoError(t, f.uc.ConfirmPayment(ctx, confirmedNotif(pay.ID)))
		assert.Equal(t, createdAfterFirst, f.store.createdCount, "no second rental")
	})

	t.Run("failure statuses mark the payment failed", func(t *testing.T) {
		for _, gwStatus := range []string{"REJECTED", "CANCELED", "REFUNDED"} {
			t.Run(gwStatus, func(t *testing.T) {
				f := newPaymentFixture(t)
				pay := f.store.seedPayment(builder.NewPaymentBuilder().BuildSnapshot())

				notif := confirmedNotif(pay.ID)
				notif.Status = gwStatus
				notif.Success = false

				require.NoError(t, f.uc.ConfirmPayment(ctx, notif))
				assert.Equal(t, shared.PaymentStatusFailed, f.store.payments[pay.ID].Status)
				assert.Zero(t, f.store.createdCount)
			})
		}
	})

	t.Run("intermediate statuses change nothing", func(t *testing.T) {
		f := newPaymentFixture(t)
		pay := f.store.seedPayment(builder.NewPaymentBuilder().WithStatus(shared.PaymentStatusPending).BuildSnapshot())

		notif := confirmedNotif(pay.ID)
		notif.Status = "AUTHORIZED"

		require.NoError(t, f.uc.ConfirmPayment(ctx, notif))
		assert.Equal(t, shared.PaymentStatusPending, f.store.payments[pay.ID].Status)
	})
}
