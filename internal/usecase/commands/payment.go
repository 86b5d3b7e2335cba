package commands

import (
	"context"
	"strings"

	"storent/internal/domain/rental"
	"storent/internal/domain/status"
	"storent/internal/infra"
	"storent/internal/pkg/clock"
	"storent/internal/pkg/errs"
	"storent/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrPaymentNotFound    = errs.New("payment not found")
	ErrSignatureMismatch  = errs.New("callback signature mismatch")
	ErrGatewayUnavailable = errs.New("payment gateway unavailable")
)

// Gateway callback statuses that end the payment's life.
const (
	gatewayStatusConfirmed = "CONFIRMED"
	gatewayStatusRejected  = "REJECTED"
	gatewayStatusCanceled  = "CANCELED"
	gatewayStatusRefunded  = "REFUNDED"
)

type InitPaymentRequest struct {
	// Extension payments point at an existing rental; first payments carry
	// the client, cell and duration instead.
	RentalID    *uuid.UUID
	ClientID    *uuid.UUID
	CellID      *uuid.UUID
	RentalDays  *int
	AmountCents int64
	Description string
}

type InitPaymentResult struct {
	PaymentID  uuid.UUID
	PaymentURL string
}

// GatewayNotification is the parsed server-to-server callback. Params keeps
// the raw flat fields for signature verification.
type GatewayNotification struct {
	PaymentID uuid.UUID
	Status    string
	Success   bool
	Params    map[string]string
}

type PaymentCommands interface {
	InitPayment(ctx context.Context, req InitPaymentRequest) (*InitPaymentResult, error)
	ConfirmPayment(ctx context.Context, notif GatewayNotification) error
}

type paymentUseCaseImpl struct {
	uow     shared.UnitOfWork
	gateway PaymentGateway
	cache   shared.AccessDecisionCache
	clock   clock.Clock
}

func NewPaymentUseCase(uow shared.UnitOfWork, gateway PaymentGateway, cache shared.AccessDecisionCache, clk clock.Clock) PaymentCommands {
	return &paymentUseCaseImpl{uow: uow, gateway: gateway, cache: cache, clock: clk}
}

func (uc *paymentUseCaseImpl) InitPayment(ctx context.Context, req InitPaymentRequest) (*InitPaymentResult, error) {
	if err := validateInitRequest(req); err != nil {
		return nil, err
	}

	record := &shared.PaymentRecord{
		ID:          uuid.New(),
		ClientID:    req.ClientID,
		CellID:      req.CellID,
		RentalID:    req.RentalID,
		RentalDays:  req.RentalDays,
		AmountCents: req.AmountCents,
		Description: strings.TrimSpace(req.Description),
		Status:      shared.PaymentStatusNew,
		CreatedAt:   uc.clock.Now(),
	}

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if req.RentalID != nil {
			if _, derr := loadRental(ctx, tx, *req.RentalID); derr != nil {
				return derr
			}
		}
		return tx.Payments().Create(ctx, record)
	})
	if err != nil {
		return nil, err
	}

	initResult, err := uc.gateway.Init(ctx, GatewayInitRequest{
		OrderID:     record.ID.String(),
		AmountCents: record.AmountCents,
		Description: record.Description,
	})
	if err != nil {
		_ = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			return tx.Payments().MarkFailed(ctx, record.ID)
		})
		return nil, errs.Mark(err, ErrGatewayUnavailable)
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Payments().SetGatewayDetails(ctx, record.ID, initResult.GatewayPaymentID, initResult.PaymentURL, shared.PaymentStatusPending)
	})
	if err != nil {
		return nil, err
	}

	return &InitPaymentResult{PaymentID: record.ID, PaymentURL: initResult.PaymentURL}, nil
}

// ConfirmPayment applies a verified gateway callback. Repeated callbacks for
// an already-paid order are acknowledged without touching the rental again.
func (uc *paymentUseCaseImpl) ConfirmPayment(ctx context.Context, notif GatewayNotification) error {
	if !uc.gateway.VerifyNotification(notif.Params) {
		return ErrSignatureMismatch
	}

	var (
		rentalID uuid.UUID
		relayIDs []uuid.UUID
	)
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, derr := tx.Reads().PaymentByID(ctx, notif.PaymentID)
		if derr != nil {
			if infra.IsKind(derr, infra.NotFound) {
				return ErrPaymentNotFound
			}
			return derr
		}

		switch {
		case isFailureStatus(notif.Status):
			return tx.Payments().MarkFailed(ctx, snap.ID)
		case !notif.Success || !strings.EqualFold(notif.Status, gatewayStatusConfirmed):
			// Intermediate statuses (AUTHORIZED and friends) are
			// acknowledged without state changes.
			return nil
		}

		paid, derr := tx.Payments().MarkPaid(ctx, snap.ID, uc.clock.Now())
		if derr != nil {
			return derr
		}
		if !paid {
			return nil
		}

		r, derr := uc.applyPaidPayment(ctx, tx, snap)
		if derr != nil {
			return derr
		}
		rentalID = r.ID()

		relayIDs, derr = recomputeAccessGrants(ctx, tx, r, uc.clock.Now())
		return derr
	})
	if err != nil {
		return err
	}

	if rentalID != uuid.Nil {
		uc.cache.Forget(ctx, rentalID, relayIDs)
	}
	return nil
}

// applyPaidPayment dispatches on linkage: a payment bound to a rental
// extends it, an unbound one opens a new rental on the paid cell.
func (uc *paymentUseCaseImpl) applyPaidPayment(ctx context.Context, tx shared.Tx, snap *shared.PaymentSnapshot) (*rental.Rental, error) {
	now := uc.clock.Now()

	if snap.RentalID != nil {
		days := 0
		if snap.RentalDays != nil {
			days = *snap.RentalDays
		}
		amount, err := rental.DaysAmount(days)
		if err != nil {
			return nil, errs.Mark(err, ErrDomainValidation)
		}
		return extendRental(ctx, tx, *snap.RentalID, amount, now)
	}

	if snap.ClientID == nil || snap.CellID == nil || snap.RentalDays == nil {
		return nil, errs.Mark(errs.New("payment lacks rental parameters"), ErrDomainValidation)
	}

	period, err := rental.NewPeriod(now, now.AddDate(0, 0, *snap.RentalDays))
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	activeStatus, err := tx.Reads().StatusByKind(ctx, status.KindActive)
	if err != nil {
		return nil, err
	}
	activeID := activeStatus.ID

	r, err := createRental(ctx, tx, *snap.ClientID, []uuid.UUID{*snap.CellID}, period, &activeID, now)
	if err != nil {
		return nil, err
	}

	if err := tx.Payments().AttachRental(ctx, snap.ID, r.ID()); err != nil {
		return nil, err
	}
	return r, nil
}

func validateInitRequest(req InitPaymentRequest) error {
	if req.AmountCents <= 0 {
		return errs.Mark(errs.New("payment amount must be positive"), ErrDomainValidation)
	}
	if req.RentalID != nil {
		if req.RentalDays == nil || *req.RentalDays <= 0 {
			return errs.Mark(errs.New("extension payment requires rental days"), ErrDomainValidation)
		}
		return nil
	}
	if req.ClientID == nil || req.CellID == nil {
		return errs.Mark(errs.New("payment requires a rental or a client and cell"), ErrDomainValidation)
	}
	if req.RentalDays == nil || *req.RentalDays <= 0 {
		return errs.Mark(errs.New("payment requires rental days"), ErrDomainValidation)
	}
	return nil
}

func isFailureStatus(s string) bool {
	switch strings.ToUpper(s) {
	case gatewayStatusRejected, gatewayStatusCanceled, gatewayStatusRefunded:
		return true
	default:
		return false
	}
}
