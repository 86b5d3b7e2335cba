package rental

import (
	"errors"
	"strings"
	"time"

	"storent/internal/domain/status"

	"github.com/google/uuid"
)

var (
	ErrNoCells            = errors.New("rental requires at least one cell")
	ErrRentalClosed       = errors.New("rental is closed")
	ErrInvalidTransition  = errors.New("status transition not allowed")
	ErrCommentRequired    = errors.New("closure comment required")
	ErrCloseViaTransition = errors.New("closing requires the close operation with a comment")
)

// Rental is one lease of one or more storage cells by a client. Rows are
// never physically deleted; closure is a terminal status with an audit
// comment.
type Rental struct {
	id             uuid.UUID
	clientID       uuid.UUID
	cellIDs        []uuid.UUID
	period         Period
	statusID       uuid.UUID
	kind           status.Kind
	extensionCount int
	lastExtendedAt *time.Time
	closedAt       *time.Time
	closeComment   string
	createdAt      time.Time
	updatedAt      time.Time
}

func NewRental(clientID uuid.UUID, cellIDs []uuid.UUID, period Period, statusID uuid.UUID, kind status.Kind, now time.Time) (*Rental, error) {
	cells := dedupeCells(cellIDs)
	if len(cells) == 0 {
		return nil, ErrNoCells
	}
	if !kind.IsValid() {
		return nil, status.ErrInvalidKind
	}
	if kind.IsTerminal() {
		return nil, ErrCloseViaTransition
	}

	return &Rental{
		id:        uuid.New(),
		clientID:  clientID,
		cellIDs:   cells,
		period:    period,
		statusID:  statusID,
		kind:      kind,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructRental(
	id, clientID uuid.UUID,
	cellIDs []uuid.UUID,
	period Period,
	statusID uuid.UUID,
	kind status.Kind,
	extensionCount int,
	lastExtendedAt, closedAt *time.Time,
	closeComment string,
	createdAt, updatedAt time.Time,
) *Rental {
	return &Rental{
		id:             id,
		clientID:       clientID,
		cellIDs:        cellIDs,
		period:         period,
		statusID:       statusID,
		kind:           kind,
		extensionCount: extensionCount,
		lastExtendedAt: lastExtendedAt,
		closedAt:       closedAt,
		closeComment:   closeComment,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

// IsActive is derived state: inside the window and not closed.
func (r *Rental) IsActive(now time.Time) bool {
	return !r.kind.IsTerminal() && r.period.Contains(now)
}

func (r *Rental) HasExpired(now time.Time) bool {
	return !now.Before(r.period.End())
}

// Extend pushes the end date forward by the amount. The start date never
// moves, so the new end is strictly greater than the old one.
func (r *Rental) Extend(amount ExtensionAmount, now time.Time) error {
	if r.kind.IsTerminal() {
		return ErrRentalClosed
	}

	newEnd := amount.Apply(r.period.End())
	period, err := NewPeriod(r.period.Start(), newEnd)
	if err != nil {
		return err
	}

	r.period = period
	r.extensionCount++
	extendedAt := now
	r.lastExtendedAt = &extendedAt
	r.updatedAt = now
	return nil
}

// ChangeStatus walks one edge of the lifecycle graph. Closing must go
// through Close so the audit comment is captured.
func (r *Rental) ChangeStatus(to status.Kind, statusID uuid.UUID, now time.Time) error {
	if to.IsTerminal() {
		return ErrCloseViaTransition
	}
	if !r.kind.CanTransitionTo(to) {
		return ErrInvalidTransition
	}

	r.kind = to
	r.statusID = statusID
	r.updatedAt = now
	return nil
}

func (r *Rental) Close(comment string, statusID uuid.UUID, now time.Time) error {
	if r.kind.IsTerminal() {
		return ErrRentalClosed
	}
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return ErrCommentRequired
	}

	r.kind = status.KindClosed
	r.statusID = statusID
	closedAt := now
	r.closedAt = &closedAt
	r.closeComment = comment
	r.updatedAt = now
	return nil
}

func (r *Rental) ID() uuid.UUID             { return r.id }
func (r *Rental) ClientID() uuid.UUID       { return r.clientID }
func (r *Rental) CellIDs() []uuid.UUID      { return r.cellIDs }
func (r *Rental) Period() Period            { return r.period }
func (r *Rental) StatusID() uuid.UUID       { return r.statusID }
func (r *Rental) Kind() status.Kind         { return r.kind }
func (r *Rental) ExtensionCount() int       { return r.extensionCount }
func (r *Rental) LastExtendedAt() *time.Time { return r.lastExtendedAt }
func (r *Rental) ClosedAt() *time.Time      { return r.closedAt }
func (r *Rental) CloseComment() string      { return r.closeComment }
func (r *Rental) CreatedAt() time.Time      { return r.createdAt }
func (r *Rental) UpdatedAt() time.Time      { return r.updatedAt }

func dedupeCells(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
