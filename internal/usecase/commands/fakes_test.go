//go:build unit

package commands_test

import (
	"context"
	"time"

	"storent/internal/domain/rental"
	"storent/internal/domain/status"
	"storent/internal/infra"
	"storent/internal/usecase/shared"

	"github.com/google/uuid"
)

// fakeStore is a single in-memory backing store shared by the fake unit of
// work and everything hanging off it. Tests seed it directly.
type fakeStore struct {
	rentals      map[uuid.UUID]*shared.RentalSnapshot
	statuses     map[uuid.UUID]*shared.StatusSnapshot
	payments     map[uuid.UUID]*shared.PaymentSnapshot
	cells        map[uuid.UUID]struct{}
	relays       []shared.RelayRef
	grants       map[grantKey]*fakeGrant
	statusInUse  map[uuid.UUID]bool
	conflicts    []uuid.UUID
	createdCount int
	updatedCount int
}

type grantKey struct {
	relayID  uuid.UUID
	rentalID uuid.UUID
}

type fakeGrant struct {
	active     bool
	validUntil time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		rentals:     make(map[uuid.UUID]*shared.RentalSnapshot),
		statuses:    make(map[uuid.UUID]*shared.StatusSnapshot),
		payments:    make(map[uuid.UUID]*shared.PaymentSnapshot),
		cells:       make(map[uuid.UUID]struct{}),
		grants:      make(map[grantKey]*fakeGrant),
		statusInUse: make(map[uuid.UUID]bool),
	}
}

func (s *fakeStore) seedStatus(snap *shared.StatusSnapshot) *shared.StatusSnapshot {
	s.statuses[snap.ID] = snap
	return snap
}

func (s *fakeStore) seedCells(ids ...uuid.UUID) {
	for _, id := range ids {
		s.cells[id] = struct{}{}
	}
}

func (s *fakeStore) seedRelay(cellID uuid.UUID) shared.RelayRef {
	ref := shared.RelayRef{ID: uuid.New(), CellID: cellID, Channel: len(s.relays)}
	s.relays = append(s.relays, ref)
	return ref
}

func (s *fakeStore) seedRental(snap *shared.RentalSnapshot) *shared.RentalSnapshot {
	s.rentals[snap.ID] = snap
	return snap
}

func (s *fakeStore) seedPayment(snap *shared.PaymentSnapshot) *shared.PaymentSnapshot {
	s.payments[snap.ID] = snap
	return snap
}

func (s *fakeStore) grantFor(relayID, rentalID uuid.UUID) *fakeGrant {
	return s.grants[grantKey{relayID: relayID, rentalID: rentalID}]
}

func notFoundErr() error {
	return infra.WrapRepoErr(infra.NotFound, "not found", nil)
}

// fakeUoW runs the transaction body directly against the store. Retry and
// isolation behavior belongs to the real implementation's tests.
type fakeUoW struct {
	store *fakeStore
}

func newFakeUoW(store *fakeStore) *fakeUoW {
	return &fakeUoW{store: store}
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, &fakeTx{store: u.store})
}

func (u *fakeUoW) CommandReads() shared.CommandReads {
	return &fakeReads{store: u.store}
}

type fakeTx struct {
	store *fakeStore
}

func (t *fakeTx) Rentals() shared.RentalRepository          { return &fakeRentalRepo{store: t.store} }
func (t *fakeTx) Statuses() shared.StatusRepository         { return &fakeStatusRepo{store: t.store} }
func (t *fakeTx) Payments() shared.PaymentRepository        { return &fakePaymentRepo{store: t.store} }
func (t *fakeTx) AccessGrants() shared.AccessGrantRepository { return &fakeGrantRepo{store: t.store} }
func (t *fakeTx) Catalog() shared.CatalogRepository         { return &fakeCatalogRepo{} }
func (t *fakeTx) Admins() shared.AdminRepository            { return &fakeAdminRepo{} }
func (t *fakeTx) Reads() shared.CommandReads                { return &fakeReads{store: t.store} }

type fakeRentalRepo struct {
	store *fakeStore
}

func rentalToSnapshot(r *rental.Rental) *shared.RentalSnapshot {
	return &shared.RentalSnapshot{
		ID:             r.ID(),
		ClientID:       r.ClientID(),
		CellIDs:        r.CellIDs(),
		StartDate:      r.Period().Start(),
		EndDate:        r.Period().End(),
		StatusID:       r.StatusID(),
		Kind:           r.Kind(),
		ExtensionCount: r.ExtensionCount(),
		LastExtendedAt: r.LastExtendedAt(),
		ClosedAt:       r.ClosedAt(),
		CloseComment:   r.CloseComment(),
		CreatedAt:      r.CreatedAt(),
		UpdatedAt:      r.UpdatedAt(),
	}
}

func (r *fakeRentalRepo) Create(_ context.Context, rent *rental.Rental) error {
	r.store.rentals[rent.ID()] = rentalToSnapshot(rent)
	r.store.createdCount++
	return nil
}

func (r *fakeRentalRepo) Update(_ context.Context, rent *rental.Rental) error {
	if _, ok := r.store.rentals[rent.ID()]; !ok {
		return notFoundErr()
	}
	r.store.rentals[rent.ID()] = rentalToSnapshot(rent)
	r.store.updatedCount++
	return nil
}

func (r *fakeRentalRepo) FindConflictingCells(_ context.Context, _ []uuid.UUID, _ rental.Period, _ uuid.UUID) ([]uuid.UUID, error) {
	return r.store.conflicts, nil
}

func (r *fakeRentalRepo) MarkExpiring(_ context.Context, expiringStatusID uuid.UUID, now time.Time) ([]uuid.UUID, error) {
	var marked []uuid.UUID
	for _, snap := range r.store.rentals {
		if snap.Kind == status.KindActive && !snap.EndDate.After(now) {
			snap.Kind = status.KindExpiring
			snap.StatusID = expiringStatusID
			marked = append(marked, snap.ID)
		}
	}
	return marked, nil
}

type fakeStatusRepo struct {
	store *fakeStore
}

func (s *fakeStatusRepo) Create(_ context.Context, st *status.Status) error {
	s.store.statuses[st.ID()] = &shared.StatusSnapshot{
		ID: st.ID(), Name: st.Name(), Color: st.Color(), Kind: st.Kind(),
	}
	return nil
}

func (s *fakeStatusRepo) Update(_ context.Context, st *status.Status) error {
	if _, ok := s.store.statuses[st.ID()]; !ok {
		return notFoundErr()
	}
	s.store.statuses[st.ID()] = &shared.StatusSnapshot{
		ID: st.ID(), Name: st.Name(), Color: st.Color(), Kind: st.Kind(),
	}
	return nil
}

func (s *fakeStatusRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := s.store.statuses[id]; !ok {
		return notFoundErr()
	}
	delete(s.store.statuses, id)
	return nil
}

type fakePaymentRepo struct {
	store *fakeStore
}

func (p *fakePaymentRepo) Create(_ context.Context, rec *shared.PaymentRecord) error {
	p.store.payments[rec.ID] = &shared.PaymentSnapshot{
		ID:          rec.ID,
		ClientID:    rec.ClientID,
		CellID:      rec.CellID,
		RentalID:    rec.RentalID,
		RentalDays:  rec.RentalDays,
		AmountCents: rec.AmountCents,
		Description: rec.Description,
		Status:      rec.Status,
	}
	return nil
}

func (p *fakePaymentRepo) SetGatewayDetails(_ context.Context, id uuid.UUID, gatewayPaymentID, paymentURL, paymentStatus string) error {
	snap, ok := p.store.payments[id]
	if !ok {
		return notFoundErr()
	}
	snap.GatewayPaymentID = &gatewayPaymentID
	snap.PaymentURL = &paymentURL
	snap.Status = paymentStatus
	return nil
}

func (p *fakePaymentRepo) MarkPaid(_ context.Context, id uuid.UUID, now time.Time) (bool, error) {
	snap, ok := p.store.payments[id]
	if !ok {
		return false, notFoundErr()
	}
	if snap.Status == shared.PaymentStatusPaid {
		return false, nil
	}
	snap.Status = shared.PaymentStatusPaid
	paidAt := now
	snap.PaidAt = &paidAt
	return true, nil
}

func (p *fakePaymentRepo) MarkFailed(_ context.Context, id uuid.UUID) error {
	snap, ok := p.store.payments[id]
	if !ok {
		return notFoundErr()
	}
	if snap.Status != shared.PaymentStatusPaid {
		snap.Status = shared.PaymentStatusFailed
	}
	return nil
}

func (p *fakePaymentRepo) AttachRental(_ context.Context, id, rentalID uuid.UUID) error {
	snap, ok := p.store.payments[id]
	if !ok {
		return notFoundErr()
	}
	snap.RentalID = &rentalID
	return nil
}

type fakeGrantRepo struct {
	store *fakeStore
}

func (g *fakeGrantRepo) UpsertActive(_ context.Context, relayID, rentalID uuid.UUID, validUntil time.Time) error {
	g.store.grants[grantKey{relayID: relayID, rentalID: rentalID}] = &fakeGrant{
		active:     true,
		validUntil: validUntil,
	}
	return nil
}

func (g *fakeGrantRepo) DeactivateByRental(_ context.Context, rentalID uuid.UUID) error {
	for key, grant := range g.store.grants {
		if key.rentalID == rentalID {
			grant.active = false
		}
	}
	return nil
}

func (g *fakeGrantRepo) DeactivateExpired(_ context.Context, now time.Time) (int64, error) {
	var revoked int64
	for _, grant := range g.store.grants {
		if grant.active && !grant.validUntil.After(now) {
			grant.active = false
			revoked++
		}
	}
	return revoked, nil
}

type fakeCatalogRepo struct{}

func (fakeCatalogRepo) CreateContainer(context.Context, *shared.ContainerRecord) error { return nil }
func (fakeCatalogRepo) CreateCell(context.Context, *shared.CellRecord) error           { return nil }
func (fakeCatalogRepo) UpdateCell(context.Context, *shared.CellRecord) error           { return nil }
func (fakeCatalogRepo) DeleteCell(context.Context, uuid.UUID) error                    { return nil }
func (fakeCatalogRepo) CreateRelay(context.Context, *shared.RelayRecord) error         { return nil }

type fakeAdminRepo struct{}

func (fakeAdminRepo) UpdateLastLogin(context.Context, uuid.UUID, time.Time) error { return nil }

type fakeReads struct {
	store *fakeStore
}

func (r *fakeReads) RentalByID(_ context.Context, id uuid.UUID) (*shared.RentalSnapshot, error) {
	snap, ok := r.store.rentals[id]
	if !ok {
		return nil, notFoundErr()
	}
	cp := *snap
	return &cp, nil
}

func (r *fakeReads) StatusByID(_ context.Context, id uuid.UUID) (*shared.StatusSnapshot, error) {
	snap, ok := r.store.statuses[id]
	if !ok {
		return nil, notFoundErr()
	}
	return snap, nil
}

func (r *fakeReads) StatusByKind(_ context.Context, kind status.Kind) (*shared.StatusSnapshot, error) {
	for _, snap := range r.store.statuses {
		if snap.Kind == kind {
			return snap, nil
		}
	}
	return nil, notFoundErr()
}

func (r *fakeReads) PaymentByID(_ context.Context, id uuid.UUID) (*shared.PaymentSnapshot, error) {
	snap, ok := r.store.payments[id]
	if !ok {
		return nil, notFoundErr()
	}
	return snap, nil
}

func (r *fakeReads) MissingCells(_ context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	var missing []uuid.UUID
	for _, id := range ids {
		if _, ok := r.store.cells[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

func (r *fakeReads) RelaysByCells(_ context.Context, cellIDs []uuid.UUID) ([]shared.RelayRef, error) {
	wanted := make(map[uuid.UUID]struct{}, len(cellIDs))
	for _, id := range cellIDs {
		wanted[id] = struct{}{}
	}
	var refs []shared.RelayRef
	for _, ref := range r.store.relays {
		if _, ok := wanted[ref.CellID]; ok {
			refs = append(refs, ref)
		}
	}
	return refs, nil
}

func (r *fakeReads) StatusReferenced(_ context.Context, statusID uuid.UUID) (bool, error) {
	return r.store.statusInUse[statusID], nil
}

// fakeCache records invalidations; lookups always miss.
type fakeCache struct {
	forgotten map[uuid.UUID][]uuid.UUID
}

func newFakeCache() *fakeCache {
	return &fakeCache{forgotten: make(map[uuid.UUID][]uuid.UUID)}
}

func (c *fakeCache) Get(context.Context, uuid.UUID, uuid.UUID) (bool, bool) { return false, false }
func (c *fakeCache) Set(context.Context, uuid.UUID, uuid.UUID, bool)        {}

func (c *fakeCache) Forget(_ context.Context, rentalID uuid.UUID, relayIDs []uuid.UUID) {
	c.forgotten[rentalID] = append(c.forgotten[rentalID], relayIDs...)
}
