package status

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyName    = errors.New("status name must not be empty")
	ErrInvalidColor = errors.New("status color must be a #RRGGBB value")
	ErrInvalidKind  = errors.New("invalid status kind")
)

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

const DefaultColor = "#9e9e9e"

// Status is the administrator-managed label over a Kind. Identity and kind
// are immutable; name and color are mutable.
type Status struct {
	id        uuid.UUID
	name      string
	color     string
	kind      Kind
	createdAt time.Time
	updatedAt time.Time
}

func NewStatus(name, color string, kind Kind, now time.Time) (*Status, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if color == "" {
		color = DefaultColor
	}
	if !colorPattern.MatchString(color) {
		return nil, ErrInvalidColor
	}
	if !kind.IsValid() {
		return nil, ErrInvalidKind
	}

	return &Status{
		id:        uuid.New(),
		name:      name,
		color:     color,
		kind:      kind,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructStatus(id uuid.UUID, name, color string, kind Kind, createdAt, updatedAt time.Time) *Status {
	return &Status{
		id:        id,
		name:      name,
		color:     color,
		kind:      kind,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// Relabel updates the mutable display attributes; the kind stays fixed.
func (s *Status) Relabel(name, color string, now time.Time) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if !colorPattern.MatchString(color) {
		return ErrInvalidColor
	}
	s.name = name
	s.color = color
	s.updatedAt = now
	return nil
}

func (s *Status) ID() uuid.UUID        { return s.id }
func (s *Status) Name() string         { return s.name }
func (s *Status) Color() string        { return s.color }
func (s *Status) Kind() Kind           { return s.kind }
func (s *Status) CreatedAt() time.Time { return s.createdAt }
func (s *Status) UpdatedAt() time.Time { return s.updatedAt }
