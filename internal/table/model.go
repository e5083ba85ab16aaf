package table

import (
	"net/http"
	"time"

	"github.com/mesaflow/booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound            = apperror.New(http.StatusNotFound, "table not found")
	ErrCombinationNotFound = apperror.New(http.StatusNotFound, "table combination not found")
	ErrNameRequired        = apperror.New(http.StatusBadRequest, "name is required")
	ErrInvalidCapacity     = apperror.New(http.StatusBadRequest, "capacity must be at least 1")
	ErrInvalidMinCapacity  = apperror.New(http.StatusBadRequest, "min_capacity must be between 1 and capacity")
	ErrNoMemberTables      = apperror.New(http.StatusBadRequest, "a combination needs at least two tables")
	ErrMixedBusinessTables = apperror.New(http.StatusBadRequest, "all tables in a combination must belong to the same business")
)

// Table is a bookable unit of a business: a restaurant table, a treatment
// room, a chair. Capacity bounds which party sizes it can seat.
type Table struct {
	ID          string
	BusinessID  string
	Name        string
	Capacity    int
	MinCapacity int
	Zone        string
	// Priority orders tables for assignment; lower is preferred.
	Priority   int
	AutoAssign bool
	IsActive   bool
	CreatedAt  time.Time
}

// Seats reports whether the table can seat a party of the given size.
func (t *Table) Seats(partySize int) bool {
	return partySize >= t.MinCapacity && partySize <= t.Capacity
}

// Combination is a named group of tables that can be joined to seat
// parties too large for any single table.
type Combination struct {
	ID            string
	BusinessID    string
	Name          string
	TableIDs      []string
	TotalCapacity int
	MinCapacity   int
	CreatedAt     time.Time

	// Tables is populated by the repository on reads.
	Tables []*Table
}

// Seats reports whether the combination covers a party of the given size.
func (c *Combination) Seats(partySize int) bool {
	return partySize >= c.MinCapacity && partySize <= c.TotalCapacity
}

// Filter defines parameters for listing tables of a business.
type Filter struct {
	BusinessID string
	Zone       string
	OnlyActive bool
	Page       int
	PageSize   int
}
