package assignment

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/mesaflow/booking-backend/internal/booking"
	"github.com/mesaflow/booking-backend/internal/business"
	"github.com/mesaflow/booking-backend/internal/pkg/timeslot"
	"github.com/mesaflow/booking-backend/internal/table"
)

// BusinessDirectory resolves the tenant whose tables are being assigned.
type BusinessDirectory interface {
	GetByID(ctx context.Context, id string) (*business.Business, error)
}

// TableSource supplies the assignable tables and combinations.
type TableSource interface {
	ListAssignable(ctx context.Context, businessID string) ([]*table.Table, error)
	ListCombinationsForParty(ctx context.Context, businessID string, partySize int) ([]*table.Combination, error)
	GetCombination(ctx context.Context, id string) (*table.Combination, error)
}

// BookingSource supplies the bookings occupying tables in a window.
type BookingSource interface {
	ListActiveForTables(ctx context.Context, tableIDs []string, dayStart, dayEnd time.Time) ([]*booking.Booking, error)
}

// SlotSuggester provides alternative start times when nothing is free.
type SlotSuggester interface {
	FindNextSlots(ctx context.Context, businessID string, after time.Time, durationMinutes, maxSuggestions int) ([]string, error)
}

// Request asks for the best table for a party at a local date and time.
type Request struct {
	BusinessID      string
	Date            string // "YYYY-MM-DD"
	Time            string // "HH:MM"
	PartySize       int
	DurationMinutes int
	PreferredZone   string
}

// Candidate is a scored table option.
type Candidate struct {
	TableID   string
	TableName string
	Score     int
}

// Result is the assignment outcome. It is always data: internal failures
// degrade to an unsuccessful result with a generic reason, they never
// propagate as errors, because a booking can proceed unassigned.
type Result struct {
	Success       bool
	TableID       *string
	CombinationID *string
	// Alternatives holds up to two runner-up tables.
	Alternatives []Candidate
	Reason       string
	// SuggestedTimes holds alternative "HH:MM" start times, populated when
	// no table or combination is free at the requested time.
	SuggestedTimes []string
}

// Engine picks the best free table (or table combination) for a party.
type Engine struct {
	dir      BusinessDirectory
	tables   TableSource
	bookings BookingSource
	slots    SlotSuggester
	log      zerolog.Logger
}

func NewEngine(dir BusinessDirectory, tables TableSource, bookings BookingSource, slots SlotSuggester, log zerolog.Logger) *Engine {
	return &Engine{dir: dir, tables: tables, bookings: bookings, slots: slots, log: log}
}

// FindBestTable runs the assignment pipeline: eligibility filter, occupancy
// filter over absolute instants, scoring, selection, and a combination
// fallback for parties no single table can seat.
func (e *Engine) FindBestTable(ctx context.Context, req Request) Result {
	biz, err := e.dir.GetByID(ctx, req.BusinessID)
	if err != nil {
		e.log.Error().Err(err).Str("business_id", req.BusinessID).Msg("assignment: business lookup failed")
		return Result{Reason: msgInternal(business.LocaleEnglish)}
	}

	start, err := timeslot.LocalToInstant(req.Date, req.Time, biz.Timezone)
	if err != nil {
		e.log.Warn().Err(err).Str("business_id", biz.ID).Msg("assignment: invalid local time")
		return Result{Reason: msgInternal(biz.Locale)}
	}
	iv, err := timeslot.FromStartDuration(start, req.DurationMinutes)
	if err != nil {
		return Result{Reason: msgInternal(biz.Locale)}
	}

	assignable, err := e.tables.ListAssignable(ctx, biz.ID)
	if err != nil {
		e.log.Error().Err(err).Str("business_id", biz.ID).Msg("assignment: listing tables failed")
		return Result{Reason: msgInternal(biz.Locale)}
	}

	var eligible []*table.Table
	for _, t := range assignable {
		if t.Seats(req.PartySize) {
			eligible = append(eligible, t)
		}
	}

	if len(eligible) > 0 {
		if res, done := e.assignSingle(ctx, biz, req, iv, eligible); done {
			return res
		}
	}

	if res, done := e.assignCombination(ctx, biz, req, iv); done {
		return res
	}

	// Nothing free (or nothing big enough): structured failure with
	// alternative times.
	reason := msgNoTableAvailable(biz.Locale, req.PartySize)
	if len(eligible) == 0 {
		reason = msgNoTableFits(biz.Locale, req.PartySize)
	}

	res := Result{Reason: reason}
	if e.slots != nil {
		suggestions, err := e.slots.FindNextSlots(ctx, biz.ID, iv.End, req.DurationMinutes, 3)
		if err != nil {
			e.log.Warn().Err(err).Str("business_id", biz.ID).Msg("assignment: next-slot search failed")
		} else {
			res.SuggestedTimes = suggestions
		}
	}
	return res
}

// assignSingle scores the free eligible tables and picks the best. The
// second return value is false when no single table is free.
func (e *Engine) assignSingle(ctx context.Context, biz *business.Business, req Request, iv timeslot.Interval, eligible []*table.Table) (Result, bool) {
	occupied, err := e.occupiedTables(ctx, tableIDs(eligible), iv)
	if err != nil {
		e.log.Error().Err(err).Str("business_id", biz.ID).Msg("assignment: occupancy check failed")
		return Result{Reason: msgInternal(biz.Locale)}, true
	}

	var free []*table.Table
	for _, t := range eligible {
		if !occupied[t.ID] {
			free = append(free, t)
		}
	}
	if len(free) == 0 {
		return Result{}, false
	}

	scored := make([]Candidate, len(free))
	byID := make(map[string]*table.Table, len(free))
	for i, t := range free {
		scored[i] = Candidate{
			TableID:   t.ID,
			TableName: t.Name,
			Score:     totalScore(t, req.PartySize, req.PreferredZone, biz.ZoneFillOrder),
		}
		byID[t.ID] = t
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		ti, tj := byID[scored[i].TableID], byID[scored[j].TableID]
		if ti.Priority != tj.Priority {
			return ti.Priority < tj.Priority
		}
		if ti.Capacity != tj.Capacity {
			return ti.Capacity < tj.Capacity
		}
		return ti.Name < tj.Name
	})

	best := scored[0]
	alternatives := scored[1:]
	if len(alternatives) > 2 {
		alternatives = alternatives[:2]
	}

	return Result{
		Success:      true,
		TableID:      &best.TableID,
		Alternatives: alternatives,
		Reason:       msgAssigned(biz.Locale, best.TableName, req.PartySize),
	}, true
}

// assignCombination tries joined tables, smallest total capacity first.
// Every member table must be free. The second return value is false when no
// combination works.
func (e *Engine) assignCombination(ctx context.Context, biz *business.Business, req Request, iv timeslot.Interval) (Result, bool) {
	combos, err := e.tables.ListCombinationsForParty(ctx, biz.ID, req.PartySize)
	if err != nil {
		e.log.Error().Err(err).Str("business_id", biz.ID).Msg("assignment: listing combinations failed")
		return Result{Reason: msgInternal(biz.Locale)}, true
	}

	for _, combo := range combos {
		if len(combo.TableIDs) == 0 {
			continue
		}
		occupied, err := e.occupiedTables(ctx, combo.TableIDs, iv)
		if err != nil {
			e.log.Error().Err(err).Str("business_id", biz.ID).Msg("assignment: occupancy check failed")
			return Result{Reason: msgInternal(biz.Locale)}, true
		}

		allFree := true
		for _, id := range combo.TableIDs {
			if occupied[id] {
				allFree = false
				break
			}
		}
		if !allFree {
			continue
		}

		comboID := combo.ID
		return Result{
			Success:       true,
			CombinationID: &comboID,
			Reason:        msgCombinationAssigned(biz.Locale, combo.Name, req.PartySize),
		}, true
	}

	return Result{}, false
}

// occupiedTables resolves which of the given tables are taken during the
// interval. A combination booking occupies every member table.
func (e *Engine) occupiedTables(ctx context.Context, ids []string, iv timeslot.Interval) (map[string]bool, error) {
	active, err := e.bookings.ListActiveForTables(ctx, ids, iv.Start, iv.End)
	if err != nil {
		return nil, err
	}

	occupied := make(map[string]bool)
	for _, b := range active {
		if !b.Interval().Overlaps(iv) {
			continue
		}
		if b.TableID != nil {
			occupied[*b.TableID] = true
		}
		if b.CombinationID != nil {
			combo, err := e.tables.GetCombination(ctx, *b.CombinationID)
			if err != nil {
				return nil, err
			}
			for _, id := range combo.TableIDs {
				occupied[id] = true
			}
		}
	}
	return occupied, nil
}

func tableIDs(tables []*table.Table) []string {
	ids := make([]string, len(tables))
	for i, t := range tables {
		ids[i] = t.ID
	}
	return ids
}
