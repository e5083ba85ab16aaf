package schedule

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mesaflow/booking-backend/internal/business"
	"github.com/mesaflow/booking-backend/internal/pkg/timeslot"
)

// fakeRepo is an in-memory Repository honoring the specific-date-over-weekday
// resolution contract.
type fakeRepo struct {
	rules []*Rule
}

func (f *fakeRepo) Create(_ context.Context, rule *Rule) error {
	rule.ID = "rule-" + rule.BusinessID
	f.rules = append(f.rules, rule)
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*Rule, error) {
	for _, r := range f.rules {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeRepo) ListByBusiness(_ context.Context, businessID string) ([]*Rule, error) {
	var out []*Rule
	for _, r := range f.rules {
		if r.BusinessID == businessID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRepo) Update(_ context.Context, rule *Rule) error { return nil }
func (f *fakeRepo) Delete(_ context.Context, id string) error  { return nil }

func (f *fakeRepo) FindForDate(_ context.Context, businessID, dateStr string, dayOfWeek int) (*Rule, error) {
	for _, r := range f.rules {
		if r.BusinessID == businessID && r.SpecificDate != nil && *r.SpecificDate == dateStr {
			return r, nil
		}
	}
	for _, r := range f.rules {
		if r.BusinessID == businessID && r.DayOfWeek != nil && *r.DayOfWeek == dayOfWeek {
			return r, nil
		}
	}
	return nil, nil
}

func intPtr(v int) *int       { return &v }
func strPtr(s string) *string { return &s }

func madridBusiness(locale string) *business.Business {
	return &business.Business{
		ID:          "biz-1",
		Name:        "La Terraza",
		Timezone:    "Europe/Madrid",
		Locale:      locale,
		MaxCapacity: 1,
		IsActive:    true,
	}
}

func interval(t *testing.T, date, clock string, minutes int) timeslot.Interval {
	t.Helper()
	start, err := timeslot.LocalToInstant(date, clock, "Europe/Madrid")
	require.NoError(t, err)
	iv, err := timeslot.FromStartDuration(start, minutes)
	require.NoError(t, err)
	return iv
}

func TestValidateIntervalFailsClosedWithoutRule(t *testing.T) {
	svc := NewService(&fakeRepo{})
	biz := madridBusiness(business.LocaleEnglish)

	// 2025-01-16 is a Thursday; no rule is configured for any day.
	check, err := svc.ValidateInterval(context.Background(), biz, "2025-01-16", interval(t, "2025-01-16", "14:00", 60))
	require.NoError(t, err)

	require.False(t, check.WithinHours)
	require.Equal(t, ReasonClosedDay, check.Reason)
	require.Contains(t, check.Message, "Thursday")
}

func TestValidateIntervalClosedDaySpanish(t *testing.T) {
	repo := &fakeRepo{rules: []*Rule{
		{ID: "r1", BusinessID: "biz-1", DayOfWeek: intPtr(4), Closed: true},
	}}
	svc := NewService(repo)
	biz := madridBusiness(business.LocaleSpanish)

	check, err := svc.ValidateInterval(context.Background(), biz, "2025-01-16", interval(t, "2025-01-16", "14:00", 60))
	require.NoError(t, err)

	require.False(t, check.WithinHours)
	require.Equal(t, "El negocio está cerrado los jueves", check.Message)
}

func TestValidateIntervalSpecificDateOverridesWeekday(t *testing.T) {
	// Thursdays are open 09:00-18:00, but 2025-01-16 is a holiday.
	repo := &fakeRepo{rules: []*Rule{
		{ID: "r1", BusinessID: "biz-1", DayOfWeek: intPtr(4), OpensAt: "09:00", ClosesAt: "18:00"},
		{ID: "r2", BusinessID: "biz-1", SpecificDate: strPtr("2025-01-16"), Closed: true},
	}}
	svc := NewService(repo)
	biz := madridBusiness(business.LocaleEnglish)

	check, err := svc.ValidateInterval(context.Background(), biz, "2025-01-16", interval(t, "2025-01-16", "14:00", 60))
	require.NoError(t, err)
	require.False(t, check.WithinHours)
	require.Equal(t, ReasonClosedDay, check.Reason)

	// The following Thursday falls back to the weekday rule.
	check, err = svc.ValidateInterval(context.Background(), biz, "2025-01-23", interval(t, "2025-01-23", "14:00", 60))
	require.NoError(t, err)
	require.True(t, check.WithinHours)
}

func TestValidateIntervalBoundaries(t *testing.T) {
	repo := &fakeRepo{rules: []*Rule{
		{ID: "r1", BusinessID: "biz-1", DayOfWeek: intPtr(4), OpensAt: "09:00", ClosesAt: "18:00"},
	}}
	svc := NewService(repo)
	biz := madridBusiness(business.LocaleEnglish)
	const date = "2025-01-16"

	tests := []struct {
		name        string
		clock       string
		minutes     int
		within      bool
		reason      Reason
		msgContains string
	}{
		{name: "Mid-day booking fits", clock: "14:00", minutes: 60, within: true},
		{name: "Booking at opening fits", clock: "09:00", minutes: 60, within: true},
		{name: "Booking ending exactly at close fits", clock: "17:00", minutes: 60, within: true},
		{name: "Before opening", clock: "08:00", minutes: 60, within: false, reason: ReasonBeforeOpen, msgContains: "09:00"},
		{name: "Spills past closing", clock: "17:30", minutes: 60, within: false, reason: ReasonAfterClose, msgContains: "18:30"},
		{name: "Spills into the next day", clock: "23:30", minutes: 60, within: false, reason: ReasonAfterClose, msgContains: "00:30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check, err := svc.ValidateInterval(context.Background(), biz, date, interval(t, date, tt.clock, tt.minutes))
			require.NoError(t, err)
			require.Equal(t, tt.within, check.WithinHours)
			if !tt.within {
				require.Equal(t, tt.reason, check.Reason)
				require.Contains(t, check.Message, tt.msgContains)
			}
		})
	}
}

func TestValidateIntervalSecondsInsensitive(t *testing.T) {
	// Rules stored with seconds still compare correctly.
	repo := &fakeRepo{rules: []*Rule{
		{ID: "r1", BusinessID: "biz-1", DayOfWeek: intPtr(4), OpensAt: "09:00:00", ClosesAt: "18:00:00"},
	}}
	svc := NewService(repo)
	biz := madridBusiness(business.LocaleEnglish)

	check, err := svc.ValidateInterval(context.Background(), biz, "2025-01-16", interval(t, "2025-01-16", "09:00", 60))
	require.NoError(t, err)
	require.True(t, check.WithinHours)
}

func TestCreateRuleValidation(t *testing.T) {
	svc := NewService(&fakeRepo{})
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRequest{BusinessID: "biz-1"})
	require.ErrorIs(t, err, ErrRuleTarget)

	_, err = svc.Create(ctx, CreateRequest{BusinessID: "biz-1", DayOfWeek: intPtr(7), OpensAt: "09:00", ClosesAt: "18:00"})
	require.ErrorIs(t, err, ErrInvalidDayOfWeek)

	_, err = svc.Create(ctx, CreateRequest{BusinessID: "biz-1", DayOfWeek: intPtr(1), OpensAt: "18:00", ClosesAt: "09:00"})
	require.ErrorIs(t, err, ErrInvalidHours)

	_, err = svc.Create(ctx, CreateRequest{BusinessID: "biz-1", DayOfWeek: intPtr(1), Closed: true})
	require.NoError(t, err)

	rule, err := svc.Create(ctx, CreateRequest{BusinessID: "biz-1", DayOfWeek: intPtr(2), OpensAt: "9:00", ClosesAt: "18:00:00"})
	require.NoError(t, err)
	require.Equal(t, "09:00", rule.OpensAt)
	require.Equal(t, "18:00", rule.ClosesAt)

	if !strings.HasPrefix(rule.ID, "rule-") {
		t.Errorf("fake repo did not assign an ID: %q", rule.ID)
	}
}
