package table

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	tables map[string]*Table
	combos map[string]*Combination
	nextID int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		tables: make(map[string]*Table),
		combos: make(map[string]*Combination),
	}
}

func (f *fakeRepo) id() string {
	f.nextID++
	return fmt.Sprintf("id-%d", f.nextID)
}

func (f *fakeRepo) Create(_ context.Context, t *Table) error {
	t.ID = f.id()
	f.tables[t.ID] = t
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*Table, error) {
	t, ok := f.tables[id]
	if !ok {
		return nil, ErrNotFound
	}
	return t, nil
}

func (f *fakeRepo) List(_ context.Context, filter Filter) ([]*Table, int, error) {
	var out []*Table
	for _, t := range f.tables {
		if t.BusinessID == filter.BusinessID {
			out = append(out, t)
		}
	}
	return out, len(out), nil
}

func (f *fakeRepo) Update(_ context.Context, t *Table) error {
	f.tables[t.ID] = t
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	t, ok := f.tables[id]
	if !ok {
		return ErrNotFound
	}
	t.IsActive = false
	return nil
}

func (f *fakeRepo) ListAssignable(_ context.Context, businessID string) ([]*Table, error) {
	var out []*Table
	for _, t := range f.tables {
		if t.BusinessID == businessID && t.IsActive && t.AutoAssign {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeRepo) CreateCombination(_ context.Context, c *Combination) error {
	c.ID = f.id()
	f.combos[c.ID] = c
	return nil
}

func (f *fakeRepo) GetCombination(_ context.Context, id string) (*Combination, error) {
	c, ok := f.combos[id]
	if !ok {
		return nil, ErrCombinationNotFound
	}
	return c, nil
}

func (f *fakeRepo) ListCombinations(_ context.Context, businessID string) ([]*Combination, error) {
	var out []*Combination
	for _, c := range f.combos {
		if c.BusinessID == businessID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeRepo) DeleteCombination(_ context.Context, id string) error {
	delete(f.combos, id)
	return nil
}

func (f *fakeRepo) ListCombinationsForParty(_ context.Context, businessID string, partySize int) ([]*Combination, error) {
	var out []*Combination
	for _, c := range f.combos {
		if c.BusinessID == businessID && c.Seats(partySize) {
			out = append(out, c)
		}
	}
	return out, nil
}

func TestCreateTableValidation(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRequest{BusinessID: "biz-1", Name: "  ", Capacity: 4})
	require.ErrorIs(t, err, ErrNameRequired)

	_, err = svc.Create(ctx, CreateRequest{BusinessID: "biz-1", Name: "T1", Capacity: 0})
	require.ErrorIs(t, err, ErrInvalidCapacity)

	_, err = svc.Create(ctx, CreateRequest{BusinessID: "biz-1", Name: "T1", Capacity: 4, MinCapacity: 5})
	require.ErrorIs(t, err, ErrInvalidMinCapacity)

	created, err := svc.Create(ctx, CreateRequest{BusinessID: "biz-1", Name: "T1", Capacity: 4})
	require.NoError(t, err)
	require.Equal(t, 1, created.MinCapacity)
	require.True(t, created.AutoAssign)
	require.True(t, created.IsActive)
}

func TestTableSeats(t *testing.T) {
	table := &Table{Capacity: 4, MinCapacity: 2}

	require.False(t, table.Seats(1))
	require.True(t, table.Seats(2))
	require.True(t, table.Seats(4))
	require.False(t, table.Seats(5))
}

func TestDeleteTableDeactivates(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateRequest{BusinessID: "biz-1", Name: "T1", Capacity: 4})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.False(t, got.IsActive)

	assignable, err := repo.ListAssignable(ctx, "biz-1")
	require.NoError(t, err)
	require.Empty(t, assignable)
}

func TestCreateCombination(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	t1, err := svc.Create(ctx, CreateRequest{BusinessID: "biz-1", Name: "T1", Capacity: 2})
	require.NoError(t, err)
	t2, err := svc.Create(ctx, CreateRequest{BusinessID: "biz-1", Name: "T2", Capacity: 4})
	require.NoError(t, err)

	_, err = svc.CreateCombination(ctx, CreateCombinationRequest{
		BusinessID: "biz-1", Name: "Joined", TableIDs: []string{t1.ID},
	})
	require.ErrorIs(t, err, ErrNoMemberTables)

	combo, err := svc.CreateCombination(ctx, CreateCombinationRequest{
		BusinessID: "biz-1", Name: "Joined", TableIDs: []string{t1.ID, t2.ID},
	})
	require.NoError(t, err)
	require.Equal(t, 6, combo.TotalCapacity)
	require.True(t, combo.Seats(6))
	require.False(t, combo.Seats(7))
}

func TestCreateCombinationRejectsForeignTable(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	t1, err := svc.Create(ctx, CreateRequest{BusinessID: "biz-1", Name: "T1", Capacity: 2})
	require.NoError(t, err)
	t2, err := svc.Create(ctx, CreateRequest{BusinessID: "biz-2", Name: "X1", Capacity: 4})
	require.NoError(t, err)

	_, err = svc.CreateCombination(ctx, CreateCombinationRequest{
		BusinessID: "biz-1", Name: "Joined", TableIDs: []string{t1.ID, t2.ID},
	})
	require.ErrorIs(t, err, ErrMixedBusinessTables)
}
