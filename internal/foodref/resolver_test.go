package foodref

import (
	"context"
	"errors"
	"testing"

	"DiabetesDiet/internal/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRow satisfies pgx.Row; scan either fails with err or populates a
// salmon-shaped foods row.
type fakeRow struct {
	err  error
	food database.Food
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*int32) = r.food.ID
	*dest[1].(*int64) = r.food.FoodCode
	*dest[2].(*string) = r.food.MainDescription
	*dest[3].(**string) = r.food.AdditionalDescription
	*dest[4].(*int32) = r.food.WweiaCategoryNumber
	*dest[5].(*string) = r.food.WweiaCategoryDescription
	*dest[6].(*bool) = r.food.IsAntiInflammatory
	*dest[7].(*bool) = r.food.IsProInflammatory
	*dest[8].(*bool) = r.food.IsLowGi
	*dest[9].(*bool) = r.food.IsFruitVegetable
	*dest[10].(*bool) = r.food.IsHighFiber
	*dest[11].(*bool) = r.food.IsOmega3Rich
	*dest[12].(*bool) = r.food.IsUltraProcessed
	*dest[13].(*bool) = r.food.IsMufaRich
	return nil
}

// fakeDB serves one queued row per QueryRow call and counts calls.
type fakeDB struct {
	rows  []fakeRow
	calls int
}

func (db *fakeDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (db *fakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}

func (db *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	row := db.rows[db.calls]
	db.calls++
	return row
}

func salmonRow() fakeRow {
	return fakeRow{food: database.Food{
		ID:                       1,
		FoodCode:                 26137110,
		MainDescription:          "Salmon, baked or broiled",
		WweiaCategoryNumber:      2402,
		WweiaCategoryDescription: "Fish",
		IsAntiInflammatory:       true,
		IsOmega3Rich:             true,
	}}
}

func newTestResolver(t *testing.T, db *fakeDB) *Resolver {
	t.Helper()
	r, err := NewResolver(database.New(db))
	require.NoError(t, err)
	return r
}

func TestFactsCachesKnownFood(t *testing.T) {
	db := &fakeDB{rows: []fakeRow{salmonRow()}}
	r := newTestResolver(t, db)

	facts := r.Facts(context.Background(), 26137110)
	assert.Equal(t, int32(2402), facts.WweiaCategory)
	assert.True(t, facts.IsOmega3Rich)

	// second call must come from the cache
	again := r.Facts(context.Background(), 26137110)
	assert.Equal(t, facts, again)
	assert.Equal(t, 1, db.calls)
	assert.Equal(t, 1, r.CacheLen())
}

func TestFactsCachesMissingCode(t *testing.T) {
	db := &fakeDB{rows: []fakeRow{{err: pgx.ErrNoRows}}}
	r := newTestResolver(t, db)

	facts := r.Facts(context.Background(), 999)
	assert.Equal(t, int32(fallbackCategory), facts.WweiaCategory)
	assert.False(t, facts.IsFruitVegetable)

	// a genuinely absent code is cached so repeats don't hit the db
	r.Facts(context.Background(), 999)
	assert.Equal(t, 1, db.calls)
}

func TestFactsTransientErrorIsNotCached(t *testing.T) {
	db := &fakeDB{rows: []fakeRow{
		{err: errors.New("connection reset by peer")},
		salmonRow(),
	}}
	r := newTestResolver(t, db)

	// first call fails mid-flight: serve the fallback for this recall
	facts := r.Facts(context.Background(), 26137110)
	assert.Equal(t, int32(fallbackCategory), facts.WweiaCategory)
	assert.Equal(t, 0, r.CacheLen())

	// once the database recovers the real row must win
	facts = r.Facts(context.Background(), 26137110)
	assert.Equal(t, int32(2402), facts.WweiaCategory)
	assert.True(t, facts.IsOmega3Rich)
	assert.Equal(t, 2, db.calls)
}
