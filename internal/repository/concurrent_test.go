package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/alexanderramin/nutrimind/internal/db"
	"github.com/alexanderramin/nutrimind/internal/domain"
	"github.com/alexanderramin/nutrimind/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConcurrentAccess_ReadDuringWrite verifies that daily totals stay
// consistent while food rows are written. The API server reads snapshots
// while the CLI logs meals against the same file.
func TestConcurrentAccess_ReadDuringWrite(t *testing.T) {
	database := testutil.NewFileDB(t)
	ctx := context.Background()
	repo := NewSQLiteFoodLogRepo(database)
	date := domain.FormatDate(day)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 20; i++ {
			f := testutil.NewFoodLog(domain.MealSnack, fmt.Sprintf("item-%d", i), at(0, 10, i), 100, 5)
			if err := repo.Create(ctx, f); err != nil {
				t.Errorf("writer: create food log %d: %v", i, err)
				return
			}
		}
	}()

	for r := 0; r < 5; r++ {
		wg.Add(1)
		go func(reader int) {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				totals, err := repo.DailyTotals(ctx, date, date)
				if err != nil {
					t.Errorf("reader %d: daily totals: %v", reader, err)
					return
				}
				// Each row adds exactly 100 kcal, so any snapshot is a multiple of it.
				for _, tot := range totals {
					if int(tot.Calories)%100 != 0 {
						t.Errorf("reader %d: torn total %v", reader, tot.Calories)
					}
				}
			}
		}(r)
	}

	wg.Wait()

	totals, err := repo.DailyTotals(ctx, date, date)
	require.NoError(t, err)
	require.Len(t, totals, 1)
	assert.Equal(t, 2000.0, totals[0].Calories)
}

// TestConcurrentAccess_StateBlobs verifies concurrent readers always see a
// complete JSON value for a key being rewritten.
func TestConcurrentAccess_StateBlobs(t *testing.T) {
	database := testutil.NewFileDB(t)
	ctx := context.Background()
	repo := NewSQLiteStateRepo(database)
	require.NoError(t, repo.SaveState(ctx, "k", []byte(`{"n":0}`)))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 1; i <= 20; i++ {
			if err := repo.SaveState(ctx, "k", []byte(fmt.Sprintf(`{"n":%d}`, i))); err != nil {
				t.Errorf("writer: %v", err)
				return
			}
		}
	}()

	for r := 0; r < 5; r++ {
		wg.Add(1)
		go func(reader int) {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				v, found, err := repo.LoadState(ctx, "k")
				if err != nil || !found {
					t.Errorf("reader %d: found=%v err=%v", reader, found, err)
					return
				}
				if len(v) < 7 || v[0] != '{' || v[len(v)-1] != '}' {
					t.Errorf("reader %d: partial value %q", reader, v)
				}
			}
		}(r)
	}

	wg.Wait()

	v, _, err := repo.LoadState(ctx, "k")
	require.NoError(t, err)
	assert.JSONEq(t, `{"n":20}`, string(v))
}

// TestConcurrentAccess_TwoHandles writes meals through two independent
// handles on one file, as `nutrimind serve` and a CLI command do.
func TestConcurrentAccess_TwoHandles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shared.db")
	ctx := context.Background()

	handles := make([]db.UnitOfWork, 2)
	for i := range handles {
		database, err := db.OpenDB(path)
		require.NoError(t, err)
		t.Cleanup(func() { database.Close() })
		handles[i] = db.NewSQLiteUnitOfWork(database)
	}

	var wg sync.WaitGroup
	for h, uow := range handles {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
					repo := NewSQLiteFoodLogRepo(tx)
					if err := repo.Create(ctx, testutil.NewFoodLog(domain.MealLunch, fmt.Sprintf("rice-%d-%d", h, i), at(0, 12, i), 300, 6)); err != nil {
						return err
					}
					return repo.Create(ctx, testutil.NewFoodLog(domain.MealLunch, fmt.Sprintf("tofu-%d-%d", h, i), at(0, 12, i), 200, 20))
				})
				if err != nil {
					t.Errorf("handle %d meal %d: %v", h, i, err)
					return
				}
			}
		}()
	}
	wg.Wait()

	reader, err := db.OpenDB(path)
	require.NoError(t, err)
	defer reader.Close()
	logs, err := NewSQLiteFoodLogRepo(reader).ListByDate(ctx, domain.FormatDate(day))
	require.NoError(t, err)
	assert.Len(t, logs, 40)
}
