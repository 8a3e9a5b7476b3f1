package ledger

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accrue-app/accrue/internal/model"
)

// Moving money between tracked accounts never changes net worth, so any
// dashboard read that catches a transfer halfway shows up as drift.
func TestDashboardNeverSeesHalfATransfer(t *testing.T) {
	eng := createTestLedger(t)
	ctx := context.Background()

	checking := addAccount(t, eng, "Checking", model.AccountDebit, decimal.NewFromInt(1000))
	savings := addAccount(t, eng, "Savings", model.AccountSavings, decimal.Zero)

	done := make(chan struct{})
	var writerErr error
	go func() {
		defer close(done)
		for i := 0; i < 25; i++ {
			_, err := eng.CreateTransfer(ctx, model.TransferFields{
				FromAccountID: checking.ID,
				ToAccountID:   savings.ID,
				Amount:        decimal.NewFromInt(10),
				Date:          model.NewDate(2026, 3, 1),
			})
			if err != nil {
				writerErr = err
				return
			}
		}
	}()

	want := decimal.NewFromInt(1000)
	for {
		dashboard, err := eng.Dashboard(ctx)
		require.NoError(t, err)
		require.Truef(t, dashboard.NetWorth.Equal(want), "net worth drifted to %s", dashboard.NetWorth)

		select {
		case <-done:
			require.NoError(t, writerErr)
			return
		default:
		}
	}
}

func TestRestoreSerializesWithReads(t *testing.T) {
	eng := createTestLedger(t)
	ctx := context.Background()

	account := addAccount(t, eng, "Checking", model.AccountDebit, decimal.Zero)
	addTransaction(t, eng, account.ID, model.TypeIncome, 500, model.NewDate(2026, 4, 1))

	backupPath := filepath.Join(t.TempDir(), "snapshot.db")
	require.NoError(t, eng.Backup(ctx, backupPath))

	var wg sync.WaitGroup
	errs := make(chan error, 64)

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 5; i++ {
			if err := eng.Restore(ctx, backupPath); err != nil {
				errs <- err
				return
			}
		}
	}()

	for n := 0; n < 4; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 20; i++ {
				if _, err := eng.Dashboard(ctx); err != nil {
					errs <- err
					return
				}
			}
		}()
	}

	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	balance, err := eng.AccountBalance(ctx, account.ID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(500)))
}
