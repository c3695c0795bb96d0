//go:build integration

package tests

import (
	"testing"

	"github.com/go-petr/pet-ledger/internal/integrationtest"
)

func TestLedgerPGS(t *testing.T) {
	db := integrationtest.SetupDB(t)

	t.Run("Ledger", func(t *testing.T) {
		testLedger(t, integrationtest.SetupServer(t, db))
	})

	t.Run("Users", func(t *testing.T) {
		testUsers(t, integrationtest.SetupServer(t, db))
	})
}
