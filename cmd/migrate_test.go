package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/FACorreiaa/go-cityinfo-api/config"
)

func TestRequirePostgres(t *testing.T) {
	t.Cleanup(func() { cfg = config.Config{} })

	cfg.Store.Driver = config.StoreDriverMemory
	assert.ErrorContains(t, requirePostgres(), "migrations need the postgres store")

	cfg.Store.Driver = config.StoreDriverPostgres
	assert.NoError(t, requirePostgres())
}

func TestMigrateCmd_HasSubcommands(t *testing.T) {
	cmd := migrateCmd()

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"up", "down"}, names)

	down, _, err := cmd.Find([]string{"down"})
	assert.NoError(t, err)
	steps, err := down.Flags().GetInt("steps")
	assert.NoError(t, err)
	assert.Equal(t, 1, steps)
}
