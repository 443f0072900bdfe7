package container

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/go-user-management/config"
	"github.com/oksasatya/go-user-management/pkg/helpers"
)

func testConfig() *config.Config {
	return &config.Config{
		AppName:     "test",
		StoreDriver: config.StoreDriverMemory,
		BcryptCost:  bcrypt.MinCost,
	}
}

func TestNew_MemorySeeded(t *testing.T) {
	cfg := testConfig()
	cfg.SeedOnEmpty = true
	logger := helpers.NewLogger("test", "test", helpers.WithOutput(io.Discard))

	c, err := New(context.Background(), cfg, logger)
	require.NoError(t, err)
	defer c.Close()

	assert.Nil(t, c.Events)
	list, err := c.Accounts.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 3)

	svc := c.AccountService()
	assert.Same(t, c.Accounts, svc.Repo)
}

func TestNew_UnknownDriver(t *testing.T) {
	cfg := testConfig()
	cfg.StoreDriver = "sqlite"
	_, err := New(context.Background(), cfg, helpers.NewLogger("test", "test", helpers.WithOutput(io.Discard)))
	assert.ErrorContains(t, err, `unknown store driver "sqlite"`)
}

func TestClose_ReverseOrder(t *testing.T) {
	var order []int
	c := &Container{}
	c.closers = append(c.closers, func() { order = append(order, 1) }, func() { order = append(order, 2) })
	c.Close()
	c.Close()
	assert.Equal(t, []int{2, 1}, order)
}
