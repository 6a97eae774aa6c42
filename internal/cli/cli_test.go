package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/Marga-Ghale/ora-lists/internal/auth"
	"github.com/Marga-Ghale/ora-lists/internal/config"
	"github.com/Marga-Ghale/ora-lists/internal/repository"
	"github.com/Marga-Ghale/ora-lists/internal/repository/memstore"
	"github.com/Marga-Ghale/ora-lists/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, opts Options, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	opts.Out = &out
	cmd := NewRootCommand(opts)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func fixedRepos(repos *repository.Repositories) func(*config.Config) (*repository.Repositories, func(), error) {
	return func(*config.Config) (*repository.Repositories, func(), error) {
		return repos, func() {}, nil
	}
}

func TestTokenCommand(t *testing.T) {
	cfg := &config.Config{Environment: "development", JWTSecret: "secret"}

	out, err := run(t, Options{Config: cfg}, "token", "--user", "user_42", "--name", "Ada")
	require.NoError(t, err)

	identity, err := auth.NewVerifier("secret", "").Verify(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "user_42", identity.UserID)
	assert.Equal(t, "Ada", identity.Name)

	_, err = run(t, Options{Config: &config.Config{Environment: "production", JWTSecret: "secret"}}, "token")
	assert.Error(t, err)
}

func TestPopulateCommand(t *testing.T) {
	repos := memstore.NewRepositories()
	ctx := context.Background()

	owner := &repository.Profile{UserID: "user_1", Name: "Ada"}
	require.NoError(t, repos.ProfileRepo.Create(ctx, owner))
	list := &repository.List{Name: "Groceries", ProfileID: owner.ID, InviteCode: "code-1"}
	_, err := repos.ListRepo.CreateWithOwner(ctx, list, types.RoleAdmin)
	require.NoError(t, err)

	opts := Options{Config: &config.Config{}, OpenRepos: fixedRepos(repos)}
	out, err := run(t, opts, "populate", list.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "23 categories")

	_, err = run(t, opts, "populate", "not-a-uuid")
	assert.Error(t, err)

	_, err = run(t, opts, "populate")
	assert.Error(t, err)
}

func TestSeedCommand(t *testing.T) {
	repos := memstore.NewRepositories()
	out, err := run(t, Options{Config: &config.Config{}, OpenRepos: fixedRepos(repos)}, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "Seed complete")

	stats, err := repos.StatsRepo.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Lists)
}

func TestOpenRepositoriesRejectsUnknownStore(t *testing.T) {
	_, _, err := OpenRepositories(&config.Config{Store: "sqlite"})
	assert.Error(t, err)

	repos, closeRepos, err := OpenRepositories(&config.Config{Store: config.StoreMemory})
	require.NoError(t, err)
	defer closeRepos()
	assert.NotNil(t, repos.ListRepo)
}
