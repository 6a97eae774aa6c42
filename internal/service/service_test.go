package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Marga-Ghale/ora-lists/internal/auth"
	"github.com/Marga-Ghale/ora-lists/internal/repository"
	"github.com/Marga-Ghale/ora-lists/internal/repository/memstore"
	"github.com/Marga-Ghale/ora-lists/internal/seed"
	"github.com/Marga-Ghale/ora-lists/internal/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	repos *repository.Repositories
	svc   *Services
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repos := memstore.NewRepositories()
	return &fixture{
		repos: repos,
		svc:   NewServices(&ServiceDeps{Repos: repos}),
	}
}

// signIn creates a profile and returns a context carrying it.
func (f *fixture) signIn(t *testing.T, userID, name string) (context.Context, *repository.Profile) {
	t.Helper()
	profile, err := f.svc.Profile.Current(context.Background(), auth.Identity{UserID: userID, Name: name})
	require.NoError(t, err)
	return auth.WithProfileID(context.Background(), profile.ID), profile
}

func assertKind(t *testing.T, err error, kind error) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, errors.Is(err, kind), "expected %v, got %v", kind, err)
}

func TestInsertCreatesListWithOwner(t *testing.T) {
	f := newFixture(t)
	ctx, p1 := f.signIn(t, "user_1", "Ada")

	list, err := f.svc.List.Insert(ctx, "  Groceries ", types.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, "Groceries", list.Name)
	assert.Equal(t, p1.ID, list.ProfileID)
	assert.NotEmpty(t, list.InviteCode)

	lists, err := f.svc.List.AllForProfile(ctx, p1.ID)
	require.NoError(t, err)
	require.Len(t, lists, 1)
	assert.Equal(t, "Groceries", lists[0].Name)

	found, err := f.svc.List.Find(ctx, p1.ID, list.ID)
	require.NoError(t, err)
	require.Len(t, found.Members, 1)
	assert.Equal(t, p1.ID, found.Members[0].ProfileID)
	assert.Equal(t, types.RoleAdmin, found.Members[0].Role)
}

func TestInsertRequiresCaller(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.List.Insert(context.Background(), "Groceries", types.RoleAdmin)
	assertKind(t, err, ErrForbidden)

	stats, err := f.repos.StatsRepo.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.Lists)
}

func TestInsertValidates(t *testing.T) {
	f := newFixture(t)
	ctx, _ := f.signIn(t, "user_1", "Ada")

	_, err := f.svc.List.Insert(ctx, "   ", types.RoleAdmin)
	assertKind(t, err, ErrBadRequest)

	_, err = f.svc.List.Insert(ctx, strings.Repeat("a", 101), types.RoleAdmin)
	assertKind(t, err, ErrBadRequest)

	_, err = f.svc.List.Insert(ctx, "Groceries", types.MemberRole("OWNER"))
	assertKind(t, err, ErrBadRequest)
}

func TestAllForProfileOrderedByName(t *testing.T) {
	f := newFixture(t)
	ctx, p1 := f.signIn(t, "user_1", "Ada")

	for _, name := range []string{"Party", "Groceries", "Hardware"} {
		_, err := f.svc.List.Insert(ctx, name, types.RoleAdmin)
		require.NoError(t, err)
	}

	lists, err := f.svc.List.AllForProfile(ctx, p1.ID)
	require.NoError(t, err)
	require.Len(t, lists, 3)
	assert.Equal(t, []string{"Groceries", "Hardware", "Party"}, []string{lists[0].Name, lists[1].Name, lists[2].Name})

	_, p2 := f.signIn(t, "user_2", "Bob")
	lists, err = f.svc.List.AllForProfile(ctx, p2.ID)
	require.NoError(t, err)
	assert.Empty(t, lists)
}

func TestInsertMemberAndVisibility(t *testing.T) {
	f := newFixture(t)
	ctx1, _ := f.signIn(t, "user_1", "Ada")
	_, p2 := f.signIn(t, "user_2", "Bob")
	_, p3 := f.signIn(t, "user_3", "Cy")

	list, err := f.svc.List.Insert(ctx1, "Groceries", types.RoleAdmin)
	require.NoError(t, err)

	joined, err := f.svc.List.InsertMember(context.Background(), p2.ID, list.InviteCode, "")
	require.NoError(t, err)
	require.Len(t, joined.Members, 2)
	assert.Equal(t, types.RoleGuest, joined.Members[1].Role)

	_, err = f.svc.List.Find(context.Background(), p2.ID, list.ID)
	require.NoError(t, err)

	_, err = f.svc.List.Find(context.Background(), p3.ID, list.ID)
	assertKind(t, err, ErrNotFound)

	_, err = f.svc.List.Find(context.Background(), p3.ID, uuid.NewString())
	assertKind(t, err, ErrNotFound)

	_, err = f.svc.List.InsertMember(context.Background(), p2.ID, list.InviteCode, types.RoleGuest)
	assertKind(t, err, ErrNotUnique)

	_, err = f.svc.List.InsertMember(context.Background(), p3.ID, "no-such-code", types.RoleGuest)
	assertKind(t, err, ErrNotFound)
}

func TestFindByInviteCodeRequiresMembership(t *testing.T) {
	f := newFixture(t)
	ctx1, p1 := f.signIn(t, "user_1", "Ada")
	_, p2 := f.signIn(t, "user_2", "Bob")

	list, err := f.svc.List.Insert(ctx1, "Groceries", types.RoleAdmin)
	require.NoError(t, err)

	found, err := f.svc.List.FindByInviteCode(ctx1, p1.ID, list.InviteCode)
	require.NoError(t, err)
	assert.Equal(t, list.ID, found.ID)

	_, err = f.svc.List.FindByInviteCode(ctx1, p2.ID, list.InviteCode)
	assertKind(t, err, ErrNotFound)

	_, err = f.svc.List.FindByInviteCode(ctx1, p1.ID, "")
	assertKind(t, err, ErrBadRequest)
}

func TestJoin(t *testing.T) {
	f := newFixture(t)
	ctx1, _ := f.signIn(t, "user_1", "Ada")
	ctx2, _ := f.signIn(t, "user_2", "Bob")

	list, err := f.svc.List.Insert(ctx1, "Groceries", types.RoleAdmin)
	require.NoError(t, err)

	result, err := f.svc.List.Join(ctx2, list.InviteCode)
	require.NoError(t, err)
	assert.False(t, result.AlreadyMember)
	assert.Len(t, result.List.Members, 2)

	result, err = f.svc.List.Join(ctx2, list.InviteCode)
	require.NoError(t, err)
	assert.True(t, result.AlreadyMember)
	assert.Len(t, result.List.Members, 2)

	result, err = f.svc.List.Join(ctx1, list.InviteCode)
	require.NoError(t, err)
	assert.True(t, result.AlreadyMember)

	_, err = f.svc.List.Join(context.Background(), list.InviteCode)
	assertKind(t, err, ErrForbidden)
}

func TestUpdateIsOwnerOnly(t *testing.T) {
	f := newFixture(t)
	ctx1, _ := f.signIn(t, "user_1", "Ada")
	ctx2, p2 := f.signIn(t, "user_2", "Bob")

	list, err := f.svc.List.Insert(ctx1, "Groceries", types.RoleAdmin)
	require.NoError(t, err)
	_, err = f.svc.List.InsertMember(ctx1, p2.ID, list.InviteCode, types.RoleAdmin)
	require.NoError(t, err)

	name := "Weekly Shop"
	updated, err := f.svc.List.Update(ctx1, list.ID, ListPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Weekly Shop", updated.Name)

	other := "Hijacked"
	_, err = f.svc.List.Update(ctx2, list.ID, ListPatch{Name: &other})
	assertKind(t, err, ErrNotFound)

	blank := ""
	_, err = f.svc.List.Update(ctx1, list.ID, ListPatch{Name: &blank})
	assertKind(t, err, ErrBadRequest)

	_, err = f.svc.List.Update(ctx1, "not-a-uuid", ListPatch{Name: &name})
	assertKind(t, err, ErrBadRequest)
}

func TestUpdateInviteCode(t *testing.T) {
	f := newFixture(t)
	ctx1, p1 := f.signIn(t, "user_1", "Ada")
	ctx2, _ := f.signIn(t, "user_2", "Bob")

	list, err := f.svc.List.Insert(ctx1, "Groceries", types.RoleAdmin)
	require.NoError(t, err)

	updated, err := f.svc.List.UpdateInviteCode(ctx1, list.ID)
	require.NoError(t, err)
	assert.NotEqual(t, list.InviteCode, updated.InviteCode)
	assert.Equal(t, list.ID, updated.ID)
	assert.Equal(t, p1.ID, updated.ProfileID)

	_, err = f.svc.List.Join(ctx2, list.InviteCode)
	assertKind(t, err, ErrNotFound)

	_, err = f.svc.List.UpdateInviteCode(ctx2, list.ID)
	assertKind(t, err, ErrNotFound)
}

func TestMemberManagementSelfProtection(t *testing.T) {
	f := newFixture(t)
	ctx1, p1 := f.signIn(t, "user_1", "Ada")
	ctx2, _ := f.signIn(t, "user_2", "Bob")

	list, err := f.svc.List.Insert(ctx1, "Groceries", types.RoleAdmin)
	require.NoError(t, err)
	joined, err := f.svc.List.Join(ctx2, list.InviteCode)
	require.NoError(t, err)

	var ownerMember, guestMember *repository.Member
	for _, m := range joined.List.Members {
		if m.ProfileID == p1.ID {
			ownerMember = m
		} else {
			guestMember = m
		}
	}
	require.NotNil(t, ownerMember)
	require.NotNil(t, guestMember)

	refreshed, err := f.svc.List.UpdateMemberRole(ctx1, list.ID, ownerMember.ID, types.RoleGuest)
	require.NoError(t, err)
	for _, m := range refreshed.Members {
		if m.ID == ownerMember.ID {
			assert.Equal(t, types.RoleAdmin, m.Role)
		}
	}

	refreshed, err = f.svc.List.RemoveMember(ctx1, list.ID, ownerMember.ID)
	require.NoError(t, err)
	assert.Len(t, refreshed.Members, 2)

	refreshed, err = f.svc.List.UpdateMemberRole(ctx1, list.ID, guestMember.ID, types.RoleAdmin)
	require.NoError(t, err)
	roles := map[string]types.MemberRole{}
	for _, m := range refreshed.Members {
		roles[m.ID] = m.Role
	}
	assert.Equal(t, types.RoleAdmin, roles[guestMember.ID])

	// a non-owner cannot manage members, even as ADMIN
	_, err = f.svc.List.RemoveMember(ctx2, list.ID, ownerMember.ID)
	assertKind(t, err, ErrNotFound)

	refreshed, err = f.svc.List.RemoveMember(ctx1, list.ID, guestMember.ID)
	require.NoError(t, err)
	require.Len(t, refreshed.Members, 1)
	assert.Equal(t, ownerMember.ID, refreshed.Members[0].ID)

	_, err = f.svc.List.UpdateMemberRole(ctx1, list.ID, guestMember.ID, types.MemberRole("OWNER"))
	assertKind(t, err, ErrBadRequest)
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	ctx1, p1 := f.signIn(t, "user_1", "Ada")
	ctx2, _ := f.signIn(t, "user_2", "Bob")

	list, err := f.svc.List.Insert(ctx1, "Groceries", types.RoleAdmin)
	require.NoError(t, err)
	_, err = f.svc.List.Join(ctx2, list.InviteCode)
	require.NoError(t, err)

	assertKind(t, f.svc.List.Delete(ctx2, list.ID), ErrNotFound)
	require.NoError(t, f.svc.List.Delete(ctx1, list.ID))
	assertKind(t, f.svc.List.Delete(ctx1, list.ID), ErrNotFound)

	_, err = f.svc.List.Find(ctx1, p1.ID, list.ID)
	assertKind(t, err, ErrNotFound)
}

func TestPopulateAndContents(t *testing.T) {
	f := newFixture(t)
	ctx1, _ := f.signIn(t, "user_1", "Ada")
	ctx2, _ := f.signIn(t, "user_2", "Bob")

	list, err := f.svc.List.Insert(ctx1, "Groceries", types.RoleAdmin)
	require.NoError(t, err)

	_, err = f.repos.ContentRepo.Replace(context.Background(), list.ID, []repository.CategorySeed{
		{Name: "Leftovers", Items: []string{"Old Item"}},
	})
	require.NoError(t, err)

	result, err := f.svc.List.Populate(context.Background(), list.ID)
	require.NoError(t, err)

	wantItems := 0
	for _, row := range seed.InitialListData {
		wantItems += len(row) - 1
	}
	assert.Equal(t, len(seed.InitialListData), result.Categories)
	assert.Equal(t, wantItems, result.Items)

	categories, err := f.svc.List.Contents(ctx1, list.ID)
	require.NoError(t, err)
	require.Len(t, categories, len(seed.InitialListData))
	assert.Equal(t, "Alcohol", categories[0].Name)

	total := 0
	for _, c := range categories {
		assert.NotEqual(t, "Leftovers", c.Name)
		for _, item := range c.Items {
			assert.False(t, item.Checked)
			assert.False(t, item.Selected)
			total++
		}
	}
	assert.Equal(t, wantItems, total)

	_, err = f.svc.List.Contents(ctx2, list.ID)
	assertKind(t, err, ErrNotFound)

	_, err = f.svc.List.Populate(context.Background(), uuid.NewString())
	assertKind(t, err, ErrNotFound)
}

func TestProfileCurrentCreatesOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.Profile.Current(ctx, auth.Identity{UserID: "user_1", Name: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)
	second, err := f.svc.Profile.Current(ctx, auth.Identity{UserID: "user_1", Name: "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Ada", second.Name)

	_, err = f.svc.Profile.Current(ctx, auth.Identity{})
	assertKind(t, err, ErrForbidden)

	found, err := f.svc.Profile.FindByUserID(ctx, "user_1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, found.ID)

	_, err = f.svc.Profile.FindByUserID(ctx, "user_2")
	assertKind(t, err, ErrNotFound)
}

type mapCache struct {
	values map[string]repository.Profile
	sets   int
}

func (c *mapCache) SetCache(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	c.values[key] = *value.(*repository.Profile)
	c.sets++
	return nil
}

func (c *mapCache) GetCache(ctx context.Context, key string, dest interface{}) error {
	v, ok := c.values[key]
	if !ok {
		return errors.New("miss")
	}
	*dest.(*repository.Profile) = v
	return nil
}

func TestProfileCurrentUsesCache(t *testing.T) {
	repos := memstore.NewRepositories()
	cache := &mapCache{values: map[string]repository.Profile{}}
	svc := NewProfileService(repos.ProfileRepo, cache, time.Minute)
	ctx := context.Background()

	first, err := svc.Current(ctx, auth.Identity{UserID: "user_1", Name: "Ada"})
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)

	second, err := svc.Current(ctx, auth.Identity{UserID: "user_1", Name: "Ada"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, cache.sets)
}

func TestInsertNeverExposesListWithoutOwner(t *testing.T) {
	f := newFixture(t)
	ctx, owner := f.signIn(t, "user_1", "Ada")

	const inserts = 200
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		defer close(done)
		for i := 0; i < inserts; i++ {
			if _, err := f.svc.List.Insert(ctx, "List", types.RoleAdmin); err != nil {
				t.Errorf("insert %d: %v", i, err)
				return
			}
		}
	}()

	reads := 0
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
			}

			lists, err := f.svc.List.AllForProfile(ctx, owner.ID)
			if err != nil {
				t.Errorf("all for profile: %v", err)
				return
			}
			for _, l := range lists {
				found, err := f.svc.List.Find(ctx, owner.ID, l.ID)
				if err != nil {
					t.Errorf("find %s: %v", l.ID, err)
					return
				}
				if !hasMember(found, owner.ID, types.RoleAdmin) {
					t.Errorf("list %s visible without its owner member", l.ID)
					return
				}
			}
			reads++
		}
	}()

	wg.Wait()
	t.Logf("%d concurrent reads", reads)

	lists, err := f.svc.List.AllForProfile(ctx, owner.ID)
	require.NoError(t, err)
	assert.Len(t, lists, inserts)
}

func hasMember(list *repository.List, profileID string, role types.MemberRole) bool {
	for _, m := range list.Members {
		if m.ProfileID == profileID && m.Role == role {
			return true
		}
	}
	return false
}
