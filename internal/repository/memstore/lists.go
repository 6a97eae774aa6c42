package memstore

import (
	"context"
	"sort"

	"github.com/Marga-Ghale/ora-lists/internal/repository"
	"github.com/Marga-Ghale/ora-lists/internal/types"
	"github.com/google/uuid"
)

type listRepository struct {
	s *Store
}

var _ repository.ListRepository = (*listRepository)(nil)

func (r *listRepository) FindAllForProfile(ctx context.Context, profileID string) ([]*repository.List, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	lists := []*repository.List{}
	for id := range r.s.lists {
		if r.s.isMember(profileID, id) {
			lists = append(lists, r.s.listOf(id))
		}
	}
	sort.Slice(lists, func(i, j int) bool {
		if lists[i].Name != lists[j].Name {
			return lists[i].Name < lists[j].Name
		}
		return lists[i].ID < lists[j].ID
	})
	return lists, nil
}

func (r *listRepository) findByInviteCode(inviteCode string) *repository.List {
	for id, l := range r.s.lists {
		if l.InviteCode == inviteCode {
			return r.s.listOf(id)
		}
	}
	return nil
}

func (r *listRepository) FindByInviteCode(ctx context.Context, inviteCode string) (*repository.List, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.findByInviteCode(inviteCode), nil
}

func (r *listRepository) FindForMember(ctx context.Context, profileID, listID string) (*repository.List, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	list := r.s.listOf(listID)
	if list == nil || !r.s.isMember(profileID, listID) {
		return nil, nil
	}
	list.Members = r.s.membersOf(listID)
	return list, nil
}

func (r *listRepository) FindByInviteCodeForMember(ctx context.Context, profileID, inviteCode string) (*repository.List, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	list := r.findByInviteCode(inviteCode)
	if list == nil || !r.s.isMember(profileID, list.ID) {
		return nil, nil
	}
	return list, nil
}

func (r *listRepository) findOwned(ownerID, listID string) *repository.List {
	list := r.s.listOf(listID)
	if list == nil || list.ProfileID != ownerID {
		return nil
	}
	return list
}

func (r *listRepository) FindOwned(ctx context.Context, ownerID, listID string) (*repository.List, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.findOwned(ownerID, listID), nil
}

func (r *listRepository) Update(ctx context.Context, ownerID, listID string, patch repository.ListPatch) (*repository.List, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	list := r.findOwned(ownerID, listID)
	if list == nil || patch.Name == nil {
		return list, nil
	}

	list.Name = *patch.Name
	list.UpdatedAt = r.s.now()
	r.s.lists[list.ID] = *list
	return list, nil
}

func (r *listRepository) UpdateInviteCode(ctx context.Context, ownerID, listID, inviteCode string) (*repository.List, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	list := r.findOwned(ownerID, listID)
	if list == nil {
		return nil, nil
	}
	if other := r.findByInviteCode(inviteCode); other != nil && other.ID != list.ID {
		return nil, duplicate("lists_invite_code_key")
	}

	list.InviteCode = inviteCode
	list.UpdatedAt = r.s.now()
	r.s.lists[list.ID] = *list
	return list, nil
}

func (r *listRepository) DeleteOwned(ctx context.Context, ownerID, listID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.findOwned(ownerID, listID) == nil {
		return false, nil
	}

	delete(r.s.lists, listID)
	for id, m := range r.s.members {
		if m.ListID == listID {
			delete(r.s.members, id)
		}
	}
	r.s.clearContents(listID)
	return true, nil
}

func (r *listRepository) CreateWithOwner(ctx context.Context, list *repository.List, role types.MemberRole) (*repository.Member, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.profiles[list.ProfileID]; !ok {
		return nil, foreignKey("lists_profile_id_fkey")
	}
	if r.findByInviteCode(list.InviteCode) != nil {
		return nil, duplicate("lists_invite_code_key")
	}

	now := r.s.now()
	list.ID = uuid.NewString()
	list.CreatedAt = now
	list.UpdatedAt = now
	stored := *list
	stored.Members = nil
	r.s.lists[list.ID] = stored

	owner := &repository.Member{
		ID:        uuid.NewString(),
		ListID:    list.ID,
		ProfileID: list.ProfileID,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.s.members[owner.ID] = *owner

	list.Members = []*repository.Member{owner}
	return owner, nil
}

func (r *listRepository) AddMember(ctx context.Context, member *repository.Member) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.lists[member.ListID]; !ok {
		return foreignKey("members_list_id_fkey")
	}
	if _, ok := r.s.profiles[member.ProfileID]; !ok {
		return foreignKey("members_profile_id_fkey")
	}
	if r.s.isMember(member.ProfileID, member.ListID) {
		return duplicate("members_list_id_profile_id_key")
	}

	now := r.s.now()
	member.ID = uuid.NewString()
	member.CreatedAt = now
	member.UpdatedAt = now
	stored := *member
	stored.Profile = nil
	r.s.members[member.ID] = stored
	return nil
}

func (r *listRepository) FindMembers(ctx context.Context, listID string) ([]*repository.Member, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.s.membersOf(listID), nil
}

// target returns the member row a mutation may touch: it must belong to the
// list and must not be protectedProfileID's own row.
func (r *listRepository) target(listID, memberID, protectedProfileID string) (repository.Member, bool) {
	m, ok := r.s.members[memberID]
	if !ok || m.ListID != listID || m.ProfileID == protectedProfileID {
		return repository.Member{}, false
	}
	return m, true
}

func (r *listRepository) RemoveMember(ctx context.Context, listID, memberID, protectedProfileID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.target(listID, memberID, protectedProfileID); !ok {
		return false, nil
	}
	delete(r.s.members, memberID)
	return true, nil
}

func (r *listRepository) UpdateMemberRole(ctx context.Context, listID, memberID, protectedProfileID string, role types.MemberRole) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	m, ok := r.target(listID, memberID, protectedProfileID)
	if !ok {
		return false, nil
	}
	m.Role = role
	m.UpdatedAt = r.s.now()
	r.s.members[memberID] = m
	return true, nil
}
