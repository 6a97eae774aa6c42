package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/Marga-Ghale/ora-lists/internal/auth"
	"github.com/Marga-Ghale/ora-lists/internal/metrics"
	"github.com/Marga-Ghale/ora-lists/internal/repository"
	"github.com/Marga-Ghale/ora-lists/internal/seed"
	"github.com/Marga-Ghale/ora-lists/internal/types"
)

// ============================================
// List Service
// ============================================

// ListService is the List/Member access layer. Operations that act for the
// signed-in caller read the caller's Profile id from the context (see
// auth.WithProfileID) and fail with ErrForbidden before touching storage
// when there is none.
//
// Lookups filter by membership and owner-only mutations filter by owner in
// storage, so "no such list" and "not your list" both surface as ErrNotFound.
type ListService interface {
	AllForProfile(ctx context.Context, profileID string) ([]*repository.List, error)
	Find(ctx context.Context, profileID, listID string) (*repository.List, error)
	FindByInviteCode(ctx context.Context, profileID, inviteCode string) (*repository.List, error)

	Insert(ctx context.Context, name string, role types.MemberRole) (*repository.List, error)
	InsertMember(ctx context.Context, profileID, inviteCode string, role types.MemberRole) (*repository.List, error)
	Join(ctx context.Context, inviteCode string) (*JoinResult, error)

	Update(ctx context.Context, listID string, patch ListPatch) (*repository.List, error)
	UpdateInviteCode(ctx context.Context, listID string) (*repository.List, error)
	Delete(ctx context.Context, listID string) error

	RemoveMember(ctx context.Context, listID, memberID string) (*repository.List, error)
	UpdateMemberRole(ctx context.Context, listID, memberID string, role types.MemberRole) (*repository.List, error)

	Contents(ctx context.Context, listID string) ([]*repository.Category, error)
	Populate(ctx context.Context, listID string) (*repository.PopulateResult, error)
}

// ListPatch holds the caller-editable List fields; nil fields are unchanged.
type ListPatch struct {
	Name *string
}

type JoinResult struct {
	List          *repository.List
	AlreadyMember bool
}

type listService struct {
	listRepo    repository.ListRepository
	contentRepo repository.ContentRepository
	seeds       []repository.CategorySeed
	metrics     *metrics.Metrics
}

func NewListService(listRepo repository.ListRepository, contentRepo repository.ContentRepository, m *metrics.Metrics) ListService {
	return &listService{
		listRepo:    listRepo,
		contentRepo: contentRepo,
		seeds:       seed.InitialCategories(),
		metrics:     m,
	}
}

func caller(ctx context.Context, op string) (string, error) {
	profileID, ok := auth.ProfileID(ctx)
	if !ok {
		return "", newError(ErrForbidden, op, "sign in required")
	}
	return profileID, nil
}

// finish records the outcome of op and logs server errors.
func (s *listService) finish(op string, err error) error {
	if err == nil {
		s.metrics.ObserveOperation(op, "ok")
		return nil
	}

	kind := KindOf(err)
	s.metrics.ObserveOperation(op, strings.ReplaceAll(kind.Error(), " ", "_"))
	if kind == ErrServerError {
		slog.Error("List operation failed", "context", op, "error", err)
	} else {
		slog.Debug("List operation rejected", "context", op, "error", err)
	}
	return err
}

func (s *listService) AllForProfile(ctx context.Context, profileID string) (lists []*repository.List, err error) {
	const op = "ListService.AllForProfile"
	defer func() { err = s.finish(op, err) }()

	slog.Info("Listing lists", "context", op, "profileId", profileID)
	if err := checkID(op, "profileId", profileID); err != nil {
		return nil, err
	}

	lists, err = s.listRepo.FindAllForProfile(ctx, profileID)
	if err != nil {
		return nil, storageError(op, err)
	}
	return lists, nil
}

func (s *listService) Find(ctx context.Context, profileID, listID string) (list *repository.List, err error) {
	const op = "ListService.Find"
	defer func() { err = s.finish(op, err) }()

	slog.Info("Finding list", "context", op, "profileId", profileID, "listId", listID)
	if err := checkID(op, "profileId", profileID); err != nil {
		return nil, err
	}
	if err := checkID(op, "listId", listID); err != nil {
		return nil, err
	}

	return s.findForMember(ctx, op, profileID, listID)
}

func (s *listService) findForMember(ctx context.Context, op, profileID, listID string) (*repository.List, error) {
	list, err := s.listRepo.FindForMember(ctx, profileID, listID)
	if err != nil {
		return nil, storageError(op, err)
	}
	if list == nil {
		return nil, newError(ErrNotFound, op, "list not found")
	}
	return list, nil
}

func (s *listService) FindByInviteCode(ctx context.Context, profileID, inviteCode string) (list *repository.List, err error) {
	const op = "ListService.FindByInviteCode"
	defer func() { err = s.finish(op, err) }()

	slog.Info("Finding list by invite code", "context", op, "profileId", profileID)
	if err := checkID(op, "profileId", profileID); err != nil {
		return nil, err
	}
	if err := checkInviteCode(op, inviteCode); err != nil {
		return nil, err
	}

	list, err = s.listRepo.FindByInviteCodeForMember(ctx, profileID, inviteCode)
	if err != nil {
		return nil, storageError(op, err)
	}
	if list == nil {
		return nil, newError(ErrNotFound, op, "list not found")
	}
	return list, nil
}

func (s *listService) Insert(ctx context.Context, name string, role types.MemberRole) (list *repository.List, err error) {
	const op = "ListService.Insert"
	defer func() { err = s.finish(op, err) }()

	profileID, err := caller(ctx, op)
	if err != nil {
		return nil, err
	}
	if name, err = listName(op, name); err != nil {
		return nil, err
	}
	if err := checkRole(op, role); err != nil {
		return nil, err
	}

	slog.Info("Creating list", "context", op, "profileId", profileID, "name", name, "role", role)

	list = &repository.List{
		Name:       name,
		ProfileID:  profileID,
		InviteCode: newInviteCode(),
	}
	if _, err := s.listRepo.CreateWithOwner(ctx, list, role); err != nil {
		return nil, storageError(op, err)
	}
	return list, nil
}

func (s *listService) InsertMember(ctx context.Context, profileID, inviteCode string, role types.MemberRole) (list *repository.List, err error) {
	const op = "ListService.InsertMember"
	defer func() { err = s.finish(op, err) }()
	return s.insertMember(ctx, op, profileID, inviteCode, role)
}

func (s *listService) insertMember(ctx context.Context, op, profileID, inviteCode string, role types.MemberRole) (*repository.List, error) {
	if role == "" {
		role = types.RoleGuest
	}
	if err := checkID(op, "profileId", profileID); err != nil {
		return nil, err
	}
	if err := checkInviteCode(op, inviteCode); err != nil {
		return nil, err
	}
	if err := checkRole(op, role); err != nil {
		return nil, err
	}

	slog.Info("Adding member", "context", op, "profileId", profileID, "role", role)

	list, err := s.listRepo.FindByInviteCode(ctx, inviteCode)
	if err != nil {
		return nil, storageError(op, err)
	}
	if list == nil {
		return nil, newError(ErrNotFound, op, "no list has this invite code")
	}

	member := &repository.Member{ListID: list.ID, ProfileID: profileID, Role: role}
	if err := s.listRepo.AddMember(ctx, member); err != nil {
		e := storageError(op, err)
		if e.Kind == ErrNotUnique {
			e.Message = "already a member of this list"
		}
		return nil, e
	}

	return s.findForMember(ctx, op, profileID, list.ID)
}

func (s *listService) Join(ctx context.Context, inviteCode string) (result *JoinResult, err error) {
	const op = "ListService.Join"
	defer func() { err = s.finish(op, err) }()

	profileID, err := caller(ctx, op)
	if err != nil {
		return nil, err
	}
	if err := checkInviteCode(op, inviteCode); err != nil {
		return nil, err
	}

	list, err := s.joinedList(ctx, op, profileID, inviteCode)
	if err != nil {
		return nil, err
	}
	if list != nil {
		return &JoinResult{List: list, AlreadyMember: true}, nil
	}

	list, err = s.insertMember(ctx, op, profileID, inviteCode, types.RoleGuest)
	if errors.Is(err, ErrNotUnique) {
		// a concurrent join by the same profile won
		if joined, _ := s.joinedList(ctx, op, profileID, inviteCode); joined != nil {
			return &JoinResult{List: joined, AlreadyMember: true}, nil
		}
	}
	if err != nil {
		return nil, err
	}
	return &JoinResult{List: list}, nil
}

// joinedList returns the list behind inviteCode with its members when
// profileID already belongs to it, nil otherwise.
func (s *listService) joinedList(ctx context.Context, op, profileID, inviteCode string) (*repository.List, error) {
	existing, err := s.listRepo.FindByInviteCodeForMember(ctx, profileID, inviteCode)
	if err != nil {
		return nil, storageError(op, err)
	}
	if existing == nil {
		return nil, nil
	}
	return s.findForMember(ctx, op, profileID, existing.ID)
}

func (s *listService) Update(ctx context.Context, listID string, patch ListPatch) (list *repository.List, err error) {
	const op = "ListService.Update"
	defer func() { err = s.finish(op, err) }()

	profileID, err := caller(ctx, op)
	if err != nil {
		return nil, err
	}
	if err := checkID(op, "listId", listID); err != nil {
		return nil, err
	}

	var repoPatch repository.ListPatch
	if patch.Name != nil {
		name, err := listName(op, *patch.Name)
		if err != nil {
			return nil, err
		}
		repoPatch.Name = &name
	}

	slog.Info("Updating list", "context", op, "profileId", profileID, "listId", listID)

	list, err = s.listRepo.Update(ctx, profileID, listID, repoPatch)
	if err != nil {
		return nil, storageError(op, err)
	}
	if list == nil {
		return nil, newError(ErrNotFound, op, "list not found")
	}
	return list, nil
}

func (s *listService) UpdateInviteCode(ctx context.Context, listID string) (list *repository.List, err error) {
	const op = "ListService.UpdateInviteCode"
	defer func() { err = s.finish(op, err) }()

	profileID, err := caller(ctx, op)
	if err != nil {
		return nil, err
	}
	if err := checkID(op, "listId", listID); err != nil {
		return nil, err
	}

	slog.Info("Regenerating invite code", "context", op, "profileId", profileID, "listId", listID)

	list, err = s.listRepo.UpdateInviteCode(ctx, profileID, listID, newInviteCode())
	if err != nil {
		return nil, storageError(op, err)
	}
	if list == nil {
		return nil, newError(ErrNotFound, op, "list not found")
	}
	return list, nil
}

func (s *listService) Delete(ctx context.Context, listID string) (err error) {
	const op = "ListService.Delete"
	defer func() { err = s.finish(op, err) }()

	profileID, err := caller(ctx, op)
	if err != nil {
		return err
	}
	if err := checkID(op, "listId", listID); err != nil {
		return err
	}

	slog.Info("Deleting list", "context", op, "profileId", profileID, "listId", listID)

	deleted, err := s.listRepo.DeleteOwned(ctx, profileID, listID)
	if err != nil {
		return storageError(op, err)
	}
	if !deleted {
		return newError(ErrNotFound, op, "list not found")
	}
	return nil
}

// ownedList checks the caller owns listID.
func (s *listService) ownedList(ctx context.Context, op, profileID, listID string) error {
	list, err := s.listRepo.FindOwned(ctx, profileID, listID)
	if err != nil {
		return storageError(op, err)
	}
	if list == nil {
		return newError(ErrNotFound, op, "list not found")
	}
	return nil
}

// RemoveMember deletes memberID from the caller's list. The caller's own
// Member row is never removed; targeting it leaves the list unchanged.
func (s *listService) RemoveMember(ctx context.Context, listID, memberID string) (list *repository.List, err error) {
	const op = "ListService.RemoveMember"
	defer func() { err = s.finish(op, err) }()

	profileID, err := caller(ctx, op)
	if err != nil {
		return nil, err
	}
	if err := checkID(op, "listId", listID); err != nil {
		return nil, err
	}
	if err := checkID(op, "memberId", memberID); err != nil {
		return nil, err
	}
	if err := s.ownedList(ctx, op, profileID, listID); err != nil {
		return nil, err
	}

	removed, err := s.listRepo.RemoveMember(ctx, listID, memberID, profileID)
	if err != nil {
		return nil, storageError(op, err)
	}
	slog.Info("Removed member", "context", op, "listId", listID, "memberId", memberID, "removed", removed)

	return s.findForMember(ctx, op, profileID, listID)
}

// UpdateMemberRole changes the role of memberID in the caller's list. The
// caller's own Member row is never retargeted.
func (s *listService) UpdateMemberRole(ctx context.Context, listID, memberID string, role types.MemberRole) (list *repository.List, err error) {
	const op = "ListService.UpdateMemberRole"
	defer func() { err = s.finish(op, err) }()

	profileID, err := caller(ctx, op)
	if err != nil {
		return nil, err
	}
	if err := checkID(op, "listId", listID); err != nil {
		return nil, err
	}
	if err := checkID(op, "memberId", memberID); err != nil {
		return nil, err
	}
	if err := checkRole(op, role); err != nil {
		return nil, err
	}
	if err := s.ownedList(ctx, op, profileID, listID); err != nil {
		return nil, err
	}

	updated, err := s.listRepo.UpdateMemberRole(ctx, listID, memberID, profileID, role)
	if err != nil {
		return nil, storageError(op, err)
	}
	slog.Info("Updated member role", "context", op, "listId", listID, "memberId", memberID, "role", role, "updated", updated)

	return s.findForMember(ctx, op, profileID, listID)
}

func (s *listService) Contents(ctx context.Context, listID string) (categories []*repository.Category, err error) {
	const op = "ListService.Contents"
	defer func() { err = s.finish(op, err) }()

	profileID, err := caller(ctx, op)
	if err != nil {
		return nil, err
	}
	if err := checkID(op, "listId", listID); err != nil {
		return nil, err
	}

	slog.Info("Reading list contents", "context", op, "profileId", profileID, "listId", listID)

	list, err := s.listRepo.FindForMember(ctx, profileID, listID)
	if err != nil {
		return nil, storageError(op, err)
	}
	if list == nil {
		return nil, newError(ErrNotFound, op, "list not found")
	}

	categories, err = s.contentRepo.FindCategories(ctx, listID)
	if err != nil {
		return nil, storageError(op, err)
	}
	return categories, nil
}

// Populate replaces every Category and Item of the list with the default
// content, in one transaction. It is a maintenance operation and does not
// check the caller.
func (s *listService) Populate(ctx context.Context, listID string) (result *repository.PopulateResult, err error) {
	const op = "ListService.Populate"
	defer func() { err = s.finish(op, err) }()

	if err := checkID(op, "listId", listID); err != nil {
		return nil, err
	}

	slog.Info("Populating list", "context", op, "listId", listID)

	result, err = s.contentRepo.Replace(ctx, listID, s.seeds)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &Error{Kind: ErrNotFound, Op: op, Message: "list not found", Err: err}
	}
	if err != nil {
		return nil, storageError(op, err)
	}

	slog.Info("Populated list", "context", op, "listId", listID, "categories", result.Categories, "items", result.Items)
	return result, nil
}
