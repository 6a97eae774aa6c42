package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Marga-Ghale/ora-lists/internal/db"
	"github.com/Marga-Ghale/ora-lists/internal/types"
	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

type List struct {
	ID         string    `db:"id"`
	Name       string    `db:"name"`
	ProfileID  string    `db:"profile_id"` // owner
	InviteCode string    `db:"invite_code"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
	Members    []*Member `db:"-"`
}

type Member struct {
	ID        string           `db:"id"`
	ListID    string           `db:"list_id"`
	ProfileID string           `db:"profile_id"`
	Role      types.MemberRole `db:"role"`
	CreatedAt time.Time        `db:"created_at"`
	UpdatedAt time.Time        `db:"updated_at"`
	Profile   *Profile         `db:"-"`
}

// ListPatch holds the updatable List fields; nil fields are left unchanged.
type ListPatch struct {
	Name *string
}

type ListRepository interface {
	FindAllForProfile(ctx context.Context, profileID string) ([]*List, error)
	FindByInviteCode(ctx context.Context, inviteCode string) (*List, error)

	// Membership-filtered lookups. A List the profile is not a member of is
	// reported exactly like a missing List: (nil, nil).
	FindForMember(ctx context.Context, profileID, listID string) (*List, error)
	FindByInviteCodeForMember(ctx context.Context, profileID, inviteCode string) (*List, error)

	// Owner-filtered lookups and mutations, (nil, nil) when the profile does not own the List.
	FindOwned(ctx context.Context, ownerID, listID string) (*List, error)
	Update(ctx context.Context, ownerID, listID string, patch ListPatch) (*List, error)
	UpdateInviteCode(ctx context.Context, ownerID, listID, inviteCode string) (*List, error)
	DeleteOwned(ctx context.Context, ownerID, listID string) (bool, error)

	// CreateWithOwner inserts the List and its owner Member in one transaction.
	CreateWithOwner(ctx context.Context, list *List, role types.MemberRole) (*Member, error)
	AddMember(ctx context.Context, member *Member) error
	FindMembers(ctx context.Context, listID string) ([]*Member, error)

	// Member mutations never touch the row belonging to protectedProfileID.
	RemoveMember(ctx context.Context, listID, memberID, protectedProfileID string) (bool, error)
	UpdateMemberRole(ctx context.Context, listID, memberID, protectedProfileID string, role types.MemberRole) (bool, error)
}

const listColumns = `l.id, l.name, l.profile_id, l.invite_code, l.created_at, l.updated_at`

const isMember = `EXISTS (SELECT 1 FROM members m WHERE m.list_id = l.id AND m.profile_id = $2)`

type pgListRepository struct {
	db *sqlx.DB
}

func NewListRepository(db *sqlx.DB) ListRepository {
	return &pgListRepository{db: db}
}

func (r *pgListRepository) getList(ctx context.Context, query string, args ...interface{}) (*List, error) {
	list := &List{}
	err := r.db.GetContext(ctx, list, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *pgListRepository) FindAllForProfile(ctx context.Context, profileID string) ([]*List, error) {
	query := `
		SELECT ` + listColumns + `
		FROM lists l
		WHERE EXISTS (SELECT 1 FROM members m WHERE m.list_id = l.id AND m.profile_id = $1)
		ORDER BY l.name
	`
	lists := []*List{}
	if err := r.db.SelectContext(ctx, &lists, query, profileID); err != nil {
		return nil, err
	}
	return lists, nil
}

func (r *pgListRepository) FindByInviteCode(ctx context.Context, inviteCode string) (*List, error) {
	query := `SELECT ` + listColumns + ` FROM lists l WHERE l.invite_code = $1`
	return r.getList(ctx, query, inviteCode)
}

func (r *pgListRepository) FindForMember(ctx context.Context, profileID, listID string) (*List, error) {
	query := `SELECT ` + listColumns + ` FROM lists l WHERE l.id = $1 AND ` + isMember
	list, err := r.getList(ctx, query, listID, profileID)
	if err != nil || list == nil {
		return nil, err
	}

	members, err := r.FindMembers(ctx, list.ID)
	if err != nil {
		return nil, err
	}
	list.Members = members
	return list, nil
}

func (r *pgListRepository) FindByInviteCodeForMember(ctx context.Context, profileID, inviteCode string) (*List, error) {
	query := `SELECT ` + listColumns + ` FROM lists l WHERE l.invite_code = $1 AND ` + isMember
	return r.getList(ctx, query, inviteCode, profileID)
}

func (r *pgListRepository) FindOwned(ctx context.Context, ownerID, listID string) (*List, error) {
	query := `SELECT ` + listColumns + ` FROM lists l WHERE l.id = $1 AND l.profile_id = $2`
	return r.getList(ctx, query, listID, ownerID)
}

func (r *pgListRepository) Update(ctx context.Context, ownerID, listID string, patch ListPatch) (*List, error) {
	if patch.Name == nil {
		return r.FindOwned(ctx, ownerID, listID)
	}

	query, args, err := sq.Update("lists").
		Set("name", *patch.Name).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": listID, "profile_id": ownerID}).
		Suffix("RETURNING id, name, profile_id, invite_code, created_at, updated_at").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	list, err := r.getList(ctx, query, args...)
	return list, classify(err)
}

func (r *pgListRepository) UpdateInviteCode(ctx context.Context, ownerID, listID, inviteCode string) (*List, error) {
	query := `
		UPDATE lists SET invite_code = $3, updated_at = NOW()
		WHERE id = $1 AND profile_id = $2
		RETURNING id, name, profile_id, invite_code, created_at, updated_at
	`
	list, err := r.getList(ctx, query, listID, ownerID, inviteCode)
	return list, classify(err)
}

func (r *pgListRepository) DeleteOwned(ctx context.Context, ownerID, listID string) (bool, error) {
	query := `DELETE FROM lists WHERE id = $1 AND profile_id = $2`
	result, err := r.db.ExecContext(ctx, query, listID, ownerID)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	return n > 0, err
}

func (r *pgListRepository) CreateWithOwner(ctx context.Context, list *List, role types.MemberRole) (*Member, error) {
	owner := &Member{ProfileID: list.ProfileID, Role: role}

	err := db.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO lists (name, profile_id, invite_code)
			VALUES ($1, $2, $3)
			RETURNING id, created_at, updated_at
		`
		if err := tx.QueryRowxContext(ctx, query, list.Name, list.ProfileID, list.InviteCode).
			Scan(&list.ID, &list.CreatedAt, &list.UpdatedAt); err != nil {
			return err
		}

		owner.ListID = list.ID
		return insertMember(ctx, tx, owner)
	})
	if err != nil {
		return nil, classify(err)
	}

	list.Members = []*Member{owner}
	return owner, nil
}

func (r *pgListRepository) AddMember(ctx context.Context, member *Member) error {
	return classify(insertMember(ctx, r.db, member))
}

func insertMember(ctx context.Context, q sqlx.QueryerContext, member *Member) error {
	query := `
		INSERT INTO members (list_id, profile_id, role)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	return q.QueryRowxContext(ctx, query, member.ListID, member.ProfileID, member.Role).
		Scan(&member.ID, &member.CreatedAt, &member.UpdatedAt)
}

func (r *pgListRepository) FindMembers(ctx context.Context, listID string) ([]*Member, error) {
	query := `
		SELECT m.id, m.list_id, m.profile_id, m.role, m.created_at, m.updated_at,
		       p.id, p.user_id, p.name, p.email, p.image_url, p.created_at, p.updated_at
		FROM members m
		JOIN profiles p ON m.profile_id = p.id
		WHERE m.list_id = $1
		ORDER BY m.role, p.name
	`
	rows, err := r.db.QueryContext(ctx, query, listID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := []*Member{}
	for rows.Next() {
		m := &Member{Profile: &Profile{}}
		if err := rows.Scan(
			&m.ID, &m.ListID, &m.ProfileID, &m.Role, &m.CreatedAt, &m.UpdatedAt,
			&m.Profile.ID, &m.Profile.UserID, &m.Profile.Name, &m.Profile.Email,
			&m.Profile.ImageURL, &m.Profile.CreatedAt, &m.Profile.UpdatedAt,
		); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *pgListRepository) RemoveMember(ctx context.Context, listID, memberID, protectedProfileID string) (bool, error) {
	query := `DELETE FROM members WHERE id = $1 AND list_id = $2 AND profile_id <> $3`
	result, err := r.db.ExecContext(ctx, query, memberID, listID, protectedProfileID)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	return n > 0, err
}

func (r *pgListRepository) UpdateMemberRole(ctx context.Context, listID, memberID, protectedProfileID string, role types.MemberRole) (bool, error) {
	query := `
		UPDATE members SET role = $4, updated_at = NOW()
		WHERE id = $1 AND list_id = $2 AND profile_id <> $3
	`
	result, err := r.db.ExecContext(ctx, query, memberID, listID, protectedProfileID, role)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	return n > 0, err
}
