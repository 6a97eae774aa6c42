// internal/seed/seed.go
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Marga-Ghale/ora-lists/internal/repository"
	"github.com/Marga-Ghale/ora-lists/internal/types"
	"github.com/google/uuid"
)

// Demo identities; the user ids match the "sub" claim of development tokens
// issued with `listctl token`.
const (
	DemoOwnerUserID = "user_demo_owner"
	DemoGuestUserID = "user_demo_guest"
)

// SeedData creates two demo profiles sharing a populated "Groceries" list.
// It does nothing when the owner profile already exists.
func SeedData(ctx context.Context, repos *repository.Repositories) error {
	existing, err := repos.ProfileRepo.FindByUserID(ctx, DemoOwnerUserID)
	if err != nil {
		return fmt.Errorf("seed: lookup demo profile: %w", err)
	}
	if existing != nil {
		slog.Info("Seed data already exists, skipping", "context", "seed.SeedData")
		return nil
	}

	slog.Info("🌱 Creating demo data", "context", "seed.SeedData")

	owner := &repository.Profile{
		UserID: DemoOwnerUserID,
		Name:   "Demo Owner",
		Email:  "owner@example.com",
	}
	if err := repos.ProfileRepo.Create(ctx, owner); err != nil {
		return fmt.Errorf("seed: create owner: %w", err)
	}

	guest := &repository.Profile{
		UserID: DemoGuestUserID,
		Name:   "Demo Guest",
		Email:  "guest@example.com",
	}
	if err := repos.ProfileRepo.Create(ctx, guest); err != nil {
		return fmt.Errorf("seed: create guest: %w", err)
	}

	list := &repository.List{
		Name:       "Groceries",
		ProfileID:  owner.ID,
		InviteCode: uuid.NewString(),
	}
	if _, err := repos.ListRepo.CreateWithOwner(ctx, list, types.RoleAdmin); err != nil {
		return fmt.Errorf("seed: create list: %w", err)
	}

	member := &repository.Member{ListID: list.ID, ProfileID: guest.ID, Role: types.RoleGuest}
	if err := repos.ListRepo.AddMember(ctx, member); err != nil {
		return fmt.Errorf("seed: add guest: %w", err)
	}

	result, err := repos.ContentRepo.Replace(ctx, list.ID, InitialCategories())
	if err != nil {
		return fmt.Errorf("seed: populate list: %w", err)
	}

	slog.Info("✅ Demo data created",
		"context", "seed.SeedData",
		"listId", list.ID,
		"inviteCode", list.InviteCode,
		"categories", result.Categories,
		"items", result.Items,
	)
	return nil
}
