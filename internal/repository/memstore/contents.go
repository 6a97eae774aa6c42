package memstore

import (
	"context"
	"fmt"
	"sort"

	"github.com/Marga-Ghale/ora-lists/internal/repository"
	"github.com/google/uuid"
)

type contentRepository struct {
	s *Store
}

var _ repository.ContentRepository = (*contentRepository)(nil)

func (r *contentRepository) FindCategories(ctx context.Context, listID string) ([]*repository.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	categories := []*repository.Category{}
	byID := make(map[string]*repository.Category)
	for _, c := range r.s.categories {
		if c.ListID != listID {
			continue
		}
		c := c
		c.Items = []*repository.Item{}
		categories = append(categories, &c)
		byID[c.ID] = &c
	}
	for _, it := range r.s.items {
		if c, ok := byID[it.CategoryID]; ok {
			it := it
			c.Items = append(c.Items, &it)
		}
	}

	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	for _, c := range categories {
		sort.Slice(c.Items, func(i, j int) bool { return c.Items[i].Name < c.Items[j].Name })
	}
	return categories, nil
}

func (r *contentRepository) Replace(ctx context.Context, listID string, seeds []repository.CategorySeed) (*repository.PopulateResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.lists[listID]; !ok {
		return nil, fmt.Errorf("%w: list %s", repository.ErrNotFound, listID)
	}

	// Check constraints up front so a failing seed leaves the list untouched.
	categoryNames := make(map[string]bool)
	itemNames := make(map[string]bool)
	for _, seed := range seeds {
		if categoryNames[seed.Name] {
			return nil, duplicate("categories_list_id_name_key")
		}
		categoryNames[seed.Name] = true
		for _, name := range seed.Items {
			if itemNames[name] {
				return nil, duplicate("items_list_id_name_key")
			}
			itemNames[name] = true
		}
	}

	r.s.clearContents(listID)

	now := r.s.now()
	result := &repository.PopulateResult{}
	for _, seed := range seeds {
		category := repository.Category{
			ID:        uuid.NewString(),
			ListID:    listID,
			Name:      seed.Name,
			CreatedAt: now,
			UpdatedAt: now,
		}
		r.s.categories[category.ID] = category
		result.Categories++

		for _, name := range seed.Items {
			item := repository.Item{
				ID:         uuid.NewString(),
				ListID:     listID,
				CategoryID: category.ID,
				Name:       name,
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			r.s.items[item.ID] = item
			result.Items++
		}
	}
	return result, nil
}

// clearContents removes every category and item of the list. Callers hold
// the write lock.
func (s *Store) clearContents(listID string) {
	for id, it := range s.items {
		if it.ListID == listID {
			delete(s.items, id)
		}
	}
	for id, c := range s.categories {
		if c.ListID == listID {
			delete(s.categories, id)
		}
	}
}
