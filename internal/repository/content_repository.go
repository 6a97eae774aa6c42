package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Marga-Ghale/ora-lists/internal/db"
	"github.com/jmoiron/sqlx"
)

type Category struct {
	ID        string    `db:"id"`
	ListID    string    `db:"list_id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
	Items     []*Item   `db:"-"`
}

type Item struct {
	ID         string    `db:"id"`
	ListID     string    `db:"list_id"`
	CategoryID string    `db:"category_id"`
	Name       string    `db:"name"`
	Checked    bool      `db:"checked"`
	Selected   bool      `db:"selected"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// CategorySeed names one Category and the Items to create under it.
type CategorySeed struct {
	Name  string
	Items []string
}

type PopulateResult struct {
	Categories int
	Items      int
}

type ContentRepository interface {
	// FindCategories returns the List's Categories ordered by name, each with
	// its Items ordered by name.
	FindCategories(ctx context.Context, listID string) ([]*Category, error)

	// Replace deletes every Category and Item of the List and recreates them
	// from seeds, atomically. ErrNotFound when the List does not exist.
	Replace(ctx context.Context, listID string, seeds []CategorySeed) (*PopulateResult, error)
}

type pgContentRepository struct {
	db *sqlx.DB
}

func NewContentRepository(db *sqlx.DB) ContentRepository {
	return &pgContentRepository{db: db}
}

func (r *pgContentRepository) FindCategories(ctx context.Context, listID string) ([]*Category, error) {
	categories := []*Category{}
	query := `
		SELECT id, list_id, name, created_at, updated_at
		FROM categories WHERE list_id = $1
		ORDER BY name
	`
	if err := r.db.SelectContext(ctx, &categories, query, listID); err != nil {
		return nil, err
	}

	var items []*Item
	query = `
		SELECT id, list_id, category_id, name, checked, selected, created_at, updated_at
		FROM items WHERE list_id = $1
		ORDER BY name
	`
	if err := r.db.SelectContext(ctx, &items, query, listID); err != nil {
		return nil, err
	}

	byID := make(map[string]*Category, len(categories))
	for _, c := range categories {
		c.Items = []*Item{}
		byID[c.ID] = c
	}
	for _, item := range items {
		if c, ok := byID[item.CategoryID]; ok {
			c.Items = append(c.Items, item)
		}
	}
	return categories, nil
}

func (r *pgContentRepository) Replace(ctx context.Context, listID string, seeds []CategorySeed) (*PopulateResult, error) {
	result := &PopulateResult{}

	err := db.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		var id string
		err := tx.GetContext(ctx, &id, `SELECT id FROM lists WHERE id = $1 FOR UPDATE`, listID)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM items WHERE list_id = $1`, listID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM categories WHERE list_id = $1`, listID); err != nil {
			return err
		}

		for _, seed := range seeds {
			var categoryID string
			query := `INSERT INTO categories (list_id, name) VALUES ($1, $2) RETURNING id`
			if err := tx.GetContext(ctx, &categoryID, query, listID, seed.Name); err != nil {
				return err
			}
			result.Categories++

			for _, name := range seed.Items {
				query := `
					INSERT INTO items (list_id, category_id, name, checked, selected)
					VALUES ($1, $2, $3, FALSE, FALSE)
				`
				if _, err := tx.ExecContext(ctx, query, listID, categoryID, name); err != nil {
					return err
				}
				result.Items++
			}
		}
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}
	return result, nil
}
