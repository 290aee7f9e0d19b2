package repository

import (
	"context"
	"database/sql"

	"github.com/quai-antique/restaurant-reservation/internal/model"
)

// MenuRepo provides CRUD for menu categories and dishes.
type MenuRepo struct{ DB *sql.DB }

func NewMenuRepo(db *sql.DB) *MenuRepo { return &MenuRepo{DB: db} }

// ListCategories returns all categories ordered by title.
func (r *MenuRepo) ListCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT id, title FROM categories ORDER BY title")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Category, 0)
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Title); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// CreateCategory inserts a category and returns its ID.
func (r *MenuRepo) CreateCategory(ctx context.Context, title string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx, "INSERT INTO categories (title) VALUES (?)", title)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// UpdateCategory renames a category.
func (r *MenuRepo) UpdateCategory(ctx context.Context, id uint64, title string) error {
	_, err := r.DB.ExecContext(ctx, "UPDATE categories SET title=? WHERE id=?", title, id)
	return err
}

// DeleteCategory removes a category; its dishes cascade.
func (r *MenuRepo) DeleteCategory(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM categories WHERE id=?", id)
	return err
}

// ListDishes returns every dish joined with its category title, grouped by
// category for the menu page.
func (r *MenuRepo) ListDishes(ctx context.Context) ([]model.Dish, error) {
	const q = `SELECT d.id, d.category_id, c.title, d.title, d.description, d.price
	           FROM dishes d
	           JOIN categories c ON c.id = d.category_id
	           ORDER BY d.category_id, d.title`
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Dish, 0)
	for rows.Next() {
		var d model.Dish
		if err := rows.Scan(&d.ID, &d.CategoryID, &d.CategoryTitle, &d.Title, &d.Description, &d.Price); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// ListDishesByCategory returns the dishes of one category ordered by title.
func (r *MenuRepo) ListDishesByCategory(ctx context.Context, categoryID uint64) ([]model.Dish, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, category_id, title, description, price FROM dishes WHERE category_id=? ORDER BY title",
		categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Dish, 0)
	for rows.Next() {
		var d model.Dish
		if err := rows.Scan(&d.ID, &d.CategoryID, &d.Title, &d.Description, &d.Price); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// CreateDish inserts a dish and returns its ID.
func (r *MenuRepo) CreateDish(ctx context.Context, categoryID uint64, title string, description *string, price string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO dishes (category_id, title, description, price) VALUES (?,?,?,?)",
		categoryID, title, description, price)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// UpdateDish overwrites a dish's fields.
func (r *MenuRepo) UpdateDish(ctx context.Context, id, categoryID uint64, title string, description *string, price string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE dishes SET category_id=?, title=?, description=?, price=? WHERE id=?",
		categoryID, title, description, price, id)
	return err
}

// DeleteDish removes a dish.
func (r *MenuRepo) DeleteDish(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM dishes WHERE id=?", id)
	return err
}
