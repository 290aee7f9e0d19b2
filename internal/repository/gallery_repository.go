package repository

import (
	"context"
	"database/sql"

	"github.com/quai-antique/restaurant-reservation/internal/model"
)

// GalleryRepo provides CRUD for the gallery image rows.
type GalleryRepo struct{ DB *sql.DB }

func NewGalleryRepo(db *sql.DB) *GalleryRepo { return &GalleryRepo{DB: db} }

// List returns all images, newest first.
func (r *GalleryRepo) List(ctx context.Context) ([]model.GalleryImage, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, title, image_url, created_at FROM gallery_images ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.GalleryImage, 0)
	for rows.Next() {
		var g model.GalleryImage
		if err := rows.Scan(&g.ID, &g.Title, &g.ImageURL, &g.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// Create inserts an image row and returns its ID.
func (r *GalleryRepo) Create(ctx context.Context, title, imageURL string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO gallery_images (title, image_url) VALUES (?,?)", title, imageURL)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// Update overwrites an image row.
func (r *GalleryRepo) Update(ctx context.Context, id uint64, title, imageURL string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE gallery_images SET title=?, image_url=? WHERE id=?", title, imageURL, id)
	return err
}

// Delete removes an image row.
func (r *GalleryRepo) Delete(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM gallery_images WHERE id=?", id)
	return err
}
