package model

import "time"

// GalleryImage is a row in `gallery_images`.  Only the URL is stored; the
// image files themselves live wherever the operator hosts them.
type GalleryImage struct {
    ID        uint64    `json:"id"`         // gallery_images.id
    Title     string    `json:"title"`      // gallery_images.title
    ImageURL  string    `json:"image_url"`  // gallery_images.image_url
    CreatedAt time.Time `json:"created_at"` // gallery_images.created_at
}
