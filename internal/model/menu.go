package model

// Category groups dishes on the menu page, mirroring the `categories`
// table.
type Category struct {
    ID    uint64 `json:"id"`    // categories.id
    Title string `json:"title"` // categories.title
}

// Dish is a single menu item in the `dishes` table.  Price is kept as a
// decimal string to avoid float rounding in JSON.
type Dish struct {
    ID            uint64  `json:"id"`                       // dishes.id
    CategoryID    uint64  `json:"category_id"`              // dishes.category_id
    CategoryTitle string  `json:"category_title,omitempty"` // joined from categories.title
    Title         string  `json:"title"`                    // dishes.title
    Description   *string `json:"description,omitempty"`    // dishes.description (nullable)
    Price         string  `json:"price"`                    // dishes.price
}
