package catalog

import "time"

// Category is a product grouping. Its integer ID is supplied by supplier
// feeds and is stable across re-ingestions; the name may be re-stated by any
// feed that references it. Categories are associated with shops many-to-many
// and associations only accumulate, they are never replaced.
type Category struct {
	ID        int
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Rename updates the category display name.
func (c *Category) Rename(name string) {
	c.Name = name
	c.UpdatedAt = time.Now()
}
