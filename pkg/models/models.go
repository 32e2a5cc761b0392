package models

// Entry represents one gallery record in gallery.json. Field order matches
// the JSON key order the site's gallery page has always been served.
type Entry struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Thumbnail   string   `json:"thumbnail"`
	Image       string   `json:"image"`
	Location    string   `json:"location"`
	Date        string   `json:"date"`
	Camera      string   `json:"camera"`
	Tags        []string `json:"tags"`
}

// Catalog is the ordered list of gallery entries persisted as a JSON array
type Catalog []Entry

// Category groups entries sharing a category value for the preview page
type Category struct {
	Name    string  `json:"name"`
	Entries []Entry `json:"entries"`
}

// Index represents the preview page data
type Index struct {
	Categories []Category
}

// DefaultEntry returns a new entry with placeholder metadata for an image
// named <stem>.jpg. The placeholders are what the gallery page renders until
// the owner edits the record by hand.
func DefaultEntry(stem string, id int) Entry {
	return Entry{
		ID:          id,
		Title:       stem,
		Description: "NaN",
		Category:    "None",
		Thumbnail:   "./images/" + stem + "-thumb.jpg",
		Image:       "./images/" + stem + ".jpg",
		Location:    "None",
		Date:        "2000-01-01",
		Camera:      "None",
		Tags:        []string{"None"},
	}
}

// ByImage returns the index of the entry with the given image path, or -1
func (c Catalog) ByImage(image string) int {
	for i := range c {
		if c[i].Image == image {
			return i
		}
	}
	return -1
}

// ByID returns the index of the entry with the given id, or -1
func (c Catalog) ByID(id int) int {
	for i := range c {
		if c[i].ID == id {
			return i
		}
	}
	return -1
}

// MaxID returns the highest id present in the catalog, 0 when empty
func (c Catalog) MaxID() int {
	max := 0
	for i := range c {
		if c[i].ID > max {
			max = c[i].ID
		}
	}
	return max
}

// Clone returns a deep copy of the catalog so callers can mutate the result
// without touching the original
func (c Catalog) Clone() Catalog {
	out := make(Catalog, len(c))
	copy(out, c)
	for i := range out {
		if out[i].Tags != nil {
			tags := make([]string, len(out[i].Tags))
			copy(tags, out[i].Tags)
			out[i].Tags = tags
		}
	}
	return out
}

// Equal reports whether two catalogs hold the same entries in the same order
func (c Catalog) Equal(other Catalog) bool {
	if len(c) != len(other) {
		return false
	}
	for i := range c {
		if !c[i].Equal(other[i]) {
			return false
		}
	}
	return true
}

// Equal reports whether two entries hold the same values
func (e Entry) Equal(other Entry) bool {
	if e.ID != other.ID ||
		e.Title != other.Title ||
		e.Description != other.Description ||
		e.Category != other.Category ||
		e.Thumbnail != other.Thumbnail ||
		e.Image != other.Image ||
		e.Location != other.Location ||
		e.Date != other.Date ||
		e.Camera != other.Camera {
		return false
	}
	if len(e.Tags) != len(other.Tags) {
		return false
	}
	for i := range e.Tags {
		if e.Tags[i] != other.Tags[i] {
			return false
		}
	}
	return true
}
