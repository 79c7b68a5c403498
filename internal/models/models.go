package models

// ClothingItem is a single piece of clothing in the closet. Items are
// immutable once created: there is no edit operation, only create and delete.
type ClothingItem struct {
	ID           int64  `json:"id" db:"id"`
	Name         string `json:"name" db:"name"`
	Color        string `json:"color" db:"color"`
	GarmentType  string `json:"garment_type" db:"garment_type"`
	ImageURL     string `json:"image_url" db:"image_url"`
	ThumbnailURL string `json:"thumbnail_url,omitempty" db:"thumbnail_url"`
}

// Outfit is a named, ordered selection of clothing item ids. Referenced items
// may have been deleted since the outfit was saved; readers drop those ids
// instead of failing.
type Outfit struct {
	ID      int64   `json:"id" db:"id"`
	Name    string  `json:"name" db:"name"`
	ItemIDs []int64 `json:"item_ids"`
}

// ExpandedOutfit is an outfit with its surviving item records resolved,
// in the order the outfit listed them.
type ExpandedOutfit struct {
	ID    int64          `json:"id"`
	Name  string         `json:"name"`
	Items []ClothingItem `json:"items"`
}

// ItemFilter narrows a closet listing. Empty fields match everything;
// non-empty fields are exact-match predicates.
type ItemFilter struct {
	GarmentType string
	Color       string
}

// Closet event actions published to Kafka when a broker is configured.
const (
	EventItemCreated   = "item_created"
	EventItemsCleared  = "items_cleared"
	EventOutfitCreated = "outfit_created"
)

// ClosetEvent is the JSON payload of a closet change notification.
type ClosetEvent struct {
	Action string `json:"action"`
	ItemID int64  `json:"item_id,omitempty"`
	Name   string `json:"name,omitempty"`
	Count  int64  `json:"count,omitempty"`
}
