// internal/storage/storage.go
package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/mvineethr/virtual-closet-docker/internal/models"
)

type Storage struct {
	pool *pgxpool.Pool
}

func NewStorage(dsn string) (*Storage, error) {
	const op = "storage.NewStorage"

	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", op, err)
	}

	db := stdlib.OpenDBFromPool(pool)
	if err := runMigrations(db); err != nil {
		db.Close()
		pool.Close()
		return nil, fmt.Errorf("%s: %v", op, err)
	}
	if err := db.Close(); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: %v", op, err)
	}

	return &Storage{pool: pool}, nil
}

func (s *Storage) Close() {
	s.pool.Close()
}

// CreateItem inserts a new clothing item and fills in its assigned id.
// Empty field values are accepted; validation belongs to the API layer.
func (s *Storage) CreateItem(ctx context.Context, item *models.ClothingItem) error {
	const op = "storage.CreateItem"

	err := s.pool.QueryRow(ctx,
		`INSERT INTO clothing (name, color, garment_type, image_url, thumbnail_url)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		item.Name, item.Color, item.GarmentType, item.ImageURL, item.ThumbnailURL,
	).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("%s: %v", op, err)
	}
	return nil
}

// ListItems returns clothing items in insertion order, narrowed by any
// non-empty exact-match predicates in the filter.
func (s *Storage) ListItems(ctx context.Context, filter models.ItemFilter) ([]models.ClothingItem, error) {
	const op = "storage.ListItems"

	query := `SELECT id, name, color, garment_type, image_url, thumbnail_url FROM clothing`
	var args []any
	if filter.GarmentType != "" {
		args = append(args, filter.GarmentType)
		query += fmt.Sprintf(" WHERE garment_type = $%d", len(args))
	}
	if filter.Color != "" {
		args = append(args, filter.Color)
		if len(args) == 1 {
			query += " WHERE"
		} else {
			query += " AND"
		}
		query += fmt.Sprintf(" color = $%d", len(args))
	}
	query += ` ORDER BY id`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", op, err)
	}
	defer rows.Close()

	var items []models.ClothingItem
	for rows.Next() {
		var item models.ClothingItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Color, &item.GarmentType, &item.ImageURL, &item.ThumbnailURL); err != nil {
			return nil, fmt.Errorf("%s: %v", op, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %v", op, err)
	}
	return items, nil
}

// DeleteAllItems removes every clothing item and returns how many were
// removed. An empty closet is not an error.
func (s *Storage) DeleteAllItems(ctx context.Context) (int64, error) {
	const op = "storage.DeleteAllItems"

	tag, err := s.pool.Exec(ctx, `DELETE FROM clothing`)
	if err != nil {
		return 0, fmt.Errorf("%s: %v", op, err)
	}
	return tag.RowsAffected(), nil
}

// DeletePlaceholderItems removes items whose name, color and garment type all
// case-insensitively equal "string", the unedited API-doc default. Running it
// again right away deletes nothing and returns 0.
func (s *Storage) DeletePlaceholderItems(ctx context.Context) (int64, error) {
	const op = "storage.DeletePlaceholderItems"

	tag, err := s.pool.Exec(ctx,
		`DELETE FROM clothing
		 WHERE lower(name) = 'string' AND lower(color) = 'string' AND lower(garment_type) = 'string'`)
	if err != nil {
		return 0, fmt.Errorf("%s: %v", op, err)
	}
	return tag.RowsAffected(), nil
}

// CreateOutfit stores a named ordered selection of item ids and returns the
// outfit with its assigned id. Ids are not checked against the clothing
// table; readers tolerate dangling references.
func (s *Storage) CreateOutfit(ctx context.Context, name string, itemIDs []int64) (*models.Outfit, error) {
	const op = "storage.CreateOutfit"

	outfit := models.Outfit{Name: name, ItemIDs: itemIDs}
	err := s.pool.QueryRow(ctx,
		`INSERT INTO outfits (name, items) VALUES ($1, $2) RETURNING id`,
		name, encodeItemIDs(itemIDs),
	).Scan(&outfit.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", op, err)
	}
	return &outfit, nil
}

// ListOutfits returns all outfits with their item id lists decoded.
func (s *Storage) ListOutfits(ctx context.Context) ([]models.Outfit, error) {
	const op = "storage.ListOutfits"

	rows, err := s.pool.Query(ctx, `SELECT id, name, items FROM outfits ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", op, err)
	}
	defer rows.Close()

	var outfits []models.Outfit
	for rows.Next() {
		var outfit models.Outfit
		var encoded string
		if err := rows.Scan(&outfit.ID, &outfit.Name, &encoded); err != nil {
			return nil, fmt.Errorf("%s: %v", op, err)
		}
		outfit.ItemIDs = decodeItemIDs(encoded)
		outfits = append(outfits, outfit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %v", op, err)
	}
	return outfits, nil
}

// ResolveOutfitItems returns the items that still exist for the given id
// list, in the list's order. Ids with no matching row are dropped.
func (s *Storage) ResolveOutfitItems(ctx context.Context, itemIDs []int64) ([]models.ClothingItem, error) {
	const op = "storage.ResolveOutfitItems"

	if len(itemIDs) == 0 {
		return nil, nil
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, name, color, garment_type, image_url, thumbnail_url
		 FROM clothing WHERE id = ANY($1)`, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", op, err)
	}
	defer rows.Close()

	found := make(map[int64]models.ClothingItem)
	for rows.Next() {
		var item models.ClothingItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Color, &item.GarmentType, &item.ImageURL, &item.ThumbnailURL); err != nil {
			return nil, fmt.Errorf("%s: %v", op, err)
		}
		found[item.ID] = item
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %v", op, err)
	}

	var items []models.ClothingItem
	for _, id := range itemIDs {
		if item, ok := found[id]; ok {
			items = append(items, item)
		}
	}
	return items, nil
}
