package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/swapnest/swapnest/internal/model"
)

// PostgresItemStore implements ItemStore on PostgreSQL.
type PostgresItemStore struct {
	pool *pgxpool.Pool
}

// CreateItem inserts the item and returns it with its assigned id.
func (s *PostgresItemStore) CreateItem(ctx context.Context, item *model.Item) (*model.Item, error) {
	query := `
		INSERT INTO items (name, description, available, owner_id, request_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	stored := item.Clone()
	err := s.pool.QueryRow(ctx, query,
		item.Name,
		item.Description,
		item.Available,
		item.OwnerID,
		item.RequestID,
	).Scan(&stored.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	return stored, nil
}

// UpdateItem replaces the stored record wholesale.
func (s *PostgresItemStore) UpdateItem(ctx context.Context, item *model.Item) (*model.Item, error) {
	query := `
		UPDATE items
		SET name = $2, description = $3, available = $4, owner_id = $5, request_id = $6
		WHERE id = $1
		RETURNING id
	`

	var id int64
	err := s.pool.QueryRow(ctx, query,
		item.ID,
		item.Name,
		item.Description,
		item.Available,
		item.OwnerID,
		item.RequestID,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	return item.Clone(), nil
}

// DeleteItem removes the record if present.
func (s *PostgresItemStore) DeleteItem(ctx context.Context, id int64) (bool, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete item: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// FindItem returns the record or ErrItemNotFound.
func (s *PostgresItemStore) FindItem(ctx context.Context, id int64) (*model.Item, error) {
	query := `
		SELECT id, name, description, available, owner_id, request_id
		FROM items
		WHERE id = $1
	`

	var item model.Item
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&item.ID,
		&item.Name,
		&item.Description,
		&item.Available,
		&item.OwnerID,
		&item.RequestID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get item by id: %w", err)
	}

	return &item, nil
}

// GetItems returns all items owned by ownerID.
func (s *PostgresItemStore) GetItems(ctx context.Context, ownerID int64) ([]*model.Item, error) {
	query := `
		SELECT id, name, description, available, owner_id, request_id
		FROM items
		WHERE owner_id = $1
	`

	rows, err := s.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

// SearchItems returns all available items matching text. The query must
// already be lower-cased.
func (s *PostgresItemStore) SearchItems(ctx context.Context, text string) ([]*model.Item, error) {
	query := `
		SELECT id, name, description, available, owner_id, request_id
		FROM items
		WHERE available
		  AND (strpos(lower(name), $1) > 0 OR strpos(lower(description), $1) > 0)
	`

	rows, err := s.pool.Query(ctx, query, text)
	if err != nil {
		return nil, fmt.Errorf("failed to search items: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

func scanItems(rows pgx.Rows) ([]*model.Item, error) {
	items := make([]*model.Item, 0)
	for rows.Next() {
		var item model.Item
		err := rows.Scan(
			&item.ID,
			&item.Name,
			&item.Description,
			&item.Available,
			&item.OwnerID,
			&item.RequestID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}
	return items, nil
}
