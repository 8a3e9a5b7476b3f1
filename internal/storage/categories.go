package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/accrue-app/accrue/internal/common"
	"github.com/accrue-app/accrue/internal/model"
)

// CreateCategory inserts a new category and returns it with its assigned id.
func (s *SQLiteStorage) CreateCategory(ctx context.Context, fields model.CategoryFields) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO categories (name, direction, icon) VALUES (?, ?, ?)`,
		fields.Name, string(fields.Direction), nullableString(fields.Icon))
	if err != nil {
		return nil, common.Storagef(err, "failed to insert category")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, common.Storagef(err, "failed to get category id")
	}

	return s.GetCategory(ctx, id)
}

// GetCategory retrieves a single category by id.
func (s *SQLiteStorage) GetCategory(ctx context.Context, id int64) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, direction, icon, is_archived, created_at
		FROM categories WHERE id = ?`, id)

	category, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.NotFoundf("category %d", id)
	}
	if err != nil {
		return nil, err
	}
	return category, nil
}

// ListCategories returns categories ordered by name. Archived categories
// are omitted unless includeArchived is set.
func (s *SQLiteStorage) ListCategories(ctx context.Context, includeArchived bool) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT id, name, direction, icon, is_archived, created_at FROM categories`
	if !includeArchived {
		query += ` WHERE is_archived = 0`
	}
	query += ` ORDER BY name COLLATE NOCASE`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, common.Storagef(err, "failed to query categories")
	}
	defer func() { _ = rows.Close() }()

	var categories []model.Category
	for rows.Next() {
		category, scanErr := scanCategory(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		categories = append(categories, *category)
	}
	if err := rows.Err(); err != nil {
		return nil, common.Storagef(err, "failed to iterate categories")
	}
	return categories, nil
}

// UpdateCategory replaces all caller-supplied fields of a category.
func (s *SQLiteStorage) UpdateCategory(ctx context.Context, id int64, fields model.CategoryFields) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE categories SET name = ?, direction = ?, icon = ? WHERE id = ?`,
		fields.Name, string(fields.Direction), nullableString(fields.Icon), id)
	if err != nil {
		return nil, common.Storagef(err, "failed to update category")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, common.Storagef(err, "failed to check update result")
	}
	if affected == 0 {
		return nil, common.NotFoundf("category %d", id)
	}

	return s.GetCategory(ctx, id)
}

// SetCategoryArchived archives or unarchives a category.
func (s *SQLiteStorage) SetCategoryArchived(ctx context.Context, id int64, archived bool) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE categories SET is_archived = ? WHERE id = ?`, archived, id)
	if err != nil {
		return common.Storagef(err, "failed to update category state")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return common.Storagef(err, "failed to check update result")
	}
	if affected == 0 {
		return common.NotFoundf("category %d", id)
	}
	return nil
}

func scanCategory(row scanner) (*model.Category, error) {
	var (
		category  model.Category
		direction string
		icon      sql.NullString
	)

	err := row.Scan(
		&category.ID,
		&category.Name,
		&direction,
		&icon,
		&category.IsArchived,
		&category.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, common.Storagef(err, "failed to scan category")
	}

	category.Direction = model.CategoryDirection(direction)
	category.Icon = icon.String
	return &category, nil
}
