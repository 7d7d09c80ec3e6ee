package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hrsuite/hr-backend-go/internal/domain/position"
	"github.com/hrsuite/hr-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type positionRepositoryImpl struct {
	db *database.DB
}

func NewPositionRepository(db *database.DB) position.PositionRepository {
	return &positionRepositoryImpl{db: db}
}

const positionColumns = `id, title, department, hierarchy_level, description, is_active, created_at, updated_at`

func scanPosition(row pgx.Row) (position.Position, error) {
	var found position.Position
	err := row.Scan(
		&found.ID,
		&found.Title,
		&found.Department,
		&found.HierarchyLevel,
		&found.Description,
		&found.IsActive,
		&found.CreatedAt,
		&found.UpdatedAt,
	)
	return found, err
}

// GetByID implements position.PositionRepository.
func (r *positionRepositoryImpl) GetByID(ctx context.Context, id string) (position.Position, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + positionColumns + ` FROM positions WHERE id = $1`

	found, err := scanPosition(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return position.Position{}, position.ErrPositionNotFound
		}
		return position.Position{}, fmt.Errorf("failed to get position by id: %w", err)
	}

	return found, nil
}

// Create implements position.PositionRepository.
func (r *positionRepositoryImpl) Create(ctx context.Context, newPosition position.Position) (position.Position, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO positions (title, department, hierarchy_level, description, is_active)
		VALUES ($1, $2, $3, $4, TRUE)
		RETURNING ` + positionColumns

	created, err := scanPosition(q.QueryRow(ctx, query,
		newPosition.Title,
		newPosition.Department,
		newPosition.HierarchyLevel,
		newPosition.Description,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return position.Position{}, position.ErrPositionTitleExists
		}
		return position.Position{}, fmt.Errorf("failed to create position: %w", err)
	}

	return created, nil
}

// Update implements position.PositionRepository.
func (r *positionRepositoryImpl) Update(ctx context.Context, req position.UpdatePositionRequest) (position.Position, error) {
	q := GetQuerier(ctx, r.db)

	setClauses := []string{"updated_at = NOW()"}
	args := []interface{}{}
	argIdx := 1

	if req.Title != nil {
		setClauses = append(setClauses, fmt.Sprintf("title = $%d", argIdx))
		args = append(args, *req.Title)
		argIdx++
	}
	if req.Department != nil {
		setClauses = append(setClauses, fmt.Sprintf("department = $%d", argIdx))
		args = append(args, *req.Department)
		argIdx++
	}
	if req.HierarchyLevel != nil {
		setClauses = append(setClauses, fmt.Sprintf("hierarchy_level = $%d", argIdx))
		args = append(args, *req.HierarchyLevel)
		argIdx++
	}
	if req.Description != nil {
		setClauses = append(setClauses, fmt.Sprintf("description = $%d", argIdx))
		args = append(args, *req.Description)
		argIdx++
	}

	query := fmt.Sprintf(
		`UPDATE positions SET %s WHERE id = $%d RETURNING `+positionColumns,
		strings.Join(setClauses, ", "), argIdx,
	)
	args = append(args, req.ID)

	updated, err := scanPosition(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return position.Position{}, position.ErrPositionNotFound
		}
		return position.Position{}, fmt.Errorf("failed to update position: %w", err)
	}

	return updated, nil
}

// List implements position.PositionRepository.
func (r *positionRepositoryImpl) List(ctx context.Context, filter position.PositionFilter) ([]position.Position, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.Department != nil {
		conditions = append(conditions, fmt.Sprintf("department = $%d", argIdx))
		args = append(args, *filter.Department)
		argIdx++
	}
	if filter.IsActive != nil {
		conditions = append(conditions, fmt.Sprintf("is_active = $%d", argIdx))
		args = append(args, *filter.IsActive)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := `SELECT COUNT(*) FROM positions WHERE ` + whereClause
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count positions: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM positions
		WHERE %s
		ORDER BY department ASC, hierarchy_level ASC, title ASC
		LIMIT $%d OFFSET $%d
	`, positionColumns, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list positions: %w", err)
	}
	defer rows.Close()

	var positions []position.Position
	for rows.Next() {
		found, err := scanPosition(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan position: %w", err)
		}
		positions = append(positions, found)
	}

	return positions, total, rows.Err()
}

// SetActive implements position.PositionRepository.
func (r *positionRepositoryImpl) SetActive(ctx context.Context, id string, active bool) (position.Position, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE positions SET is_active = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + positionColumns

	updated, err := scanPosition(q.QueryRow(ctx, query, active, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return position.Position{}, position.ErrPositionNotFound
		}
		return position.Position{}, fmt.Errorf("failed to set position active state: %w", err)
	}

	return updated, nil
}

// Delete implements position.PositionRepository.
func (r *positionRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM positions WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return position.ErrPositionInUse
		}
		return fmt.Errorf("failed to delete position: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return position.ErrPositionNotFound
	}
	return nil
}

// CountEmployees implements position.PositionRepository.
func (r *positionRepositoryImpl) CountEmployees(ctx context.Context, id string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE position_id = $1`, id).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count employees for position: %w", err)
	}
	return count, nil
}
