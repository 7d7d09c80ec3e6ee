package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hrsuite/hr-backend-go/internal/domain/announcement"
	"github.com/hrsuite/hr-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type announcementRepositoryImpl struct {
	db *database.DB
}

func NewAnnouncementRepository(db *database.DB) announcement.AnnouncementRepository {
	return &announcementRepositoryImpl{db: db}
}

const announcementColumns = `an.id, an.title, an.content, an.author_id, an.target_scope,
	   an.target_team_manager_id, an.priority, an.is_active,
	   an.published_at, an.expires_at, an.created_at, an.updated_at,
	   u.email`

const announcementJoins = `
	FROM announcements an
	JOIN users u ON u.id = an.author_id`

func scanAnnouncement(row pgx.Row) (announcement.Announcement, error) {
	var found announcement.Announcement
	err := row.Scan(
		&found.ID,
		&found.Title,
		&found.Content,
		&found.AuthorID,
		&found.TargetScope,
		&found.TargetTeamManagerID,
		&found.Priority,
		&found.IsActive,
		&found.PublishedAt,
		&found.ExpiresAt,
		&found.CreatedAt,
		&found.UpdatedAt,
		&found.AuthorEmail,
	)
	return found, err
}

// Create implements announcement.AnnouncementRepository.
func (r *announcementRepositoryImpl) Create(ctx context.Context, newAnnouncement announcement.Announcement) (announcement.Announcement, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO announcements (title, content, author_id, target_scope, target_team_manager_id, priority, is_active, published_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE, $7, $8)
		RETURNING id, created_at, updated_at
	`

	created := newAnnouncement
	created.IsActive = true
	err := q.QueryRow(ctx, query,
		newAnnouncement.Title,
		newAnnouncement.Content,
		newAnnouncement.AuthorID,
		newAnnouncement.TargetScope,
		newAnnouncement.TargetTeamManagerID,
		newAnnouncement.Priority,
		newAnnouncement.PublishedAt,
		newAnnouncement.ExpiresAt,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return announcement.Announcement{}, fmt.Errorf("failed to create announcement: %w", err)
	}

	return created, nil
}

// GetByID implements announcement.AnnouncementRepository.
func (r *announcementRepositoryImpl) GetByID(ctx context.Context, id string) (announcement.Announcement, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + announcementColumns + announcementJoins + ` WHERE an.id = $1`

	found, err := scanAnnouncement(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return announcement.Announcement{}, announcement.ErrAnnouncementNotFound
		}
		return announcement.Announcement{}, fmt.Errorf("failed to get announcement by id: %w", err)
	}

	return found, nil
}

// Update implements announcement.AnnouncementRepository.
func (r *announcementRepositoryImpl) Update(ctx context.Context, req announcement.UpdateAnnouncementRequest) (announcement.Announcement, error) {
	q := GetQuerier(ctx, r.db)

	setClauses := []string{"updated_at = NOW()"}
	args := []interface{}{}
	argIdx := 1

	if req.Title != nil {
		setClauses = append(setClauses, fmt.Sprintf("title = $%d", argIdx))
		args = append(args, *req.Title)
		argIdx++
	}
	if req.Content != nil {
		setClauses = append(setClauses, fmt.Sprintf("content = $%d", argIdx))
		args = append(args, *req.Content)
		argIdx++
	}
	if req.Priority != nil {
		setClauses = append(setClauses, fmt.Sprintf("priority = $%d", argIdx))
		args = append(args, *req.Priority)
		argIdx++
	}
	if req.IsActive != nil {
		setClauses = append(setClauses, fmt.Sprintf("is_active = $%d", argIdx))
		args = append(args, *req.IsActive)
		argIdx++
	}
	if req.ExpiresAt != nil {
		setClauses = append(setClauses, fmt.Sprintf("expires_at = $%d", argIdx))
		args = append(args, *req.ExpiresAt)
		argIdx++
	}

	query := fmt.Sprintf(
		`UPDATE announcements SET %s WHERE id = $%d RETURNING id`,
		strings.Join(setClauses, ", "), argIdx,
	)
	args = append(args, req.ID)

	var id string
	if err := q.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return announcement.Announcement{}, announcement.ErrAnnouncementNotFound
		}
		return announcement.Announcement{}, fmt.Errorf("failed to update announcement: %w", err)
	}

	return r.GetByID(ctx, id)
}

// List implements announcement.AnnouncementRepository.
func (r *announcementRepositoryImpl) List(ctx context.Context, filter announcement.AnnouncementFilter) ([]announcement.Announcement, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.ActiveOnly {
		conditions = append(conditions, "an.is_active = TRUE")
		conditions = append(conditions, "(an.expires_at IS NULL OR an.expires_at > NOW())")
	}
	if filter.Priority != nil && *filter.Priority != "" {
		conditions = append(conditions, fmt.Sprintf("an.priority = $%d", argIdx))
		args = append(args, *filter.Priority)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := `SELECT COUNT(*)` + announcementJoins + ` WHERE ` + whereClause
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count announcements: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s %s
		WHERE %s
		ORDER BY an.published_at DESC
		LIMIT $%d OFFSET $%d
	`, announcementColumns, announcementJoins, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list announcements: %w", err)
	}
	defer rows.Close()

	var announcements []announcement.Announcement
	for rows.Next() {
		found, err := scanAnnouncement(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan announcement: %w", err)
		}
		announcements = append(announcements, found)
	}

	return announcements, total, rows.Err()
}

// Delete implements announcement.AnnouncementRepository.
func (r *announcementRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM announcements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete announcement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return announcement.ErrAnnouncementNotFound
	}
	return nil
}
