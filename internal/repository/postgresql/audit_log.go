package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/hrsuite/hr-backend-go/internal/domain/audit"
	"github.com/hrsuite/hr-backend-go/internal/pkg/database"
)

type auditLogRepository struct {
	db *database.DB
}

// NewAuditLogRepository creates a new audit log repository
func NewAuditLogRepository(db *database.DB) audit.Repository {
	return &auditLogRepository{db: db}
}

func marshalValues(values map[string]interface{}) ([]byte, error) {
	if values == nil {
		return nil, nil
	}
	return json.Marshal(values)
}

// Create inserts a single audit log entry
func (r *auditLogRepository) Create(ctx context.Context, log *audit.AuditLog) error {
	q := GetQuerier(ctx, r.db)

	if log.ID == "" {
		log.ID = uuid.New().String()
	}

	oldJSON, err := marshalValues(log.OldValues)
	if err != nil {
		return fmt.Errorf("failed to marshal old values: %w", err)
	}
	newJSON, err := marshalValues(log.NewValues)
	if err != nil {
		return fmt.Errorf("failed to marshal new values: %w", err)
	}

	query := `
		INSERT INTO audit_logs (id, user_id, action, entity_type, entity_id, old_values, new_values, ip_address, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err = q.Exec(ctx, query,
		log.ID,
		log.UserID,
		log.Action,
		log.EntityType,
		log.EntityID,
		oldJSON,
		newJSON,
		log.IPAddress,
		log.UserAgent,
		log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}

	return nil
}

// CreateBatch inserts multiple audit log entries in a single statement
func (r *auditLogRepository) CreateBatch(ctx context.Context, logs []*audit.AuditLog) error {
	if len(logs) == 0 {
		return nil
	}

	q := GetQuerier(ctx, r.db)

	valueStrings := make([]string, 0, len(logs))
	valueArgs := make([]interface{}, 0, len(logs)*10)

	for i, log := range logs {
		if log.ID == "" {
			log.ID = uuid.New().String()
		}

		oldJSON, err := marshalValues(log.OldValues)
		if err != nil {
			return fmt.Errorf("failed to marshal old values: %w", err)
		}
		newJSON, err := marshalValues(log.NewValues)
		if err != nil {
			return fmt.Errorf("failed to marshal new values: %w", err)
		}

		base := i * 10
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9, base+10,
		))
		valueArgs = append(valueArgs,
			log.ID,
			log.UserID,
			log.Action,
			log.EntityType,
			log.EntityID,
			oldJSON,
			newJSON,
			log.IPAddress,
			log.UserAgent,
			log.CreatedAt,
		)
	}

	query := fmt.Sprintf(`
		INSERT INTO audit_logs (id, user_id, action, entity_type, entity_id, old_values, new_values, ip_address, user_agent, created_at)
		VALUES %s
	`, strings.Join(valueStrings, ", "))

	if _, err := q.Exec(ctx, query, valueArgs...); err != nil {
		return fmt.Errorf("failed to batch create audit logs: %w", err)
	}

	return nil
}

// List retrieves audit logs with filters, newest first
func (r *auditLogRepository) List(ctx context.Context, filter audit.Filter) ([]audit.AuditLog, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.UserID != nil {
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", argIdx))
		args = append(args, *filter.UserID)
		argIdx++
	}
	if filter.EntityType != nil {
		conditions = append(conditions, fmt.Sprintf("entity_type = $%d", argIdx))
		args = append(args, *filter.EntityType)
		argIdx++
	}
	if filter.EntityID != nil {
		conditions = append(conditions, fmt.Sprintf("entity_id = $%d", argIdx))
		args = append(args, *filter.EntityID)
		argIdx++
	}
	if filter.Action != nil {
		conditions = append(conditions, fmt.Sprintf("action = $%d", argIdx))
		args = append(args, *filter.Action)
		argIdx++
	}
	if filter.DateStart != nil && *filter.DateStart != "" {
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d::date", argIdx))
		args = append(args, *filter.DateStart)
		argIdx++
	}
	if filter.DateEnd != nil && *filter.DateEnd != "" {
		conditions = append(conditions, fmt.Sprintf("created_at < $%d::date + INTERVAL '1 day'", argIdx))
		args = append(args, *filter.DateEnd)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := `SELECT COUNT(*) FROM audit_logs WHERE ` + whereClause
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count audit logs: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, user_id, action, entity_type, entity_id, old_values, new_values, ip_address, user_agent, created_at
		FROM audit_logs
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list audit logs: %w", err)
	}
	defer rows.Close()

	var logs []audit.AuditLog
	for rows.Next() {
		var log audit.AuditLog
		var oldJSON, newJSON []byte

		err := rows.Scan(
			&log.ID,
			&log.UserID,
			&log.Action,
			&log.EntityType,
			&log.EntityID,
			&oldJSON,
			&newJSON,
			&log.IPAddress,
			&log.UserAgent,
			&log.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan audit log: %w", err)
		}

		if len(oldJSON) > 0 {
			if err := json.Unmarshal(oldJSON, &log.OldValues); err != nil {
				return nil, 0, fmt.Errorf("failed to unmarshal old values: %w", err)
			}
		}
		if len(newJSON) > 0 {
			if err := json.Unmarshal(newJSON, &log.NewValues); err != nil {
				return nil, 0, fmt.Errorf("failed to unmarshal new values: %w", err)
			}
		}

		logs = append(logs, log)
	}

	return logs, total, rows.Err()
}
