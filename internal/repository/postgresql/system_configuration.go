package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
)

type systemConfigurationRepository struct {
	db *database.DB
}

// GetAll implements attendance.SettingRepository. Inactive and encrypted
// entries are skipped.
func (s *systemConfigurationRepository) GetAll(ctx context.Context) (map[string]string, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT key, value
		FROM system_configurations
		WHERE is_active = TRUE AND is_encrypted = FALSE
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load system configurations: %w", err)
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan system configuration: %w", err)
		}
		values[key] = value
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating system configurations: %w", err)
	}

	return values, nil
}

func NewSystemConfigurationRepository(db *database.DB) attendance.SettingRepository {
	return &systemConfigurationRepository{db: db}
}
