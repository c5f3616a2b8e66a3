package service

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/ndewijer/Money-Manager-Backend/internal/database"
	"github.com/ndewijer/Money-Manager-Backend/internal/model"
	"github.com/ndewijer/Money-Manager-Backend/internal/version"
)

// SystemService handles system-related operations
type SystemService struct {
	db *sql.DB
}

// NewSystemService creates a new SystemService
func NewSystemService(db *sql.DB) *SystemService {
	return &SystemService{
		db: db,
	}
}

// CheckHealth checks the health of the system
func (s *SystemService) CheckHealth() error {
	return database.HealthCheck(s.db)
}

// CheckVersion reports the application and schema versions.
func (s *SystemService) CheckVersion(ctx context.Context) (model.VersionInfo, error) {
	status, err := database.Status(ctx, s.db)
	if err != nil {
		return model.VersionInfo{}, err
	}

	info := model.VersionInfo{
		AppVersion:      version.Version,
		DbVersion:       strconv.FormatInt(status.Current, 10),
		LatestDbVersion: strconv.FormatInt(status.Latest, 10),
		MigrationNeeded: status.Pending,
		Features: map[string]bool{
			"recurring_transactions": true,
			"price_snapshots":        true,
			"market_lookup":          true,
		},
	}
	if status.Pending {
		msg := fmt.Sprintf("Database is at version %d, latest is %d. Run migrations.", status.Current, status.Latest)
		info.MigrationMessage = &msg
	}
	return info, nil
}
