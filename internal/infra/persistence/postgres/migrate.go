package postgres

import (
	"fmt"

	"campus/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// MigratePartitions creates the partition tables and their unique email
// indexes when missing. Existing legacy tables are left as they are apart
// from added columns.
func MigratePartitions(db *gorm.DB) error {
	for _, table := range model.PartitionTables {
		if err := db.Table(table).AutoMigrate(&model.IdentityModel{}); err != nil {
			return errors.Wrapf(err, "failed to migrate table %s", table)
		}

		stmt := fmt.Sprintf("CREATE UNIQUE INDEX IF NOT EXISTS idx_%s_email ON %s (email)", table, table)
		if err := db.Exec(stmt).Error; err != nil {
			return errors.Wrapf(err, "failed to create email index on %s", table)
		}
	}

	return nil
}
