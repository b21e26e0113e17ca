// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"campus/internal/domain/entity"
	domainerrors "campus/internal/domain/errors"
	"campus/internal/domain/repository"
	"campus/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// identityRepository implements repository.IdentityRepository over the
// alumnos and profesores tables.
type identityRepository struct {
	db *gorm.DB
}

// NewIdentityRepository is the constructor for identityRepository.
func NewIdentityRepository(db *gorm.DB) repository.IdentityRepository {
	return &identityRepository{db: db}
}

func (repo *identityRepository) partition(ctx context.Context, role entity.Role) (*gorm.DB, error) {
	table := model.PartitionTable(role)
	if table == "" {
		return nil, errors.Wrapf(repository.ErrUnknownPartition, "role %q", role)
	}

	return repo.db.WithContext(ctx).Table(table), nil
}

// FindByEmail retrieves an identity by email from the role's partition.
func (repo *identityRepository) FindByEmail(ctx context.Context, role entity.Role, email string) (*entity.Identity, error) {
	tx, err := repo.partition(ctx, role)
	if err != nil {
		return nil, err
	}

	var identityM model.IdentityModel
	if err := tx.Where("email = ?", email).Take(&identityM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrIdentityNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find identity by email")
	}

	return identityM.ToDomain(role), nil
}

// Create inserts a new identity and copies the store-assigned id back onto it.
func (repo *identityRepository) Create(ctx context.Context, identity *entity.Identity) error {
	tx, err := repo.partition(ctx, identity.Role)
	if err != nil {
		return err
	}

	identityM := model.FromIdentityDomain(identity)
	identityM.ID = 0

	if err := tx.Create(identityM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "email already registered in partition")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "missing required identity column")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create identity")
	}

	identity.ID = identityM.ID

	return nil
}
