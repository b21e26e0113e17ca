package model

import (
	"campus/internal/domain/entity"
)

// Legacy partition tables. Column names predate this service and are kept as is.
const (
	StudentTable = "alumnos"
	TeacherTable = "profesores"
)

// IdentityModel mirrors a row of either partition table; both share one layout.
// The table is chosen per query with db.Table(PartitionTable(role)). The unique
// email index is created per table by postgres.MigratePartitions, since a
// struct tag would give both tables the same index name.
type IdentityModel struct {
	ID           int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Name         string `gorm:"column:nombre;type:varchar(255);not null"`
	Surname      string `gorm:"column:apellido;type:varchar(255);not null"`
	Email        string `gorm:"column:email;type:varchar(255);not null"`
	PasswordHash string `gorm:"column:contraseña;type:varchar(255);not null"`
	DocumentURL  string `gorm:"column:foto;type:text"`
}

// PartitionTables lists every partition table.
var PartitionTables = []string{StudentTable, TeacherTable}

// PartitionTable returns the table backing role, or "" for an unknown role.
func PartitionTable(role entity.Role) string {
	switch role {
	case entity.RoleStudent:
		return StudentTable
	case entity.RoleTeacher:
		return TeacherTable
	default:
		return ""
	}
}

// FromIdentityDomain converts an Identity into its row representation.
func FromIdentityDomain(identity *entity.Identity) *IdentityModel {
	return &IdentityModel{
		ID:           identity.ID,
		Name:         identity.Name,
		Surname:      identity.Surname,
		Email:        identity.Email,
		PasswordHash: identity.PasswordHash,
		DocumentURL:  identity.DocumentURL,
	}
}

// ToDomain converts a row back into an Identity of the given role.
func (m *IdentityModel) ToDomain(role entity.Role) *entity.Identity {
	return &entity.Identity{
		ID:           m.ID,
		Role:         role,
		Name:         m.Name,
		Surname:      m.Surname,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		DocumentURL:  m.DocumentURL,
	}
}
