// file: internals/features/academics/groups/model/group_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GroupModel hanya referensi (CRUD grup dikelola modul lain).
// Scheduling cuma butuh eksistensi + status aktif + subject default.
type GroupModel struct {
	GroupID uuid.UUID `gorm:"column:group_id;type:uuid;default:gen_random_uuid();primaryKey" json:"group_id"`

	GroupName      string    `gorm:"column:group_name;type:varchar(120);not null" json:"group_name"`
	GroupSubjectID uuid.UUID `gorm:"column:group_subject_id;type:uuid;not null" json:"group_subject_id"`

	// grup cancelled → is_active=false → semua mutasi jadwal/sesi diblok
	GroupIsActive bool `gorm:"column:group_is_active;not null;default:true" json:"group_is_active"`

	GroupCreatedAt time.Time      `gorm:"column:group_created_at;type:timestamptz;not null;autoCreateTime" json:"group_created_at"`
	GroupUpdatedAt time.Time      `gorm:"column:group_updated_at;type:timestamptz;not null;autoUpdateTime" json:"group_updated_at"`
	GroupDeletedAt gorm.DeletedAt `gorm:"column:group_deleted_at;index" json:"group_deleted_at,omitempty"`
}

func (GroupModel) TableName() string { return "groups" }
