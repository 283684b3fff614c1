// file: internals/features/academics/schedules/service/registry_service.go
package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	groupModel "kelasku_backend/internals/features/academics/groups/model"
	model "kelasku_backend/internals/features/academics/schedules/model"
)

/* =========================
   Registry (jadwal mingguan)
========================= */

type Registry struct{ DB *gorm.DB }

func NewRegistry(db *gorm.DB) *Registry { return &Registry{DB: db} }

/* =========================
   Pure overlap check
========================= */

// overlaps: test interval half-open [aStart, aEnd) vs [bStart, bEnd).
func overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// findOverlap mencari sibling yang bentrok dengan kandidat (hari sama,
// range waktu overlap). excludeID untuk update (jangan bentrok dgn diri sendiri).
// Classroom sengaja diabaikan: grup tidak bisa mengajar di dua ruang sekaligus.
func findOverlap(
	siblings []model.ClassScheduleModel,
	excludeID uuid.UUID,
	day model.DayOfWeek,
	startMinutes, endMinutes int,
) *model.ClassScheduleModel {
	for i := range siblings {
		s := &siblings[i]
		if s.ClassScheduleID == excludeID {
			continue
		}
		if s.ClassScheduleDayOfWeek != day {
			continue
		}
		if overlaps(startMinutes, endMinutes, s.ClassScheduleStartMinutes, s.ClassScheduleEndMinutes) {
			return s
		}
	}
	return nil
}

/* =========================
   Group guard
========================= */

// EnsureGroupActive: grup harus ada & aktif sebelum mutasi jadwal/sesi.
func (r *Registry) EnsureGroupActive(ctx context.Context, groupID uuid.UUID) (groupModel.GroupModel, error) {
	var g groupModel.GroupModel
	if err := r.DB.WithContext(ctx).
		Where("group_id = ?", groupID).
		First(&g).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return g, ErrGroupNotFound
		}
		return g, err
	}
	if !g.GroupIsActive {
		return g, ErrGroupInactive
	}
	return g, nil
}

/* =========================
   CRUD
========================= */

// Create: validasi non-overlap terhadap sibling set grup, lalu insert.
// Read-check-write dibungkus transaksi supaya tidak ada partial write.
func (r *Registry) Create(ctx context.Context, m *model.ClassScheduleModel) error {
	if _, err := r.EnsureGroupActive(ctx, m.ClassScheduleGroupID); err != nil {
		return err
	}

	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		siblings, err := listByGroupTx(tx, m.ClassScheduleGroupID)
		if err != nil {
			return err
		}
		if hit := findOverlap(siblings, uuid.Nil, m.ClassScheduleDayOfWeek, m.ClassScheduleStartMinutes, m.ClassScheduleEndMinutes); hit != nil {
			return &ScheduleConflictError{
				ConflictingID: hit.ClassScheduleID,
				DayOfWeek:     hit.ClassScheduleDayOfWeek,
				StartMinutes:  hit.ClassScheduleStartMinutes,
				EndMinutes:    hit.ClassScheduleEndMinutes,
			}
		}
		return tx.Create(m).Error
	})
}

// Update: re-validasi invariant gabungan terhadap sibling set minus dirinya.
func (r *Registry) Update(ctx context.Context, m *model.ClassScheduleModel) error {
	if _, err := r.EnsureGroupActive(ctx, m.ClassScheduleGroupID); err != nil {
		return err
	}

	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		siblings, err := listByGroupTx(tx, m.ClassScheduleGroupID)
		if err != nil {
			return err
		}
		if hit := findOverlap(siblings, m.ClassScheduleID, m.ClassScheduleDayOfWeek, m.ClassScheduleStartMinutes, m.ClassScheduleEndMinutes); hit != nil {
			return &ScheduleConflictError{
				ConflictingID: hit.ClassScheduleID,
				DayOfWeek:     hit.ClassScheduleDayOfWeek,
				StartMinutes:  hit.ClassScheduleStartMinutes,
				EndMinutes:    hit.ClassScheduleEndMinutes,
			}
		}
		return tx.Save(m).Error
	})
}

// Delete: soft delete definisi jadwal. Sesi yang sudah digenerate TIDAK disentuh.
func (r *Registry) Delete(ctx context.Context, id uuid.UUID) (model.ClassScheduleModel, error) {
	var existing model.ClassScheduleModel
	if err := r.DB.WithContext(ctx).
		Where("class_schedule_id = ?", id).
		First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return existing, ErrScheduleNotFound
		}
		return existing, err
	}
	if err := r.DB.WithContext(ctx).Delete(&existing).Error; err != nil {
		return existing, err
	}
	return existing, nil
}

// Get satu jadwal by id.
func (r *Registry) Get(ctx context.Context, id uuid.UUID) (model.ClassScheduleModel, error) {
	var m model.ClassScheduleModel
	if err := r.DB.WithContext(ctx).
		Where("class_schedule_id = ?", id).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return m, ErrScheduleNotFound
		}
		return m, err
	}
	return m, nil
}

// ListByGroup: urut natural (hari, jam mulai) — ordering ini juga kontrak generator.
func (r *Registry) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]model.ClassScheduleModel, error) {
	return listByGroupTx(r.DB.WithContext(ctx), groupID)
}

func listByGroupTx(tx *gorm.DB, groupID uuid.UUID) ([]model.ClassScheduleModel, error) {
	var out []model.ClassScheduleModel
	err := tx.
		Where("class_schedule_group_id = ?", groupID).
		Order("array_position(ARRAY['monday','tuesday','wednesday','thursday','friday','saturday']::day_of_week_enum[], class_schedule_day_of_week), class_schedule_start_minutes").
		Find(&out).Error
	return out, err
}
