// file: internals/features/academics/sessions/service/generate_sessions_service.go
package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	helper "kelasku_backend/internals/helpers"

	groupmodel "kelasku_backend/internals/features/academics/groups/model"
	schedmodel "kelasku_backend/internals/features/academics/schedules/model"
	model "kelasku_backend/internals/features/academics/sessions/model"
)

// maxGenerateDays batas rentang generate (inklusif) supaya satu request
// tidak membuat jutaan row.
const maxGenerateDays = 366

/* =========================
   Pure expansion
========================= */

// sessionKey identitas slot okurensi: (tanggal, start). Dipakai untuk
// dedupe idempoten — selaras dgn unique partial index di class_sessions.
type sessionKey struct {
	Date         string
	StartMinutes int
}

func keyOf(date time.Time, startMinutes int) sessionKey {
	return sessionKey{Date: date.Format("2006-01-02"), StartMinutes: startMinutes}
}

// expandCandidates memproyeksikan jadwal mingguan ke tanggal konkret dalam
// [from, to] inklusif. Slot yang sudah ada di `existing` dilewati (bukan
// error). Output deterministik: tanggal ascending, lalu start ascending.
func expandCandidates(group groupmodel.GroupModel, schedules []schedmodel.ClassScheduleModel, from, to time.Time, existing map[sessionKey]struct{}) []model.ClassSessionModel {
	byDay := make(map[time.Weekday][]schedmodel.ClassScheduleModel, len(schedules))
	for _, s := range schedules {
		wd := s.ClassScheduleDayOfWeek.Weekday()
		byDay[wd] = append(byDay[wd], s)
	}
	for wd := range byDay {
		day := byDay[wd]
		sort.SliceStable(day, func(i, j int) bool {
			return day[i].ClassScheduleStartMinutes < day[j].ClassScheduleStartMinutes
		})
		byDay[wd] = day
	}

	seen := make(map[sessionKey]struct{}, len(existing))
	for k := range existing {
		seen[k] = struct{}{}
	}

	var out []model.ClassSessionModel
	for d := dateOnly(from); !d.After(dateOnly(to)); d = d.AddDate(0, 0, 1) {
		for _, s := range byDay[d.Weekday()] {
			k := keyOf(d, s.ClassScheduleStartMinutes)
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}

			scheduleID := s.ClassScheduleID
			out = append(out, model.ClassSessionModel{
				ClassSessionGroupID:      &group.GroupID,
				ClassSessionSubjectID:    group.GroupSubjectID,
				ClassSessionScheduleID:   &scheduleID,
				ClassSessionClassroom:    s.ClassScheduleClassroom,
				ClassSessionDate:         d,
				ClassSessionStartMinutes: s.ClassScheduleStartMinutes,
				ClassSessionEndMinutes:   s.ClassScheduleEndMinutes,
				ClassSessionStatus:       model.SessionStatusScheduled,
				ClassSessionType:         model.SessionTypeRegular,
				ClassSessionMode:         s.ClassScheduleMode,
				ClassSessionVersion:      1,
				ClassSessionScheduleSnapshot: datatypes.JSONMap{
					"schedule_id": s.ClassScheduleID.String(),
					"day_of_week": string(s.ClassScheduleDayOfWeek),
					"start_time":  helper.FromMinutes(s.ClassScheduleStartMinutes),
					"end_time":    helper.FromMinutes(s.ClassScheduleEndMinutes),
					"classroom":   string(s.ClassScheduleClassroom),
					"mode":        string(s.ClassScheduleMode),
				},
			})
		}
	}
	return out
}

func validateRange(from, to time.Time) error {
	if dateOnly(from).After(dateOnly(to)) {
		return ErrDateRangeInvalid
	}
	days := int(dateOnly(to).Sub(dateOnly(from)).Hours()/24) + 1
	if days > maxGenerateDays {
		return ErrDateRangeTooLong
	}
	return nil
}

/* =========================
   Generator service
========================= */

type Generator struct{ DB *gorm.DB }

func NewGenerator(db *gorm.DB) *Generator { return &Generator{DB: db} }

func (g *Generator) loadGroup(ctx context.Context, db *gorm.DB, groupID uuid.UUID) (groupmodel.GroupModel, error) {
	var grp groupmodel.GroupModel
	if err := db.WithContext(ctx).
		Where("group_id = ?", groupID).
		First(&grp).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return grp, ErrGroupNotFound
		}
		return grp, err
	}
	if !grp.GroupIsActive {
		return grp, ErrGroupInactive
	}
	return grp, nil
}

func (g *Generator) loadSchedules(ctx context.Context, db *gorm.DB, groupID uuid.UUID) ([]schedmodel.ClassScheduleModel, error) {
	var schedules []schedmodel.ClassScheduleModel
	err := db.WithContext(ctx).
		Where("class_schedule_group_id = ?", groupID).
		Order("class_schedule_day_of_week, class_schedule_start_minutes").
		Find(&schedules).Error
	return schedules, err
}

func (g *Generator) loadExistingKeys(ctx context.Context, db *gorm.DB, groupID uuid.UUID, from, to time.Time) (map[sessionKey]struct{}, error) {
	type row struct {
		ClassSessionDate         time.Time
		ClassSessionStartMinutes int
	}
	var rows []row
	if err := db.WithContext(ctx).
		Model(&model.ClassSessionModel{}).
		Select("class_session_date", "class_session_start_minutes").
		Where("class_session_group_id = ?", groupID).
		Where("class_session_date BETWEEN ? AND ?", dateOnly(from), dateOnly(to)).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	existing := make(map[sessionKey]struct{}, len(rows))
	for _, r := range rows {
		existing[keyOf(r.ClassSessionDate, r.ClassSessionStartMinutes)] = struct{}{}
	}
	return existing, nil
}

// Preview menghitung sesi yang AKAN dibuat tanpa menulis apa pun.
func (g *Generator) Preview(ctx context.Context, groupID uuid.UUID, from, to time.Time) ([]model.ClassSessionModel, error) {
	if err := validateRange(from, to); err != nil {
		return nil, err
	}
	grp, err := g.loadGroup(ctx, g.DB, groupID)
	if err != nil {
		return nil, err
	}
	schedules, err := g.loadSchedules(ctx, g.DB, groupID)
	if err != nil {
		return nil, err
	}
	existing, err := g.loadExistingKeys(ctx, g.DB, groupID, from, to)
	if err != nil {
		return nil, err
	}
	return expandCandidates(grp, schedules, from, to, existing), nil
}

// Generate materialisasi jadwal → sesi dalam satu transaksi.
// Advisory lock per grup menyerialisasi generate konkuren; kalau ada insert
// lolos race (23505 dari partial unique index), seluruh transaksi rollback
// dan caller dapat ErrGenerateConflict (retryable).
func (g *Generator) Generate(ctx context.Context, groupID uuid.UUID, from, to time.Time) ([]model.ClassSessionModel, error) {
	if err := validateRange(from, to); err != nil {
		return nil, err
	}

	var created []model.ClassSessionModel
	err := g.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			"SELECT pg_advisory_xact_lock(hashtextextended(?::text, 0))",
			groupID,
		).Error; err != nil {
			return err
		}

		grp, err := g.loadGroup(ctx, tx, groupID)
		if err != nil {
			return err
		}
		schedules, err := g.loadSchedules(ctx, tx, groupID)
		if err != nil {
			return err
		}
		existing, err := g.loadExistingKeys(ctx, tx, groupID, from, to)
		if err != nil {
			return err
		}

		candidates := expandCandidates(grp, schedules, from, to, existing)
		if len(candidates) == 0 {
			created = []model.ClassSessionModel{}
			return nil
		}

		if err := tx.
			Clauses(clause.OnConflict{DoNothing: true}).
			CreateInBatches(&candidates, 200).Error; err != nil {
			return err
		}
		created = candidates
		return nil
	})
	if err != nil {
		var pgErr pgSQLErr
		if errors.As(err, &pgErr) && pgErr.SQLState() == "23505" {
			return nil, ErrGenerateConflict
		}
		return nil, err
	}
	return created, nil
}

// pgSQLErr dicocokkan via interface supaya tidak import driver langsung.
type pgSQLErr interface{ SQLState() string }
