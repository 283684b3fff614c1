// file: internals/features/academics/sessions/service/grid_composer_service.go
package service

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"kelasku_backend/internals/constants"
	schedmodel "kelasku_backend/internals/features/academics/schedules/model"
	model "kelasku_backend/internals/features/academics/sessions/model"
)

/* =========================
   Grid composer (pure)
========================= */

// GridItem: representasi seragam utk kalender — jadwal mingguan maupun sesi
// bertanggal dipetakan ke bentuk yang sama sebelum di-bucket.
type GridItem struct {
	ID           uuid.UUID           `json:"id"`
	Day          string              `json:"day"` // nama hari (jadwal) atau tanggal ISO (sesi)
	Classroom    constants.Classroom `json:"classroom"`
	StartMinutes int                 `json:"start_minutes"`
	EndMinutes   int                 `json:"end_minutes"`
	Status       model.SessionStatus `json:"status,omitempty"` // kosong utk item jadwal
}

// BucketKey: satu kolom kalender = (hari, ruang).
type BucketKey struct {
	Day       string              `json:"day"`
	Classroom constants.Classroom `json:"classroom"`
}

func DayKeyFromDate(t time.Time) string { return t.Format("2006-01-02") }

func ItemFromSchedule(s schedmodel.ClassScheduleModel) GridItem {
	return GridItem{
		ID:           s.ClassScheduleID,
		Day:          string(s.ClassScheduleDayOfWeek),
		Classroom:    s.ClassScheduleClassroom,
		StartMinutes: s.ClassScheduleStartMinutes,
		EndMinutes:   s.ClassScheduleEndMinutes,
	}
}

func ItemFromSession(s model.ClassSessionModel) GridItem {
	return GridItem{
		ID:           s.ClassSessionID,
		Day:          DayKeyFromDate(s.ClassSessionDate),
		Classroom:    s.ClassSessionClassroom,
		StartMinutes: s.ClassSessionStartMinutes,
		EndMinutes:   s.ClassSessionEndMinutes,
		Status:       s.ClassSessionStatus,
	}
}

func ItemsFromSessions(list []model.ClassSessionModel) []GridItem {
	out := make([]GridItem, 0, len(list))
	for _, s := range list {
		out = append(out, ItemFromSession(s))
	}
	return out
}

func ItemsFromSchedules(list []schedmodel.ClassScheduleModel) []GridItem {
	out := make([]GridItem, 0, len(list))
	for _, s := range list {
		out = append(out, ItemFromSchedule(s))
	}
	return out
}

// Compose mengelompokkan item per (hari, ruang), terurut start ascending.
// classroomFilter nil → semua ruang.
func Compose(items []GridItem, classroomFilter *constants.Classroom) map[BucketKey][]GridItem {
	buckets := make(map[BucketKey][]GridItem)
	for _, it := range items {
		if classroomFilter != nil && it.Classroom != *classroomFilter {
			continue
		}
		k := BucketKey{Day: it.Day, Classroom: it.Classroom}
		buckets[k] = append(buckets[k], it)
	}
	for k := range buckets {
		b := buckets[k]
		sort.SliceStable(b, func(i, j int) bool {
			if b[i].StartMinutes != b[j].StartMinutes {
				return b[i].StartMinutes < b[j].StartMinutes
			}
			return b[i].EndMinutes < b[j].EndMinutes
		})
		buckets[k] = b
	}
	return buckets
}

// ProposeMove validasi drag/drop: item (id) pindah ke bucket tujuan pada
// rentang [start, end). Back-to-back sah (interval half-open); bentrok dgn
// penghuni bucket lain → PlacementConflictError. Item dgn id sama di-exclude
// (pindah di dalam bucket sendiri).
func ProposeMove(items []GridItem, id uuid.UUID, day string, startMinutes, endMinutes int, room constants.Classroom) (BucketKey, error) {
	key := BucketKey{Day: day, Classroom: room}
	for _, it := range items {
		if it.ID == id {
			continue
		}
		if it.Day != day || it.Classroom != room {
			continue
		}
		if startMinutes < it.EndMinutes && it.StartMinutes < endMinutes {
			return key, &PlacementConflictError{ConflictingID: it.ID}
		}
	}
	return key, nil
}
