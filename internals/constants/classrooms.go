package constants

/* ==========================
   ✅ Classroom (fixed set)
========================== */

// Classroom merepresentasikan enum classroom_enum di Postgres.
// Set ruangan fix: fisik + virtual.
type Classroom string

const (
	ClassroomRuang1  Classroom = "ruang_1"
	ClassroomRuang2  Classroom = "ruang_2"
	ClassroomRuang3  Classroom = "ruang_3"
	ClassroomAula    Classroom = "aula"
	ClassroomOnline1 Classroom = "online_1"
	ClassroomOnline2 Classroom = "online_2"
)

var AllClassrooms = []Classroom{
	ClassroomRuang1,
	ClassroomRuang2,
	ClassroomRuang3,
	ClassroomAula,
	ClassroomOnline1,
	ClassroomOnline2,
}

func (c Classroom) Valid() bool {
	for _, v := range AllClassrooms {
		if c == v {
			return true
		}
	}
	return false
}

// IsVirtual true untuk ruang online (dipakai default mode sesi).
func (c Classroom) IsVirtual() bool {
	return c == ClassroomOnline1 || c == ClassroomOnline2
}

/* ==========================
   ✅ Class mode
========================== */

// ClassMode merepresentasikan enum class_mode_enum di Postgres.
type ClassMode string

const (
	ModeInPerson ClassMode = "in_person"
	ModeOnline   ClassMode = "online"
	ModeDual     ClassMode = "dual"
)

var AllClassModes = []ClassMode{ModeInPerson, ModeOnline, ModeDual}

func (m ClassMode) Valid() bool {
	for _, v := range AllClassModes {
		if m == v {
			return true
		}
	}
	return false
}
