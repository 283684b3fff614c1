// file: internals/features/academics/sessions/controller/class_session_controller.go
package controller

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"kelasku_backend/internals/constants"
	helper "kelasku_backend/internals/helpers"
	helperAuth "kelasku_backend/internals/helpers/auth"

	groupmodel "kelasku_backend/internals/features/academics/groups/model"
	d "kelasku_backend/internals/features/academics/sessions/dto"
	model "kelasku_backend/internals/features/academics/sessions/model"
	svc "kelasku_backend/internals/features/academics/sessions/service"
	subjectmodel "kelasku_backend/internals/features/academics/subjects/model"
)

const dateLayout = "2006-01-02"

/* =========================
   Controller & Constructor
   ========================= */

type ClassSessionController struct {
	DB        *gorm.DB
	Validate  *validator.Validate
	Generator *svc.Generator
	Lifecycle *svc.Lifecycle
}

func New(db *gorm.DB, v *validator.Validate) *ClassSessionController {
	return &ClassSessionController{
		DB:        db,
		Validate:  v,
		Generator: svc.NewGenerator(db),
		Lifecycle: svc.NewLifecycle(db),
	}
}

/* =========================
   Helpers
   ========================= */

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	idStr := strings.TrimSpace(c.Params(name))
	if idStr == "" {
		return uuid.Nil, fmt.Errorf("%s is required", name)
	}
	return uuid.Parse(idStr)
}

// writeSessionError memetakan error service sesi → HTTP status.
func writeSessionError(c *fiber.Ctx, err error) error {
	var transition *svc.InvalidTransitionError
	var placement *svc.PlacementConflictError
	switch {
	case errors.As(err, &transition):
		return helper.JsonError(c, http.StatusConflict, transition.Error())
	case errors.As(err, &placement):
		return helper.JsonError(c, http.StatusConflict, placement.Error())
	case errors.Is(err, svc.ErrStaleVersion):
		return helper.JsonError(c, http.StatusConflict, err.Error())
	case errors.Is(err, svc.ErrGenerateConflict):
		return helper.JsonError(c, http.StatusConflict, err.Error())
	case errors.Is(err, svc.ErrSessionNotFound):
		return helper.JsonError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, svc.ErrGroupNotFound):
		return helper.JsonError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, svc.ErrGroupInactive):
		return helper.JsonError(c, http.StatusConflict, err.Error())
	case errors.Is(err, svc.ErrDateRangeInvalid), errors.Is(err, svc.ErrDateRangeTooLong):
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	default:
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
}

/*
========================= Generate =========================
*/

func (ctl *ClassSessionController) Generate(c *fiber.Ctx) error {
	if !helperAuth.IsStaff(c) {
		return helper.JsonError(c, http.StatusForbidden, "Akses ditolak")
	}

	var req d.GenerateSessionsRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("[ClassSession.Generate] BodyParser error: %v", err)
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if ctl.Validate != nil {
		if err := ctl.Validate.Struct(req); err != nil {
			return helper.JsonError(c, http.StatusBadRequest, err.Error())
		}
	}
	from, to, err := req.Range()
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}

	if req.Preview {
		candidates, err := ctl.Generator.Preview(c.UserContext(), req.GroupID, from, to)
		if err != nil {
			return writeSessionError(c, err)
		}
		return helper.JsonOK(c, fmt.Sprintf("%d sessions would be created", len(candidates)), d.FromModels(candidates))
	}

	created, err := ctl.Generator.Generate(c.UserContext(), req.GroupID, from, to)
	if err != nil {
		return writeSessionError(c, err)
	}
	return helper.JsonCreated(c, fmt.Sprintf("%d sessions created", len(created)), d.FromModels(created))
}

/*
========================= Create (manual) =========================
*/

func (ctl *ClassSessionController) Create(c *fiber.Ctx) error {
	if !helperAuth.IsStaff(c) {
		return helper.JsonError(c, http.StatusForbidden, "Akses ditolak")
	}

	var req d.CreateClassSessionRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("[ClassSession.Create] BodyParser error: %v", err)
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if ctl.Validate != nil {
		if err := ctl.Validate.Struct(req); err != nil {
			return helper.JsonError(c, http.StatusBadRequest, err.Error())
		}
	}

	m, err := req.ToModel()
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}

	// kolaborator: subject wajib ada; sesi extra wajib grup aktif
	var subject subjectmodel.SubjectModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("subject_id = ?", m.ClassSessionSubjectID).
		First(&subject).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusNotFound, "subject not found")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	if m.ClassSessionGroupID != nil {
		var grp groupmodel.GroupModel
		if err := ctl.DB.WithContext(c.UserContext()).
			Where("group_id = ?", *m.ClassSessionGroupID).
			First(&grp).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return writeSessionError(c, svc.ErrGroupNotFound)
			}
			return helper.JsonError(c, http.StatusInternalServerError, err.Error())
		}
		if !grp.GroupIsActive {
			return writeSessionError(c, svc.ErrGroupInactive)
		}
	}

	if err := ctl.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		return writeSessionError(c, err)
	}
	return helper.JsonCreated(c, "Session created", d.FromModel(m))
}

/*
========================= List =========================
*/

// row hasil join utk enrichment nama grup/mapel.
type sessionListRow struct {
	model.ClassSessionModel
	GroupName   *string `gorm:"column:group_name"`
	SubjectName *string `gorm:"column:subject_name"`
}

func (ctl *ClassSessionController) List(c *fiber.Ctx) error {
	q, err := parseListQuery(c)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	p := helper.ResolvePaging(c, 20, 100)

	tx := ctl.DB.WithContext(c.UserContext()).
		Model(&model.ClassSessionModel{}).
		Select("class_sessions.*, groups.group_name AS group_name, subjects.subject_name AS subject_name").
		Joins("LEFT JOIN groups ON groups.group_id = class_sessions.class_session_group_id").
		Joins("LEFT JOIN subjects ON subjects.subject_id = class_sessions.class_session_subject_id")

	if q.GroupID != nil {
		tx = tx.Where("class_session_group_id = ?", *q.GroupID)
	}
	if q.SubjectID != nil {
		tx = tx.Where("class_session_subject_id = ?", *q.SubjectID)
	}
	if q.DateFrom != nil {
		tx = tx.Where("class_session_date >= ?", *q.DateFrom)
	}
	if q.DateTo != nil {
		tx = tx.Where("class_session_date <= ?", *q.DateTo)
	}
	if q.Status != nil {
		tx = tx.Where("class_session_status = ?", *q.Status)
	}
	if q.Type != nil {
		tx = tx.Where("class_session_type = ?", *q.Type)
	}
	if q.Mode != nil {
		tx = tx.Where("class_session_mode = ?", *q.Mode)
	}
	if len(q.Classrooms) > 0 {
		tx = tx.Where("class_session_classroom = ANY(?)", q.Classrooms)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	var rows []sessionListRow
	if err := tx.
		Order("class_session_date, class_session_start_minutes").
		Limit(p.Limit).Offset(p.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	out := make([]d.ClassSessionResponse, 0, len(rows))
	for _, r := range rows {
		resp := d.FromModel(r.ClassSessionModel)
		resp.ClassSessionGroupName = r.GroupName
		resp.ClassSessionSubjectName = r.SubjectName
		out = append(out, resp)
	}

	pg := helper.BuildPaginationFromPage(total, p.Page, p.PerPage)
	pg.Count = len(out)
	return helper.JsonList(c, "ok", out, &pg)
}

func parseListQuery(c *fiber.Ctx) (d.ListClassSessionQuery, error) {
	var q d.ListClassSessionQuery

	if s := strings.TrimSpace(c.Query("group_id")); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return q, fmt.Errorf("invalid group_id")
		}
		q.GroupID = &id
	}
	if s := strings.TrimSpace(c.Query("subject_id")); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return q, fmt.Errorf("invalid subject_id")
		}
		q.SubjectID = &id
	}
	if s := strings.TrimSpace(c.Query("date_from")); s != "" {
		t, err := time.ParseInLocation(dateLayout, s, time.UTC)
		if err != nil {
			return q, fmt.Errorf("invalid date_from (use YYYY-MM-DD)")
		}
		q.DateFrom = &t
	}
	if s := strings.TrimSpace(c.Query("date_to")); s != "" {
		t, err := time.ParseInLocation(dateLayout, s, time.UTC)
		if err != nil {
			return q, fmt.Errorf("invalid date_to (use YYYY-MM-DD)")
		}
		q.DateTo = &t
	}
	if s := strings.TrimSpace(c.Query("status")); s != "" {
		st := model.SessionStatus(strings.ToLower(s))
		if !st.Valid() {
			return q, fmt.Errorf("invalid status")
		}
		q.Status = &st
	}
	if s := strings.TrimSpace(c.Query("type")); s != "" {
		ty := model.SessionType(strings.ToLower(s))
		if !ty.Valid() {
			return q, fmt.Errorf("invalid type")
		}
		q.Type = &ty
	}
	if s := strings.TrimSpace(c.Query("mode")); s != "" {
		mo := constants.ClassMode(strings.ToLower(s))
		if !mo.Valid() {
			return q, fmt.Errorf("invalid mode")
		}
		q.Mode = &mo
	}
	if s := strings.TrimSpace(c.Query("classrooms")); s != "" {
		var rooms pq.StringArray
		for _, part := range strings.Split(s, ",") {
			room := constants.Classroom(strings.ToLower(strings.TrimSpace(part)))
			if !room.Valid() {
				return q, fmt.Errorf("invalid classroom %q", part)
			}
			rooms = append(rooms, string(room))
		}
		q.Classrooms = rooms
	}
	return q, nil
}

/*
========================= Grid =========================
*/

type gridBucketResponse struct {
	Day       string         `json:"day"` // "YYYY-MM-DD"
	Classroom string         `json:"classroom"`
	Items     []svc.GridItem `json:"items"`
}

// Grid: kalender sesi per (tanggal, ruang). Sesi canceled disembunyikan;
// postponed tampil di tanggal barunya (date sudah digeser saat postpone).
func (ctl *ClassSessionController) Grid(c *fiber.Ctx) error {
	from, err := time.ParseInLocation(dateLayout, strings.TrimSpace(c.Query("date_from")), time.UTC)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid date_from (use YYYY-MM-DD)")
	}
	to, err := time.ParseInLocation(dateLayout, strings.TrimSpace(c.Query("date_to")), time.UTC)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid date_to (use YYYY-MM-DD)")
	}
	if from.After(to) {
		return helper.JsonError(c, http.StatusBadRequest, "date_from must be on or before date_to")
	}

	var roomFilter *constants.Classroom
	if s := strings.TrimSpace(c.Query("classroom")); s != "" {
		room := constants.Classroom(strings.ToLower(s))
		if !room.Valid() {
			return helper.JsonError(c, http.StatusBadRequest, "invalid classroom")
		}
		roomFilter = &room
	}

	var sessions []model.ClassSessionModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("class_session_date BETWEEN ? AND ?", from, to).
		Where("class_session_status <> ?", model.SessionStatusCanceled).
		Order("class_session_date, class_session_start_minutes").
		Find(&sessions).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	buckets := svc.Compose(svc.ItemsFromSessions(sessions), roomFilter)

	out := make([]gridBucketResponse, 0, len(buckets))
	for k, items := range buckets {
		out = append(out, gridBucketResponse{
			Day:       k.Day,
			Classroom: string(k.Classroom),
			Items:     items,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Day != out[j].Day {
			return out[i].Day < out[j].Day
		}
		return out[i].Classroom < out[j].Classroom
	})

	return helper.JsonOK(c, "ok", out)
}
