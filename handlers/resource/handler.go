package resource

import (
	"fmt"
	"io"
	"strconv"

	"github.com/campuskit/portal-api/model"
	"github.com/campuskit/portal-api/services"
	"github.com/campuskit/portal-api/utils/middleware"
	"github.com/campuskit/portal-api/utils/response"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// maxUploadSize caps uploaded documents at 25 MB.
const maxUploadSize = 25 << 20

// ResourceHandler handles shared documents: academic resources and exam
// schedules.
type ResourceHandler struct {
	db        *gorm.DB
	resources *services.ResourceService
	faculty   *services.FacultyService
}

// NewResourceHandler creates a new resource handler.
func NewResourceHandler(db *gorm.DB, resources *services.ResourceService) *ResourceHandler {
	return &ResourceHandler{
		db:        db,
		resources: resources,
		faculty:   services.NewFacultyService(db),
	}
}

func readUpload(c *fiber.Ctx, field string) (string, []byte, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return "", nil, fmt.Errorf("%s file is required", field)
	}
	if fileHeader.Size > maxUploadSize {
		return "", nil, fmt.Errorf("file too large")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", nil, fmt.Errorf("failed to read uploaded file")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read uploaded file")
	}
	return fileHeader.Filename, data, nil
}

// Upload stores a document under one of the caller's allocations. Faculty
// only.
func (h *ResourceHandler) Upload(c *fiber.Ctx) error {
	facultyID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	allocationID, err := strconv.ParseUint(c.Params("allocationId"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid allocation ID")
	}
	owns, err := h.faculty.OwnsAllocation(facultyID, uint(allocationID))
	if err != nil {
		return response.InternalServerError(c, "Failed to verify allocation")
	}
	if !owns {
		return response.Forbidden(c, "Allocation does not belong to you")
	}

	title := c.FormValue("title")
	if title == "" {
		return response.BadRequest(c, "title is required")
	}
	fileName, data, err := readUpload(c, "file")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	res, err := h.resources.UploadResource(c.Context(), uint(allocationID), title, fileName, data)
	if err != nil {
		return response.InternalServerError(c, "Failed to store resource")
	}
	return response.Created(c, res)
}

// scopedAllocationIDs resolves which allocations' resources the caller may
// see.
func (h *ResourceHandler) scopedAllocationIDs(c *fiber.Ctx) ([]uint, error) {
	userID, _ := middleware.GetUserID(c)
	role, _ := middleware.GetUserRole(c)

	switch role {
	case model.RoleFaculty:
		allocations, err := h.faculty.MyAllocations(userID)
		if err != nil {
			return nil, err
		}
		ids := make([]uint, 0, len(allocations))
		for _, a := range allocations {
			ids = append(ids, a.ID)
		}
		return ids, nil
	case model.RoleStudent:
		var st model.Student
		if err := h.db.Preload("ExtraCourses").First(&st, userID).Error; err != nil {
			return nil, err
		}
		var ids []uint
		if err := h.db.Model(&model.SubjectAllocation{}).
			Joins("JOIN subjects ON subjects.id = subject_allocations.subject_id").
			Where("subjects.academic_year = ? AND subjects.deleted_at IS NULL", st.AcademicYear).
			Pluck("subject_allocations.id", &ids).Error; err != nil {
			return nil, err
		}
		for _, extra := range st.ExtraCourses {
			ids = append(ids, extra.ID)
		}
		return ids, nil
	default: // admin sees everything
		var ids []uint
		if err := h.db.Model(&model.SubjectAllocation{}).Pluck("id", &ids).Error; err != nil {
			return nil, err
		}
		return ids, nil
	}
}

// List returns the documents visible to the caller.
func (h *ResourceHandler) List(c *fiber.Ctx) error {
	ids, err := h.scopedAllocationIDs(c)
	if err != nil {
		return response.InternalServerError(c, "Failed to resolve scope")
	}

	resources, err := h.resources.ResourcesForAllocations(ids)
	if err != nil {
		return response.InternalServerError(c, "Failed to list resources")
	}
	return response.Success(c, resources)
}

// Download streams a document the caller may see.
func (h *ResourceHandler) Download(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid resource ID")
	}

	res, data, err := h.resources.DownloadResource(c.Context(), uint(id))
	if err != nil {
		if err == services.ErrResourceNotFound {
			return response.NotFound(c, "Resource not found")
		}
		return response.InternalServerError(c, "Failed to fetch resource")
	}

	ids, err := h.scopedAllocationIDs(c)
	if err != nil {
		return response.InternalServerError(c, "Failed to resolve scope")
	}
	inScope := false
	for _, allocID := range ids {
		if allocID == res.AllocationID {
			inScope = true
			break
		}
	}
	if !inScope {
		return response.Forbidden(c, "Resource is not in your classes")
	}

	c.Set(fiber.HeaderContentType, res.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, res.FileName))
	return c.Send(data)
}

// Delete removes a document from one of the caller's allocations.
func (h *ResourceHandler) Delete(c *fiber.Ctx) error {
	facultyID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid resource ID")
	}

	var res model.AcademicResource
	if err := h.db.First(&res, uint(id)).Error; err != nil {
		return response.NotFound(c, "Resource not found")
	}
	owns, err := h.faculty.OwnsAllocation(facultyID, res.AllocationID)
	if err != nil {
		return response.InternalServerError(c, "Failed to verify allocation")
	}
	if !owns {
		return response.Forbidden(c, "Resource does not belong to your classes")
	}

	if err := h.resources.DeleteResource(c.Context(), uint(id)); err != nil {
		return response.InternalServerError(c, "Failed to delete resource")
	}
	return response.SuccessWithMessage(c, "Resource deleted", nil)
}

// UploadExamSchedule stores a cohort's exam timetable file. Admin only.
func (h *ResourceHandler) UploadExamSchedule(c *fiber.Ctx) error {
	year := model.AcademicYear(c.FormValue("academicYear"))
	if year == "" {
		return response.BadRequest(c, "academicYear is required")
	}

	fileName, data, err := readUpload(c, "file")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	schedule, err := h.resources.UploadExamSchedule(c.Context(), year, fileName, data)
	if err != nil {
		return response.InternalServerError(c, "Failed to store schedule")
	}
	return response.Created(c, schedule)
}

// DownloadExamSchedule streams the exam timetable for a cohort. Students get
// their own cohort; staff pass ?year=.
func (h *ResourceHandler) DownloadExamSchedule(c *fiber.Ctx) error {
	userID, _ := middleware.GetUserID(c)
	role, _ := middleware.GetUserRole(c)

	var year model.AcademicYear
	if role == model.RoleStudent {
		var st model.Student
		if err := h.db.First(&st, userID).Error; err != nil {
			return response.NotFound(c, "Student profile not found")
		}
		year = st.AcademicYear
	} else {
		year = model.AcademicYear(c.Query("year"))
		if year == "" {
			return response.BadRequest(c, "year is required")
		}
	}

	schedule, data, err := h.resources.ExamScheduleFor(c.Context(), year)
	if err != nil {
		if err == services.ErrScheduleNotFound {
			return response.NotFound(c, "No exam schedule uploaded for this cohort")
		}
		return response.InternalServerError(c, "Failed to fetch schedule")
	}

	c.Set(fiber.HeaderContentType, schedule.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, schedule.FileName))
	return c.Send(data)
}
