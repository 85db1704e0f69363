package faculty

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/campuskit/portal-api/services"
	"github.com/campuskit/portal-api/utils/middleware"
	"github.com/campuskit/portal-api/utils/response"
	"github.com/gofiber/fiber/v2"
)

// SubmitAttendanceRequest is one held class with all its statuses.
type SubmitAttendanceRequest struct {
	Date    string                  `json:"date" validate:"required"` // "2006-01-02"
	Entries []services.SessionEntry `json:"entries" validate:"required,min=1,dive"`
}

// ownedAllocation parses the :allocationId param and verifies the caller
// teaches it. When ok is false a response has already been written and the
// handler must return the accompanying error as-is.
func (h *FacultyHandler) ownedAllocation(c *fiber.Ctx) (uint, bool, error) {
	facultyID, ok := middleware.GetUserID(c)
	if !ok {
		return 0, false, response.Unauthorized(c, "Not authenticated")
	}

	allocationID, err := strconv.ParseUint(c.Params("allocationId"), 10, 32)
	if err != nil {
		return 0, false, response.BadRequest(c, "Invalid allocation ID")
	}

	owns, err := h.faculty.OwnsAllocation(facultyID, uint(allocationID))
	if err != nil {
		return 0, false, response.InternalServerError(c, "Failed to verify allocation")
	}
	if !owns {
		return 0, false, response.Forbidden(c, "Allocation does not belong to you")
	}
	return uint(allocationID), true, nil
}

// SubmitAttendance records one held class with per-student statuses.
func (h *FacultyHandler) SubmitAttendance(c *fiber.Ctx) error {
	allocationID, ok, err := h.ownedAllocation(c)
	if !ok {
		return err
	}

	var req SubmitAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return response.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
	}
	for _, e := range req.Entries {
		if !e.Status.Valid() {
			return response.BadRequest(c, fmt.Sprintf("Unknown attendance status %q", e.Status))
		}
	}

	switch err := h.attendance.SubmitSession(allocationID, date, req.Entries); err {
	case nil:
		return response.Created(c, fiber.Map{"allocationId": allocationID, "date": req.Date, "records": len(req.Entries)})
	case services.ErrAllocationNotFound:
		return response.NotFound(c, "Allocation not found")
	case services.ErrEmptyBatch:
		return response.BadRequest(c, "No attendance entries provided")
	default:
		return response.InternalServerError(c, "Failed to record attendance")
	}
}

// Roster returns the students in scope for an allocation, ordered by PRN.
func (h *FacultyHandler) Roster(c *fiber.Ctx) error {
	allocationID, ok, err := h.ownedAllocation(c)
	if !ok {
		return err
	}

	roster, err := h.attendance.Roster(allocationID)
	if err != nil {
		return response.InternalServerError(c, "Failed to resolve roster")
	}
	return response.Success(c, roster)
}

// windowFromParams builds a date window from the startDate/endDate query
// values. A nil window means no filtering. The params must be given
// together; a half-open range is rejected rather than silently widened.
func windowFromParams(startDate, endDate string) (*services.DateWindow, error) {
	if startDate == "" && endDate == "" {
		return nil, nil
	}
	if startDate == "" || endDate == "" {
		return nil, fmt.Errorf("startDate and endDate must be provided together")
	}

	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return nil, fmt.Errorf("invalid startDate, expected YYYY-MM-DD")
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return nil, fmt.Errorf("invalid endDate, expected YYYY-MM-DD")
	}
	return services.NewDateWindow(start, end)
}

func parseWindow(c *fiber.Ctx) (*services.DateWindow, error) {
	return windowFromParams(c.Query("startDate"), c.Query("endDate"))
}

// AttendanceReport returns the single-subject rollup as JSON.
func (h *FacultyHandler) AttendanceReport(c *fiber.Ctx) error {
	allocationID, ok, err := h.ownedAllocation(c)
	if !ok {
		return err
	}

	window, err := parseWindow(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	report, err := h.attendance.AllocationReport(allocationID, window)
	switch err {
	case nil:
		return response.Success(c, report)
	case services.ErrAllocationNotFound:
		return response.NotFound(c, "Allocation not found")
	default:
		return response.InternalServerError(c, "Failed to build report")
	}
}

// DownloadAttendanceReport streams the rollup as a CSV attachment.
func (h *FacultyHandler) DownloadAttendanceReport(c *fiber.Ctx) error {
	allocationID, ok, err := h.ownedAllocation(c)
	if !ok {
		return err
	}

	window, err := parseWindow(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	report, err := h.attendance.AllocationReport(allocationID, window)
	if err != nil {
		if err == services.ErrAllocationNotFound {
			return response.NotFound(c, "Allocation not found")
		}
		return response.InternalServerError(c, "Failed to build report")
	}

	var buf bytes.Buffer
	if err := report.WriteCSV(&buf); err != nil {
		return response.InternalServerError(c, "Failed to render CSV")
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, services.CSVFileName(allocationID)))
	return c.Send(buf.Bytes())
}
