package admin

import (
	"github.com/campuskit/portal-api/database"
	"github.com/campuskit/portal-api/services"
	"github.com/campuskit/portal-api/utils/validation"
	"gorm.io/gorm"
)

// AdminHandler handles the admin-facing endpoints: enrollment, the subject
// catalog, allocations, fees, result imports, and the dashboard.
type AdminHandler struct {
	db        *gorm.DB
	validator *validation.Validator
	admin     *services.AdminService
	fees      *services.FeeService
	ledger    *services.ResultLedgerService
	rawStore  *database.PostgreSQLStore
}

// NewAdminHandler creates a new admin handler. rawStore may be nil; the
// dashboard endpoint then reports unavailable.
func NewAdminHandler(db *gorm.DB, rawStore *database.PostgreSQLStore) *AdminHandler {
	return &AdminHandler{
		db:        db,
		validator: validation.NewValidator(),
		admin:     services.NewAdminService(db),
		fees:      services.NewFeeService(db),
		ledger:    services.NewResultLedgerService(db),
		rawStore:  rawStore,
	}
}
