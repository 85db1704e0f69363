package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/campuskit/portal-api/model"
	"github.com/campuskit/portal-api/utils/sanitize"
	"gorm.io/gorm"
)

// NoticeService manages the notice board. Content is flattened to plain text
// on the way in so stored notices can be rendered anywhere without escaping.
type NoticeService struct {
	db *gorm.DB
}

// NewNoticeService creates a new notice service.
func NewNoticeService(db *gorm.DB) *NoticeService {
	return &NoticeService{db: db}
}

// Post publishes a notice to the given audience.
func (s *NoticeService) Post(postedByID uint, title, content string, target model.TargetRole) (*model.Notice, error) {
	if !target.Valid() {
		return nil, fmt.Errorf("unknown target role %q", target)
	}
	title = sanitize.StripTags(title)
	if title == "" {
		return nil, errors.New("notice title is required")
	}

	notice := model.Notice{
		Title:      title,
		Content:    sanitize.StripTags(content),
		TargetRole: target,
		PostedByID: postedByID,
		PostedAt:   time.Now(),
	}
	if err := s.db.Create(&notice).Error; err != nil {
		return nil, fmt.Errorf("failed to post notice: %w", err)
	}
	return &notice, nil
}

// ListFor returns the notices visible to a role, newest first. Admins see
// everything; students and faculty see ALL plus their own group.
func (s *NoticeService) ListFor(role string) ([]model.Notice, error) {
	query := s.db.Order("posted_at DESC")
	switch role {
	case model.RoleStudent:
		query = query.Where("target_role IN ?", []model.TargetRole{model.TargetAll, model.TargetStudents})
	case model.RoleFaculty:
		query = query.Where("target_role IN ?", []model.TargetRole{model.TargetAll, model.TargetFaculty})
	}

	var notices []model.Notice
	if err := query.Find(&notices).Error; err != nil {
		return nil, fmt.Errorf("failed to list notices: %w", err)
	}
	return notices, nil
}

// Delete removes a notice from the board.
func (s *NoticeService) Delete(id uint) error {
	result := s.db.Delete(&model.Notice{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete notice: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNoticeNotFound
	}
	return nil
}
