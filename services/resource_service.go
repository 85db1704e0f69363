package services

import (
	"context"
	"fmt"
	"time"

	"github.com/campuskit/portal-api/model"
	"github.com/campuskit/portal-api/services/storage"
	"gorm.io/gorm"
)

// ResourceService manages shared documents: per-allocation academic
// resources and per-cohort exam schedules. Files live in object storage;
// the database keeps only metadata and the object key.
type ResourceService struct {
	db    *gorm.DB
	store *storage.ObjectStore
}

// NewResourceService creates a new resource service.
func NewResourceService(db *gorm.DB, store *storage.ObjectStore) *ResourceService {
	return &ResourceService{db: db, store: store}
}

// UploadResource stores a document and records it under an allocation.
func (s *ResourceService) UploadResource(ctx context.Context, allocationID uint, title, fileName string, data []byte) (*model.AcademicResource, error) {
	var allocation model.SubjectAllocation
	if err := s.db.First(&allocation, allocationID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrAllocationNotFound
		}
		return nil, fmt.Errorf("failed to fetch allocation: %w", err)
	}

	key := storage.GenerateKey(fmt.Sprintf("resources/%d", allocation.ID), fileName)
	contentType := storage.ContentTypeFor(fileName)
	if err := s.store.UploadBytes(ctx, key, data, contentType); err != nil {
		return nil, err
	}

	resource := model.AcademicResource{
		AllocationID: allocation.ID,
		Title:        title,
		FileName:     fileName,
		ObjectKey:    key,
		ContentType:  contentType,
		UploadDate:   time.Now(),
	}
	if err := s.db.Create(&resource).Error; err != nil {
		// Metadata write failed; drop the orphan object.
		_ = s.store.Delete(ctx, key)
		return nil, fmt.Errorf("failed to record resource: %w", err)
	}
	return &resource, nil
}

// ResourcesForAllocations lists the documents of the given allocations,
// newest first.
func (s *ResourceService) ResourcesForAllocations(allocationIDs []uint) ([]model.AcademicResource, error) {
	if len(allocationIDs) == 0 {
		return []model.AcademicResource{}, nil
	}
	var resources []model.AcademicResource
	if err := s.db.
		Where("allocation_id IN ?", allocationIDs).
		Order("upload_date DESC").
		Find(&resources).Error; err != nil {
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}
	return resources, nil
}

// DownloadResource fetches a document's bytes along with its metadata.
func (s *ResourceService) DownloadResource(ctx context.Context, resourceID uint) (*model.AcademicResource, []byte, error) {
	var resource model.AcademicResource
	if err := s.db.First(&resource, resourceID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, ErrResourceNotFound
		}
		return nil, nil, fmt.Errorf("failed to fetch resource: %w", err)
	}

	data, err := s.store.Download(ctx, resource.ObjectKey)
	if err != nil {
		return nil, nil, err
	}
	return &resource, data, nil
}

// DeleteResource removes a document and its stored object.
func (s *ResourceService) DeleteResource(ctx context.Context, resourceID uint) error {
	var resource model.AcademicResource
	if err := s.db.First(&resource, resourceID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrResourceNotFound
		}
		return fmt.Errorf("failed to fetch resource: %w", err)
	}

	if err := s.db.Delete(&resource).Error; err != nil {
		return fmt.Errorf("failed to delete resource: %w", err)
	}
	return s.store.Delete(ctx, resource.ObjectKey)
}

// UploadExamSchedule stores a cohort's exam timetable, replacing any
// previous one for the same cohort.
func (s *ResourceService) UploadExamSchedule(ctx context.Context, year model.AcademicYear, fileName string, data []byte) (*model.ExamSchedule, error) {
	key := storage.GenerateKey(fmt.Sprintf("schedules/%s", year), fileName)
	contentType := storage.ContentTypeFor(fileName)
	if err := s.store.UploadBytes(ctx, key, data, contentType); err != nil {
		return nil, err
	}

	var schedule model.ExamSchedule
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing model.ExamSchedule
		err := tx.Where("academic_year = ?", year).First(&existing).Error
		switch err {
		case nil:
			oldKey := existing.ObjectKey
			existing.FileName = fileName
			existing.ObjectKey = key
			existing.ContentType = contentType
			existing.UploadDate = time.Now()
			if err := tx.Save(&existing).Error; err != nil {
				return fmt.Errorf("failed to replace schedule: %w", err)
			}
			schedule = existing
			_ = s.store.Delete(ctx, oldKey)
			return nil
		case gorm.ErrRecordNotFound:
			schedule = model.ExamSchedule{
				AcademicYear: year,
				FileName:     fileName,
				ObjectKey:    key,
				ContentType:  contentType,
				UploadDate:   time.Now(),
			}
			if err := tx.Create(&schedule).Error; err != nil {
				return fmt.Errorf("failed to record schedule: %w", err)
			}
			return nil
		default:
			return fmt.Errorf("failed to fetch schedule: %w", err)
		}
	})
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

// ExamScheduleFor fetches the stored schedule file for a cohort.
func (s *ResourceService) ExamScheduleFor(ctx context.Context, year model.AcademicYear) (*model.ExamSchedule, []byte, error) {
	var schedule model.ExamSchedule
	if err := s.db.Where("academic_year = ?", year).First(&schedule).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, ErrScheduleNotFound
		}
		return nil, nil, fmt.Errorf("failed to fetch schedule: %w", err)
	}

	data, err := s.store.Download(ctx, schedule.ObjectKey)
	if err != nil {
		return nil, nil, err
	}
	return &schedule, data, nil
}
