package database

import (
	"fmt"
	"log"
	"time"

	"github.com/campuskit/portal-api/config"
	"github.com/campuskit/portal-api/model"
	"github.com/campuskit/portal-api/utils/auth"
	"gorm.io/gorm"
)

// Seeder handles database seeding operations
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// RunSeeds runs all seed functions against the given connection.
func RunSeeds(db *gorm.DB) error {
	return NewSeeder(db).SeedAll()
}

// SeedAll runs all seed functions. Every step is idempotent: it only writes
// when its table is empty.
func (s *Seeder) SeedAll() error {
	log.Println("Starting database seeding...")

	if err := s.SeedAdminUser(); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	if err := s.SeedSubjects(); err != nil {
		return fmt.Errorf("failed to seed subjects: %w", err)
	}

	if err := s.SeedDemoAccounts(); err != nil {
		return fmt.Errorf("failed to seed demo accounts: %w", err)
	}

	log.Println("Database seeding completed successfully!")
	return nil
}

// SeedAdminUser creates the bootstrap admin from ADMIN_EMAIL/ADMIN_PASSWORD.
// Skipped when the variables are unset or the account already exists.
func (s *Seeder) SeedAdminUser() error {
	env, err := config.Get()
	if err != nil {
		return err
	}

	if env.ADMIN_EMAIL == "" || env.ADMIN_PASSWORD == "" {
		log.Println("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	var count int64
	if err := s.db.Model(&model.User{}).Where("email = ?", env.ADMIN_EMAIL).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(env.ADMIN_PASSWORD)
	if err != nil {
		return err
	}

	admin := model.User{
		Email:        env.ADMIN_EMAIL,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
		IsActive:     true,
	}
	if err := s.db.Create(&admin).Error; err != nil {
		return err
	}

	log.Println("Seeder: admin user created")
	return nil
}

// SeedSubjects creates the initial subject catalogue.
func (s *Seeder) SeedSubjects() error {
	var count int64
	if err := s.db.Model(&model.Subject{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	subjects := []model.Subject{
		{Name: "History of Architecture", Code: "ARC-101", Department: "Architecture", AcademicYear: model.FirstYear},
		{Name: "Design Basics", Code: "ARC-102", Department: "Architecture", AcademicYear: model.FirstYear},
		{Name: "Building Materials", Code: "ARC-103", Department: "Architecture", AcademicYear: model.FirstYear},
		{Name: "Climatology", Code: "ARC-201", Department: "Architecture", AcademicYear: model.SecondYear},
		{Name: "Urban Planning", Code: "ARC-301", Department: "Architecture", AcademicYear: model.ThirdYear},
	}
	if err := s.db.Create(&subjects).Error; err != nil {
		return err
	}

	log.Println("Seeder: subjects created")
	return nil
}

// SeedDemoAccounts creates one demo faculty and one demo student with an
// allocation connecting them, so a fresh install has something to click on.
func (s *Seeder) SeedDemoAccounts() error {
	var count int64
	if err := s.db.Model(&model.Faculty{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	facultyHash, err := auth.HashPassword("faculty123")
	if err != nil {
		return err
	}
	studentHash, err := auth.HashPassword("student123")
	if err != nil {
		return err
	}

	joining := time.Date(2015, 6, 1, 0, 0, 0, 0, time.UTC)
	dob := time.Date(2004, 2, 17, 0, 0, 0, 0, time.UTC)

	return s.db.Transaction(func(tx *gorm.DB) error {
		facultyUser := model.User{
			Email:        "faculty@campus.edu",
			PasswordHash: facultyHash,
			Role:         model.RoleFaculty,
			IsActive:     true,
		}
		if err := tx.Create(&facultyUser).Error; err != nil {
			return err
		}

		faculty := model.Faculty{
			ID:            facultyUser.ID,
			FirstName:     "Alice",
			LastName:      "Johnson",
			Designation:   "Senior Professor",
			Department:    "Architecture",
			Qualification: "M.Arch",
			PhoneNumber:   "9876543210",
			JoiningDate:   &joining,
		}
		if err := tx.Create(&faculty).Error; err != nil {
			return err
		}

		studentUser := model.User{
			Email:        "student@campus.edu",
			PasswordHash: studentHash,
			Role:         model.RoleStudent,
			IsActive:     true,
		}
		if err := tx.Create(&studentUser).Error; err != nil {
			return err
		}

		student := model.Student{
			ID:           studentUser.ID,
			PRN:          "ARC2024001",
			FirstName:    "Rohan",
			LastName:     "Deshmukh",
			DOB:          &dob,
			Department:   "Architecture",
			AcademicYear: model.FirstYear,
		}
		if err := tx.Create(&student).Error; err != nil {
			return err
		}

		var subject model.Subject
		if err := tx.Where("code = ?", "ARC-101").First(&subject).Error; err != nil {
			return err
		}

		allocation := model.SubjectAllocation{
			FacultyID: faculty.ID,
			SubjectID: subject.ID,
		}
		if err := tx.Create(&allocation).Error; err != nil {
			return err
		}

		fee := model.FeeRecord{
			StudentID: student.ID,
			TotalFee:  150000,
		}
		if err := tx.Create(&fee).Error; err != nil {
			return err
		}

		log.Println("Seeder: demo faculty and student created")
		return nil
	})
}
