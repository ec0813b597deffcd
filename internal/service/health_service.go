package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/schoolhealth-backend/internal/access"
	"github.com/stemsi/schoolhealth-backend/internal/model"
	"github.com/stemsi/schoolhealth-backend/internal/repository"
)

// Health record errors.
var (
	ErrRecordNotFound  = errors.New("record not found")
	ErrNotRecordOwner  = errors.New("record belongs to another parent")
	ErrAlreadyReviewed = errors.New("medicine request already reviewed")
)

const submittedDateLayout = "02/01/2006"

// HealthService serves student health data filtered by what the caller may see.
type HealthService struct {
	repo *repository.HealthRepository
	log  zerolog.Logger
	now  func() time.Time
}

// NewHealthService creates a new HealthService.
func NewHealthService(repo *repository.HealthRepository, log zerolog.Logger) *HealthService {
	return &HealthService{
		repo: repo,
		log:  log.With().Str("component", "health_service").Logger(),
		now:  time.Now,
	}
}

// ListStudentHealth returns every record to health record managers and only
// their own children to parents.
func (s *HealthService) ListStudentHealth(ctx context.Context, identity *model.Identity) ([]model.StudentHealthRecord, error) {
	records, err := s.repo.ListStudents(ctx)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return access.FilterVisible(identity, records, model.PermissionManageHealthRecords, model.PermissionViewOwnChildHealth), nil
}

// ListMedicineRequests returns every request to approvers and only their own
// requests to parents.
func (s *HealthService) ListMedicineRequests(ctx context.Context, identity *model.Identity) ([]model.MedicineRequest, error) {
	requests, err := s.repo.ListMedicineRequests(ctx)
	if err != nil {
		return nil, fmt.Errorf("list medicine requests: %w", err)
	}
	return access.FilterVisible(identity, requests, model.PermissionApproveMedicines, model.PermissionSubmitMedicineRequest), nil
}

// SubmitMedicineRequest files a pending request for one of the caller's children.
func (s *HealthService) SubmitMedicineRequest(ctx context.Context, identity *model.Identity, in model.SubmitMedicineRequest) (*model.MedicineRequest, error) {
	student, err := s.repo.GetStudent(ctx, in.StudentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	if student.OwnerID() != identity.ID {
		return nil, ErrNotRecordOwner
	}

	req := &model.MedicineRequest{
		StudentName:   student.Name,
		Class:         student.Class,
		ParentID:      identity.ID,
		MedicineName:  in.MedicineName,
		Dosage:        in.Dosage,
		Frequency:     in.Frequency,
		Duration:      in.Duration,
		ParentNote:    in.ParentNote,
		SubmittedDate: s.now().Format(submittedDateLayout),
		Status:        model.MedicineRequestPending,
	}
	if err := s.repo.CreateMedicineRequest(ctx, req); err != nil {
		return nil, fmt.Errorf("create medicine request: %w", err)
	}

	s.log.Info().
		Int("request_id", req.ID).
		Int("student_id", student.ID).
		Str("parent_id", identity.ID).
		Msg("Medicine request submitted")
	return req, nil
}

// ReviewMedicineRequest moves a pending request to approved or rejected.
func (s *HealthService) ReviewMedicineRequest(ctx context.Context, identity *model.Identity, id int, status model.MedicineRequestStatus) (*model.MedicineRequest, error) {
	updated, err := s.repo.UpdateMedicineStatus(ctx, id, status)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, ErrRecordNotFound
	case errors.Is(err, repository.ErrNotPending):
		return nil, ErrAlreadyReviewed
	case err != nil:
		return nil, fmt.Errorf("update medicine request: %w", err)
	}

	s.log.Info().
		Int("request_id", id).
		Str("status", string(status)).
		Str("reviewer_id", identity.ID).
		Msg("Medicine request reviewed")
	return updated, nil
}
