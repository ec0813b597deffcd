package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/stemsi/schoolhealth-backend/internal/model"
)

var (
	// ErrNotFound is returned when a record id does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrNotPending is returned when a medicine request was already reviewed.
	ErrNotPending = errors.New("medicine request not pending")
)

// HealthRepository keeps student health records and medicine requests in memory.
type HealthRepository struct {
	mu        sync.RWMutex
	students  []model.StudentHealthRecord
	medicines []model.MedicineRequest
	nextMedID int
}

// NewHealthRepository creates a repository holding the given records.
func NewHealthRepository(students []model.StudentHealthRecord, medicines []model.MedicineRequest) *HealthRepository {
	r := &HealthRepository{
		students:  append([]model.StudentHealthRecord(nil), students...),
		medicines: append([]model.MedicineRequest(nil), medicines...),
	}
	for _, m := range medicines {
		if m.ID > r.nextMedID {
			r.nextMedID = m.ID
		}
	}
	return r
}

// NewSampleHealthRepository creates a repository with the demo school data.
// Students 1 and 3 belong to parent 3; student 2 belongs to a parent without
// an account.
func NewSampleHealthRepository() *HealthRepository {
	return NewHealthRepository(sampleStudents(), sampleMedicineRequests())
}

func (r *HealthRepository) ListStudents(ctx context.Context) ([]model.StudentHealthRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.StudentHealthRecord, len(r.students))
	copy(out, r.students)
	return out, nil
}

func (r *HealthRepository) GetStudent(ctx context.Context, id int) (*model.StudentHealthRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.students {
		if s.ID == id {
			rec := s
			return &rec, nil
		}
	}
	return nil, ErrNotFound
}

func (r *HealthRepository) ListMedicineRequests(ctx context.Context) ([]model.MedicineRequest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.MedicineRequest, len(r.medicines))
	copy(out, r.medicines)
	return out, nil
}

// CreateMedicineRequest assigns the next id to req and stores it.
func (r *HealthRepository) CreateMedicineRequest(ctx context.Context, req *model.MedicineRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextMedID++
	req.ID = r.nextMedID
	r.medicines = append(r.medicines, *req)
	return nil
}

// UpdateMedicineStatus moves a pending request id to status and returns the
// updated request.
func (r *HealthRepository) UpdateMedicineStatus(ctx context.Context, id int, status model.MedicineRequestStatus) (*model.MedicineRequest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.medicines {
		if r.medicines[i].ID == id {
			if r.medicines[i].Status != model.MedicineRequestPending {
				return nil, ErrNotPending
			}
			r.medicines[i].Status = status
			updated := r.medicines[i]
			return &updated, nil
		}
	}
	return nil, ErrNotFound
}

func sampleStudents() []model.StudentHealthRecord {
	return []model.StudentHealthRecord{
		{
			ID: 1, Name: "Nguyễn Văn A", Class: "6A1", DateOfBirth: "15/03/2012", ParentID: "3",
			Allergies: []string{"Đậu phộng", "Sữa"}, ChronicDiseases: []string{"Hen suyễn"}, Medications: []string{"Ventolin"},
			Vision: "9/10", Hearing: "Bình thường", LastCheckup: "15/01/2025",
		},
		{
			ID: 2, Name: "Trần Thị B", Class: "7B2", DateOfBirth: "22/07/2011", ParentID: "5",
			Allergies: []string{}, ChronicDiseases: []string{}, Medications: []string{},
			Vision: "10/10", Hearing: "Bình thường", LastCheckup: "20/01/2025",
		},
		{
			ID: 3, Name: "Lê Văn C", Class: "6A1", DateOfBirth: "10/12/2012", ParentID: "3",
			Allergies: []string{"Tôm cua"}, ChronicDiseases: []string{}, Medications: []string{},
			Vision: "8/10", Hearing: "Bình thường", LastCheckup: "18/01/2025",
		},
	}
}

func sampleMedicineRequests() []model.MedicineRequest {
	return []model.MedicineRequest{
		{
			ID: 1, StudentName: "Nguyễn Văn A", Class: "6A1", ParentID: "3",
			MedicineName: "Ventolin", Dosage: "2 puff/lần", Frequency: "3 lần/ngày", Duration: "7 ngày",
			ParentNote: "Dùng khi khó thở", SubmittedDate: "25/05/2025", Status: model.MedicineRequestApproved,
		},
		{
			ID: 2, StudentName: "Trần Thị B", Class: "7B2", ParentID: "5",
			MedicineName: "Insulin", Dosage: "10 units", Frequency: "2 lần/ngày", Duration: "Dài hạn",
			ParentNote: "Trước bữa ăn sáng và tối", SubmittedDate: "28/05/2025", Status: model.MedicineRequestPending,
		},
		{
			ID: 3, StudentName: "Lê Văn C", Class: "6A1", ParentID: "3",
			MedicineName: "Cetirizine", Dosage: "5mg", Frequency: "1 lần/ngày", Duration: "14 ngày",
			ParentNote: "Uống khi dị ứng", SubmittedDate: "30/05/2025", Status: model.MedicineRequestApproved,
		},
	}
}
