package model

// StudentHealthRecord is a student's health profile, attributed to a parent.
type StudentHealthRecord struct {
	ID              int      `json:"id"`
	Name            string   `json:"name"`
	Class           string   `json:"class"`
	DateOfBirth     string   `json:"date_of_birth"`
	ParentID        string   `json:"parent_id"`
	Allergies       []string `json:"allergies"`
	ChronicDiseases []string `json:"chronic_diseases"`
	Medications     []string `json:"medications"`
	Vision          string   `json:"vision"`
	Hearing         string   `json:"hearing"`
	LastCheckup     string   `json:"last_checkup"`
}

// OwnerID returns the parent the record is attributed to.
func (s StudentHealthRecord) OwnerID() string { return s.ParentID }

// MedicineRequestStatus is the review state of a medicine request.
type MedicineRequestStatus string

const (
	MedicineRequestPending  MedicineRequestStatus = "pending"
	MedicineRequestApproved MedicineRequestStatus = "approved"
	MedicineRequestRejected MedicineRequestStatus = "rejected"
)

// MedicineRequest is medicine a parent asks school staff to administer.
type MedicineRequest struct {
	ID            int                   `json:"id"`
	StudentName   string                `json:"student_name"`
	Class         string                `json:"class"`
	ParentID      string                `json:"parent_id"`
	MedicineName  string                `json:"medicine_name"`
	Dosage        string                `json:"dosage"`
	Frequency     string                `json:"frequency"`
	Duration      string                `json:"duration"`
	ParentNote    string                `json:"parent_note"`
	SubmittedDate string                `json:"submitted_date"`
	Status        MedicineRequestStatus `json:"status"`
}

// OwnerID returns the parent who submitted the request.
func (m MedicineRequest) OwnerID() string { return m.ParentID }

// SubmitMedicineRequest is the payload a parent sends for one of their children.
type SubmitMedicineRequest struct {
	StudentID    int    `json:"student_id" binding:"required,gt=0"`
	MedicineName string `json:"medicine_name" binding:"required,max=100"`
	Dosage       string `json:"dosage" binding:"required,max=50"`
	Frequency    string `json:"frequency" binding:"required,max=50"`
	Duration     string `json:"duration" binding:"required,max=50"`
	ParentNote   string `json:"parent_note" binding:"max=500"`
}

// ReviewMedicineRequest approves or rejects a pending medicine request.
type ReviewMedicineRequest struct {
	Status MedicineRequestStatus `json:"status" binding:"required,oneof=approved rejected"`
}
