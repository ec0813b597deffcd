package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stemsi/schoolhealth-backend/internal/model"
)

var sampleStudents = []model.StudentHealthRecord{
	{ID: 1, Name: "Nguyễn Văn A", ParentID: "3"},
	{ID: 2, Name: "Trần Thị B", ParentID: "5"},
	{ID: 3, Name: "Lê Văn C", ParentID: "3"},
}

func studentIDs(records []model.StudentHealthRecord) []int {
	ids := make([]int, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestFilterVisible(t *testing.T) {
	tests := []struct {
		name     string
		identity *model.Identity
		want     []int
	}{
		{"unauthenticated", nil, []int{}},
		{"admin sees all", &model.Identity{ID: "1", Role: model.RoleAdmin}, []int{1, 2, 3}},
		{"medical staff sees all", &model.Identity{ID: "2", Role: model.RoleMedicalStaff}, []int{1, 2, 3}},
		{"parent sees own children", &model.Identity{ID: "3", Role: model.RoleParent}, []int{1, 3}},
		{"other parent", &model.Identity{ID: "5", Role: model.RoleParent}, []int{2}},
		{"teacher sees none", &model.Identity{ID: "4", Role: model.RoleTeacher}, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterVisible(tt.identity, sampleStudents,
				model.PermissionManageHealthRecords, model.PermissionViewOwnChildHealth)
			assert.Equal(t, tt.want, studentIDs(got))
		})
	}
}

func TestCanViewRecord(t *testing.T) {
	parent := &model.Identity{ID: "3", Role: model.RoleParent}
	teacher := &model.Identity{ID: "3", Role: model.RoleTeacher}
	staff := &model.Identity{ID: "2", Role: model.RoleMedicalStaff}

	own := model.MedicineRequest{ID: 1, ParentID: "3"}
	other := model.MedicineRequest{ID: 2, ParentID: "5"}

	assert.True(t, CanViewRecord(parent, own, model.PermissionApproveMedicines, model.PermissionSubmitMedicineRequest))
	assert.False(t, CanViewRecord(parent, other, model.PermissionApproveMedicines, model.PermissionSubmitMedicineRequest))
	// Matching id is not enough without the owner permission.
	assert.False(t, CanViewRecord(teacher, own, model.PermissionApproveMedicines, model.PermissionSubmitMedicineRequest))
	assert.True(t, CanViewRecord(staff, other, model.PermissionApproveMedicines, model.PermissionSubmitMedicineRequest))
	assert.False(t, CanViewRecord(nil, own, model.PermissionApproveMedicines, model.PermissionSubmitMedicineRequest))
}
