package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brunapfe/SIGA/app/models"
)

func studentRefs() *StudentRefs {
	email := "joao@uni.br"
	return &StudentRefs{
		Courses: map[string]string{
			"engenharia": "course-eng",
			"direito":    "course-dir",
		},
		Existing: map[string]*models.Student{
			"2021001": {
				ID:        "stu-1",
				Name:      "João Silva",
				StudentID: "2021001",
				Email:     &email,
				CourseID:  "course-eng",
			},
		},
	}
}

func TestPlanStudentsInsertsNewRecords(t *testing.T) {
	records := []StudentRecord{
		{Name: "Maria Souza", StudentID: "2021002", Course: "Direito", Email: "maria@uni.br"},
	}

	plan := PlanStudents(records, studentRefs())

	require.Len(t, plan.Inserts, 1)
	assert.Empty(t, plan.Updates)
	assert.Empty(t, plan.Warnings)
	assert.Equal(t, "course-dir", plan.Inserts[0].CourseID)
	assert.Equal(t, "maria@uni.br", *plan.Inserts[0].Email)
}

func TestPlanStudentsIdenticalRecordIsNoOp(t *testing.T) {
	records := []StudentRecord{
		{Name: "João Silva", StudentID: "2021001", Course: "Engenharia", Email: "joao@uni.br"},
	}

	plan := PlanStudents(records, studentRefs())

	assert.Empty(t, plan.Inserts)
	assert.Empty(t, plan.Updates)
	assert.Empty(t, plan.Warnings)
}

func TestPlanStudentsUpdatesChangedEmail(t *testing.T) {
	records := []StudentRecord{
		{Name: "João Silva", StudentID: "2021001", Course: "Engenharia", Email: "novo@uni.br"},
	}

	plan := PlanStudents(records, studentRefs())

	assert.Empty(t, plan.Inserts)
	require.Len(t, plan.Updates, 1)
	assert.Equal(t, "stu-1", plan.Updates[0].ID)
	assert.Equal(t, "novo@uni.br", *plan.Updates[0].Email)
}

func TestPlanStudentsEmptyOptionalFieldDoesNotClear(t *testing.T) {
	// A blank cell in the sheet leaves the stored value alone.
	records := []StudentRecord{
		{Name: "João Silva", StudentID: "2021001", Course: "Engenharia", Email: ""},
	}

	plan := PlanStudents(records, studentRefs())
	assert.Empty(t, plan.Updates)
}

func TestPlanStudentsUnresolvedCourseWarns(t *testing.T) {
	records := []StudentRecord{
		{Name: "Pedro Lima", StudentID: "2021003", Course: "Medicina"},
	}

	plan := PlanStudents(records, studentRefs())

	assert.Empty(t, plan.Inserts)
	require.Len(t, plan.Warnings, 1)
	assert.Contains(t, plan.Warnings[0], "Medicina")
}

func TestPlanStudentsEmptyCourseWarns(t *testing.T) {
	records := []StudentRecord{
		{Name: "Ana Costa", StudentID: "2021004", Course: ""},
	}

	plan := PlanStudents(records, studentRefs())

	assert.Empty(t, plan.Inserts)
	require.Len(t, plan.Warnings, 1)
	assert.Contains(t, plan.Warnings[0], "course column is empty")
	assert.Contains(t, plan.Warnings[0], "2021004")
}

func TestMissingCourses(t *testing.T) {
	records := []StudentRecord{
		{StudentID: "1", Course: "Medicina"},
		{StudentID: "2", Course: "Engenharia"}, // already known
		{StudentID: "3", Course: "medicina"},   // duplicate, case-insensitive
		{StudentID: "4", Course: "Arquitetura"},
		{StudentID: "5", Course: ""},
	}
	courses := map[string]string{"engenharia": "course-eng"}

	missing := MissingCourses(records, courses)
	assert.Equal(t, []string{"Medicina", "Arquitetura"}, missing)
}

func gradeRefs() *GradeRefs {
	date := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	existing := &models.Grade{
		ID:             "grade-1",
		StudentID:      "stu-1",
		SubjectID:      "subj-calc",
		AssessmentType: "Prova",
		AssessmentName: "P1",
		Grade:          7.5,
		MaxGrade:       10,
		DateAssigned:   &date,
	}
	return &GradeRefs{
		Students: map[string]*models.Student{
			"2021001": {ID: "stu-1", StudentID: "2021001", Name: "João Silva"},
		},
		Subjects: map[string]string{"cálculo i": "subj-calc"},
		Existing: map[GradeKey]*models.Grade{keyForGrade(existing): existing},
	}
}

func TestPlanGradesInsertsNewGrade(t *testing.T) {
	records := []GradeRecord{
		{StudentID: "2021001", Subject: "Cálculo I", AssessmentType: "Prova", AssessmentName: "P2", Grade: 6, MaxGrade: 10, DateAssigned: "2026-04-20"},
	}

	plan := PlanGrades(records, gradeRefs(), time.Now())

	require.Len(t, plan.Inserts, 1)
	assert.Empty(t, plan.Updates)
	assert.Equal(t, "stu-1", plan.Inserts[0].StudentID)
	assert.Equal(t, "subj-calc", plan.Inserts[0].SubjectID)
	assert.Equal(t, "2026-04-20", plan.Inserts[0].DateAssigned.Format("2006-01-02"))
}

func TestPlanGradesIdenticalTupleIsNoOp(t *testing.T) {
	records := []GradeRecord{
		{StudentID: "2021001", Subject: "Cálculo I", AssessmentType: "Prova", AssessmentName: "P1", Grade: 7.5, MaxGrade: 10, DateAssigned: "2026-03-15"},
	}

	plan := PlanGrades(records, gradeRefs(), time.Now())

	assert.Empty(t, plan.Inserts)
	assert.Empty(t, plan.Updates)
}

func TestPlanGradesChangedValueBecomesUpdate(t *testing.T) {
	records := []GradeRecord{
		{StudentID: "2021001", Subject: "Cálculo I", AssessmentType: "Prova", AssessmentName: "P1", Grade: 9, MaxGrade: 10, DateAssigned: "2026-03-15"},
	}

	plan := PlanGrades(records, gradeRefs(), time.Now())

	assert.Empty(t, plan.Inserts)
	require.Len(t, plan.Updates, 1)
	assert.Equal(t, "grade-1", plan.Updates[0].ID)
	assert.Equal(t, 9.0, plan.Updates[0].Grade)
}

func TestPlanGradesDeduplicatesWithinUpload(t *testing.T) {
	record := GradeRecord{
		StudentID: "2021001", Subject: "Cálculo I", AssessmentType: "Prova",
		AssessmentName: "P3", Grade: 5, MaxGrade: 10, DateAssigned: "2026-05-10",
	}

	plan := PlanGrades([]GradeRecord{record, record}, gradeRefs(), time.Now())
	assert.Len(t, plan.Inserts, 1)
}

func TestPlanGradesUnknownReferencesWarn(t *testing.T) {
	records := []GradeRecord{
		{StudentID: "9999999", Subject: "Cálculo I", Grade: 7},
		{StudentID: "2021001", Subject: "Física II", Grade: 7},
	}

	plan := PlanGrades(records, gradeRefs(), time.Now())

	assert.Empty(t, plan.Inserts)
	require.Len(t, plan.Warnings, 2)
	assert.Contains(t, plan.Warnings[0], "9999999")
	assert.Contains(t, plan.Warnings[1], "Física II")
}

func TestParseDate(t *testing.T) {
	now := time.Date(2026, 8, 29, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		in   string
		want string
	}{
		{"2026-03-15", "2026-03-15"},
		{"15/03/2026", "2026-03-15"},
		{"15-03-2026", "2026-03-15"},
		{"", "2026-08-29"},
		{"not a date", "2026-08-29"},
	}

	for _, tt := range tests {
		got := parseDate(tt.in, now)
		assert.Equal(t, tt.want, got.Format("2006-01-02"), "parseDate(%q)", tt.in)
	}
}
