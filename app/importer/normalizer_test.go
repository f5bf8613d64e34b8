package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeStudents(t *testing.T) {
	sheet := &Sheet{
		Headers: []string{"nome", "matricula", "e-mail", "curso", "renda média"},
		Rows: []Row{
			{"nome": "João Silva", "matricula": "2021001", "e-mail": "joao@uni.br", "curso": "Engenharia", "renda média": "1500,50"},
			{"nome": "Maria Souza", "matricula": "2021002", "curso": "Direito"},
		},
	}

	records, dropped, err := NormalizeStudents(sheet)
	require.NoError(t, err)
	assert.Equal(t, 0, dropped)
	require.Len(t, records, 2)

	assert.Equal(t, "João Silva", records[0].Name)
	assert.Equal(t, "2021001", records[0].StudentID)
	assert.Equal(t, "joao@uni.br", records[0].Email)
	assert.Equal(t, "Engenharia", records[0].Course)
	assert.Equal(t, 1500.50, records[0].RendaMedia)

	assert.Equal(t, "", records[1].Email)
	assert.Equal(t, 0.0, records[1].RendaMedia)
}

func TestNormalizeStudentsDropsIncompleteRows(t *testing.T) {
	sheet := &Sheet{
		Headers: []string{"nome", "matricula"},
		Rows: []Row{
			{"nome": "João", "matricula": "2021001"},
			{"nome": "", "matricula": "2021002"},
			{"nome": "Maria", "matricula": ""},
		},
	}

	records, dropped, err := NormalizeStudents(sheet)
	require.NoError(t, err)
	assert.Equal(t, 2, dropped)
	require.Len(t, records, 1)
	assert.Equal(t, "João", records[0].Name)
}

func TestNormalizeStudentsNoValidRows(t *testing.T) {
	sheet := &Sheet{
		Headers: []string{"nome"},
		Rows:    []Row{{"nome": "João"}}, // no registration column at all
	}

	_, dropped, err := NormalizeStudents(sheet)
	assert.ErrorIs(t, err, ErrNoValidRecords)
	assert.Equal(t, 1, dropped)
	assert.Contains(t, err.Error(), "matricula")
}

func TestNormalizeStudentsSynonymPrecedence(t *testing.T) {
	// "name" comes before "nome" in the synonym list; the first non-empty
	// value wins.
	sheet := &Sheet{
		Headers: []string{"name", "nome", "student_id"},
		Rows: []Row{
			{"name": "John", "nome": "João", "student_id": "1"},
			{"name": "", "nome": "Maria", "student_id": "2"},
		},
	}

	records, _, err := NormalizeStudents(sheet)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "John", records[0].Name)
	assert.Equal(t, "Maria", records[1].Name)
}

func TestNormalizeGrades(t *testing.T) {
	sheet := &Sheet{
		Headers: []string{"matricula", "disciplina", "nota", "tipo", "avaliação", "nota_maxima", "data"},
		Rows: []Row{
			{"matricula": "2021001", "disciplina": "Cálculo I", "nota": "7,5", "tipo": "Trabalho", "avaliação": "T1", "nota_maxima": "10", "data": "2026-03-15"},
			{"matricula": "2021002", "disciplina": "Cálculo I", "nota": "8.25"},
		},
	}

	records, dropped, err := NormalizeGrades(sheet)
	require.NoError(t, err)
	assert.Equal(t, 0, dropped)
	require.Len(t, records, 2)

	assert.Equal(t, 7.5, records[0].Grade)
	assert.Equal(t, "Trabalho", records[0].AssessmentType)
	assert.Equal(t, "T1", records[0].AssessmentName)
	assert.Equal(t, "2026-03-15", records[0].DateAssigned)

	// Defaults fill the absent optional columns.
	assert.Equal(t, 8.25, records[1].Grade)
	assert.Equal(t, DefaultAssessmentType, records[1].AssessmentType)
	assert.Equal(t, DefaultAssessmentName, records[1].AssessmentName)
	assert.Equal(t, float64(DefaultMaxGrade), records[1].MaxGrade)
}

func TestNormalizeGradesDropsIncompleteRows(t *testing.T) {
	sheet := &Sheet{
		Headers: []string{"matricula", "disciplina", "nota"},
		Rows: []Row{
			{"matricula": "2021001", "disciplina": "Cálculo I", "nota": "7"},
			{"matricula": "", "disciplina": "Cálculo I", "nota": "7"},
			{"matricula": "2021002", "disciplina": "", "nota": "7"},
			{"matricula": "2021003", "disciplina": "Cálculo I", "nota": ""},
		},
	}

	records, dropped, err := NormalizeGrades(sheet)
	require.NoError(t, err)
	assert.Equal(t, 3, dropped)
	require.Len(t, records, 1)
}

func TestNormalizeGradesNoValidRows(t *testing.T) {
	sheet := &Sheet{
		Headers: []string{"matricula", "disciplina", "nota"},
		Rows:    []Row{{"matricula": "2021001", "disciplina": "Cálculo I", "nota": ""}},
	}

	_, _, err := NormalizeGrades(sheet)
	assert.ErrorIs(t, err, ErrNoValidRecords)
}

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		in       string
		fallback float64
		want     float64
	}{
		{"7,5", 0, 7.5},
		{"7.5", 0, 7.5},
		{"10", 0, 10},
		{" 8,25 ", 0, 8.25},
		{"", 10, 10},
		{"abc", 10, 10},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, parseDecimal(tt.in, tt.fallback), "parseDecimal(%q)", tt.in)
	}
}
