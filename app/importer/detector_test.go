package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		want    DataType
	}{
		{"name only", []string{"name", "email"}, TypeStudents},
		{"registration only", []string{"student_id", "course"}, TypeStudents},
		{"portuguese student headers", []string{"nome", "matrícula", "curso"}, TypeStudents},
		{"full student sheet", []string{"nome", "matricula", "email", "curso", "sexo", "renda_media", "raca"}, TypeStudents},
		{"grade sheet", []string{"student_id", "subject", "grade"}, TypeGrades},
		{"portuguese grade headers", []string{"matricula", "disciplina", "nota"}, TypeGrades},
		{"grade wins over student rule", []string{"nome", "matricula", "disciplina", "nota"}, TypeGrades},
		{"grade without subject", []string{"matricula", "nota"}, TypeUnrecognized},
		{"grade without registration", []string{"disciplina", "nota"}, TypeUnrecognized},
		{"unrelated headers", []string{"foo", "bar"}, TypeUnrecognized},
		{"no headers", nil, TypeUnrecognized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Detect(&Sheet{Headers: tt.headers})
			assert.Equal(t, tt.want, d.Type)
			assert.Equal(t, tt.headers, d.Columns)
			assert.NotEmpty(t, d.Details)
		})
	}
}

func TestDetectIsCaseInsensitive(t *testing.T) {
	d := Detect(&Sheet{Headers: []string{"Nome", " MATRICULA "}})
	assert.Equal(t, TypeStudents, d.Type)
}

func TestDetectIgnoresRowValues(t *testing.T) {
	// Classification depends on headers alone.
	sheet := &Sheet{
		Headers: []string{"foo"},
		Rows:    []Row{{"foo": "nota"}},
	}
	assert.Equal(t, TypeUnrecognized, Detect(sheet).Type)
}
