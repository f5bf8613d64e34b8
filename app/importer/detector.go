package importer

import (
	"fmt"
	"strings"
)

// DataType classifies what an uploaded sheet contains.
type DataType string

const (
	TypeStudents     DataType = "students"
	TypeGrades       DataType = "grades"
	TypeUnrecognized DataType = "unrecognized"
)

// Synonym sets for the logical import fields, Portuguese and English.
// Detection and normalization share these; order matters for normalization
// (first present, non-empty value wins).
var (
	nameSynonyms      = []string{"name", "nome", "student_name", "nome_aluno"}
	studentIDSynonyms = []string{"student_id", "matricula", "matrícula", "id_aluno", "codigo_aluno"}
	emailSynonyms     = []string{"email", "e-mail", "student_email"}
	courseSynonyms    = []string{"course", "curso"}
	sexoSynonyms      = []string{"sexo", "sex", "gender", "genero", "gênero"}
	rendaSynonyms     = []string{"renda_media", "renda média", "renda media", "renda", "income"}
	racaSynonyms      = []string{"raca", "raça", "race", "cor"}

	gradeSynonyms          = []string{"grade", "nota", "score", "pontuacao", "pontuação"}
	subjectSynonyms        = []string{"subject", "disciplina", "subject_name", "subject_code", "materia", "matéria"}
	assessmentTypeSynonyms = []string{"assessment_type", "tipo", "tipo_avaliacao", "tipo_avaliação"}
	assessmentNameSynonyms = []string{"assessment_name", "avaliacao", "avaliação", "nome_avaliacao"}
	maxGradeSynonyms       = []string{"max_grade", "nota_maxima", "nota_máxima", "pontuacao_maxima"}
	dateSynonyms           = []string{"date_assigned", "data", "date", "data_avaliacao", "data_avaliação"}
)

// Detection is the result of classifying a sheet by its header set.
type Detection struct {
	Type    DataType `json:"type"`
	Columns []string `json:"columns"`
	Details string   `json:"details"`
}

// Detect classifies the sheet as student data, grade data or unrecognized.
// It is a pure function of the header set; row values are never inspected.
//
// Rules, in order:
//  1. (name OR student id) present AND no grade column -> students
//  2. grade AND student id AND subject present         -> grades
//  3. otherwise unrecognized, caller must force a type
func Detect(sheet *Sheet) Detection {
	normalized := make(map[string]bool, len(sheet.Headers))
	for _, h := range sheet.Headers {
		normalized[strings.ToLower(strings.TrimSpace(h))] = true
	}

	hasName := hasAny(normalized, nameSynonyms)
	hasID := hasAny(normalized, studentIDSynonyms)
	hasGrade := hasAny(normalized, gradeSynonyms)
	hasSubject := hasAny(normalized, subjectSynonyms)

	columns := strings.Join(sheet.Headers, ", ")

	switch {
	case (hasName || hasID) && !hasGrade:
		details := fmt.Sprintf("Detected as STUDENTS. Columns found: %s.", columns)
		switch {
		case hasName && hasID:
			details += " Name and registration number found."
		case hasName:
			details += " Name found (registration number optional)."
		default:
			details += " Registration number found (name optional)."
		}
		return Detection{Type: TypeStudents, Columns: sheet.Headers, Details: details}

	case hasGrade && hasID && hasSubject:
		details := fmt.Sprintf("Detected as GRADES. Columns found: %s. Grade, registration number and subject found.", columns)
		return Detection{Type: TypeGrades, Columns: sheet.Headers, Details: details}

	default:
		details := fmt.Sprintf(
			"Format not recognized automatically. Columns found: %s. "+
				"For STUDENTS: a name or registration column is required. "+
				"For GRADES: grade, registration and subject columns are required.",
			columns,
		)
		return Detection{Type: TypeUnrecognized, Columns: sheet.Headers, Details: details}
	}
}

func hasAny(headers map[string]bool, synonyms []string) bool {
	for _, s := range synonyms {
		if headers[s] {
			return true
		}
	}
	return false
}
