package importer

import (
	"fmt"
	"strconv"
	"strings"
)

// StudentRecord is a normalized student import row.
type StudentRecord struct {
	Name       string
	StudentID  string
	Email      string
	Course     string
	Sexo       string
	RendaMedia float64
	Raca       string
}

// GradeRecord is a normalized grade import row.
type GradeRecord struct {
	StudentID      string
	Subject        string
	AssessmentType string
	AssessmentName string
	Grade          float64
	MaxGrade       float64
	DateAssigned   string
}

// Defaults applied when optional grade columns are absent.
const (
	DefaultAssessmentType = "Prova"
	DefaultAssessmentName = "Avaliação"
	DefaultMaxGrade       = 10
)

// NormalizeStudents maps raw rows onto StudentRecords. Rows missing the
// mandatory name or registration number are dropped but counted. When no
// row survives, ErrNoValidRecords is returned naming the missing columns.
func NormalizeStudents(sheet *Sheet) ([]StudentRecord, int, error) {
	var valid []StudentRecord
	dropped := 0

	for _, row := range sheet.Rows {
		fields := lowerKeyed(row)
		record := StudentRecord{
			Name:       pickField(fields, nameSynonyms),
			StudentID:  pickField(fields, studentIDSynonyms),
			Email:      pickField(fields, emailSynonyms),
			Course:     pickField(fields, courseSynonyms),
			Sexo:       pickField(fields, sexoSynonyms),
			RendaMedia: parseDecimal(pickField(fields, rendaSynonyms), 0),
			Raca:       pickField(fields, racaSynonyms),
		}

		if record.Name == "" || record.StudentID == "" {
			dropped++
			continue
		}
		valid = append(valid, record)
	}

	if len(valid) == 0 {
		return nil, dropped, fmt.Errorf("%w: student rows need the name (nome) and registration (matricula) columns filled in", ErrNoValidRecords)
	}
	return valid, dropped, nil
}

// NormalizeGrades maps raw rows onto GradeRecords. Rows missing the
// mandatory registration number, subject or grade are dropped but counted.
func NormalizeGrades(sheet *Sheet) ([]GradeRecord, int, error) {
	var valid []GradeRecord
	dropped := 0

	for _, row := range sheet.Rows {
		fields := lowerKeyed(row)
		record := GradeRecord{
			StudentID:      pickField(fields, studentIDSynonyms),
			Subject:        pickField(fields, subjectSynonyms),
			AssessmentType: pickField(fields, assessmentTypeSynonyms),
			AssessmentName: pickField(fields, assessmentNameSynonyms),
			Grade:          parseDecimal(pickField(fields, gradeSynonyms), 0),
			MaxGrade:       parseDecimal(pickField(fields, maxGradeSynonyms), DefaultMaxGrade),
			DateAssigned:   pickField(fields, dateSynonyms),
		}

		if record.AssessmentType == "" {
			record.AssessmentType = DefaultAssessmentType
		}
		if record.AssessmentName == "" {
			record.AssessmentName = DefaultAssessmentName
		}

		rawGrade := pickField(fields, gradeSynonyms)
		if record.StudentID == "" || record.Subject == "" || rawGrade == "" {
			dropped++
			continue
		}
		valid = append(valid, record)
	}

	if len(valid) == 0 {
		return nil, dropped, fmt.Errorf("%w: grade rows need the registration (matricula), subject (disciplina) and grade (nota) columns filled in", ErrNoValidRecords)
	}
	return valid, dropped, nil
}

// lowerKeyed re-keys a row by lower-cased, trimmed header names so synonym
// probing is case-insensitive.
func lowerKeyed(row Row) map[string]string {
	fields := make(map[string]string, len(row))
	for k, v := range row {
		key := strings.ToLower(strings.TrimSpace(k))
		if _, exists := fields[key]; exists && strings.TrimSpace(v) == "" {
			continue
		}
		fields[key] = strings.TrimSpace(v)
	}
	return fields
}

// pickField probes the synonym list in order and returns the first present,
// non-empty value.
func pickField(fields map[string]string, synonyms []string) string {
	for _, key := range synonyms {
		if v, ok := fields[key]; ok && v != "" {
			return v
		}
	}
	return ""
}

// parseDecimal parses a numeric cell accepting both comma and dot as the
// decimal separator. Unparsable or absent values yield the fallback.
func parseDecimal(s string, fallback float64) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fallback
	}
	return v
}
