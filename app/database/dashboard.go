package database

import (
	"database/sql"
	"math"

	"github.com/brunapfe/SIGA/app/models"
)

// gradePoint is one grade row joined with its subject, used for aggregation.
type gradePoint struct {
	SubjectID      string
	SubjectName    string
	AssessmentName string
	StudentID      string
	Grade          float64
}

// GetDashboardStats aggregates grades for the professor's subjects. When
// subjectID is non-empty the aggregation is restricted to that subject.
func GetDashboardStats(db *sql.DB, professorID, subjectID string) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{
		GradeDistribution:    []models.GradeBucket{},
		PerformanceBySubject: []models.SubjectPerformance{},
		GradesTrend:          []models.AssessmentAverage{},
	}

	// 1. Total students
	err := db.QueryRow(`SELECT COUNT(*) FROM students`).Scan(&stats.TotalStudents)
	if err != nil {
		return nil, err
	}

	// 2. Total subjects for this professor
	if subjectID != "" {
		stats.TotalSubjects = 1
	} else {
		err = db.QueryRow(`SELECT COUNT(*) FROM subjects WHERE professor_id = $1`, professorID).Scan(&stats.TotalSubjects)
		if err != nil {
			return nil, err
		}
	}

	// 3. Grades joined with subjects, aggregated in Go
	points, err := fetchGradePoints(db, professorID, subjectID)
	if err != nil {
		return nil, err
	}

	if len(points) == 0 {
		return stats, nil
	}

	var sum float64
	for _, p := range points {
		sum += p.Grade
	}
	stats.AverageGrade = round2(sum / float64(len(points)))

	stats.GradeDistribution = distribution(points)
	stats.PerformanceBySubject = performanceBySubject(points)
	stats.GradesTrend = gradesTrend(points)

	return stats, nil
}

func fetchGradePoints(db *sql.DB, professorID, subjectID string) ([]gradePoint, error) {
	query := `
		SELECT g.subject_id, s.name, g.assessment_name, g.student_id, g.grade
		FROM grades g
		JOIN subjects s ON s.id = g.subject_id
		WHERE s.professor_id = $1
	`
	args := []interface{}{professorID}
	if subjectID != "" {
		query += ` AND g.subject_id = $2`
		args = append(args, subjectID)
	}
	query += ` ORDER BY g.date_assigned NULLS LAST, g.created_at`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []gradePoint
	for rows.Next() {
		var p gradePoint
		if err := rows.Scan(&p.SubjectID, &p.SubjectName, &p.AssessmentName, &p.StudentID, &p.Grade); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

// distribution buckets grades into five fixed ranges on a 0-10 scale.
func distribution(points []gradePoint) []models.GradeBucket {
	bounds := []struct {
		label    string
		min, max float64
	}{
		{"0-2", 0, 2},
		{"2-4", 2, 4},
		{"4-6", 4, 6},
		{"6-8", 6, 8},
		{"8-10", 8, 10.01},
	}

	buckets := make([]models.GradeBucket, len(bounds))
	for i, b := range bounds {
		count := 0
		for _, p := range points {
			if p.Grade >= b.min && p.Grade < b.max {
				count++
			}
		}
		buckets[i] = models.GradeBucket{Range: b.label, Count: count}
	}
	return buckets
}

func performanceBySubject(points []gradePoint) []models.SubjectPerformance {
	type agg struct {
		name     string
		sum      float64
		count    int
		students map[string]struct{}
	}

	bySubject := make(map[string]*agg)
	var order []string
	for _, p := range points {
		a, ok := bySubject[p.SubjectID]
		if !ok {
			a = &agg{name: p.SubjectName, students: make(map[string]struct{})}
			bySubject[p.SubjectID] = a
			order = append(order, p.SubjectID)
		}
		a.sum += p.Grade
		a.count++
		a.students[p.StudentID] = struct{}{}
	}

	result := make([]models.SubjectPerformance, 0, len(order))
	for _, id := range order {
		a := bySubject[id]
		result = append(result, models.SubjectPerformance{
			Name:     a.name,
			Average:  round2(a.sum / float64(a.count)),
			Students: len(a.students),
		})
	}
	return result
}

func gradesTrend(points []gradePoint) []models.AssessmentAverage {
	type agg struct {
		sum   float64
		count int
	}

	byAssessment := make(map[string]*agg)
	var order []string
	for _, p := range points {
		name := p.AssessmentName
		if name == "" {
			name = "Avaliação"
		}
		a, ok := byAssessment[name]
		if !ok {
			a = &agg{}
			byAssessment[name] = a
			order = append(order, name)
		}
		a.sum += p.Grade
		a.count++
	}

	result := make([]models.AssessmentAverage, 0, len(order))
	for _, name := range order {
		a := byAssessment[name]
		result = append(result, models.AssessmentAverage{
			Assessment: name,
			Average:    round2(a.sum / float64(a.count)),
		})
	}
	return result
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
