package models

// DashboardStats aggregates grade data for the professor dashboard.
type DashboardStats struct {
	TotalStudents        int                  `json:"total_students"`
	TotalSubjects        int                  `json:"total_subjects"`
	AverageGrade         float64              `json:"average_grade"`
	GradeDistribution    []GradeBucket        `json:"grade_distribution"`
	PerformanceBySubject []SubjectPerformance `json:"performance_by_subject"`
	GradesTrend          []AssessmentAverage  `json:"grades_trend"`
}

// GradeBucket is one bar of the grade distribution chart, e.g. "6-8".
type GradeBucket struct {
	Range string `json:"range"`
	Count int    `json:"count"`
}

type SubjectPerformance struct {
	Name     string  `json:"name"`
	Average  float64 `json:"average"`
	Students int     `json:"students"`
}

type AssessmentAverage struct {
	Assessment string  `json:"assessment"`
	Average    float64 `json:"average"`
}

// ImportSummary is the only artifact an import commit surfaces to the caller.
type ImportSummary struct {
	Inserted int      `json:"inserted"`
	Updated  int      `json:"updated"`
	Warnings []string `json:"warnings"`
	Total    int      `json:"total"`
}
