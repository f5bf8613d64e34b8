package courses

import "time"

// CurrentSemester returns which semester a course is in today, assuming
// six-month semesters counted from the start date and capped at the
// course's total. Returns 0 when no start date is set.
func CurrentSemester(startDate *time.Time, totalSemesters int, now time.Time) int {
	if startDate == nil || totalSemesters <= 0 {
		return 0
	}

	monthsDiff := (now.Year()-startDate.Year())*12 + int(now.Month()) - int(startDate.Month())
	if monthsDiff < 0 {
		return 1
	}

	semestersPassed := monthsDiff/6 + 1
	if semestersPassed > totalSemesters {
		return totalSemesters
	}
	return semestersPassed
}
