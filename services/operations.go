package services

// Operation names as exposed to the HTTP layer and the query router
const (
	OpAddStudent             = "add_student"
	OpGetStudent             = "get_student"
	OpUpdateStudent          = "update_student"
	OpDeleteStudent          = "delete_student"
	OpListStudents           = "list_students"
	OpStudentActivity        = "get_student_activity"
	OpTotalStudents          = "get_total_students"
	OpStudentsByDepartment   = "get_students_by_department"
	OpRecentStudents         = "get_recent_onboarded_students"
	OpActiveStudentsLastWeek = "get_active_students_last_7_days"
	OpLibraryName            = "get_library_name"
	OpCafeteriaName          = "get_cafeteria_name"
	OpCafeteriaTimings       = "get_cafeteria_timings"
	OpLibraryHours           = "get_library_hours"
	OpLunchTiming            = "get_lunch_timing"
)
