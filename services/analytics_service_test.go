package services

import (
	"fmt"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/blogem/campus-admin/models"
)

func (suite *StudentServiceTestSuite) addStudents(n int, department func(i int) string) {
	for i := 1; i <= n; i++ {
		resp := suite.services.Students.AddStudent(suite.ctx, models.AddStudentRequest{
			Name:       fmt.Sprintf("Student %d", i),
			StudentID:  fmt.Sprintf("S-%03d", i),
			Department: department(i),
			Email:      fmt.Sprintf("s%d@x.com", i),
		})
		suite.Require().True(resp.Success, resp.Message)
		suite.clock.advance(time.Minute)
	}
}

// TestTotalStudents checks active + inactive == total
func (suite *StudentServiceTestSuite) TestTotalStudents() {
	suite.addStudents(5, func(int) string { return "Physics" })
	for _, id := range []string{"S-002", "S-004"} {
		resp := suite.services.Students.UpdateStudent(suite.ctx, models.UpdateStudentRequest{
			StudentID: id, Field: "is_active", NewValue: "no",
		})
		suite.Require().True(resp.Success)
	}

	resp := suite.services.Analytics.TotalStudents(suite.ctx)
	suite.Require().True(resp.Success)
	assert.Equal(suite.T(), "Student count retrieved successfully", resp.Message)
	assert.Equal(suite.T(), 5, resp.Data["total_students"])
	assert.Equal(suite.T(), 3, resp.Data["active_students"])
	assert.Equal(suite.T(), 2, resp.Data["inactive_students"])
}

// TestStudentsByDepartment groups by department
func (suite *StudentServiceTestSuite) TestStudentsByDepartment() {
	suite.addStudents(5, func(i int) string {
		if i%2 == 0 {
			return "mathematics"
		}
		return "physics"
	})

	resp := suite.services.Analytics.StudentsByDepartment(suite.ctx)
	suite.Require().True(resp.Success)
	assert.Equal(suite.T(), []models.DepartmentCount{
		{Department: "Mathematics", Count: 2},
		{Department: "Physics", Count: 3},
	}, resp.Data["departments"])
}

// TestRecentStudents checks ordering, limit and bounds
func (suite *StudentServiceTestSuite) TestRecentStudents() {
	suite.addStudents(4, func(int) string { return "Physics" })

	resp := suite.services.Analytics.RecentStudents(suite.ctx, 3)
	suite.Require().True(resp.Success)
	assert.Equal(suite.T(), 3, resp.Data["limit"])

	students := resp.Data["recent_students"].([]models.Student)
	suite.Require().Len(students, 3)
	assert.Equal(suite.T(), "S-004", students[0].StudentID)
	assert.Equal(suite.T(), "S-003", students[1].StudentID)
	assert.Equal(suite.T(), "S-002", students[2].StudentID)

	resp = suite.services.Analytics.RecentStudents(suite.ctx, models.DefaultRecentLimit)
	assert.Len(suite.T(), resp.Data["recent_students"], 4)

	for _, limit := range []int{0, -1, 101} {
		resp := suite.services.Analytics.RecentStudents(suite.ctx, limit)
		assert.False(suite.T(), resp.Success, "limit %d", limit)
		assert.Equal(suite.T(), models.FailureValidation, resp.Failure, "limit %d", limit)
	}

	for _, limit := range []int{1, 100} {
		resp := suite.services.Analytics.RecentStudents(suite.ctx, limit)
		assert.True(suite.T(), resp.Success, "limit %d", limit)
	}
}

// TestActiveStudentsLastWeek uses activity entries inside and outside the window
func (suite *StudentServiceTestSuite) TestActiveStudentsLastWeek() {
	// S-001 and S-002 are created ten days before "now"
	suite.addStudents(2, func(int) string { return "Physics" })
	suite.clock.advance(10 * 24 * time.Hour)

	// S-002 gets touched today, S-003 is created today, S-004 created and deleted today
	resp := suite.services.Students.UpdateStudent(suite.ctx, models.UpdateStudentRequest{
		StudentID: "S-002", Field: "name", NewValue: "renamed student",
	})
	suite.Require().True(resp.Success)

	suite.Require().True(suite.services.Students.AddStudent(suite.ctx, models.AddStudentRequest{
		Name: "Student 3", StudentID: "S-003", Department: "Physics", Email: "s3@x.com",
	}).Success)
	suite.Require().True(suite.services.Students.AddStudent(suite.ctx, models.AddStudentRequest{
		Name: "Student 4", StudentID: "S-004", Department: "Physics", Email: "s4@x.com",
	}).Success)
	suite.Require().True(suite.services.Students.DeleteStudent(suite.ctx, "S-004").Success)

	resp = suite.services.Analytics.ActiveStudentsLastWeek(suite.ctx)
	suite.Require().True(resp.Success)
	assert.Equal(suite.T(), "last_7_days", resp.Data["period"])
	assert.Equal(suite.T(), 2, resp.Data["count"])

	students := resp.Data["active_students"].([]models.Student)
	suite.Require().Len(students, 2)
	assert.Equal(suite.T(), "S-002", students[0].StudentID)
	assert.Equal(suite.T(), "Renamed Student", students[0].Name)
	assert.Equal(suite.T(), "S-003", students[1].StudentID)
}

// TestFAQ answers from the static facts without touching the store
func (suite *StudentServiceTestSuite) TestFAQ() {
	faqs := suite.services.FAQ

	resp := faqs.LibraryName(suite.ctx)
	assert.True(suite.T(), resp.Success)
	assert.Equal(suite.T(), "Saylani Library", resp.Data["library_name"])

	resp = faqs.CafeteriaName(suite.ctx)
	assert.Equal(suite.T(), "Campus Cafeteria", resp.Data["cafeteria_name"])

	resp = faqs.CafeteriaTimings(suite.ctx)
	timings := resp.Data["cafeteria_timings"].(map[string]string)
	assert.Equal(suite.T(), "8:00 AM - 8:00 PM", timings["hours"])
	assert.Equal(suite.T(), "Saylani Campus", timings["campus_name"])
	assert.Contains(suite.T(), resp.Message, "Campus Cafeteria")

	resp = faqs.LibraryHours(suite.ctx)
	hours := resp.Data["library_hours"].(map[string]string)
	assert.Equal(suite.T(), "8:00 AM - 10:00 PM", hours["monday_friday"])

	resp = faqs.LunchTiming(suite.ctx)
	lunch := resp.Data["lunch_timing"].(map[string]string)
	assert.Equal(suite.T(), "11:30 AM - 2:30 PM", lunch["lunch_hours"])
	assert.Equal(suite.T(), "Monday - Friday", lunch["days"])
	assert.NotEmpty(suite.T(), resp.RequestID)
}
