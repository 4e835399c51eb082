package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/blogem/campus-admin/database"
	"github.com/blogem/campus-admin/faq"
	"github.com/blogem/campus-admin/models"
	"github.com/blogem/campus-admin/repositories"
	"github.com/blogem/campus-admin/userctx"
)

var suiteStart = time.Date(2025, 3, 10, 9, 0, 0, 0, models.PKT)

// testClock is a settable clock shared by the store and the services
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) advance(d time.Duration) { c.now = c.now.Add(d) }

// StudentServiceTestSuite exercises the facade against a real SQLite store
type StudentServiceTestSuite struct {
	suite.Suite
	db       *sql.DB
	clock    *testClock
	logs     *observer.ObservedLogs
	services *Services
	ctx      context.Context
	nextID   int
}

func (suite *StudentServiceTestSuite) SetupTest() {
	db, err := database.InitializeDatabase(filepath.Join(suite.T().TempDir(), "test.db"), zap.NewNop())
	suite.Require().NoError(err)
	suite.db = db

	suite.clock = &testClock{now: suiteStart}
	core, logs := observer.New(zapcore.DebugLevel)
	suite.logs = logs

	facts, err := faq.Default()
	suite.Require().NoError(err)

	suite.nextID = 0
	suite.services = NewServices(
		repositories.NewStore(db, suite.clock.Now),
		facts,
		zap.New(core),
		WithClock(suite.clock.Now),
		WithRequestIDs(func() string {
			suite.nextID++
			return fmt.Sprintf("req-%d", suite.nextID)
		}),
	)
	suite.ctx = context.Background()
}

func (suite *StudentServiceTestSuite) TearDownTest() {
	suite.db.Close()
}

func (suite *StudentServiceTestSuite) activityCount() int {
	var count int
	suite.Require().NoError(suite.db.QueryRow("SELECT COUNT(*) FROM activity_log").Scan(&count))
	return count
}

func (suite *StudentServiceTestSuite) addJane() models.Response {
	resp := suite.services.Students.AddStudent(suite.ctx, models.AddStudentRequest{
		Name:       "jane doe",
		StudentID:  "abc-123",
		Department: "computer science",
		Email:      "jane@x.com",
	})
	suite.Require().True(resp.Success, resp.Message)
	return resp
}

// TestAddStudent_NormalizesFields covers the add-then-get scenario
func (suite *StudentServiceTestSuite) TestAddStudent_NormalizesFields() {
	resp := suite.addJane()

	assert.Equal(suite.T(), "Student Jane Doe added successfully", resp.Message)
	assert.Equal(suite.T(), "req-1", resp.RequestID)

	student := resp.Data["student"].(*models.Student)
	assert.Equal(suite.T(), "Jane Doe", student.Name)
	assert.Equal(suite.T(), "ABC-123", student.StudentID)
	assert.Equal(suite.T(), "Computer Science", student.Department)
	assert.True(suite.T(), student.IsActive)

	got := suite.services.Students.GetStudent(suite.ctx, "abc-123")
	suite.Require().True(got.Success, got.Message)
	stored := got.Data["student"].(*models.Student)
	assert.Equal(suite.T(), "Jane Doe", stored.Name)
	assert.Equal(suite.T(), "ABC-123", stored.StudentID)
	assert.Equal(suite.T(), "Computer Science", stored.Department)
	assert.Equal(suite.T(), "jane@x.com", stored.Email)
	assert.True(suite.T(), stored.CreatedAt.Equal(suiteStart))
}

// TestAddStudent_WritesCreationEntry checks the audit entry written with an add
func (suite *StudentServiceTestSuite) TestAddStudent_WritesCreationEntry() {
	ctx := userctx.SetUserEmail(suite.ctx, "admin@example.com")
	resp := suite.services.Students.AddStudent(ctx, models.AddStudentRequest{
		Name: "jane doe", StudentID: "abc-123", Department: "computer science", Email: "jane@x.com",
	})
	suite.Require().True(resp.Success)

	activity := suite.services.Students.StudentActivity(suite.ctx, "ABC-123")
	suite.Require().True(activity.Success)
	entries := activity.Data["activities"].([]models.ActivityLogEntry)
	suite.Require().Len(entries, 1)

	entry := entries[0]
	assert.Equal(suite.T(), models.ActivityStudentCreated, entry.ActivityType)
	assert.Equal(suite.T(), "New student Jane Doe added to Computer Science", entry.Description)
	assert.Equal(suite.T(), "admin@example.com", entry.PerformedBy)
	_, offset := entry.Timestamp.Zone()
	assert.Equal(suite.T(), 5*60*60, offset)
}

// TestAddStudent_Conflicts rejects duplicates by id or email
func (suite *StudentServiceTestSuite) TestAddStudent_Conflicts() {
	suite.addJane()
	before := suite.activityCount()

	cases := []models.AddStudentRequest{
		{Name: "Someone Else", StudentID: "ABC-123", Department: "Physics", Email: "other@x.com"},
		{Name: "Someone Else", StudentID: "xyz-999", Department: "Physics", Email: "jane@x.com"},
	}
	for _, req := range cases {
		resp := suite.services.Students.AddStudent(suite.ctx, req)
		assert.False(suite.T(), resp.Success)
		assert.Equal(suite.T(), models.FailureConflict, resp.Failure)
		assert.Equal(suite.T(), "Student with this ID or email already exists", resp.Message)
	}

	assert.Equal(suite.T(), before, suite.activityCount(), "failed calls write no activity")
}

// TestAddStudent_ValidationFailures covers the add rule set
func (suite *StudentServiceTestSuite) TestAddStudent_ValidationFailures() {
	valid := models.AddStudentRequest{Name: "Jane Doe", StudentID: "ABC-123", Department: "Physics", Email: "jane@x.com"}

	cases := map[string]func(r *models.AddStudentRequest){
		"short name":        func(r *models.AddStudentRequest) { r.Name = "J" },
		"name only markup":  func(r *models.AddStudentRequest) { r.Name = "<>{}" },
		"long name":         func(r *models.AddStudentRequest) { r.Name = strings.Repeat("a", 101) },
		"short id":          func(r *models.AddStudentRequest) { r.StudentID = "AB" },
		"long id":           func(r *models.AddStudentRequest) { r.StudentID = strings.Repeat("A", 51) },
		"id with space":     func(r *models.AddStudentRequest) { r.StudentID = "AB 123" },
		"id with dot":       func(r *models.AddStudentRequest) { r.StudentID = "AB.123" },
		"short department":  func(r *models.AddStudentRequest) { r.Department = "X" },
		"bad email":         func(r *models.AddStudentRequest) { r.Email = "not-an-email" },
		"missing email":     func(r *models.AddStudentRequest) { r.Email = "" },
	}

	for name, mutate := range cases {
		req := valid
		mutate(&req)
		resp := suite.services.Students.AddStudent(suite.ctx, req)
		assert.False(suite.T(), resp.Success, name)
		assert.Equal(suite.T(), models.FailureValidation, resp.Failure, name)
		assert.True(suite.T(), strings.HasPrefix(resp.Message, "Validation error: "), name)
	}

	list := suite.services.Students.ListStudents(suite.ctx)
	assert.Equal(suite.T(), 0, list.Data["total_count"])
	assert.Equal(suite.T(), 0, suite.activityCount())
}

// TestGetStudent_NotFound covers lookups of unknown identifiers
func (suite *StudentServiceTestSuite) TestGetStudent_NotFound() {
	resp := suite.services.Students.GetStudent(suite.ctx, "NOPE-1")
	assert.False(suite.T(), resp.Success)
	assert.Equal(suite.T(), models.FailureNotFound, resp.Failure)
	assert.Equal(suite.T(), "Student not found", resp.Message)

	resp = suite.services.Students.GetStudent(suite.ctx, "  ")
	assert.Equal(suite.T(), models.FailureValidation, resp.Failure)
}

// TestUpdateStudent_Fields covers each update variant
func (suite *StudentServiceTestSuite) TestUpdateStudent_Fields() {
	suite.addJane()

	suite.clock.advance(time.Hour)
	resp := suite.services.Students.UpdateStudent(suite.ctx, models.UpdateStudentRequest{
		StudentID: "abc-123", Field: "department", NewValue: "  applied   mathematics ",
	})
	suite.Require().True(resp.Success, resp.Message)
	assert.Equal(suite.T(), "Student ABC-123 updated successfully", resp.Message)
	assert.Equal(suite.T(), "department", resp.Data["updated_field"])
	assert.Equal(suite.T(), "Applied Mathematics", resp.Data["new_value"])

	resp = suite.services.Students.UpdateStudent(suite.ctx, models.UpdateStudentRequest{
		StudentID: "ABC-123", Field: "email", NewValue: "jane.doe@x.com",
	})
	suite.Require().True(resp.Success, resp.Message)

	got := suite.services.Students.GetStudent(suite.ctx, "ABC-123")
	student := got.Data["student"].(*models.Student)
	assert.Equal(suite.T(), "Applied Mathematics", student.Department)
	assert.Equal(suite.T(), "jane.doe@x.com", student.Email)
	assert.True(suite.T(), student.CreatedAt.Equal(suiteStart))
	assert.True(suite.T(), student.UpdatedAt.Equal(suiteStart.Add(time.Hour)))

	activity := suite.services.Students.StudentActivity(suite.ctx, "ABC-123")
	entries := activity.Data["activities"].([]models.ActivityLogEntry)
	suite.Require().Len(entries, 3)
	assert.Equal(suite.T(), "Updated department to Applied Mathematics", entries[1].Description)
	assert.Equal(suite.T(), models.ActivityProfileUpdate, entries[2].ActivityType)
}

// TestUpdateStudent_ActiveFlag covers the active flag coercion
func (suite *StudentServiceTestSuite) TestUpdateStudent_ActiveFlag() {
	suite.addJane()

	cases := map[string]bool{
		"true": true, "TRUE": true, "1": true, "Yes": true, "ACTIVE": true,
		"false": false, "0": false, "no": false, "inactive": false, "": false, "enabled": false,
	}

	for value, expected := range cases {
		resp := suite.services.Students.UpdateStudent(suite.ctx, models.UpdateStudentRequest{
			StudentID: "ABC-123", Field: "is_active", NewValue: value,
		})
		suite.Require().True(resp.Success, "%q: %s", value, resp.Message)
		assert.Equal(suite.T(), expected, resp.Data["new_value"], value)

		got := suite.services.Students.GetStudent(suite.ctx, "ABC-123")
		assert.Equal(suite.T(), expected, got.Data["student"].(*models.Student).IsActive, value)
	}
}

// TestUpdateStudent_Failures covers validation and not-found paths
func (suite *StudentServiceTestSuite) TestUpdateStudent_Failures() {
	suite.addJane()
	before := suite.activityCount()

	for _, field := range []string{"name", "department", "email", "is_active"} {
		resp := suite.services.Students.UpdateStudent(suite.ctx, models.UpdateStudentRequest{
			StudentID: "MISSING-1", Field: field, NewValue: "valid@value.com",
		})
		assert.Equal(suite.T(), models.FailureNotFound, resp.Failure, field)
	}

	invalid := []models.UpdateStudentRequest{
		{StudentID: "ABC-123", Field: "student_id", NewValue: "NEW-1"},
		{StudentID: "ABC-123", Field: "created_at", NewValue: "yesterday"},
		{StudentID: "ABC-123", Field: "name", NewValue: "J"},
		{StudentID: "ABC-123", Field: "department", NewValue: "<>"},
		{StudentID: "ABC-123", Field: "email", NewValue: "no-at-sign"},
		{StudentID: "AB", Field: "name", NewValue: "Jane"},
	}
	for _, req := range invalid {
		resp := suite.services.Students.UpdateStudent(suite.ctx, req)
		assert.Equal(suite.T(), models.FailureValidation, resp.Failure, "%+v", req)
	}

	assert.Equal(suite.T(), before, suite.activityCount())
}

// TestUpdateStudent_EmailConflict relies on the store's unique constraint
func (suite *StudentServiceTestSuite) TestUpdateStudent_EmailConflict() {
	suite.addJane()
	resp := suite.services.Students.AddStudent(suite.ctx, models.AddStudentRequest{
		Name: "John Roe", StudentID: "XYZ-999", Department: "Physics", Email: "john@x.com",
	})
	suite.Require().True(resp.Success)
	before := suite.activityCount()

	resp = suite.services.Students.UpdateStudent(suite.ctx, models.UpdateStudentRequest{
		StudentID: "XYZ-999", Field: "email", NewValue: "jane@x.com",
	})
	assert.Equal(suite.T(), models.FailureConflict, resp.Failure)
	assert.Equal(suite.T(), before, suite.activityCount())
}

// TestDeleteStudent covers delete followed by get
func (suite *StudentServiceTestSuite) TestDeleteStudent() {
	suite.addJane()

	resp := suite.services.Students.DeleteStudent(suite.ctx, "abc-123")
	suite.Require().True(resp.Success, resp.Message)
	assert.Equal(suite.T(), "Student Jane Doe deleted successfully", resp.Message)
	assert.Nil(suite.T(), resp.Data)

	got := suite.services.Students.GetStudent(suite.ctx, "ABC-123")
	assert.Equal(suite.T(), models.FailureNotFound, got.Failure)

	again := suite.services.Students.DeleteStudent(suite.ctx, "ABC-123")
	assert.Equal(suite.T(), models.FailureNotFound, again.Failure)

	// The audit trail outlives the student
	activity := suite.services.Students.StudentActivity(suite.ctx, "ABC-123")
	entries := activity.Data["activities"].([]models.ActivityLogEntry)
	suite.Require().Len(entries, 2)
	assert.Equal(suite.T(), "Student Jane Doe deleted", entries[1].Description)
	assert.Equal(suite.T(), models.ActivityStudentDeleted, entries[1].ActivityType)
}

// TestListStudents_CountsAddsMinusDeletes checks the list count invariant
func (suite *StudentServiceTestSuite) TestListStudents_CountsAddsMinusDeletes() {
	for i := 1; i <= 4; i++ {
		resp := suite.services.Students.AddStudent(suite.ctx, models.AddStudentRequest{
			Name:       fmt.Sprintf("Student %d", i),
			StudentID:  fmt.Sprintf("S-00%d", i),
			Department: "Physics",
			Email:      fmt.Sprintf("s%d@x.com", i),
		})
		suite.Require().True(resp.Success, resp.Message)
	}
	suite.Require().True(suite.services.Students.DeleteStudent(suite.ctx, "S-002").Success)

	resp := suite.services.Students.ListStudents(suite.ctx)
	suite.Require().True(resp.Success)
	assert.Equal(suite.T(), 3, resp.Data["total_count"])
	students := resp.Data["students"].([]models.Student)
	assert.Equal(suite.T(), "S-001", students[0].StudentID)
	assert.Equal(suite.T(), "S-004", students[2].StudentID)
}

// TestRequestIDsAreFreshPerCall checks that every envelope gets its own id
func (suite *StudentServiceTestSuite) TestRequestIDsAreFreshPerCall() {
	first := suite.services.Students.GetStudent(suite.ctx, "NOPE-1")
	second := suite.services.Students.GetStudent(suite.ctx, "NOPE-1")
	assert.NotEqual(suite.T(), first.RequestID, second.RequestID)

	logged := suite.logs.FilterField(zap.String("request_id", second.RequestID)).All()
	assert.NotEmpty(suite.T(), logged, "log lines carry the request id")
}

func TestStudentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(StudentServiceTestSuite))
}

// failingStore fails every call
type failingStore struct {
	err error
}

func (s failingStore) Read(ctx context.Context, fn func(*repositories.Repositories) error) error {
	return s.err
}

func (s failingStore) Write(ctx context.Context, fn func(*repositories.Repositories) error) error {
	return s.err
}

func TestStoreFailuresBecomeGenericEnvelopes(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	facts, err := faq.Default()
	require.NoError(t, err)

	svc := NewServices(failingStore{err: errors.New("disk I/O error")}, facts, zap.New(core))
	ctx := context.Background()

	responses := map[string]models.Response{
		"Error adding student": svc.Students.AddStudent(ctx, models.AddStudentRequest{
			Name: "Jane Doe", StudentID: "ABC-123", Department: "Physics", Email: "jane@x.com",
		}),
		"Error retrieving student":  svc.Students.GetStudent(ctx, "ABC-123"),
		"Error retrieving students": svc.Students.ListStudents(ctx),
		"Error getting student count": svc.Analytics.TotalStudents(ctx),
	}

	for message, resp := range responses {
		assert.False(t, resp.Success)
		assert.Equal(t, models.FailureInternal, resp.Failure)
		assert.Equal(t, message, resp.Message)
		assert.NotContains(t, resp.Message, "disk I/O")
		assert.NotEmpty(t, resp.RequestID)
	}

	assert.Equal(t, len(responses), logs.Len())
}

// TestAuditFailureRollsBackMutation drops the activity table so the audit
// write fails after the student insert
func TestAuditFailureRollsBackMutation(t *testing.T) {
	db, err := database.InitializeDatabase(filepath.Join(t.TempDir(), "test.db"), zap.NewNop())
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec("DROP TABLE activity_log")
	require.NoError(t, err)

	facts, err := faq.Default()
	require.NoError(t, err)
	svc := NewServices(repositories.NewStore(db, nil), facts, zap.NewNop())

	resp := svc.Students.AddStudent(context.Background(), models.AddStudentRequest{
		Name: "Jane Doe", StudentID: "ABC-123", Department: "Physics", Email: "jane@x.com",
	})
	assert.False(t, resp.Success)
	assert.Equal(t, models.FailureInternal, resp.Failure)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM students").Scan(&count))
	assert.Equal(t, 0, count, "student insert must roll back with the failed audit write")
}
