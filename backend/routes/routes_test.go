package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"marketplace/backend/config"
	"marketplace/backend/models"
	"marketplace/backend/testutil"
	"marketplace/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	app *fiber.App
	db  *gorm.DB
	cfg *config.Config
}

func setup(t *testing.T) *testEnv {
	t.Helper()
	cfg := &config.Config{JWTSecret: "testsecret", JWTTTLHours: 1, ServerPort: "8080"}
	db := testutil.DB(t)
	app := fiber.New()
	SetupRoutes(app, db, nil, cfg, testutil.Logger(t))
	return &testEnv{app: app, db: db, cfg: cfg}
}

func (e *testEnv) token(t *testing.T, u *models.User) string {
	t.Helper()
	token, err := utils.GenerateJWTToken(u.ID, u.Role, e.cfg)
	require.NoError(t, err)
	return token
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(jsonData)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var result map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &result))
	}
	return resp.StatusCode, result
}

func courseBody(slug string, sections []map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"title":             "Go for Backend Developers",
		"slug":              slug,
		"short_description": "short",
		"description":       "long",
		"category":          "programming",
		"level":             "intermediate",
		"language":          "en",
		"instructions":      "none",
		"price":             19.99,
		"duration_hours":    4,
		"sections":          sections,
	}
}

func TestRegisterAndLogin(t *testing.T) {
	env := setup(t)

	registerData := map[string]string{
		"first_name": "Ada",
		"last_name":  "Lovelace",
		"email":      "Ada@Example.com",
		"password":   "password123",
		"role":       "Instructor",
	}
	status, result := env.do(t, http.MethodPost, "/api/auth/register", "", registerData)
	require.Equal(t, fiber.StatusCreated, status)
	data := result["data"].(map[string]interface{})
	assert.NotEmpty(t, data["token"])
	user := data["user"].(map[string]interface{})
	assert.Equal(t, "Ada-Lovelace", user["username"])
	assert.Equal(t, "ada@example.com", user["email"])

	status, _ = env.do(t, http.MethodPost, "/api/auth/register", "", registerData)
	assert.Equal(t, fiber.StatusConflict, status)

	status, result = env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "ada@example.com",
		"password": "password123",
	})
	require.Equal(t, fiber.StatusOK, status)
	assert.NotEmpty(t, result["data"].(map[string]interface{})["token"])

	status, _ = env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "ada@example.com",
		"password": "wrong",
	})
	assert.Equal(t, fiber.StatusUnauthorized, status)

	registerData["role"] = "Admin"
	registerData["email"] = "other@example.com"
	status, result = env.do(t, http.MethodPost, "/api/auth/register", "", registerData)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, result["details"], "role")
}

func TestInstructorRoutesRejectBeforeReachingServices(t *testing.T) {
	env := setup(t)
	student := testutil.SeedStudent(t, env.db)

	status, _ := env.do(t, http.MethodGet, "/api/instructor/courses", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = env.do(t, http.MethodGet, "/api/instructor/courses", "not-a-jwt", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = env.do(t, http.MethodPost, "/api/instructor/courses", env.token(t, student), courseBody("x", nil))
	assert.Equal(t, fiber.StatusForbidden, status)
	var n int64
	require.NoError(t, env.db.Model(&models.Course{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestCourseLifecycleOverHTTP(t *testing.T) {
	env := setup(t)
	instructor := testutil.SeedInstructor(t, env.db)
	token := env.token(t, instructor)

	status, result := env.do(t, http.MethodPost, "/api/instructor/courses", token, courseBody("go-backend", []map[string]interface{}{
		{
			"title": "Basics", "short_description": "s", "description": "d",
			"lessons": []map[string]interface{}{
				{"title": "Syntax", "description": "d"},
				{"title": "Types", "description": "d"},
			},
		},
	}))
	require.Equal(t, fiber.StatusCreated, status)
	course := result["data"].(map[string]interface{})
	courseID := course["id"].(string)
	section := course["sections"].([]interface{})[0].(map[string]interface{})
	lessons := section["lessons"].([]interface{})
	require.Len(t, lessons, 2)
	keepID := lessons[0].(map[string]interface{})["id"]

	status, result = env.do(t, http.MethodPut, "/api/instructor/courses/"+courseID, token, courseBody("go-backend", []map[string]interface{}{
		{
			"id": section["id"], "title": "Basics", "short_description": "s", "description": "d",
			"lessons": []map[string]interface{}{
				{"id": keepID, "title": "new", "description": "d"},
			},
		},
	}))
	require.Equal(t, fiber.StatusOK, status)
	updated := result["data"].(map[string]interface{})
	lessons = updated["sections"].([]interface{})[0].(map[string]interface{})["lessons"].([]interface{})
	require.Len(t, lessons, 1)
	assert.Equal(t, "new", lessons[0].(map[string]interface{})["title"])

	status, result = env.do(t, http.MethodGet, "/api/courses/go-backend", "", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, false, result["data"].(map[string]interface{})["is_enrolled"])

	status, result = env.do(t, http.MethodGet, "/api/instructor/courses", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, 1, result["total"])

	status, _ = env.do(t, http.MethodDelete, "/api/instructor/courses/"+courseID, token, nil)
	assert.Equal(t, fiber.StatusNoContent, status)

	status, _ = env.do(t, http.MethodGet, "/api/courses/go-backend", "", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestSyncErrorsMapToStatusCodes(t *testing.T) {
	env := setup(t)
	owner := testutil.SeedInstructor(t, env.db)
	intruder := testutil.SeedInstructor(t, env.db)
	course := testutil.SeedCourse(t, env.db, owner.ID, "go-backend")
	testutil.SeedCourse(t, env.db, owner.ID, "taken")
	path := "/api/instructor/courses/" + course.ID.String()

	status, result := env.do(t, http.MethodPut, path, env.token(t, owner), courseBody("go-backend", []map[string]interface{}{
		{"title": "", "short_description": "s", "description": "d"},
	}))
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, result["details"], "sections[0].title")

	status, _ = env.do(t, http.MethodPut, path, env.token(t, owner), courseBody("go-backend", []map[string]interface{}{
		{"id": 4242, "title": "t", "short_description": "s", "description": "d"},
	}))
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = env.do(t, http.MethodPut, path, env.token(t, intruder), courseBody("go-backend", nil))
	assert.Equal(t, fiber.StatusForbidden, status)

	status, _ = env.do(t, http.MethodPut, path, env.token(t, owner), courseBody("taken", nil))
	assert.Equal(t, fiber.StatusConflict, status)

	status, _ = env.do(t, http.MethodPut, "/api/instructor/courses/not-a-uuid", env.token(t, owner), courseBody("go-backend", nil))
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestGradingOverHTTP(t *testing.T) {
	env := setup(t)
	owner := testutil.SeedInstructor(t, env.db)
	student := testutil.SeedStudent(t, env.db)
	course := testutil.SeedCourse(t, env.db, owner.ID, "go-backend")
	section := testutil.SeedSection(t, env.db, course.ID, "S")
	lesson := testutil.SeedLesson(t, env.db, section.ID, "L")
	assignment := testutil.SeedAssignment(t, env.db, lesson.ID, 10)
	attachment := testutil.SeedAttachment(t, env.db, assignment.ID, student.ID)
	path := fmt.Sprintf("/api/instructor/attachments/%d/grade", attachment.ID)

	status, _ := env.do(t, http.MethodPut, path, env.token(t, owner), map[string]interface{}{"grade": 8})
	assert.Equal(t, fiber.StatusNoContent, status)

	status, result := env.do(t, http.MethodPut, path, env.token(t, owner), map[string]interface{}{"grade": 11})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, result["details"], "grade")

	status, _ = env.do(t, http.MethodPut, path, env.token(t, owner), map[string]interface{}{})
	assert.Equal(t, fiber.StatusBadRequest, status)

	var stored models.Attachment
	require.NoError(t, env.db.First(&stored, attachment.ID).Error)
	require.NotNil(t, stored.Grade)
	assert.InDelta(t, 8, *stored.Grade, 0.001)
}

func TestStudentFlowOverHTTP(t *testing.T) {
	env := setup(t)
	owner := testutil.SeedInstructor(t, env.db)
	student := testutil.SeedStudent(t, env.db)
	course := testutil.SeedCourse(t, env.db, owner.ID, "go-backend")
	section := testutil.SeedSection(t, env.db, course.ID, "S")
	lesson := testutil.SeedLesson(t, env.db, section.ID, "L")
	assignment := testutil.SeedAssignment(t, env.db, lesson.ID, 10)
	token := env.token(t, student)

	review := map[string]interface{}{"course_id": course.ID, "review_content": "great", "rate": 4}
	status, _ := env.do(t, http.MethodPost, "/api/reviews", token, review)
	assert.Equal(t, fiber.StatusForbidden, status)

	status, _ = env.do(t, http.MethodPost, "/api/enrollments", token, map[string]interface{}{"course_id": course.ID})
	require.Equal(t, fiber.StatusNoContent, status)

	status, _ = env.do(t, http.MethodPost, "/api/reviews", token, review)
	require.Equal(t, fiber.StatusNoContent, status)

	status, _ = env.do(t, http.MethodPost, "/api/attachments", token, map[string]interface{}{
		"assignment_id": assignment.ID, "title": "work", "description": "done",
	})
	assert.Equal(t, fiber.StatusNoContent, status)

	status, result := env.do(t, http.MethodGet, "/api/courses/go-backend", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	data := result["data"].(map[string]interface{})
	assert.Equal(t, true, data["is_enrolled"])
	assert.EqualValues(t, 1, data["reviews_count"])
	assert.InDelta(t, 4, data["rating_avg"], 0.001)

	status, _ = env.do(t, http.MethodDelete, "/api/enrollments/"+course.ID.String(), token, nil)
	assert.Equal(t, fiber.StatusNoContent, status)

	var enrollment models.Enrollment
	require.NoError(t, env.db.Where("student_id = ? AND course_id = ?", student.ID, course.ID).First(&enrollment).Error)
	assert.Equal(t, models.EnrollmentCancelled, enrollment.Status)

	status, _ = env.do(t, http.MethodPost, "/api/enrollments", env.token(t, owner), map[string]interface{}{"course_id": course.ID})
	assert.Equal(t, fiber.StatusForbidden, status)
}
