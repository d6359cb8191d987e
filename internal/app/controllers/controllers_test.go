package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/learnhub/internal/app/controllers"
	"github.com/yigit/learnhub/internal/app/models"
	"github.com/yigit/learnhub/internal/app/models/dto"
	"github.com/yigit/learnhub/internal/app/repositories/memory"
	"github.com/yigit/learnhub/internal/app/routes"
	"github.com/yigit/learnhub/internal/app/services"
	"github.com/yigit/learnhub/internal/pkg/media"
)

type envelope struct {
	Success    bool                `json:"success"`
	Data       json.RawMessage     `json:"data"`
	Pagination *dto.PaginationInfo `json:"pagination"`
	Error      *dto.ErrorDetail    `json:"error"`
}

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repos := memory.NewRepositories(memory.NewStore())
	lgr := zerolog.Nop()

	router := gin.New()
	routes.SetupRouter(router, routes.Controllers{
		Category: controllers.NewCategoryController(
			services.NewCategoryService(repos.CategoryRepository, repos.SubCategoryRepository, lgr)),
		SubCategory: controllers.NewSubCategoryController(
			services.NewSubCategoryService(repos.SubCategoryRepository, repos.CategoryRepository, lgr)),
		Course: controllers.NewCourseController(
			services.NewCourseService(repos.CourseRepository, repos.SubCategoryRepository, media.Passthrough{}, "course_image", lgr)),
		MyCourse: controllers.NewMyCourseController(
			services.NewMyCourseService(repos.MyCourseRepository, repos.CourseRepository, lgr)),
		Report: controllers.NewReportController(
			services.NewReportService(repos.ReportRepository, repos.CourseRepository, repos.SubCategoryRepository, nil, lgr)),
		Health: controllers.NewHealthController(nil, "memory"),
	})
	return router
}

func do(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, dest interface{}) envelope {
	t.Helper()
	env := decode(t, w)
	require.True(t, env.Success, w.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, dest))
	return env
}

func assertError(t *testing.T, w *httptest.ResponseRecorder, status int, code dto.ErrorCode, msg string) {
	t.Helper()
	require.Equal(t, status, w.Code, w.Body.String())
	env := decode(t, w)
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, code, env.Error.Code)
	if msg != "" {
		assert.Equal(t, msg, env.Error.Message)
	}
}

func createCategory(t *testing.T, router *gin.Engine, name string) models.Category {
	t.Helper()
	w := do(t, router, http.MethodPost, "/api/v1/categories", gin.H{"name": name})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var c models.Category
	decodeData(t, w, &c)
	return c
}

func createSubCategory(t *testing.T, router *gin.Engine, name string, categoryID uuid.UUID) models.SubCategory {
	t.Helper()
	w := do(t, router, http.MethodPost, "/api/v1/sub-categories", gin.H{"name": name, "categoryId": categoryID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var sc models.SubCategory
	decodeData(t, w, &sc)
	return sc
}

func createCourse(t *testing.T, router *gin.Engine, name string, subCategoryID uuid.UUID) models.Course {
	t.Helper()
	w := do(t, router, http.MethodPost, "/api/v1/courses", gin.H{
		"name":          name,
		"description":   "intro",
		"image":         "https://img.example.com/" + strings.ReplaceAll(name, " ", "-") + ".png",
		"teacherId":     uuid.New(),
		"subCategoryId": subCategoryID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var c models.Course
	decodeData(t, w, &c)
	return c
}

func enroll(t *testing.T, router *gin.Engine, studentID, courseID uuid.UUID) *httptest.ResponseRecorder {
	t.Helper()
	return do(t, router, http.MethodPost, "/api/v1/my-courses", gin.H{"studentId": studentID, "courseId": courseID})
}

func TestHealth(t *testing.T) {
	router := newRouter(t)

	w := do(t, router, http.MethodGet, "/api/v1/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var status controllers.HealthStatus
	decodeData(t, w, &status)
	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, "memory", status.Database)
}

func TestCategoryLifecycle(t *testing.T) {
	router := newRouter(t)

	science := createCategory(t, router, "Science")
	assert.Equal(t, "Science", science.Name)

	w := do(t, router, http.MethodPost, "/api/v1/categories", gin.H{"name": "Science"})
	assertError(t, w, http.StatusBadRequest, dto.ErrorCodeResourceInvalid, "Name already taken")

	physics := createSubCategory(t, router, "Physics", science.ID)
	assert.Equal(t, "Science", physics.CategoryName)

	w = do(t, router, http.MethodDelete, "/api/v1/categories/"+science.ID.String(), nil)
	assertError(t, w, http.StatusBadRequest, dto.ErrorCodeResourceInvalid, "cannot delete because of exists sub categories")

	w = do(t, router, http.MethodGet, "/api/v1/categories/"+science.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, router, http.MethodDelete, "/api/v1/sub-categories/"+physics.ID.String(), nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = do(t, router, http.MethodDelete, "/api/v1/categories/"+science.ID.String(), nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, router, http.MethodGet, "/api/v1/categories/"+science.ID.String(), nil)
	assertError(t, w, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Category not found")
}

func TestUpdateCategory(t *testing.T) {
	router := newRouter(t)
	math := createCategory(t, router, "Math")
	createCategory(t, router, "Art")
	path := "/api/v1/categories/" + math.ID.String()

	w := do(t, router, http.MethodPatch, path, gin.H{})
	assertError(t, w, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "")

	w = do(t, router, http.MethodPatch, path, gin.H{"name": "Art"})
	assertError(t, w, http.StatusBadRequest, dto.ErrorCodeResourceInvalid, "Name already taken")

	w = do(t, router, http.MethodPatch, path, gin.H{"name": "Math"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, router, http.MethodPatch, path, gin.H{"name": "Mathematics"})
	require.Equal(t, http.StatusOK, w.Code)
	var updated models.Category
	decodeData(t, w, &updated)
	assert.Equal(t, "Mathematics", updated.Name)
}

func TestInvalidRequests(t *testing.T) {
	router := newRouter(t)

	w := do(t, router, http.MethodGet, "/api/v1/categories/not-a-uuid", nil)
	assertError(t, w, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "")
	assert.Equal(t, "id", decode(t, w).Error.Field)

	w = do(t, router, http.MethodPost, "/api/v1/categories", gin.H{})
	assertError(t, w, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Invalid request data")

	w = do(t, router, http.MethodPost, "/api/v1/sub-categories", gin.H{"name": "Orphan", "categoryId": uuid.New()})
	assertError(t, w, http.StatusBadRequest, dto.ErrorCodeResourceInvalid, "Cannot find categoryId")

	w = do(t, router, http.MethodPost, "/api/v1/courses", gin.H{
		"name": "Bad image", "image": "not an image", "teacherId": uuid.New(), "subCategoryId": uuid.New(),
	})
	assertError(t, w, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "")
}

func TestCategoryDetailsRoute(t *testing.T) {
	router := newRouter(t)
	science := createCategory(t, router, "Science")
	createSubCategory(t, router, "Physics", science.ID)
	createSubCategory(t, router, "Chemistry", science.ID)

	w := do(t, router, http.MethodGet, "/api/v1/categories/details", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var categories []models.Category
	decodeData(t, w, &categories)
	require.Len(t, categories, 1)
	assert.Len(t, categories[0].SubCategories, 2)

	w = do(t, router, http.MethodGet, "/api/v1/sub-categories/by-category/"+science.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var subs []models.SubCategory
	decodeData(t, w, &subs)
	assert.Len(t, subs, 2)

	w = do(t, router, http.MethodGet, "/api/v1/sub-categories/by-category/"+uuid.NewString(), nil)
	assertError(t, w, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Category not found")
}

func TestEnrollmentFlow(t *testing.T) {
	router := newRouter(t)
	cat := createCategory(t, router, "Science")
	sub := createSubCategory(t, router, "Physics", cat.ID)
	course := createCourse(t, router, "Mechanics", sub.ID)
	student := uuid.New()

	w := enroll(t, router, student, course.ID)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var mc models.MyCourse
	decodeData(t, w, &mc)
	assert.Equal(t, student, mc.StudentID)

	w = enroll(t, router, student, course.ID)
	assertError(t, w, http.StatusBadRequest, dto.ErrorCodeResourceInvalid, "Already exists")

	w = enroll(t, router, student, uuid.New())
	assertError(t, w, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Course not found")

	w = do(t, router, http.MethodGet, "/api/v1/sub-categories/"+sub.ID.String(), nil)
	var got models.SubCategory
	decodeData(t, w, &got)
	assert.Equal(t, int64(1), got.SubscriberNumber)

	w = do(t, router, http.MethodGet, "/api/v1/my-courses?studentId="+student.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page []models.MyCourse
	env := decodeData(t, w, &page)
	assert.Len(t, page, 1)
	require.NotNil(t, env.Pagination)
	assert.Equal(t, int64(1), env.Pagination.TotalItems)

	w = do(t, router, http.MethodGet, "/api/v1/my-courses/students/"+student.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	path := "/api/v1/my-courses/" + mc.ID.String()
	w = do(t, router, http.MethodDelete, path, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, router, http.MethodGet, path, nil)
	assertError(t, w, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "my course not found")
}

func TestIncreaseSubscribersByCourse(t *testing.T) {
	router := newRouter(t)
	cat := createCategory(t, router, "Science")
	sub := createSubCategory(t, router, "Physics", cat.ID)
	course := createCourse(t, router, "Optics", sub.ID)

	w := do(t, router, http.MethodPatch, "/api/v1/sub-categories/by-course/"+course.ID.String()+"/subscribers", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var got models.SubCategory
	decodeData(t, w, &got)
	assert.Equal(t, int64(1), got.SubscriberNumber)

	w = do(t, router, http.MethodPatch, "/api/v1/sub-categories/"+sub.ID.String()+"/subscribers", nil)
	decodeData(t, w, &got)
	assert.Equal(t, int64(2), got.SubscriberNumber)

	w = do(t, router, http.MethodPatch, "/api/v1/sub-categories/by-course/"+uuid.NewString()+"/subscribers", nil)
	assertError(t, w, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Course not found")
}

func TestCourseRoutes(t *testing.T) {
	router := newRouter(t)
	cat := createCategory(t, router, "Science")
	sub := createSubCategory(t, router, "Physics", cat.ID)
	first := createCourse(t, router, "Mechanics", sub.ID)
	createCourse(t, router, "Optics", sub.ID)
	createCourse(t, router, "Waves", sub.ID)

	w := do(t, router, http.MethodGet, "/api/v1/courses/all", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var all []models.Course
	decodeData(t, w, &all)
	assert.Len(t, all, 3)

	w = do(t, router, http.MethodGet, "/api/v1/courses?sortBy=name:asc&limit=2&page=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page []models.Course
	env := decodeData(t, w, &page)
	require.Len(t, page, 1)
	assert.Equal(t, "Waves", page[0].Name)
	assert.Equal(t, 2, env.Pagination.TotalPages)

	w = do(t, router, http.MethodGet, "/api/v1/courses?name=OPT", nil)
	decodeData(t, w, &page)
	require.Len(t, page, 1)
	assert.Equal(t, "Optics", page[0].Name)

	path := "/api/v1/courses/" + first.ID.String()
	do(t, router, http.MethodGet, path, nil)
	w = do(t, router, http.MethodGet, path, nil)
	var viewed models.Course
	decodeData(t, w, &viewed)
	assert.Equal(t, int64(2), viewed.ViewCount)

	w = do(t, router, http.MethodGet, path+"/details", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var details models.CourseDetails
	decodeData(t, w, &details)
	assert.Equal(t, "Physics", details.SubCategoryName)
	assert.Equal(t, "Science", details.CategoryName)

	w = do(t, router, http.MethodPatch, path, gin.H{"name": "Classical Mechanics"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated models.Course
	decodeData(t, w, &updated)
	assert.Equal(t, "Classical Mechanics", updated.Name)
	assert.Equal(t, first.Image, updated.Image)

	w = do(t, router, http.MethodDelete, path, nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	w = do(t, router, http.MethodGet, path, nil)
	assertError(t, w, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Course not found")
}

func TestReportRoutes(t *testing.T) {
	router := newRouter(t)
	cat := createCategory(t, router, "Science")
	physics := createSubCategory(t, router, "Physics", cat.ID)
	biology := createSubCategory(t, router, "Biology", cat.ID)
	mechanics := createCourse(t, router, "Mechanics", physics.ID)
	optics := createCourse(t, router, "Optics", physics.ID)
	cells := createCourse(t, router, "Cells", biology.ID)

	for i := 0; i < 3; i++ {
		require.Equal(t, http.StatusCreated, enroll(t, router, uuid.New(), optics.ID).Code)
	}
	require.Equal(t, http.StatusCreated, enroll(t, router, uuid.New(), mechanics.ID).Code)
	require.Equal(t, http.StatusCreated, enroll(t, router, uuid.New(), cells.ID).Code)

	w := do(t, router, http.MethodGet, "/api/v1/courses/most-outstanding", nil)
	assertError(t, w, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "")

	w = do(t, router, http.MethodGet, "/api/v1/courses/most-outstanding?fromDate=yesterday", nil)
	assertError(t, w, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "")

	w = do(t, router, http.MethodGet, "/api/v1/courses/most-outstanding?fromDate=2000-01-01&limit=101", nil)
	assertError(t, w, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "")

	w = do(t, router, http.MethodGet, "/api/v1/courses/most-outstanding?fromDate=2000-01-01&limit=1", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var courses []models.OutstandingCourse
	decodeData(t, w, &courses)
	require.Len(t, courses, 1)
	assert.Equal(t, optics.ID, courses[0].ID)
	assert.Equal(t, int64(3), courses[0].Count)

	w = do(t, router, http.MethodGet, "/api/v1/sub-categories/most-subscribed?fromDate=2000-01-01", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var subs []models.SubscribedSubCategory
	decodeData(t, w, &subs)
	require.Len(t, subs, 2)
	assert.Equal(t, physics.ID, subs[0].ID)
	assert.Equal(t, int64(4), subs[0].Count)
	assert.Equal(t, "Science", subs[0].CategoryName)
	assert.Equal(t, biology.ID, subs[1].ID)

	w = do(t, router, http.MethodGet, "/api/v1/sub-categories/most-subscribed?fromDate=2999-01-01", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &subs)
	assert.Empty(t, subs)
}
