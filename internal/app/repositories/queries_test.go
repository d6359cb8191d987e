package repositories

import (
	"testing"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/learnhub/internal/app/models"
)

func TestInsertMyCourseQuery(t *testing.T) {
	mc := &models.MyCourse{
		ID:        uuid.New(),
		StudentID: uuid.New(),
		CourseID:  uuid.New(),
		CreatedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	sql, args, err := insertMyCourseQuery(statementBuilder(), mc).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO my_courses (id,student_id,course_id,created_at) VALUES ($1,$2,$3,$4) "+
		"ON CONFLICT ON CONSTRAINT my_courses_student_course_key DO NOTHING RETURNING id", sql)
	assert.Equal(t, []interface{}{mc.ID, mc.StudentID, mc.CourseID, mc.CreatedAt}, args)
}

func TestIncrementSubscribersQuery(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	id := uuid.New()

	t.Run("by id", func(t *testing.T) {
		sql, args, err := incrementSubscribersQuery(statementBuilder(), squirrel.Eq{"id": id}, now).ToSql()
		require.NoError(t, err)
		assert.Equal(t, "UPDATE sub_categories SET subscriber_number = subscriber_number + 1, updated_at = $1 WHERE id = $2", sql)
		assert.Equal(t, []interface{}{now, id.String()}, args)
	})

	t.Run("by course", func(t *testing.T) {
		where, err := courseSubCategoryMatch(id)
		require.NoError(t, err)

		sql, args, err := incrementSubscribersQuery(statementBuilder(), where, now).ToSql()
		require.NoError(t, err)
		assert.Equal(t, "UPDATE sub_categories SET subscriber_number = subscriber_number + 1, updated_at = $1 "+
			"WHERE id = (SELECT sub_category_id FROM courses WHERE id = $2)", sql)
		assert.Equal(t, []interface{}{now, id.String()}, args)
	})
}

func TestReportQueries(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	tests := []struct {
		name     string
		build    func(squirrel.StatementBuilderType, int, models.ReportWindow) squirrel.SelectBuilder
		limit    int
		window   models.ReportWindow
		wantSQL  string
		wantArgs []interface{}
	}{
		{
			name:   "top courses open window",
			build:  topCoursesQuery,
			limit:  5,
			window: models.ReportWindow{From: from},
			wantSQL: "SELECT m.course_id, COUNT(*) AS enrollments FROM my_courses m " +
				"WHERE (m.created_at >= $1) GROUP BY m.course_id " +
				"ORDER BY enrollments DESC, MIN(m.created_at) ASC, m.course_id ASC LIMIT 5",
			wantArgs: []interface{}{from},
		},
		{
			name:   "top courses bounded window",
			build:  topCoursesQuery,
			limit:  3,
			window: models.ReportWindow{From: from, To: &to},
			wantSQL: "SELECT m.course_id, COUNT(*) AS enrollments FROM my_courses m " +
				"WHERE (m.created_at >= $1 AND m.created_at < $2) GROUP BY m.course_id " +
				"ORDER BY enrollments DESC, MIN(m.created_at) ASC, m.course_id ASC LIMIT 3",
			wantArgs: []interface{}{from, to},
		},
		{
			name:   "top sub categories",
			build:  topSubCategoriesQuery,
			limit:  10,
			window: models.ReportWindow{From: from, To: &to},
			wantSQL: "SELECT co.sub_category_id, COUNT(*) AS enrollments FROM my_courses m " +
				"JOIN courses co ON co.id = m.course_id " +
				"WHERE (m.created_at >= $1 AND m.created_at < $2) GROUP BY co.sub_category_id " +
				"ORDER BY enrollments DESC, MIN(m.created_at) ASC, co.sub_category_id ASC LIMIT 10",
			wantArgs: []interface{}{from, to},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := tt.build(statementBuilder(), tt.limit, tt.window).ToSql()
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, sql)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestSubCategoryExistsQuery(t *testing.T) {
	id := uuid.New()

	sql, args, err := subCategoryExistsQuery(statementBuilder(), id).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT EXISTS ( SELECT 1 FROM sub_categories WHERE category_id = $1 LIMIT 1 )", sql)
	assert.Equal(t, []interface{}{id.String()}, args)
}

func TestContainsPattern(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"algebra", "%algebra%"},
		{"50%", `%50\%%`},
		{"full_stack", `%full\_stack%`},
		{`C:\path`, `%C:\\path%`},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, containsPattern(tt.in))
		})
	}
}

func TestApplyCourseFilter(t *testing.T) {
	subID := uuid.New()
	filter := models.CourseFilter{Name: "  100%_go ", SubCategoryID: subID}

	sql, args, err := applyCourseFilter(statementBuilder().Select("COUNT(*)").From("courses"), filter).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT COUNT(*) FROM courses WHERE name ILIKE $1 AND sub_category_id = $2", sql)
	assert.Equal(t, []interface{}{`%100\%\_go%`, subID.String()}, args)
}
