package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/learnhub/internal/app/controllers"
)

// Controllers groups the handlers the route table dispatches to
type Controllers struct {
	Category    *controllers.CategoryController
	SubCategory *controllers.SubCategoryController
	Course      *controllers.CourseController
	MyCourse    *controllers.MyCourseController
	Report      *controllers.ReportController
	Health      *controllers.HealthController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c Controllers) {
	v1 := router.Group("/api/v1")

	if c.Health != nil {
		v1.GET("/health", c.Health.Health)
	}

	categories := v1.Group("/categories")
	{
		categories.POST("", c.Category.CreateCategory)
		categories.GET("", c.Category.GetAllCategories)
		categories.GET("/details", c.Category.GetCategoriesDetails)
		categories.GET("/:id", c.Category.GetCategoryByID)
		categories.PATCH("/:id", c.Category.UpdateCategory)
		categories.DELETE("/:id", c.Category.DeleteCategory)
	}

	subCategories := v1.Group("/sub-categories")
	{
		subCategories.POST("", c.SubCategory.CreateSubCategory)
		subCategories.GET("", c.SubCategory.GetAllSubCategories)
		subCategories.GET("/most-subscribed", c.Report.MostSubscribedSubCategories)
		subCategories.GET("/by-category/:categoryId", c.SubCategory.GetSubCategoriesByCategory)
		subCategories.PATCH("/by-course/:courseId/subscribers", c.SubCategory.IncreaseSubscribersByCourse)
		subCategories.GET("/:id", c.SubCategory.GetSubCategoryByID)
		subCategories.PATCH("/:id", c.SubCategory.UpdateSubCategory)
		subCategories.DELETE("/:id", c.SubCategory.DeleteSubCategory)
		subCategories.PATCH("/:id/subscribers", c.SubCategory.IncreaseSubscribers)
	}

	courses := v1.Group("/courses")
	{
		courses.POST("", c.Course.CreateCourse)
		courses.GET("", c.Course.ListCourses)
		courses.GET("/all", c.Course.GetAllCourses)
		courses.GET("/most-outstanding", c.Report.MostOutstandingCourses)
		courses.GET("/:id", c.Course.GetCourseByID)
		courses.GET("/:id/details", c.Course.GetCourseDetails)
		courses.PATCH("/:id", c.Course.UpdateCourse)
		courses.DELETE("/:id", c.Course.DeleteCourse)
	}

	myCourses := v1.Group("/my-courses")
	{
		myCourses.POST("", c.MyCourse.CreateMyCourse)
		myCourses.GET("", c.MyCourse.ListMyCourses)
		myCourses.GET("/students/:studentId", c.MyCourse.GetStudentCourses)
		myCourses.GET("/:id", c.MyCourse.GetMyCourseByID)
		myCourses.DELETE("/:id", c.MyCourse.DeleteMyCourse)
	}
}
