package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kaanaktas/campushub/internal/app/controllers"
	"github.com/kaanaktas/campushub/internal/app/models"
	"github.com/kaanaktas/campushub/internal/app/models/dto"
	"github.com/kaanaktas/campushub/internal/app/repositories"
	"github.com/kaanaktas/campushub/internal/middleware"
	"github.com/kaanaktas/campushub/internal/pkg/auth"
	"github.com/kaanaktas/campushub/internal/pkg/cache"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	ctrl *controllers.Controllers,
	jwtService *auth.JWTService,
	userRepo *repositories.UserRepository,
	store cache.Store,
) {
	cached := middleware.CacheResponse(store, cache.DefaultTTL)

	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	authRoutes := v1.Group("/auth")
	{
		authRoutes.POST("/register", ctrl.AuthController.Register)
		authRoutes.POST("/login", ctrl.AuthController.Login)
		authRoutes.POST("/refresh", ctrl.AuthController.RefreshToken)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(middleware.JWTAuth(jwtService, userRepo))
	{
		authenticated.POST("/auth/logout", ctrl.AuthController.Logout)
		authenticated.GET("/auth/me", ctrl.AuthController.Me)

		// User routes
		users := authenticated.Group("/users")
		{
			users.GET("", middleware.RoleRequired(models.RoleAdmin), cached, ctrl.UserController.GetAll)
			users.GET("/:id", cached, ctrl.UserController.GetByID)
			users.PUT("/:id", ctrl.UserController.Update)
			users.DELETE("/:id", middleware.RoleRequired(models.RoleAdmin), ctrl.UserController.Delete)
		}

		// Course routes
		courses := authenticated.Group("/courses")
		{
			courses.GET("", cached, ctrl.CourseController.GetAll)
			courses.GET("/:id", cached, ctrl.CourseController.GetByID)
			courses.GET("/:id/assignments", cached, ctrl.AssignmentController.ListByCourse)
			courses.GET("/:id/attendance", ctrl.AttendanceController.Summary)
			courses.GET("/:id/resources", cached, ctrl.CourseController.ListResources)
			courses.POST("/:id/resources", ctrl.CourseController.AddResource)

			// Membership changes run through the service's role checks
			courses.GET("/:id/students", cached, ctrl.CourseController.ListStudents)
			courses.POST("/:id/students", ctrl.CourseController.EnrollStudent)
			courses.DELETE("/:id/students/:userId", ctrl.CourseController.RemoveStudent)
			courses.GET("/:id/faculty", cached, ctrl.CourseController.ListFaculty)
			courses.POST("/:id/faculty", ctrl.CourseController.AddFaculty)

			coursesAdmin := courses.Group("")
			coursesAdmin.Use(middleware.RoleRequired(models.RoleAdmin))
			{
				coursesAdmin.POST("", ctrl.CourseController.Create)
				coursesAdmin.PUT("/:id", ctrl.CourseController.Update)
				coursesAdmin.DELETE("/:id", ctrl.CourseController.Delete)
			}
		}

		// Assignment routes
		assignments := authenticated.Group("/assignments")
		{
			assignments.GET("", cached, ctrl.AssignmentController.GetAll)
			assignments.GET("/:id", cached, ctrl.AssignmentController.GetByID)
			assignments.POST("/:id/submissions", ctrl.AssignmentController.Submit)

			assignmentsFaculty := assignments.Group("")
			assignmentsFaculty.Use(middleware.RoleRequired(models.RoleFaculty, models.RoleAdmin))
			{
				assignmentsFaculty.POST("", ctrl.AssignmentController.Create)
				assignmentsFaculty.PUT("/:id", ctrl.AssignmentController.Update)
				assignmentsFaculty.DELETE("/:id", ctrl.AssignmentController.Delete)
				assignmentsFaculty.GET("/:id/submissions", ctrl.AssignmentController.ListSubmissions)
				assignmentsFaculty.PUT("/:id/submissions/:submissionId/grade", ctrl.AssignmentController.Grade)
			}
		}

		// Attendance routes
		attendance := authenticated.Group("/attendance")
		{
			attendance.GET("/student", ctrl.AttendanceController.MyAttendance)

			attendanceFaculty := attendance.Group("")
			attendanceFaculty.Use(middleware.RoleRequired(models.RoleFaculty, models.RoleAdmin))
			{
				attendanceFaculty.GET("", ctrl.AttendanceController.List)
				attendanceFaculty.POST("", ctrl.AttendanceController.Mark)
				attendanceFaculty.GET("/faculty/courses", ctrl.CourseController.MyCourses)
				attendanceFaculty.GET("/export", ctrl.AttendanceController.Export)
				attendanceFaculty.POST("/export", ctrl.AttendanceController.Export)
			}
		}

		// Job routes
		jobs := authenticated.Group("/jobs")
		{
			jobs.GET("", cached, ctrl.JobController.GetAll)
			jobs.GET("/:id", cached, ctrl.JobController.GetByID)
			jobs.POST("/:id/apply", middleware.RoleRequired(models.RoleStudent), ctrl.JobController.Apply)

			jobsPlacement := jobs.Group("")
			jobsPlacement.Use(middleware.RoleRequired(models.RolePlacement, models.RoleAdmin))
			{
				jobsPlacement.POST("", ctrl.JobController.Create)
				jobsPlacement.PUT("/:id", ctrl.JobController.Update)
				jobsPlacement.DELETE("/:id", ctrl.JobController.Delete)
				jobsPlacement.GET("/stats", ctrl.JobController.Stats)
				jobsPlacement.GET("/:id/applications", ctrl.JobController.ListApplications)
				jobsPlacement.PUT("/:id/applications/:applicationId", ctrl.JobController.UpdateApplicationStatus)
				jobsPlacement.GET("/:id/applications/export", ctrl.JobController.ExportApplications)
			}
		}

		// Canteen routes
		canteen := authenticated.Group("/canteen")
		{
			canteen.GET("/products", cached, ctrl.CanteenController.ListProducts)
			canteen.GET("/products/:id", cached, ctrl.CanteenController.GetProduct)
			canteen.POST("/orders", ctrl.CanteenController.CreateOrder)
			canteen.GET("/orders", ctrl.CanteenController.ListOrders)
			canteen.GET("/orders/:id", ctrl.CanteenController.GetOrder)
			canteen.PUT("/orders/:id/cancel", ctrl.CanteenController.CancelOrder)

			canteenAdmin := canteen.Group("")
			canteenAdmin.Use(middleware.RoleRequired(models.RoleAdmin))
			{
				canteenAdmin.POST("/products", ctrl.CanteenController.CreateProduct)
				canteenAdmin.PUT("/products/:id", ctrl.CanteenController.UpdateProduct)
				canteenAdmin.DELETE("/products/:id", ctrl.CanteenController.DeleteProduct)
				canteenAdmin.PUT("/orders/:id/status", ctrl.CanteenController.UpdateOrderStatus)
				canteenAdmin.PUT("/orders/:id/payment", ctrl.CanteenController.UpdatePaymentStatus)
				canteenAdmin.GET("/dashboard", ctrl.CanteenController.Dashboard)
			}
		}

		// Lost and found routes
		lostItems := authenticated.Group("/lost-items")
		{
			lostItems.GET("", cached, ctrl.LostItemController.GetAll)
			lostItems.GET("/:id", cached, ctrl.LostItemController.GetByID)
			lostItems.POST("", ctrl.LostItemController.Create)
			lostItems.PUT("/:id", ctrl.LostItemController.Update)
			lostItems.DELETE("/:id", ctrl.LostItemController.Delete)
		}

		// File upload
		authenticated.POST("/upload", ctrl.UploadController.Upload)
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.APIResponse{
			Success: true,
			Data:    gin.H{"status": "ok"},
		})
	})

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.APIResponse{
			Success: false,
			Message: "Cannot " + c.Request.Method + " " + c.Request.URL.Path,
		})
	})
}
