package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/schoolhub/backend/internal/app/controllers"
	"github.com/schoolhub/backend/internal/app/models"
	"github.com/schoolhub/backend/internal/middleware"
)

// Controllers groups everything SetupRouter needs to register routes.
type Controllers struct {
	Campus            *controllers.CampusController
	FeeTemplate       *controllers.FeeTemplateController
	Fee               *controllers.FeeController
	Payment           *controllers.PaymentController
	Syllabus          *controllers.SyllabusController
	StudentRecord     *controllers.StudentRecordController
	LeavePolicy       *controllers.LeavePolicyController
	ParentFeedControl *controllers.ParentFeedControlController
	ChatPreference    *controllers.ChatPreferenceController
	Device            *controllers.DeviceController
	QuizSession       *controllers.QuizSessionController
	AppBuild          *controllers.AppBuildController
	Geo               *controllers.GeoController
}

// SetupRouter registers all application routes.
func SetupRouter(router *gin.Engine, c *Controllers, authMiddleware *middleware.AuthMiddleware) {
	router.GET("/ping", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	v1 := router.Group("/api/v1")

	// Geo lookups are public; everything else requires a token.
	geo := v1.Group("/geo")
	{
		geo.GET("/countries", c.Geo.GetCountries)
		geo.GET("/countries/:country/states", c.Geo.GetStates)
		geo.GET("/states/:state/cities", c.Geo.GetCities)
	}

	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	campuses := authenticated.Group("/campuses")
	{
		campuses.POST("", c.Campus.CreateCampus)
		campuses.GET("", c.Campus.GetAllCampuses)
		campuses.GET("/:id", c.Campus.GetCampusByID)
		campuses.PATCH("/:id", c.Campus.UpdateCampus)
		campuses.DELETE("/:id", c.Campus.DeleteCampus)
	}

	feeTemplates := authenticated.Group("/fee-templates")
	{
		feeTemplates.POST("", c.FeeTemplate.CreateFeeTemplate)
		feeTemplates.GET("", c.FeeTemplate.GetAllFeeTemplates)
		feeTemplates.GET("/:id", c.FeeTemplate.GetFeeTemplateByID)
		feeTemplates.PATCH("/:id", c.FeeTemplate.UpdateFeeTemplate)
		feeTemplates.DELETE("/:id", c.FeeTemplate.DeleteFeeTemplate)
	}

	fees := authenticated.Group("/fees")
	{
		fees.POST("", c.Fee.CreateFee)
		fees.GET("", c.Fee.GetAllFees)
		fees.GET("/:id", c.Fee.GetFeeByID)
		fees.PATCH("/:id", c.Fee.UpdateFee)
		fees.DELETE("/:id", c.Fee.DeleteFee)
	}

	payments := authenticated.Group("/payments")
	{
		payments.POST("", c.Payment.CreatePayment)
		payments.GET("", c.Payment.GetAllPayments)
		payments.GET("/:id", c.Payment.GetPaymentByID)
		payments.PATCH("/:id", c.Payment.UpdatePayment)
		payments.DELETE("/:id", c.Payment.DeletePayment)
	}

	syllabi := authenticated.Group("/syllabi")
	{
		syllabi.POST("", c.Syllabus.CreateSyllabus)
		syllabi.GET("", c.Syllabus.GetAllSyllabi)
		syllabi.GET("/:id", c.Syllabus.GetSyllabusByID)
		syllabi.PATCH("/:id", c.Syllabus.UpdateSyllabus)
		syllabi.DELETE("/:id", c.Syllabus.DeleteSyllabus)
	}

	studentRecords := authenticated.Group("/student-records")
	{
		studentRecords.POST("", c.StudentRecord.CreateStudentRecord)
		studentRecords.GET("", c.StudentRecord.GetAllStudentRecords)
		studentRecords.GET("/:id", c.StudentRecord.GetStudentRecordByID)
		studentRecords.PATCH("/:id", c.StudentRecord.UpdateStudentRecord)
		studentRecords.DELETE("/:id", c.StudentRecord.DeleteStudentRecord)
	}

	leavePolicies := authenticated.Group("/leave-policies")
	{
		leavePolicies.POST("", c.LeavePolicy.CreateLeavePolicy)
		leavePolicies.GET("", c.LeavePolicy.GetAllLeavePolicies)
		leavePolicies.GET("/:id", c.LeavePolicy.GetLeavePolicyByID)
		leavePolicies.PATCH("/:id", c.LeavePolicy.UpdateLeavePolicy)
		leavePolicies.DELETE("/:id", c.LeavePolicy.DeleteLeavePolicy)
	}

	feedControls := authenticated.Group("/feed-controls")
	{
		// Only parents flip the switch; status reads stay open to any role.
		feedControls.PUT("/toggle",
			authMiddleware.RoleRequired(models.RoleParent),
			c.ParentFeedControl.ToggleFeedAccess)
		feedControls.GET("/status", c.ParentFeedControl.GetFeedStatus)
		feedControls.GET("", c.ParentFeedControl.GetAllFeedControls)
	}

	chatPreferences := authenticated.Group("/chat-preferences")
	{
		chatPreferences.PUT("", c.ChatPreference.UpsertChatPreference)
		chatPreferences.GET("", c.ChatPreference.GetAllChatPreferences)
		chatPreferences.GET("/:userId", c.ChatPreference.GetChatPreferenceByUserID)
		chatPreferences.DELETE("/:userId", c.ChatPreference.DeleteChatPreference)
	}

	devices := authenticated.Group("/devices")
	{
		devices.POST("", c.Device.RegisterDevice)
		devices.GET("", c.Device.GetAllDevices)
		devices.GET("/:id", c.Device.GetDeviceByID)
		devices.DELETE("/:id", c.Device.DeleteDevice)
	}

	quizSessions := authenticated.Group("/quiz-sessions")
	{
		quizSessions.POST("", c.QuizSession.CreateQuizSession)
		quizSessions.GET("", c.QuizSession.GetAllQuizSessions)
		quizSessions.GET("/:id", c.QuizSession.GetQuizSessionByID)
		quizSessions.POST("/:id/start", c.QuizSession.StartQuizSession)
		quizSessions.POST("/:id/submit", c.QuizSession.SubmitQuizSession)
		quizSessions.POST("/:id/abandon", c.QuizSession.AbandonQuizSession)
		quizSessions.DELETE("/:id", c.QuizSession.DeleteQuizSession)
	}

	appBuilds := authenticated.Group("/app-builds")
	{
		appBuilds.POST("", c.AppBuild.UploadAppBuild)
		appBuilds.GET("", c.AppBuild.GetAllAppBuilds)
		appBuilds.GET("/latest", c.AppBuild.GetLatestAppBuild)
		appBuilds.GET("/:id", c.AppBuild.GetAppBuildByID)
		appBuilds.GET("/:id/download", c.AppBuild.DownloadAppBuild)
		appBuilds.DELETE("/:id", c.AppBuild.DeleteAppBuild)
	}
}
