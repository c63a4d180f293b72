package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/yourusername/survey-api/internal/middleware"
)

// Handlers bundles every HTTP handler served under /api
type Handlers struct {
	Auth           *AuthHandler
	Questionnaires *QuestionnaireHandler
	Attempts       *AttemptHandler
	Catalog        *CatalogHandler
}

// RegisterRoutes mounts the API on router. loginLimit guards the login endpoint and may be nil.
func RegisterRoutes(router *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware, loginLimit gin.HandlerFunc) {
	api := router.Group("/api")

	authGroup := api.Group("/auth")
	{
		login := []gin.HandlerFunc{h.Auth.Login}
		if loginLimit != nil {
			login = append([]gin.HandlerFunc{loginLimit}, login...)
		}
		authGroup.POST("/login", login...)
	}

	authed := api.Group("")
	authed.Use(authMiddleware.RequireAuth())

	questionnaires := authed.Group("/questionnaires")
	{
		questionnaires.GET("", authMiddleware.StaffOnly(), h.Questionnaires.ListQuestionnaires)
		questionnaires.POST("", authMiddleware.StaffOnly(), h.Questionnaires.CreateQuestionnaire)

		withID := questionnaires.Group("/:id")
		withID.Use(middleware.ExtractUintParam("id", "questionnaireID"))
		{
			withID.GET("", h.Questionnaires.GetQuestionnaire)
			withID.PUT("", authMiddleware.StaffOnly(), h.Questionnaires.EditQuestionnaire)
			withID.DELETE("", authMiddleware.AdminOnly(), h.Questionnaires.DeleteQuestionnaire)
			withID.GET("/responses", authMiddleware.StaffOnly(), h.Questionnaires.GetResponses)
			withID.GET("/responses/export", authMiddleware.StaffOnly(), h.Questionnaires.ExportResponses)
		}
	}

	authed.POST("/windows/:id/attempts", middleware.ExtractUintParam("id", "windowID"), h.Attempts.SubmitAttempt)

	staff := authed.Group("")
	staff.Use(authMiddleware.StaffOnly())
	{
		programmes := staff.Group("/programmes")
		programmes.GET("", h.Catalog.ListProgrammes)
		programmes.POST("", h.Catalog.CreateProgramme)
		programmeWithID := programmes.Group("/:id", middleware.ExtractUintParam("id", "programmeID"))
		programmeWithID.GET("", h.Catalog.GetProgramme)
		programmeWithID.DELETE("", h.Catalog.DeleteProgramme)

		classes := staff.Group("/classes")
		classes.GET("", h.Catalog.ListClasses)
		classes.POST("", h.Catalog.CreateClass)
		classWithID := classes.Group("/:id", middleware.ExtractUintParam("id", "classID"))
		classWithID.GET("", h.Catalog.GetClass)
		classWithID.DELETE("", h.Catalog.DeleteClass)
		members := classWithID.Group("/people/:personId", middleware.ExtractUintParam("personId", "personID"))
		members.POST("", h.Catalog.Enrol)
		members.DELETE("", h.Catalog.Unenrol)
	}

	authed.POST("/people", authMiddleware.AdminOnly(), h.Catalog.CreatePerson)
}
