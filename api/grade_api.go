package api

import (
	"errors"
	"net/http"

	"studentrecords/domain"

	"github.com/gin-gonic/gin"
)

var gradeRecord = record{title: "Grade", name: "grade", fields: []string{"studentId", "subjectId"}}

type GradeRequest struct {
	Id           int64   `json:"id"`
	StudentId    int64   `json:"studentId" binding:"required"`
	SubjectId    int64   `json:"subjectId" binding:"required"`
	MidtermGrade *int64  `json:"midtermGrade"`
	FinalGrade   *int64  `json:"finalGrade"`
	Semester     *string `json:"semester"`
	Year         *int64  `json:"year"`
}

func (req GradeRequest) toDomain() domain.Grade {
	return domain.Grade{
		Id:           req.Id,
		StudentId:    req.StudentId,
		SubjectId:    req.SubjectId,
		MidtermGrade: req.MidtermGrade,
		FinalGrade:   req.FinalGrade,
		Semester:     req.Semester,
		Year:         req.Year,
	}
}

func defineGradeRoutes(r *gin.RouterGroup, ctrl *Controller) {
	r.GET("", ctrl.GetGradesHandler)
	r.POST("", ctrl.CreateGradeHandler)
	r.PUT("", ctrl.UpdateGradeHandler)
	r.DELETE("", ctrl.DeleteGradeHandler)
	r.GET("/finals", ctrl.GetGradeRowsHandler)
	r.GET("/:id", ctrl.GetGradeHandler)
}

func (ctrl *Controller) GetGradesHandler(c *gin.Context) {
	grades, err := ctrl.service.GetAllGrades(c.Request.Context())
	if err != nil {
		ctrl.storageError(c, gradeRecord, err, "Failed to fetch grades")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": grades})
}

func (ctrl *Controller) GetGradeHandler(c *gin.Context) {
	id, ok := ctrl.pathId(c, gradeRecord)
	if !ok {
		return
	}
	grade, err := ctrl.service.GetGrade(c.Request.Context(), id)
	if err != nil {
		ctrl.storageError(c, gradeRecord, err, "Failed to fetch grade")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": grade})
}

// GetGradeRowsHandler lists midterm (type=grades) or final (type=finals)
// marks with student names.
func (ctrl *Controller) GetGradeRowsHandler(c *gin.Context) {
	kind := domain.GradeKind(c.Query("type"))
	if kind != domain.GradeKindMidterm && kind != domain.GradeKindFinal {
		ctrl.ErrorHandler(c, http.StatusBadRequest, errors.New(`Invalid type parameter. Use "grades" or "finals".`))
		return
	}

	rows, err := ctrl.service.GetGradeRows(c.Request.Context(), kind)
	if err != nil {
		ctrl.storageError(c, gradeRecord, err, "Failed to fetch grades")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rows})
}

func (ctrl *Controller) CreateGradeHandler(c *gin.Context) {
	var req GradeRequest
	if !ctrl.bindRecord(c, gradeRecord, &req, nil) {
		return
	}
	id, err := ctrl.service.CreateGrade(c.Request.Context(), req.toDomain())
	if err != nil {
		ctrl.storageError(c, gradeRecord, err, "Failed to add grade")
		return
	}
	respondMutation(c, "Grade added successfully", id)
}

func (ctrl *Controller) UpdateGradeHandler(c *gin.Context) {
	var req GradeRequest
	if !ctrl.bindRecord(c, gradeRecord, &req, &req.Id) {
		return
	}
	if err := ctrl.service.UpdateGrade(c.Request.Context(), req.toDomain()); err != nil {
		ctrl.storageError(c, gradeRecord, err, "Failed to update grade")
		return
	}
	respondMutation(c, "Grade updated successfully", req.Id)
}

func (ctrl *Controller) DeleteGradeHandler(c *gin.Context) {
	id, ok := ctrl.bindId(c, gradeRecord)
	if !ok {
		return
	}
	if err := ctrl.service.DeleteGrade(c.Request.Context(), id); err != nil {
		ctrl.storageError(c, gradeRecord, err, "Failed to delete grade")
		return
	}
	respondMutation(c, "Grade deleted successfully", id)
}
