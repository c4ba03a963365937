package api

import (
	"net/http"

	"studentrecords/domain"

	"github.com/gin-gonic/gin"
)

var subjectRecord = record{title: "Subject", name: "subject", fields: []string{"subjectCode", "subjectName"}}

type SubjectRequest struct {
	Id             int64   `json:"id"`
	SubjectCode    string  `json:"subjectCode" binding:"required"`
	SubjectName    string  `json:"subjectName" binding:"required"`
	InstructorName *string `json:"instructorName"`
	Credits        *int64  `json:"credits"`
}

func (req SubjectRequest) toDomain() domain.Subject {
	return domain.Subject{
		Id:             req.Id,
		SubjectCode:    req.SubjectCode,
		SubjectName:    req.SubjectName,
		InstructorName: req.InstructorName,
		Credits:        req.Credits,
	}
}

func defineSubjectRoutes(r *gin.RouterGroup, ctrl *Controller) {
	r.GET("", ctrl.GetSubjectsHandler)
	r.POST("", ctrl.CreateSubjectHandler)
	r.PUT("", ctrl.UpdateSubjectHandler)
	r.DELETE("", ctrl.DeleteSubjectHandler)
	r.GET("/:id", ctrl.GetSubjectHandler)
}

func (ctrl *Controller) GetSubjectsHandler(c *gin.Context) {
	subjects, err := ctrl.service.GetAllSubjects(c.Request.Context())
	if err != nil {
		ctrl.storageError(c, subjectRecord, err, "Failed to fetch subjects")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": subjects})
}

func (ctrl *Controller) GetSubjectHandler(c *gin.Context) {
	id, ok := ctrl.pathId(c, subjectRecord)
	if !ok {
		return
	}
	subject, err := ctrl.service.GetSubject(c.Request.Context(), id)
	if err != nil {
		ctrl.storageError(c, subjectRecord, err, "Failed to fetch subject")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": subject})
}

func (ctrl *Controller) CreateSubjectHandler(c *gin.Context) {
	var req SubjectRequest
	if !ctrl.bindRecord(c, subjectRecord, &req, nil) {
		return
	}
	id, err := ctrl.service.CreateSubject(c.Request.Context(), req.toDomain())
	if err != nil {
		ctrl.storageError(c, subjectRecord, err, "Failed to add subject")
		return
	}
	respondMutation(c, "Subject added successfully", id)
}

func (ctrl *Controller) UpdateSubjectHandler(c *gin.Context) {
	var req SubjectRequest
	if !ctrl.bindRecord(c, subjectRecord, &req, &req.Id) {
		return
	}
	if err := ctrl.service.UpdateSubject(c.Request.Context(), req.toDomain()); err != nil {
		ctrl.storageError(c, subjectRecord, err, "Failed to update subject")
		return
	}
	respondMutation(c, "Subject updated successfully", req.Id)
}

func (ctrl *Controller) DeleteSubjectHandler(c *gin.Context) {
	id, ok := ctrl.bindId(c, subjectRecord)
	if !ok {
		return
	}
	if err := ctrl.service.DeleteSubject(c.Request.Context(), id); err != nil {
		ctrl.storageError(c, subjectRecord, err, "Failed to delete subject")
		return
	}
	respondMutation(c, "Subject deleted successfully", id)
}
