package api

import (
	"net/http"

	"studentrecords/domain"

	"github.com/gin-gonic/gin"
)

var enrollmentRecord = record{title: "Enrollment", name: "enrollment", fields: []string{"studentId"}}

type EnrollmentRequest struct {
	Id        int64   `json:"id"`
	StudentId int64   `json:"studentId" binding:"required"`
	SubjectId *int64  `json:"subjectId"`
	Semester  *string `json:"semester"`
	Year      *int64  `json:"year"`
	Status    *string `json:"status"`
}

func (req EnrollmentRequest) toDomain() domain.Enrollment {
	return domain.Enrollment{
		Id:        req.Id,
		StudentId: req.StudentId,
		SubjectId: req.SubjectId,
		Semester:  req.Semester,
		Year:      req.Year,
		Status:    req.Status,
	}
}

func defineEnrollmentRoutes(r *gin.RouterGroup, ctrl *Controller) {
	r.GET("", ctrl.GetEnrollmentsHandler)
	r.POST("", ctrl.CreateEnrollmentHandler)
	r.PUT("", ctrl.UpdateEnrollmentHandler)
	r.DELETE("", ctrl.DeleteEnrollmentHandler)
	r.GET("/:id", ctrl.GetEnrollmentHandler)
}

func (ctrl *Controller) GetEnrollmentsHandler(c *gin.Context) {
	enrollments, err := ctrl.service.GetAllEnrollments(c.Request.Context())
	if err != nil {
		ctrl.storageError(c, enrollmentRecord, err, "Failed to fetch enrollment")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": enrollments})
}

func (ctrl *Controller) GetEnrollmentHandler(c *gin.Context) {
	id, ok := ctrl.pathId(c, enrollmentRecord)
	if !ok {
		return
	}
	enrollment, err := ctrl.service.GetEnrollment(c.Request.Context(), id)
	if err != nil {
		ctrl.storageError(c, enrollmentRecord, err, "Failed to fetch enrollment")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": enrollment})
}

func (ctrl *Controller) CreateEnrollmentHandler(c *gin.Context) {
	var req EnrollmentRequest
	if !ctrl.bindRecord(c, enrollmentRecord, &req, nil) {
		return
	}
	id, err := ctrl.service.CreateEnrollment(c.Request.Context(), req.toDomain())
	if err != nil {
		ctrl.storageError(c, enrollmentRecord, err, "Failed to add enrollment")
		return
	}
	respondMutation(c, "Enrollment added successfully", id)
}

func (ctrl *Controller) UpdateEnrollmentHandler(c *gin.Context) {
	var req EnrollmentRequest
	if !ctrl.bindRecord(c, enrollmentRecord, &req, &req.Id) {
		return
	}
	if err := ctrl.service.UpdateEnrollment(c.Request.Context(), req.toDomain()); err != nil {
		ctrl.storageError(c, enrollmentRecord, err, "Failed to update enrollment")
		return
	}
	respondMutation(c, "Enrollment updated successfully", req.Id)
}

func (ctrl *Controller) DeleteEnrollmentHandler(c *gin.Context) {
	id, ok := ctrl.bindId(c, enrollmentRecord)
	if !ok {
		return
	}
	if err := ctrl.service.DeleteEnrollment(c.Request.Context(), id); err != nil {
		ctrl.storageError(c, enrollmentRecord, err, "Failed to delete enrollment")
		return
	}
	respondMutation(c, "Enrollment deleted successfully", id)
}
