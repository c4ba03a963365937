package api

import (
	"errors"
	"net/http"

	"studentrecords/domain"

	"github.com/gin-gonic/gin"
)

var attendanceRecord = record{title: "Attendance record", name: "attendance", fields: []string{"studentId", "date", "status"}}

type AttendanceRequest struct {
	Id        int64                   `json:"id"`
	StudentId int64                   `json:"studentId" binding:"required"`
	SubjectId *int64                  `json:"subjectId"`
	Date      string                  `json:"date" binding:"required"`
	Status    domain.AttendanceStatus `json:"status" binding:"required"`
}

func (req AttendanceRequest) toDomain() domain.Attendance {
	return domain.Attendance{
		Id:        req.Id,
		StudentId: req.StudentId,
		SubjectId: req.SubjectId,
		Date:      req.Date,
		Status:    req.Status,
	}
}

func defineAttendanceRoutes(r *gin.RouterGroup, ctrl *Controller) {
	r.GET("", ctrl.GetAttendanceListHandler)
	r.POST("", ctrl.CreateAttendanceHandler)
	r.PUT("", ctrl.UpdateAttendanceHandler)
	r.DELETE("", ctrl.DeleteAttendanceHandler)
	r.GET("/:id", ctrl.GetAttendanceHandler)
}

func (ctrl *Controller) bindAttendance(c *gin.Context, req *AttendanceRequest, id *int64) bool {
	if !ctrl.bindRecord(c, attendanceRecord, req, id) {
		return false
	}
	if err := req.Status.Validate(); err != nil {
		ctrl.ErrorHandler(c, http.StatusBadRequest, errors.New("Invalid attendance status"))
		return false
	}
	return true
}

func (ctrl *Controller) GetAttendanceListHandler(c *gin.Context) {
	records, err := ctrl.service.GetAllAttendance(c.Request.Context())
	if err != nil {
		ctrl.storageError(c, attendanceRecord, err, "Failed to fetch attendance")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": records})
}

func (ctrl *Controller) GetAttendanceHandler(c *gin.Context) {
	id, ok := ctrl.pathId(c, attendanceRecord)
	if !ok {
		return
	}
	attendance, err := ctrl.service.GetAttendance(c.Request.Context(), id)
	if err != nil {
		ctrl.storageError(c, attendanceRecord, err, "Failed to fetch attendance")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": attendance})
}

func (ctrl *Controller) CreateAttendanceHandler(c *gin.Context) {
	var req AttendanceRequest
	if !ctrl.bindAttendance(c, &req, nil) {
		return
	}
	id, err := ctrl.service.CreateAttendance(c.Request.Context(), req.toDomain())
	if err != nil {
		ctrl.storageError(c, attendanceRecord, err, "Failed to add attendance")
		return
	}
	respondMutation(c, "Attendance added successfully", id)
}

func (ctrl *Controller) UpdateAttendanceHandler(c *gin.Context) {
	var req AttendanceRequest
	if !ctrl.bindAttendance(c, &req, &req.Id) {
		return
	}
	if err := ctrl.service.UpdateAttendance(c.Request.Context(), req.toDomain()); err != nil {
		ctrl.storageError(c, attendanceRecord, err, "Failed to update attendance")
		return
	}
	respondMutation(c, "Attendance updated successfully", req.Id)
}

func (ctrl *Controller) DeleteAttendanceHandler(c *gin.Context) {
	id, ok := ctrl.bindId(c, attendanceRecord)
	if !ok {
		return
	}
	if err := ctrl.service.DeleteAttendance(c.Request.Context(), id); err != nil {
		ctrl.storageError(c, attendanceRecord, err, "Failed to delete attendance")
		return
	}
	respondMutation(c, "Attendance deleted successfully", id)
}
