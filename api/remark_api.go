package api

import (
	"net/http"

	"studentrecords/domain"

	"github.com/gin-gonic/gin"
)

var remarkRecord = record{title: "Remark", name: "remark", fields: []string{"studentId", "note"}}

type RemarkRequest struct {
	Id        int64   `json:"id"`
	StudentId int64   `json:"studentId" binding:"required"`
	Author    *string `json:"author"`
	Note      string  `json:"note" binding:"required"`
	Date      *string `json:"date"`
}

func (req RemarkRequest) toDomain() domain.Remark {
	return domain.Remark{
		Id:        req.Id,
		StudentId: req.StudentId,
		Author:    req.Author,
		Note:      req.Note,
		Date:      req.Date,
	}
}

func defineRemarkRoutes(r *gin.RouterGroup, ctrl *Controller) {
	r.GET("", ctrl.GetRemarksHandler)
	r.POST("", ctrl.CreateRemarkHandler)
	r.PUT("", ctrl.UpdateRemarkHandler)
	r.DELETE("", ctrl.DeleteRemarkHandler)
	r.GET("/:id", ctrl.GetRemarkHandler)
}

func (ctrl *Controller) GetRemarksHandler(c *gin.Context) {
	remarks, err := ctrl.service.GetAllRemarks(c.Request.Context())
	if err != nil {
		ctrl.storageError(c, remarkRecord, err, "Failed to fetch remarks")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": remarks})
}

func (ctrl *Controller) GetRemarkHandler(c *gin.Context) {
	id, ok := ctrl.pathId(c, remarkRecord)
	if !ok {
		return
	}
	remark, err := ctrl.service.GetRemark(c.Request.Context(), id)
	if err != nil {
		ctrl.storageError(c, remarkRecord, err, "Failed to fetch remark")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": remark})
}

func (ctrl *Controller) CreateRemarkHandler(c *gin.Context) {
	var req RemarkRequest
	if !ctrl.bindRecord(c, remarkRecord, &req, nil) {
		return
	}
	id, err := ctrl.service.CreateRemark(c.Request.Context(), req.toDomain())
	if err != nil {
		ctrl.storageError(c, remarkRecord, err, "Failed to add remark")
		return
	}
	respondMutation(c, "Remark added successfully", id)
}

func (ctrl *Controller) UpdateRemarkHandler(c *gin.Context) {
	var req RemarkRequest
	if !ctrl.bindRecord(c, remarkRecord, &req, &req.Id) {
		return
	}
	if err := ctrl.service.UpdateRemark(c.Request.Context(), req.toDomain()); err != nil {
		ctrl.storageError(c, remarkRecord, err, "Failed to update remark")
		return
	}
	respondMutation(c, "Remark updated successfully", req.Id)
}

func (ctrl *Controller) DeleteRemarkHandler(c *gin.Context) {
	id, ok := ctrl.bindId(c, remarkRecord)
	if !ok {
		return
	}
	if err := ctrl.service.DeleteRemark(c.Request.Context(), id); err != nil {
		ctrl.storageError(c, remarkRecord, err, "Failed to delete remark")
		return
	}
	respondMutation(c, "Remark deleted successfully", id)
}
