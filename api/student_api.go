package api

import (
	"net/http"

	"studentrecords/domain"

	"github.com/gin-gonic/gin"
)

var studentRecord = record{title: "Student", name: "student", fields: []string{"firstName", "lastName"}}

type StudentRequest struct {
	Id        int64   `json:"id"`
	FirstName string  `json:"firstName" binding:"required"`
	LastName  string  `json:"lastName" binding:"required"`
	Birthdate *string `json:"birthdate"`
	Email     *string `json:"email"`
	Gender    *string `json:"gender"`
	Course    *string `json:"course"`
	Year      *int64  `json:"year"`
	Block     *string `json:"block"`
}

func (req StudentRequest) toDomain() domain.Student {
	return domain.Student{
		Id:        req.Id,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Birthdate: req.Birthdate,
		Email:     req.Email,
		Gender:    req.Gender,
		Course:    req.Course,
		Year:      req.Year,
		Block:     req.Block,
	}
}

func defineStudentRoutes(r *gin.RouterGroup, ctrl *Controller) {
	r.GET("", ctrl.GetStudentsHandler)
	r.POST("", ctrl.CreateStudentHandler)
	r.PUT("", ctrl.UpdateStudentHandler)
	r.DELETE("", ctrl.DeleteStudentHandler)
	r.GET("/:id", ctrl.GetStudentHandler)
	r.GET("/:id/report", ctrl.StudentReportHandler)
}

func (ctrl *Controller) GetStudentsHandler(c *gin.Context) {
	students, err := ctrl.service.GetAllStudents(c.Request.Context())
	if err != nil {
		ctrl.storageError(c, studentRecord, err, "Failed to fetch students")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": students})
}

func (ctrl *Controller) GetStudentHandler(c *gin.Context) {
	id, ok := ctrl.pathId(c, studentRecord)
	if !ok {
		return
	}
	student, err := ctrl.service.GetStudent(c.Request.Context(), id)
	if err != nil {
		ctrl.storageError(c, studentRecord, err, "Failed to fetch student")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": student})
}

func (ctrl *Controller) CreateStudentHandler(c *gin.Context) {
	var req StudentRequest
	if !ctrl.bindRecord(c, studentRecord, &req, nil) {
		return
	}
	id, err := ctrl.service.CreateStudent(c.Request.Context(), req.toDomain())
	if err != nil {
		ctrl.storageError(c, studentRecord, err, "Failed to add student")
		return
	}
	respondMutation(c, "Student added successfully", id)
}

func (ctrl *Controller) UpdateStudentHandler(c *gin.Context) {
	var req StudentRequest
	if !ctrl.bindRecord(c, studentRecord, &req, &req.Id) {
		return
	}
	if err := ctrl.service.UpdateStudent(c.Request.Context(), req.toDomain()); err != nil {
		ctrl.storageError(c, studentRecord, err, "Failed to update student")
		return
	}
	respondMutation(c, "Student updated successfully", req.Id)
}

func (ctrl *Controller) DeleteStudentHandler(c *gin.Context) {
	id, ok := ctrl.bindId(c, studentRecord)
	if !ok {
		return
	}
	if err := ctrl.service.DeleteStudent(c.Request.Context(), id); err != nil {
		ctrl.storageError(c, studentRecord, err, "Failed to delete student")
		return
	}
	respondMutation(c, "Student deleted successfully", id)
}
