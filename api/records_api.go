package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"studentrecords/srv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

// record describes one CRUD resource for error and success messages.
type record struct {
	title  string // "Student"
	name   string // "student"
	fields []string
}

func (r record) missingFields(withId bool) string {
	fields := r.fields
	if withId {
		fields = append([]string{"id"}, fields...)
	}
	return fmt.Sprintf("Missing required fields (%s)", strings.Join(fields, ", "))
}

type idRequest struct {
	Id int64 `json:"id"`
}

type MutationResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Id      int64  `json:"id"`
}

// bindRecord decodes the JSON body into req. Presence of required fields is
// enforced through binding tags; updates also require a non-zero id.
func (ctrl *Controller) bindRecord(c *gin.Context, r record, req interface{}, id *int64) bool {
	err := c.ShouldBindJSON(req)
	var validationErrs validator.ValidationErrors
	if err != nil && !errors.As(err, &validationErrs) {
		ctrl.ErrorHandler(c, http.StatusBadRequest, errors.New("Invalid request body"))
		return false
	}
	if err != nil || (id != nil && *id == 0) {
		ctrl.ErrorHandler(c, http.StatusBadRequest, errors.New(r.missingFields(id != nil)))
		return false
	}
	return true
}

// bindId reads {"id": n} from the body, as deletes carry their target there.
func (ctrl *Controller) bindId(c *gin.Context, r record) (int64, bool) {
	var req idRequest
	err := c.ShouldBindJSON(&req)
	if err != nil && !errors.Is(err, io.EOF) {
		ctrl.ErrorHandler(c, http.StatusBadRequest, errors.New("Invalid request body"))
		return 0, false
	}
	if req.Id == 0 {
		ctrl.ErrorHandler(c, http.StatusBadRequest, fmt.Errorf("Missing %s ID", r.name))
		return 0, false
	}
	return req.Id, true
}

func (ctrl *Controller) pathId(c *gin.Context, r record) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		ctrl.ErrorHandler(c, http.StatusBadRequest, fmt.Errorf("Invalid %s ID", r.name))
		return 0, false
	}
	return id, true
}

// storageError maps storage failures onto responses: a missing target is 404,
// a dangling student or subject reference is 400, anything else is 500 with
// the generic failure message.
func (ctrl *Controller) storageError(c *gin.Context, r record, err error, failure string) {
	switch {
	case errors.Is(err, srv.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": r.title + " not found"})
	case errors.Is(err, srv.ErrInvalidReference):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Referenced student or subject does not exist"})
	default:
		log.Ctx(c.Request.Context()).Error().Err(err).Str("resource", r.name).Msg(failure)
		c.JSON(http.StatusInternalServerError, gin.H{"error": failure})
	}
}

func respondMutation(c *gin.Context, message string, id int64) {
	c.JSON(http.StatusOK, MutationResponse{Success: true, Message: message, Id: id})
}
