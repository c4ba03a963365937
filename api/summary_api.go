package api

import (
	"context"
	"errors"
	"net/http"

	"studentrecords/llm"
	"studentrecords/report"
	"studentrecords/srv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	SummaryMessageFragment = "fragment"
	SummaryMessageDone     = "done"
	SummaryMessageError    = "error"
)

// SummaryMessage is one frame sent over the summary websocket.
type SummaryMessage struct {
	Type     string `json:"type"`
	Fragment string `json:"fragment,omitempty"`
	Summary  string `json:"summary,omitempty"`
	Error    string `json:"error,omitempty"`
}

type CustomReportRequest struct {
	Type string `json:"type"`
}

func isGenerationFailure(err error) bool {
	var transportErr *llm.TransportError
	var genErr *llm.GenerationError
	return errors.As(err, &transportErr) || errors.As(err, &genErr)
}

// summaryError reports model failures as 502 with the cause in "details", so
// clients can tell them apart from storage failures.
func (ctrl *Controller) summaryError(c *gin.Context, err error) {
	log.Ctx(c.Request.Context()).Error().Err(err).Msg("Failed to generate summary")
	if isGenerationFailure(err) {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to generate summary", "details": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate summary"})
}

func (ctrl *Controller) GetSummaryHandler(c *gin.Context) {
	result, err := ctrl.summarizer.SummarizeStudents(c.Request.Context())
	if err != nil {
		ctrl.summaryError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (ctrl *Controller) CustomReportHandler(c *gin.Context) {
	var req CustomReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ctrl.ErrorHandler(c, http.StatusBadRequest, errors.New("Invalid request body"))
		return
	}

	summary, err := ctrl.summarizer.CustomReport(c.Request.Context(), req.Type)
	if err != nil {
		if errors.Is(err, report.ErrInvalidReportType) {
			ctrl.ErrorHandler(c, http.StatusBadRequest, errors.New("Invalid report type"))
			return
		}
		ctrl.summaryError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

func (ctrl *Controller) StudentReportHandler(c *gin.Context) {
	id, ok := ctrl.pathId(c, studentRecord)
	if !ok {
		return
	}

	summary, err := ctrl.summarizer.StudentReport(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, srv.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
			return
		}
		ctrl.summaryError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// SummaryWebsocketHandler streams the students summary as it is generated.
// Closing the socket from the client side cancels generation.
func (ctrl *Controller) SummaryWebsocketHandler(c *gin.Context) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     CheckWebSocketOrigin(ctrl.allowedOrigins),
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Ctx(c.Request.Context()).Warn().Err(err).Msg("Failed to upgrade connection")
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	go func() {
		for {
			if _, _, err := conn.NextReader(); err != nil {
				cancel()
				return
			}
		}
	}()

	result, err := ctrl.summarizer.StreamStudents(ctx, func(fragment string) error {
		ctrl.metrics.ObserveFragment()
		return conn.WriteJSON(SummaryMessage{Type: SummaryMessageFragment, Fragment: fragment})
	})

	final := SummaryMessage{Type: SummaryMessageDone, Summary: result.Summary}
	if err != nil {
		if ctx.Err() != nil {
			log.Ctx(ctx).Debug().Msg("Summary websocket closed by client")
			return
		}
		log.Ctx(ctx).Error().Err(err).Msg("Summary stream failed")
		final = SummaryMessage{Type: SummaryMessageError, Error: err.Error()}
	}

	if err := conn.WriteJSON(final); err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("Failed to write summary result to websocket")
		return
	}
	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
