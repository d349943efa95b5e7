package controllers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"pmo-review-api/config"
	"pmo-review-api/middleware"
	"pmo-review-api/report"
	"pmo-review-api/services"
	"pmo-review-api/summary"
	"pmo-review-api/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Summarizer interface {
	Summarize(ctx context.Context, scope summary.Scope) (*summary.Result, error)
}

type ReportMailer interface {
	Configured() bool
	SendMail(to []string, subject, html string, attachments ...config.Attachment) error
}

type ReportController struct {
	summarizer Summarizer
	mailer     ReportMailer
	log        *zap.Logger
	now        func() time.Time
}

func NewReportController(summarizer Summarizer, mailer ReportMailer, logger *zap.Logger) *ReportController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportController{summarizer: summarizer, mailer: mailer, log: logger, now: time.Now}
}

type summarizeRequest struct {
	Scope string `json:"scope"`
}

// Summarize asks the model for a report over every stored review. Bad model
// output is still a 200 carrying {scope, error, raw}.
func (rc *ReportController) Summarize(c *gin.Context) {
	var req summarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid scope"})
		return
	}
	scope, err := summary.ParseScope(req.Scope)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid scope"})
		return
	}

	// A client disconnect must not abort a model call already paid for.
	res, err := rc.summarizer.Summarize(services.PersistentContext(c.Request.Context()), scope)
	if err != nil {
		rc.summarizeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (rc *ReportController) summarizeError(c *gin.Context, err error) {
	var cfgErr *summary.ConfigurationError
	var extErr *summary.ExternalServiceError
	switch {
	case errors.Is(err, summary.ErrInvalidScope):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid scope"})
	case errors.As(err, &cfgErr):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gemini API key not configured", "details": cfgErr.Error()})
	case errors.As(err, &extErr):
		body := gin.H{"error": "Failed to generate report", "details": extErr.Message}
		if extErr.StatusCode != 0 {
			body["statusCode"] = extErr.StatusCode
		}
		c.JSON(http.StatusInternalServerError, body)
	default:
		rc.log.Error("report generation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report", "details": err.Error()})
	}
}

// Export renders a posted summary result as a PDF download.
func (rc *ReportController) Export(c *gin.Context) {
	var res summary.Result
	if err := c.ShouldBindJSON(&res); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !res.Scope.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid scope"})
		return
	}

	now := rc.now()
	var buf bytes.Buffer
	if err := report.Render(&buf, &res, now); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render report", "details": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, report.FileName(res.Scope, now)))
	c.Header("Content-Length", strconv.Itoa(buf.Len()))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

type emailReportRequest struct {
	Recipients []string       `json:"recipients" binding:"required,min=1,dive,email"`
	Report     summary.Result `json:"report"`
}

// Email renders the posted report and mails it to the recipients as a PDF
// attachment.
func (rc *ReportController) Email(c *gin.Context) {
	var req emailReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.Report.Scope.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid scope"})
		return
	}
	if rc.mailer == nil || !rc.mailer.Configured() {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Email delivery not configured", "details": config.ErrMailerNotConfigured.Error()})
		return
	}

	now := rc.now()
	var buf bytes.Buffer
	if err := report.Render(&buf, &req.Report, now); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render report", "details": err.Error()})
		return
	}

	subject := fmt.Sprintf("PMO Report (%s) - %s", req.Report.Scope, utils.FormatReportDate(now))
	html := buildEmailTemplate(subject, []string{
		"The PMO review report is attached to this message.",
		"Sent by " + c.GetString(middleware.NameKey) + ".",
	}, []emailMetaItem{
		{Label: "Grouped by", Value: string(req.Report.Scope)},
		{Label: "Groups", Value: strconv.Itoa(groupCount(&req.Report))},
		{Label: "Generated", Value: utils.FormatReportDate(now)},
	})

	attachment := config.Attachment{Name: report.FileName(req.Report.Scope, now), Data: buf.Bytes()}
	if err := rc.mailer.SendMail(req.Recipients, subject, html, attachment); err != nil {
		rc.log.Error("report email failed", zap.Error(err), zap.Int("recipients", len(req.Recipients)))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send report", "details": err.Error()})
		return
	}

	rc.log.Info("report emailed", zap.String("scope", string(req.Report.Scope)), zap.Int("recipients", len(req.Recipients)))
	c.JSON(http.StatusOK, gin.H{"message": "Report sent"})
}

func groupCount(r *summary.Result) int {
	if r.Summary == nil {
		return 0
	}
	return len(r.Summary.Groups)
}
