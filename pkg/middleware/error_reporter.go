package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"logiroute/ms-delivery/pkg/utils"
)

// reportedClientErrors are the 4xx codes that still deserve attention.
var reportedClientErrors = map[int]bool{
	http.StatusRequestTimeout:      true,
	http.StatusConflict:            true,
	http.StatusUnprocessableEntity: true,
	http.StatusTooManyRequests:     true,
}

func shouldReport(status int) bool {
	return status >= http.StatusInternalServerError || reportedClientErrors[status]
}

// statusWatcher calls onStatus with the first status set after it was armed.
type statusWatcher struct {
	gin.ResponseWriter
	onStatus func(code int)
}

func (w *statusWatcher) WriteHeader(code int) {
	if f := w.onStatus; f != nil {
		w.onStatus = nil
		f(code)
	}
	w.ResponseWriter.WriteHeader(code)
}

// ErrorReporter sends 5xx and selected 4xx responses to rep and turns panics into 500.
// Errors left in c.Errors are reported once an outer middleware renders them.
func ErrorReporter(rep Reporter) gin.HandlerFunc {
	return func(c *gin.Context) {
		report := Report{
			Method:  c.Request.Method,
			Path:    c.Request.URL.Path,
			UserID:  c.GetHeader(utils.HeaderUserID),
			Request: c.Request,
		}
		watcher := &statusWatcher{ResponseWriter: c.Writer}
		c.Writer = watcher

		defer func() {
			if p := recover(); p != nil {
				report.Status = http.StatusInternalServerError
				report.Panic = p
				rep.Report(c.Request.Context(), report)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"message": utils.MessageError()[http.StatusInternalServerError],
				})
			}
		}()

		c.Next()

		if last := c.Errors.Last(); last != nil {
			report.Err = last.Err
		}

		status := c.Writer.Status()
		if status < http.StatusBadRequest && report.Err != nil && !c.Writer.Written() {
			watcher.onStatus = func(code int) {
				if shouldReport(code) {
					report.Status = code
					rep.Report(c.Request.Context(), report)
				}
			}
			return
		}

		if !shouldReport(status) {
			return
		}
		report.Status = status
		if report.Err == nil {
			report.Err = errors.New(http.StatusText(status))
		}
		rep.Report(c.Request.Context(), report)
	}
}
