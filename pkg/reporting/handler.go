package reporting

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	log "github.com/hamjambo/hare-report-mailer/pkg/logger"
	"github.com/hamjambo/hare-report-mailer/pkg/report"
)

const (
	handlerName = "report-handler"

	// MaxBodyBytes caps the size of a submitted report.
	MaxBodyBytes = 1 << 20

	contentTypeHeader = "Content-Type"
	contentTypeJSON   = "application/json"
	contentTypeHTML   = "text/html; charset=utf-8"

	successBody = "Report sent successfully"
	failureBody = "Failed to send report"
)

// Handler serves POST /api/reports.
type Handler struct {
	Dispatcher *Dispatcher
	Logger     *zap.SugaredLogger
}

var _ http.Handler = &Handler{}

// ServeHTTP answers 200 with a plain confirmation once both mails were sent. Every failure,
// whether a bad payload or a transport error, gets the same 500 answer and is only detailed in the logs.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rep, err := readReport(w, r)
	if err != nil {
		recordReport(resultRejected)
		h.namedLogger().With(log.KeyResult, log.ValueFail).With(log.KeyError, err.Error()).
			Warn("rejected report")
		http.Error(w, failureBody, http.StatusInternalServerError)

		return
	}

	// once accepted, both sends run even if the client goes away.
	if err := h.Dispatcher.Dispatch(context.WithoutCancel(r.Context()), rep); err != nil {
		recordReport(resultFailed)
		h.namedLogger().With(log.KeyResult, log.ValueFail).With(log.KeyError, err.Error()).
			Error("failed to dispatch report")
		http.Error(w, failureBody, http.StatusInternalServerError)

		return
	}

	recordReport(resultSuccess)

	w.Header().Set(contentTypeHeader, contentTypeJSON)
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write([]byte(successBody)); err != nil {
		h.namedLogger().With(log.KeyError, err.Error()).Warn("write response")
	}
}

func (h *Handler) namedLogger() *zap.SugaredLogger {
	return h.Logger.Named(handlerName).With("component", "reporting")
}

// PreviewHandler serves POST /api/reports/preview: it renders the user copy of a report without mailing it.
type PreviewHandler struct {
	Dispatcher *Dispatcher
	Logger     *zap.SugaredLogger
}

var _ http.Handler = &PreviewHandler{}

func (h *PreviewHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rep, err := readReport(w, r)
	if err != nil {
		h.Logger.Named(handlerName).With(log.KeyResult, log.ValueFail).With(log.KeyError, err.Error()).
			Debug("rejected preview")
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	doc, err := h.Dispatcher.Renderer.Render(rep)
	if err != nil {
		h.Logger.Named(handlerName).With(log.KeyError, err.Error()).Error("failed to render preview")
		http.Error(w, "Failed to render report", http.StatusInternalServerError)

		return
	}

	w.Header().Set(contentTypeHeader, contentTypeHTML)
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write([]byte(doc.User)); err != nil {
		h.Logger.Named(handlerName).With(log.KeyError, err.Error()).Warn("write response")
	}
}

func readReport(w http.ResponseWriter, r *http.Request) (*report.Report, error) {
	body := http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	defer body.Close()

	rep, err := report.Decode(body)
	if err != nil {
		return nil, err
	}

	if err := rep.Validate(); err != nil {
		return nil, err
	}

	return rep, nil
}
