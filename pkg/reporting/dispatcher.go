package reporting

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/hamjambo/hare-report-mailer/pkg/config"
	log "github.com/hamjambo/hare-report-mailer/pkg/logger"
	"github.com/hamjambo/hare-report-mailer/pkg/mailer"
	hareotel "github.com/hamjambo/hare-report-mailer/pkg/otel"
	"github.com/hamjambo/hare-report-mailer/pkg/render"
	"github.com/hamjambo/hare-report-mailer/pkg/report"
)

const (
	dispatcherName   = "dispatcher"
	dispatchSpanName = "hare.report.dispatch"
)

// Dispatcher renders a validated report and mails it to the admin and then to the submitter.
type Dispatcher struct {
	Renderer *render.Renderer
	Sender   mailer.Sender
	Profile  *config.Profile
	Logger   *zap.SugaredLogger
}

// Dispatch sends the admin copy and, only once that was accepted, the user copy.
// A failed user send is returned as an error even though the admin copy is already out.
func (d *Dispatcher) Dispatch(ctx context.Context, rep *report.Report) (err error) {
	reportID := uuid.NewString()

	ctx, span := hareotel.StartTracer(ctx, reportID, rep, dispatchSpanName)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	doc, err := d.Renderer.Render(rep)
	if err != nil {
		return fmt.Errorf("report %s: %w", reportID, err)
	}

	statuses := doc.Statuses()
	recordSections(statuses)

	for section, status := range statuses {
		d.namedLogger().With(log.KeyReportID, reportID).With(log.KeySection, section).
			With(log.KeyTier, status.Tier).Debugf("classified at %d%%", status.Percentage)
	}

	admin := mailer.Message{
		Kind:        mailer.KindAdmin,
		FromName:    d.Profile.Admin.SenderName,
		FromAddress: d.Profile.Admin.SenderAddress,
		To:          d.Profile.Admin.Recipient,
		Subject:     d.Profile.Subject,
		HTML:        doc.Admin,
		MessageID:   d.messageID(reportID, mailer.KindAdmin),
	}
	if err := d.Sender.Send(ctx, admin); err != nil {
		return fmt.Errorf("report %s: %w", reportID, err)
	}

	user := mailer.Message{
		Kind:        mailer.KindUser,
		FromName:    d.Profile.User.SenderName,
		FromAddress: d.Profile.User.SenderAddress,
		To:          rep.Recipient(),
		Subject:     d.Profile.Subject,
		HTML:        doc.User,
		MessageID:   d.messageID(reportID, mailer.KindUser),
	}
	if err := d.Sender.Send(ctx, user); err != nil {
		d.namedLogger().With(log.KeyReportID, reportID).With(log.KeyRecipient, d.Profile.Admin.Recipient).
			Warn("admin copy was delivered but the user copy failed")

		return fmt.Errorf("report %s: %w", reportID, err)
	}

	d.namedLogger().With(log.KeyReportID, reportID).With(log.KeyResult, log.ValueSuccess).
		Infof("report for %s %s dispatched", rep.System.Manufacturer, rep.System.Model)

	return nil
}

func (d *Dispatcher) messageID(reportID string, kind mailer.Kind) string {
	return fmt.Sprintf("%s.%s@%s", reportID, kind, d.Profile.Domain())
}

func (d *Dispatcher) namedLogger() *zap.SugaredLogger {
	return d.Logger.Named(dispatcherName).With("component", "reporting")
}
