package service

import (
	"context"
	"fmt"
	"html"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/parkgrid/parkgrid-api/internal/dto"
	"github.com/parkgrid/parkgrid-api/internal/models"
	"github.com/parkgrid/parkgrid-api/pkg/jobs"
	"github.com/parkgrid/parkgrid-api/pkg/mailer"
)

const jobTypeDecisionMail = "request.decision.mail"

// NotificationService delivers slot request decision emails through a
// background queue so request processing never waits on SMTP.
type NotificationService struct {
	mailer  mailer.Mailer
	metrics *MetricsService
	logger  *zap.Logger
	queue   *jobs.Queue
}

// NewNotificationService constructs the service and its delivery queue.
func NewNotificationService(m mailer.Mailer, metrics *MetricsService, cfg jobs.Config, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Logger == nil {
		cfg.Logger = logger
	}
	s := &NotificationService{mailer: m, metrics: metrics, logger: logger}
	s.queue = jobs.NewQueue("notifications", s.deliver, cfg)
	return s
}

// Start launches the delivery workers.
func (s *NotificationService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop halts the delivery workers. Mail still waiting in the buffer is
// dropped; the decision it announces is already persisted.
func (s *NotificationService) Stop() {
	s.queue.Stop()
}

// NotifyDecision queues the decision email for a processed request. The
// request outcome is already committed by the time this runs, so delivery
// problems are reported to the caller for logging only.
func (s *NotificationService) NotifyDecision(item *dto.SlotRequestItem) error {
	if item == nil {
		return fmt.Errorf("nil request item")
	}

	msg := s.composeDecision(item)
	if msg == nil {
		return fmt.Errorf("request %s has status %s, nothing to notify", item.ID, item.Status)
	}

	return s.queue.Enqueue(jobs.Job{
		ID:      uuid.NewString(),
		Type:    jobTypeDecisionMail,
		Payload: *msg,
	})
}

func (s *NotificationService) deliver(ctx context.Context, job jobs.Job) error {
	msg, ok := job.Payload.(mailer.Message)
	if !ok {
		s.logger.Error("unexpected notification payload", zap.String("job_id", job.ID), zap.String("type", job.Type))
		return nil
	}

	if err := s.mailer.Send(ctx, msg); err != nil {
		if s.metrics != nil {
			s.metrics.RecordNotification(false)
		}
		return fmt.Errorf("send decision mail to %s: %w", msg.To, err)
	}

	if s.metrics != nil {
		s.metrics.RecordNotification(true)
	}
	s.logger.Info("decision mail sent", zap.String("to", msg.To), zap.String("job_id", job.ID))
	return nil
}

func (s *NotificationService) composeDecision(item *dto.SlotRequestItem) *mailer.Message {
	decidedAt := item.UpdatedAt.UTC().Format(time.RFC1123)

	// Names, plates and notes are user input; the HTML body escapes them.
	name := html.EscapeString(item.UserFullName)
	plate := html.EscapeString(item.PlateNumber)

	switch item.Status {
	case models.RequestApproved:
		slotNumber := "(unassigned)"
		if item.SlotNumber != nil {
			slotNumber = *item.SlotNumber
		}
		location := ""
		if item.SlotLocation != nil {
			location = fmt.Sprintf(" in the %s zone", *item.SlotLocation)
		}
		return &mailer.Message{
			To:      item.UserEmail,
			Subject: fmt.Sprintf("Parking slot %s assigned to %s", slotNumber, item.PlateNumber),
			Text: fmt.Sprintf(
				"Hello %s,\n\nYour parking request for vehicle %s has been approved.\nAssigned slot: %s%s.\nDecision time: %s.\n\nParkGrid",
				item.UserFullName, item.PlateNumber, slotNumber, location, decidedAt,
			),
			HTML: fmt.Sprintf(
				"<p>Hello %s,</p><p>Your parking request for vehicle <strong>%s</strong> has been approved.<br>Assigned slot: <strong>%s</strong>%s.<br>Decision time: %s.</p><p>ParkGrid</p>",
				name, plate, html.EscapeString(slotNumber), html.EscapeString(location), decidedAt,
			),
		}
	case models.RequestRejected:
		reason := "No reason was provided."
		if item.Note != nil && *item.Note != "" {
			reason = fmt.Sprintf("Reason: %s", *item.Note)
		}
		return &mailer.Message{
			To:      item.UserEmail,
			Subject: fmt.Sprintf("Parking request for %s rejected", item.PlateNumber),
			Text: fmt.Sprintf(
				"Hello %s,\n\nYour parking request for vehicle %s has been rejected.\n%s\nDecision time: %s.\n\nParkGrid",
				item.UserFullName, item.PlateNumber, reason, decidedAt,
			),
			HTML: fmt.Sprintf(
				"<p>Hello %s,</p><p>Your parking request for vehicle <strong>%s</strong> has been rejected.<br>%s<br>Decision time: %s.</p><p>ParkGrid</p>",
				name, plate, html.EscapeString(reason), decidedAt,
			),
		}
	default:
		return nil
	}
}
