package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/parkgrid/parkgrid-api/internal/dto"
	"github.com/parkgrid/parkgrid-api/internal/models"
	"github.com/parkgrid/parkgrid-api/pkg/jobs"
	"github.com/parkgrid/parkgrid-api/pkg/mailer"
)

type mailerStub struct {
	sent []mailer.Message
	err  error
}

func (m *mailerStub) Send(ctx context.Context, msg mailer.Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func approvedItemFixture() *dto.SlotRequestItem {
	slotID := "slot-1"
	number := "A-101"
	location := models.LocationNorth
	return &dto.SlotRequestItem{
		ID:           "req-1",
		UserID:       "user-1",
		UserFullName: "Dana Driver",
		UserEmail:    "dana@example.com",
		VehicleID:    "veh-1",
		PlateNumber:  "B1234XYZ",
		VehicleType:  models.VehicleCar,
		VehicleSize:  models.SizeMedium,
		SlotID:       &slotID,
		SlotNumber:   &number,
		SlotLocation: &location,
		Status:       models.RequestApproved,
		UpdatedAt:    time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
	}
}

func TestNotificationServiceComposeApproval(t *testing.T) {
	svc := NewNotificationService(&mailerStub{}, nil, jobs.Config{}, zap.NewNop())

	msg := svc.composeDecision(approvedItemFixture())
	require.NotNil(t, msg)
	assert.Equal(t, "dana@example.com", msg.To)
	assert.Contains(t, msg.Subject, "A-101")
	assert.Contains(t, msg.Text, "Dana Driver")
	assert.Contains(t, msg.Text, "B1234XYZ")
	assert.Contains(t, msg.Text, "NORTH")
	assert.Contains(t, msg.Text, "approved")
	assert.Contains(t, msg.HTML, "<strong>A-101</strong>")
}

func TestNotificationServiceComposeEscapesHTML(t *testing.T) {
	svc := NewNotificationService(&mailerStub{}, nil, jobs.Config{}, zap.NewNop())

	item := approvedItemFixture()
	item.UserFullName = "Dana & Co <admin>"

	msg := svc.composeDecision(item)
	require.NotNil(t, msg)
	assert.Contains(t, msg.Text, "Dana & Co <admin>")
	assert.Contains(t, msg.HTML, "Dana &amp; Co &lt;admin&gt;")
}

func TestNotificationServiceComposeRejection(t *testing.T) {
	svc := NewNotificationService(&mailerStub{}, nil, jobs.Config{}, zap.NewNop())

	item := approvedItemFixture()
	item.Status = models.RequestRejected
	item.SlotID = nil
	item.SlotNumber = nil
	item.SlotLocation = nil
	reason := "no large slots this week"
	item.Note = &reason

	msg := svc.composeDecision(item)
	require.NotNil(t, msg)
	assert.Contains(t, msg.Subject, "rejected")
	assert.Contains(t, msg.Text, "no large slots this week")
}

func TestNotificationServiceComposePendingSkipped(t *testing.T) {
	svc := NewNotificationService(&mailerStub{}, nil, jobs.Config{}, zap.NewNop())

	item := approvedItemFixture()
	item.Status = models.RequestPending

	assert.Nil(t, svc.composeDecision(item))
}

func TestNotificationServiceDeliver(t *testing.T) {
	sink := &mailerStub{}
	svc := NewNotificationService(sink, nil, jobs.Config{}, zap.NewNop())

	msg := svc.composeDecision(approvedItemFixture())
	require.NotNil(t, msg)

	err := svc.deliver(context.Background(), jobs.Job{ID: "job-1", Type: jobTypeDecisionMail, Payload: *msg})
	require.NoError(t, err)
	require.Len(t, sink.sent, 1)
	assert.Equal(t, "dana@example.com", sink.sent[0].To)
}

func TestNotificationServiceDeliverFailureReturnsError(t *testing.T) {
	sink := &mailerStub{err: assert.AnError}
	svc := NewNotificationService(sink, nil, jobs.Config{}, zap.NewNop())

	err := svc.deliver(context.Background(), jobs.Job{ID: "job-1", Type: jobTypeDecisionMail, Payload: mailer.Message{To: "dana@example.com"}})
	require.Error(t, err)
}

func TestNotificationServiceNotifyRequiresStartedQueue(t *testing.T) {
	svc := NewNotificationService(&mailerStub{}, nil, jobs.Config{}, zap.NewNop())

	err := svc.NotifyDecision(approvedItemFixture())
	require.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svc.Start(ctx)
	defer svc.Stop()

	require.NoError(t, svc.NotifyDecision(approvedItemFixture()))
}
