package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/bedbook/internal/events"
)

// AuditService writes domain events to the structured log.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	return &AuditService{
		dispatcher: dispatcher,
		logger:     logger.Named("audit"),
	}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventUserRegistered, a.handleUserRegistered)
	a.dispatcher.Subscribe(events.EventPasswordReset, a.handlePasswordReset)
	a.dispatcher.Subscribe(events.EventHospitalCreated, a.handleHospitalCreated)
	a.dispatcher.Subscribe(events.EventBedsAdded, a.handleBedsAdded)
	a.dispatcher.Subscribe(events.EventBedBooked, a.handleBedBooked)
}

func (a *AuditService) handleUserRegistered(_ context.Context, event events.Event) error {
	a.logger.Info("UserRegistered", eventFields(event)...)
	return nil
}

func (a *AuditService) handlePasswordReset(_ context.Context, event events.Event) error {
	a.logger.Warn("PasswordReset", eventFields(event)...)
	return nil
}

func (a *AuditService) handleHospitalCreated(_ context.Context, event events.Event) error {
	a.logger.Info("HospitalCreated", append(eventFields(event), zap.Any("payload", event.Payload))...)
	return nil
}

func (a *AuditService) handleBedsAdded(_ context.Context, event events.Event) error {
	fields := eventFields(event)
	if payload, ok := event.Payload.(events.BedsAddedPayload); ok {
		fields = append(fields,
			zap.Int64("hospital_id", payload.HospitalID),
			zap.String("bed_type", payload.BedType),
			zap.Int("count", len(payload.BedIDs)))
	}
	a.logger.Info("BedsAdded", fields...)
	return nil
}

func (a *AuditService) handleBedBooked(_ context.Context, event events.Event) error {
	a.logger.Info("BedBooked", append(eventFields(event), zap.Any("payload", event.Payload))...)
	return nil
}

func eventFields(event events.Event) []zap.Field {
	return []zap.Field{
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)),
		zap.Int64("user_id", event.Actor.UserID),
		zap.String("username", event.Actor.Username),
	}
}
