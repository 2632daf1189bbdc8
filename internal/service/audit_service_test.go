package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/bedbook/internal/events"
)

func TestAuditService_LogsEvents(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	dispatcher := events.NewInMemoryDispatcher()
	NewAuditService(dispatcher, zap.New(core)).RegisterHandlers()

	err := dispatcher.Publish(context.Background(), events.Event{
		ID:    "evt-1",
		Type:  events.EventBedsAdded,
		Actor: events.Actor{UserID: 1, Username: "management"},
		Payload: events.BedsAddedPayload{
			HospitalID: 7,
			BedType:    "ICU",
			BedIDs:     []int64{10, 11},
		},
	})
	require.NoError(t, err)

	entries := logs.FilterMessage("BedsAdded").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, int64(7), fields["hospital_id"])
	assert.Equal(t, int64(2), fields["count"])
	assert.Equal(t, "audit", entries[0].LoggerName)

	require.NoError(t, dispatcher.Publish(context.Background(), events.Event{
		Type:  events.EventPasswordReset,
		Actor: events.Actor{Username: "management"},
	}))
	assert.Equal(t, 1, logs.FilterMessage("PasswordReset").FilterField(zap.String("username", "management")).Len())
}
