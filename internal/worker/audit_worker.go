package worker

import (
	"github.com/spec-kit/bedbook/internal/service"
)

// StartAuditWorker registers the audit log handlers on the event dispatcher.
func StartAuditWorker(auditService *service.AuditService) {
	if auditService == nil {
		return
	}
	auditService.RegisterHandlers()
}
