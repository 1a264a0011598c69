package worker

import (
	"github.com/spec-kit/dominion-roster/internal/events"
	"github.com/spec-kit/dominion-roster/internal/service"
)

// StartBackupWorker registers the roster backup mirror handlers.
func StartBackupWorker(backupService *service.BackupService, dispatcher events.Dispatcher) {
	if backupService == nil {
		return
	}
	backupService.RegisterHandlers(dispatcher)
}
