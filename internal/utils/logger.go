package utils

import (
	"strings"

	log "github.com/sirupsen/logrus"
)

// LogEvent emits one structured line per service-level action.
func LogEvent(requestID, module, action, message string) {
	log.WithFields(log.Fields{
		"module":     strings.ToUpper(module),
		"action":     action,
		"request_id": strings.TrimSpace(requestID),
	}).Info(message)
}
