package converter

import (
	"medassist/internal/delivery/dto"
	"medassist/internal/domain/entity"
)

// AuditLogToResponse lifts the entity reference written by the audit service
// out of the metadata so clients can link an entry to its patient or chain row
func AuditLogToResponse(log *entity.AuditLog) dto.AuditLogResponse {
	result := dto.AuditLogResponse{
		ID:        log.ID,
		UserID:    log.UserID,
		Action:    log.Action,
		Metadata:  log.Metadata,
		CreatedAt: log.CreatedAt,
	}
	if log.User != nil {
		result.User = UserToResponse(log.User)
	}

	if name, ok := log.Metadata["entity"].(string); ok {
		result.Entity = name
	}
	if id, ok := log.Metadata["entity_id"].(string); ok {
		result.EntityID = id
	}

	return result
}

func AuditLogsToResponses(logs []entity.AuditLog) []dto.AuditLogResponse {
	responses := make([]dto.AuditLogResponse, 0, len(logs))
	for i := range logs {
		responses = append(responses, AuditLogToResponse(&logs[i]))
	}
	return responses
}
