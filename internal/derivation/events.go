package derivation

import (
	"context"
	"encoding/json"
	"fmt"

	"esgtrack/internal/esg/models"
	"esgtrack/internal/platform/kafka/consumer"
	dErrors "esgtrack/pkg/domain-errors"
	"esgtrack/pkg/requestcontext"
)

// Entry lifecycle events published after derivation.
const (
	EventEntryDerived   = "entry.derived"
	EventEntriesRemoved = "entries.removed"
)

// EntryEvent is the payload published on the entries topic. Entry is set for
// derived entries, Removed for cancellations.
type EntryEvent struct {
	Event          string               `json:"event"`
	SourceDocType  models.SourceDocType `json:"source_doctype"`
	SourceDocument string               `json:"source_document"`
	Entry          *models.MetricEntry  `json:"entry,omitempty"`
	Removed        int                  `json:"removed,omitempty"`
}

// MessageHandler feeds document events consumed from Kafka to the service.
type MessageHandler struct {
	service *Service
}

func NewMessageHandler(service *Service) *MessageHandler {
	return &MessageHandler{service: service}
}

var _ consumer.Handler = (*MessageHandler)(nil)

// Handle decodes one record. Malformed payloads are rejected without retry.
func (h *MessageHandler) Handle(ctx context.Context, msg *consumer.Message) error {
	var ev Event
	if err := json.Unmarshal(msg.Value, &ev); err != nil {
		return dErrors.Wrap(err, dErrors.CodeBadRequest, "malformed document event")
	}
	requestID := msg.Headers["request_id"]
	if requestID == "" {
		requestID = fmt.Sprintf("%s/%d/%d", msg.Topic, msg.Partition, msg.Offset)
	}
	ctx = requestcontext.WithRequestID(ctx, requestID)
	return h.service.Handle(ctx, &ev)
}
