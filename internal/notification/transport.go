package notification

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/anonto42/newsroom-social/backend/pkg/logger"
)

// Message is the payload pushed to a device.
type Message struct {
	Title string
	Body  string
	Data  map[string]string
}

// DeliveryResult is the outcome for one token. Unregistered marks a token the
// push service will never accept again.
type DeliveryResult struct {
	Token        string
	MessageID    string
	Err          error
	Unregistered bool
}

// PushTransport delivers messages to device tokens. Per-token failures are
// reported in the results; the error return is for calls that failed as a whole.
type PushTransport interface {
	Send(ctx context.Context, token string, msg Message) (DeliveryResult, error)
	SendBatch(ctx context.Context, tokens []string, msg Message) ([]DeliveryResult, error)
}

// LogTransport writes pushes to the log instead of sending them.
type LogTransport struct{}

func (LogTransport) Send(_ context.Context, token string, msg Message) (DeliveryResult, error) {
	logger.Info("push (log transport)",
		zap.String("token", token),
		zap.String("title", msg.Title),
		zap.String("body", msg.Body),
	)
	return DeliveryResult{Token: token, MessageID: uuid.NewString()}, nil
}

func (t LogTransport) SendBatch(ctx context.Context, tokens []string, msg Message) ([]DeliveryResult, error) {
	results := make([]DeliveryResult, 0, len(tokens))
	for _, tok := range tokens {
		res, _ := t.Send(ctx, tok, msg)
		results = append(results, res)
	}
	return results, nil
}
