package notification

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/messaging"
)

// fcmMaxTokens is the multicast limit of the FCM API.
const fcmMaxTokens = 500

type fcmClient interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
	SendEachForMulticast(ctx context.Context, message *messaging.MulticastMessage) (*messaging.BatchResponse, error)
}

// FCMTransport pushes through Firebase Cloud Messaging.
type FCMTransport struct {
	client fcmClient
}

func NewFCMTransport(client *messaging.Client) *FCMTransport {
	return &FCMTransport{client: client}
}

func (t *FCMTransport) Send(ctx context.Context, token string, msg Message) (DeliveryResult, error) {
	id, err := t.client.Send(ctx, &messaging.Message{
		Token:        token,
		Notification: &messaging.Notification{Title: msg.Title, Body: msg.Body},
		Data:         msg.Data,
		Android:      &messaging.AndroidConfig{Priority: "high"},
	})
	if err != nil {
		return DeliveryResult{Token: token, Err: err, Unregistered: messaging.IsUnregistered(err)}, nil
	}
	return DeliveryResult{Token: token, MessageID: id}, nil
}

func (t *FCMTransport) SendBatch(ctx context.Context, tokens []string, msg Message) ([]DeliveryResult, error) {
	results := make([]DeliveryResult, 0, len(tokens))
	for start := 0; start < len(tokens); start += fcmMaxTokens {
		end := start + fcmMaxTokens
		if end > len(tokens) {
			end = len(tokens)
		}
		chunk := tokens[start:end]

		resp, err := t.client.SendEachForMulticast(ctx, &messaging.MulticastMessage{
			Tokens:       chunk,
			Notification: &messaging.Notification{Title: msg.Title, Body: msg.Body},
			Data:         msg.Data,
			Android:      &messaging.AndroidConfig{Priority: "high"},
		})
		if err != nil {
			return results, fmt.Errorf("fcm multicast: %w", err)
		}

		for i, r := range resp.Responses {
			res := DeliveryResult{Token: chunk[i]}
			if r.Success {
				res.MessageID = r.MessageID
			} else {
				res.Err = r.Error
				res.Unregistered = messaging.IsUnregistered(r.Error)
			}
			results = append(results, res)
		}
	}
	return results, nil
}
