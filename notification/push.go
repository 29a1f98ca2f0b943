package notification

import (
	"context"
	"fmt"
	"time"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// DeviceTokens looks up the push tokens registered by a center's staff.
type DeviceTokens interface {
	DeviceTokens(ctx context.Context, centerID uint) ([]string, error)
}

// Pusher sends Firebase Cloud Messaging notifications to clinic devices.
type Pusher struct {
	client *messaging.Client
	tokens DeviceTokens
	log    *zap.Logger
}

// NewPusher initializes Firebase with the service account at credentialsPath,
// or application default credentials when it is empty.
func NewPusher(ctx context.Context, credentialsPath string, tokens DeviceTokens, log *zap.Logger) (*Pusher, error) {
	var opts []option.ClientOption
	if credentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsPath))
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase messaging client: %w", err)
	}
	return &Pusher{client: client, tokens: tokens, log: log}, nil
}

// NotifyCenter pushes a notification to every device of the center.
func (p *Pusher) NotifyCenter(ctx context.Context, centerID uint, title, body string) error {
	tokens, err := p.tokens.DeviceTokens(ctx, centerID)
	if err != nil {
		return fmt.Errorf("failed to load device tokens: %w", err)
	}
	if len(tokens) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	message := newMessage(title, body)
	if len(tokens) == 1 {
		message.Token = tokens[0]
		_, err := p.client.Send(ctx, message)
		return err
	}

	res, err := p.client.SendEachForMulticast(ctx, &messaging.MulticastMessage{
		Tokens:       tokens,
		Notification: message.Notification,
		Android:      message.Android,
		APNS:         message.APNS,
	})
	if err != nil {
		return err
	}
	if res.FailureCount > 0 {
		p.log.Warn("some push notifications failed",
			zap.Uint("center_id", centerID),
			zap.Int("failed", res.FailureCount),
			zap.Int("sent", res.SuccessCount))
	}
	return nil
}

func newMessage(title, body string) *messaging.Message {
	return &messaging.Message{
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				Sound:    "default",
				Priority: messaging.PriorityHigh,
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{"apns-priority": "10"},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Alert: &messaging.ApsAlert{Title: title, Body: body},
					Sound: "default",
				},
			},
		},
	}
}
