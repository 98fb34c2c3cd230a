package inventory

import (
	"context"
	"encoding/json"
	"time"

	"cloud.google.com/go/pubsub/v2"
	"github.com/google/uuid"

	"github.com/solsticegems/solstice-backend/pkg/logger"
)

// Catalog event actions published when admin mutations land.
const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
)

const publishTimeout = 10 * time.Second

type publisher interface {
	Publish(ctx context.Context, msg *pubsub.Message) publishResult
}

type publishResult interface {
	Get(ctx context.Context) (string, error)
}

type publisherAdapter struct {
	pub *pubsub.Publisher
}

func (a publisherAdapter) Publish(ctx context.Context, msg *pubsub.Message) publishResult {
	return a.pub.Publish(ctx, msg)
}

// Notifier publishes catalog change events. Publishing is best-effort: a
// failed publish is logged, never surfaced to the admin request.
type Notifier struct {
	pub  publisher
	logg *logger.Logger
}

// NewNotifier wraps a Pub/Sub publisher. A nil publisher yields a no-op
// notifier so local development works without Pub/Sub.
func NewNotifier(pub *pubsub.Publisher, logg *logger.Logger) *Notifier {
	if pub == nil {
		return &Notifier{logg: logg}
	}
	return &Notifier{pub: publisherAdapter{pub: pub}, logg: logg}
}

type catalogEvent struct {
	Action    string    `json:"action"`
	ProductID string    `json:"productId"`
	Category  string    `json:"category"`
	At        time.Time `json:"at"`
}

// ProductChanged emits one catalog event.
func (n *Notifier) ProductChanged(ctx context.Context, action string, productID uuid.UUID, category string) {
	if n == nil || n.pub == nil {
		return
	}
	payload, err := json.Marshal(catalogEvent{
		Action:    action,
		ProductID: productID.String(),
		Category:  category,
		At:        time.Now().UTC(),
	})
	if err != nil {
		n.logg.Error(ctx, "failed to encode catalog event", err)
		return
	}

	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	result := n.pub.Publish(publishCtx, &pubsub.Message{
		Data: payload,
		Attributes: map[string]string{
			"action":   action,
			"category": category,
		},
	})
	if _, err := result.Get(publishCtx); err != nil {
		n.logg.Error(ctx, "failed to publish catalog event", err)
	}
}
