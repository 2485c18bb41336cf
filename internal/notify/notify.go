// Package notify broadcasts content-change events between site instances.
package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/Nixie-Tech-LLC/naulin/internal/provider"
)

// Handler receives the kind whose content changed.
type Handler func(ctx context.Context, kind provider.Kind)

// Notifier publishes and receives content-updated events.
type Notifier interface {
	ContentUpdated(kind provider.Kind) error
	OnContentUpdated(h Handler) error
	Close()
}

// Noop is used when no broker is configured.
type Noop struct{}

func (Noop) ContentUpdated(provider.Kind) error { return nil }
func (Noop) OnContentUpdated(Handler) error     { return nil }
func (Noop) Close()                             {}

// UpdatedTopic is "<prefix>/content/<kind>/updated".
func UpdatedTopic(prefix string, kind provider.Kind) string {
	return fmt.Sprintf("%s/content/%s/updated", prefix, kind)
}

func subscriptionTopic(prefix string) string {
	return prefix + "/content/+/updated"
}

// kindFromTopic extracts the kind from an updated topic under prefix.
func kindFromTopic(prefix, topic string) (provider.Kind, bool) {
	rest, ok := strings.CutPrefix(topic, prefix+"/content/")
	if !ok {
		return "", false
	}
	name, ok := strings.CutSuffix(rest, "/updated")
	if !ok {
		return "", false
	}
	return provider.ParseKind(name)
}
