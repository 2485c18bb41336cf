package notify

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/naulin/internal/provider"
)

func TestUpdatedTopic(t *testing.T) {
	assert.Equal(t, "naulin/content/news/updated", UpdatedTopic("naulin", provider.KindNews))
}

func TestKindFromTopic(t *testing.T) {
	for _, k := range provider.Kinds {
		got, ok := kindFromTopic("naulin", UpdatedTopic("naulin", k))
		require.True(t, ok, k)
		assert.Equal(t, k, got)
	}

	_, ok := kindFromTopic("naulin", "other/content/news/updated")
	assert.False(t, ok)
	_, ok = kindFromTopic("naulin", "naulin/content/playlists/updated")
	assert.False(t, ok)
	_, ok = kindFromTopic("naulin", "naulin/content/news")
	assert.False(t, ok)
}

func TestNoop(t *testing.T) {
	var n Notifier = Noop{}
	assert.NoError(t, n.ContentUpdated(provider.KindFacilities))
	assert.NoError(t, n.OnContentUpdated(nil))
	n.Close()
}

// requires a running broker
func TestMQTTNotifier_Publish(t *testing.T) {
	broker := os.Getenv("TEST_MQTT_BROKER_URL")
	if broker == "" {
		t.Skip("TEST_MQTT_BROKER_URL not set")
	}
	n, err := NewMQTTNotifier(broker, "naulin-test", "naulin-test")
	require.NoError(t, err)
	defer n.Close()

	assert.NoError(t, n.ContentUpdated(provider.KindNews))
}
