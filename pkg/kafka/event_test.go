package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopic(t *testing.T) {
	assert.Equal(t, "storefront.cart.updated", Topic("cart", "updated"))
	assert.Equal(t, "storefront.campaign.created", Topic("campaign", "created"))
}

func TestNewEvent_PopulatesEnvelope(t *testing.T) {
	event, err := NewEvent("review.created", "prod-1", "product", "storefront", map[string]any{
		"rating": 5,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, event.EventID)
	assert.Equal(t, "review.created", event.EventType)
	assert.Equal(t, "prod-1", event.AggregateID)
	assert.Equal(t, "product", event.AggregateType)
	assert.Equal(t, 1, event.Version)
	assert.False(t, event.Timestamp.IsZero())
	assert.Equal(t, "storefront", event.Source)
	assert.JSONEq(t, `{"rating":5}`, string(event.Data))
}

func TestEvent_MarshalRoundTrip(t *testing.T) {
	event, err := NewEvent("cart.updated", "user-42", "cart", "storefront", map[string]int{"items": 3})
	require.NoError(t, err)
	event.WithCorrelationID("corr-7").WithMetadata("origin", "checkout")

	data, err := event.Marshal()
	require.NoError(t, err)

	decoded, err := UnmarshalEvent(data)
	require.NoError(t, err)

	assert.Equal(t, event.EventID, decoded.EventID)
	assert.Equal(t, "corr-7", decoded.CorrelationID)
	assert.Equal(t, "checkout", decoded.Metadata["origin"])
}

func TestUnmarshalEvent_InvalidJSON(t *testing.T) {
	_, err := UnmarshalEvent([]byte("{not json"))
	assert.Error(t, err)
}
