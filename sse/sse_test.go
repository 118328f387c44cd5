package sse

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fincontrol/api/models"
)

func alertFor(userID string) models.BudgetAlert {
	return models.BudgetAlert{
		UserID:     userID,
		Category:   "groceries",
		Month:      "2025-02",
		LimitValue: decimal.NewFromInt(1000),
		Spent:      decimal.NewFromInt(850),
		Percent:    85,
	}
}

func TestPublishAlert_DeliversToRegisteredStream(t *testing.T) {
	stream := Register("user-1")
	defer Unregister("user-1", stream)

	PublishAlert(alertFor("user-1"))

	require.Len(t, stream.Alerts, 1)
	var got models.BudgetAlert
	require.NoError(t, json.Unmarshal([]byte(<-stream.Alerts), &got))
	assert.Equal(t, "groceries", got.Category)
	assert.Equal(t, float64(85), got.Percent)
}

func TestPublishAlert_NoStreamIsNoop(t *testing.T) {
	// Must not panic or block.
	PublishAlert(alertFor("nobody"))
}

func TestUnregister_DropsStream(t *testing.T) {
	stream := Register("user-2")
	Unregister("user-2", stream)

	PublishAlert(alertFor("user-2"))
	assert.Empty(t, stream.Alerts)
}

func TestRegister_ReplacesPreviousStream(t *testing.T) {
	old := Register("user-3")
	replacement := Register("user-3")
	defer Unregister("user-3", replacement)

	// The old stream is signalled done so its handler exits.
	select {
	case <-old.Done:
	default:
		t.Fatal("expected old stream to be closed")
	}

	PublishAlert(alertFor("user-3"))
	assert.Empty(t, old.Alerts)
	assert.Len(t, replacement.Alerts, 1)
}

func TestUnregister_IgnoresStaleStream(t *testing.T) {
	old := Register("user-4")
	replacement := Register("user-4")
	defer Unregister("user-4", replacement)

	// The handler of the replaced stream unregisters late; the live
	// stream must survive.
	Unregister("user-4", old)

	PublishAlert(alertFor("user-4"))
	assert.Len(t, replacement.Alerts, 1)
}

func TestPublishAlert_FullBufferDoesNotBlock(t *testing.T) {
	stream := Register("user-5")
	defer Unregister("user-5", stream)

	for i := 0; i < cap(stream.Alerts)+5; i++ {
		PublishAlert(alertFor("user-5"))
	}
	assert.Len(t, stream.Alerts, cap(stream.Alerts))
}
