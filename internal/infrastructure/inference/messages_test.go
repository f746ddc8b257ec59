package inference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"screen-agent/internal/domain/entity"
)

func TestBuildMessages(t *testing.T) {
	payloads := []entity.ContentPart{
		{Type: entity.CapabilityImage, Value: "a.png"},
		{Type: "audio", Value: "a.wav"},
		{Type: entity.CapabilityImage, Value: "b.png"},
	}

	t.Run("with system and images", func(t *testing.T) {
		msgs := BuildMessages("sys", "hello", payloads, []entity.Capability{entity.CapabilityImage, entity.CapabilityText})

		require.Len(t, msgs, 2)
		assert.Equal(t, entity.Message{Role: entity.RoleSystem, Text: "sys"}, msgs[0])
		assert.Equal(t, entity.RoleUser, msgs[1].Role)
		assert.Equal(t, []entity.ContentPart{
			{Type: entity.CapabilityImage, Value: "a.png"},
			{Type: entity.CapabilityImage, Value: "b.png"},
			{Type: entity.CapabilityText, Value: "hello"},
		}, msgs[1].Parts)
	})

	t.Run("no system, text-only model", func(t *testing.T) {
		msgs := BuildMessages("", "hello", payloads, []entity.Capability{entity.CapabilityText})

		require.Len(t, msgs, 1)
		assert.Equal(t, []entity.ContentPart{{Type: entity.CapabilityText, Value: "hello"}}, msgs[0].Parts)
	})
}
