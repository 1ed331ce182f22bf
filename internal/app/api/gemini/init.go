package gemini

import (
	"context"

	"github.com/Lorak9904/RhetorAI/internal/app/api/provider"
)

func init() {
	provider.RegisterGenerator("gemini", func(settings provider.Settings) (provider.Generator, error) {
		return NewGenerator(context.Background(), settings)
	})
}
