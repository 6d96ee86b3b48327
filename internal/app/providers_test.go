package app

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"teamboard/internal/config"
)

func TestNewPushChain(t *testing.T) {
	chain := NewPushChain(&config.Config{}, zap.NewNop())
	require.Empty(t, chain.Strategies())

	chain = NewPushChain(&config.Config{
		PushAlertAPIKey: "pa",
		OneSignalAppID:  "app",
		OneSignalAPIKey: "os",
	}, zap.NewNop())
	require.Equal(t, []string{"pushalert", "onesignal"}, chain.Strategies())

	chain = NewPushChain(&config.Config{OneSignalAppID: "app"}, zap.NewNop())
	require.Empty(t, chain.Strategies())
}
