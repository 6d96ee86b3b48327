package app

import (
	"go.uber.org/zap"
	"teamboard/internal/config"
	"teamboard/internal/push"
	"teamboard/internal/push/onesignal"
	"teamboard/internal/push/pushalert"
)

// NewPushChain orders the vendor push strategies. With no vendor keys the
// chain is empty and broadcasts reach users through their live streams only.
func NewPushChain(cfg *config.Config, logger *zap.Logger) *push.Chain {
	var strategies []push.Strategy
	if cfg.PushAlertAPIKey != "" {
		strategies = append(strategies, pushalert.NewClient(cfg.PushAlertAPIKey))
	}
	if cfg.OneSignalAppID != "" && cfg.OneSignalAPIKey != "" {
		strategies = append(strategies, onesignal.NewClient(cfg.OneSignalAppID, cfg.OneSignalAPIKey))
	}

	chain := push.NewChain(cfg.PushTimeout, logger, strategies...)
	logger.Info("push chain configured", zap.Strings("strategies", chain.Strategies()))
	return chain
}
