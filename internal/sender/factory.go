package sender

import (
	"fmt"
	"strings"

	"github.com/roylee123/sonic-platform-modules-accton/internal/config"
	"github.com/roylee123/sonic-platform-modules-accton/internal/logger"
)

// NewSender creates a Sender based on the configuration.
func NewSender(cfg *config.Config) (Sender, error) {
	log := logger.WithComponent("sender-factory")

	senderType := strings.ToLower(cfg.SenderType)
	if senderType == "" {
		senderType = "file"
	}

	log.Info().
		Str("sender_type", senderType).
		Msg("Creating sender")

	switch senderType {
	case "file":
		return NewFileSender(cfg.File)
	case "statedb":
		return NewStateDBSender(cfg.StateDB)
	case "kafka":
		return NewKafkaSender(cfg.Kafka, cfg.SOCKSProxy)
	default:
		return nil, fmt.Errorf("unknown sender type: %s (supported: file, statedb, kafka)", senderType)
	}
}
