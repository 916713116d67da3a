package storage

import (
	"fmt"

	"github.com/JoelCyril/Pulso.ai/internal"
	"github.com/JoelCyril/Pulso.ai/internal/config"
)

func New(cfg *config.Config, logger internal.Logger) (KV, error) {
	switch cfg.DBType {
	case "file":
		return NewFileStorage(cfg.DataFile, logger)
	case "postgres":
		return NewPostgresStorage(cfg.DBDSN, logger)
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", cfg.DBType)
	}
}
