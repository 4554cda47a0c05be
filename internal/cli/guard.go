package cli

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/ppiankov/fsgate/internal/config"
	"github.com/ppiankov/fsgate/internal/guard"
)

// newGuard builds a Guard from the effective configuration for the local
// (non-server) commands. Warnings go to stderr.
func newGuard() (*guard.Guard, error) {
	cfg, err := config.Load(rootConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.WarnLevel)

	g, err := guard.New(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create guard: %w", err)
	}
	return g, nil
}
