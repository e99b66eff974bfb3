package cmd

import (
	"io"

	"go.uber.org/dig"

	"cloudkitty-hashmap/adapters/cloudkitty"
	"cloudkitty-hashmap/core/hashmap"
	"cloudkitty-hashmap/core/ui"
	"cloudkitty-hashmap/internal/config"
	apperrors "cloudkitty-hashmap/internal/errors"
)

// newClient builds the rating service client; tests replace it
var newClient = func(cfg *config.Config) hashmap.Client {
	return cloudkitty.New(&cloudkitty.Config{
		Endpoint: cfg.Endpoint,
		Token:    cfg.Token,
		Timeout:  cfg.Timeout(),
	})
}

// buildContainer wires the configuration, client and presenter of one command
func buildContainer(cfg *config.Config, out io.Writer) (*dig.Container, error) {
	container := dig.New()

	providers := []interface{}{
		func() *config.Config { return cfg },
		newClient,
		func(cfg *config.Config) hashmap.Presenter {
			return ui.NewWriter(out, cfg.Output.NoColor)
		},
		func(client hashmap.Client, presenter hashmap.Presenter) hashmap.Env {
			return hashmap.Env{Client: client, Out: presenter}
		},
	}
	for _, p := range providers {
		if err := container.Provide(p); err != nil {
			return nil, apperrors.Internal("failed to provide dependency", err)
		}
	}

	return container, nil
}
