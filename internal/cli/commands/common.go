package commands

import (
	"fmt"

	"github.com/meddesk-dev/meddesk/internal/cli/client"
	"github.com/meddesk-dev/meddesk/internal/cli/config"
	"github.com/meddesk-dev/meddesk/internal/cli/envselect"
	"github.com/meddesk-dev/meddesk/internal/cli/session"
)

// resolveEnvironment loads the project config and returns the environment to
// use, honoring the --env flag when given. This is common logic used by most
// commands.
func resolveEnvironment(envAlias string) (*config.Environment, error) {
	cfg, err := config.LoadFromCurrentDir()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w\nRun 'meddesk init' to create a configuration file", err)
	}

	env, err := envselect.ResolveEnvironment(cfg, envAlias)
	if err != nil {
		return nil, err
	}

	if err := env.Validate(); err != nil {
		return nil, fmt.Errorf("%w\nPlease edit meddesk.json", err)
	}

	return env, nil
}

// sessionStore returns the production session store for an environment.
func sessionStore(env *config.Environment) session.Store {
	return session.NewKeyringStore(env.Alias)
}

// apiClient builds an API client whose transport reads the session store on
// every request.
func apiClient(env *config.Environment) *client.Client {
	return client.New(env.BaseURL(), sessionStore(env))
}
