package envselect

import (
	"fmt"

	"github.com/manifoldco/promptui"

	"github.com/meddesk-dev/meddesk/internal/cli/config"
	"github.com/meddesk-dev/meddesk/internal/cli/userconfig"
)

// ResolveEnvironment determines which environment to use based on the
// following priority:
// 1. If envAlias flag is provided, use that environment
// 2. If user has a selected environment in their local config, use that
// 3. If only one environment in project config, use that
// 4. Otherwise, prompt user to select an environment interactively
func ResolveEnvironment(projectConfig *config.Config, envAlias string) (*config.Environment, error) {
	// Priority 1: Use environment alias if provided
	if envAlias != "" {
		env, err := projectConfig.GetEnvironmentByAlias(envAlias)
		if err != nil {
			return nil, err
		}
		return env, nil
	}

	// Priority 2: Use selected environment from user config
	selected, err := userconfig.GetSelectedEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}

	if selected != "" {
		env, err := projectConfig.GetEnvironmentByAlias(selected)
		if err != nil {
			// Selected environment no longer exists in project config, clear it and continue
			_ = userconfig.SetSelectedEnv("")
		} else {
			return env, nil
		}
	}

	// Priority 3: If only one environment, use it automatically
	if len(projectConfig.Environments) == 1 {
		env := &projectConfig.Environments[0]
		if err := userconfig.SetSelectedEnv(env.Alias); err != nil {
			// Don't fail if we can't save, just continue
			fmt.Printf("Warning: failed to save selected environment: %v\n", err)
		}
		return env, nil
	}

	// Priority 4: Prompt user to select an environment
	env, err := PromptEnvironmentSelection(projectConfig)
	if err != nil {
		return nil, err
	}

	if err := userconfig.SetSelectedEnv(env.Alias); err != nil {
		// Don't fail if we can't save, just continue
		fmt.Printf("Warning: failed to save selected environment: %v\n", err)
	}

	return env, nil
}

// PromptEnvironmentSelection shows an interactive prompt for the user to
// select an environment
func PromptEnvironmentSelection(projectConfig *config.Config) (*config.Environment, error) {
	if len(projectConfig.Environments) == 0 {
		return nil, fmt.Errorf("no environments configured in meddesk.json")
	}

	type envOption struct {
		Label string
		Env   *config.Environment
	}

	options := make([]envOption, len(projectConfig.Environments))
	for i := range projectConfig.Environments {
		env := &projectConfig.Environments[i]
		options[i] = envOption{
			Label: fmt.Sprintf("%s (%s)", env.Alias, env.URL),
			Env:   env,
		}
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "> {{ .Label | cyan }}",
		Inactive: "  {{ .Label }}",
		Selected: "{{ .Label | green }}",
	}

	prompt := promptui.Select{
		Label:     "Select an environment",
		Items:     options,
		Templates: templates,
		Size:      10,
	}

	index, _, err := prompt.Run()
	if err != nil {
		return nil, fmt.Errorf("environment selection cancelled: %w", err)
	}

	return options[index].Env, nil
}
