package compose

import (
	"context"
	"fmt"

	"github.com/compose-spec/compose-go/v2/loader"
	"github.com/compose-spec/compose-go/v2/types"
	"gopkg.in/yaml.v3"
)

// fragmentFileName is the name compose-go reports in validation errors.
const fragmentFileName = "envlist.compose.yml"

type serviceFragment struct {
	Environment types.MappingWithEquals `yaml:"environment"`
}

type fragment struct {
	Services map[string]serviceFragment `yaml:"services"`
}

// Environment converts env lines to a compose environment mapping.
// "KEY=VALUE" maps KEY to VALUE, a bare "KEY" maps to nil so compose takes the
// value from the shell. Empty lines are skipped. Later lines win.
func Environment(lines []string) types.MappingWithEquals {
	var kept []string
	for _, line := range lines {
		if line != "" {
			kept = append(kept, line)
		}
	}
	return types.NewMappingWithEquals(kept)
}

// Fragment renders a compose document holding only the environment of service.
func Fragment(service string, lines []string) ([]byte, error) {
	if service == "" {
		return nil, fmt.Errorf("service name is empty")
	}
	doc := fragment{
		Services: map[string]serviceFragment{
			service: {Environment: Environment(lines)},
		},
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to render compose fragment: %w", err)
	}
	return out, nil
}

// Validate loads content with the Docker Compose SDK and checks it against the
// compose schema. Interpolation and consistency checks are skipped since a
// fragment has no image or build section.
func Validate(ctx context.Context, workingDir string, content []byte) error {
	configDetails := types.ConfigDetails{
		WorkingDir: workingDir,
		ConfigFiles: []types.ConfigFile{
			{
				Filename: fragmentFileName,
				Content:  content,
			},
		},
		Environment: types.Mapping{},
	}

	_, err := loader.LoadWithContext(ctx, configDetails, func(options *loader.Options) {
		options.SetProjectName("envlist", true)
		options.SkipInterpolation = true
		options.SkipValidation = false
		options.SkipConsistencyCheck = true
		options.SkipNormalization = true
		options.SkipResolveEnvironment = true
	})
	if err != nil {
		return fmt.Errorf("invalid compose fragment: %w", err)
	}
	return nil
}
