package scenarios

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario is a command script with the replies it must produce.
type Scenario struct {
	Name          string   `yaml:"name"`
	Description   string   `yaml:"description,omitempty"`
	FleetCapacity int      `yaml:"fleet_capacity,omitempty"`
	RouteCache    bool     `yaml:"route_cache,omitempty"`
	Commands      []string `yaml:"commands"`
	Expected      []string `yaml:"expected"`
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	if sc.Name == "" {
		return nil, fmt.Errorf("%s: scenario name is required", path)
	}
	if len(sc.Commands) == 0 {
		return nil, fmt.Errorf("%s: scenario %s has no commands", path, sc.Name)
	}
	return &sc, nil
}
