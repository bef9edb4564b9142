package configuration

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"
)

var envVarPattern = regexp.MustCompile(`\${([^}]+)}`)

// Load reads application.yml from dir, then overlays
// application-<profile>.yml if the base config names a profile.
func Load(dir string) (*Properties, error) {
	base, err := loadAndExpandYaml(dir, "application")
	if err != nil {
		return nil, err
	}

	cfg := Properties{}
	if err := yaml.Unmarshal([]byte(base), &cfg); err != nil {
		return nil, fmt.Errorf("parse base config: %w", err)
	}

	if cfg.App.Profile != "" {
		profile, err := loadAndExpandYaml(dir, "application-"+cfg.App.Profile)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal([]byte(profile), &cfg); err != nil {
			return nil, fmt.Errorf("parse profile config: %w", err)
		}
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func loadAndExpandYaml(dir, name string) (string, error) {
	file := filepath.Join(dir, name+".yml")
	if _, err := os.Stat(file); err != nil {
		return "", fmt.Errorf("%s.yml not found in %s", name, dir)
	}

	raw, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}

	return expandEnvStrict(string(raw))
}

// expandEnvStrict substitutes ${VAR} references, failing on unset variables
// rather than silently expanding them to the empty string.
func expandEnvStrict(s string) (string, error) {
	matches := envVarPattern.FindAllStringSubmatch(s, -1)
	for _, m := range matches {
		name := m[1]
		if _, ok := os.LookupEnv(name); !ok {
			return "", fmt.Errorf("environment variable %s is not set", name)
		}
	}

	return os.ExpandEnv(s), nil
}

func validate(cfg *Properties) error {
	r := &cfg.Raft
	if r.NodeID == 0 {
		return fmt.Errorf("raft.node-id must be a positive integer")
	}
	if r.ElectionTimeoutMin <= 0 || r.ElectionTimeoutMax <= r.ElectionTimeoutMin {
		return fmt.Errorf("raft election timeout range [%d,%d) is invalid",
			r.ElectionTimeoutMin, r.ElectionTimeoutMax)
	}
	if r.HeartbeatInterval <= 0 {
		return fmt.Errorf("raft.heartbeat-interval must be positive")
	}
	if r.HeartbeatInterval >= r.ElectionTimeoutMin {
		return fmt.Errorf("raft.heartbeat-interval must be below the election timeout minimum")
	}
	if r.MaxBatchEntries <= 0 {
		return fmt.Errorf("raft.max-batch-entries must be positive")
	}
	if _, ok := r.Peers[r.NodeID]; len(r.Peers) > 0 && !ok {
		return fmt.Errorf("raft.peers must include this node's own id %d", r.NodeID)
	}
	return nil
}
