package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
)

// SeedConfig is the TOML reference data loaded by `meetingtax seed`:
// departments, job roles, hourly rates and the cost threshold.
type SeedConfig struct {
	Departments    []SeedDepartment `toml:"department"`
	JobRoles       []SeedJobRole    `toml:"role"`
	Rates          []SeedRate       `toml:"rate"`
	ThresholdCents int64            `toml:"threshold_cents"`
}

// SeedDepartment represents a department entry in the seed file
type SeedDepartment struct {
	Name string `toml:"name"`
}

// Validate checks if the SeedDepartment is valid
func (d *SeedDepartment) Validate() error {
	if d.Name == "" {
		return goerr.Wrap(ErrMissingName, "department name is required")
	}
	return nil
}

// SeedJobRole represents a job role entry in the seed file
type SeedJobRole struct {
	Name string `toml:"name"`
}

// Validate checks if the SeedJobRole is valid
func (r *SeedJobRole) Validate() error {
	if r.Name == "" {
		return goerr.Wrap(ErrMissingName, "job role name is required")
	}
	return nil
}

// SeedRate represents a rate entry in the seed file. Role and
// department refer to entries by name; an empty department makes
// this the role's default rate.
type SeedRate struct {
	Role       string `toml:"role"`
	Department string `toml:"department"`
	RateCents  int64  `toml:"rate_cents"`
}

// Validate checks if the SeedRate is valid
func (r *SeedRate) Validate() error {
	if r.Role == "" {
		return goerr.Wrap(ErrInvalidConfig, "rate role is required")
	}
	if r.RateCents <= 0 {
		return goerr.Wrap(ErrInvalidConfig, "rate must be positive",
			goerr.V("role", r.Role), goerr.V("rateCents", r.RateCents))
	}
	return nil
}

// Validate checks the whole seed file for duplicates and invalid
// entries.
func (c *SeedConfig) Validate() error {
	deptNames := make(map[string]bool, len(c.Departments))
	for i, d := range c.Departments {
		if err := d.Validate(); err != nil {
			return goerr.Wrap(err, "invalid department", goerr.V("index", i))
		}
		if deptNames[d.Name] {
			return goerr.Wrap(ErrDuplicateEntry, "duplicate department", goerr.V("name", d.Name))
		}
		deptNames[d.Name] = true
	}

	roleNames := make(map[string]bool, len(c.JobRoles))
	for i, r := range c.JobRoles {
		if err := r.Validate(); err != nil {
			return goerr.Wrap(err, "invalid job role", goerr.V("index", i))
		}
		if roleNames[r.Name] {
			return goerr.Wrap(ErrDuplicateEntry, "duplicate job role", goerr.V("name", r.Name))
		}
		roleNames[r.Name] = true
	}

	rateKeys := make(map[string]bool, len(c.Rates))
	for i, r := range c.Rates {
		if err := r.Validate(); err != nil {
			return goerr.Wrap(err, "invalid rate", goerr.V("index", i))
		}
		if !roleNames[r.Role] {
			return goerr.Wrap(ErrInvalidConfig, "rate refers to unknown role",
				goerr.V("index", i), goerr.V("role", r.Role))
		}
		if r.Department != "" && !deptNames[r.Department] {
			return goerr.Wrap(ErrInvalidConfig, "rate refers to unknown department",
				goerr.V("index", i), goerr.V("department", r.Department))
		}
		key := r.Role + "/" + r.Department
		if rateKeys[key] {
			return goerr.Wrap(ErrDuplicateEntry, "duplicate rate", goerr.V("key", key))
		}
		rateKeys[key] = true
	}

	if c.ThresholdCents < 0 {
		return goerr.Wrap(ErrInvalidConfig, "threshold must not be negative",
			goerr.V("thresholdCents", c.ThresholdCents))
	}

	return nil
}

// LoadSeedConfig reads and validates a TOML seed file
func LoadSeedConfig(path string) (*SeedConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(ErrConfigNotFound, "seed file not found", goerr.V(ConfigPathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read seed file", goerr.V(ConfigPathKey, path))
	}

	var cfg SeedConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, goerr.Wrap(err, "failed to parse seed file", goerr.V(ConfigPathKey, path))
	}

	if err := cfg.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid seed file", goerr.V(ConfigPathKey, path))
	}

	return &cfg, nil
}
