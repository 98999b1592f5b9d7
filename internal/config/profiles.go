// internal/config/profiles.go
package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/nhath/ezsql/internal/db"
)

// Profile represents a named database connection
type Profile struct {
	Name     string `toml:"name"`
	Type     string `toml:"type"` // postgres, mysql, sqlite
	Host     string `toml:"host,omitempty"`
	Port     int    `toml:"port,omitempty"`
	User     string `toml:"user,omitempty"`
	Database string `toml:"database"`
	// Password is only held in memory; persisted passwords live in the keyring
	Password string `toml:"-"`
}

// GetProfile retrieves a profile by name
func (c *Config) GetProfile(name string) (*Profile, error) {
	for i := range c.Profiles {
		if c.Profiles[i].Name == name {
			return &c.Profiles[i], nil
		}
	}
	return nil, fmt.Errorf("profile not found: %s", name)
}

// AddProfile adds a new profile to the config
func (c *Config) AddProfile(p Profile) error {
	for _, existing := range c.Profiles {
		if existing.Name == p.Name {
			return fmt.Errorf("profile already exists: %s", p.Name)
		}
	}
	p.Password = ""
	c.Profiles = append(c.Profiles, p)
	return c.Save()
}

// DeleteProfile removes a profile from the config
func (c *Config) DeleteProfile(name string) error {
	for i := range c.Profiles {
		if c.Profiles[i].Name == name {
			c.Profiles = append(c.Profiles[:i], c.Profiles[i+1:]...)
			return c.Save()
		}
	}
	return fmt.Errorf("profile not found: %s", name)
}

// ListProfiles returns all profile names
func (c *Config) ListProfiles() []string {
	names := make([]string, len(c.Profiles))
	for i, p := range c.Profiles {
		names[i] = p.Name
	}
	return names
}

// ResolveTarget turns a command-line target into a profile. A target is
// either the name of a configured profile or a connection string.
func (c *Config) ResolveTarget(target string) (Profile, error) {
	if p, err := c.GetProfile(target); err == nil {
		return *p, nil
	}
	if strings.TrimSpace(target) == "" {
		return Profile{}, fmt.Errorf("empty connection target")
	}
	return ParseDSN(target, target)
}

// ConnectParams returns the driver parameters for the profile
func (p *Profile) ConnectParams() db.ConnectParams {
	return db.ConnectParams{
		Host:     p.Host,
		Port:     p.Port,
		User:     p.User,
		Password: p.Password,
		Database: p.Database,
	}
}

// DisplayDSN builds a connection string for display, never including the password
func (p *Profile) DisplayDSN() string {
	switch p.Type {
	case "postgres", "mysql":
		u := &url.URL{
			Scheme: p.Type,
			Host:   fmt.Sprintf("%s:%d", p.Host, p.Port),
			Path:   "/" + p.Database,
		}
		if p.User != "" {
			u.User = url.User(p.User)
		}
		return u.String()
	case "sqlite":
		return fmt.Sprintf("sqlite://%s", p.Database)
	default:
		return ""
	}
}

// ParseDSN parses a connection string into a Profile
func ParseDSN(name, dsn string) (Profile, error) {
	p := Profile{Name: name}

	switch {
	case strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://"):
		if err := p.parseURL(dsn, "postgres", 5432); err != nil {
			return p, err
		}
	case strings.HasPrefix(dsn, "mysql://"):
		if err := p.parseURL(dsn, "mysql", 3306); err != nil {
			return p, err
		}
	case strings.HasPrefix(dsn, "sqlite://") || strings.HasPrefix(dsn, "file:"):
		// sqlite:///path/to.db or file:test.db
		p.Type = "sqlite"
		path := strings.TrimPrefix(dsn, "sqlite://")
		path = strings.TrimPrefix(path, "file:")
		p.Database = path
	default:
		// Assume SQLite file path if no scheme match
		p.Type = "sqlite"
		p.Database = dsn
	}

	return p, nil
}

func (p *Profile) parseURL(dsn, kind string, defaultPort int) error {
	u, err := url.Parse(dsn)
	if err != nil {
		return fmt.Errorf("parse %s dsn: %w", kind, err)
	}
	p.Type = kind
	p.Host = u.Hostname()
	if port := u.Port(); port == "" {
		p.Port = defaultPort
	} else if p.Port, err = strconv.Atoi(port); err != nil {
		return fmt.Errorf("invalid port %q: %w", port, err)
	}
	p.User = u.User.Username()
	p.Password, _ = u.User.Password()
	p.Database = strings.TrimPrefix(u.Path, "/")
	return nil
}
