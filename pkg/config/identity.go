package config

import (
	"fmt"

	"github.com/marmos91/fileengine/pkg/authctx"
)

// IdentityConfig is the default identity of a client session.
//
// Claims accept the three claim shapes in YAML:
//
//	claims:
//	  - read                  # flag: key and value both "read"
//	  - {region: eu, tier: 1} # map: every entry merged
//	  - [department, sales]   # pair
type IdentityConfig struct {
	// User is the default user name
	// Default: "user"
	User string `mapstructure:"user" yaml:"user"`

	// Tenant is the default tenant; empty means none
	Tenant string `mapstructure:"tenant" yaml:"tenant"`

	// Roles are sent in order
	Roles []string `mapstructure:"roles" yaml:"roles"`

	// Claims is a list of flags, maps and [key, value] pairs
	Claims []any `mapstructure:"claims" yaml:"claims"`
}

// Defaults converts the identity into session defaults. It fails when a
// claim has none of the supported shapes.
func (c *IdentityConfig) Defaults() (authctx.Defaults, error) {
	claims, err := authctx.ParseClaims(c.Claims)
	if err != nil {
		return authctx.Defaults{}, fmt.Errorf("invalid identity claims: %w", err)
	}
	return authctx.Defaults{
		User:   c.User,
		Tenant: c.Tenant,
		Roles:  append([]string(nil), c.Roles...),
		Claims: claims,
	}, nil
}
