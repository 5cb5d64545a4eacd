package config

import (
	"github.com/kelseyhightower/envconfig"
)

// EnvSpec is the environment surface for bootstrapping a repository
// without code or a configuration file. Variables are prefixed with
// TREELOG_, e.g. TREELOG_ROOT_LEVEL=warn.
type EnvSpec struct {
	// RootLevel is the explicit level of the root logger.
	RootLevel string `envconfig:"ROOT_LEVEL" default:"debug"`
	// Threshold is the repository-wide floor level.
	Threshold string `envconfig:"THRESHOLD" default:"all"`
	// Appender is the appender type attached to the root.
	Appender string `envconfig:"APPENDER" default:"console"`
	// Layout selects the root appender layout (text or json).
	Layout string `envconfig:"LAYOUT" default:"text"`
}

// EnvPrefix is the envconfig prefix for EnvSpec.
const EnvPrefix = "treelog"

// FromEnv reads EnvSpec from the environment and converts it to
// directives for Apply.
func FromEnv() ([]Directive, error) {
	var spec EnvSpec
	if err := envconfig.Process(EnvPrefix, &spec); err != nil {
		return nil, err
	}
	return []Directive{
		{Kind: Threshold, Level: spec.Threshold},
		{Kind: DefineAppender, Name: "root", Type: spec.Appender,
			Params: Params{"layout": spec.Layout}},
		{Kind: DefineRoot, Level: spec.RootLevel, Appenders: []string{"root"}},
	}, nil
}
