package config

import (
	"strings"
)

type Environment int32

const (
	UNDEFINED_ENV Environment = iota
	LOCAL_ENV
	TEST_ENV
	DEV_ENV
	UAT_ENV
	PROD_ENV
)

var environmentNames = map[Environment]string{
	LOCAL_ENV: "local",
	TEST_ENV:  "test",
	DEV_ENV:   "dev",
	UAT_ENV:   "uat",
	PROD_ENV:  "prod",
}

func StringToEnvironment(s string) Environment {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "production" {
		return PROD_ENV
	}
	for env, name := range environmentNames {
		if name == s {
			return env
		}
	}
	return UNDEFINED_ENV
}

func (e Environment) String() string {
	if name, ok := environmentNames[e]; ok {
		return name
	}
	return "UNDEFINED"
}

// IsDeployed is true for shared environments, where debug logging stays off.
func (e Environment) IsDeployed() bool {
	return e == DEV_ENV || e == UAT_ENV || e == PROD_ENV
}

// IsProduction gates APM reporting and hides the profiling endpoints.
func (e Environment) IsProduction() bool {
	return e == PROD_ENV
}

func (c Config) Environment() Environment {
	return StringToEnvironment(c.App.Env)
}
