// Package env provides a simple and consistent way to read runtime environment settings.
// It determines the current environment and scope, and locates the directory holding
// configuration files, enabling environment-based file discovery and conditional logic.
package env

import (
	"os"
	"strings"
)

const (
	// confDirVar is the environment variable naming the directory containing configuration files.
	confDirVar = "CONF_DIR"
	// envVar is the environment variable used to determine the current environment.
	envVar = "APP_ENV"
	// scopeVar is the environment variable used to determine the current scope.
	// This is typically used to distinguish between different deployment scopes (e.g., us, eu, staging)
	scopeVar = "APP_SCOPE"

	// envProd is the value that indicates a production environment.
	envProd = "production"
	// scopeProd is the value that indicates a productive scope.
	// When the scope contains this value, the deployment is considered production
	// and not a test/stage/release one.
	scopeProd = "prod"

	// defaultEnv is used when APP_ENV is unset.
	defaultEnv = "local"
	// defaultScope is used when APP_SCOPE is unset.
	defaultScope = "default"
)

type (
	Environment struct {
		env   string
		scope string
	}
)

// Get returns the current environment by reading the APP_ENV and APP_SCOPE
// environment variables, substituting "local" and "default" when unset.
//
// Example:
//
//	currentEnv := env.Get()
//	fmt.Printf("Current environment: %s, scope: %s\n", currentEnv.Env(), currentEnv.Scope())
func Get() Environment {
	env := os.Getenv(envVar)
	if env == "" {
		env = defaultEnv
	}
	scope := os.Getenv(scopeVar)
	if scope == "" {
		scope = defaultScope
	}
	return Environment{
		env:   env,
		scope: scope,
	}
}

// ConfDir returns the directory containing configuration files, read from
// the CONF_DIR environment variable. It defaults to the current directory
// when unset.
func ConfDir() string {
	d := os.Getenv(confDirVar)
	if d == "" {
		return "."
	}
	return d
}

// Env returns the current environment name.
//
// Returns:
//   - The value of the APP_ENV environment variable, or "local" if not set
func (e Environment) Env() string {
	return e.env
}

// Scope returns the current scope of the environment.
//
// Returns:
//   - The value of the APP_SCOPE environment variable, or "default" if not set
func (e Environment) Scope() string {
	return e.scope
}

// IsDefaultScope reports whether the scope was left unset.
func (e Environment) IsDefaultScope() bool {
	return e.scope == defaultScope
}

// IsProduction returns true if the current environment is a production hosted environment.
//
// Returns:
//   - true if running in a production environment
//   - false if running in a local or non-production environment
func (e Environment) IsProduction() bool {
	return e.env == envProd
}

// Prod returns true if the code is considered in production and not a test/stage/release one.
//
// Returns:
//   - true if running in a production environment and the scope contains "prod"
//   - false otherwise
func (e Environment) Prod() bool {
	return e.IsProduction() && strings.Contains(e.scope, scopeProd)
}

// IsProduction is a convenience method for Get().IsProduction()
func IsProduction() bool {
	return Get().IsProduction()
}

// Prod is a convenience method for Get().Prod()
func Prod() bool {
	return Get().Prod()
}
