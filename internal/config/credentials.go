package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrMissingToken is returned when no API token is available.
var ErrMissingToken = errors.New("api token not set")

// MissingTokenError names the variable that should have held the token.
type MissingTokenError struct {
	Name string
}

func (e *MissingTokenError) Error() string {
	return fmt.Sprintf("%s environment variable is not set", e.Name)
}

func (e *MissingTokenError) Is(target error) bool {
	return target == ErrMissingToken
}

// TokenSource supplies the API token at request-build time.
type TokenSource interface {
	Token() (string, error)
}

// EnvToken reads the token from an environment variable.
type EnvToken struct {
	Name   string
	Lookup LookupFunc
}

// NewEnvToken reads name from the process environment.
func NewEnvToken(name string) *EnvToken {
	return &EnvToken{Name: name, Lookup: os.LookupEnv}
}

func (e *EnvToken) Token() (string, error) {
	lookup := e.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}
	val, ok := lookup(e.Name)
	if !ok || strings.TrimSpace(val) == "" {
		return "", &MissingTokenError{Name: e.Name}
	}
	return val, nil
}

// StaticToken always returns the same value. An empty value counts as missing.
type StaticToken string

func (s StaticToken) Token() (string, error) {
	if s == "" {
		return "", ErrMissingToken
	}
	return string(s), nil
}
