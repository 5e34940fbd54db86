package config

import (
	"errors"
)

var (
	// ErrEmptyURL is returned when webserver.url is missing from main.toml.
	ErrEmptyURL = errors.New("main.toml webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero is returned when webserver.port is missing or 0.
	ErrWebServerPortCanNotBeZero = errors.New("main.toml webserver.port can not be 0")
)
