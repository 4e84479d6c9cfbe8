package config

import "errors"

var (
	// ErrConfigDirUnwritable is returned when the configuration directory
	// cannot be created or written to.
	ErrConfigDirUnwritable = errors.New("config: directory is not writable")

	// ErrCustomConfigDirInvalid is returned when custom_config_dir points at
	// a path that cannot be used as a configuration directory.
	ErrCustomConfigDirInvalid = errors.New("config: custom_config_dir is invalid")
)
