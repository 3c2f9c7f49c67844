// Package config loads basrs settings.
//
// Sources are layered, later ones winning: the embedded defaults, the user
// file ($XDG_CONFIG_HOME/basrs/config.toml or config.yaml), BASRS_*
// environment variables and finally command-line flag overrides.
package config
