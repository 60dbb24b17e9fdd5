// Package config implements configuration loading for the MCU Control
// Bridge.
//
// Configuration merges three layers: built-in defaults, MCB_* environment
// overrides, and an optional config.yaml in the working directory. The final
// result is validated before use.
package config
