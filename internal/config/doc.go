// SPDX-License-Identifier: MPL-2.0

// Package config loads and validates the refbook configuration.
//
// Configuration lives in a CUE file validated against an embedded schema and
// is merged over viper-managed defaults, so a missing or partial config file
// always yields a usable Config.
package config
