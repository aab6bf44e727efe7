// Package config provides configuration management for Strata.
//
// Configuration is loaded from a YAML file, defaults are applied, and
// STRATA_SECTION_FIELD environment variables override file values
// (for example STRATA_LOADER_WORKERS overrides loader.workers). The final
// configuration is validated before use.
package config
