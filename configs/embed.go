// Package configs provides the embedded configuration template for nearby.
//
// The template is embedded at build time with //go:embed so it ships in
// every distribution, source builds included. It is written verbatim by
// `nearby config --init` as .nearby.yaml in the project directory.
//
// Configuration hierarchy (see internal/config Load()):
//  1. Hardcoded defaults (internal/config NewConfig())
//  2. Project config (.nearby.yaml)
//  3. Environment variables (NEARBY_*)
package configs

import _ "embed"

// ProjectConfigTemplate is the template for project-level configuration,
// created by `nearby config --init` as .nearby.yaml.
//
//go:embed project-config.example.yaml
var ProjectConfigTemplate string
