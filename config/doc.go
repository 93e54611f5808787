// Package config holds the YAML-loadable settings for the resolution
// pipeline and the job poller, with sane defaults for every field.
package config
