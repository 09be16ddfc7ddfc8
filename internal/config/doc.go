// Package config loads table configuration files.
//
// A configuration file is HCL. Think and eat times keep the inclusive
// "min-max" millisecond range notation operators already use:
//
//	philosophers     = 5
//	duration_seconds = 10
//	think_ms         = "50-200"
//	eat_ms           = "30-100"
//	variant          = "symmetry"
//	seed             = 42
//
// Attribute values are full HCL expressions evaluated against the host
// variables the caller provides (see Load), so a file can say
// `philosophers = ec2 ? 10 : 5`. Only syntax is judged here; semantic rules
// such as the seat count, interval sanity and the supported variants are
// owned by the dining package.
package config
