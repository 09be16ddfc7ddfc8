// Package dining implements the dining philosophers simulation at the heart
// of dinersim. It owns the fork ring, the deadlock-avoiding acquisition
// policy, the philosopher goroutines, the run lifecycle, and the
// per-philosopher statistics. Everything else in the repository is a thin
// collaborator around this package: configuration files, flags, host
// detection, report rendering and the observation server all stay outside.
package dining
