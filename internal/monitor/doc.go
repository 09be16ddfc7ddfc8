// Package monitor serves a live view of a running table over HTTP. It is a
// pure observer: it reads snapshots from the core and never influences the
// simulation. The server exposes a health probe, a one-shot JSON snapshot
// and a WebSocket feed that pushes snapshots on a fixed cadence.
package monitor
