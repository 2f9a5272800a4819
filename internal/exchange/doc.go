// Package exchange moves packed payloads between peers.
//
// Ownership boundary:
// - frames every payload behind a fixed Header record
// - runs sessions over net.Conn or yamux streams with per-call deadlines
// - dials with exponential backoff and serves accepted sessions to a handler
// - fans messages out to local sessions (Hub) or an MQTT broker
//
// Payload encoding belongs to the caller's packer.Packer.
package exchange
