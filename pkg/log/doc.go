// Package log provides named, levelled loggers for shen services.
//
// Each component grabs a logger once with ForService and logs through the
// printf-style helpers:
//
//	l := log.ForService("web")
//	l.Infof("listening on %s", addr)
//	l.Debugf("session %s dispatched %T", id, ev)
//
// Lines are rendered by zerolog's console writer as
//
//	2026/10/19 10:00:00.000000 INFO [web>] listening on localhost:8080
//
// or as JSON objects with a "service" field after SetJSON(true).
//
// Debug output is off by default. It can be enabled for everything with
// SetGlobalDebug or for one service with EnableDebugFor. SetOutput retargets
// every logger, including ones created earlier, which is what tests use to
// capture output in a bytes.Buffer.
package log
