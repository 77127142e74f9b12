// Package schema declares the records returned by the Instagram aggregation
// API and the strict decoding boundary for its response envelopes.
//
// Every response has the same outer shape:
//
//	{"status": "ok" | "fail", "message": "...", "data": {...}}
//
// Decode rejects bodies that are not valid JSON, that carry an unknown status,
// or whose data section is missing or malformed on an "ok" response. Callers
// above this package only see typed records.
package schema
