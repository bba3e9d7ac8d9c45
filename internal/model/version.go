package model

// Version is the current release version, overridden at build time via
// -ldflags "-X traceplay/internal/model.Version=...".
var Version = "0.3.0"
