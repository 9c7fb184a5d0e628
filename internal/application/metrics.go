package application

import "expvar"

// Process counters published on /debug/vars.
var (
	loginsOK      = expvar.NewInt("logins_ok")
	loginsFailed  = expvar.NewInt("logins_failed")
	registrations = expvar.NewInt("registrations")
)
