package sdk

// Version is the published SDK version.
// 0.3.0: Route every service client through the refresh-and-replay transport;
// add cash register sessions, payments, and reports.
// 0.2.0: Breaking - session.Store interface replaces the storage shim of the
// previous terminal client; add the sqlitestore driver.
// 0.1.0: Initial login/pin-login/session port from the legacy terminal.
const Version = "0.3.0"
