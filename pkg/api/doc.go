// Package api defines the request and response messages of the ledger's
// Connect services. Messages travel as JSON; monetary amounts are decimal
// strings such as "33.34".
package api
