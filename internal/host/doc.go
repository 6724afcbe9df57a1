// Package host constructs and owns every long-lived service of the process
// and binds them to the message gateway.
package host
