// Package ipc is the message gateway between windows and the host. Messages
// are dispatched one at a time, in arrival order, on the goroutine running
// Bus.Run.
package ipc
