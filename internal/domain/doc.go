// Package domain contains the core business entities of the task board:
// users, tasks, and the partial-update shapes used to move and edit tasks.
// It is independent of any storage engine or transport.
package domain
