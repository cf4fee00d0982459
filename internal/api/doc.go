// Package api adapts HTTP requests to the task and user services.
// Handlers decode and validate bodies, call a service, and translate its
// errors into status codes and safe messages.
package api
