// Package service implements the task board use cases on top of the store
// interfaces.
//
// TaskService and UserService validate identifiers arriving from the request
// boundary, apply task defaults and the configured category set, and translate
// store failures into a small error taxonomy (ErrInvalidIdentifier,
// ErrNotFound, ErrConflict, ErrStoreUnavailable) that the API layer maps to
// HTTP status codes. Domain validation errors pass through unchanged.
package service
