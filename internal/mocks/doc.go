// Package mocks provides shared test doubles.
//
// The store mocks are testify mocks: set expectations with On(...) and check
// them with AssertExpectations. MockTokenService uses function fields with
// fallback values, for handler tests that only need a canned token or claims.
//
//	userStore := new(mocks.UserStore)
//	userStore.On("GetByEmail", mock.Anything, "a@x.com").Return(nil, store.ErrUserNotFound)
package mocks
