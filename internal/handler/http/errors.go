// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// errInvalidRequestBody is returned to clients whose request body is not a
// single well-formed JSON value matching the endpoint payload.
var errInvalidRequestBody = errors.New("invalid request body")

// errPanicRecovered marks responses produced by the recovery middleware.
var errPanicRecovered = errors.New("panic recovered")
