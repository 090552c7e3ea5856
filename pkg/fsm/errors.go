// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package fsm

import "errors"

var (
	// ErrCyclicHierarchy is reported when SubstateOf would create a parent loop.
	ErrCyclicHierarchy = errors.New("cyclic state hierarchy")

	// ErrInvalidRule is reported for duplicate or malformed trigger rules.
	ErrInvalidRule = errors.New("invalid trigger rule")
)
