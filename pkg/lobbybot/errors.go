// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package lobbybot

import "errors"

var (
	// ErrMissingUsername is returned by New when no username is given.
	ErrMissingUsername = errors.New("username is required")

	// ErrMissingFactory is returned by New when no provider factory is given.
	ErrMissingFactory = errors.New("provider factory is required")

	// ErrInvalidLifecycle is returned by New when the state machine
	// configuration is inconsistent.
	ErrInvalidLifecycle = errors.New("invalid lifecycle configuration")
)
