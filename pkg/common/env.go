// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package common

import (
	"os"
	"strconv"
	"strings"
)

// EnvString returns the trimmed value of key. Unset and blank values yield
// fallback.
func EnvString(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

// EnvInt is EnvString for integers; values that do not parse yield fallback.
func EnvInt(key string, fallback int) int {
	n, err := strconv.Atoi(EnvString(key, ""))
	if err != nil {
		return fallback
	}
	return n
}
