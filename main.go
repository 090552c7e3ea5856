// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-lobby-bot/internal/app"
	"github.com/AccelByte/extend-lobby-bot/internal/config"
	"github.com/AccelByte/extend-lobby-bot/pkg/provider"
)

func main() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetLevel(logrus.InfoLevel)
	logrus.Infof("starting lobby bot..")

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("invalid config: %v", err)
	}
	level, _ := logrus.ParseLevel(cfg.LogLevel)
	logrus.SetLevel(level)

	details, err := credentials(cfg, os.Stdin, os.Stdout)
	if err != nil {
		logrus.Fatalf("failed to read credentials: %v", err)
	}

	ctx := context.Background()
	application, err := app.New(ctx, cfg, details, app.Options{})
	if err != nil {
		logrus.Fatalf("failed to initialize application: %v", err)
	}

	if err := application.Run(ctx); err != nil {
		logrus.Fatalf("application error: %v", err)
	}
}

// credentials returns the account from the configuration, prompting on in
// for whatever is missing.
func credentials(cfg *config.Config, in io.Reader, out io.Writer) (provider.LogOnDetails, error) {
	details := provider.LogOnDetails{Username: cfg.Username, Password: cfg.Password}
	if details.Username != "" && details.Password != "" {
		return details, nil
	}

	reader := bufio.NewReader(in)
	if details.Username == "" {
		username, err := prompt(reader, out, "Username: ")
		if err != nil {
			return details, err
		}
		if username == "" {
			return details, errors.New("username is required")
		}
		details.Username = username
	}
	if details.Password == "" {
		password, err := prompt(reader, out, "Password: ")
		if err != nil {
			return details, err
		}
		details.Password = password
	}
	return details, nil
}

func prompt(reader *bufio.Reader, out io.Writer, label string) (string, error) {
	fmt.Fprint(out, label)
	line, err := reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("failed to read %s: %w", strings.TrimSuffix(strings.ToLower(label), ": "), err)
	}
	return strings.TrimSpace(line), nil
}
