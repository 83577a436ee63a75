// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package config

import "errors"

var (
	// ErrInvalidDialect is returned when the probe dialect is neither a known flavour nor auto
	ErrInvalidDialect = errors.New("invalid probe dialect")
	// ErrInvalidProbeInterval is returned when the probe interval is negative
	ErrInvalidProbeInterval = errors.New("invalid probe interval")
	// ErrInvalidStorePath is returned when the store path is empty
	ErrInvalidStorePath = errors.New("invalid store path")
	// ErrInvalidRemoteURL is returned when the remote store url is invalid
	ErrInvalidRemoteURL = errors.New("invalid remote store url")
	// ErrInvalidRemoteRetryCount is returned when the remote retry count is invalid
	ErrInvalidRemoteRetryCount = errors.New("invalid remote store retry count")
	// ErrNoTargets is returned when neither static targets nor a targets file are configured
	ErrNoTargets = errors.New("no targets configured")
)
