// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Maxim Levchenko (WoozyMasta)
// Source: github.com/woozymasta/bcfz

package gpx

import "errors"

// Package errors.
var (
	ErrUnknownFormat    = errors.New("unknown gpx container magic")
	ErrNestedBCFZ       = errors.New("bcfz payload contains another bcfz stream")
	ErrMissingBCFS      = errors.New("bcfz payload does not contain a bcfs filesystem")
	ErrCorruptContainer = errors.New("bcfs sector reference out of range")
)
