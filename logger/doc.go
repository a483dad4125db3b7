// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package logger provides named, dual-sink loggers that emit the same
// formatted line to a log file and to the console. Loggers are held in a
// registry keyed by name so that configuring the same name twice never
// attaches duplicate sinks, and are available through context helpers.
package logger
