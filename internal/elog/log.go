// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package elog is the file handle's logging facility. It wraps
// go.uber.org/zap the way saferwall/pe's internal log package wraps its own
// logger: a small Helper type with level-gated Debugf/Infof/Warnf/Errorf,
// constructed once per file handle. The file handle itself emits no log
// entries through it; it only calls Sync from Close.
package elog

import (
	"go.uber.org/zap"
)

// Helper is the logging handle owned by a file handle.
type Helper struct {
	l *zap.SugaredLogger
}

// New builds a Helper around a *zap.Logger. Passing nil gives a
// Warn-level-and-above logger writing to stderr, which is the default a
// file handle uses when Options.Logger is unset.
func New(l *zap.Logger) *Helper {
	if l == nil {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
		built, err := cfg.Build()
		if err != nil {
			// zap's production config is constructed entirely from
			// constants above; this can only fail if the process has
			// no usable stderr, in which case logging is moot.
			built = zap.NewNop()
		}
		l = built
	}
	return &Helper{l: l.Sugar()}
}

// Nop returns a Helper that discards everything, used by tests that don't
// want log noise.
func Nop() *Helper { return &Helper{l: zap.NewNop().Sugar()} }

func (h *Helper) Debugf(format string, args ...interface{}) { h.l.Debugf(format, args...) }
func (h *Helper) Infof(format string, args ...interface{})  { h.l.Infof(format, args...) }
func (h *Helper) Warnf(format string, args ...interface{})  { h.l.Warnf(format, args...) }
func (h *Helper) Errorf(format string, args ...interface{}) { h.l.Errorf(format, args...) }

// Sync flushes any buffered log entries. Errors from Sync on stderr are
// expected on some platforms (ENOTTY) and are intentionally swallowed here,
// mirroring zap's own documented guidance.
func (h *Helper) Sync() {
	_ = h.l.Sync()
}
