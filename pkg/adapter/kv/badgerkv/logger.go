// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package badgerkv

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/momeni/dispatchlog/pkg/core/log"
)

var badgerAttr = slog.String("component", "badger")

// logger forwards the Badger logs to the default slog logger.
type logger struct{}

func format(f string, args []any) string {
	return strings.TrimSpace(fmt.Sprintf(f, args...))
}

func (logger) Errorf(f string, args ...any) {
	log.Error(context.Background(), format(f, args), badgerAttr)
}

func (logger) Warningf(f string, args ...any) {
	log.Warn(context.Background(), format(f, args), badgerAttr)
}

func (logger) Infof(f string, args ...any) {
	log.Info(context.Background(), format(f, args), badgerAttr)
}

func (logger) Debugf(f string, args ...any) {
	log.Debug(context.Background(), format(f, args), badgerAttr)
}
