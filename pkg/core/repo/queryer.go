// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import "context"

// Queryer runs raw SQL statements and returns the number of affected
// rows. Both of Conn and Tx implement it.
type Queryer interface {
	Exec(ctx context.Context, sql string, args ...any) (count int64, err error)
}
