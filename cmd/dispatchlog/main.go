// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Command dispatchlog records truck dispatches and reports on them.
package main

import "github.com/momeni/dispatchlog/cmd/dispatchlog/command"

func main() {
	command.Execute()
}
