// SPDX-License-Identifier: MPL-2.0

// refbook is a terminal reference catalog for markdown cheat sheets.
package main

import cmd "refbook/cmd/refbook"

func main() {
	cmd.Execute()
}
