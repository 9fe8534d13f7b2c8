// SPDX-License-Identifier: MPL-2.0

// Package sshserver exposes the reference catalog as a read-only browser
// over SSH using the Wish library. Connecting without a command prints the
// topic index; passing a topic id as the SSH command prints that topic
// rendered for the terminal.
package sshserver
