// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	SheetNotFoundId Id = iota + 1
	SheetParseErrorId
	TopicNotFoundId
	ConfigLoadFailedId
	LintProblemsFoundId
	ServeStartFailedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // must never be empty, because we need to have docs about all issue types
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	sheetNotFoundIssue = &Issue{
		id: SheetNotFoundId,
		mdMsg: `
# No sheet found!

We searched for a reference sheet but couldn't find one in the expected locations.

## Search locations (in order of precedence):
1. Current directory (*.sheet.md or REFBOOK.md)
2. ~/.refbook/sheets/
3. Paths configured in your config file

## Things you can try:
- Create a starter sheet in your current directory:
~~~
$ refbook init
~~~

- Or point refbook at a sheet explicitly:
~~~
$ refbook --sheet /path/to/cheatsheet.md topics
~~~

## Example sheet structure:
~~~markdown
# Python Cheat Sheet

## Variables

| Feature | Syntax | Example |
| --- | --- | --- |
| assignment | name = value | x = 42 |
~~~`,
	}

	sheetParseErrorIssue = &Issue{
		id: SheetParseErrorId,
		mdMsg: `
# Failed to parse sheet!

The sheet's frontmatter block is malformed.

## Common issues:
- An opening +++ line with no closing +++ line
- Invalid TOML between the +++ delimiters
- Unknown field types (title, description and language are strings)

## Things you can try:
- Check the error message above for the specific problem
- Remove the frontmatter block entirely; it is optional

## Example of valid frontmatter:
~~~markdown
+++
title = "Python Cheat Sheet"
description = "Syntax reference"
language = "python"
+++

# Python Cheat Sheet
~~~`,
	}

	topicNotFoundIssue = &Issue{
		id: TopicNotFoundId,
		mdMsg: `
# Topic not found!

The topic you asked for is not in any loaded sheet.

## Things you can try:
- List all available topics:
~~~
$ refbook topics
~~~

- Search by keyword instead of exact title:
~~~
$ refbook search pointers
~~~

- Check for typos: topics match by anchor slug or by title,
  so both of these find the same section:
~~~
$ refbook show pointers-and-references
$ refbook show "Pointers and References"
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the refbook configuration file.

## Configuration file locations:
- Linux: ~/.config/refbook/config.cue
- macOS: ~/Library/Application Support/refbook/config.cue
- Windows: %APPDATA%\refbook\config.cue

## Things you can try:
- Create a default configuration:
~~~
$ refbook config init
~~~

- Check the configuration syntax
- Remove the config file to use defaults

## Example configuration:
~~~cue
search_paths: [
    "/home/user/cheatsheets"
]

ui: {
  theme: "auto"
  verbose: false
}
~~~`,
	}

	lintProblemsFoundIssue = &Issue{
		id: LintProblemsFoundId,
		mdMsg: `
# Lint found structural problems!

The sheet has structural defects that a renderer would mishandle.

## What the rules check:
- **toc-anchor**: every table-of-contents link has a matching heading
- **table-columns**: every table row has the header's column count
- **fence-paired**: every code fence is closed
- **heading-jump**: headings never skip a nesting level
- **anchor-dup**: no two headings share an anchor slug
- **shell-syntax**: sh/bash snippets parse (they are never executed)

## Things you can try:
- Fix the findings listed above; each one carries a file:line location
- Disable a rule you disagree with:
~~~
$ refbook lint --disable shell-syntax
~~~

None of these findings are fatal: the sheet still renders, only less well.`,
	}

	serveStartFailedIssue = &Issue{
		id: ServeStartFailedId,
		mdMsg: `
# Failed to start the sheet server!

The SSH browser could not start listening.

## Common causes:
- The configured port is already in use
- Binding a privileged port (< 1024) without permission

## Things you can try:
- Use an ephemeral port:
~~~
$ refbook serve --port 0
~~~

- Pick a different port:
~~~
$ refbook serve --port 2222
~~~`,
	}

	issues = map[Id]*Issue{
		sheetNotFoundIssue.Id():     sheetNotFoundIssue,
		sheetParseErrorIssue.Id():   sheetParseErrorIssue,
		topicNotFoundIssue.Id():     topicNotFoundIssue,
		configLoadFailedIssue.Id():  configLoadFailedIssue,
		lintProblemsFoundIssue.Id(): lintProblemsFoundIssue,
		serveStartFailedIssue.Id():  serveStartFailedIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
