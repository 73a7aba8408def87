// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package views renders the server-side HTML pages.

Every page in templates/ is parsed together with base.html, which defines
the layout and the footer. Pages fill the "title" and "content" blocks.
The page data types live in pages.go.

Template functions:

	comma  1234 -> "1,234"          (go-humanize)
	ago    time -> "3 hours ago"    (go-humanize)
	pct    33.333 -> "33.3"
	date   time -> "02.01.2006 15:04"
	site   footer flags from config
*/
package views
