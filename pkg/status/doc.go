/*
Package status holds the transient run report shared by every toolbelt command.

	+-------------+        +-------------+
	|   backup /  |  ops   |   status    |
	|    sweep    +------->+  (report)   |
	+-------------+        +------+------+
	                              |
	                  +-----------+-----------+
	                  |                       |
	            +-----+-----+           +-----+-----+
	            | per-file  |           |  summary  |
	            |   lines   |           |   table   |
	            +-----------+           +-----------+

🎯 Purpose:
- FileStatus / FileOperation describe what happened to a single file
- Tally counts examined, acted-on and failed items for one invocation
- FormatFileOperation renders fixed-width, colored action lines
- RenderSummary renders the final summary block

Nothing here is persisted; a Tally lives for exactly one process.
*/
package status
