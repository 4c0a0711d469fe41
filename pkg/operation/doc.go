/*
Package operation runs every toolbelt command through one contract.

	+-------------+      +-------------+
	|   Runner    | ---> |  Operation  |
	| (timing)    |      | Name/Execute|
	+-------------+      +------+------+
	                            |
	     +----------+-----------+-----------+----------+
	     |          |           |           |          |
	  backup     cleanup     sysinfo      hello    template

🎯 Purpose:
- Turns merged flags and config into a ready-to-run Operation
- Prints the per-run header and the final summary table
- Maps item-level failures to ErrIncomplete so the CLI exits 1

🔄 Flow:
1. cmd/toolbelt builds Options (config + logger) and the per-command args
2. New*Operation validates args and fills defaults
3. Runner.Run executes the operation and logs elapsed time

Operations run once, in a single pass, on the calling goroutine.
*/
package operation
