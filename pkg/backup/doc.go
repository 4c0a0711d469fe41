/*
Package backup reproduces a source directory tree at a destination.

	+----------+    size     +----------+   copy | archive   +-------------+
	|  source  +------------>+  Result  +------------------->+ destination |
	+----------+  (best     +----+-----+                    +------+------+
	               effort)       |              Verify             |
	                             +<--------------------------------+

🔄 Flow:
1. The source is checked (must exist and be a directory); nothing is written otherwise
2. SourceSize walks the tree; unreadable entries are listed, never fatal
3. Copy mode mirrors the tree (overwrite on conflict); archive mode writes one ZIP
4. Verify optionally checks the result without touching the filesystem

Per-file problems end up in Result.Skipped. Directory-level problems abort.
*/
package backup
