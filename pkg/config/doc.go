/*
Package config loads toolbelt defaults from a YAML, JSON or HCL file.

	            +-------------+
	            |   Config    |
	            | log/backup/ |
	            |  cleanup    |
	            +------+------+
	                   |
	     +-------------+-------------+
	     |             |             |
	+----+----+   +----+----+   +----+----+
	|  YAML   |   |  JSON   |   |   HCL   |
	| Parser  |   | Parser  |   | Parser  |
	+---------+   +---------+   +---------+

🎯 Purpose:
- Picks a parser by file extension through a small registry
- Overlays file values onto Default()
- Validates levels, verify modes, extensions and glob patterns

🔄 Lookup:
1. --config PATH when given
2. $XDG_CONFIG_HOME/toolbelt/config.yaml when it exists
3. Default()

Flags always win over file values; that merge happens in cmd/toolbelt.

🔍 Example:

	cfg, err := config.Resolve(ctx, "")
	if err != nil {
		return err
	}
	logger := log.New(os.Stdout, cfg.Level())

Unknown keys are rejected by the YAML and JSON parsers so typos surface
early instead of being silently ignored.
*/
package config
