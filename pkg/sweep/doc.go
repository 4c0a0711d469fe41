// Package sweep finds and removes temporary files below one or more roots.
//
// Classification lives in RuleSet.IsTempFile and is a pure function of the
// file name, its path relative to the root and the rules. A Sweeper walks each
// root once, pruning hidden directories before descending, and either deletes
// matches or, in dry-run mode, only reports them.
package sweep
