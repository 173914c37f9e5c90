// Package filmcache persists produced-film verdicts between runs.
//
// The cache is a single JSON document keyed by normalized title. Entries
// carry the timestamp of the lookup that produced them and expire after a
// configurable number of days; an expired entry is treated as a miss so the
// next check re-queries the external source. Writes take a file lock and
// merge with the on-disk state first, so concurrent batch runs sharing one
// cache file do not lose each other's verdicts.
package filmcache
