package testmatrix

// Sharding is the build-time switch controlling whether generated test
// targets may be sharded. It is resolved once by the host configuration and
// consumed read-only here.
type Sharding int

const (
	// ShardingDefault leaves targets unsharded regardless of the
	// requested count.
	ShardingDefault Sharding = iota

	// ShardingDisabled forces every target to be unsharded.
	ShardingDisabled

	// ShardingEnabled honors the caller-requested shard count.
	ShardingEnabled
)

func (s Sharding) String() string {
	switch s {
	case ShardingDisabled:
		return "disabled"
	case ShardingEnabled:
		return "enabled"
	}
	return "default"
}

// ResolveShards maps the sharding switch and the requested shard count to
// the effective count. Sharding is opt-in only: anything but an explicit
// enable resolves to 0.
func ResolveShards(mode Sharding, requested int) int {
	switch mode {
	case ShardingDisabled:
		return 0
	case ShardingEnabled:
		return requested
	default:
		return 0
	}
}
