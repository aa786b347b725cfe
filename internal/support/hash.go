package support

// HashCombine folds h into seed the conventional way: boost::hash_combine's
// constant, with operator precedence that actually binds the shifts and the
// addition before the xor.
func HashCombine(seed, h uint64) uint64 {
	return seed ^ (h + 0x9e3779b97f4a7c15 + (seed << 6) + (seed >> 2))
}

// HashUint32 folds a uint32 into seed via HashCombine, the common case for
// keying a bucket table on node IDs.
func HashUint32(seed uint64, v uint32) uint64 {
	return HashCombine(seed, uint64(v))
}

// HashString folds a string into seed via an FNV-1a pass combined into seed.
func HashString(seed uint64, s string) uint64 {
	const offset64 = 14695981039346656037
	const prime64 = 1099511628211
	h := uint64(offset64)
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= prime64
	}
	return HashCombine(seed, h)
}
