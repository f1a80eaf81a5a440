package wave

// kernelCache memoizes one transfer function per (depth, channel) pair.
// Entries start empty and are filled at most once; a nil slot doubles as the
// "not generated yet" flag. Reads of a filled slot hand back a deep copy so
// no caller can alias or mutate the stored kernel.
//
// The cache is not safe for concurrent use; the owning Propagator documents
// the same restriction.
type kernelCache struct {
	depths   int
	channels int
	entries  [][][]complex128 // depths*channels slots, nil until generated
}

func newKernelCache(depths, channels int) *kernelCache {
	return &kernelCache{
		depths:   depths,
		channels: channels,
		entries:  make([][][]complex128, depths*channels),
	}
}

func (c *kernelCache) slot(depthID, channelID int) int {
	return depthID*c.channels + channelID
}

// getOrCreate returns the kernel for (depthID, channelID), invoking build
// exactly once per slot over the cache's lifetime. A build failure leaves
// the slot empty; other slots are unaffected.
func (c *kernelCache) getOrCreate(depthID, channelID int, build func() ([][]complex128, error)) ([][]complex128, error) {
	i := c.slot(depthID, channelID)
	if c.entries[i] != nil {
		return cloneComplex2D(c.entries[i]), nil
	}
	kernel, err := build()
	if err != nil {
		return nil, err
	}
	c.entries[i] = kernel
	return kernel, nil
}

func (c *kernelCache) generated(depthID, channelID int) bool {
	return c.entries[c.slot(depthID, channelID)] != nil
}

// reset empties every slot, forcing regeneration on next use.
func (c *kernelCache) reset() {
	for i := range c.entries {
		c.entries[i] = nil
	}
}
