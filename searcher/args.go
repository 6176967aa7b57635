package searcher

// Tolerance absorbs floating point accumulation when comparing state values.
const Tolerance = 1e-4
