package benchmark

func variation(behavior string, n, cpu int, nsPerOp float64) Variation {
	return Variation{Name: behavior, N: n, CPUCount: cpu, NsPerOp: nsPerOp}
}

func impl(name string, variations ...Variation) Implementation {
	return Implementation{Name: name, Variations: variations}
}

func names(impls []Implementation) []string {
	out := make([]string, len(impls))
	for i, b := range impls {
		out[i] = b.Name
	}
	return out
}
