package tournament

// combinations returns every unordered N-subset of programs, in discovery order.
func combinations(programs []Program, n int) [][]Program {
	var out [][]Program
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	total := len(programs)
	if n > total {
		return nil
	}
	for {
		combo := make([]Program, n)
		for i, j := range idx {
			combo[i] = programs[j]
		}
		out = append(out, combo)

		i := n - 1
		for i >= 0 && idx[i] == i+total-n {
			i--
		}
		if i < 0 {
			break
		}
		idx[i]++
		for j := i + 1; j < n; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
	return out
}

// permutations returns every ordering of combo, so that first-move advantage is exercised
// symmetrically across every seat (§4.5 step 3).
func permutations(combo []Program) [][]Program {
	if len(combo) <= 1 {
		return [][]Program{append([]Program(nil), combo...)}
	}
	var out [][]Program
	for i := range combo {
		rest := make([]Program, 0, len(combo)-1)
		rest = append(rest, combo[:i]...)
		rest = append(rest, combo[i+1:]...)
		for _, sub := range permutations(rest) {
			perm := append([]Program{combo[i]}, sub...)
			out = append(out, perm)
		}
	}
	return out
}

// matchUps enumerates every combination, every permutation of that combination, repeated R
// times, exactly as §4.5 step 3 specifies.
func matchUps(programs []Program, n, r int) [][]Program {
	var out [][]Program
	for _, combo := range combinations(programs, n) {
		for _, perm := range permutations(combo) {
			for i := 0; i < r; i++ {
				out = append(out, perm)
			}
		}
	}
	return out
}
