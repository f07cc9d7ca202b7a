package dedup

// Ratio returns a normalized character-level similarity in [0,1] between
// two strings: 2*M/T, where T is the total number of characters and M the
// number matched by recursively taking the longest common block and
// matching the pieces on each side of it (Ratcliff/Obershelp).
//
// This reproduces Python's difflib.SequenceMatcher.ratio() for short
// strings (no autojunk, which only kicks in past 200 characters — far
// beyond any posting title), so it doubles as the reference oracle the
// similarity threshold was tuned against.
func Ratio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1.0
	}
	return 2 * float64(matchedChars(ra, rb)) / float64(total)
}

func matchedChars(a, b []rune) int {
	b2j := make(map[rune][]int, len(b))
	for j, r := range b {
		b2j[r] = append(b2j[r], j)
	}

	var rec func(alo, ahi, blo, bhi int) int
	rec = func(alo, ahi, blo, bhi int) int {
		i, j, k := longestMatch(a, b2j, alo, ahi, blo, bhi)
		if k == 0 {
			return 0
		}
		return k + rec(alo, i, blo, j) + rec(i+k, ahi, j+k, bhi)
	}
	return rec(0, len(a), 0, len(b))
}

// longestMatch finds the longest block a[i:i+k] == b[j:j+k] inside the
// given windows, preferring the earliest i, then the earliest j, on ties.
func longestMatch(a []rune, b2j map[rune][]int, alo, ahi, blo, bhi int) (besti, bestj, bestsize int) {
	besti, bestj = alo, blo
	j2len := make(map[int]int)
	for i := alo; i < ahi; i++ {
		newj2len := make(map[int]int)
		for _, j := range b2j[a[i]] {
			if j < blo {
				continue
			}
			if j >= bhi {
				break
			}
			k := j2len[j-1] + 1
			newj2len[j] = k
			if k > bestsize {
				besti, bestj, bestsize = i-k+1, j-k+1, k
			}
		}
		j2len = newj2len
	}
	return besti, bestj, bestsize
}
