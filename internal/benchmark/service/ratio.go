package service

import "strings"

// Ratio returns the Ratcliff/Obershelp similarity of a and b in [0..1],
// case-insensitive: 2*M/T where M is the number of characters in matching
// blocks and T the total length of both strings.
func Ratio(a, b string) float64 {
	ra := []rune(strings.ToLower(a))
	rb := []rune(strings.ToLower(b))
	total := len(ra) + len(rb)
	if total == 0 {
		return 1
	}
	return 2 * float64(matchingChars(ra, rb)) / float64(total)
}

type span struct{ alo, ahi, blo, bhi int }

// matchingChars sums the sizes of all matching blocks: take the longest common
// block, then recurse into what is left on each side of it.
func matchingChars(a, b []rune) int {
	// row buffers reused across longestMatch calls
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)

	n := 0
	queue := []span{{0, len(a), 0, len(b)}}
	for len(queue) > 0 {
		s := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		i, j, k := longestMatch(a, b, s, prev, cur)
		if k == 0 {
			continue
		}
		n += k
		if s.alo < i && s.blo < j {
			queue = append(queue, span{s.alo, i, s.blo, j})
		}
		if i+k < s.ahi && j+k < s.bhi {
			queue = append(queue, span{i + k, s.ahi, j + k, s.bhi})
		}
	}
	return n
}

// longestMatch finds the longest block a[i:i+k] == b[j:j+k] inside s.
// Among equally long blocks the one starting earliest in a wins, then earliest in b.
func longestMatch(a, b []rune, s span, prev, cur []int) (besti, bestj, bestk int) {
	besti, bestj = s.alo, s.blo
	for j := s.blo; j <= s.bhi; j++ {
		prev[j] = 0
	}
	for i := s.alo; i < s.ahi; i++ {
		for j := s.blo; j < s.bhi; j++ {
			if a[i] != b[j] {
				cur[j+1] = 0
				continue
			}
			k := prev[j] + 1
			cur[j+1] = k
			if k > bestk {
				besti, bestj, bestk = i-k+1, j-k+1, k
			}
		}
		cur[s.blo] = 0
		prev, cur = cur, prev
	}
	return besti, bestj, bestk
}
