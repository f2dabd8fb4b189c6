// Package hydrate adopts pre-rendered markup. Claimed nodes carry a claim
// order (their logical position) and Reconcile moves the fewest nodes needed
// to put a container's children in ascending claim order.
package hydrate

import (
	"slices"

	"github.com/delaneyj/slotparty/dom"
)

// upperBound returns the first index in [low, high) whose key is greater
// than value.
func upperBound(low, high int, key func(int) int, value int) int {
	for low < high {
		mid := low + (high-low)>>1
		if key(mid) <= value {
			low = mid + 1
		} else {
			high = mid
		}
	}
	return low
}

// LongestIncreasing returns the indices of a longest strictly increasing
// subsequence of values, in order.
func LongestIncreasing(values []int) []int {
	n := len(values)
	if n == 0 {
		return nil
	}

	// m[l] is the index of the smallest value ending an increasing run of length l.
	m := make([]int, n+1)
	// p[i] is the predecessor index of i plus one, zero when i starts a run.
	p := make([]int, n)
	m[0] = -1
	longest := 0
	for i, current := range values {
		seqLen := upperBound(1, longest+1, func(idx int) int { return values[m[idx]] }, current) - 1
		p[i] = m[seqLen] + 1
		newLen := seqLen + 1
		m[newLen] = i
		longest = max(longest, newLen)
	}

	lis := make([]int, longest)
	for k, cur := longest-1, m[longest]+1; cur != 0; k, cur = k-1, p[cur-1] {
		lis[k] = cur - 1
	}
	return lis
}

// Reconcile reorders the children of parent into ascending order as given
// by order, leaving a longest increasing subsequence in place. Orders must be
// unique; duplicates give an unspecified arrangement. It returns the number
// of nodes moved.
func Reconcile(parent *dom.Node, order func(*dom.Node) int) int {
	children := dom.Children(parent)
	if len(children) == 0 {
		return 0
	}

	orders := make([]int, len(children))
	for i, c := range children {
		orders[i] = order(c)
	}

	keep := LongestIncreasing(orders)
	if len(keep) == len(children) {
		return 0
	}

	lis := make([]int, 0, len(keep))
	toMove := make([]int, 0, len(children)-len(keep))
	k := 0
	for i := range children {
		if k < len(keep) && keep[k] == i {
			lis = append(lis, i)
			k++
			continue
		}
		toMove = append(toMove, i)
	}

	slices.SortFunc(toMove, func(a, b int) int {
		return orders[a] - orders[b]
	})

	j := 0
	for _, i := range toMove {
		for j < len(lis) && orders[i] >= orders[lis[j]] {
			j++
		}
		var anchor *dom.Node
		if j < len(lis) {
			anchor = children[lis[j]]
		}
		dom.Insert(parent, children[i], anchor)
	}
	return len(toMove)
}
