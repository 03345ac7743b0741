package order

// Linearize computes t's C3 method resolution order: t itself, then
// its ancestors ordered so that every base precedes its own bases and
// siblings keep the declaration order they were connected in.
func Linearize(ord *Order, t Type) ([]Type, error) {
	bases := directSuccessors(ord.Engine, t)
	if len(bases) == 0 {
		return []Type{t}, nil
	}

	lists := make([][]Type, 0, len(bases)+1)
	for _, b := range bases {
		l, err := Linearize(ord, b)
		if err != nil {
			return nil, err
		}
		lists = append(lists, l)
	}
	lists = append(lists, append([]Type(nil), bases...))

	merged, err := mergeC3(lists)
	if err != nil {
		return nil, &InconsistentMROError{Type: t}
	}
	return append([]Type{t}, merged...), nil
}

// Successors returns t's linearized ancestor chain with t itself
// stripped from the head, the ordered-supertype view the subtype
// relation consults.
func Successors(ord *Order, t Type) ([]Type, error) {
	chain, err := Linearize(ord, t)
	if err != nil {
		return nil, err
	}
	return chain[1:], nil
}

// mergeC3 implements the classic C3 linearization merge: repeatedly
// take the first head of some list that does not occur in the tail of
// any list, until every list is exhausted.
func mergeC3(lists [][]Type) ([]Type, error) {
	working := make([][]Type, len(lists))
	for i, l := range lists {
		working[i] = append([]Type(nil), l...)
	}

	var result []Type
	for {
		working = removeEmptyLists(working)
		if len(working) == 0 {
			return result, nil
		}

		var head Type
		found := false
		for _, l := range working {
			candidate := l[0]
			if !inAnyTail(candidate, working) {
				head = candidate
				found = true
				break
			}
		}
		if !found {
			return nil, &InconsistentMROError{}
		}

		result = append(result, head)
		for i, l := range working {
			working[i] = removeFirst(l, head)
		}
	}
}

func removeEmptyLists(lists [][]Type) [][]Type {
	out := lists[:0]
	for _, l := range lists {
		if len(l) > 0 {
			out = append(out, l)
		}
	}
	return out
}

func inAnyTail(candidate Type, lists [][]Type) bool {
	key := candidate.canonicalKey()
	for _, l := range lists {
		for _, t := range l[1:] {
			if t.canonicalKey() == key {
				return true
			}
		}
	}
	return false
}

func removeFirst(list []Type, head Type) []Type {
	if len(list) > 0 && list[0].canonicalKey() == head.canonicalKey() {
		return list[1:]
	}
	return list
}
