package dataset

// Union returns a new set containing the members of both sets,
// this set's members first, then the other's unseen members.
func (set *DataSet[T]) Union(other *DataSet[T]) *DataSet[T] {
	if set == nil || other == nil {
		panic("set is nil")
	}

	result := MakeWithEquals(set.name+" ∪ "+other.name, set.equals)
	set.ForEach(func(member T) bool {
		result.Insert(member)
		return true
	})
	other.ForEach(func(member T) bool {
		result.Insert(member)
		return true
	})

	return result
}

// Intersect returns a new set with the members present in both sets.
func (set *DataSet[T]) Intersect(other *DataSet[T]) *DataSet[T] {
	if set == nil || other == nil {
		panic("set is nil")
	}

	result := MakeWithEquals(set.name+" ∩ "+other.name, set.equals)
	set.ForEach(func(member T) bool {
		if other.Contains(member) {
			result.Insert(member)
		}
		return true
	})

	return result
}

// Diff returns a new set with this set's members that are not in other.
func (set *DataSet[T]) Diff(other *DataSet[T]) *DataSet[T] {
	if set == nil || other == nil {
		panic("set is nil")
	}

	result := MakeWithEquals(set.name+"-"+other.name, set.equals)
	set.ForEach(func(member T) bool {
		if !other.Contains(member) {
			result.Insert(member)
		}
		return true
	})

	return result
}

// SymmetricDifference returns the members in exactly one of the two sets,
// this set's exclusive members first.
func (set *DataSet[T]) SymmetricDifference(other *DataSet[T]) *DataSet[T] {
	if set == nil || other == nil {
		panic("set is nil")
	}

	result := MakeWithEquals(set.name+" symmetric_difference "+other.name, set.equals)
	set.ForEach(func(member T) bool {
		if !other.Contains(member) {
			result.Insert(member)
		}
		return true
	})
	other.ForEach(func(member T) bool {
		if !set.Contains(member) {
			result.Insert(member)
		}
		return true
	})

	return result
}

// IsSubset reports whether every member of this set is also in other.
// The empty set is a subset of every set.
func (set *DataSet[T]) IsSubset(other *DataSet[T]) bool {
	for _, member := range set.elements {
		if !other.Contains(member) {
			return false
		}
	}

	return true
}

// Equals 集合相等即互为子集，与成员的插入顺序无关
func (set *DataSet[T]) Equals(other *DataSet[T]) bool {
	return set.IsSubset(other) && other.IsSubset(set)
}
