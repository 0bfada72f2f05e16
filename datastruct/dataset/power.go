package dataset

import "fmt"

// Pair 是取自两个集合的有序对
type Pair[T any] struct {
	First  T
	Second T
}

func (p Pair[T]) String() string {
	return fmt.Sprintf("(%v, %v)", p.First, p.Second)
}

// PairEquals lifts an element equality to component-wise pair equality.
func PairEquals[T any](equals EqualsFunc[T]) EqualsFunc[Pair[T]] {
	return func(a, b Pair[T]) bool {
		return equals(a.First, b.First) && equals(a.Second, b.Second)
	}
}

// SetEquals is the member equality for sets of sets:
// membership is decided by set equality, not by element order.
func SetEquals[T any]() EqualsFunc[*DataSet[T]] {
	return func(a, b *DataSet[T]) bool {
		return a.Equals(b)
	}
}

// PowerSet returns the set of all subsets of this set,
// including the empty set and the set itself, 2^n subsets in total.
// The subsets are anonymous and keep the parent set's member order.
func (set *DataSet[T]) PowerSet() *DataSet[*DataSet[T]] {
	result := MakeWithEquals(set.name+" Power Set", SetEquals[T]())

	// 枚举 2^n 个下标掩码，每个掩码对应一个子集
	for mask := uint64(0); mask < uint64(1)<<set.Len(); mask++ {
		subset := MakeWithEquals("", set.equals)
		for i, member := range set.elements {
			if mask&(uint64(1)<<i) != 0 {
				subset.Insert(member)
			}
		}
		result.Insert(subset)
	}

	return result
}

// CartesianProduct returns all ordered pairs (a, b) in row-major order:
// a ranges over this set, b over the other.
func (set *DataSet[T]) CartesianProduct(other *DataSet[T]) *DataSet[Pair[T]] {
	if set == nil || other == nil {
		panic("set is nil")
	}

	result := MakeWithEquals(set.name+" × "+other.name, PairEquals(set.equals))
	set.ForEach(func(a T) bool {
		other.ForEach(func(b T) bool {
			result.Insert(Pair[T]{First: a, Second: b})
			return true
		})
		return true
	})

	return result
}
