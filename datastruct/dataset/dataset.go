package dataset

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// EqualsFunc 判断两个元素是否为同一个成员
type EqualsFunc[T any] func(a, b T) bool

// DataSet 是一个带名字的数学集合，成员唯一且保持插入顺序。
// 成员相等性由构造时传入的 EqualsFunc 决定，因此成员类型不必是 comparable，
// 集合的集合、序对的集合都可以作为成员。
type DataSet[T any] struct {
	name     string
	elements []T
	equals   EqualsFunc[T]
}

// Make creates a named set whose members are compared with ==.
func Make[T comparable](name string, members ...T) *DataSet[T] {
	return MakeWithEquals(name, func(a, b T) bool {
		return a == b
	}, members...)
}

// MakeWithEquals creates a named set with a caller-supplied equality.
func MakeWithEquals[T any](name string, equals EqualsFunc[T], members ...T) *DataSet[T] {
	set := &DataSet[T]{
		name:   name,
		equals: equals,
	}
	for _, member := range members {
		set.Insert(member)
	}

	return set
}

// Name returns the set name, may be empty for anonymous sets.
func (set *DataSet[T]) Name() string {
	return set.name
}

func (set *DataSet[T]) SetName(name string) {
	set.name = name
}

// Insert adds value as a new member, returns the number of members added.
// Inserting a value equal to an existing member leaves the set unchanged.
func (set *DataSet[T]) Insert(value T) int {
	if set.Contains(value) {
		return 0
	}
	set.elements = append(set.elements, value)

	return 1
}

// Contains 线性扫描查找相等成员
func (set *DataSet[T]) Contains(value T) bool {
	return slices.IndexFunc(set.elements, func(member T) bool {
		return set.equals(member, value)
	}) >= 0
}

// Len returns the number of members.
func (set *DataSet[T]) Len() int {
	return len(set.elements)
}

// Elements returns a copy of the members in insertion order.
func (set *DataSet[T]) Elements() []T {
	return slices.Clone(set.elements)
}

// ForEach 按插入顺序遍历成员，consumer 返回 false 时停止
func (set *DataSet[T]) ForEach(consumer func(member T) bool) {
	for _, member := range set.elements {
		if !consumer(member) {
			break
		}
	}
}

// Clone returns an independent copy with the same name and equality.
func (set *DataSet[T]) Clone() *DataSet[T] {
	return &DataSet[T]{
		name:     set.name,
		elements: slices.Clone(set.elements),
		equals:   set.equals,
	}
}

// String renders the set as "name = {e1, e2, ...}",
// or just "{e1, e2, ...}" when the set is anonymous.
func (set *DataSet[T]) String() string {
	var builder strings.Builder
	if set.name != "" {
		builder.WriteString(set.name)
		builder.WriteString(" = ")
	}

	builder.WriteByte('{')
	for i, member := range set.elements {
		if i > 0 {
			builder.WriteString(", ")
		}
		_, _ = fmt.Fprintf(&builder, "%v", member)
	}
	builder.WriteByte('}')

	return builder.String()
}
