package collection

import (
	"github.com/dawnzzz/simple-sets/datastruct/dataset"
	"github.com/dawnzzz/simple-sets/datastruct/dict"
	"github.com/pkg/errors"
)

// 二元算子关键字
const (
	OpUnion               = "union"
	OpIntersection        = "intersection"
	OpDifference          = "difference"
	OpSymmetricDifference = "symmetric_difference"
)

// 一元算子关键字
const (
	OpPowerSet = "powerset"
)

// Collection 按名字管理一组 DataSet，名字唯一，保留注册顺序
type Collection[T any] struct {
	sets *dict.OrderedDict[*dataset.DataSet[T]]
}

func MakeCollection[T any]() *Collection[T] {
	return &Collection[T]{
		sets: dict.MakeOrderedDict[*dataset.DataSet[T]](),
	}
}

// AddSet registers the set under its own name.
// Registering a name again replaces the old set without moving its position.
func (collection *Collection[T]) AddSet(set *dataset.DataSet[T]) {
	collection.sets.Put(set.Name(), set)
}

// HasSet reports whether a set is registered under name.
func (collection *Collection[T]) HasSet(name string) bool {
	_, exists := collection.sets.Get(name)
	return exists
}

// InsertInto inserts value into the named set.
func (collection *Collection[T]) InsertInto(name string, value T) error {
	set, exists := collection.sets.Get(name)
	if !exists {
		return errors.Wrapf(ErrSetNotFound, "set '%s'", name)
	}

	set.Insert(value)
	return nil
}

// GetSet returns an independent copy of the named set,
// so callers cannot mutate the registered one.
func (collection *Collection[T]) GetSet(name string) (*dataset.DataSet[T], error) {
	set, exists := collection.sets.Get(name)
	if !exists {
		return nil, errors.Wrapf(ErrSetNotFound, "set '%s'", name)
	}

	return set.Clone(), nil
}

// SetNames 按注册顺序返回所有集合名
func (collection *Collection[T]) SetNames() []string {
	return collection.sets.Keys()
}

// Len returns the number of registered sets.
func (collection *Collection[T]) Len() int {
	return collection.sets.Len()
}

// ForEach 按注册顺序遍历集合，consumer 返回 false 时停止
func (collection *Collection[T]) ForEach(consumer func(name string, set *dataset.DataSet[T]) bool) {
	collection.sets.ForEach(consumer)
}

// Clear drops every registered set.
func (collection *Collection[T]) Clear() {
	collection.sets.Clear()
}

// Operate resolves both operands and applies the binary operation named
// by op. The result is renamed to "(nameA op nameB)" and is not registered.
func (collection *Collection[T]) Operate(nameA, op, nameB string) (*dataset.DataSet[T], error) {
	a, err := collection.GetSet(nameA)
	if err != nil {
		return nil, err
	}
	b, err := collection.GetSet(nameB)
	if err != nil {
		return nil, err
	}

	var result *dataset.DataSet[T]
	switch op {
	case OpUnion:
		result = a.Union(b)
	case OpIntersection:
		result = a.Intersect(b)
	case OpDifference:
		result = a.Diff(b)
	case OpSymmetricDifference:
		result = a.SymmetricDifference(b)
	default:
		return nil, errors.Wrapf(ErrUnsupportedOperation, "invalid operation '%s'", op)
	}

	result.SetName("(" + nameA + " " + op + " " + nameB + ")")
	return result, nil
}

// OperateUnary applies the unary operation named by op, only "powerset" is known.
func (collection *Collection[T]) OperateUnary(name, op string) (*dataset.DataSet[*dataset.DataSet[T]], error) {
	if op != OpPowerSet {
		return nil, errors.Wrapf(ErrUnsupportedOperation, "unsupported unary operation '%s'", op)
	}

	set, err := collection.GetSet(name)
	if err != nil {
		return nil, err
	}

	return set.PowerSet(), nil
}

// CartesianProduct resolves both operands and returns their cartesian product.
func (collection *Collection[T]) CartesianProduct(nameA, nameB string) (*dataset.DataSet[dataset.Pair[T]], error) {
	a, err := collection.GetSet(nameA)
	if err != nil {
		return nil, err
	}
	b, err := collection.GetSet(nameB)
	if err != nil {
		return nil, err
	}

	return a.CartesianProduct(b), nil
}
