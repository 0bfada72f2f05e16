package dict

import "github.com/denismitr/dll"

type entry[V any] struct {
	key string
	val V
}

// OrderedDict 按第一次写入的顺序维护 key，非线程安全。
// map 提供 O(1) 查找，双向链表维护写入顺序，覆盖写入不改变位置。
type OrderedDict[V any] struct {
	m    map[string]*dll.Element[entry[V]]
	list *dll.DoublyLinkedList[entry[V]]
}

func MakeOrderedDict[V any]() *OrderedDict[V] {
	return &OrderedDict[V]{
		m:    make(map[string]*dll.Element[entry[V]]),
		list: dll.New[entry[V]](),
	}
}

// 检查 OrderedDict 是否没有初始化，没有初始化则返回 true
func (dict *OrderedDict[V]) notInit() bool {
	return dict == nil || dict.m == nil || dict.list == nil
}

func (dict *OrderedDict[V]) Get(key string) (val V, exists bool) {
	element, ok := dict.m[key]
	if !ok {
		var zero V
		return zero, false
	}

	return element.Value().val, true
}

func (dict *OrderedDict[V]) Len() int {
	if dict.notInit() {
		panic("dict is nil")
	}
	return len(dict.m)
}

// Put 写入键值，key 已存在时原地覆盖并返回 0，否则追加到尾部并返回 1
func (dict *OrderedDict[V]) Put(key string, val V) (result int) {
	if element, exists := dict.m[key]; exists {
		element.ReplaceValue(entry[V]{key: key, val: val})
		return 0
	}

	element := dll.NewElement(entry[V]{key: key, val: val})
	dict.m[key] = element
	dict.list.PushTail(element)
	return 1
}

func (dict *OrderedDict[V]) PutIfAbsent(key string, val V) (result int) {
	if _, exists := dict.m[key]; exists {
		return 0
	}

	// absent, put
	return dict.Put(key, val)
}

func (dict *OrderedDict[V]) Remove(key string) (result int) {
	element, exists := dict.m[key]
	if !exists {
		return 0
	}

	delete(dict.m, key)
	dict.list.Remove(element)
	return 1
}

// ForEach 按写入顺序遍历，consumer 返回 false 时停止
func (dict *OrderedDict[V]) ForEach(consumer func(key string, val V) bool) {
	if dict.notInit() {
		panic("dict is nil")
	}

	for element := dict.list.Head(); element != nil; element = element.Next() {
		e := element.Value()
		if !consumer(e.key, e.val) {
			break
		}
	}
}

// Keys 按写入顺序返回所有 key
func (dict *OrderedDict[V]) Keys() []string {
	keys := make([]string, 0, dict.Len())
	dict.ForEach(func(key string, _ V) bool {
		keys = append(keys, key)
		return true
	})

	return keys
}

func (dict *OrderedDict[V]) Clear() {
	*dict = *MakeOrderedDict[V]()
}
