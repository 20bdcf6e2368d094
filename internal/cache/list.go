package cache

// node is one element of the recency list.
// It carries the key as well as the value because eviction starts from the
// back of the list and must be able to find the index entry to delete.
type node[K comparable, V any] struct {
	key   K
	value V

	prev, next *node[K, V]
}

// recencyList is a doubly linked list with a sentinel root.
//
// root.next is the front (most recently used), root.prev is the back
// (least recently used). With the sentinel in place every link is non-nil
// once the list is initialized, so no operation needs a head/tail special case.
type recencyList[K comparable, V any] struct {
	root node[K, V]
	len  int
}

func (l *recencyList[K, V]) init() {
	l.root.next = &l.root
	l.root.prev = &l.root
	l.len = 0
}

// front returns the most recently used node, or nil if the list is empty.
func (l *recencyList[K, V]) front() *node[K, V] {
	if l.len == 0 {
		return nil
	}
	return l.root.next
}

// back returns the least recently used node, or nil if the list is empty.
func (l *recencyList[K, V]) back() *node[K, V] {
	if l.len == 0 {
		return nil
	}
	return l.root.prev
}

// nextOf returns the node after n in MRU -> LRU order, or nil at the end.
func (l *recencyList[K, V]) nextOf(n *node[K, V]) *node[K, V] {
	if n.next == &l.root {
		return nil
	}
	return n.next
}

func (l *recencyList[K, V]) insertAfter(n, at *node[K, V]) {
	n.prev = at
	n.next = at.next
	at.next.prev = n
	at.next = n
	l.len++
}

// pushFront links n as the most recently used node.
func (l *recencyList[K, V]) pushFront(n *node[K, V]) {
	l.insertAfter(n, &l.root)
}

// remove unlinks n. n must belong to l.
func (l *recencyList[K, V]) remove(n *node[K, V]) {
	n.prev.next = n.next
	n.next.prev = n.prev
	n.prev, n.next = nil, nil
	l.len--
}

// moveToFront promotes n to most recently used. n must belong to l.
func (l *recencyList[K, V]) moveToFront(n *node[K, V]) {
	if l.root.next == n {
		return
	}
	l.remove(n)
	l.pushFront(n)
}
