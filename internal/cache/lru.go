package cache

// lruNode is one cached key/index pair in a doubly-linked recency list.
type lruNode struct {
	key   uint32
	index int32
	prev  *lruNode
	next  *lruNode
}

// lruList orders nodes from most recently used (head) to least (tail).
// It is not thread-safe; the owning shard holds the lock.
type lruList struct {
	head *lruNode
	tail *lruNode
	len  int
}

// Len returns the number of nodes.
func (l *lruList) Len() int {
	return l.len
}

// PushFront inserts n as the most recently used node.
func (l *lruList) PushFront(n *lruNode) {
	n.prev = nil
	n.next = l.head
	if l.head != nil {
		l.head.prev = n
	} else {
		l.tail = n
	}
	l.head = n
	l.len++
}

// MoveToFront marks n as most recently used.
func (l *lruList) MoveToFront(n *lruNode) {
	if n == l.head {
		return
	}
	l.unlink(n)
	l.PushFront(n)
}

// RemoveOldest unlinks and returns the least recently used node, or nil.
func (l *lruList) RemoveOldest() *lruNode {
	n := l.tail
	if n == nil {
		return nil
	}
	l.unlink(n)
	return n
}

// Clear drops all nodes.
func (l *lruList) Clear() {
	l.head = nil
	l.tail = nil
	l.len = 0
}

func (l *lruList) unlink(n *lruNode) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		l.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		l.tail = n.prev
	}
	n.prev = nil
	n.next = nil
	l.len--
}
