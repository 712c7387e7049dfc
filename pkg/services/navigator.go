package services

// Navigator enforces chapter boundaries and tracks the single highlighted entry.
type Navigator struct {
	size   int
	active int
}

func NewNavigator(size int) *Navigator {
	return &Navigator{size: size, active: -1}
}

func (n *Navigator) Resize(size int) {
	n.size = size
	if n.active >= size {
		n.active = -1
	}
}

func (n *Navigator) Next(current int) (int, bool) {
	if current+1 >= n.size || current < 0 {
		return current, false
	}
	return current + 1, true
}

func (n *Navigator) Previous(current int) (int, bool) {
	if current <= 0 || current >= n.size {
		return current, false
	}
	return current - 1, true
}

func (n *Navigator) IsLast(index int) bool {
	return index == n.size-1
}

// SetActive marks index as the only selected entry.
func (n *Navigator) SetActive(index int) bool {
	if index < 0 || index >= n.size {
		return false
	}
	n.active = index
	return true
}

// Active returns the selected index, or -1 before the first load.
func (n *Navigator) Active() int {
	return n.active
}

func (n *Navigator) IsActive(index int) bool {
	return n.active >= 0 && index == n.active
}
