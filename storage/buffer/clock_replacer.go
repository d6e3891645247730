// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package buffer

//FrameID is the type for frame id
type FrameID uint32

// ClockReplacer picks eviction victims among the frames that hold clean pages.
// The node value is the reference bit.
type ClockReplacer struct {
	cList     *circularList
	clockHand *node
}

// Victim removes the victim frame as defined by the replacement policy
func (c *ClockReplacer) Victim() *FrameID {
	if c.cList.size == 0 {
		return nil
	}

	if c.clockHand == nil {
		c.clockHand = c.cList.head
	}
	currentNode := c.clockHand
	for {
		if currentNode.value {
			currentNode.value = false
			currentNode = currentNode.next
			continue
		}

		frameID := currentNode.key
		if c.cList.size == 1 {
			c.clockHand = nil
		} else {
			c.clockHand = currentNode.next
		}
		c.cList.remove(frameID)
		return &frameID
	}
}

// Unpin marks a frame evictable, or sets its reference bit when it already is
func (c *ClockReplacer) Unpin(id FrameID) {
	c.cList.insert(id, true)
	if c.clockHand == nil {
		c.clockHand = c.cList.head
	}
}

//Pin pins a frame, indicating that it should not be victimized until it is unpinned
func (c *ClockReplacer) Pin(id FrameID) {
	node := c.cList.find(id)
	if node == nil {
		return
	}

	if c.clockHand == node {
		if c.cList.size == 1 {
			c.clockHand = nil
		} else {
			c.clockHand = node.next
		}
	}
	c.cList.remove(id)
}

//Size returns the size of the clock
func (c *ClockReplacer) Size() uint32 {
	return c.cList.size
}

//NewClockReplacer instantiates a new clock replacer
func NewClockReplacer(poolSize uint32) *ClockReplacer {
	cList := newCircularList(poolSize)
	return &ClockReplacer{cList, nil}
}
