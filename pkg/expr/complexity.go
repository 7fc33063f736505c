package expr

func (c *ConstNode) NodeCount() int { return 1 }
func (b *BinaryNode) NodeCount() int {
	return 1 + b.left.NodeCount() + b.right.NodeCount()
}

func (c *ConstNode) Depth() int { return 1 }
func (b *BinaryNode) Depth() int {
	ld := b.left.Depth()
	rd := b.right.Depth()
	if ld > rd {
		return 1 + ld
	}
	return 1 + rd
}
