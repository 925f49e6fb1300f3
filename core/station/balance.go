package station

// Rebalancing follows the classic red-black insert and delete fixups, with
// every link expressed as an arena slot.

func (t *Index) rotateLeft(x int32) {
	y := t.nodes[x].right
	if y == nilRef {
		return
	}
	t.nodes[x].right = t.nodes[y].left
	if l := t.nodes[y].left; l != nilRef {
		t.nodes[l].parent = x
	}
	t.replaceChild(t.nodes[x].parent, x, y)
	t.nodes[y].left = x
	t.nodes[x].parent = y
}

func (t *Index) rotateRight(x int32) {
	y := t.nodes[x].left
	if y == nilRef {
		return
	}
	t.nodes[x].left = t.nodes[y].right
	if r := t.nodes[y].right; r != nilRef {
		t.nodes[r].parent = x
	}
	t.replaceChild(t.nodes[x].parent, x, y)
	t.nodes[y].right = x
	t.nodes[x].parent = y
}

// replaceChild makes v take u's place under parent p and sets v's parent,
// which may be the sentinel.
func (t *Index) replaceChild(p, u, v int32) {
	switch {
	case p == nilRef:
		t.root = v
	case u == t.nodes[p].left:
		t.nodes[p].left = v
	default:
		t.nodes[p].right = v
	}
	t.nodes[v].parent = p
}

func (t *Index) colorOf(x int32) color { return t.nodes[x].color }

func (t *Index) insertFixup(z int32) {
	for t.colorOf(t.nodes[z].parent) == red {
		p := t.nodes[z].parent
		g := t.nodes[p].parent
		if p == t.nodes[g].left {
			u := t.nodes[g].right
			if t.colorOf(u) == red {
				t.nodes[p].color = black
				t.nodes[u].color = black
				t.nodes[g].color = red
				z = g
				continue
			}
			if z == t.nodes[p].right {
				z = p
				t.rotateLeft(z)
				p = t.nodes[z].parent
			}
			t.nodes[p].color = black
			t.nodes[g].color = red
			t.rotateRight(g)
		} else {
			u := t.nodes[g].left
			if t.colorOf(u) == red {
				t.nodes[p].color = black
				t.nodes[u].color = black
				t.nodes[g].color = red
				z = g
				continue
			}
			if z == t.nodes[p].left {
				z = p
				t.rotateRight(z)
				p = t.nodes[z].parent
			}
			t.nodes[p].color = black
			t.nodes[g].color = red
			t.rotateLeft(g)
		}
	}
	t.nodes[t.root].color = black
}

// delete unlinks z from the tree. The caller releases the slot.
func (t *Index) delete(z int32) {
	y := z
	yColor := t.colorOf(y)
	var x int32

	switch {
	case t.nodes[z].left == nilRef:
		x = t.nodes[z].right
		t.replaceChild(t.nodes[z].parent, z, x)
	case t.nodes[z].right == nilRef:
		x = t.nodes[z].left
		t.replaceChild(t.nodes[z].parent, z, x)
	default:
		y = t.minimum(t.nodes[z].right)
		yColor = t.colorOf(y)
		x = t.nodes[y].right
		if t.nodes[y].parent == z {
			t.nodes[x].parent = y
		} else {
			t.replaceChild(t.nodes[y].parent, y, x)
			t.nodes[y].right = t.nodes[z].right
			t.nodes[t.nodes[y].right].parent = y
		}
		t.replaceChild(t.nodes[z].parent, z, y)
		t.nodes[y].left = t.nodes[z].left
		t.nodes[t.nodes[y].left].parent = y
		t.nodes[y].color = t.nodes[z].color
	}

	if yColor == black {
		t.deleteFixup(x)
	}
}

func (t *Index) deleteFixup(x int32) {
	for x != t.root && t.colorOf(x) == black {
		p := t.nodes[x].parent
		if x == t.nodes[p].left {
			w := t.nodes[p].right
			if t.colorOf(w) == red {
				t.nodes[w].color = black
				t.nodes[p].color = red
				t.rotateLeft(p)
				w = t.nodes[p].right
			}
			if t.colorOf(t.nodes[w].left) == black && t.colorOf(t.nodes[w].right) == black {
				t.nodes[w].color = red
				x = p
				continue
			}
			if t.colorOf(t.nodes[w].right) == black {
				t.nodes[t.nodes[w].left].color = black
				t.nodes[w].color = red
				t.rotateRight(w)
				w = t.nodes[p].right
			}
			t.nodes[w].color = t.nodes[p].color
			t.nodes[p].color = black
			t.nodes[t.nodes[w].right].color = black
			t.rotateLeft(p)
			x = t.root
		} else {
			w := t.nodes[p].left
			if t.colorOf(w) == red {
				t.nodes[w].color = black
				t.nodes[p].color = red
				t.rotateRight(p)
				w = t.nodes[p].left
			}
			if t.colorOf(t.nodes[w].right) == black && t.colorOf(t.nodes[w].left) == black {
				t.nodes[w].color = red
				x = p
				continue
			}
			if t.colorOf(t.nodes[w].left) == black {
				t.nodes[t.nodes[w].right].color = black
				t.nodes[w].color = red
				t.rotateLeft(w)
				w = t.nodes[p].left
			}
			t.nodes[w].color = t.nodes[p].color
			t.nodes[p].color = black
			t.nodes[t.nodes[w].left].color = black
			t.rotateRight(p)
			x = t.root
		}
	}
	t.nodes[x].color = black
}
