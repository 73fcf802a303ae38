package generate

// bspLeaf is a node in the BSP tree.
type bspLeaf struct {
	X, Y, W, H  int
	left, right *bspLeaf
	room        *Rect
}

// split divides the leaf into two children, returning false when leaf is too small.
func (l *bspLeaf) split(cfg *Config) bool {
	if l.left != nil || l.right != nil {
		return false
	}
	// Split across the longer side once it is clearly longer.
	horizontal := cfg.Rand.Intn(2) == 0
	if l.W > l.H && float64(l.W)/float64(l.H) >= 1.25 {
		horizontal = false
	} else if l.H > l.W && float64(l.H)/float64(l.W) >= 1.25 {
		horizontal = true
	}

	size := l.W
	if horizontal {
		size = l.H
	}
	lo, hi := cfg.MinLeafSize, size-cfg.MinLeafSize
	if size <= cfg.MinLeafSize*2 || lo >= hi {
		return false
	}
	at := lo + cfg.Rand.Intn(hi-lo+1)

	if horizontal {
		l.left = &bspLeaf{X: l.X, Y: l.Y, W: l.W, H: at}
		l.right = &bspLeaf{X: l.X, Y: l.Y + at, W: l.W, H: l.H - at}
	} else {
		l.left = &bspLeaf{X: l.X, Y: l.Y, W: at, H: l.H}
		l.right = &bspLeaf{X: l.X + at, Y: l.Y, W: l.W - at, H: l.H}
	}
	return true
}

// createRooms carves one room inside every terminal leaf, keeping a
// one-tile wall border around the canvas.
func (l *bspLeaf) createRooms(c *canvas, cfg *Config, rooms *[]Rect) {
	if l.left != nil || l.right != nil {
		if l.left != nil {
			l.left.createRooms(c, cfg, rooms)
		}
		if l.right != nil {
			l.right.createRooms(c, cfg, rooms)
		}
		return
	}

	pad := cfg.RoomPadding
	minSize := cfg.MinRoomSize
	availW := max(l.W-2*pad, minSize)
	availH := max(l.H-2*pad, minSize)

	rw := min(minSize+cfg.Rand.Intn(max(1, availW-minSize+1)), l.W-2*pad)
	rh := min(minSize+cfg.Rand.Intn(max(1, availH-minSize+1)), l.H-2*pad)
	rw, rh = max(rw, 3), max(rh, 3)

	rx := max(l.X+pad+cfg.Rand.Intn(max(1, l.W-rw-2*pad+1)), 1)
	ry := max(l.Y+pad+cfg.Rand.Intn(max(1, l.H-rh-2*pad+1)), 1)
	if rx+rw >= c.width {
		rw = c.width - rx - 1
	}
	if ry+rh >= c.length {
		rh = c.length - ry - 1
	}
	if rw < 3 || rh < 3 {
		return
	}

	room := Rect{X1: rx, Y1: ry, X2: rx + rw - 1, Y2: ry + rh - 1}
	l.room = &room
	for y := room.Y1; y <= room.Y2; y++ {
		for x := room.X1; x <= room.X2; x++ {
			c.carve(x, y)
		}
	}
	*rooms = append(*rooms, room)
}

// getRoom returns a room from this leaf or, when split, from its children.
func (l *bspLeaf) getRoom() *Rect {
	if l.room != nil {
		return l.room
	}
	var lRoom, rRoom *Rect
	if l.left != nil {
		lRoom = l.left.getRoom()
	}
	if l.right != nil {
		rRoom = l.right.getRoom()
	}
	if lRoom == nil {
		return rRoom
	}
	return lRoom
}

// connectChildren carves corridors between the two children of a split leaf.
func (l *bspLeaf) connectChildren(c *canvas, cfg *Config) {
	if l.left == nil || l.right == nil {
		return
	}
	l.left.connectChildren(c, cfg)
	l.right.connectChildren(c, cfg)

	lRoom, rRoom := l.left.getRoom(), l.right.getRoom()
	if lRoom == nil || rRoom == nil {
		return
	}
	a, b := lRoom.Center(), rRoom.Center()
	carveCorridor(c, a.Col, a.Row, b.Col, b.Row, cfg)
}

// carveRooms runs BSP generation on c. Start is the first room's center and
// End the last room's.
func carveRooms(c *canvas, cfg *Config) *Layout {
	root := &bspLeaf{X: 0, Y: 0, W: c.width, H: c.length}

	leaves := []*bspLeaf{root}
	for splitAny := true; splitAny; {
		splitAny = false
		var next []*bspLeaf
		for _, leaf := range leaves {
			if leaf.left != nil || leaf.right != nil {
				next = append(next, leaf.left, leaf.right)
				continue
			}
			if leaf.W > cfg.MaxLeafSize || leaf.H > cfg.MaxLeafSize || cfg.Rand.Float64() > 0.25 {
				if leaf.split(cfg) {
					next = append(next, leaf.left, leaf.right)
					splitAny = true
					continue
				}
			}
			next = append(next, leaf)
		}
		leaves = next
	}

	lay := &Layout{}
	root.createRooms(c, cfg, &lay.Rooms)
	root.connectChildren(c, cfg)

	if n := len(lay.Rooms); n > 0 {
		lay.Start = lay.Rooms[0].Center()
		lay.End = lay.Rooms[n-1].Center()
	}
	return lay
}
