package generate

import "fmt"

// CorridorStyle selects the shape of connecting tunnels.
type CorridorStyle uint8

const (
	CorridorLShaped CorridorStyle = iota
	CorridorZShaped
	CorridorStraight
)

func (s CorridorStyle) String() string {
	switch s {
	case CorridorLShaped:
		return "l"
	case CorridorZShaped:
		return "z"
	case CorridorStraight:
		return "straight"
	}
	return fmt.Sprintf("CorridorStyle(%d)", uint8(s))
}

// ParseCorridorStyle maps a corridor style name to a CorridorStyle.
func ParseCorridorStyle(name string) (CorridorStyle, error) {
	switch name {
	case "l", "":
		return CorridorLShaped, nil
	case "z":
		return CorridorZShaped, nil
	case "straight":
		return CorridorStraight, nil
	}
	return 0, fmt.Errorf("%w: unknown corridor style %q", ErrInvalidConfig, name)
}

// carveCorridor digs a tunnel between (x1,y1) and (x2,y2).
func carveCorridor(c *canvas, x1, y1, x2, y2 int, cfg *Config) {
	switch cfg.CorridorStyle {
	case CorridorZShaped:
		carveZShaped(c, x1, y1, x2, y2)
	case CorridorStraight:
		carveH(c, x1, x2, y1)
		carveV(c, y1, y2, x2)
	default:
		if cfg.Rand.Intn(2) == 0 {
			carveH(c, x1, x2, y1)
			carveV(c, y1, y2, x2)
		} else {
			carveV(c, y1, y2, x1)
			carveH(c, x1, x2, y2)
		}
	}
}

func carveH(c *canvas, x1, x2, y int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		c.carve(x, y)
	}
}

func carveV(c *canvas, y1, y2, x int) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		c.carve(x, y)
	}
}

func carveZShaped(c *canvas, x1, y1, x2, y2 int) {
	midY := (y1 + y2) / 2
	carveV(c, y1, midY, x1)
	carveH(c, x1, x2, midY)
	carveV(c, midY, y2, x2)
}
