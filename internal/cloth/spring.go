package cloth

// SpringType tags which role a spring plays in the grid. The tag only
// selects the stiffness assigned at build time; it has no runtime behavior.
type SpringType int

const (
	// Structural springs connect orthogonal neighbors and resist stretch
	// along the grid axes.
	Structural SpringType = iota
	// Shear springs connect diagonal neighbors and resist face collapse.
	Shear
	// Bending springs connect particles two grid steps apart and resist
	// wrinkling, with a lower stiffness than structural springs.
	Bending
)

func (t SpringType) String() string {
	switch t {
	case Structural:
		return "structural"
	case Shear:
		return "shear"
	case Bending:
		return "bending"
	default:
		return "unknown"
	}
}

// Spring is a pairwise constraint between two particles, referenced by
// index into the particle arena. RestLength is fixed at construction from
// the initial pose and never recomputed.
type Spring struct {
	A, B       int
	RestLength float64
	Stiffness  float64
	Damping    float64
	Type       SpringType
}
