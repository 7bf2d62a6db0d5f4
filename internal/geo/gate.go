package geo

// Gate admits joining clients whose coordinates fall inside the admission region.
type Gate struct {
	admission Region
}

// NewGate returns a gate for the provided admission region.
func NewGate(admission Region) Gate {
	return Gate{admission: admission}
}

// Region returns the configured admission region.
func (g Gate) Region() Region {
	return g.admission
}

// IsAdmitted reports whether both coordinates lie within the admission region.
func (g Gate) IsAdmitted(lat, lon float64) bool {
	return g.admission.Contains(lat, lon)
}

// Admit is IsAdmitted for optional transport-supplied coordinates. Missing or
// malformed coordinates are rejected.
func (g Gate) Admit(coords *Coordinates) bool {
	if coords == nil {
		return false
	}
	return g.IsAdmitted(coords.Latitude, coords.Longitude)
}
