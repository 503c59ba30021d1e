package process

// Kind identifies one of the five non-flow processes.
type Kind string

const (
	ConstantVolume   Kind = "constant_volume"
	ConstantPressure Kind = "constant_pressure"
	Isothermal       Kind = "isothermal"
	Adiabatic        Kind = "adiabatic"
	Polytropic       Kind = "polytropic"
)

// Kinds returns every supported kind in presentation order.
func Kinds() []Kind {
	return []Kind{ConstantVolume, ConstantPressure, Isothermal, Adiabatic, Polytropic}
}

// Valid reports whether k is a supported kind.
func (k Kind) Valid() bool {
	switch k {
	case ConstantVolume, ConstantPressure, Isothermal, Adiabatic, Polytropic:
		return true
	}
	return false
}

// ParseKind maps a process key to its Kind.
func ParseKind(key string) (Kind, error) {
	k := Kind(key)
	if !k.Valid() {
		return "", &UnsupportedProcessError{Kind: key}
	}
	return k, nil
}

// Variable names a state variable of a process path.
type Variable string

const (
	Temperature Variable = "T"
	Pressure    Variable = "P"
	Volume      Variable = "v"
	Entropy     Variable = "s"
)
