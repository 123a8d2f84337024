package check

// Universe holds the predeclared names: the builtin gates U and CX, the
// constant pi and the functions allowed in parameter expressions.
var Universe *Scope

// Predeclared gates.
var (
	UniverseU  *Gate
	UniverseCX *Gate
)

func init() {
	Universe = NewScope(nil, "universe")

	UniverseU = &Gate{
		object:  object{name: "U"},
		Params:  []string{"theta", "phi", "lambda"},
		Qubits:  []string{"a"},
		Builtin: true,
	}
	UniverseCX = &Gate{
		object:  object{name: "CX"},
		Qubits:  []string{"a", "b"},
		Builtin: true,
	}
	Universe.Insert(UniverseU)
	Universe.Insert(UniverseCX)

	Universe.Insert(&Const{object{name: "pi"}})
	for _, name := range []string{"sin", "cos", "tan", "exp", "ln", "sqrt"} {
		Universe.Insert(&Func{object{name: name}})
	}
}
