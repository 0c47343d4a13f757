package form

// Validator is a pure predicate over the form state.
type Validator func(d *Data) bool

// Always accepts every state.
func Always(*Data) bool { return true }

// Required is valid when every listed field is filled.
func Required(keys ...string) Validator {
	return func(d *Data) bool {
		for _, k := range keys {
			if !d.Filled(k) {
				return false
			}
		}
		return true
	}
}

// All combines validators; every one must pass.
func All(vs ...Validator) Validator {
	return func(d *Data) bool {
		for _, v := range vs {
			if !v(d) {
				return false
			}
		}
		return true
	}
}
