package errx

// Check returns the error built for o when cond is false, and nil otherwise.
func (f *Factory) Check(cond bool, o Occurrence) error {
	if cond {
		return nil
	}
	return f.Build(o)
}

// Assert calls Throw with o when cond is false.
func (f *Factory) Assert(cond bool, o Occurrence) {
	if !cond {
		f.Throw(o)
	}
}

// Throw panics with the *Error built for o. Recover it with Catch.
func (f *Factory) Throw(o Occurrence) {
	panic(f.Build(o))
}

// Catch recovers a panic raised by Throw or Assert and stores the error in
// *errp. Other panics are re-raised. Catch must be deferred directly:
//
//	func handle() (err error) {
//		defer errx.Catch(&err)
//		factory.Assert(ok, errx.Occurrence{Code: 100})
//		return nil
//	}
func Catch(errp *error) {
	r := recover()
	if r == nil {
		return
	}
	e, ok := r.(*Error)
	if !ok || errp == nil {
		panic(r)
	}
	*errp = e
}
