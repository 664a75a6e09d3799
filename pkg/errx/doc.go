// Package errx builds classified errors with numeric codes, assembled
// messages and attached data.
//
// Each component creates one Factory for its class:
//
//	var errs = errx.MustNew("ImmutableAppComponent",
//		errx.WithCodes(map[string]string{"100": "foo error"}),
//		errx.WithNameProperty("name"),
//	)
//
// and builds an error per occurrence:
//
//	err := errs.Build(errx.Occurrence{Instance: comp, Code: 100})
//	// err.Error() == "ImmutableAppComponent.<name> Error: foo error"
//	// err.Code()  == 20100
//
// Codes follow a 5-digit scheme. A class registered in the Registry owns
// base..base+999: the final code is the base plus the internal code
// (100-999), or the base alone when no internal code applies. Classes
// without a registry entry always get CodeUnregistered (10000).
//
// The message is "<Class>[.<instance name>] Error" followed by ": <detail>",
// where the detail is the first of: the occurrence message, the default
// message of the internal code, the message of the original error.
//
// Data holds the caller data deep merged over a snapshot of the original
// error (DataKeyOriginal). A caller map may extend the snapshot but nothing
// replaces it. The internal code (DataKeyInternalCode) is set last.
//
// Assert and Throw panic with the built *Error; Catch turns that panic back
// into an error return at a boundary. Check is the non-panicking form.
package errx
