package formdata

// Package formdata reconstructs nested, typed records from the flat
// string-keyed entries of a form submission.
//
// It provides:
//
// - A path grammar for flat field names (`user.address.city`,
//   `items[2].price:number`) and a parser that is its exact inverse
// - A codec registry mapping short type tags to value decoders, with
//   defaults for string, number, boolean, date and file values
// - An extraction engine that folds a flat bag of entries into nested
//   object/array trees, accumulating across repeated calls
// - A stable diagnostics model via Issues (flat key, code, message)
//
// Design policy:
// - Keep only public APIs in the root package; put the accumulator tree
//   under internal/.
// - Place the path builder under dsl/, optional codecs under codec/, and
//   the CLI under cmd/formdata.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	name := dsl.Field("user").Field("firstname").String()
//	// ... name is embedded in a form, the submission comes back flat ...
//
//	res, err := formdata.Extract(bag)
//	res.Combined  // full nested tree
//	res.Fields    // text-decoded leaves only
//	res.Files     // uploaded blobs only
