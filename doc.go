// Package jcodec is a high-throughput JSON codec: given a static Go value
// type and a wire symbol type (UTF-8 bytes or UTF-16 code units), it builds
// a specialized encoder/decoder pair that recursively composes over the
// value's type structure.
//
// The entry points are the symbol-type-fixed façades in jutf8 and jutf16;
// this root package holds no code of its own. Arrays, optionals
// (nullable.Optional[T]), enumerations (enum.Member), and struct aggregates
// (resolver/aggregate) are registered once per (T, wire encoding) pair on a
// *resolver.Resolver and then looked up through jutf8/jutf16's Marshal and
// Unmarshal functions:
//
//	r := jutf8.NewResolver()
//	resolver.RegisterArray[int](r)
//	out, err := jutf8.Marshal(r, []int{1, 2, 3})
package jcodec
