// Package digest implements the MD5 message digest (RFC 1321) as a one-shot,
// byte-exact reference engine.
//
// A message is padded into a fresh buffer, compressed one 64-byte block at a
// time and serialized into a 16-byte Digest. The engine keeps no state between
// calls: the padded buffer and the four state words belong to a single call,
// so concurrent calls on independent messages need no coordination.
//
// # Example Usage
//
//	d, err := digest.Sum([]byte("abc"))
//	if err != nil {
//	    return err // only allocation failures are reported
//	}
//	fmt.Println(d) // 900150983cd24fb0d6963f7d28e17f72
//
// Bounding the memory a single call may use:
//
//	engine := digest.NewEngine(64 << 20)
//	hexdigest, err := engine.SumHex(message)
//
// MD5 is cryptographically broken. Use it for checksums only.
package digest
